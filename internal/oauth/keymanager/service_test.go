/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package keymanager

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/tokenengine/internal/oauth/keymanager/model"
	"github.com/asgardeo/tokenengine/internal/system/cache"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/crypto"
)

// memoryKeyStore keeps signing keys in memory with the same semantics as the SQL store.
type memoryKeyStore struct {
	mu      sync.Mutex
	keys    map[string]model.SigningKeyRecord
	listErr error
}

func newMemoryKeyStore() *memoryKeyStore {
	return &memoryKeyStore{keys: map[string]model.SigningKeyRecord{}}
}

func (s *memoryKeyStore) ListKeys(now int64) ([]model.SigningKeyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	keys := make([]model.SigningKeyRecord, 0, len(s.keys))
	for _, key := range s.keys {
		if key.NotAfter > now {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].NotBefore > keys[j].NotBefore })
	return keys, nil
}

func (s *memoryKeyStore) InsertKey(key model.SigningKeyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key.KID] = key
	return nil
}

func (s *memoryKeyStore) RotateKeys(newKey model.SigningKeyRecord, retiredNotAfter int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for kid, key := range s.keys {
		if key.Status == model.KeyStatusActive {
			key.Status = model.KeyStatusRetired
			key.NotAfter = min(key.NotAfter, retiredNotAfter)
			s.keys[kid] = key
		}
	}
	s.keys[newKey.KID] = newKey
	return nil
}

func (s *memoryKeyStore) DeleteLapsedKeys(now int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for kid, key := range s.keys {
		if key.NotAfter <= now {
			delete(s.keys, kid)
			deleted++
		}
	}
	return deleted, nil
}

type KeyManagerTestSuite struct {
	suite.Suite
	store         *memoryKeyStore
	cryptoService crypto.CryptoServiceInterface
	keyManager    *keyManager
	now           time.Time
}

func TestKeyManagerSuite(t *testing.T) {
	suite.Run(t, new(KeyManagerTestSuite))
}

func (suite *KeyManagerTestSuite) SetupTest() {
	suite.initRuntime(config.SecurityConfig{}, 0)
}

func (suite *KeyManagerTestSuite) TearDownTest() {
	config.ResetServerRuntime()
}

func (suite *KeyManagerTestSuite) initRuntime(security config.SecurityConfig, rotationInterval int64) {
	config.ResetServerRuntime()
	_ = config.InitializeServerRuntime(suite.T().TempDir(), &config.Config{
		Security: security,
		OAuth: config.OAuthConfig{
			JWT:             config.JWTConfig{ValidityPeriod: 3600},
			RefreshToken:    config.RefreshTokenConfig{ValidityPeriod: 86400},
			IDToken:         config.IDTokenConfig{ValidityPeriod: 3600},
			TokenValidation: config.TokenValidationConfig{ClockSkew: 60},
			SigningKeys: config.SigningKeyConfig{
				CacheTTL: 60, KeySize: 2048, RotationInterval: rotationInterval,
			},
		},
	})

	key, err := crypto.GenerateRandomKey()
	suite.Require().NoError(err)
	cryptoService, err := crypto.NewCryptoService(key)
	suite.Require().NoError(err)
	suite.cryptoService = cryptoService

	suite.store = newMemoryKeyStore()
	suite.now = time.Unix(1760000000, 0)
	suite.keyManager = NewKeyManager(suite.store, cryptoService,
		cache.NewCache[[]model.SigningKey]("SigningKeyCache", config.CacheConfig{})).(*keyManager)
	suite.keyManager.now = func() time.Time { return suite.now }
}

func (suite *KeyManagerTestSuite) TestInitializeGeneratesKey() {
	suite.Require().NoError(suite.keyManager.Initialize())

	active, err := suite.keyManager.GetActiveKey()
	suite.Require().NoError(err)
	assert.Equal(suite.T(), model.AlgorithmRS256, active.Algorithm)
	assert.NotNil(suite.T(), active.PrivateKey)
	assert.Len(suite.T(), suite.store.keys, 1)
	assert.NotContains(suite.T(), suite.store.keys[active.KID].PrivateKeyPEM, "PRIVATE KEY",
		"private key is stored encrypted")
}

func (suite *KeyManagerTestSuite) TestInitializeKeepsExistingKey() {
	suite.Require().NoError(suite.keyManager.Initialize())
	first, _ := suite.keyManager.GetActiveKey()

	suite.keyManager.keyCache.Clear()
	suite.Require().NoError(suite.keyManager.Initialize())
	second, _ := suite.keyManager.GetActiveKey()

	assert.Equal(suite.T(), first.KID, second.KID)
	assert.Len(suite.T(), suite.store.keys, 1)
}

func (suite *KeyManagerTestSuite) TestInitializeRotatesKeySealedWithAnotherCryptoKey() {
	suite.Require().NoError(suite.keyManager.Initialize())
	previous, err := suite.keyManager.GetActiveKey()
	suite.Require().NoError(err)

	// Same store, new process with a different crypto key.
	otherKey, err := crypto.GenerateRandomKey()
	suite.Require().NoError(err)
	otherCrypto, err := crypto.NewCryptoService(otherKey)
	suite.Require().NoError(err)
	restarted := NewKeyManager(suite.store, otherCrypto,
		cache.NewCache[[]model.SigningKey]("SigningKeyCache", config.CacheConfig{})).(*keyManager)
	restarted.now = func() time.Time { return suite.now }

	suite.Require().NoError(restarted.Initialize())

	active, err := restarted.GetActiveKey()
	suite.Require().NoError(err)
	assert.NotEqual(suite.T(), previous.KID, active.KID)
	assert.NotNil(suite.T(), active.PrivateKey)
	assert.Equal(suite.T(), model.KeyStatusRetired, suite.store.keys[previous.KID].Status)

	publicKey, err := restarted.GetVerificationKey(previous.KID)
	suite.Require().NoError(err)
	assert.True(suite.T(), previous.PublicKey.Equal(publicKey))
}

func (suite *KeyManagerTestSuite) TestInitializeImportsKeyFile() {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	suite.Require().NoError(err)
	keyFile := filepath.Join(suite.T().TempDir(), "signing.key")
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privateKey)})
	suite.Require().NoError(os.WriteFile(keyFile, pemBytes, 0o600))

	suite.initRuntime(config.SecurityConfig{SigningKeyFile: keyFile}, 0)
	suite.Require().NoError(suite.keyManager.Initialize())

	active, err := suite.keyManager.GetActiveKey()
	suite.Require().NoError(err)
	expectedKID, err := thumbprintKID(&privateKey.PublicKey)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), expectedKID, active.KID)
	assert.True(suite.T(), privateKey.Equal(active.PrivateKey))
}

func (suite *KeyManagerTestSuite) TestInitializeFailsOnUnreadableKeyFile() {
	suite.initRuntime(config.SecurityConfig{SigningKeyFile: "missing.pem"}, 0)
	suite.ErrorContains(suite.keyManager.Initialize(), "failed to read signing key file")
}

func (suite *KeyManagerTestSuite) TestGetActiveKeyWithoutKeys() {
	_, err := suite.keyManager.GetActiveKey()
	assert.ErrorIs(suite.T(), err, ErrNoActiveKey)
}

func (suite *KeyManagerTestSuite) TestRotateRetiresPreviousKey() {
	suite.Require().NoError(suite.keyManager.Initialize())
	old, _ := suite.keyManager.GetActiveKey()

	suite.now = suite.now.Add(time.Minute)
	rotated, err := suite.keyManager.Rotate()
	suite.Require().NoError(err)

	active, err := suite.keyManager.GetActiveKey()
	suite.Require().NoError(err)
	assert.Equal(suite.T(), rotated.KID, active.KID)

	keySet, err := suite.keyManager.GetKeySet()
	suite.Require().NoError(err)
	assert.Len(suite.T(), keySet, 2)
	for _, key := range keySet {
		assert.Nil(suite.T(), key.PrivateKey, "published keys carry no private material")
	}

	retired := suite.store.keys[old.KID]
	assert.Equal(suite.T(), model.KeyStatusRetired, retired.Status)
	assert.Equal(suite.T(), suite.now.Unix()+86400+60, retired.NotAfter)

	verificationKey, err := suite.keyManager.GetVerificationKey(old.KID)
	suite.Require().NoError(err)
	assert.True(suite.T(), old.PublicKey.Equal(verificationKey))
}

func (suite *KeyManagerTestSuite) TestRetiredKeyLapses() {
	suite.Require().NoError(suite.keyManager.Initialize())
	old, _ := suite.keyManager.GetActiveKey()
	_, err := suite.keyManager.Rotate()
	suite.Require().NoError(err)

	suite.now = suite.now.Add(25 * time.Hour)
	suite.keyManager.keyCache.Clear()

	_, err = suite.keyManager.GetVerificationKey(old.KID)
	assert.ErrorIs(suite.T(), err, ErrUnknownKey)
}

func (suite *KeyManagerTestSuite) TestUnknownKidReloadsOnce() {
	suite.Require().NoError(suite.keyManager.Initialize())

	_, err := suite.keyManager.GetVerificationKey("nope")
	assert.ErrorIs(suite.T(), err, ErrUnknownKey)

	suite.store.listErr = errors.New("must not reload again")
	_, err = suite.keyManager.GetVerificationKey("nope")
	assert.ErrorIs(suite.T(), err, ErrUnknownKey)
}

func (suite *KeyManagerTestSuite) TestRotationByAnotherInstanceIsPickedUp() {
	suite.Require().NoError(suite.keyManager.Initialize())

	other := NewKeyManager(suite.store, suite.cryptoService,
		cache.NewCache[[]model.SigningKey]("OtherSigningKeyCache", config.CacheConfig{})).(*keyManager)
	other.now = func() time.Time { return suite.now.Add(time.Second) }
	rotated, err := other.Rotate()
	suite.Require().NoError(err)

	key, err := suite.keyManager.GetVerificationKey(rotated.KID)
	suite.Require().NoError(err)
	assert.True(suite.T(), rotated.PublicKey.Equal(key))
}

func (suite *KeyManagerTestSuite) TestRotateIfDue() {
	suite.initRuntime(config.SecurityConfig{}, 3600)
	suite.Require().NoError(suite.keyManager.Initialize())
	first, _ := suite.keyManager.GetActiveKey()

	suite.keyManager.rotateIfDue()
	current, _ := suite.keyManager.GetActiveKey()
	assert.Equal(suite.T(), first.KID, current.KID, "key is younger than the interval")

	suite.now = suite.now.Add(2 * time.Hour)
	suite.keyManager.rotateIfDue()
	current, _ = suite.keyManager.GetActiveKey()
	assert.NotEqual(suite.T(), first.KID, current.KID)
}

func (suite *KeyManagerTestSuite) TestStartAutoRotationDisabled() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	suite.keyManager.StartAutoRotation(ctx)
	assert.Empty(suite.T(), suite.store.keys)
}
