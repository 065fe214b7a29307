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

// Package keymanager owns the RS256 signing keys: it imports or generates the first key, rotates
// keys, and serves the active key and the verification key set from a short lived cache.
package keymanager

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/asgardeo/tokenengine/internal/oauth/keymanager/model"
	"github.com/asgardeo/tokenengine/internal/oauth/keymanager/store"
	"github.com/asgardeo/tokenengine/internal/system/cache"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/crypto"
	"github.com/asgardeo/tokenengine/internal/system/log"
	"github.com/asgardeo/tokenengine/internal/system/utils"
)

const (
	loggerComponentName = "KeyManager"
	// activeKeyLifetime bounds the validity of a key that is never rotated.
	activeKeyLifetime = 10 * 365 * 24 * time.Hour
	// minReloadInterval limits how often an unknown kid may force a key set reload.
	minReloadInterval = 5 * time.Second
)

var keySetCacheKey = cache.CacheKey{Key: "keyset"}

var (
	// ErrNoActiveKey is returned when no active key is within its validity window.
	ErrNoActiveKey = errors.New("no active signing key")
	// ErrUnknownKey is returned when a kid does not resolve to a key that is still valid.
	ErrUnknownKey = errors.New("unknown signing key")
)

// KeyManagerInterface defines the signing key operations used by the token codec and the
// JWKS endpoint.
type KeyManagerInterface interface {
	GetActiveKey() (*model.SigningKey, error)
	GetKeySet() ([]model.SigningKey, error)
	GetVerificationKey(kid string) (*rsa.PublicKey, error)
	Rotate() (*model.SigningKey, error)
	Initialize() error
	StartAutoRotation(ctx context.Context)
}

type keyManager struct {
	store            store.SigningKeyStoreInterface
	cryptoService    crypto.CryptoServiceInterface
	keyCache         cache.CacheInterface[[]model.SigningKey]
	cacheTTL         time.Duration
	keySize          int
	rotationInterval time.Duration
	maxTokenLifetime time.Duration
	signingKeyFile   string
	now              func() time.Time
	reloadMu         sync.Mutex
	lastReload       time.Time
}

// NewKeyManager creates a key manager using the signing key settings of the server runtime.
func NewKeyManager(keyStore store.SigningKeyStoreInterface, cryptoService crypto.CryptoServiceInterface,
	keyCache cache.CacheInterface[[]model.SigningKey]) KeyManagerInterface {
	runtime := config.GetServerRuntime()
	oauthConfig := runtime.Config.OAuth

	keySize := oauthConfig.SigningKeys.KeySize
	if keySize == 0 {
		keySize = 2048
	}

	signingKeyFile := runtime.Config.Security.SigningKeyFile
	if signingKeyFile != "" && !filepath.IsAbs(signingKeyFile) {
		signingKeyFile = filepath.Join(runtime.ServerHome, signingKeyFile)
	}

	return &keyManager{
		store:            keyStore,
		cryptoService:    cryptoService,
		keyCache:         keyCache,
		cacheTTL:         time.Duration(oauthConfig.SigningKeys.CacheTTL) * time.Second,
		keySize:          keySize,
		rotationInterval: time.Duration(oauthConfig.SigningKeys.RotationInterval) * time.Second,
		maxTokenLifetime: maxTokenLifetime(oauthConfig),
		signingKeyFile:   signingKeyFile,
		now:              time.Now,
	}
}

// maxTokenLifetime is the longest time a token signed now can remain valid, including skew.
func maxTokenLifetime(oauthConfig config.OAuthConfig) time.Duration {
	longest := max(oauthConfig.JWT.ValidityPeriod, oauthConfig.RefreshToken.ValidityPeriod,
		oauthConfig.IDToken.ValidityPeriod)
	for _, client := range oauthConfig.Clients {
		longest = max(longest, client.AccessTokenValidity, client.RefreshTokenValidity)
	}
	return time.Duration(longest+oauthConfig.TokenValidation.ClockSkew) * time.Second
}

// Initialize makes sure an active key exists. An empty store is seeded from the configured PEM
// file when present, otherwise with a generated key.
func (km *keyManager) Initialize() error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	keys, err := km.loadKeySet()
	if err != nil {
		return err
	}
	if _, err := km.selectActiveKey(keys); err == nil {
		logger.Debug("Active signing key found", log.Int("keyCount", len(keys)))
		return nil
	}

	if len(keys) == 0 && km.signingKeyFile != "" {
		if err := km.importKeyFile(); err != nil {
			return err
		}
	} else {
		logger.Info("No active signing key found, generating a new key")
		if _, err := km.Rotate(); err != nil {
			return err
		}
	}

	km.keyCache.Delete(keySetCacheKey)
	if _, err := km.GetActiveKey(); err != nil {
		return err
	}
	return nil
}

// importKeyFile imports the configured PEM key as the first active key.
func (km *keyManager) importKeyFile() error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	data, err := os.ReadFile(filepath.Clean(km.signingKeyFile))
	if err != nil {
		return fmt.Errorf("failed to read signing key file: %w", err)
	}
	privateKey, err := parsePrivateKeyPEM(data)
	if err != nil {
		return fmt.Errorf("failed to parse signing key file: %w", err)
	}
	kid, err := thumbprintKID(&privateKey.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to derive key id: %w", err)
	}

	record, err := km.newRecord(kid, privateKey)
	if err != nil {
		return err
	}
	if err := km.store.InsertKey(*record); err != nil {
		return err
	}
	logger.Info("Imported signing key from file", log.String("kid", kid))
	return nil
}

// GetActiveKey returns the active key with the latest not-before inside its validity window.
func (km *keyManager) GetActiveKey() (*model.SigningKey, error) {
	keys, err := km.getKeys()
	if err != nil {
		return nil, err
	}
	return km.selectActiveKey(keys)
}

func (km *keyManager) selectActiveKey(keys []model.SigningKey) (*model.SigningKey, error) {
	now := km.now().Unix()
	var active *model.SigningKey
	for i := range keys {
		key := &keys[i]
		if key.Status != model.KeyStatusActive || key.PrivateKey == nil ||
			key.NotBefore > now || key.NotAfter <= now {
			continue
		}
		if active == nil || key.NotBefore > active.NotBefore {
			active = key
		}
	}
	if active == nil {
		return nil, ErrNoActiveKey
	}
	return active, nil
}

// GetKeySet returns the public part of every key that has not lapsed.
func (km *keyManager) GetKeySet() ([]model.SigningKey, error) {
	keys, err := km.getKeys()
	if err != nil {
		return nil, err
	}
	now := km.now().Unix()
	keySet := make([]model.SigningKey, 0, len(keys))
	for _, key := range keys {
		if key.NotAfter <= now {
			continue
		}
		key.PrivateKey = nil
		keySet = append(keySet, key)
	}
	return keySet, nil
}

// GetVerificationKey resolves a kid. A miss reloads the key set so keys rotated by another
// instance are picked up before the cache expires.
func (km *keyManager) GetVerificationKey(kid string) (*rsa.PublicKey, error) {
	keys, err := km.getKeys()
	if err != nil {
		return nil, err
	}
	if key := km.findKey(keys, kid); key != nil {
		return key, nil
	}

	if !km.allowReload() {
		return nil, ErrUnknownKey
	}
	keys, err = km.loadKeySet()
	if err != nil {
		return nil, err
	}
	if key := km.findKey(keys, kid); key != nil {
		return key, nil
	}
	return nil, ErrUnknownKey
}

func (km *keyManager) findKey(keys []model.SigningKey, kid string) *rsa.PublicKey {
	now := km.now().Unix()
	for _, key := range keys {
		if key.KID == kid && key.NotAfter > now {
			return key.PublicKey
		}
	}
	return nil
}

func (km *keyManager) allowReload() bool {
	km.reloadMu.Lock()
	defer km.reloadMu.Unlock()
	now := km.now()
	if now.Sub(km.lastReload) < minReloadInterval {
		return false
	}
	km.lastReload = now
	return true
}

// Rotate generates a new active key and retires the previous ones. Retired keys stay valid for
// the longest token lifetime so tokens already issued keep verifying.
func (km *keyManager) Rotate() (*model.SigningKey, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	privateKey, err := rsa.GenerateKey(rand.Reader, km.keySize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}
	record, err := km.newRecord(utils.GenerateUUID(), privateKey)
	if err != nil {
		return nil, err
	}

	retiredNotAfter := km.now().Add(km.maxTokenLifetime).Unix()
	if err := km.store.RotateKeys(*record, retiredNotAfter); err != nil {
		return nil, err
	}
	km.keyCache.Delete(keySetCacheKey)

	logger.Info("Signing key rotated", log.String("kid", record.KID))
	return &model.SigningKey{
		KID:        record.KID,
		Algorithm:  record.Algorithm,
		Status:     record.Status,
		PrivateKey: privateKey,
		PublicKey:  &privateKey.PublicKey,
		NotBefore:  record.NotBefore,
		NotAfter:   record.NotAfter,
		CreatedAt:  record.CreatedAt,
	}, nil
}

func (km *keyManager) newRecord(kid string, privateKey *rsa.PrivateKey) (*model.SigningKeyRecord, error) {
	privatePEM, err := encodePrivateKeyPEM(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encode private key: %w", err)
	}
	encryptedPrivatePEM, err := km.cryptoService.EncryptString(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt private key: %w", err)
	}
	publicPEM, err := encodePublicKeyPEM(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encode public key: %w", err)
	}

	now := km.now()
	return &model.SigningKeyRecord{
		KID:           kid,
		Algorithm:     model.AlgorithmRS256,
		Status:        model.KeyStatusActive,
		PrivateKeyPEM: encryptedPrivatePEM,
		PublicKeyPEM:  publicPEM,
		NotBefore:     now.Unix(),
		NotAfter:      now.Add(activeKeyLifetime).Unix(),
		CreatedAt:     now.Unix(),
	}, nil
}

// StartAutoRotation rotates the active key whenever it is older than the configured rotation
// interval and deletes lapsed keys. It returns immediately when rotation is disabled.
func (km *keyManager) StartAutoRotation(ctx context.Context) {
	if km.rotationInterval <= 0 {
		return
	}
	checkInterval := min(km.rotationInterval/10, time.Hour)
	checkInterval = max(checkInterval, time.Second)

	go func() {
		ticker := time.NewTicker(checkInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				km.rotateIfDue()
			}
		}
	}()
}

func (km *keyManager) rotateIfDue() {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	keys, err := km.loadKeySet()
	if err != nil {
		logger.Error("Failed to load signing keys for rotation", log.Error(err))
		return
	}
	active, err := km.selectActiveKey(keys)
	if err == nil && km.now().Sub(time.Unix(active.CreatedAt, 0)) < km.rotationInterval {
		return
	}
	if _, err := km.Rotate(); err != nil {
		logger.Error("Automatic signing key rotation failed", log.Error(err))
		return
	}
	if deleted, err := km.store.DeleteLapsedKeys(km.now().Unix()); err != nil {
		logger.Warn("Failed to delete lapsed signing keys", log.Error(err))
	} else if deleted > 0 {
		logger.Debug("Deleted lapsed signing keys", log.Int64("count", deleted))
	}
}

// getKeys returns the cached key set, loading it on a miss.
func (km *keyManager) getKeys() ([]model.SigningKey, error) {
	if keys, ok := km.keyCache.Get(keySetCacheKey); ok {
		return keys, nil
	}
	return km.loadKeySet()
}

// loadKeySet reads the keys from the store and refreshes the cache.
func (km *keyManager) loadKeySet() ([]model.SigningKey, error) {
	records, err := km.store.ListKeys(km.now().Unix())
	if err != nil {
		return nil, err
	}

	keys := make([]model.SigningKey, 0, len(records))
	for _, record := range records {
		key, err := km.loadKey(record)
		if err != nil {
			return nil, fmt.Errorf("failed to load signing key %s: %w", record.KID, err)
		}
		keys = append(keys, *key)
	}

	if km.cacheTTL > 0 {
		km.keyCache.SetWithTTL(keySetCacheKey, keys, km.cacheTTL)
	}
	return keys, nil
}

// loadKey parses a stored key. The private key is decrypted only for active keys.
func (km *keyManager) loadKey(record model.SigningKeyRecord) (*model.SigningKey, error) {
	publicKey, err := parsePublicKeyPEM([]byte(record.PublicKeyPEM))
	if err != nil {
		return nil, err
	}
	key := &model.SigningKey{
		KID:       record.KID,
		Algorithm: record.Algorithm,
		Status:    record.Status,
		PublicKey: publicKey,
		NotBefore: record.NotBefore,
		NotAfter:  record.NotAfter,
		CreatedAt: record.CreatedAt,
	}
	if record.Status != model.KeyStatusActive {
		return key, nil
	}

	// A key sealed with another crypto key can still verify but no longer sign. Leaving the
	// private key unset keeps it out of selectActiveKey, so Initialize rotates in a fresh key.
	privatePEM, err := km.cryptoService.DecryptString(record.PrivateKeyPEM)
	if err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).Warn(
			"Cannot decrypt active signing key, using it for verification only",
			log.String("kid", record.KID), log.Error(err))
		return key, nil
	}
	privateKey, err := parsePrivateKeyPEM([]byte(privatePEM))
	if err != nil {
		return nil, err
	}
	key.PrivateKey = privateKey
	return key, nil
}
