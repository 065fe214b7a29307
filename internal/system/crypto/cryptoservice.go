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

// Package crypto provides symmetric encryption of secrets stored at rest.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/log"
)

// Algorithm represents supported encryption algorithms.
type Algorithm string

// AESGCM represents the AES-256-GCM algorithm.
const AESGCM Algorithm = "AES-GCM"

const keySize = 32

// ErrUnsupportedAlgorithm is returned when decrypting data sealed with an unknown algorithm.
var ErrUnsupportedAlgorithm = errors.New("unsupported encryption algorithm")

// EncryptedData is the serialized envelope of an encrypted value.
type EncryptedData struct {
	Algorithm  Algorithm `json:"alg"`
	Ciphertext string    `json:"ct"`
}

// CryptoServiceInterface defines the encryption operations available to other packages.
type CryptoServiceInterface interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(encodedData string) ([]byte, error)
	EncryptString(plaintext string) (string, error)
	DecryptString(ciphertext string) (string, error)
}

// CryptoService provides AES-GCM encryption with a single server key.
type CryptoService struct {
	key []byte
}

var (
	instance *CryptoService
	once     sync.Once
)

// GetCryptoService returns the singleton CryptoService built from the server configuration.
func GetCryptoService() CryptoServiceInterface {
	once.Do(func() {
		var err error
		instance, err = initCryptoService(config.GetServerRuntime().Config.Crypto.Key)
		if err != nil {
			log.GetLogger().Fatal("Failed to initialize crypto service", log.Error(err))
		}
	})
	return instance
}

// initCryptoService decodes the configured key. Without one, an ephemeral key is generated,
// which makes data encrypted by a previous process unreadable.
func initCryptoService(encodedKey string) (*CryptoService, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CryptoService"))

	if encodedKey != "" {
		key, err := base64.StdEncoding.DecodeString(encodedKey)
		if err != nil || len(key) != keySize {
			return nil, fmt.Errorf("crypto key must be %d bytes encoded in base64", keySize)
		}
		return NewCryptoService(key)
	}

	logger.Warn("No crypto key configured, generating an ephemeral key. " +
		"Signing keys and TOTP secrets stored by a previous process cannot be decrypted; signing keys are rotated on start")
	key, err := GenerateRandomKey()
	if err != nil {
		return nil, err
	}
	return NewCryptoService(key)
}

// NewCryptoService creates a new instance of CryptoService with the provided key.
func NewCryptoService(key []byte) (*CryptoService, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("invalid key size %d, expected %d", len(key), keySize)
	}
	return &CryptoService{key: key}, nil
}

// GenerateRandomKey generates a random 32-byte key suitable for AES-256.
func GenerateRandomKey() ([]byte, error) {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

// Encrypt seals plaintext with a random nonce and returns the serialized envelope.
func (cs *CryptoService) Encrypt(plaintext []byte) (string, error) {
	aead, err := cs.newAEAD()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	data, err := json.Marshal(EncryptedData{
		Algorithm:  AESGCM,
		Ciphertext: base64.StdEncoding.EncodeToString(aead.Seal(nonce, nonce, plaintext, nil)),
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decrypt opens an envelope produced by Encrypt.
func (cs *CryptoService) Decrypt(encodedData string) ([]byte, error) {
	var data EncryptedData
	if err := json.Unmarshal([]byte(encodedData), &data); err != nil {
		return nil, fmt.Errorf("failed to parse encrypted data: %w", err)
	}
	if data.Algorithm != AESGCM {
		return nil, ErrUnsupportedAlgorithm
	}

	sealed, err := base64.StdEncoding.DecodeString(data.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aead, err := cs.newAEAD()
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, nil)
}

// EncryptString is a convenience method to encrypt string data.
func (cs *CryptoService) EncryptString(plaintext string) (string, error) {
	return cs.Encrypt([]byte(plaintext))
}

// DecryptString is a convenience method to decrypt to string data.
func (cs *CryptoService) DecryptString(ciphertext string) (string, error) {
	plaintext, err := cs.Decrypt(ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func (cs *CryptoService) newAEAD() (cipher.AEAD, error) {
	block, err := aes.NewCipher(cs.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
