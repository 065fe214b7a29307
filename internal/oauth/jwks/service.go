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

// Package jwks publishes the public signing keys as a JSON Web Key Set.
package jwks

import (
	"encoding/base64"
	"math/big"

	"github.com/asgardeo/tokenengine/internal/oauth/keymanager"
	"github.com/asgardeo/tokenengine/internal/system/error/serviceerror"
	"github.com/asgardeo/tokenengine/internal/system/log"
)

// JWKSServiceInterface defines the operations for building the JWKS document.
type JWKSServiceInterface interface {
	GetJWKS() (*JWKSResponse, *serviceerror.ServiceError)
}

type jwksService struct {
	keyManager keymanager.KeyManagerInterface
}

// NewJWKSService creates a JWKS service over the key manager.
func NewJWKSService(keyManager keymanager.KeyManagerInterface) JWKSServiceInterface {
	return &jwksService{keyManager: keyManager}
}

// GetJWKS returns every key that may still verify an issued token, active and retired.
func (s *jwksService) GetJWKS() (*JWKSResponse, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "JWKSService"))

	keys, err := s.keyManager.GetKeySet()
	if err != nil {
		logger.Error("Failed to load the signing key set", log.Error(err))
		return nil, &ErrorWhileRetrievingKeySet
	}

	response := &JWKSResponse{Keys: make([]JWK, 0, len(keys))}
	for _, key := range keys {
		if key.PublicKey == nil {
			logger.Warn("Skipping signing key without public material", log.String("kid", key.KID))
			continue
		}
		response.Keys = append(response.Keys, JWK{
			Kty: "RSA",
			Use: "sig",
			Alg: key.Algorithm,
			Kid: key.KID,
			N:   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
		})
	}
	return response, nil
}
