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
	"github.com/asgardeo/tokenengine/internal/oauth/keymanager/model"
	"github.com/asgardeo/tokenengine/internal/oauth/keymanager/store"
	"github.com/asgardeo/tokenengine/internal/system/cache"
	"github.com/asgardeo/tokenengine/internal/system/crypto"
	"github.com/asgardeo/tokenengine/internal/system/database/provider"
)

// Initialize creates the key manager and makes sure an active signing key exists.
func Initialize(dbProvider provider.DBProviderInterface,
	cryptoService crypto.CryptoServiceInterface) (KeyManagerInterface, error) {
	keyManager := NewKeyManager(store.NewSigningKeyStore(dbProvider), cryptoService,
		cache.GetCache[[]model.SigningKey]("SigningKeyCache"))
	if err := keyManager.Initialize(); err != nil {
		return nil, err
	}
	return keyManager, nil
}
