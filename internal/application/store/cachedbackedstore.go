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

package store

import (
	"github.com/asgardeo/tokenengine/internal/application/model"
	"github.com/asgardeo/tokenengine/internal/system/cache"
	"github.com/asgardeo/tokenengine/internal/system/log"
)

// CachedBackedApplicationStore is the implementation of ApplicationStoreInterface that uses caching.
type CachedBackedApplicationStore struct {
	OAuthAppCache cache.CacheInterface[*model.OAuthApplication]
	Store         ApplicationStoreInterface
}

// NewCachedBackedApplicationStore creates a new instance of CachedBackedApplicationStore.
func NewCachedBackedApplicationStore(store ApplicationStoreInterface,
	oauthAppCache cache.CacheInterface[*model.OAuthApplication]) ApplicationStoreInterface {
	return &CachedBackedApplicationStore{
		OAuthAppCache: oauthAppCache,
		Store:         store,
	}
}

// GetOAuthApplication retrieves an OAuth application by client ID, using cache if available.
func (as *CachedBackedApplicationStore) GetOAuthApplication(clientID string) (*model.OAuthApplication, error) {
	cacheKey := cache.CacheKey{Key: clientID}
	if cachedApp, ok := as.OAuthAppCache.Get(cacheKey); ok {
		return cachedApp, nil
	}

	oauthApp, err := as.Store.GetOAuthApplication(clientID)
	if err != nil || oauthApp == nil {
		return oauthApp, err
	}
	as.OAuthAppCache.Set(cacheKey, oauthApp)
	return oauthApp, nil
}

// UpsertOAuthApplication writes through to the store and drops the cached copy.
func (as *CachedBackedApplicationStore) UpsertOAuthApplication(app model.OAuthApplication) error {
	if err := as.Store.UpsertOAuthApplication(app); err != nil {
		return err
	}
	as.OAuthAppCache.Delete(cache.CacheKey{Key: app.ClientID})
	log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CachedBackedApplicationStore")).
		Debug("Evicted client from cache", log.String(log.LoggerKeyClientID, app.ClientID))
	return nil
}
