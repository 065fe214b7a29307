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

package session

import (
	"net/http"

	"github.com/asgardeo/tokenengine/internal/application"
	"github.com/asgardeo/tokenengine/internal/oauth/jwt"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenstore"
	"github.com/asgardeo/tokenengine/internal/oauth/session/store"
	"github.com/asgardeo/tokenengine/internal/system/database/provider"
)

// Initialize creates the session service and registers the logout endpoint.
func Initialize(mux *http.ServeMux, dbProvider provider.DBProviderInterface,
	tokenStore tokenstore.TokenStoreInterface, jwtService jwt.JWTServiceInterface,
	appService application.ApplicationServiceInterface) SessionServiceInterface {
	service := NewSessionService(store.NewSessionStore(dbProvider), tokenStore, jwtService, appService)
	handler := newLogoutHandler(service)

	mux.HandleFunc("GET "+constants.OAuth2LogoutEndpoint, handler.HandleLogout)
	mux.HandleFunc("POST "+constants.OAuth2LogoutEndpoint, handler.HandleLogout)
	return service
}
