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

package authz

import (
	"net/http"

	"github.com/asgardeo/tokenengine/internal/application"
	"github.com/asgardeo/tokenengine/internal/authn"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/authz/store"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/scope"
	"github.com/asgardeo/tokenengine/internal/system/database/provider"
	"github.com/asgardeo/tokenengine/internal/system/metrics"
	"github.com/asgardeo/tokenengine/internal/system/middleware"
)

// Initialize creates the authorization service and registers the authorization endpoint.
func Initialize(mux *http.ServeMux, dbProvider provider.DBProviderInterface,
	appService application.ApplicationServiceInterface, authenticator authn.AuthenticatorInterface,
	rateLimiter *middleware.RateLimiter) AuthorizationServiceInterface {
	service := NewAuthorizationService(store.NewAuthorizationStore(dbProvider), appService, authenticator,
		scope.NewAPIScopeValidator())
	registerRoutes(mux, newAuthorizeHandler(service), rateLimiter)
	return service
}

// registerRoutes binds the authorization endpoint. Credential submissions share the per-IP
// budget of the token endpoint.
func registerRoutes(mux *http.ServeMux, handler *authorizeHandler, rateLimiter *middleware.RateLimiter) {
	mux.HandleFunc("GET "+constants.OAuth2AuthorizationEndpoint, handler.HandleAuthorizeRequest)
	mux.HandleFunc(metrics.WithMetrics(rateLimiter.WithRateLimit(
		"POST "+constants.OAuth2AuthorizationEndpoint, handler.HandleAuthenticationCallback)))
}
