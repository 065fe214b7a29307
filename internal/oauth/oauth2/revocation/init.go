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

package revocation

import (
	"net/http"

	"github.com/asgardeo/tokenengine/internal/application"
	"github.com/asgardeo/tokenengine/internal/oauth/jwt"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenstore"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/validator"
	"github.com/asgardeo/tokenengine/internal/system/metrics"
	"github.com/asgardeo/tokenengine/internal/system/middleware"
)

// Initialize creates the revocation service and registers the revocation endpoint.
func Initialize(mux *http.ServeMux, appService application.ApplicationServiceInterface,
	jwtService jwt.JWTServiceInterface, tokenStore tokenstore.TokenStoreInterface,
	tokenValidator validator.TokenValidatorInterface) RevocationServiceInterface {
	service := NewRevocationService(jwtService, tokenStore, tokenValidator)
	handler := &revocationHandler{service: service, appService: appService}

	opts := middleware.CORSOptions{
		AllowedMethods: "POST, OPTIONS",
		AllowedHeaders: "Content-Type, Authorization",
	}
	mux.HandleFunc(metrics.WithMetrics(middleware.WithCORS("POST "+constants.OAuth2RevokeEndpoint,
		handler.HandleRevocationRequest, opts)))
	mux.HandleFunc("OPTIONS "+constants.OAuth2RevokeEndpoint, middleware.PreflightHandler(opts))
	return service
}
