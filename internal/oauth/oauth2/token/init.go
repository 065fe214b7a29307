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

package token

import (
	"net/http"

	"github.com/asgardeo/tokenengine/internal/application"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/granthandlers"
	"github.com/asgardeo/tokenengine/internal/system/metrics"
	"github.com/asgardeo/tokenengine/internal/system/middleware"
)

// Initialize registers the token endpoint. Requests are rate limited per client IP.
func Initialize(mux *http.ServeMux, appService application.ApplicationServiceInterface,
	grantProvider granthandlers.GrantHandlerProviderInterface, rateLimiter *middleware.RateLimiter) {
	handler := newTokenHandler(appService, grantProvider)

	opts := middleware.CORSOptions{
		AllowedMethods: "POST, OPTIONS",
		AllowedHeaders: "Content-Type, Authorization",
	}
	mux.HandleFunc(metrics.WithMetrics(rateLimiter.WithRateLimit(middleware.WithCORS(
		"POST "+constants.OAuth2TokenEndpoint, handler.HandleTokenRequest, opts))))
	mux.HandleFunc("OPTIONS "+constants.OAuth2TokenEndpoint, middleware.PreflightHandler(opts))
}
