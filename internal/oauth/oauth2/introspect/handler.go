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

package introspect

import (
	"net/http"

	"github.com/asgardeo/tokenengine/internal/application"
	"github.com/asgardeo/tokenengine/internal/oauth/jwt"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenstore"
	oauthutils "github.com/asgardeo/tokenengine/internal/oauth/oauth2/utils"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/validator"
	"github.com/asgardeo/tokenengine/internal/system/metrics"
	"github.com/asgardeo/tokenengine/internal/system/middleware"
	"github.com/asgardeo/tokenengine/internal/system/utils"
)

// TokenIntrospectionHandler handles OAuth 2.0 token introspection requests.
type TokenIntrospectionHandler struct {
	service    TokenIntrospectionServiceInterface
	appService application.ApplicationServiceInterface
}

// NewTokenIntrospectionHandler creates a new token introspection handler.
func NewTokenIntrospectionHandler(introspectionService TokenIntrospectionServiceInterface,
	appService application.ApplicationServiceInterface) *TokenIntrospectionHandler {
	return &TokenIntrospectionHandler{
		service:    introspectionService,
		appService: appService,
	}
}

// Initialize creates the introspection service and registers the introspection endpoint.
func Initialize(mux *http.ServeMux, appService application.ApplicationServiceInterface,
	jwtService jwt.JWTServiceInterface, tokenStore tokenstore.TokenStoreInterface,
	tokenValidator validator.TokenValidatorInterface) TokenIntrospectionServiceInterface {
	service := NewTokenIntrospectionService(jwtService, tokenStore, tokenValidator)
	handler := NewTokenIntrospectionHandler(service, appService)

	opts := middleware.CORSOptions{
		AllowedMethods: "POST, OPTIONS",
		AllowedHeaders: "Content-Type, Authorization",
	}
	mux.HandleFunc(metrics.WithMetrics(middleware.WithCORS("POST "+constants.OAuth2IntrospectionEndpoint,
		handler.HandleIntrospect, opts)))
	mux.HandleFunc("OPTIONS "+constants.OAuth2IntrospectionEndpoint, middleware.PreflightHandler(opts))
	return service
}

// HandleIntrospect handles token introspection requests from authenticated clients.
func (h *TokenIntrospectionHandler) HandleIntrospect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Failed to decode request body",
			http.StatusBadRequest, nil)
		return
	}

	if _, authErr := oauthutils.AuthenticateClient(r, h.appService); authErr != nil {
		oauthutils.WriteClientAuthError(w, authErr)
		return
	}

	token := r.PostForm.Get(constants.RequestParamToken)
	if token == "" {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Token parameter is required",
			http.StatusBadRequest, nil)
		return
	}

	response := h.service.IntrospectToken(token, r.PostForm.Get(constants.RequestParamTokenTypeHint))
	utils.SetNoStoreHeaders(w)
	utils.WriteJSON(w, http.StatusOK, response)
}
