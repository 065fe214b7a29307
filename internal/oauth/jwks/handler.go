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

package jwks

import (
	"fmt"
	"net/http"

	"github.com/asgardeo/tokenengine/internal/oauth/keymanager"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/system/config"
	sysconstants "github.com/asgardeo/tokenengine/internal/system/constants"
	"github.com/asgardeo/tokenengine/internal/system/middleware"
	"github.com/asgardeo/tokenengine/internal/system/utils"
)

type jwksHandler struct {
	service JWKSServiceInterface
}

// Initialize registers the JWKS route on the given mux.
func Initialize(mux *http.ServeMux, keyManager keymanager.KeyManagerInterface) JWKSServiceInterface {
	service := NewJWKSService(keyManager)
	handler := &jwksHandler{service: service}

	opts := middleware.CORSOptions{
		AllowedMethods: "GET, OPTIONS",
		AllowedHeaders: "Content-Type",
	}
	mux.HandleFunc(middleware.WithCORS("GET "+constants.OAuth2JWKSEndpoint, handler.HandleJWKSRequest, opts))
	mux.HandleFunc("OPTIONS "+constants.OAuth2JWKSEndpoint, middleware.PreflightHandler(opts))
	return service
}

// HandleJWKSRequest serves the key set. Clients may cache it for as long as the server caches it.
func (h *jwksHandler) HandleJWKSRequest(w http.ResponseWriter, r *http.Request) {
	response, svcErr := h.service.GetJWKS()
	if svcErr != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, svcErr)
		return
	}

	if ttl := config.GetServerRuntime().Config.OAuth.SigningKeys.CacheTTL; ttl > 0 {
		w.Header().Set(sysconstants.CacheControlHeaderName, fmt.Sprintf("public, max-age=%d", ttl))
	}
	utils.WriteJSON(w, http.StatusOK, response)
}
