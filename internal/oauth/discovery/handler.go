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

package discovery

import (
	"net/http"

	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/system/middleware"
	"github.com/asgardeo/tokenengine/internal/system/utils"
)

type discoveryHandler struct {
	service DiscoveryServiceInterface
}

// Initialize registers the discovery route on the given mux.
func Initialize(mux *http.ServeMux) DiscoveryServiceInterface {
	service := NewDiscoveryService()
	handler := &discoveryHandler{service: service}

	opts := middleware.CORSOptions{AllowedMethods: "GET, OPTIONS", AllowedHeaders: "Content-Type"}
	mux.HandleFunc(middleware.WithCORS("GET "+constants.OAuth2DiscoveryEndpoint,
		handler.HandleOpenIDConfigurationRequest, opts))
	mux.HandleFunc("OPTIONS "+constants.OAuth2DiscoveryEndpoint, middleware.PreflightHandler(opts))
	return service
}

// HandleOpenIDConfigurationRequest serves the provider metadata.
func (h *discoveryHandler) HandleOpenIDConfigurationRequest(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.service.GetOpenIDConfiguration())
}
