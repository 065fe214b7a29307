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

package userinfo

import (
	"fmt"
	"net/http"

	"github.com/asgardeo/tokenengine/internal/authn"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
	oauthutils "github.com/asgardeo/tokenengine/internal/oauth/oauth2/utils"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/validator"
	sysconstants "github.com/asgardeo/tokenengine/internal/system/constants"
	"github.com/asgardeo/tokenengine/internal/system/metrics"
	"github.com/asgardeo/tokenengine/internal/system/middleware"
	"github.com/asgardeo/tokenengine/internal/system/utils"
)

type userInfoHandler struct {
	service UserInfoServiceInterface
}

// Initialize creates the userinfo service and registers the userinfo endpoint.
func Initialize(mux *http.ServeMux, tokenValidator validator.TokenValidatorInterface,
	authenticator authn.AuthenticatorInterface) UserInfoServiceInterface {
	service := NewUserInfoService(tokenValidator, authenticator)
	handler := &userInfoHandler{service: service}

	opts := middleware.CORSOptions{
		AllowedMethods: "GET, POST, OPTIONS",
		AllowedHeaders: "Authorization",
	}
	mux.HandleFunc(metrics.WithMetrics(middleware.WithCORS("GET "+constants.OAuth2UserInfoEndpoint,
		handler.HandleUserInfoRequest, opts)))
	mux.HandleFunc(metrics.WithMetrics(middleware.WithCORS("POST "+constants.OAuth2UserInfoEndpoint,
		handler.HandleUserInfoRequest, opts)))
	mux.HandleFunc("OPTIONS "+constants.OAuth2UserInfoEndpoint, middleware.PreflightHandler(opts))
	return service
}

// HandleUserInfoRequest returns the claims of the bearer token's subject. Errors carry an
// RFC 6750 challenge.
func (h *userInfoHandler) HandleUserInfoRequest(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.ExtractBearerToken(r)
	if !ok {
		w.Header().Set(sysconstants.WWWAuthenticateHeaderName, "Bearer")
		utils.WriteJSONError(w, constants.ErrorInvalidToken, "A bearer access token is required",
			http.StatusUnauthorized, nil)
		return
	}

	response, errResp := h.service.GetUserInfo(token)
	if errResp != nil {
		writeBearerError(w, errResp)
		return
	}

	utils.SetNoStoreHeaders(w)
	utils.WriteJSON(w, http.StatusOK, response)
}

func writeBearerError(w http.ResponseWriter, errResp *model.ErrorResponse) {
	switch errResp.Error {
	case constants.ErrorInvalidToken:
		w.Header().Set(sysconstants.WWWAuthenticateHeaderName,
			fmt.Sprintf(`Bearer error="%s", error_description="%s"`, errResp.Error, errResp.ErrorDescription))
	case constants.ErrorInsufficientScope:
		w.Header().Set(sysconstants.WWWAuthenticateHeaderName,
			fmt.Sprintf(`Bearer error="%s", scope="%s"`, errResp.Error, constants.ScopeOpenID))
	}
	oauthutils.WriteOAuthError(w, errResp, nil)
}
