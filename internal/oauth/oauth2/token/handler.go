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

// Package token provides the handler for OAuth 2.0 token requests.
package token

import (
	"errors"
	"net/http"

	"github.com/asgardeo/tokenengine/internal/application"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/granthandlers"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
	oauthutils "github.com/asgardeo/tokenengine/internal/oauth/oauth2/utils"
	"github.com/asgardeo/tokenengine/internal/oauth/scope"
	"github.com/asgardeo/tokenengine/internal/system/log"
	"github.com/asgardeo/tokenengine/internal/system/metrics"
	"github.com/asgardeo/tokenengine/internal/system/utils"
)

// tokenHandler handles OAuth 2.0 token requests.
type tokenHandler struct {
	appService    application.ApplicationServiceInterface
	grantProvider granthandlers.GrantHandlerProviderInterface
}

func newTokenHandler(appService application.ApplicationServiceInterface,
	grantProvider granthandlers.GrantHandlerProviderInterface) *tokenHandler {
	return &tokenHandler{
		appService:    appService,
		grantProvider: grantProvider,
	}
}

// HandleTokenRequest authenticates the client and delegates to the handler of the grant type.
func (th *tokenHandler) HandleTokenRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenHandler"))

	if err := r.ParseForm(); err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Failed to parse request body",
			http.StatusBadRequest, nil)
		return
	}

	grantType := r.PostForm.Get(constants.RequestParamGrantType)
	if grantType == "" {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Missing grant_type parameter",
			http.StatusBadRequest, nil)
		return
	}
	grantHandler, err := th.grantProvider.GetGrantHandler(constants.GrantType(grantType))
	if err != nil {
		if errors.Is(err, granthandlers.ErrUnsupportedGrantType) {
			utils.WriteJSONError(w, constants.ErrorUnsupportedGrantType, "Unsupported grant type",
				http.StatusBadRequest, nil)
			return
		}
		logger.Error("Failed to resolve the grant handler", log.Error(err))
		utils.WriteJSONError(w, constants.ErrorServerError, "Failed to process the token request",
			http.StatusInternalServerError, nil)
		return
	}

	oauthApp, authErr := oauthutils.AuthenticateClient(r, th.appService)
	if authErr != nil {
		oauthutils.WriteClientAuthError(w, authErr)
		return
	}
	if !oauthApp.IsAllowedGrantType(constants.GrantType(grantType)) {
		utils.WriteJSONError(w, constants.ErrorUnauthorizedClient,
			"The authenticated client is not authorized to use this grant type", http.StatusBadRequest, nil)
		return
	}

	tokenRequest := &model.TokenRequest{
		GrantType:    grantType,
		ClientID:     oauthApp.ClientID,
		Scope:        r.PostForm.Get(constants.RequestParamScope),
		Username:     r.PostForm.Get(constants.RequestParamUsername),
		Password:     r.PostForm.Get(constants.RequestParamPassword),
		RefreshToken: r.PostForm.Get(constants.RequestParamRefreshToken),
		CodeVerifier: r.PostForm.Get(constants.RequestParamCodeVerifier),
		Code:         r.PostForm.Get(constants.RequestParamCode),
		RedirectURI:  r.PostForm.Get(constants.RequestParamRedirectURI),
	}

	if errResp := grantHandler.ValidateGrant(tokenRequest, oauthApp); errResp != nil {
		oauthutils.WriteOAuthError(w, errResp, nil)
		return
	}
	tokens, errResp := grantHandler.HandleGrant(tokenRequest, oauthApp)
	if errResp != nil {
		oauthutils.WriteOAuthError(w, errResp, nil)
		return
	}

	recordIssuedTokens(grantType, tokens)
	logger.Debug("Token issued", log.String(log.LoggerKeyClientID, oauthApp.ClientID),
		log.String("grantType", grantType))

	utils.SetNoStoreHeaders(w)
	utils.WriteJSON(w, http.StatusOK, buildTokenResponse(tokens))
}

func buildTokenResponse(tokens *model.TokenResponseDTO) model.TokenResponse {
	return model.TokenResponse{
		AccessToken:  tokens.AccessToken.Token,
		IDToken:      tokens.IDToken.Token,
		RefreshToken: tokens.RefreshToken.Token,
		TokenType:    constants.TokenTypeBearer,
		ExpiresIn:    tokens.AccessToken.ExpiresIn,
		Scope:        scope.JoinScopes(tokens.AccessToken.Scopes),
	}
}

func recordIssuedTokens(grantType string, tokens *model.TokenResponseDTO) {
	metrics.TokensIssuedTotal.WithLabelValues(grantType, "access_token").Inc()
	if tokens.RefreshToken.Token != "" {
		metrics.TokensIssuedTotal.WithLabelValues(grantType, "refresh_token").Inc()
	}
	if tokens.IDToken.Token != "" {
		metrics.TokensIssuedTotal.WithLabelValues(grantType, "id_token").Inc()
	}
}
