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

package granthandlers

import (
	"errors"
	"time"

	appmodel "github.com/asgardeo/tokenengine/internal/application/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/authz"
	authzconstants "github.com/asgardeo/tokenengine/internal/oauth/oauth2/authz/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/pkce"
	"github.com/asgardeo/tokenengine/internal/system/log"
)

// authorizationCodeGrantHandler handles the authorization code grant type.
type authorizationCodeGrantHandler struct {
	authzService authz.AuthorizationServiceInterface
	issuer       *tokenIssuer
	now          func() time.Time
}

func newAuthorizationCodeGrantHandler(authzService authz.AuthorizationServiceInterface,
	issuer *tokenIssuer) GrantHandlerInterface {
	return &authorizationCodeGrantHandler{
		authzService: authzService,
		issuer:       issuer,
		now:          time.Now,
	}
}

// ValidateGrant validates the authorization code grant request.
func (h *authorizationCodeGrantHandler) ValidateGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication) *model.ErrorResponse {
	if tokenRequest.GrantType != string(constants.GrantTypeAuthorizationCode) {
		return &model.ErrorResponse{
			Error:            constants.ErrorUnsupportedGrantType,
			ErrorDescription: "Unsupported grant type",
		}
	}
	if tokenRequest.Code == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Authorization code is required",
		}
	}
	if tokenRequest.RedirectURI == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Redirect URI is required",
		}
	}
	return nil
}

// HandleGrant exchanges an authorization code for tokens.
func (h *authorizationCodeGrantHandler) HandleGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication) (*model.TokenResponseDTO, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizationCodeGrantHandler"),
		log.String(log.LoggerKeyClientID, oauthApp.ClientID))

	authCode, err := h.authzService.GetAuthorizationCode(tokenRequest.Code)
	if err != nil {
		if errors.Is(err, authzconstants.ErrAuthorizationCodeNotFound) {
			return nil, invalidGrant("Invalid authorization code")
		}
		logger.Error("Failed to retrieve the authorization code", log.Error(err))
		return nil, serverError("Failed to process the authorization code")
	}
	if authCode.State != authzconstants.AuthCodeStateActive {
		logger.Debug("Authorization code has already been used")
		return nil, invalidGrant("Invalid authorization code")
	}
	if authCode.ExpiresAt <= h.now().Unix() {
		return nil, invalidGrant("Expired authorization code")
	}

	if authCode.ClientID != oauthApp.ClientID {
		logger.Debug("Authorization code was issued to a different client")
		return nil, invalidGrant("Invalid authorization code")
	}
	if authCode.RedirectURI != tokenRequest.RedirectURI {
		return nil, invalidGrant("Redirect URI does not match the authorization request")
	}

	if authCode.CodeChallenge != "" {
		if tokenRequest.CodeVerifier == "" {
			return nil, invalidGrant("Code verifier is required")
		}
		if err := pkce.ValidatePKCE(authCode.CodeChallenge, authCode.CodeChallengeMethod,
			tokenRequest.CodeVerifier); err != nil {
			logger.Debug("PKCE validation failed", log.Error(err))
			return nil, invalidGrant("Invalid code verifier")
		}
	} else if tokenRequest.CodeVerifier != "" {
		return nil, invalidGrant("Code verifier was sent but no code challenge was registered")
	}

	if err := h.authzService.ConsumeAuthorizationCode(tokenRequest.Code); err != nil {
		if errors.Is(err, authzconstants.ErrStateTransitionFailed) {
			logger.Debug("Authorization code was consumed by a concurrent request")
			return nil, invalidGrant("Invalid authorization code")
		}
		logger.Error("Failed to consume the authorization code", log.Error(err))
		return nil, serverError("Failed to process the authorization code")
	}

	return h.issuer.issueForNewFamily(oauthApp, userGrant{
		UserID:   authCode.UserID,
		Scopes:   authCode.Scopes,
		AuthTime: authCode.AuthTime,
		AMR:      authCode.AMR,
		Nonce:    authCode.Nonce,
	})
}
