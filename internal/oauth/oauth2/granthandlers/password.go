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
	appmodel "github.com/asgardeo/tokenengine/internal/application/model"
	"github.com/asgardeo/tokenengine/internal/authn"
	authnmodel "github.com/asgardeo/tokenengine/internal/authn/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
	"github.com/asgardeo/tokenengine/internal/oauth/scope"
	"github.com/asgardeo/tokenengine/internal/system/error/serviceerror"
	"github.com/asgardeo/tokenengine/internal/system/log"
)

// passwordGrantHandler handles the resource owner password credentials grant type.
//
// Deprecated: the grant is kept for legacy clients only and is registered when
// oauth.legacy.password_grant_enabled is set.
type passwordGrantHandler struct {
	authenticator  authn.AuthenticatorInterface
	scopeValidator scope.ScopeValidatorInterface
	issuer         *tokenIssuer
}

func newPasswordGrantHandler(authenticator authn.AuthenticatorInterface, issuer *tokenIssuer) GrantHandlerInterface {
	return &passwordGrantHandler{
		authenticator:  authenticator,
		scopeValidator: scope.NewAPIScopeValidator(),
		issuer:         issuer,
	}
}

// ValidateGrant validates the password grant request.
func (h *passwordGrantHandler) ValidateGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication) *model.ErrorResponse {
	if tokenRequest.GrantType != string(constants.GrantTypePassword) {
		return &model.ErrorResponse{
			Error:            constants.ErrorUnsupportedGrantType,
			ErrorDescription: "Unsupported grant type",
		}
	}
	if tokenRequest.Username == "" || tokenRequest.Password == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Username and password are required",
		}
	}
	return nil
}

// HandleGrant authenticates the resource owner and issues tokens for a new token family.
func (h *passwordGrantHandler) HandleGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication) (*model.TokenResponseDTO, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "PasswordGrantHandler"),
		log.String(log.LoggerKeyClientID, oauthApp.ClientID))
	logger.Warn("The password grant is deprecated and will be removed in a future release")

	scopes, scopeErr := h.scopeValidator.ValidateScopes(tokenRequest.Scope, oauthApp)
	if scopeErr != nil {
		return nil, &model.ErrorResponse{Error: scopeErr.Error, ErrorDescription: scopeErr.ErrorDescription}
	}

	user, svcErr := h.authenticator.Authenticate(authnmodel.Credentials{
		Username: tokenRequest.Username,
		Password: tokenRequest.Password,
	})
	if svcErr != nil {
		if svcErr.Type == serviceerror.ServerErrorType {
			logger.Error("Failed to authenticate the user", log.String("error", svcErr.ErrorDescription))
			return nil, serverError("Failed to authenticate the user")
		}
		return nil, invalidGrant("Invalid username or password")
	}

	return h.issuer.issueForNewFamily(oauthApp, userGrant{
		UserID:   user.UserID,
		Scopes:   scopes,
		AuthTime: user.AuthTime,
		AMR:      user.AMR,
	})
}
