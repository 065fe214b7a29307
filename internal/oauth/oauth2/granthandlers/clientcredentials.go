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
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
	"github.com/asgardeo/tokenengine/internal/oauth/scope"
)

// clientCredentialsGrantHandler handles the client credentials grant type.
type clientCredentialsGrantHandler struct {
	scopeValidator scope.ScopeValidatorInterface
	issuer         *tokenIssuer
}

func newClientCredentialsGrantHandler(issuer *tokenIssuer) GrantHandlerInterface {
	return &clientCredentialsGrantHandler{
		scopeValidator: scope.NewAPIScopeValidator(),
		issuer:         issuer,
	}
}

// ValidateGrant validates the client credentials grant request.
func (h *clientCredentialsGrantHandler) ValidateGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication) *model.ErrorResponse {
	if tokenRequest.GrantType != string(constants.GrantTypeClientCredentials) {
		return &model.ErrorResponse{
			Error:            constants.ErrorUnsupportedGrantType,
			ErrorDescription: "Unsupported grant type",
		}
	}
	if oauthApp.IsPublic() {
		return &model.ErrorResponse{
			Error:            constants.ErrorUnauthorizedClient,
			ErrorDescription: "Public clients cannot use the client credentials grant",
		}
	}
	return nil
}

// HandleGrant issues an access token for the client.
func (h *clientCredentialsGrantHandler) HandleGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication) (*model.TokenResponseDTO, *model.ErrorResponse) {
	scopes, scopeErr := h.scopeValidator.ValidateScopes(tokenRequest.Scope, oauthApp)
	if scopeErr != nil {
		return nil, &model.ErrorResponse{Error: scopeErr.Error, ErrorDescription: scopeErr.ErrorDescription}
	}
	// There is no end user, so identity scopes are not granted.
	granted := make([]string, 0, len(scopes))
	for _, s := range scopes {
		if s != constants.ScopeOpenID && s != constants.ScopeProfile && s != constants.ScopeEmail {
			granted = append(granted, s)
		}
	}
	return h.issuer.issueClientToken(oauthApp, granted)
}
