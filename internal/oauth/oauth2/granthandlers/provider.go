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

	"github.com/asgardeo/tokenengine/internal/authn"
	"github.com/asgardeo/tokenengine/internal/oauth/jwt"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/authz"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenfactory"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenstore"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/validator"
	"github.com/asgardeo/tokenengine/internal/oauth/session"
	"github.com/asgardeo/tokenengine/internal/system/config"
)

// ErrUnsupportedGrantType is returned when no handler serves the requested grant type.
var ErrUnsupportedGrantType = errors.New("unsupported grant type")

// GrantHandlerProviderInterface resolves the handler of a grant type.
type GrantHandlerProviderInterface interface {
	GetGrantHandler(grantType constants.GrantType) (GrantHandlerInterface, error)
}

// Dependencies groups the collaborators shared by the grant handlers.
type Dependencies struct {
	AuthzService   authz.AuthorizationServiceInterface
	Authenticator  authn.AuthenticatorInterface
	JWTService     jwt.JWTServiceInterface
	TokenFactory   tokenfactory.TokenFactoryInterface
	TokenStore     tokenstore.TokenStoreInterface
	SessionService session.SessionServiceInterface
	Validator      validator.TokenValidatorInterface
}

type grantHandlerProvider struct {
	handlers map[constants.GrantType]GrantHandlerInterface
}

// NewGrantHandlerProvider creates the grant handlers. The password grant is only available when
// enabled in the configuration.
func NewGrantHandlerProvider(deps Dependencies) GrantHandlerProviderInterface {
	issuer := newTokenIssuer(deps.TokenFactory, deps.TokenStore, deps.SessionService, deps.Authenticator)

	handlers := map[constants.GrantType]GrantHandlerInterface{
		constants.GrantTypeAuthorizationCode: newAuthorizationCodeGrantHandler(deps.AuthzService, issuer),
		constants.GrantTypeRefreshToken: newRefreshTokenGrantHandler(deps.JWTService, deps.TokenStore,
			deps.SessionService, deps.Validator, issuer),
		constants.GrantTypeClientCredentials: newClientCredentialsGrantHandler(issuer),
	}
	if config.GetServerRuntime().Config.OAuth.Legacy.PasswordGrantEnabled {
		handlers[constants.GrantTypePassword] = newPasswordGrantHandler(deps.Authenticator, issuer)
	}
	return &grantHandlerProvider{handlers: handlers}
}

func (p *grantHandlerProvider) GetGrantHandler(grantType constants.GrantType) (GrantHandlerInterface, error) {
	handler, ok := p.handlers[grantType]
	if !ok {
		return nil, ErrUnsupportedGrantType
	}
	return handler, nil
}
