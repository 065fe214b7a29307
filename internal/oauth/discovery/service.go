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

// Package discovery serves the OpenID Provider configuration document.
package discovery

import (
	"strings"

	"github.com/asgardeo/tokenengine/internal/oauth/keymanager/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/system/config"
)

// DiscoveryServiceInterface builds the provider metadata.
type DiscoveryServiceInterface interface {
	GetOpenIDConfiguration() *OpenIDConfiguration
}

type discoveryService struct{}

// NewDiscoveryService creates a discovery service.
func NewDiscoveryService() DiscoveryServiceInterface {
	return &discoveryService{}
}

// GetOpenIDConfiguration builds the metadata from the runtime configuration. Endpoints are
// rooted at the public URL, or at the issuer when no public URL is configured.
func (ds *discoveryService) GetOpenIDConfiguration() *OpenIDConfiguration {
	cfg := config.GetServerRuntime().Config
	issuer := cfg.OAuth.JWT.Issuer
	base := strings.TrimSuffix(cfg.Server.PublicURL, "/")
	if base == "" {
		base = strings.TrimSuffix(issuer, "/")
	}

	grantTypes := []string{
		string(constants.GrantTypeAuthorizationCode),
		string(constants.GrantTypeRefreshToken),
		string(constants.GrantTypeClientCredentials),
	}
	if cfg.OAuth.Legacy.PasswordGrantEnabled {
		grantTypes = append(grantTypes, string(constants.GrantTypePassword))
	}

	challengeMethods := []string{constants.CodeChallengeMethodS256}
	if cfg.OAuth.PKCE.AllowPlain {
		challengeMethods = append(challengeMethods, constants.CodeChallengeMethodPlain)
	}

	return &OpenIDConfiguration{
		Issuer:                           issuer,
		AuthorizationEndpoint:            base + constants.OAuth2AuthorizationEndpoint,
		TokenEndpoint:                    base + constants.OAuth2TokenEndpoint,
		UserInfoEndpoint:                 base + constants.OAuth2UserInfoEndpoint,
		JWKSURI:                          base + constants.OAuth2JWKSEndpoint,
		RevocationEndpoint:               base + constants.OAuth2RevokeEndpoint,
		IntrospectionEndpoint:            base + constants.OAuth2IntrospectionEndpoint,
		EndSessionEndpoint:               base + constants.OAuth2LogoutEndpoint,
		ResponseTypesSupported:           []string{string(constants.ResponseTypeCode)},
		GrantTypesSupported:              grantTypes,
		SubjectTypesSupported:            []string{"public"},
		IDTokenSigningAlgValuesSupported: []string{model.AlgorithmRS256},
		ScopesSupported: []string{constants.ScopeOpenID, constants.ScopeProfile,
			constants.ScopeEmail},
		TokenEndpointAuthMethodsSupported: []string{
			string(constants.TokenEndpointAuthMethodClientSecretBasic),
			string(constants.TokenEndpointAuthMethodClientSecretPost),
			string(constants.TokenEndpointAuthMethodNone),
		},
		CodeChallengeMethodsSupported: challengeMethods,
		ClaimsSupported: []string{"sub", "iss", "aud", "exp", "iat", "auth_time", "nonce", "amr", "sid",
			"given_name", "family_name", "email"},
	}
}
