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

// Package model defines the data structures of the client registry.
package model

import (
	"errors"
	"net/url"
	"slices"

	"github.com/asgardeo/tokenengine/internal/application/constants"
	oauth2const "github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
)

// OAuthApplication represents a registered OAuth client.
type OAuthApplication struct {
	ClientID                 string
	ClientType               constants.ClientType
	HashedClientSecret       string
	RedirectURIs             []string
	PostLogoutRedirectURIs   []string
	GrantTypes               []oauth2const.GrantType
	Scopes                   []string
	TokenEndpointAuthMethods []oauth2const.TokenEndpointAuthMethod
	Audience                 string
	AccessTokenValidity      int64
	RefreshTokenValidity     int64
}

// IsPublic reports whether the client is a public client.
func (o *OAuthApplication) IsPublic() bool {
	return o.ClientType == constants.ClientTypePublic
}

// IsAllowedGrantType checks if the provided grant type is allowed.
func (o *OAuthApplication) IsAllowedGrantType(grantType oauth2const.GrantType) bool {
	return slices.Contains(o.GrantTypes, grantType)
}

// IsAllowedTokenEndpointAuthMethod checks if the client may authenticate with the given method.
func (o *OAuthApplication) IsAllowedTokenEndpointAuthMethod(method oauth2const.TokenEndpointAuthMethod) bool {
	return slices.Contains(o.TokenEndpointAuthMethods, method)
}

// IsAllowedScope checks if every requested scope is registered for the client.
func (o *OAuthApplication) IsAllowedScope(scopes []string) bool {
	for _, scope := range scopes {
		if !slices.Contains(o.Scopes, scope) {
			return false
		}
	}
	return true
}

// ValidateRedirectURI validates the provided redirect URI against the registered redirect URIs.
// An empty redirect URI is accepted only when exactly one URI is registered, in which case that
// URI is returned.
func (o *OAuthApplication) ValidateRedirectURI(redirectURI string) (string, error) {
	if redirectURI == "" {
		if len(o.RedirectURIs) != 1 {
			return "", errors.New("redirect URI is required in the authorization request")
		}
		return o.RedirectURIs[0], nil
	}

	if !slices.Contains(o.RedirectURIs, redirectURI) {
		return "", errors.New("redirect URI does not match the registered redirect URIs")
	}

	parsed, err := url.Parse(redirectURI)
	if err != nil {
		return "", errors.New("invalid redirect URI")
	}
	if parsed.Fragment != "" {
		return "", errors.New("redirect URI must not contain a fragment component")
	}
	return redirectURI, nil
}

// ValidatePostLogoutRedirectURI checks the URI against the registered post logout redirect URIs,
// falling back to the redirect URIs when none are registered.
func (o *OAuthApplication) ValidatePostLogoutRedirectURI(uri string) bool {
	if uri == "" {
		return false
	}
	if len(o.PostLogoutRedirectURIs) > 0 {
		return slices.Contains(o.PostLogoutRedirectURIs, uri)
	}
	return slices.Contains(o.RedirectURIs, uri)
}

// GetAccessTokenValidity returns the client override or the given default.
func (o *OAuthApplication) GetAccessTokenValidity(defaultValidity int64) int64 {
	if o.AccessTokenValidity > 0 {
		return o.AccessTokenValidity
	}
	return defaultValidity
}

// GetRefreshTokenValidity returns the client override or the given default.
func (o *OAuthApplication) GetRefreshTokenValidity(defaultValidity int64) int64 {
	if o.RefreshTokenValidity > 0 {
		return o.RefreshTokenValidity
	}
	return defaultValidity
}
