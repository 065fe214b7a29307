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

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asgardeo/tokenengine/internal/application/constants"
	oauth2const "github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
)

func newTestApp() *OAuthApplication {
	return &OAuthApplication{
		ClientID:               "client1",
		ClientType:             constants.ClientTypeConfidential,
		RedirectURIs:           []string{"https://app.example.com/cb", "https://app.example.com/other"},
		PostLogoutRedirectURIs: []string{"https://app.example.com/bye"},
		GrantTypes:             []oauth2const.GrantType{oauth2const.GrantTypeAuthorizationCode},
		Scopes:                 []string{"openid", "profile"},
		TokenEndpointAuthMethods: []oauth2const.TokenEndpointAuthMethod{
			oauth2const.TokenEndpointAuthMethodClientSecretBasic},
	}
}

func TestIsAllowedGrantType(t *testing.T) {
	app := newTestApp()
	assert.True(t, app.IsAllowedGrantType(oauth2const.GrantTypeAuthorizationCode))
	assert.False(t, app.IsAllowedGrantType(oauth2const.GrantTypeClientCredentials))
}

func TestIsAllowedScope(t *testing.T) {
	app := newTestApp()
	assert.True(t, app.IsAllowedScope([]string{"openid"}))
	assert.True(t, app.IsAllowedScope(nil))
	assert.False(t, app.IsAllowedScope([]string{"openid", "admin"}))
}

func TestValidateRedirectURI(t *testing.T) {
	app := newTestApp()

	uri, err := app.ValidateRedirectURI("https://app.example.com/cb")
	assert.NoError(t, err)
	assert.Equal(t, "https://app.example.com/cb", uri)

	_, err = app.ValidateRedirectURI("https://app.example.com/cb/")
	assert.Error(t, err)

	_, err = app.ValidateRedirectURI("")
	assert.Error(t, err, "several URIs are registered so one must be chosen")

	app.RedirectURIs = []string{"https://app.example.com/cb"}
	uri, err = app.ValidateRedirectURI("")
	assert.NoError(t, err)
	assert.Equal(t, "https://app.example.com/cb", uri)

	app.RedirectURIs = []string{"https://app.example.com/cb#frag"}
	_, err = app.ValidateRedirectURI("https://app.example.com/cb#frag")
	assert.Error(t, err)
}

func TestValidatePostLogoutRedirectURI(t *testing.T) {
	app := newTestApp()
	assert.True(t, app.ValidatePostLogoutRedirectURI("https://app.example.com/bye"))
	assert.False(t, app.ValidatePostLogoutRedirectURI("https://app.example.com/cb"))
	assert.False(t, app.ValidatePostLogoutRedirectURI(""))

	app.PostLogoutRedirectURIs = nil
	assert.True(t, app.ValidatePostLogoutRedirectURI("https://app.example.com/cb"))
}

func TestTokenValidityOverrides(t *testing.T) {
	app := newTestApp()
	assert.Equal(t, int64(3600), app.GetAccessTokenValidity(3600))
	assert.Equal(t, int64(86400), app.GetRefreshTokenValidity(86400))

	app.AccessTokenValidity = 300
	app.RefreshTokenValidity = 600
	assert.Equal(t, int64(300), app.GetAccessTokenValidity(3600))
	assert.Equal(t, int64(600), app.GetRefreshTokenValidity(86400))
}
