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
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	authnmodel "github.com/asgardeo/tokenengine/internal/authn/model"
	authzconstants "github.com/asgardeo/tokenengine/internal/oauth/oauth2/authz/constants"
	authzmodel "github.com/asgardeo/tokenengine/internal/oauth/oauth2/authz/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/pkce"
	sessionmodel "github.com/asgardeo/tokenengine/internal/oauth/session/model"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/tests/mocks/authn/authnmock"
	"github.com/asgardeo/tokenengine/tests/mocks/authz/authzmock"
	"github.com/asgardeo/tokenengine/tests/mocks/oauth2/tokenfactorymock"
	"github.com/asgardeo/tokenengine/tests/mocks/oauth2/tokenstoremock"
	"github.com/asgardeo/tokenengine/tests/mocks/session/sessionmock"
)

const testRedirectURI = "https://app.example.com/callback"

var testVerifier = strings.Repeat("dBjftJeZ4CVP", 4)

type AuthorizationCodeGrantHandlerTestSuite struct {
	suite.Suite
	authzService   *authzmock.AuthorizationServiceInterfaceMock
	tokenFactory   *tokenfactorymock.TokenFactoryInterfaceMock
	tokenStore     *tokenstoremock.TokenStoreInterfaceMock
	sessionService *sessionmock.SessionServiceInterfaceMock
	authenticator  *authnmock.AuthenticatorInterfaceMock
	handler        *authorizationCodeGrantHandler
}

func TestAuthorizationCodeGrantHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthorizationCodeGrantHandlerTestSuite))
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) SetupTest() {
	suite.Require().NoError(initTestConfig(false))
	suite.authzService = authzmock.NewAuthorizationServiceInterfaceMock(suite.T())
	suite.tokenFactory = tokenfactorymock.NewTokenFactoryInterfaceMock(suite.T())
	suite.tokenStore = tokenstoremock.NewTokenStoreInterfaceMock(suite.T())
	suite.sessionService = sessionmock.NewSessionServiceInterfaceMock(suite.T())
	suite.authenticator = authnmock.NewAuthenticatorInterfaceMock(suite.T())
	issuer := newTokenIssuer(suite.tokenFactory, suite.tokenStore, suite.sessionService, suite.authenticator)
	suite.handler = newAuthorizationCodeGrantHandler(suite.authzService, issuer).(*authorizationCodeGrantHandler)
	suite.handler.now = func() time.Time { return time.Unix(testNow, 0) }
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) TearDownTest() {
	config.ResetServerRuntime()
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) authCode(scopes []string) *authzmodel.AuthorizationCode {
	challenge, err := pkce.GenerateCodeChallenge(testVerifier, "S256")
	suite.Require().NoError(err)
	return &authzmodel.AuthorizationCode{
		CodeID:              "code-id-1",
		ClientID:            testClientID,
		RedirectURI:         testRedirectURI,
		UserID:              testUserID,
		Scopes:              scopes,
		Nonce:               "nonce-1",
		CodeChallenge:       challenge,
		CodeChallengeMethod: "S256",
		AMR:                 []string{"pwd"},
		AuthTime:            testNow - 20,
		State:               authzconstants.AuthCodeStateActive,
		IssuedAt:            testNow - 10,
		ExpiresAt:           testNow + 20,
	}
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) tokenRequest() *model.TokenRequest {
	return &model.TokenRequest{
		GrantType:    string(constants.GrantTypeAuthorizationCode),
		ClientID:     testClientID,
		Code:         "code-value",
		RedirectURI:  testRedirectURI,
		CodeVerifier: testVerifier,
	}
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) TestValidateGrant() {
	testCases := []struct {
		name     string
		modify   func(r *model.TokenRequest)
		expected string
	}{
		{"valid", func(r *model.TokenRequest) {}, ""},
		{"wrong grant type", func(r *model.TokenRequest) { r.GrantType = "password" },
			constants.ErrorUnsupportedGrantType},
		{"missing code", func(r *model.TokenRequest) { r.Code = "" }, constants.ErrorInvalidRequest},
		{"missing redirect uri", func(r *model.TokenRequest) { r.RedirectURI = "" }, constants.ErrorInvalidRequest},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			req := suite.tokenRequest()
			tc.modify(req)
			errResp := suite.handler.ValidateGrant(req, testApp())
			if tc.expected == "" {
				suite.Nil(errResp)
			} else {
				suite.Equal(tc.expected, errResp.Error)
			}
		})
	}
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) TestHandleGrantSuccess() {
	scopes := []string{"openid", "profile"}
	suite.authzService.On("GetAuthorizationCode", "code-value").Return(suite.authCode(scopes), nil)
	suite.authzService.On("ConsumeAuthorizationCode", "code-value").Return(nil)
	suite.sessionService.On("CreateSession", testUserID, testClientID, mock.Anything, "pwd", scopes).
		Return(sessionmodel.Session{ID: "sess-1"})
	suite.tokenFactory.On("MintAccessToken", testUserID, testClientID, "", scopes, mock.Anything,
		900*time.Second).Return(testTokenDTO("access", "at-1", "fam", scopes, 0), nil)
	suite.tokenFactory.On("MintRefreshToken", testUserID, testClientID, scopes, mock.Anything, 0,
		86400*time.Second).Return(testTokenDTO("refresh", "rt-1", "fam", scopes, 0), nil)
	suite.authenticator.On("GetUserProfile", testUserID).Return(&authnmodel.UserProfile{
		GivenName: "Ada", FamilyName: "Lovelace", Email: "ada@example.com"}, nil)
	suite.tokenFactory.On("MintIDToken", testUserID, testClientID,
		authnmodel.UserProfile{GivenName: "Ada", FamilyName: "Lovelace"}, testNow-20, []string{"pwd"}, "sess-1",
		"nonce-1", 3600*time.Second).Return(testTokenDTO("id", "id-1", "", scopes, 0), nil)
	suite.tokenStore.On("CreateTokenFamily", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil)

	resp, errResp := suite.handler.HandleGrant(suite.tokenRequest(), testApp())

	suite.Nil(errResp)
	suite.Equal("at-1", resp.AccessToken.JTI)
	suite.Equal("rt-1", resp.RefreshToken.JTI)
	suite.Equal("id-1", resp.IDToken.JTI)
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) TestHandleGrantRejectsCode() {
	testCases := []struct {
		name   string
		modify func(c *authzmodel.AuthorizationCode, r *model.TokenRequest)
	}{
		{"consumed", func(c *authzmodel.AuthorizationCode, r *model.TokenRequest) {
			c.State = authzconstants.AuthCodeStateConsumed
		}},
		{"expired", func(c *authzmodel.AuthorizationCode, r *model.TokenRequest) { c.ExpiresAt = testNow }},
		{"other client", func(c *authzmodel.AuthorizationCode, r *model.TokenRequest) { c.ClientID = "client-2" }},
		{"redirect mismatch", func(c *authzmodel.AuthorizationCode, r *model.TokenRequest) {
			r.RedirectURI = "https://app.example.com/other"
		}},
		{"verifier mismatch", func(c *authzmodel.AuthorizationCode, r *model.TokenRequest) {
			r.CodeVerifier = strings.Repeat("x", 48)
		}},
		{"verifier missing", func(c *authzmodel.AuthorizationCode, r *model.TokenRequest) { r.CodeVerifier = "" }},
		{"verifier without challenge", func(c *authzmodel.AuthorizationCode, r *model.TokenRequest) {
			c.CodeChallenge = ""
			c.CodeChallengeMethod = ""
		}},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			code := suite.authCode([]string{"read"})
			req := suite.tokenRequest()
			tc.modify(code, req)
			suite.authzService.On("GetAuthorizationCode", "code-value").Return(code, nil)

			resp, errResp := suite.handler.HandleGrant(req, testApp())

			suite.Nil(resp)
			suite.Equal(constants.ErrorInvalidGrant, errResp.Error)
			suite.authzService.AssertNotCalled(suite.T(), "ConsumeAuthorizationCode", mock.Anything)
		})
	}
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) TestHandleGrantUnknownCode() {
	suite.authzService.On("GetAuthorizationCode", "code-value").
		Return(nil, authzconstants.ErrAuthorizationCodeNotFound)

	_, errResp := suite.handler.HandleGrant(suite.tokenRequest(), testApp())

	suite.Equal(constants.ErrorInvalidGrant, errResp.Error)
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) TestHandleGrantLookupFailure() {
	suite.authzService.On("GetAuthorizationCode", "code-value").Return(nil, errors.New("db down"))

	_, errResp := suite.handler.HandleGrant(suite.tokenRequest(), testApp())

	suite.Equal(constants.ErrorServerError, errResp.Error)
}

func (suite *AuthorizationCodeGrantHandlerTestSuite) TestHandleGrantLosesConsumeRace() {
	suite.authzService.On("GetAuthorizationCode", "code-value").Return(suite.authCode([]string{"read"}), nil)
	suite.authzService.On("ConsumeAuthorizationCode", "code-value").
		Return(authzconstants.ErrStateTransitionFailed)

	resp, errResp := suite.handler.HandleGrant(suite.tokenRequest(), testApp())

	suite.Nil(resp)
	suite.Equal(constants.ErrorInvalidGrant, errResp.Error)
	suite.tokenFactory.AssertNotCalled(suite.T(), "MintAccessToken", mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
