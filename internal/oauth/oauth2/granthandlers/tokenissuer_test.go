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
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	appconstants "github.com/asgardeo/tokenengine/internal/application/constants"
	appmodel "github.com/asgardeo/tokenengine/internal/application/model"
	authnmodel "github.com/asgardeo/tokenengine/internal/authn/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenstore"
	sessionmodel "github.com/asgardeo/tokenengine/internal/oauth/session/model"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/tests/mocks/authn/authnmock"
	"github.com/asgardeo/tokenengine/tests/mocks/oauth2/tokenfactorymock"
	"github.com/asgardeo/tokenengine/tests/mocks/oauth2/tokenstoremock"
	"github.com/asgardeo/tokenengine/tests/mocks/session/sessionmock"
)

const (
	testIssuer   = "https://auth.example.com"
	testClientID = "client-1"
	testUserID   = "user-1"
	testNow      = int64(1760000000)
)

func initTestConfig(passwordGrant bool) error {
	config.ResetServerRuntime()
	return config.InitializeServerRuntime("", &config.Config{
		OAuth: config.OAuthConfig{
			JWT:             config.JWTConfig{Issuer: testIssuer, ValidityPeriod: 900},
			RefreshToken:    config.RefreshTokenConfig{ValidityPeriod: 86400},
			IDToken:         config.IDTokenConfig{ValidityPeriod: 3600},
			TokenValidation: config.TokenValidationConfig{ClockSkew: 60},
			Legacy:          config.LegacyConfig{PasswordGrantEnabled: passwordGrant},
		},
	})
}

func testApp() *appmodel.OAuthApplication {
	return &appmodel.OAuthApplication{
		ClientID:     testClientID,
		ClientType:   appconstants.ClientTypeConfidential,
		RedirectURIs: []string{"https://app.example.com/callback"},
		GrantTypes: []constants.GrantType{constants.GrantTypeAuthorizationCode,
			constants.GrantTypeRefreshToken, constants.GrantTypeClientCredentials},
		Scopes: []string{"openid", "profile", "email", "read", "write"},
	}
}

func testTokenDTO(tokenType, jti, familyID string, scopes []string, generation int) *model.TokenDTO {
	return &model.TokenDTO{
		Token:      tokenType + "." + jti,
		TokenType:  tokenType,
		JTI:        jti,
		Subject:    testUserID,
		ClientID:   testClientID,
		Scopes:     scopes,
		FamilyID:   familyID,
		Generation: generation,
		IssuedAt:   testNow,
		ExpiresIn:  900,
	}
}

type TokenIssuerTestSuite struct {
	suite.Suite
	tokenFactory   *tokenfactorymock.TokenFactoryInterfaceMock
	tokenStore     *tokenstoremock.TokenStoreInterfaceMock
	sessionService *sessionmock.SessionServiceInterfaceMock
	authenticator  *authnmock.AuthenticatorInterfaceMock
	issuer         *tokenIssuer
}

func TestTokenIssuerSuite(t *testing.T) {
	suite.Run(t, new(TokenIssuerTestSuite))
}

func (suite *TokenIssuerTestSuite) SetupTest() {
	suite.Require().NoError(initTestConfig(false))
	suite.tokenFactory = tokenfactorymock.NewTokenFactoryInterfaceMock(suite.T())
	suite.tokenStore = tokenstoremock.NewTokenStoreInterfaceMock(suite.T())
	suite.sessionService = sessionmock.NewSessionServiceInterfaceMock(suite.T())
	suite.authenticator = authnmock.NewAuthenticatorInterfaceMock(suite.T())
	suite.issuer = newTokenIssuer(suite.tokenFactory, suite.tokenStore, suite.sessionService, suite.authenticator)
}

func (suite *TokenIssuerTestSuite) TearDownTest() {
	config.ResetServerRuntime()
}

func (suite *TokenIssuerTestSuite) TestIssueForNewFamilyWithOpenID() {
	scopes := []string{"openid", "email"}
	suite.sessionService.On("CreateSession", testUserID, testClientID, mock.Anything, "pwd otp", scopes).
		Return(sessionmodel.Session{ID: "sess-1", UserID: testUserID, ClientID: testClientID})
	suite.tokenFactory.On("MintAccessToken", testUserID, testClientID, "", scopes, mock.Anything,
		900*time.Second).Return(testTokenDTO("access", "at-1", "fam", scopes, 0), nil)
	suite.tokenFactory.On("MintRefreshToken", testUserID, testClientID, scopes, mock.Anything, 0,
		86400*time.Second).Return(testTokenDTO("refresh", "rt-1", "fam", scopes, 0), nil)
	suite.authenticator.On("GetUserProfile", testUserID).Return(&authnmodel.UserProfile{
		GivenName: "Ada", FamilyName: "Lovelace", Email: "ada@example.com"}, nil)
	suite.tokenFactory.On("MintIDToken", testUserID, testClientID,
		authnmodel.UserProfile{Email: "ada@example.com"}, int64(1759999990), []string{"pwd", "otp"}, "sess-1",
		"n-0S6", 3600*time.Second).Return(testTokenDTO("id", "id-1", "", scopes, 0), nil)

	var familyID string
	suite.tokenStore.On("CreateTokenFamily",
		mock.MatchedBy(func(f tokenstore.TokenFamily) bool {
			familyID = f.FamilyID
			return f.UserID == testUserID && f.SessionID == "sess-1" && f.AuthTime == 1759999990
		}),
		mock.MatchedBy(func(rt tokenstore.RefreshToken) bool {
			return rt.JTI == "rt-1" && rt.Generation == 0 && rt.ParentJTI == "" && rt.ExpiresAt == testNow+900
		}),
		mock.MatchedBy(func(at tokenstore.AccessToken) bool { return at.JTI == "at-1" }),
		mock.MatchedBy(func(s sessionmodel.Session) bool { return s.ID == "sess-1" }),
	).Return(nil)

	resp, errResp := suite.issuer.issueForNewFamily(testApp(), userGrant{UserID: testUserID, Scopes: scopes,
		AuthTime: 1759999990, AMR: []string{"pwd", "otp"}, Nonce: "n-0S6"})

	suite.Nil(errResp)
	suite.Equal("at-1", resp.AccessToken.JTI)
	suite.Equal("rt-1", resp.RefreshToken.JTI)
	suite.Equal("id-1", resp.IDToken.JTI)
	suite.NotEmpty(familyID)
	familyArg := suite.sessionService.Calls[0].Arguments.String(2)
	suite.Equal(familyID, familyArg)
}

func (suite *TokenIssuerTestSuite) TestIssueForNewFamilyWithoutOpenIDSkipsIDToken() {
	scopes := []string{"read"}
	app := testApp()
	app.Audience = "https://api.example.com"
	app.AccessTokenValidity = 300
	suite.sessionService.On("CreateSession", testUserID, testClientID, mock.Anything, "pwd", scopes).
		Return(sessionmodel.Session{ID: "sess-1"})
	suite.tokenFactory.On("MintAccessToken", testUserID, testClientID, "https://api.example.com", scopes,
		mock.Anything, 300*time.Second).Return(testTokenDTO("access", "at-1", "fam", scopes, 0), nil)
	suite.tokenFactory.On("MintRefreshToken", testUserID, testClientID, scopes, mock.Anything, 0,
		86400*time.Second).Return(testTokenDTO("refresh", "rt-1", "fam", scopes, 0), nil)
	suite.tokenStore.On("CreateTokenFamily", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil)

	resp, errResp := suite.issuer.issueForNewFamily(app, userGrant{UserID: testUserID, Scopes: scopes,
		AMR: []string{"pwd"}})

	suite.Nil(errResp)
	suite.Empty(resp.IDToken.Token)
}

func (suite *TokenIssuerTestSuite) TestNothingPersistedWhenSigningFails() {
	scopes := []string{"read"}
	suite.sessionService.On("CreateSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything).Return(sessionmodel.Session{ID: "sess-1"})
	suite.tokenFactory.On("MintAccessToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(testTokenDTO("access", "at-1", "fam", scopes, 0), nil)
	suite.tokenFactory.On("MintRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(nil, errors.New("no signing key"))

	resp, errResp := suite.issuer.issueForNewFamily(testApp(), userGrant{UserID: testUserID, Scopes: scopes})

	suite.Nil(resp)
	suite.Equal(constants.ErrorServerError, errResp.Error)
	suite.tokenStore.AssertNotCalled(suite.T(), "CreateTokenFamily", mock.Anything, mock.Anything,
		mock.Anything, mock.Anything)
}

func (suite *TokenIssuerTestSuite) TestPersistFailure() {
	scopes := []string{"read"}
	suite.sessionService.On("CreateSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything).Return(sessionmodel.Session{ID: "sess-1"})
	suite.tokenFactory.On("MintAccessToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(testTokenDTO("access", "at-1", "fam", scopes, 0), nil)
	suite.tokenFactory.On("MintRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything).Return(testTokenDTO("refresh", "rt-1", "fam", scopes, 0), nil)
	suite.tokenStore.On("CreateTokenFamily", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("db down"))

	resp, errResp := suite.issuer.issueForNewFamily(testApp(), userGrant{UserID: testUserID, Scopes: scopes})

	suite.Nil(resp)
	suite.Equal(constants.ErrorServerError, errResp.Error)
}

func (suite *TokenIssuerTestSuite) TestIssueClientToken() {
	scopes := []string{"read"}
	suite.tokenFactory.On("MintAccessToken", testClientID, testClientID, "", scopes, "", 900*time.Second).
		Return(testTokenDTO("access", "at-1", "", scopes, 0), nil)
	suite.tokenStore.On("StoreAccessToken", mock.MatchedBy(func(at tokenstore.AccessToken) bool {
		return at.JTI == "at-1" && at.UserID == testClientID && at.FamilyID == ""
	})).Return(nil)

	resp, errResp := suite.issuer.issueClientToken(testApp(), scopes)

	suite.Nil(errResp)
	suite.Equal("at-1", resp.AccessToken.JTI)
	suite.Empty(resp.RefreshToken.Token)
}
