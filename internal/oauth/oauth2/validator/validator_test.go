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

package validator

import (
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/tokenengine/internal/oauth/jwt"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenstore"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/tests/mocks/jwt/jwtmock"
	"github.com/asgardeo/tokenengine/tests/mocks/oauth2/tokenstoremock"
)

const testIssuer = "https://auth.example.com"

type TokenValidatorTestSuite struct {
	suite.Suite
	jwtService *jwtmock.JWTServiceInterfaceMock
	tokenStore *tokenstoremock.TokenStoreInterfaceMock
	validator  TokenValidatorInterface
}

func TestTokenValidatorSuite(t *testing.T) {
	suite.Run(t, new(TokenValidatorTestSuite))
}

func (suite *TokenValidatorTestSuite) SetupTest() {
	config.ResetServerRuntime()
	suite.Require().NoError(config.InitializeServerRuntime("", &config.Config{
		OAuth: config.OAuthConfig{
			JWT:             config.JWTConfig{Issuer: testIssuer, ValidityPeriod: 3600},
			TokenValidation: config.TokenValidationConfig{ClockSkew: 60, RevocationCacheTTL: 5},
		},
	}))
	suite.jwtService = jwtmock.NewJWTServiceInterfaceMock(suite.T())
	suite.tokenStore = tokenstoremock.NewTokenStoreInterfaceMock(suite.T())
	suite.validator = NewTokenValidator(suite.jwtService, suite.tokenStore)
}

func (suite *TokenValidatorTestSuite) TearDownTest() {
	config.ResetServerRuntime()
}

func accessClaims(jti, familyID, scope string) *jwt.Claims {
	return &jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        jti,
			Subject:   "user-1",
			Issuer:    testIssuer,
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Scope:    scope,
		FamilyID: familyID,
		ClientID: "web",
	}
}

func (suite *TokenValidatorTestSuite) expectVerify(token string, claims *jwt.Claims) {
	suite.jwtService.On("Verify", token, jwt.VerifyOptions{
		Issuer: testIssuer, ClockSkew: time.Minute, ExpectedType: constants.JWTTypeAccessToken,
	}).Return(claims, nil)
}

func (suite *TokenValidatorTestSuite) TestValidTokenIsCachedAsActive() {
	suite.expectVerify("tok", accessClaims("at-1", "fam-1", "openid profile"))
	suite.tokenStore.On("GetAccessTokenStatus", "at-1").
		Return(&tokenstore.TokenStatus{FamilyID: "fam-1", ClientID: "web"}, nil).Once()

	for i := 0; i < 3; i++ {
		claims, errResp := suite.validator.Validate("tok", []string{"openid"}, "")
		suite.Nil(errResp)
		suite.Equal("at-1", claims.ID)
	}
}

func (suite *TokenValidatorTestSuite) TestAudiencePinningIsPassedToVerify() {
	suite.jwtService.On("Verify", "tok", mock.MatchedBy(func(opts jwt.VerifyOptions) bool {
		return opts.Audience == "https://api.example.com"
	})).Return(nil, gojwt.ErrTokenInvalidAudience)

	_, errResp := suite.validator.Validate("tok", nil, "https://api.example.com")

	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorInvalidToken, errResp.Error)
}

func (suite *TokenValidatorTestSuite) TestMissingToken() {
	_, errResp := suite.validator.Validate("", nil, "")

	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorInvalidToken, errResp.Error)
}

func (suite *TokenValidatorTestSuite) TestVerificationFailures() {
	testCases := []struct {
		name string
		err  error
	}{
		{"Expired", gojwt.ErrTokenExpired},
		{"BadSignature", gojwt.ErrTokenSignatureInvalid},
		{"WrongIssuer", gojwt.ErrTokenInvalidIssuer},
		{"WrongType", jwt.ErrUnexpectedTokenType},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			token := "tok-" + tc.name
			suite.jwtService.On("Verify", token, mock.Anything).Return(nil, tc.err).Once()

			_, errResp := suite.validator.Validate(token, nil, "")

			suite.Require().NotNil(errResp)
			suite.Equal(constants.ErrorInvalidToken, errResp.Error)
		})
	}
}

func (suite *TokenValidatorTestSuite) TestRefreshTokenRejected() {
	claims := accessClaims("rt-1", "fam-1", "openid")
	generation := 0
	claims.Generation = &generation
	suite.expectVerify("tok", claims)

	_, errResp := suite.validator.Validate("tok", nil, "")

	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorInvalidToken, errResp.Error)
}

func (suite *TokenValidatorTestSuite) TestRevokedInStore() {
	suite.expectVerify("tok", accessClaims("at-1", "", "openid"))
	suite.tokenStore.On("GetAccessTokenStatus", "at-1").
		Return(&tokenstore.TokenStatus{Revoked: true}, nil).Once()

	for i := 0; i < 2; i++ {
		_, errResp := suite.validator.Validate("tok", nil, "")
		suite.Require().NotNil(errResp)
		suite.Equal(constants.ErrorInvalidToken, errResp.Error)
	}
}

func (suite *TokenValidatorTestSuite) TestUnknownTokenRejected() {
	suite.expectVerify("tok", accessClaims("at-1", "", "openid"))
	suite.tokenStore.On("GetAccessTokenStatus", "at-1").Return(nil, tokenstore.ErrAccessTokenNotFound)

	_, errResp := suite.validator.Validate("tok", nil, "")

	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorInvalidToken, errResp.Error)
}

func (suite *TokenValidatorTestSuite) TestStoreFailure() {
	suite.expectVerify("tok", accessClaims("at-1", "", "openid"))
	suite.tokenStore.On("GetAccessTokenStatus", "at-1").Return(nil, errors.New("db down"))

	_, errResp := suite.validator.Validate("tok", nil, "")

	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorServerError, errResp.Error)
}

func (suite *TokenValidatorTestSuite) TestInsufficientScope() {
	suite.expectVerify("tok", accessClaims("at-1", "", "read"))
	suite.tokenStore.On("GetAccessTokenStatus", "at-1").Return(&tokenstore.TokenStatus{}, nil)

	_, errResp := suite.validator.Validate("tok", []string{"read", "write"}, "")

	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorInsufficientScope, errResp.Error)
}

func (suite *TokenValidatorTestSuite) TestLocalRevocationOverridesCachedActiveState() {
	claims := accessClaims("at-1", "", "openid")
	suite.expectVerify("tok", claims)
	suite.tokenStore.On("GetAccessTokenStatus", "at-1").Return(&tokenstore.TokenStatus{}, nil).Once()

	_, errResp := suite.validator.Validate("tok", nil, "")
	suite.Nil(errResp)

	suite.validator.InvalidateToken("at-1", claims.ExpiryUnix())

	_, errResp = suite.validator.Validate("tok", nil, "")
	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorInvalidToken, errResp.Error)
}

func (suite *TokenValidatorTestSuite) TestInFlightStoreLoadDoesNotMaskLocalRevocation() {
	claims := accessClaims("at-1", "", "openid")
	suite.expectVerify("tok", claims)
	// The revocation lands while the store read is in flight and still reports the token active.
	suite.tokenStore.On("GetAccessTokenStatus", "at-1").
		Run(func(mock.Arguments) { suite.validator.InvalidateToken("at-1", claims.ExpiryUnix()) }).
		Return(&tokenstore.TokenStatus{}, nil).Once()

	_, errResp := suite.validator.Validate("tok", nil, "")
	suite.Nil(errResp)

	_, errResp = suite.validator.Validate("tok", nil, "")
	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorInvalidToken, errResp.Error)
	suite.tokenStore.AssertNumberOfCalls(suite.T(), "GetAccessTokenStatus", 1)
}

func (suite *TokenValidatorTestSuite) TestFamilyRevocationRejectsWithoutStoreLookup() {
	suite.expectVerify("tok", accessClaims("at-1", "fam-1", "openid"))

	suite.validator.InvalidateFamily("fam-1")
	_, errResp := suite.validator.Validate("tok", nil, "")

	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorInvalidToken, errResp.Error)
	suite.tokenStore.AssertNotCalled(suite.T(), "GetAccessTokenStatus", mock.Anything)
}
