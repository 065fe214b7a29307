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

package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/tokenengine/internal/oauth/keymanager"
	"github.com/asgardeo/tokenengine/internal/oauth/keymanager/model"
	"github.com/asgardeo/tokenengine/tests/mocks/keymanager/keymanagermock"
)

const testIssuer = "https://auth.example.com"

type JWTServiceTestSuite struct {
	suite.Suite
	keyManager *keymanagermock.KeyManagerInterfaceMock
	service    *jwtService
	key        *model.SigningKey
	now        time.Time
}

func TestJWTServiceSuite(t *testing.T) {
	suite.Run(t, new(JWTServiceTestSuite))
}

func (suite *JWTServiceTestSuite) SetupSuite() {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	suite.Require().NoError(err)
	suite.key = &model.SigningKey{
		KID: "kid-1", Algorithm: model.AlgorithmRS256, Status: model.KeyStatusActive,
		PrivateKey: privateKey, PublicKey: &privateKey.PublicKey,
	}
}

func (suite *JWTServiceTestSuite) SetupTest() {
	suite.keyManager = keymanagermock.NewKeyManagerInterfaceMock(suite.T())
	suite.service = NewJWTService(suite.keyManager).(*jwtService)
	suite.now = time.Unix(1760000000, 0)
	suite.service.now = func() time.Time { return suite.now }
}

func (suite *JWTServiceTestSuite) claims(validity time.Duration) *Claims {
	return &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "user-1",
			Audience:  gojwt.ClaimStrings{"api"},
			IssuedAt:  gojwt.NewNumericDate(suite.now),
			NotBefore: gojwt.NewNumericDate(suite.now),
			ExpiresAt: gojwt.NewNumericDate(suite.now.Add(validity)),
			ID:        "jti-1",
		},
		Scope:    "openid profile",
		ClientID: "client1",
	}
}

func (suite *JWTServiceTestSuite) sign(claims *Claims, typ string) string {
	suite.keyManager.On("GetActiveKey").Return(suite.key, nil).Once()
	token, err := suite.service.Sign(claims, typ)
	suite.Require().NoError(err)
	return token
}

func (suite *JWTServiceTestSuite) TestSignAndVerifyRoundTrip() {
	token := suite.sign(suite.claims(time.Hour), "at+jwt")
	suite.keyManager.On("GetVerificationKey", "kid-1").Return(suite.key.PublicKey, nil)

	claims, err := suite.service.Verify(token, VerifyOptions{
		Issuer: testIssuer, Audience: "api", ClockSkew: time.Minute, ExpectedType: "at+jwt",
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "user-1", claims.Subject)
	assert.Equal(suite.T(), []string{"openid", "profile"}, claims.Scopes())
	assert.True(suite.T(), claims.HasScopes([]string{"openid"}))
	assert.False(suite.T(), claims.HasScopes([]string{"email"}))
	assert.False(suite.T(), claims.IsRefreshToken())
	assert.Equal(suite.T(), -1, claims.GetGeneration())
	assert.Equal(suite.T(), suite.now.Add(time.Hour).Unix(), claims.ExpiryUnix())
}

func (suite *JWTServiceTestSuite) TestHeaderCarriesKidAndType() {
	token := suite.sign(suite.claims(time.Hour), "JWT")

	parsed, _, err := gojwt.NewParser().ParseUnverified(token, &Claims{})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "kid-1", parsed.Header["kid"])
	assert.Equal(suite.T(), "JWT", parsed.Header["typ"])
	assert.Equal(suite.T(), "RS256", parsed.Header["alg"])
}

func (suite *JWTServiceTestSuite) TestRefreshTokenGeneration() {
	claims := suite.claims(time.Hour)
	generation := 0
	claims.Generation = &generation
	claims.FamilyID = "fam-1"
	token := suite.sign(claims, "JWT")
	suite.keyManager.On("GetVerificationKey", "kid-1").Return(suite.key.PublicKey, nil)

	verified, err := suite.service.Verify(token, VerifyOptions{Issuer: testIssuer})

	suite.Require().NoError(err)
	assert.True(suite.T(), verified.IsRefreshToken())
	assert.Equal(suite.T(), 0, verified.GetGeneration())
	assert.Equal(suite.T(), "fam-1", verified.FamilyID)
}

func (suite *JWTServiceTestSuite) TestExpiredTokenHonoursSkew() {
	token := suite.sign(suite.claims(time.Minute), "JWT")
	suite.keyManager.On("GetVerificationKey", "kid-1").Return(suite.key.PublicKey, nil)

	suite.now = suite.now.Add(90 * time.Second)
	_, err := suite.service.Verify(token, VerifyOptions{ClockSkew: time.Minute})
	assert.NoError(suite.T(), err, "within skew")

	suite.now = suite.now.Add(time.Minute)
	_, err = suite.service.Verify(token, VerifyOptions{ClockSkew: time.Minute})
	assert.ErrorIs(suite.T(), err, gojwt.ErrTokenExpired)

	claims, err := suite.service.Verify(token, VerifyOptions{Issuer: testIssuer, AllowExpired: true})
	suite.NoError(err)
	assert.Equal(suite.T(), "user-1", claims.Subject)
}

func (suite *JWTServiceTestSuite) TestIssuedInTheFuture() {
	claims := suite.claims(time.Hour)
	claims.IssuedAt = gojwt.NewNumericDate(suite.now.Add(10 * time.Minute))
	token := suite.sign(claims, "JWT")
	suite.keyManager.On("GetVerificationKey", "kid-1").Return(suite.key.PublicKey, nil)

	_, err := suite.service.Verify(token, VerifyOptions{ClockSkew: time.Minute})

	assert.ErrorIs(suite.T(), err, gojwt.ErrTokenUsedBeforeIssued)
}

func (suite *JWTServiceTestSuite) TestIssuerAndAudienceMismatch() {
	token := suite.sign(suite.claims(time.Hour), "JWT")
	suite.keyManager.On("GetVerificationKey", "kid-1").Return(suite.key.PublicKey, nil)

	_, err := suite.service.Verify(token, VerifyOptions{Issuer: "https://evil.example.com"})
	assert.ErrorIs(suite.T(), err, gojwt.ErrTokenInvalidIssuer)

	_, err = suite.service.Verify(token, VerifyOptions{Audience: "other"})
	assert.ErrorIs(suite.T(), err, gojwt.ErrTokenInvalidAudience)

	_, err = suite.service.Verify(token, VerifyOptions{Issuer: "https://evil.example.com", AllowExpired: true})
	assert.ErrorIs(suite.T(), err, gojwt.ErrTokenInvalidIssuer)
}

func (suite *JWTServiceTestSuite) TestUnexpectedType() {
	token := suite.sign(suite.claims(time.Hour), "JWT")
	suite.keyManager.On("GetVerificationKey", "kid-1").Return(suite.key.PublicKey, nil)

	_, err := suite.service.Verify(token, VerifyOptions{ExpectedType: "at+jwt"})

	assert.ErrorIs(suite.T(), err, ErrUnexpectedTokenType)
}

func (suite *JWTServiceTestSuite) TestUnknownKey() {
	token := suite.sign(suite.claims(time.Hour), "JWT")
	suite.keyManager.On("GetVerificationKey", "kid-1").Return(nil, keymanager.ErrUnknownKey)

	_, err := suite.service.Verify(token, VerifyOptions{})

	assert.ErrorIs(suite.T(), err, keymanager.ErrUnknownKey)
}

func (suite *JWTServiceTestSuite) TestTamperedSignature() {
	token := suite.sign(suite.claims(time.Hour), "JWT")
	suite.keyManager.On("GetVerificationKey", "kid-1").Return(suite.key.PublicKey, nil)

	parts := strings.Split(token, ".")
	forged := &Claims{RegisteredClaims: gojwt.RegisteredClaims{Subject: "admin"}}
	forgedPayload, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, forged).
		SignedString(gojwt.UnsafeAllowNoneSignatureType)
	suite.Require().NoError(err)
	tampered := parts[0] + "." + strings.Split(forgedPayload, ".")[1] + "." + parts[2]

	_, err = suite.service.Verify(tampered, VerifyOptions{})
	assert.ErrorIs(suite.T(), err, gojwt.ErrTokenSignatureInvalid)
}

func (suite *JWTServiceTestSuite) TestRejectsOtherAlgorithms() {
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, suite.claims(time.Hour)).SignedString([]byte("k"))
	suite.Require().NoError(err)

	_, err = suite.service.Verify(token, VerifyOptions{})

	assert.ErrorIs(suite.T(), err, gojwt.ErrTokenSignatureInvalid)
}

func (suite *JWTServiceTestSuite) TestSignWithoutActiveKey() {
	suite.keyManager.On("GetActiveKey").Return(nil, keymanager.ErrNoActiveKey)

	_, err := suite.service.Sign(suite.claims(time.Hour), "JWT")

	assert.True(suite.T(), errors.Is(err, keymanager.ErrNoActiveKey))
}
