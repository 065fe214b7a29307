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

package authn

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/asgardeo/tokenengine/internal/authn/constants"
	"github.com/asgardeo/tokenengine/internal/authn/model"
	"github.com/asgardeo/tokenengine/internal/authn/otp"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/crypto"
	"github.com/asgardeo/tokenengine/internal/system/crypto/hash"
	"github.com/asgardeo/tokenengine/internal/system/error/serviceerror"
	"github.com/asgardeo/tokenengine/tests/mocks/authn/storemock"
)

const testPassword = "correct-horse"

type AuthenticatorTestSuite struct {
	suite.Suite
	store         *storemock.UserCredentialStoreInterfaceMock
	cryptoService crypto.CryptoServiceInterface
	authenticator *authenticator
	passwordHash  string
	now           time.Time
}

func TestAuthenticatorSuite(t *testing.T) {
	suite.Run(t, new(AuthenticatorTestSuite))
}

func (suite *AuthenticatorTestSuite) SetupTest() {
	key, err := crypto.GenerateRandomKey()
	suite.Require().NoError(err)
	cryptoService, err := crypto.NewCryptoService(key)
	suite.Require().NoError(err)
	suite.cryptoService = cryptoService

	suite.store = storemock.NewUserCredentialStoreInterfaceMock(suite.T())
	suite.authenticator = NewAuthenticator(suite.store, cryptoService).(*authenticator)
	suite.now = time.Unix(1760000000, 0)
	suite.authenticator.now = func() time.Time { return suite.now }

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	suite.Require().NoError(err)
	suite.passwordHash = string(hashed)
}

func (suite *AuthenticatorTestSuite) user() *model.UserCredential {
	return &model.UserCredential{
		UserID:       "u-1",
		Username:     "alice",
		PasswordHash: suite.passwordHash,
		GivenName:    "Alice",
		Email:        "alice@example.com",
	}
}

func (suite *AuthenticatorTestSuite) TestAuthenticateSuccess() {
	suite.store.On("GetUserByUsername", "alice").Return(suite.user(), nil)

	user, svcErr := suite.authenticator.Authenticate(model.Credentials{Username: "alice", Password: testPassword})

	suite.Require().Nil(svcErr)
	assert.Equal(suite.T(), "u-1", user.UserID)
	assert.Equal(suite.T(), []string{"pwd"}, user.AMR)
	assert.Equal(suite.T(), suite.now.Unix(), user.AuthTime)
	assert.Equal(suite.T(), "Alice", user.Profile.GivenName)
}

func (suite *AuthenticatorTestSuite) TestUnknownUserAndWrongPasswordAreIndistinguishable() {
	suite.store.On("GetUserByUsername", "alice").Return(suite.user(), nil)
	suite.store.On("GetUserByUsername", "mallory").Return(nil, constants.ErrUserNotFound)

	_, wrongPassword := suite.authenticator.Authenticate(model.Credentials{Username: "alice", Password: "wrong-pass"})
	_, unknownUser := suite.authenticator.Authenticate(model.Credentials{Username: "mallory", Password: testPassword})

	suite.Require().NotNil(wrongPassword)
	suite.Require().NotNil(unknownUser)
	assert.Equal(suite.T(), *wrongPassword, *unknownUser)
	assert.Equal(suite.T(), constants.ErrorInvalidCredentials.Code, unknownUser.Code)
}

func (suite *AuthenticatorTestSuite) TestDisabledUser() {
	user := suite.user()
	user.Disabled = true
	suite.store.On("GetUserByUsername", "alice").Return(user, nil)

	_, svcErr := suite.authenticator.Authenticate(model.Credentials{Username: "alice", Password: testPassword})

	suite.Require().NotNil(svcErr)
	assert.Equal(suite.T(), constants.ErrorInvalidCredentials.Code, svcErr.Code)
}

func (suite *AuthenticatorTestSuite) TestInputLimits() {
	cases := []model.Credentials{
		{Username: "al", Password: testPassword},
		{Username: string(make([]byte, 51)), Password: testPassword},
		{Username: "alice", Password: "short"},
		{Username: "alice", Password: string(make([]byte, 129))},
		{Username: "alice", Password: testPassword, OTP: "12ab56"},
	}
	for _, credentials := range cases {
		_, svcErr := suite.authenticator.Authenticate(credentials)
		suite.Require().NotNil(svcErr)
		assert.Equal(suite.T(), constants.ErrorInvalidCredentialFormat.Code, svcErr.Code)
	}
}

func (suite *AuthenticatorTestSuite) TestStoreFailure() {
	suite.store.On("GetUserByUsername", "alice").Return(nil, errors.New("db down"))

	_, svcErr := suite.authenticator.Authenticate(model.Credentials{Username: "alice", Password: testPassword})

	suite.Require().NotNil(svcErr)
	assert.Equal(suite.T(), serviceerror.ServerErrorType, svcErr.Type)
}

func (suite *AuthenticatorTestSuite) TestTOTPSecondFactor() {
	secret, err := otp.GenerateSecret("tokenengine", "alice")
	suite.Require().NoError(err)
	encrypted, err := suite.cryptoService.EncryptString(secret)
	suite.Require().NoError(err)
	user := suite.user()
	user.TOTPSecret = encrypted
	suite.store.On("GetUserByUsername", "alice").Return(user, nil)

	_, svcErr := suite.authenticator.Authenticate(model.Credentials{Username: "alice", Password: testPassword})
	suite.Require().NotNil(svcErr)
	assert.Equal(suite.T(), constants.ErrorOTPRequired.Code, svcErr.Code)

	_, svcErr = suite.authenticator.Authenticate(
		model.Credentials{Username: "alice", Password: testPassword, OTP: "000000"})
	if svcErr != nil {
		assert.Equal(suite.T(), constants.ErrorInvalidOTP.Code, svcErr.Code)
	}

	code, err := otp.GenerateTOTP(secret, suite.now)
	suite.Require().NoError(err)
	authenticated, svcErr := suite.authenticator.Authenticate(
		model.Credentials{Username: "alice", Password: testPassword, OTP: code})
	suite.Require().Nil(svcErr)
	assert.Equal(suite.T(), []string{"pwd", "otp"}, authenticated.AMR)
}

func (suite *AuthenticatorTestSuite) TestGetUserProfile() {
	suite.store.On("GetUserByID", "u-1").Return(suite.user(), nil)
	suite.store.On("GetUserByID", "u-2").Return(nil, constants.ErrUserNotFound)

	profile, err := suite.authenticator.GetUserProfile("u-1")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "alice@example.com", profile.Email)

	_, err = suite.authenticator.GetUserProfile("u-2")
	assert.ErrorIs(suite.T(), err, constants.ErrUserNotFound)
}

func (suite *AuthenticatorTestSuite) TestSeedUsers() {
	var seeded model.UserCredential
	suite.store.On("UpsertUser", mock.Anything).Run(func(args mock.Arguments) {
		seeded = args.Get(0).(model.UserCredential)
	}).Return(nil)

	err := suite.authenticator.SeedUsers([]config.UserConfig{{
		Username:   "bob",
		Password:   "bob-password",
		TOTPSecret: "JBSWY3DPEHPK3PXP",
		Email:      "bob@example.com",
	}})

	suite.Require().NoError(err)
	assert.NotEmpty(suite.T(), seeded.UserID)
	assert.Equal(suite.T(), "bob", seeded.Username)
	assert.True(suite.T(), hash.ComparePassword(seeded.PasswordHash, "bob-password"))
	assert.NotEqual(suite.T(), "JBSWY3DPEHPK3PXP", seeded.TOTPSecret)
	secret, err := suite.cryptoService.DecryptString(seeded.TOTPSecret)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "JBSWY3DPEHPK3PXP", secret)
}

func (suite *AuthenticatorTestSuite) TestSeedUsersFromSampleDeployment() {
	cfg, err := config.LoadConfig(filepath.Join("..", "..", "repository", "conf", "deployment.yaml"))
	suite.Require().NoError(err)
	suite.store.On("UpsertUser", mock.Anything).Return(nil).Times(len(cfg.UserStore.Users))

	suite.NoError(suite.authenticator.SeedUsers(cfg.UserStore.Users))
}

func (suite *AuthenticatorTestSuite) TestSeedUsersRejectsShortPassword() {
	err := suite.authenticator.SeedUsers([]config.UserConfig{{Username: "bob", Password: "short"}})
	suite.ErrorContains(err, "invalid password")
}
