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

package store

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/tokenengine/internal/authn/constants"
	"github.com/asgardeo/tokenengine/internal/authn/model"
	"github.com/asgardeo/tokenengine/internal/system/database/client"
	dbmodel "github.com/asgardeo/tokenengine/internal/system/database/model"
	"github.com/asgardeo/tokenengine/tests/mocks/database/providermock"
)

var userColumns = []string{"user_id", "username", "password_hash", "totp_secret", "given_name", "family_name",
	"email", "disabled"}

type UserCredentialStoreTestSuite struct {
	suite.Suite
	mock  sqlmock.Sqlmock
	store UserCredentialStoreInterface
}

func TestUserCredentialStoreSuite(t *testing.T) {
	suite.Run(t, new(UserCredentialStoreTestSuite))
}

func (suite *UserCredentialStoreTestSuite) SetupTest() {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	suite.Require().NoError(err)
	suite.mock = mock
	dbProvider := providermock.NewDBProviderInterfaceMock(suite.T())
	dbProvider.On("GetDBClient", "identity").
		Return(client.NewDBClient(dbmodel.NewDB(db), dbmodel.DBTypeSQLite), nil)
	suite.store = NewUserCredentialStore(dbProvider)
}

func (suite *UserCredentialStoreTestSuite) TearDownTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *UserCredentialStoreTestSuite) TestGetUserByUsername() {
	suite.mock.ExpectQuery(QueryGetUserByUsername.Query).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-1", "alice", "$2a$hash", nil, "Alice", "Smith", "alice@example.com", 0))

	user, err := suite.store.GetUserByUsername("alice")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "u-1", user.UserID)
	assert.Equal(suite.T(), "", user.TOTPSecret)
	assert.Equal(suite.T(), "Smith", user.FamilyName)
	assert.False(suite.T(), user.Disabled)
}

func (suite *UserCredentialStoreTestSuite) TestGetUserByIDNotFound() {
	suite.mock.ExpectQuery(QueryGetUserByID.Query).WithArgs("u-9").WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := suite.store.GetUserByID("u-9")

	assert.ErrorIs(suite.T(), err, constants.ErrUserNotFound)
}

func (suite *UserCredentialStoreTestSuite) TestGetUserQueryError() {
	suite.mock.ExpectQuery(QueryGetUserByID.Query).WithArgs("u-1").WillReturnError(errors.New("db down"))

	_, err := suite.store.GetUserByID("u-1")

	assert.ErrorContains(suite.T(), err, "failed to execute query")
}

func (suite *UserCredentialStoreTestSuite) TestUpsertUser() {
	suite.mock.ExpectExec(QueryUpsertUser.Query).
		WithArgs("u-1", "alice", "$2a$hash", "", "Alice", "", "", 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := suite.store.UpsertUser(model.UserCredential{
		UserID: "u-1", Username: "alice", PasswordHash: "$2a$hash", GivenName: "Alice", Disabled: true,
	})

	suite.NoError(err)
}
