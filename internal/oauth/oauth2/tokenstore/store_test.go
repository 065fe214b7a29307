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

package tokenstore

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"

	sessionmodel "github.com/asgardeo/tokenengine/internal/oauth/session/model"
	"github.com/asgardeo/tokenengine/internal/system/database/client"
	dbmodel "github.com/asgardeo/tokenengine/internal/system/database/model"
	"github.com/asgardeo/tokenengine/tests/mocks/database/providermock"
)

const now = int64(1760000000)

type TokenStoreTestSuite struct {
	suite.Suite
	mock  sqlmock.Sqlmock
	store TokenStoreInterface
}

func TestTokenStoreSuite(t *testing.T) {
	suite.Run(t, new(TokenStoreTestSuite))
}

func (suite *TokenStoreTestSuite) SetupTest() {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	suite.Require().NoError(err)
	suite.mock = mock
	dbProvider := providermock.NewDBProviderInterfaceMock(suite.T())
	dbProvider.On("GetDBClient", "runtime").
		Return(client.NewDBClient(dbmodel.NewDB(db), dbmodel.DBTypePostgres), nil)
	suite.store = NewTokenStore(dbProvider)
}

func (suite *TokenStoreTestSuite) TearDownTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func refreshToken(jti string, generation int, parent string) RefreshToken {
	return RefreshToken{JTI: jti, FamilyID: "fam-1", ClientID: "web", UserID: "user-1",
		Scopes: []string{"openid", "profile"}, Generation: generation, ParentJTI: parent, IssuedAt: now,
		ExpiresAt: now + 86400}
}

func accessToken(jti string) AccessToken {
	return AccessToken{JTI: jti, FamilyID: "fam-1", ClientID: "web", UserID: "user-1",
		Scopes: []string{"openid", "profile"}, Audience: "web", IssuedAt: now, ExpiresAt: now + 3600}
}

func (suite *TokenStoreTestSuite) expectRefreshInsert(token RefreshToken) {
	suite.mock.ExpectExec(QueryInsertRefreshToken.Query).
		WithArgs(token.JTI, token.FamilyID, token.ClientID, token.UserID, "openid profile", token.Generation,
			token.ParentJTI, token.IssuedAt, token.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func (suite *TokenStoreTestSuite) expectAccessInsert(token AccessToken) {
	suite.mock.ExpectExec(QueryInsertAccessToken.Query).
		WithArgs(token.JTI, token.FamilyID, token.ClientID, token.UserID, "openid profile", token.Audience,
			token.IssuedAt, token.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func (suite *TokenStoreTestSuite) TestCreateTokenFamily() {
	family := TokenFamily{FamilyID: "fam-1", ClientID: "web", UserID: "user-1", SessionID: "sess-1",
		Scopes: []string{"openid", "profile"}, AuthTime: now - 5, AMR: []string{"pwd"}, CreatedAt: now}
	session := sessionmodel.Session{ID: "sess-1", UserID: "user-1", ClientID: "web", FamilyID: "fam-1",
		Scopes: []string{"openid", "profile"}, AuthMethod: "pwd", State: sessionmodel.SessionStateActive,
		CreatedAt: now, LastActivity: now, ExpiresAt: now + 86400}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(QueryInsertTokenFamily.Query).
		WithArgs("fam-1", "web", "user-1", "sess-1", "openid profile", now-5, "pwd", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.expectRefreshInsert(refreshToken("rt-0", 0, ""))
	suite.expectAccessInsert(accessToken("at-0"))
	suite.mock.ExpectExec(QueryInsertSession.Query).
		WithArgs("sess-1", "user-1", "web", "fam-1", "openid profile", "pwd", "ACTIVE", now, now, now+86400).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	suite.NoError(suite.store.CreateTokenFamily(family, refreshToken("rt-0", 0, ""), accessToken("at-0"), session))
}

func (suite *TokenStoreTestSuite) TestCreateTokenFamilyRollsBackOnFailure() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(QueryInsertTokenFamily.Query).WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectExec(QueryInsertRefreshToken.Query).WillReturnError(errors.New("duplicate key"))
	suite.mock.ExpectRollback()

	err := suite.store.CreateTokenFamily(TokenFamily{FamilyID: "fam-1"}, refreshToken("rt-0", 0, ""),
		accessToken("at-0"), sessionmodel.Session{})

	suite.ErrorContains(err, "duplicate key")
}

func (suite *TokenStoreTestSuite) TestGetRefreshToken() {
	columns := []string{"jti", "family_id", "client_id", "user_id", "scopes", "generation", "parent_jti",
		"revoked", "issued_at", "expires_at"}
	suite.mock.ExpectQuery(QueryGetRefreshToken.Query).WithArgs("rt-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("rt-1", "fam-1", "web", "user-1", "openid", int64(1), "rt-0", int64(1), now, now+86400))

	token, err := suite.store.GetRefreshToken("rt-1")

	suite.Require().NoError(err)
	suite.Equal(1, token.Generation)
	suite.Equal("rt-0", token.ParentJTI)
	suite.True(token.Revoked)
	suite.Equal([]string{"openid"}, token.Scopes)
}

func (suite *TokenStoreTestSuite) TestGetRefreshTokenNotFound() {
	suite.mock.ExpectQuery(QueryGetRefreshToken.Query).WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"jti"}))

	_, err := suite.store.GetRefreshToken("ghost")

	suite.ErrorIs(err, ErrRefreshTokenNotFound)
}

func (suite *TokenStoreTestSuite) TestGetTokenFamily() {
	columns := []string{"family_id", "client_id", "user_id", "session_id", "scopes", "auth_time", "amr",
		"revoked", "revoked_at", "revoke_reason", "created_at"}
	suite.mock.ExpectQuery(QueryGetTokenFamily.Query).WithArgs("fam-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("fam-1", "web", "user-1", "sess-1", "openid profile", now-5, "pwd otp", int64(1), now,
				"REUSE_DETECTED", now-100))

	family, err := suite.store.GetTokenFamily("fam-1")

	suite.Require().NoError(err)
	suite.True(family.Revoked)
	suite.Equal(RevokeReasonReuseDetected, family.RevokeReason)
	suite.Equal([]string{"pwd", "otp"}, family.AMR)
}

func (suite *TokenStoreTestSuite) TestRotateRefreshToken() {
	successor := refreshToken("rt-1", 1, "rt-0")

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(QueryRotateRefreshToken.Query).WithArgs("rt-0").
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.expectRefreshInsert(successor)
	suite.expectAccessInsert(accessToken("at-1"))
	suite.mock.ExpectExec(QueryTouchSession.Query).WithArgs("sess-1", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	suite.NoError(suite.store.RotateRefreshToken("rt-0", successor, accessToken("at-1"), "sess-1", now))
}

func (suite *TokenStoreTestSuite) TestRotateRefreshTokenLosesRace() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(QueryRotateRefreshToken.Query).WithArgs("rt-0").
		WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectRollback()

	err := suite.store.RotateRefreshToken("rt-0", refreshToken("rt-1", 1, "rt-0"), accessToken("at-1"), "", now)

	suite.ErrorIs(err, ErrRotationConflict)
}

func (suite *TokenStoreTestSuite) TestRotateRefreshTokenAfterPresentedTokenExpired() {
	// The presented token expired between the grant's expiry check and the rotation.
	later := now + 2*86400
	successor := refreshToken("rt-1", 1, "rt-0")

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(QueryRotateRefreshToken.Query).WithArgs("rt-0").
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.expectRefreshInsert(successor)
	suite.expectAccessInsert(accessToken("at-1"))
	suite.mock.ExpectCommit()

	suite.NoError(suite.store.RotateRefreshToken("rt-0", successor, accessToken("at-1"), "", later))
	suite.NotContains(QueryRotateRefreshToken.Query, "EXPIRES_AT")
}

func (suite *TokenStoreTestSuite) TestRevokeTokenFamily() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(QueryRevokeTokenFamily.Query).WithArgs("fam-1", now, "REUSE_DETECTED").
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectExec(QueryRevokeFamilyRefreshTokens.Query).WithArgs("fam-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	suite.mock.ExpectExec(QueryRevokeFamilyAccessTokens.Query).WithArgs("fam-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	suite.mock.ExpectCommit()

	suite.NoError(suite.store.RevokeTokenFamily("fam-1", RevokeReasonReuseDetected, true, now))
}

func (suite *TokenStoreTestSuite) TestRevokeTokenFamilyKeepsAccessTokens() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(QueryRevokeTokenFamily.Query).WithArgs("fam-1", now, "LOGOUT").
		WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectExec(QueryRevokeFamilyRefreshTokens.Query).WithArgs("fam-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	suite.NoError(suite.store.RevokeTokenFamily("fam-1", RevokeReasonLogout, false, now))
}

func (suite *TokenStoreTestSuite) TestRevokeSingleTokens() {
	suite.mock.ExpectExec(QueryRevokeAccessToken.Query).WithArgs("at-1").WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectExec(QueryRevokeRefreshToken.Query).WithArgs("rt-1").WillReturnResult(sqlmock.NewResult(0, 0))

	suite.NoError(suite.store.RevokeAccessToken("at-1"))
	suite.NoError(suite.store.RevokeRefreshToken("rt-1"))
}

func (suite *TokenStoreTestSuite) TestGetAccessTokenStatus() {
	suite.mock.ExpectQuery(QueryGetAccessTokenStatus.Query).WithArgs("at-1").
		WillReturnRows(sqlmock.NewRows([]string{"revoked", "family_id", "client_id", "expires_at"}).
			AddRow(int64(0), "fam-1", "web", now+3600))
	suite.mock.ExpectQuery(QueryGetAccessTokenStatus.Query).WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"revoked"}))

	status, err := suite.store.GetAccessTokenStatus("at-1")
	suite.Require().NoError(err)
	suite.False(status.Revoked)
	suite.Equal("fam-1", status.FamilyID)

	_, err = suite.store.GetAccessTokenStatus("ghost")
	suite.ErrorIs(err, ErrAccessTokenNotFound)
}

func (suite *TokenStoreTestSuite) TestDeleteExpired() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(QueryDeleteExpiredRefreshTokens.Query).WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 2))
	suite.mock.ExpectExec(QueryDeleteExpiredAccessTokens.Query).WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 5))
	suite.mock.ExpectExec(QueryDeleteOrphanedTokenFamilies.Query).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	deleted, err := suite.store.DeleteExpired(now)

	suite.NoError(err)
	suite.Equal(int64(8), deleted)
}
