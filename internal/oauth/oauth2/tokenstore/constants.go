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

	dbmodel "github.com/asgardeo/tokenengine/internal/system/database/model"
)

var (
	// ErrRefreshTokenNotFound is returned when no refresh token exists for a jti.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	// ErrAccessTokenNotFound is returned when no access token exists for a jti.
	ErrAccessTokenNotFound = errors.New("access token not found")
	// ErrTokenFamilyNotFound is returned when no token family exists for an id.
	ErrTokenFamilyNotFound = errors.New("token family not found")
	// ErrRotationConflict is returned when the presented refresh token was already rotated, revoked
	// or expired at the time of the conditional update.
	ErrRotationConflict = errors.New("refresh token already rotated")
)

var (
	// QueryInsertTokenFamily creates a token family.
	QueryInsertTokenFamily = dbmodel.DBQuery{
		ID: "TKQ-00001",
		Query: "INSERT INTO TOKEN_FAMILY (FAMILY_ID, CLIENT_ID, USER_ID, SESSION_ID, SCOPES, AUTH_TIME, AMR, " +
			"REVOKED, CREATED_AT) VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8)",
	}
	// QueryGetTokenFamily retrieves a token family by id.
	QueryGetTokenFamily = dbmodel.DBQuery{
		ID: "TKQ-00002",
		Query: "SELECT FAMILY_ID, CLIENT_ID, USER_ID, SESSION_ID, SCOPES, AUTH_TIME, AMR, REVOKED, REVOKED_AT, " +
			"REVOKE_REASON, CREATED_AT FROM TOKEN_FAMILY WHERE FAMILY_ID = $1",
	}
	// QueryInsertRefreshToken persists a refresh token.
	QueryInsertRefreshToken = dbmodel.DBQuery{
		ID: "TKQ-00003",
		Query: "INSERT INTO REFRESH_TOKEN (JTI, FAMILY_ID, CLIENT_ID, USER_ID, SCOPES, GENERATION, PARENT_JTI, " +
			"REVOKED, ISSUED_AT, EXPIRES_AT) VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9)",
	}
	// QueryGetRefreshToken retrieves a refresh token by jti.
	QueryGetRefreshToken = dbmodel.DBQuery{
		ID: "TKQ-00004",
		Query: "SELECT JTI, FAMILY_ID, CLIENT_ID, USER_ID, SCOPES, GENERATION, PARENT_JTI, REVOKED, ISSUED_AT, " +
			"EXPIRES_AT FROM REFRESH_TOKEN WHERE JTI = $1",
	}
	// QueryRotateRefreshToken revokes the presented refresh token only if it is not yet revoked. At
	// most one caller observes an affected row. Expiry is checked before rotation, so a miss here
	// always means another rotation won.
	QueryRotateRefreshToken = dbmodel.DBQuery{
		ID:    "TKQ-00005",
		Query: "UPDATE REFRESH_TOKEN SET REVOKED = 1 WHERE JTI = $1 AND REVOKED = 0",
	}
	// QueryInsertAccessToken persists an access token.
	QueryInsertAccessToken = dbmodel.DBQuery{
		ID: "TKQ-00006",
		Query: "INSERT INTO ACCESS_TOKEN (JTI, FAMILY_ID, CLIENT_ID, USER_ID, SCOPES, AUDIENCE, REVOKED, " +
			"ISSUED_AT, EXPIRES_AT) VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8)",
	}
	// QueryGetAccessTokenStatus retrieves the revocation state of an access token.
	QueryGetAccessTokenStatus = dbmodel.DBQuery{
		ID:    "TKQ-00007",
		Query: "SELECT REVOKED, FAMILY_ID, CLIENT_ID, EXPIRES_AT FROM ACCESS_TOKEN WHERE JTI = $1",
	}
	// QueryRevokeAccessToken revokes a single access token.
	QueryRevokeAccessToken = dbmodel.DBQuery{
		ID:    "TKQ-00008",
		Query: "UPDATE ACCESS_TOKEN SET REVOKED = 1 WHERE JTI = $1 AND REVOKED = 0",
	}
	// QueryRevokeRefreshToken revokes a single refresh token.
	QueryRevokeRefreshToken = dbmodel.DBQuery{
		ID:    "TKQ-00009",
		Query: "UPDATE REFRESH_TOKEN SET REVOKED = 1 WHERE JTI = $1 AND REVOKED = 0",
	}
	// QueryRevokeTokenFamily marks a family revoked. The first recorded reason is kept.
	QueryRevokeTokenFamily = dbmodel.DBQuery{
		ID: "TKQ-00010",
		Query: "UPDATE TOKEN_FAMILY SET REVOKED = 1, REVOKED_AT = $2, REVOKE_REASON = $3 " +
			"WHERE FAMILY_ID = $1 AND REVOKED = 0",
	}
	// QueryRevokeFamilyRefreshTokens revokes every refresh token of a family.
	QueryRevokeFamilyRefreshTokens = dbmodel.DBQuery{
		ID:    "TKQ-00011",
		Query: "UPDATE REFRESH_TOKEN SET REVOKED = 1 WHERE FAMILY_ID = $1 AND REVOKED = 0",
	}
	// QueryRevokeFamilyAccessTokens revokes every access token of a family.
	QueryRevokeFamilyAccessTokens = dbmodel.DBQuery{
		ID:    "TKQ-00012",
		Query: "UPDATE ACCESS_TOKEN SET REVOKED = 1 WHERE FAMILY_ID = $1 AND REVOKED = 0",
	}
	// QueryInsertSession persists the session owning a new family.
	QueryInsertSession = dbmodel.DBQuery{
		ID: "TKQ-00013",
		Query: "INSERT INTO OAUTH_SESSION (ID, USER_ID, CLIENT_ID, FAMILY_ID, SCOPES, AUTH_METHOD, STATE, " +
			"CREATED_AT, LAST_ACTIVITY, EXPIRES_AT) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)",
	}
	// QueryTouchSession records activity on an active session.
	QueryTouchSession = dbmodel.DBQuery{
		ID:    "TKQ-00014",
		Query: "UPDATE OAUTH_SESSION SET LAST_ACTIVITY = $2 WHERE ID = $1 AND STATE = 'ACTIVE'",
	}
	// QueryDeleteExpiredRefreshTokens removes refresh tokens past their expiry.
	QueryDeleteExpiredRefreshTokens = dbmodel.DBQuery{
		ID:    "TKQ-00015",
		Query: "DELETE FROM REFRESH_TOKEN WHERE EXPIRES_AT <= $1",
	}
	// QueryDeleteExpiredAccessTokens removes access tokens past their expiry.
	QueryDeleteExpiredAccessTokens = dbmodel.DBQuery{
		ID:    "TKQ-00016",
		Query: "DELETE FROM ACCESS_TOKEN WHERE EXPIRES_AT <= $1",
	}
	// QueryDeleteOrphanedTokenFamilies removes families with no remaining tokens or live session.
	QueryDeleteOrphanedTokenFamilies = dbmodel.DBQuery{
		ID: "TKQ-00017",
		Query: "DELETE FROM TOKEN_FAMILY WHERE " +
			"NOT EXISTS (SELECT 1 FROM REFRESH_TOKEN R WHERE R.FAMILY_ID = TOKEN_FAMILY.FAMILY_ID) AND " +
			"NOT EXISTS (SELECT 1 FROM ACCESS_TOKEN A WHERE A.FAMILY_ID = TOKEN_FAMILY.FAMILY_ID) AND " +
			"NOT EXISTS (SELECT 1 FROM OAUTH_SESSION S WHERE S.FAMILY_ID = TOKEN_FAMILY.FAMILY_ID)",
	}
)
