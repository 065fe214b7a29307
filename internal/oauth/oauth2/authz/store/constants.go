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

import dbmodel "github.com/asgardeo/tokenengine/internal/system/database/model"

var (
	// QueryInsertAuthorizationRequest persists a new authorization request.
	QueryInsertAuthorizationRequest = dbmodel.DBQuery{
		ID: "AZQ-00001",
		Query: "INSERT INTO AUTHZ_REQUEST (ID, CLIENT_ID, REDIRECT_URI, SCOPES, STATE, NONCE, CODE_CHALLENGE, " +
			"CODE_CHALLENGE_METHOD, STATUS, CREATED_AT, EXPIRES_AT) " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)",
	}
	// QueryGetAuthorizationRequest retrieves an authorization request by id.
	QueryGetAuthorizationRequest = dbmodel.DBQuery{
		ID: "AZQ-00002",
		Query: "SELECT ID, CLIENT_ID, REDIRECT_URI, SCOPES, STATE, NONCE, CODE_CHALLENGE, CODE_CHALLENGE_METHOD, " +
			"STATUS, USER_ID, AUTH_TIME, AMR, CREATED_AT, EXPIRES_AT FROM AUTHZ_REQUEST WHERE ID = $1",
	}
	// QueryMarkRequestAuthenticated moves a live request from AWAITING_AUTHENTICATION to AUTHENTICATED.
	QueryMarkRequestAuthenticated = dbmodel.DBQuery{
		ID: "AZQ-00003",
		Query: "UPDATE AUTHZ_REQUEST SET STATUS = 'AUTHENTICATED', USER_ID = $2, AUTH_TIME = $3, AMR = $4 " +
			"WHERE ID = $1 AND STATUS = 'AWAITING_AUTHENTICATION' AND EXPIRES_AT > $5",
	}
	// QueryMarkRequestCodeIssued moves a live request from AUTHENTICATED to CODE_ISSUED.
	QueryMarkRequestCodeIssued = dbmodel.DBQuery{
		ID: "AZQ-00004",
		Query: "UPDATE AUTHZ_REQUEST SET STATUS = 'CODE_ISSUED' " +
			"WHERE ID = $1 AND STATUS = 'AUTHENTICATED' AND EXPIRES_AT > $2",
	}
	// QueryMarkRequestAbandoned abandons a request that has not produced a code.
	QueryMarkRequestAbandoned = dbmodel.DBQuery{
		ID: "AZQ-00005",
		Query: "UPDATE AUTHZ_REQUEST SET STATUS = 'ABANDONED' " +
			"WHERE ID = $1 AND STATUS IN ('AWAITING_AUTHENTICATION', 'AUTHENTICATED')",
	}
	// QueryInsertAuthorizationCode persists an issued authorization code.
	QueryInsertAuthorizationCode = dbmodel.DBQuery{
		ID: "AZQ-00006",
		Query: "INSERT INTO AUTHZ_CODE (ID, CODE_HASH, REQUEST_ID, CLIENT_ID, REDIRECT_URI, USER_ID, SCOPES, " +
			"NONCE, CODE_CHALLENGE, CODE_CHALLENGE_METHOD, AMR, AUTH_TIME, STATE, ISSUED_AT, EXPIRES_AT) " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)",
	}
	// QueryGetAuthorizationCode retrieves an authorization code by the hash of its value.
	QueryGetAuthorizationCode = dbmodel.DBQuery{
		ID: "AZQ-00007",
		Query: "SELECT ID, CODE_HASH, REQUEST_ID, CLIENT_ID, REDIRECT_URI, USER_ID, SCOPES, NONCE, " +
			"CODE_CHALLENGE, CODE_CHALLENGE_METHOD, AMR, AUTH_TIME, STATE, ISSUED_AT, EXPIRES_AT " +
			"FROM AUTHZ_CODE WHERE CODE_HASH = $1",
	}
	// QueryConsumeAuthorizationCode marks an active, unexpired code consumed. At most one caller
	// observes an affected row.
	QueryConsumeAuthorizationCode = dbmodel.DBQuery{
		ID: "AZQ-00008",
		Query: "UPDATE AUTHZ_CODE SET STATE = 'CONSUMED' " +
			"WHERE CODE_HASH = $1 AND STATE = 'ACTIVE' AND EXPIRES_AT > $2",
	}
	// QueryDeleteExpiredAuthorizationRequests removes requests past their expiry.
	QueryDeleteExpiredAuthorizationRequests = dbmodel.DBQuery{
		ID:    "AZQ-00009",
		Query: "DELETE FROM AUTHZ_REQUEST WHERE EXPIRES_AT <= $1",
	}
	// QueryDeleteExpiredAuthorizationCodes removes codes past their expiry.
	QueryDeleteExpiredAuthorizationCodes = dbmodel.DBQuery{
		ID:    "AZQ-00010",
		Query: "DELETE FROM AUTHZ_CODE WHERE EXPIRES_AT <= $1",
	}
)
