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

	dbmodel "github.com/asgardeo/tokenengine/internal/system/database/model"
)

// ErrSessionNotFound is returned when no session matches the lookup.
var ErrSessionNotFound = errors.New("session not found")

var (
	// QueryGetSession retrieves a session by id.
	QueryGetSession = dbmodel.DBQuery{
		ID: "SSQ-00001",
		Query: "SELECT ID, USER_ID, CLIENT_ID, FAMILY_ID, SCOPES, AUTH_METHOD, STATE, CREATED_AT, LAST_ACTIVITY, " +
			"EXPIRES_AT FROM OAUTH_SESSION WHERE ID = $1",
	}
	// QueryGetLatestActiveSession retrieves the most recently active live session of a user at a client.
	QueryGetLatestActiveSession = dbmodel.DBQuery{
		ID: "SSQ-00002",
		Query: "SELECT ID, USER_ID, CLIENT_ID, FAMILY_ID, SCOPES, AUTH_METHOD, STATE, CREATED_AT, LAST_ACTIVITY, " +
			"EXPIRES_AT FROM OAUTH_SESSION WHERE USER_ID = $1 AND CLIENT_ID = $2 AND STATE = 'ACTIVE' " +
			"AND EXPIRES_AT > $3 ORDER BY LAST_ACTIVITY DESC LIMIT 1",
	}
	// QueryTouchSession records activity on an active session.
	QueryTouchSession = dbmodel.DBQuery{
		ID:    "SSQ-00003",
		Query: "UPDATE OAUTH_SESSION SET LAST_ACTIVITY = $2 WHERE ID = $1 AND STATE = 'ACTIVE' AND EXPIRES_AT > $2",
	}
	// QueryEndSession moves an active session to ENDED.
	QueryEndSession = dbmodel.DBQuery{
		ID:    "SSQ-00004",
		Query: "UPDATE OAUTH_SESSION SET STATE = 'ENDED', LAST_ACTIVITY = $2 WHERE ID = $1 AND STATE = 'ACTIVE'",
	}
	// QueryDeleteStaleSessions removes expired and ended sessions.
	QueryDeleteStaleSessions = dbmodel.DBQuery{
		ID:    "SSQ-00005",
		Query: "DELETE FROM OAUTH_SESSION WHERE EXPIRES_AT <= $1 OR STATE = 'ENDED'",
	}
)
