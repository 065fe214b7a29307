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

const userCredentialColumns = "USER_ID, USERNAME, PASSWORD_HASH, TOTP_SECRET, GIVEN_NAME, FAMILY_NAME, EMAIL, DISABLED"

var (
	// QueryGetUserByUsername retrieves a user by username.
	QueryGetUserByUsername = dbmodel.DBQuery{
		ID:    "AUN-00001",
		Query: "SELECT " + userCredentialColumns + " FROM USER_CREDENTIAL WHERE USERNAME = $1",
	}
	// QueryGetUserByID retrieves a user by id.
	QueryGetUserByID = dbmodel.DBQuery{
		ID:    "AUN-00002",
		Query: "SELECT " + userCredentialColumns + " FROM USER_CREDENTIAL WHERE USER_ID = $1",
	}
	// QueryUpsertUser creates a user or replaces its credentials and profile, keeping its id.
	QueryUpsertUser = dbmodel.DBQuery{
		ID: "AUN-00003",
		Query: "INSERT INTO USER_CREDENTIAL (USER_ID, USERNAME, PASSWORD_HASH, TOTP_SECRET, GIVEN_NAME, " +
			"FAMILY_NAME, EMAIL, DISABLED, CREATED_AT, UPDATED_AT) " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) " +
			"ON CONFLICT (USERNAME) DO UPDATE SET PASSWORD_HASH = EXCLUDED.PASSWORD_HASH, " +
			"TOTP_SECRET = EXCLUDED.TOTP_SECRET, GIVEN_NAME = EXCLUDED.GIVEN_NAME, " +
			"FAMILY_NAME = EXCLUDED.FAMILY_NAME, EMAIL = EXCLUDED.EMAIL, DISABLED = EXCLUDED.DISABLED, " +
			"UPDATED_AT = EXCLUDED.UPDATED_AT",
	}
)
