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
	// QueryListSigningKeys lists the keys that have not lapsed.
	QueryListSigningKeys = dbmodel.DBQuery{
		ID: "SKS-00001",
		Query: "SELECT KID, ALGORITHM, STATUS, PRIVATE_KEY, PUBLIC_KEY, NOT_BEFORE, NOT_AFTER, CREATED_AT " +
			"FROM SIGNING_KEY WHERE NOT_AFTER > $1 ORDER BY NOT_BEFORE DESC",
	}
	// QueryInsertSigningKey persists a new key.
	QueryInsertSigningKey = dbmodel.DBQuery{
		ID: "SKS-00002",
		Query: "INSERT INTO SIGNING_KEY (KID, ALGORITHM, STATUS, PRIVATE_KEY, PUBLIC_KEY, NOT_BEFORE, NOT_AFTER, " +
			"CREATED_AT) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
	}
	// QueryRetireActiveSigningKeys retires every active key, shortening its validity to $1 at most.
	QueryRetireActiveSigningKeys = dbmodel.DBQuery{
		ID: "SKS-00003",
		Query: "UPDATE SIGNING_KEY SET STATUS = 'RETIRED', " +
			"NOT_AFTER = CASE WHEN NOT_AFTER > $1 THEN $1 ELSE NOT_AFTER END WHERE STATUS = 'ACTIVE'",
	}
	// QueryDeleteLapsedSigningKeys removes keys that can no longer verify any token.
	QueryDeleteLapsedSigningKeys = dbmodel.DBQuery{
		ID:    "SKS-00004",
		Query: "DELETE FROM SIGNING_KEY WHERE NOT_AFTER <= $1",
	}
)
