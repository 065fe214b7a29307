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
	// QueryGetOAuthClient retrieves a client by its client id.
	QueryGetOAuthClient = dbmodel.DBQuery{
		ID: "APP-00001",
		Query: "SELECT CLIENT_ID, CLIENT_TYPE, CLIENT_SECRET_HASH, GRANT_TYPES, SCOPES, " +
			"TOKEN_ENDPOINT_AUTH_METHODS, AUDIENCE, ACCESS_TOKEN_VALIDITY, REFRESH_TOKEN_VALIDITY " +
			"FROM OAUTH_CLIENT WHERE CLIENT_ID = $1",
	}
	// QueryGetOAuthClientURIs retrieves the registered redirect URIs of a client.
	QueryGetOAuthClientURIs = dbmodel.DBQuery{
		ID:    "APP-00002",
		Query: "SELECT URI, URI_TYPE FROM OAUTH_CLIENT_REDIRECT_URI WHERE CLIENT_ID = $1",
	}
	// QueryUpsertOAuthClient creates a client or replaces its settings.
	QueryUpsertOAuthClient = dbmodel.DBQuery{
		ID: "APP-00003",
		Query: "INSERT INTO OAUTH_CLIENT (CLIENT_ID, CLIENT_TYPE, CLIENT_SECRET_HASH, GRANT_TYPES, SCOPES, " +
			"TOKEN_ENDPOINT_AUTH_METHODS, AUDIENCE, ACCESS_TOKEN_VALIDITY, REFRESH_TOKEN_VALIDITY, CREATED_AT, " +
			"UPDATED_AT) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10) " +
			"ON CONFLICT (CLIENT_ID) DO UPDATE SET CLIENT_TYPE = EXCLUDED.CLIENT_TYPE, " +
			"CLIENT_SECRET_HASH = EXCLUDED.CLIENT_SECRET_HASH, GRANT_TYPES = EXCLUDED.GRANT_TYPES, " +
			"SCOPES = EXCLUDED.SCOPES, TOKEN_ENDPOINT_AUTH_METHODS = EXCLUDED.TOKEN_ENDPOINT_AUTH_METHODS, " +
			"AUDIENCE = EXCLUDED.AUDIENCE, ACCESS_TOKEN_VALIDITY = EXCLUDED.ACCESS_TOKEN_VALIDITY, " +
			"REFRESH_TOKEN_VALIDITY = EXCLUDED.REFRESH_TOKEN_VALIDITY, UPDATED_AT = EXCLUDED.UPDATED_AT",
	}
	// QueryDeleteOAuthClientURIs removes every registered URI of a client.
	QueryDeleteOAuthClientURIs = dbmodel.DBQuery{
		ID:    "APP-00004",
		Query: "DELETE FROM OAUTH_CLIENT_REDIRECT_URI WHERE CLIENT_ID = $1",
	}
	// QueryInsertOAuthClientURI registers a URI for a client.
	QueryInsertOAuthClientURI = dbmodel.DBQuery{
		ID:    "APP-00005",
		Query: "INSERT INTO OAUTH_CLIENT_REDIRECT_URI (CLIENT_ID, URI, URI_TYPE) VALUES ($1, $2, $3)",
	}
)
