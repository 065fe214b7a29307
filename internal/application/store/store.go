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

// Package store provides functionality for handling OAuth client persistence.
package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/asgardeo/tokenengine/internal/application/constants"
	"github.com/asgardeo/tokenengine/internal/application/model"
	oauth2const "github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	sysconstants "github.com/asgardeo/tokenengine/internal/system/constants"
	"github.com/asgardeo/tokenengine/internal/system/database/client"
	"github.com/asgardeo/tokenengine/internal/system/database/provider"
	dbutils "github.com/asgardeo/tokenengine/internal/system/database/utils"
)

// ApplicationStoreInterface defines the persistence operations of the client registry.
type ApplicationStoreInterface interface {
	GetOAuthApplication(clientID string) (*model.OAuthApplication, error)
	UpsertOAuthApplication(app model.OAuthApplication) error
}

// applicationStore is the database backed implementation of ApplicationStoreInterface.
type applicationStore struct {
	dbProvider provider.DBProviderInterface
}

// NewApplicationStore creates a new instance of the database backed application store.
func NewApplicationStore(dbProvider provider.DBProviderInterface) ApplicationStoreInterface {
	return &applicationStore{dbProvider: dbProvider}
}

// GetOAuthApplication retrieves a client with its registered URIs.
// Returns constants.ApplicationNotFoundError when the client does not exist.
func (s *applicationStore) GetOAuthApplication(clientID string) (*model.OAuthApplication, error) {
	dbClient, err := s.dbProvider.GetDBClient(sysconstants.IdentityDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryGetOAuthClient, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, constants.ApplicationNotFoundError
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("unexpected number of results: %d", len(results))
	}

	app := buildApplicationFromResultRow(results[0])

	uriRows, err := dbClient.Query(QueryGetOAuthClientURIs, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	for _, row := range uriRows {
		uri := dbutils.GetString(row, "uri")
		switch constants.URIType(dbutils.GetString(row, "uri_type")) {
		case constants.URITypeRedirect:
			app.RedirectURIs = append(app.RedirectURIs, uri)
		case constants.URITypePostLogout:
			app.PostLogoutRedirectURIs = append(app.PostLogoutRedirectURIs, uri)
		}
	}

	return app, nil
}

// UpsertOAuthApplication creates the client or replaces its settings and registered URIs.
func (s *applicationStore) UpsertOAuthApplication(app model.OAuthApplication) error {
	dbClient, err := s.dbProvider.GetDBClient(sysconstants.IdentityDBName)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	grantTypes := make([]string, 0, len(app.GrantTypes))
	for _, gt := range app.GrantTypes {
		grantTypes = append(grantTypes, string(gt))
	}
	authMethods := make([]string, 0, len(app.TokenEndpointAuthMethods))
	for _, m := range app.TokenEndpointAuthMethods {
		authMethods = append(authMethods, string(m))
	}
	now := time.Now().Unix()

	return client.WithTransaction(dbClient, func(tx client.TransactionInterface) error {
		if _, err := tx.Execute(QueryUpsertOAuthClient, app.ClientID, string(app.ClientType),
			app.HashedClientSecret, strings.Join(grantTypes, " "), strings.Join(app.Scopes, " "),
			strings.Join(authMethods, " "), app.Audience, app.AccessTokenValidity,
			app.RefreshTokenValidity, now); err != nil {
			return fmt.Errorf("failed to upsert client: %w", err)
		}
		if _, err := tx.Execute(QueryDeleteOAuthClientURIs, app.ClientID); err != nil {
			return fmt.Errorf("failed to delete client URIs: %w", err)
		}
		for _, uri := range app.RedirectURIs {
			if _, err := tx.Execute(QueryInsertOAuthClientURI, app.ClientID, uri,
				string(constants.URITypeRedirect)); err != nil {
				return fmt.Errorf("failed to insert redirect URI: %w", err)
			}
		}
		for _, uri := range app.PostLogoutRedirectURIs {
			if _, err := tx.Execute(QueryInsertOAuthClientURI, app.ClientID, uri,
				string(constants.URITypePostLogout)); err != nil {
				return fmt.Errorf("failed to insert post logout redirect URI: %w", err)
			}
		}
		return nil
	})
}

// buildApplicationFromResultRow constructs an OAuthApplication from a database result row.
func buildApplicationFromResultRow(row map[string]any) *model.OAuthApplication {
	app := &model.OAuthApplication{
		ClientID:             dbutils.GetString(row, "client_id"),
		ClientType:           constants.ClientType(dbutils.GetString(row, "client_type")),
		HashedClientSecret:   dbutils.GetString(row, "client_secret_hash"),
		Scopes:               dbutils.GetSpaceSeparated(row, "scopes"),
		Audience:             dbutils.GetString(row, "audience"),
		AccessTokenValidity:  dbutils.GetInt64(row, "access_token_validity"),
		RefreshTokenValidity: dbutils.GetInt64(row, "refresh_token_validity"),
	}
	for _, gt := range dbutils.GetSpaceSeparated(row, "grant_types") {
		app.GrantTypes = append(app.GrantTypes, oauth2const.GrantType(gt))
	}
	for _, m := range dbutils.GetSpaceSeparated(row, "token_endpoint_auth_methods") {
		app.TokenEndpointAuthMethods = append(app.TokenEndpointAuthMethods, oauth2const.TokenEndpointAuthMethod(m))
	}
	return app
}
