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

// Package store provides persistence for authorization requests and authorization codes.
package store

import (
	"fmt"
	"strings"

	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/authz/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/authz/model"
	sysconstants "github.com/asgardeo/tokenengine/internal/system/constants"
	"github.com/asgardeo/tokenengine/internal/system/database/client"
	"github.com/asgardeo/tokenengine/internal/system/database/provider"
	dbutils "github.com/asgardeo/tokenengine/internal/system/database/utils"
)

// AuthorizationStoreInterface defines the persistence operations of the authorization endpoint.
// Every status change is a conditional update; a change that matches no row returns
// constants.ErrStateTransitionFailed.
type AuthorizationStoreInterface interface {
	InsertAuthorizationRequest(request model.AuthorizationRequest) error
	GetAuthorizationRequest(requestID string) (*model.AuthorizationRequest, error)
	MarkRequestAuthenticated(requestID, userID string, authTime int64, amr []string, now int64) error
	IssueAuthorizationCode(code model.AuthorizationCode, now int64) error
	AbandonAuthorizationRequest(requestID string) error
	GetAuthorizationCode(codeHash string) (*model.AuthorizationCode, error)
	ConsumeAuthorizationCode(codeHash string, now int64) error
	DeleteExpired(now int64) (int64, error)
}

type authorizationStore struct {
	dbProvider provider.DBProviderInterface
}

// NewAuthorizationStore creates an authorization store on the runtime database.
func NewAuthorizationStore(dbProvider provider.DBProviderInterface) AuthorizationStoreInterface {
	return &authorizationStore{dbProvider: dbProvider}
}

func (s *authorizationStore) getDBClient() (client.DBClientInterface, error) {
	dbClient, err := s.dbProvider.GetDBClient(sysconstants.RuntimeDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	return dbClient, nil
}

// InsertAuthorizationRequest persists a request in the AWAITING_AUTHENTICATION state.
func (s *authorizationStore) InsertAuthorizationRequest(request model.AuthorizationRequest) error {
	dbClient, err := s.getDBClient()
	if err != nil {
		return err
	}

	_, err = dbClient.Execute(QueryInsertAuthorizationRequest, request.ID, request.ClientID, request.RedirectURI,
		strings.Join(request.Scopes, " "), request.State, request.Nonce, request.CodeChallenge,
		request.CodeChallengeMethod, string(constants.RequestStatusAwaitingAuthentication), request.CreatedAt,
		request.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert authorization request: %w", err)
	}
	return nil
}

// GetAuthorizationRequest retrieves a request regardless of its status or expiry.
func (s *authorizationStore) GetAuthorizationRequest(requestID string) (*model.AuthorizationRequest, error) {
	dbClient, err := s.getDBClient()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetAuthorizationRequest, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, constants.ErrAuthorizationRequestNotFound
	}

	row := results[0]
	return &model.AuthorizationRequest{
		ID:                  dbutils.GetString(row, "id"),
		ClientID:            dbutils.GetString(row, "client_id"),
		RedirectURI:         dbutils.GetString(row, "redirect_uri"),
		Scopes:              dbutils.GetSpaceSeparated(row, "scopes"),
		State:               dbutils.GetString(row, "state"),
		Nonce:               dbutils.GetString(row, "nonce"),
		CodeChallenge:       dbutils.GetString(row, "code_challenge"),
		CodeChallengeMethod: dbutils.GetString(row, "code_challenge_method"),
		Status:              dbutils.GetString(row, "status"),
		UserID:              dbutils.GetString(row, "user_id"),
		AuthTime:            dbutils.GetInt64(row, "auth_time"),
		AMR:                 dbutils.GetSpaceSeparated(row, "amr"),
		CreatedAt:           dbutils.GetInt64(row, "created_at"),
		ExpiresAt:           dbutils.GetInt64(row, "expires_at"),
	}, nil
}

// MarkRequestAuthenticated records the authenticated user on a live request.
func (s *authorizationStore) MarkRequestAuthenticated(requestID, userID string, authTime int64, amr []string,
	now int64) error {
	dbClient, err := s.getDBClient()
	if err != nil {
		return err
	}

	rows, err := dbClient.Execute(QueryMarkRequestAuthenticated, requestID, userID, authTime,
		strings.Join(amr, " "), now)
	if err != nil {
		return fmt.Errorf("failed to update authorization request: %w", err)
	}
	if rows != 1 {
		return constants.ErrStateTransitionFailed
	}
	return nil
}

// IssueAuthorizationCode moves the request to CODE_ISSUED and stores the code in one transaction.
func (s *authorizationStore) IssueAuthorizationCode(code model.AuthorizationCode, now int64) error {
	dbClient, err := s.getDBClient()
	if err != nil {
		return err
	}

	return client.WithTransaction(dbClient, func(tx client.TransactionInterface) error {
		rows, err := tx.Execute(QueryMarkRequestCodeIssued, code.RequestID, now)
		if err != nil {
			return fmt.Errorf("failed to update authorization request: %w", err)
		}
		if rows != 1 {
			return constants.ErrStateTransitionFailed
		}

		if _, err := tx.Execute(QueryInsertAuthorizationCode, code.CodeID, code.CodeHash, code.RequestID,
			code.ClientID, code.RedirectURI, code.UserID, strings.Join(code.Scopes, " "), code.Nonce,
			code.CodeChallenge, code.CodeChallengeMethod, strings.Join(code.AMR, " "), code.AuthTime,
			constants.AuthCodeStateActive, code.IssuedAt, code.ExpiresAt); err != nil {
			return fmt.Errorf("failed to insert authorization code: %w", err)
		}
		return nil
	})
}

// AbandonAuthorizationRequest abandons a request that has not yet produced a code.
func (s *authorizationStore) AbandonAuthorizationRequest(requestID string) error {
	dbClient, err := s.getDBClient()
	if err != nil {
		return err
	}

	rows, err := dbClient.Execute(QueryMarkRequestAbandoned, requestID)
	if err != nil {
		return fmt.Errorf("failed to update authorization request: %w", err)
	}
	if rows != 1 {
		return constants.ErrStateTransitionFailed
	}
	return nil
}

// GetAuthorizationCode retrieves a code by the hash of its value.
func (s *authorizationStore) GetAuthorizationCode(codeHash string) (*model.AuthorizationCode, error) {
	dbClient, err := s.getDBClient()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetAuthorizationCode, codeHash)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, constants.ErrAuthorizationCodeNotFound
	}

	row := results[0]
	return &model.AuthorizationCode{
		CodeID:              dbutils.GetString(row, "id"),
		CodeHash:            dbutils.GetString(row, "code_hash"),
		RequestID:           dbutils.GetString(row, "request_id"),
		ClientID:            dbutils.GetString(row, "client_id"),
		RedirectURI:         dbutils.GetString(row, "redirect_uri"),
		UserID:              dbutils.GetString(row, "user_id"),
		Scopes:              dbutils.GetSpaceSeparated(row, "scopes"),
		Nonce:               dbutils.GetString(row, "nonce"),
		CodeChallenge:       dbutils.GetString(row, "code_challenge"),
		CodeChallengeMethod: dbutils.GetString(row, "code_challenge_method"),
		AMR:                 dbutils.GetSpaceSeparated(row, "amr"),
		AuthTime:            dbutils.GetInt64(row, "auth_time"),
		State:               dbutils.GetString(row, "state"),
		IssuedAt:            dbutils.GetInt64(row, "issued_at"),
		ExpiresAt:           dbutils.GetInt64(row, "expires_at"),
	}, nil
}

// ConsumeAuthorizationCode marks the code consumed. Of any number of concurrent callers at most
// one succeeds; the others get constants.ErrStateTransitionFailed.
func (s *authorizationStore) ConsumeAuthorizationCode(codeHash string, now int64) error {
	dbClient, err := s.getDBClient()
	if err != nil {
		return err
	}

	rows, err := dbClient.Execute(QueryConsumeAuthorizationCode, codeHash, now)
	if err != nil {
		return fmt.Errorf("failed to consume authorization code: %w", err)
	}
	if rows != 1 {
		return constants.ErrStateTransitionFailed
	}
	return nil
}

// DeleteExpired removes expired requests and codes and returns the number of rows deleted.
func (s *authorizationStore) DeleteExpired(now int64) (int64, error) {
	dbClient, err := s.getDBClient()
	if err != nil {
		return 0, err
	}

	codes, err := dbClient.Execute(QueryDeleteExpiredAuthorizationCodes, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired authorization codes: %w", err)
	}
	requests, err := dbClient.Execute(QueryDeleteExpiredAuthorizationRequests, now)
	if err != nil {
		return codes, fmt.Errorf("failed to delete expired authorization requests: %w", err)
	}
	return codes + requests, nil
}
