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

// Package store provides persistence for OAuth sessions.
package store

import (
	"fmt"

	"github.com/asgardeo/tokenengine/internal/oauth/session/model"
	sysconstants "github.com/asgardeo/tokenengine/internal/system/constants"
	"github.com/asgardeo/tokenengine/internal/system/database/client"
	dbmodel "github.com/asgardeo/tokenengine/internal/system/database/model"
	"github.com/asgardeo/tokenengine/internal/system/database/provider"
	dbutils "github.com/asgardeo/tokenengine/internal/system/database/utils"
)

// SessionStoreInterface defines the persistence operations for sessions. Sessions are inserted
// together with their token family by the token store.
type SessionStoreInterface interface {
	GetSession(sessionID string) (*model.Session, error)
	GetLatestActiveSession(userID, clientID string, now int64) (*model.Session, error)
	TouchSession(sessionID string, now int64) error
	EndSession(sessionID string, now int64) (bool, error)
	DeleteStale(now int64) (int64, error)
}

type sessionStore struct {
	dbProvider provider.DBProviderInterface
}

// NewSessionStore creates a session store on the runtime database.
func NewSessionStore(dbProvider provider.DBProviderInterface) SessionStoreInterface {
	return &sessionStore{dbProvider: dbProvider}
}

func (s *sessionStore) getDBClient() (client.DBClientInterface, error) {
	dbClient, err := s.dbProvider.GetDBClient(sysconstants.RuntimeDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	return dbClient, nil
}

func (s *sessionStore) GetSession(sessionID string) (*model.Session, error) {
	return s.querySession(QueryGetSession, sessionID)
}

func (s *sessionStore) GetLatestActiveSession(userID, clientID string, now int64) (*model.Session, error) {
	return s.querySession(QueryGetLatestActiveSession, userID, clientID, now)
}

func (s *sessionStore) querySession(query dbmodel.DBQuery, args ...any) (*model.Session, error) {
	dbClient, err := s.getDBClient()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrSessionNotFound
	}
	return buildSession(results[0]), nil
}

func (s *sessionStore) TouchSession(sessionID string, now int64) error {
	dbClient, err := s.getDBClient()
	if err != nil {
		return err
	}

	if _, err := dbClient.Execute(QueryTouchSession, sessionID, now); err != nil {
		return fmt.Errorf("failed to update session activity: %w", err)
	}
	return nil
}

// EndSession ends an active session. It reports false when the session was not active.
func (s *sessionStore) EndSession(sessionID string, now int64) (bool, error) {
	dbClient, err := s.getDBClient()
	if err != nil {
		return false, err
	}

	rows, err := dbClient.Execute(QueryEndSession, sessionID, now)
	if err != nil {
		return false, fmt.Errorf("failed to end session: %w", err)
	}
	return rows == 1, nil
}

func (s *sessionStore) DeleteStale(now int64) (int64, error) {
	dbClient, err := s.getDBClient()
	if err != nil {
		return 0, err
	}

	rows, err := dbClient.Execute(QueryDeleteStaleSessions, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale sessions: %w", err)
	}
	return rows, nil
}

func buildSession(row map[string]any) *model.Session {
	return &model.Session{
		ID:           dbutils.GetString(row, "id"),
		UserID:       dbutils.GetString(row, "user_id"),
		ClientID:     dbutils.GetString(row, "client_id"),
		FamilyID:     dbutils.GetString(row, "family_id"),
		Scopes:       dbutils.GetSpaceSeparated(row, "scopes"),
		AuthMethod:   dbutils.GetString(row, "auth_method"),
		State:        model.SessionState(dbutils.GetString(row, "state")),
		CreatedAt:    dbutils.GetInt64(row, "created_at"),
		LastActivity: dbutils.GetInt64(row, "last_activity"),
		ExpiresAt:    dbutils.GetInt64(row, "expires_at"),
	}
}
