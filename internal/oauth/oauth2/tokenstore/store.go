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

// Package tokenstore persists issued tokens, token families and their revocation state.
package tokenstore

import (
	"fmt"
	"strings"

	sessionmodel "github.com/asgardeo/tokenengine/internal/oauth/session/model"
	sysconstants "github.com/asgardeo/tokenengine/internal/system/constants"
	"github.com/asgardeo/tokenengine/internal/system/database/client"
	"github.com/asgardeo/tokenengine/internal/system/database/provider"
	dbutils "github.com/asgardeo/tokenengine/internal/system/database/utils"
)

// TokenStoreInterface defines the persistence operations for issued tokens.
type TokenStoreInterface interface {
	CreateTokenFamily(family TokenFamily, refreshToken RefreshToken, accessToken AccessToken,
		session sessionmodel.Session) error
	StoreAccessToken(accessToken AccessToken) error
	GetTokenFamily(familyID string) (*TokenFamily, error)
	GetRefreshToken(jti string) (*RefreshToken, error)
	RotateRefreshToken(presentedJTI string, successor RefreshToken, accessToken AccessToken, sessionID string,
		now int64) error
	RevokeTokenFamily(familyID string, reason RevokeReason, revokeAccessTokens bool, now int64) error
	RevokeAccessToken(jti string) error
	RevokeRefreshToken(jti string) error
	GetAccessTokenStatus(jti string) (*TokenStatus, error)
	DeleteExpired(now int64) (int64, error)
}

type tokenStore struct {
	dbProvider provider.DBProviderInterface
}

// NewTokenStore creates a token store on the runtime database.
func NewTokenStore(dbProvider provider.DBProviderInterface) TokenStoreInterface {
	return &tokenStore{dbProvider: dbProvider}
}

func (s *tokenStore) getDBClient() (client.DBClientInterface, error) {
	dbClient, err := s.dbProvider.GetDBClient(sysconstants.RuntimeDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	return dbClient, nil
}

// CreateTokenFamily writes a new family with its first refresh token, access token and session
// in one transaction.
func (s *tokenStore) CreateTokenFamily(family TokenFamily, refreshToken RefreshToken, accessToken AccessToken,
	session sessionmodel.Session) error {
	dbClient, err := s.getDBClient()
	if err != nil {
		return err
	}

	return client.WithTransaction(dbClient, func(tx client.TransactionInterface) error {
		if _, err := tx.Execute(QueryInsertTokenFamily, family.FamilyID, family.ClientID, family.UserID,
			family.SessionID, strings.Join(family.Scopes, " "), family.AuthTime, strings.Join(family.AMR, " "),
			family.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert token family: %w", err)
		}
		if err := insertRefreshToken(tx, refreshToken); err != nil {
			return err
		}
		if err := insertAccessToken(tx, accessToken); err != nil {
			return err
		}
		if _, err := tx.Execute(QueryInsertSession, session.ID, session.UserID, session.ClientID,
			session.FamilyID, strings.Join(session.Scopes, " "), session.AuthMethod, string(session.State),
			session.CreatedAt, session.LastActivity, session.ExpiresAt); err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}
		return nil
	})
}

// StoreAccessToken persists an access token that belongs to no family.
func (s *tokenStore) StoreAccessToken(accessToken AccessToken) error {
	dbClient, err := s.getDBClient()
	if err != nil {
		return err
	}

	if _, err := dbClient.Execute(QueryInsertAccessToken, accessToken.JTI, accessToken.FamilyID,
		accessToken.ClientID, accessToken.UserID, strings.Join(accessToken.Scopes, " "), accessToken.Audience,
		accessToken.IssuedAt, accessToken.ExpiresAt); err != nil {
		return fmt.Errorf("failed to insert access token: %w", err)
	}
	return nil
}

func (s *tokenStore) GetTokenFamily(familyID string) (*TokenFamily, error) {
	dbClient, err := s.getDBClient()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetTokenFamily, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrTokenFamilyNotFound
	}

	row := results[0]
	return &TokenFamily{
		FamilyID:     dbutils.GetString(row, "family_id"),
		ClientID:     dbutils.GetString(row, "client_id"),
		UserID:       dbutils.GetString(row, "user_id"),
		SessionID:    dbutils.GetString(row, "session_id"),
		Scopes:       dbutils.GetSpaceSeparated(row, "scopes"),
		AuthTime:     dbutils.GetInt64(row, "auth_time"),
		AMR:          dbutils.GetSpaceSeparated(row, "amr"),
		Revoked:      dbutils.GetBool(row, "revoked"),
		RevokedAt:    dbutils.GetInt64(row, "revoked_at"),
		RevokeReason: RevokeReason(dbutils.GetString(row, "revoke_reason")),
		CreatedAt:    dbutils.GetInt64(row, "created_at"),
	}, nil
}

func (s *tokenStore) GetRefreshToken(jti string) (*RefreshToken, error) {
	dbClient, err := s.getDBClient()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetRefreshToken, jti)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrRefreshTokenNotFound
	}

	row := results[0]
	return &RefreshToken{
		JTI:        dbutils.GetString(row, "jti"),
		FamilyID:   dbutils.GetString(row, "family_id"),
		ClientID:   dbutils.GetString(row, "client_id"),
		UserID:     dbutils.GetString(row, "user_id"),
		Scopes:     dbutils.GetSpaceSeparated(row, "scopes"),
		Generation: int(dbutils.GetInt64(row, "generation")),
		ParentJTI:  dbutils.GetString(row, "parent_jti"),
		Revoked:    dbutils.GetBool(row, "revoked"),
		IssuedAt:   dbutils.GetInt64(row, "issued_at"),
		ExpiresAt:  dbutils.GetInt64(row, "expires_at"),
	}, nil
}

// RotateRefreshToken revokes the presented refresh token with a conditional update and, in the
// same transaction, stores its successor and the new access token and touches the session.
// ErrRotationConflict is returned when the presented token was already revoked.
func (s *tokenStore) RotateRefreshToken(presentedJTI string, successor RefreshToken, accessToken AccessToken,
	sessionID string, now int64) error {
	dbClient, err := s.getDBClient()
	if err != nil {
		return err
	}

	return client.WithTransaction(dbClient, func(tx client.TransactionInterface) error {
		rows, err := tx.Execute(QueryRotateRefreshToken, presentedJTI)
		if err != nil {
			return fmt.Errorf("failed to revoke the presented refresh token: %w", err)
		}
		if rows != 1 {
			return ErrRotationConflict
		}

		if err := insertRefreshToken(tx, successor); err != nil {
			return err
		}
		if err := insertAccessToken(tx, accessToken); err != nil {
			return err
		}
		if sessionID != "" {
			if _, err := tx.Execute(QueryTouchSession, sessionID, now); err != nil {
				return fmt.Errorf("failed to update session activity: %w", err)
			}
		}
		return nil
	})
}

// RevokeTokenFamily revokes a family and all of its refresh tokens, and its access tokens when
// revokeAccessTokens is set, in one transaction. Revoking an already revoked family is not an error.
func (s *tokenStore) RevokeTokenFamily(familyID string, reason RevokeReason, revokeAccessTokens bool,
	now int64) error {
	dbClient, err := s.getDBClient()
	if err != nil {
		return err
	}

	return client.WithTransaction(dbClient, func(tx client.TransactionInterface) error {
		if _, err := tx.Execute(QueryRevokeTokenFamily, familyID, now, string(reason)); err != nil {
			return fmt.Errorf("failed to revoke token family: %w", err)
		}
		if _, err := tx.Execute(QueryRevokeFamilyRefreshTokens, familyID); err != nil {
			return fmt.Errorf("failed to revoke family refresh tokens: %w", err)
		}
		if revokeAccessTokens {
			if _, err := tx.Execute(QueryRevokeFamilyAccessTokens, familyID); err != nil {
				return fmt.Errorf("failed to revoke family access tokens: %w", err)
			}
		}
		return nil
	})
}

func (s *tokenStore) RevokeAccessToken(jti string) error {
	dbClient, err := s.getDBClient()
	if err != nil {
		return err
	}

	if _, err := dbClient.Execute(QueryRevokeAccessToken, jti); err != nil {
		return fmt.Errorf("failed to revoke access token: %w", err)
	}
	return nil
}

func (s *tokenStore) RevokeRefreshToken(jti string) error {
	dbClient, err := s.getDBClient()
	if err != nil {
		return err
	}

	if _, err := dbClient.Execute(QueryRevokeRefreshToken, jti); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (s *tokenStore) GetAccessTokenStatus(jti string) (*TokenStatus, error) {
	dbClient, err := s.getDBClient()
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetAccessTokenStatus, jti)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrAccessTokenNotFound
	}

	row := results[0]
	return &TokenStatus{
		Revoked:   dbutils.GetBool(row, "revoked"),
		FamilyID:  dbutils.GetString(row, "family_id"),
		ClientID:  dbutils.GetString(row, "client_id"),
		ExpiresAt: dbutils.GetInt64(row, "expires_at"),
	}, nil
}

// DeleteExpired removes expired tokens and the families left without tokens or sessions.
func (s *tokenStore) DeleteExpired(now int64) (int64, error) {
	dbClient, err := s.getDBClient()
	if err != nil {
		return 0, err
	}

	var deleted int64
	err = client.WithTransaction(dbClient, func(tx client.TransactionInterface) error {
		refreshRows, err := tx.Execute(QueryDeleteExpiredRefreshTokens, now)
		if err != nil {
			return fmt.Errorf("failed to delete expired refresh tokens: %w", err)
		}
		accessRows, err := tx.Execute(QueryDeleteExpiredAccessTokens, now)
		if err != nil {
			return fmt.Errorf("failed to delete expired access tokens: %w", err)
		}
		familyRows, err := tx.Execute(QueryDeleteOrphanedTokenFamilies)
		if err != nil {
			return fmt.Errorf("failed to delete orphaned token families: %w", err)
		}
		deleted = refreshRows + accessRows + familyRows
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func insertRefreshToken(tx client.TransactionInterface, token RefreshToken) error {
	if _, err := tx.Execute(QueryInsertRefreshToken, token.JTI, token.FamilyID, token.ClientID, token.UserID,
		strings.Join(token.Scopes, " "), token.Generation, token.ParentJTI, token.IssuedAt,
		token.ExpiresAt); err != nil {
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}
	return nil
}

func insertAccessToken(tx client.TransactionInterface, token AccessToken) error {
	if _, err := tx.Execute(QueryInsertAccessToken, token.JTI, token.FamilyID, token.ClientID, token.UserID,
		strings.Join(token.Scopes, " "), token.Audience, token.IssuedAt, token.ExpiresAt); err != nil {
		return fmt.Errorf("failed to insert access token: %w", err)
	}
	return nil
}
