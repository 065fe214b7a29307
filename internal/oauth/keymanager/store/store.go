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

// Package store provides persistence for signing keys.
package store

import (
	"fmt"

	"github.com/asgardeo/tokenengine/internal/oauth/keymanager/model"
	sysconstants "github.com/asgardeo/tokenengine/internal/system/constants"
	"github.com/asgardeo/tokenengine/internal/system/database/client"
	"github.com/asgardeo/tokenengine/internal/system/database/provider"
	dbutils "github.com/asgardeo/tokenengine/internal/system/database/utils"
)

// SigningKeyStoreInterface defines the persistence operations for signing keys.
type SigningKeyStoreInterface interface {
	ListKeys(now int64) ([]model.SigningKeyRecord, error)
	InsertKey(key model.SigningKeyRecord) error
	// RotateKeys retires the active keys, capping their validity at retiredNotAfter, and inserts
	// the new active key in the same transaction.
	RotateKeys(newKey model.SigningKeyRecord, retiredNotAfter int64) error
	DeleteLapsedKeys(now int64) (int64, error)
}

type signingKeyStore struct {
	dbProvider provider.DBProviderInterface
}

// NewSigningKeyStore creates a signing key store on the identity database.
func NewSigningKeyStore(dbProvider provider.DBProviderInterface) SigningKeyStoreInterface {
	return &signingKeyStore{dbProvider: dbProvider}
}

func (s *signingKeyStore) ListKeys(now int64) ([]model.SigningKeyRecord, error) {
	dbClient, err := s.dbProvider.GetDBClient(sysconstants.IdentityDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(QueryListSigningKeys, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list signing keys: %w", err)
	}

	keys := make([]model.SigningKeyRecord, 0, len(results))
	for _, row := range results {
		keys = append(keys, model.SigningKeyRecord{
			KID:           dbutils.GetString(row, "kid"),
			Algorithm:     dbutils.GetString(row, "algorithm"),
			Status:        model.KeyStatus(dbutils.GetString(row, "status")),
			PrivateKeyPEM: dbutils.GetString(row, "private_key"),
			PublicKeyPEM:  dbutils.GetString(row, "public_key"),
			NotBefore:     dbutils.GetInt64(row, "not_before"),
			NotAfter:      dbutils.GetInt64(row, "not_after"),
			CreatedAt:     dbutils.GetInt64(row, "created_at"),
		})
	}
	return keys, nil
}

func (s *signingKeyStore) InsertKey(key model.SigningKeyRecord) error {
	dbClient, err := s.dbProvider.GetDBClient(sysconstants.IdentityDBName)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}
	if _, err := dbClient.Execute(QueryInsertSigningKey, insertArgs(key)...); err != nil {
		return fmt.Errorf("failed to insert signing key: %w", err)
	}
	return nil
}

func (s *signingKeyStore) RotateKeys(newKey model.SigningKeyRecord, retiredNotAfter int64) error {
	dbClient, err := s.dbProvider.GetDBClient(sysconstants.IdentityDBName)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	return client.WithTransaction(dbClient, func(tx client.TransactionInterface) error {
		if _, err := tx.Execute(QueryRetireActiveSigningKeys, retiredNotAfter); err != nil {
			return fmt.Errorf("failed to retire signing keys: %w", err)
		}
		if _, err := tx.Execute(QueryInsertSigningKey, insertArgs(newKey)...); err != nil {
			return fmt.Errorf("failed to insert signing key: %w", err)
		}
		return nil
	})
}

func (s *signingKeyStore) DeleteLapsedKeys(now int64) (int64, error) {
	dbClient, err := s.dbProvider.GetDBClient(sysconstants.IdentityDBName)
	if err != nil {
		return 0, fmt.Errorf("failed to get database client: %w", err)
	}
	rows, err := dbClient.Execute(QueryDeleteLapsedSigningKeys, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete lapsed signing keys: %w", err)
	}
	return rows, nil
}

func insertArgs(key model.SigningKeyRecord) []any {
	return []any{key.KID, key.Algorithm, string(key.Status), key.PrivateKeyPEM, key.PublicKeyPEM,
		key.NotBefore, key.NotAfter, key.CreatedAt}
}
