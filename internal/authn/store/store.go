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

// Package store provides persistence for local user credentials.
package store

import (
	"fmt"
	"time"

	"github.com/asgardeo/tokenengine/internal/authn/constants"
	"github.com/asgardeo/tokenengine/internal/authn/model"
	sysconstants "github.com/asgardeo/tokenengine/internal/system/constants"
	dbmodel "github.com/asgardeo/tokenengine/internal/system/database/model"
	"github.com/asgardeo/tokenengine/internal/system/database/provider"
	dbutils "github.com/asgardeo/tokenengine/internal/system/database/utils"
)

// UserCredentialStoreInterface defines the persistence operations of the credential store.
type UserCredentialStoreInterface interface {
	GetUserByUsername(username string) (*model.UserCredential, error)
	GetUserByID(userID string) (*model.UserCredential, error)
	UpsertUser(user model.UserCredential) error
}

type userCredentialStore struct {
	dbProvider provider.DBProviderInterface
}

// NewUserCredentialStore creates a credential store on the identity database.
func NewUserCredentialStore(dbProvider provider.DBProviderInterface) UserCredentialStoreInterface {
	return &userCredentialStore{dbProvider: dbProvider}
}

func (s *userCredentialStore) GetUserByUsername(username string) (*model.UserCredential, error) {
	return s.getUser(QueryGetUserByUsername, username)
}

func (s *userCredentialStore) GetUserByID(userID string) (*model.UserCredential, error) {
	return s.getUser(QueryGetUserByID, userID)
}

// UpsertUser inserts the user or updates the existing user with the same username.
func (s *userCredentialStore) UpsertUser(user model.UserCredential) error {
	dbClient, err := s.dbProvider.GetDBClient(sysconstants.IdentityDBName)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	_, err = dbClient.Execute(QueryUpsertUser, user.UserID, user.Username, user.PasswordHash, user.TOTPSecret,
		user.GivenName, user.FamilyName, user.Email, dbutils.BoolToInt(user.Disabled), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func (s *userCredentialStore) getUser(query dbmodel.DBQuery, arg string) (*model.UserCredential, error) {
	dbClient, err := s.dbProvider.GetDBClient(sysconstants.IdentityDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, constants.ErrUserNotFound
	}

	row := results[0]
	return &model.UserCredential{
		UserID:       dbutils.GetString(row, "user_id"),
		Username:     dbutils.GetString(row, "username"),
		PasswordHash: dbutils.GetString(row, "password_hash"),
		TOTPSecret:   dbutils.GetString(row, "totp_secret"),
		GivenName:    dbutils.GetString(row, "given_name"),
		FamilyName:   dbutils.GetString(row, "family_name"),
		Email:        dbutils.GetString(row, "email"),
		Disabled:     dbutils.GetBool(row, "disabled"),
	}, nil
}
