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

// Package authn provides the local user authentication provider used by the authorization
// endpoint and the legacy password grant.
package authn

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/asgardeo/tokenengine/internal/authn/constants"
	"github.com/asgardeo/tokenengine/internal/authn/model"
	"github.com/asgardeo/tokenengine/internal/authn/otp"
	"github.com/asgardeo/tokenengine/internal/authn/store"
	oauth2const "github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/crypto"
	"github.com/asgardeo/tokenengine/internal/system/crypto/hash"
	"github.com/asgardeo/tokenengine/internal/system/error/serviceerror"
	"github.com/asgardeo/tokenengine/internal/system/log"
	"github.com/asgardeo/tokenengine/internal/system/utils"
)

const loggerComponentName = "Authenticator"

// dummyPasswordHash is compared against when the user does not exist so that unknown users and
// wrong passwords take the same time.
const dummyPasswordHash = "$2a$12$C6UzMDM.H6dfI/f/IKcEeO5b6x7S6l8Xb0ZQ0tqz6Ww0M6lZyBf2e"

// AuthenticatorInterface defines the user authentication provider.
type AuthenticatorInterface interface {
	Authenticate(credentials model.Credentials) (*model.AuthenticatedUser, *serviceerror.ServiceError)
	GetUserProfile(userID string) (*model.UserProfile, error)
	SeedUsers(users []config.UserConfig) error
}

type authenticator struct {
	store         store.UserCredentialStoreInterface
	cryptoService crypto.CryptoServiceInterface
	validate      *validator.Validate
	now           func() time.Time
}

// NewAuthenticator creates the local authenticator over the credential store.
func NewAuthenticator(credentialStore store.UserCredentialStoreInterface,
	cryptoService crypto.CryptoServiceInterface) AuthenticatorInterface {
	return &authenticator{
		store:         credentialStore,
		cryptoService: cryptoService,
		validate:      validator.New(),
		now:           time.Now,
	}
}

// Authenticate verifies the username, password and, for users with a TOTP secret, the one-time
// password. Unknown users, wrong passwords and disabled users all yield ErrorInvalidCredentials.
func (a *authenticator) Authenticate(credentials model.Credentials) (
	*model.AuthenticatedUser, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if err := a.validate.Struct(credentials); err != nil {
		logger.Debug("Credential validation failed", log.Error(err))
		return nil, &constants.ErrorInvalidCredentialFormat
	}

	user, err := a.store.GetUserByUsername(credentials.Username)
	if err != nil {
		if errors.Is(err, constants.ErrUserNotFound) {
			hash.ComparePassword(dummyPasswordHash, credentials.Password)
			logger.Debug("Authentication failed", log.String("username", log.MaskString(credentials.Username)))
			return nil, &constants.ErrorInvalidCredentials
		}
		logger.Error("Failed to load user credentials", log.Error(err))
		return nil, &serviceerror.InternalServerError
	}

	if !hash.ComparePassword(user.PasswordHash, credentials.Password) || user.Disabled {
		logger.Debug("Authentication failed", log.String("username", log.MaskString(credentials.Username)))
		return nil, &constants.ErrorInvalidCredentials
	}

	amr := []string{oauth2const.AMRPassword}
	if user.TOTPSecret != "" {
		if credentials.OTP == "" {
			return nil, &constants.ErrorOTPRequired
		}
		secret, err := a.cryptoService.DecryptString(user.TOTPSecret)
		if err != nil {
			logger.Error("Failed to decrypt TOTP secret", log.Error(err))
			return nil, &serviceerror.InternalServerError
		}
		if !otp.VerifyTOTP(secret, credentials.OTP, a.now()) {
			return nil, &constants.ErrorInvalidOTP
		}
		amr = append(amr, oauth2const.AMROTP)
	}

	return &model.AuthenticatedUser{
		UserID:   user.UserID,
		Username: user.Username,
		Profile: model.UserProfile{
			GivenName:  user.GivenName,
			FamilyName: user.FamilyName,
			Email:      user.Email,
		},
		AMR:      amr,
		AuthTime: a.now().Unix(),
	}, nil
}

// GetUserProfile returns the profile claims of a user.
func (a *authenticator) GetUserProfile(userID string) (*model.UserProfile, error) {
	user, err := a.store.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	return &model.UserProfile{
		GivenName:  user.GivenName,
		FamilyName: user.FamilyName,
		Email:      user.Email,
	}, nil
}

// SeedUsers upserts the users declared in the deployment configuration.
func (a *authenticator) SeedUsers(users []config.UserConfig) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	for _, userConfig := range users {
		if err := a.validate.Var(userConfig.Password, "required,min=8,max=128"); err != nil {
			return fmt.Errorf("invalid password for user %s: %w", userConfig.Username, err)
		}

		passwordHash, err := hash.HashPassword(userConfig.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password of user %s: %w", userConfig.Username, err)
		}

		var encryptedSecret string
		if userConfig.TOTPSecret != "" {
			encryptedSecret, err = a.cryptoService.EncryptString(userConfig.TOTPSecret)
			if err != nil {
				return fmt.Errorf("failed to encrypt TOTP secret of user %s: %w", userConfig.Username, err)
			}
		}

		userID := userConfig.ID
		if userID == "" {
			userID = utils.GenerateUUID()
		}

		if err := a.store.UpsertUser(model.UserCredential{
			UserID:       userID,
			Username:     userConfig.Username,
			PasswordHash: passwordHash,
			TOTPSecret:   encryptedSecret,
			GivenName:    userConfig.GivenName,
			FamilyName:   userConfig.FamilyName,
			Email:        userConfig.Email,
		}); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", userConfig.Username, err)
		}
	}
	if len(users) > 0 {
		logger.Info("Users seeded from configuration", log.Int("count", len(users)))
	}
	return nil
}
