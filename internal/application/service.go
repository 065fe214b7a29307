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

// Package application provides the read side of the OAuth client registry and seeds clients from
// the deployment configuration.
package application

import (
	"errors"
	"fmt"

	"github.com/asgardeo/tokenengine/internal/application/constants"
	"github.com/asgardeo/tokenengine/internal/application/model"
	"github.com/asgardeo/tokenengine/internal/application/store"
	oauth2const "github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/crypto/hash"
	"github.com/asgardeo/tokenengine/internal/system/log"
)

// ApplicationServiceInterface defines the client registry operations used by the OAuth endpoints.
type ApplicationServiceInterface interface {
	GetOAuthApplication(clientID string) (*model.OAuthApplication, error)
	AuthenticateClient(clientID, clientSecret string,
		method oauth2const.TokenEndpointAuthMethod) (*model.OAuthApplication, error)
	SeedApplications(clients []config.ClientConfig) error
}

// applicationService is the default implementation of ApplicationServiceInterface.
type applicationService struct {
	appStore store.ApplicationStoreInterface
}

// NewApplicationService creates a new instance of the application service.
func NewApplicationService(appStore store.ApplicationStoreInterface) ApplicationServiceInterface {
	return &applicationService{appStore: appStore}
}

// GetOAuthApplication returns the client registered under clientID.
func (as *applicationService) GetOAuthApplication(clientID string) (*model.OAuthApplication, error) {
	if clientID == "" {
		return nil, constants.ApplicationNotFoundError
	}
	return as.appStore.GetOAuthApplication(clientID)
}

// AuthenticateClient authenticates a client at the token, revocation and introspection endpoints.
// Every credential failure is reported as ErrInvalidClientCredentials, ErrClientSecretRequired or
// ErrAuthMethodNotAllowed. Other errors are server side failures.
func (as *applicationService) AuthenticateClient(clientID, clientSecret string,
	method oauth2const.TokenEndpointAuthMethod) (*model.OAuthApplication, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ApplicationService"),
		log.String(log.LoggerKeyClientID, clientID))

	app, err := as.GetOAuthApplication(clientID)
	if err != nil {
		if errors.Is(err, constants.ApplicationNotFoundError) {
			logger.Debug("Client authentication failed: unknown client")
			return nil, constants.ErrInvalidClientCredentials
		}
		return nil, err
	}

	if method == oauth2const.TokenEndpointAuthMethodNone && !app.IsPublic() {
		return nil, constants.ErrClientSecretRequired
	}
	if !app.IsAllowedTokenEndpointAuthMethod(method) {
		logger.Debug("Client authentication failed: method not allowed", log.String("method", string(method)))
		return nil, constants.ErrAuthMethodNotAllowed
	}
	if method != oauth2const.TokenEndpointAuthMethodNone &&
		!hash.ComparePassword(app.HashedClientSecret, clientSecret) {
		logger.Debug("Client authentication failed: secret mismatch")
		return nil, constants.ErrInvalidClientCredentials
	}

	return app, nil
}

// SeedApplications upserts the clients declared in the deployment configuration.
func (as *applicationService) SeedApplications(clients []config.ClientConfig) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ApplicationService"))

	for _, clientConfig := range clients {
		app, err := buildApplicationFromConfig(clientConfig)
		if err != nil {
			return err
		}
		if err := as.appStore.UpsertOAuthApplication(*app); err != nil {
			return fmt.Errorf("failed to seed client %s: %w", clientConfig.ClientID, err)
		}
		logger.Debug("Seeded OAuth client", log.String(log.LoggerKeyClientID, app.ClientID))
	}
	if len(clients) > 0 {
		logger.Info("OAuth clients seeded from configuration", log.Int("count", len(clients)))
	}
	return nil
}

// buildApplicationFromConfig converts a configured client into the registry model, hashing the
// secret and filling the defaults for its client type.
func buildApplicationFromConfig(clientConfig config.ClientConfig) (*model.OAuthApplication, error) {
	app := &model.OAuthApplication{
		ClientID:               clientConfig.ClientID,
		ClientType:             constants.ClientType(clientConfig.ClientType),
		RedirectURIs:           clientConfig.RedirectURIs,
		PostLogoutRedirectURIs: clientConfig.PostLogoutRedirectURIs,
		Scopes:                 clientConfig.Scopes,
		Audience:               clientConfig.Audience,
		AccessTokenValidity:    clientConfig.AccessTokenValidity,
		RefreshTokenValidity:   clientConfig.RefreshTokenValidity,
	}
	if app.ClientType == "" {
		if clientConfig.ClientSecret == "" {
			app.ClientType = constants.ClientTypePublic
		} else {
			app.ClientType = constants.ClientTypeConfidential
		}
	}

	if app.ClientType == constants.ClientTypeConfidential {
		if clientConfig.ClientSecret == "" {
			return nil, fmt.Errorf("client %s is confidential but has no secret", clientConfig.ClientID)
		}
		hashed, err := hash.HashPassword(clientConfig.ClientSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to hash secret of client %s: %w", clientConfig.ClientID, err)
		}
		app.HashedClientSecret = hashed
	}

	if len(clientConfig.GrantTypes) == 0 {
		app.GrantTypes = []oauth2const.GrantType{
			oauth2const.GrantTypeAuthorizationCode, oauth2const.GrantTypeRefreshToken}
	}
	for _, gt := range clientConfig.GrantTypes {
		app.GrantTypes = append(app.GrantTypes, oauth2const.GrantType(gt))
	}

	if len(clientConfig.TokenEndpointAuthMethods) == 0 {
		if app.IsPublic() {
			app.TokenEndpointAuthMethods = []oauth2const.TokenEndpointAuthMethod{
				oauth2const.TokenEndpointAuthMethodNone}
		} else {
			app.TokenEndpointAuthMethods = []oauth2const.TokenEndpointAuthMethod{
				oauth2const.TokenEndpointAuthMethodClientSecretBasic,
				oauth2const.TokenEndpointAuthMethodClientSecretPost,
			}
		}
	}
	for _, m := range clientConfig.TokenEndpointAuthMethods {
		app.TokenEndpointAuthMethods = append(app.TokenEndpointAuthMethods, oauth2const.TokenEndpointAuthMethod(m))
	}

	return app, nil
}
