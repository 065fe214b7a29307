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

// Package authz implements the authorization endpoint: request validation, user authentication
// hand-off and authorization code issuance.
package authz

import (
	"errors"
	"fmt"
	"time"

	"github.com/asgardeo/tokenengine/internal/application"
	appconstants "github.com/asgardeo/tokenengine/internal/application/constants"
	"github.com/asgardeo/tokenengine/internal/authn"
	authnmodel "github.com/asgardeo/tokenengine/internal/authn/model"
	authzconstants "github.com/asgardeo/tokenengine/internal/oauth/oauth2/authz/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/authz/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/authz/store"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/pkce"
	"github.com/asgardeo/tokenengine/internal/oauth/scope"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/crypto/hash"
	"github.com/asgardeo/tokenengine/internal/system/log"
	"github.com/asgardeo/tokenengine/internal/system/utils"
)

const loggerComponentName = "AuthorizationService"

// maxCodeValidity caps the configured authorization code lifetime.
const maxCodeValidity = 60 * time.Second

// AuthorizationServiceInterface defines the operations of the authorization request and code issuer.
type AuthorizationServiceInterface interface {
	Begin(params model.AuthorizationParams) (*model.AuthorizationRequest, *model.AuthorizationError)
	Authenticate(requestID string, credentials authnmodel.Credentials) (*model.IssuedCode,
		*model.AuthorizationError)
	IssueCode(requestID string, user *authnmodel.AuthenticatedUser) (*model.IssuedCode, error)
	Abandon(requestID string) *model.AuthorizationError
	GetAuthorizationCode(code string) (*model.AuthorizationCode, error)
	ConsumeAuthorizationCode(code string) error
	PurgeExpired(now time.Time) (int64, error)
}

type authorizationService struct {
	store           store.AuthorizationStoreInterface
	appService      application.ApplicationServiceInterface
	authenticator   authn.AuthenticatorInterface
	scopeValidator  scope.ScopeValidatorInterface
	requestValidity time.Duration
	codeValidity    time.Duration
	pkceConfig      config.PKCEConfig
	now             func() time.Time
}

// NewAuthorizationService creates the authorization service.
func NewAuthorizationService(authzStore store.AuthorizationStoreInterface,
	appService application.ApplicationServiceInterface, authenticator authn.AuthenticatorInterface,
	scopeValidator scope.ScopeValidatorInterface) AuthorizationServiceInterface {
	oauthConfig := config.GetServerRuntime().Config.OAuth

	codeValidity := time.Duration(oauthConfig.AuthorizationCode.ValidityPeriod) * time.Second
	if codeValidity <= 0 || codeValidity > maxCodeValidity {
		codeValidity = maxCodeValidity
	}

	return &authorizationService{
		store:           authzStore,
		appService:      appService,
		authenticator:   authenticator,
		scopeValidator:  scopeValidator,
		requestValidity: time.Duration(oauthConfig.AuthorizationRequest.ValidityPeriod) * time.Second,
		codeValidity:    codeValidity,
		pkceConfig:      oauthConfig.PKCE,
		now:             time.Now,
	}
}

// Begin validates an authorization request and persists it awaiting user authentication.
// Errors found before the redirect URI is trusted carry no RedirectURI.
func (as *authorizationService) Begin(params model.AuthorizationParams) (
	*model.AuthorizationRequest, *model.AuthorizationError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if params.ClientID == "" {
		return nil, &model.AuthorizationError{Error: constants.ErrorInvalidRequest,
			ErrorDescription: "Missing client_id parameter"}
	}

	app, err := as.appService.GetOAuthApplication(params.ClientID)
	if err != nil {
		if errors.Is(err, appconstants.ApplicationNotFoundError) {
			return nil, &model.AuthorizationError{Error: constants.ErrorInvalidClient,
				ErrorDescription: "Invalid client_id"}
		}
		logger.Error("Failed to retrieve the client", log.String("clientID", params.ClientID), log.Error(err))
		return nil, &model.AuthorizationError{Error: constants.ErrorServerError,
			ErrorDescription: "Failed to process the authorization request"}
	}

	redirectURI, err := app.ValidateRedirectURI(params.RedirectURI)
	if err != nil {
		logger.Debug("Redirect URI validation failed", log.String("clientID", params.ClientID), log.Error(err))
		return nil, &model.AuthorizationError{Error: constants.ErrorInvalidRequest,
			ErrorDescription: "Invalid redirect URI"}
	}

	// From here on errors are sent back to the client.
	fail := func(code, desc string) (*model.AuthorizationRequest, *model.AuthorizationError) {
		return nil, &model.AuthorizationError{Error: code, ErrorDescription: desc, RedirectURI: redirectURI,
			State: params.State}
	}

	if params.ResponseType == "" {
		return fail(constants.ErrorInvalidRequest, "Missing response_type parameter")
	}
	if constants.ResponseType(params.ResponseType) != constants.ResponseTypeCode {
		return fail(constants.ErrorUnsupportedResponseType, "Unsupported response type")
	}
	if !app.IsAllowedGrantType(constants.GrantTypeAuthorizationCode) {
		return fail(constants.ErrorUnauthorizedClient, "Authorization code grant type is not allowed for the client")
	}

	scopes, scopeErr := as.scopeValidator.ValidateScopes(params.Scope, app)
	if scopeErr != nil {
		return fail(scopeErr.Error, scopeErr.ErrorDescription)
	}

	pkceRequired := app.IsPublic() || as.pkceConfig.RequiredForConfidentialClients
	if params.CodeChallenge == "" {
		if pkceRequired {
			return fail(constants.ErrorInvalidRequest, "PKCE code_challenge is required")
		}
		if params.CodeChallengeMethod != "" {
			return fail(constants.ErrorInvalidRequest, "code_challenge_method sent without code_challenge")
		}
	} else {
		if err := pkce.ValidateCodeChallenge(params.CodeChallenge, params.CodeChallengeMethod,
			as.pkceConfig.AllowPlain); err != nil {
			return fail(constants.ErrorInvalidRequest, "Invalid PKCE code challenge or method")
		}
		params.CodeChallengeMethod = pkce.NormalizeMethod(params.CodeChallengeMethod)
	}

	now := as.now()
	request := model.AuthorizationRequest{
		ID:                  utils.GenerateUUID(),
		ClientID:            app.ClientID,
		RedirectURI:         redirectURI,
		Scopes:              scopes,
		State:               params.State,
		Nonce:               params.Nonce,
		CodeChallenge:       params.CodeChallenge,
		CodeChallengeMethod: params.CodeChallengeMethod,
		Status:              string(authzconstants.RequestStatusAwaitingAuthentication),
		CreatedAt:           now.Unix(),
		ExpiresAt:           now.Add(as.requestValidity).Unix(),
	}
	if err := as.store.InsertAuthorizationRequest(request); err != nil {
		logger.Error("Failed to persist the authorization request", log.Error(err))
		return fail(constants.ErrorServerError, "Failed to process the authorization request")
	}

	logger.Debug("Authorization request created", log.String("requestID", request.ID),
		log.String("clientID", request.ClientID))
	return &request, nil
}

// Authenticate verifies the user's credentials for a pending request and issues the code.
// A failed authentication leaves the request open and sets RetryLogin.
func (as *authorizationService) Authenticate(requestID string, credentials authnmodel.Credentials) (
	*model.IssuedCode, *model.AuthorizationError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	request, authzErr := as.getLiveRequest(requestID)
	if authzErr != nil {
		return nil, authzErr
	}
	if request.Status != string(authzconstants.RequestStatusAwaitingAuthentication) {
		return nil, &model.AuthorizationError{Error: constants.ErrorInvalidRequest,
			ErrorDescription: "The authorization request is no longer awaiting authentication"}
	}

	user, svcErr := as.authenticator.Authenticate(credentials)
	if svcErr != nil {
		logger.Debug("User authentication failed", log.String("requestID", requestID),
			log.String("code", svcErr.Code))
		return nil, &model.AuthorizationError{Error: constants.ErrorAccessDenied,
			ErrorDescription: svcErr.ErrorDescription, RetryLogin: true}
	}

	if err := as.store.MarkRequestAuthenticated(requestID, user.UserID, user.AuthTime, user.AMR,
		as.now().Unix()); err != nil {
		if errors.Is(err, authzconstants.ErrStateTransitionFailed) {
			return nil, &model.AuthorizationError{Error: constants.ErrorInvalidRequest,
				ErrorDescription: "The authorization request is no longer awaiting authentication"}
		}
		logger.Error("Failed to record the authentication", log.Error(err))
		return nil, &model.AuthorizationError{Error: constants.ErrorServerError,
			ErrorDescription: "Failed to process the authorization request", RedirectURI: request.RedirectURI,
			State: request.State}
	}

	issued, err := as.IssueCode(requestID, user)
	if err != nil {
		logger.Error("Failed to issue the authorization code", log.Error(err))
		return nil, &model.AuthorizationError{Error: constants.ErrorServerError,
			ErrorDescription: "Failed to issue the authorization code", RedirectURI: request.RedirectURI,
			State: request.State}
	}
	return issued, nil
}

// IssueCode issues a fresh code for an authenticated request. The request moves to CODE_ISSUED
// in the same transaction that stores the code, so a request yields at most one code.
func (as *authorizationService) IssueCode(requestID string, user *authnmodel.AuthenticatedUser) (
	*model.IssuedCode, error) {
	request, err := as.store.GetAuthorizationRequest(requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load authorization request: %w", err)
	}

	now := as.now()
	if now.Unix() >= request.ExpiresAt {
		return nil, authzconstants.ErrStateTransitionFailed
	}

	codeValue, err := utils.GenerateSecureRandomString(authzconstants.AuthorizationCodeBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate authorization code: %w", err)
	}

	code := model.AuthorizationCode{
		CodeID:              utils.GenerateUUID(),
		CodeHash:            hash.HashString(codeValue),
		RequestID:           request.ID,
		ClientID:            request.ClientID,
		RedirectURI:         request.RedirectURI,
		UserID:              user.UserID,
		Scopes:              request.Scopes,
		Nonce:               request.Nonce,
		CodeChallenge:       request.CodeChallenge,
		CodeChallengeMethod: request.CodeChallengeMethod,
		AMR:                 user.AMR,
		AuthTime:            user.AuthTime,
		State:               authzconstants.AuthCodeStateActive,
		IssuedAt:            now.Unix(),
		ExpiresAt:           now.Add(as.codeValidity).Unix(),
	}
	if err := as.store.IssueAuthorizationCode(code, now.Unix()); err != nil {
		return nil, err
	}

	return &model.IssuedCode{Code: codeValue, RedirectURI: request.RedirectURI, State: request.State}, nil
}

// Abandon ends a pending request after the user cancelled. The returned error carries the
// access_denied redirect for the client when the request was abandoned.
func (as *authorizationService) Abandon(requestID string) *model.AuthorizationError {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	request, authzErr := as.getLiveRequest(requestID)
	if authzErr != nil {
		return authzErr
	}

	if err := as.store.AbandonAuthorizationRequest(requestID); err != nil {
		if errors.Is(err, authzconstants.ErrStateTransitionFailed) {
			return &model.AuthorizationError{Error: constants.ErrorInvalidRequest,
				ErrorDescription: "The authorization request has already completed"}
		}
		logger.Error("Failed to abandon the authorization request", log.Error(err))
		return &model.AuthorizationError{Error: constants.ErrorServerError,
			ErrorDescription: "Failed to process the authorization request"}
	}

	logger.Debug("Authorization request abandoned", log.String("requestID", requestID))
	return &model.AuthorizationError{Error: constants.ErrorAccessDenied,
		ErrorDescription: "The user denied the authorization request", RedirectURI: request.RedirectURI,
		State: request.State}
}

// getLiveRequest loads a request and rejects it when it is unknown or past its expiry. An expired
// request is reported to the client since its redirect URI was validated when it was created.
func (as *authorizationService) getLiveRequest(requestID string) (*model.AuthorizationRequest,
	*model.AuthorizationError) {
	if requestID == "" {
		return nil, &model.AuthorizationError{Error: constants.ErrorInvalidRequest,
			ErrorDescription: "Missing authId parameter"}
	}

	request, err := as.store.GetAuthorizationRequest(requestID)
	if err != nil {
		if !errors.Is(err, authzconstants.ErrAuthorizationRequestNotFound) {
			log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
				Error("Failed to load the authorization request", log.Error(err))
			return nil, &model.AuthorizationError{Error: constants.ErrorServerError,
				ErrorDescription: "Failed to process the authorization request"}
		}
		return nil, &model.AuthorizationError{Error: constants.ErrorInvalidRequest,
			ErrorDescription: "Unknown authorization request"}
	}

	if as.now().Unix() >= request.ExpiresAt {
		return nil, &model.AuthorizationError{Error: constants.ErrorInvalidRequest,
			ErrorDescription: "The authorization request has expired", RedirectURI: request.RedirectURI,
			State: request.State}
	}
	return request, nil
}

// GetAuthorizationCode looks a code up by its value. Expiry and state are left to the caller.
func (as *authorizationService) GetAuthorizationCode(code string) (*model.AuthorizationCode, error) {
	if code == "" {
		return nil, authzconstants.ErrAuthorizationCodeNotFound
	}
	return as.store.GetAuthorizationCode(hash.HashString(code))
}

// ConsumeAuthorizationCode atomically marks a code consumed. Only one concurrent caller succeeds.
func (as *authorizationService) ConsumeAuthorizationCode(code string) error {
	return as.store.ConsumeAuthorizationCode(hash.HashString(code), as.now().Unix())
}

// PurgeExpired deletes expired requests and codes.
func (as *authorizationService) PurgeExpired(now time.Time) (int64, error) {
	return as.store.DeleteExpired(now.Unix())
}
