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

// Package session tracks the login sessions behind token families and implements logout.
package session

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/asgardeo/tokenengine/internal/application"
	"github.com/asgardeo/tokenengine/internal/oauth/jwt"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	oauthmodel "github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenstore"
	"github.com/asgardeo/tokenengine/internal/oauth/session/model"
	"github.com/asgardeo/tokenengine/internal/oauth/session/store"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/log"
	"github.com/asgardeo/tokenengine/internal/system/metrics"
	"github.com/asgardeo/tokenengine/internal/system/utils"
)

const loggerComponentName = "SessionService"

const defaultSessionValidity = 24 * time.Hour

var (
	// ErrSessionInactive is returned when a session is ended or expired.
	ErrSessionInactive = errors.New("session is not active")
	// ErrSessionMismatch is returned when a session belongs to another user or client, or does not
	// cover the requested scopes.
	ErrSessionMismatch = errors.New("session does not match the request")
)

// SessionServiceInterface defines the session tracker.
type SessionServiceInterface interface {
	// CreateSession builds the session of a new token family. The token store persists it in the
	// same transaction as the family.
	CreateSession(userID, clientID, familyID, authMethod string, scopes []string) model.Session
	Touch(sessionID string) error
	GetActiveSession(userID, clientID, sid string) (*model.Session, error)
	ValidateSession(sessionID, userID, clientID string, scopes []string) error
	Logout(idTokenHint, postLogoutRedirectURI, state string) (*model.LogoutResult, *oauthmodel.ErrorResponse)
	PurgeExpired(now time.Time) (int64, error)
}

type sessionService struct {
	store      store.SessionStoreInterface
	tokenStore tokenstore.TokenStoreInterface
	jwtService jwt.JWTServiceInterface
	appService application.ApplicationServiceInterface
	issuer     string
	validity   time.Duration
	now        func() time.Time
}

// NewSessionService creates a session service.
func NewSessionService(sessionStore store.SessionStoreInterface, tokenStore tokenstore.TokenStoreInterface,
	jwtService jwt.JWTServiceInterface, appService application.ApplicationServiceInterface) SessionServiceInterface {
	oauthConfig := config.GetServerRuntime().Config.OAuth

	validity := time.Duration(oauthConfig.Session.ValidityPeriod) * time.Second
	if validity <= 0 {
		validity = defaultSessionValidity
	}

	return &sessionService{
		store:      sessionStore,
		tokenStore: tokenStore,
		jwtService: jwtService,
		appService: appService,
		issuer:     oauthConfig.JWT.Issuer,
		validity:   validity,
		now:        time.Now,
	}
}

func (ss *sessionService) CreateSession(userID, clientID, familyID, authMethod string,
	scopes []string) model.Session {
	now := ss.now().Unix()
	return model.Session{
		ID:           utils.GenerateUUID(),
		UserID:       userID,
		ClientID:     clientID,
		FamilyID:     familyID,
		Scopes:       scopes,
		AuthMethod:   authMethod,
		State:        model.SessionStateActive,
		CreatedAt:    now,
		LastActivity: now,
		ExpiresAt:    now + int64(ss.validity/time.Second),
	}
}

func (ss *sessionService) Touch(sessionID string) error {
	return ss.store.TouchSession(sessionID, ss.now().Unix())
}

// GetActiveSession resolves a live session by sid, or the latest live session of the user at the
// client when no sid is given.
func (ss *sessionService) GetActiveSession(userID, clientID, sid string) (*model.Session, error) {
	now := ss.now().Unix()
	if sid == "" {
		return ss.store.GetLatestActiveSession(userID, clientID, now)
	}

	session, err := ss.store.GetSession(sid)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID || session.ClientID != clientID {
		return nil, ErrSessionMismatch
	}
	if !session.IsActive(now) {
		return nil, ErrSessionInactive
	}
	return session, nil
}

func (ss *sessionService) ValidateSession(sessionID, userID, clientID string, scopes []string) error {
	session, err := ss.store.GetSession(sessionID)
	if err != nil {
		return err
	}
	if !session.IsActive(ss.now().Unix()) {
		return ErrSessionInactive
	}
	if session.UserID != userID || session.ClientID != clientID {
		return ErrSessionMismatch
	}
	for _, scope := range scopes {
		if !slices.Contains(session.Scopes, scope) {
			return ErrSessionMismatch
		}
	}
	return nil
}

// Logout ends the session named by the ID token hint and revokes its token family. Sessions of
// the same user at other clients are not affected. Access tokens already issued stay valid until
// they expire.
func (ss *sessionService) Logout(idTokenHint, postLogoutRedirectURI, state string) (
	*model.LogoutResult, *oauthmodel.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if idTokenHint == "" {
		// Nothing identifies the client, so the redirect URI cannot be honoured.
		return &model.LogoutResult{}, nil
	}

	claims, err := ss.jwtService.Verify(idTokenHint, jwt.VerifyOptions{
		Issuer:       ss.issuer,
		AllowExpired: true,
		ExpectedType: constants.JWTTypeDefault,
	})
	if err != nil || claims.IsRefreshToken() || len(claims.Audience) == 0 {
		logger.Debug("Invalid ID token hint", log.Error(err))
		return nil, &oauthmodel.ErrorResponse{Error: constants.ErrorInvalidRequest,
			ErrorDescription: "Invalid id_token_hint"}
	}
	clientID := claims.Audience[0]

	session, err := ss.GetActiveSession(claims.Subject, clientID, claims.SessionID)
	switch {
	case err == nil:
		if svcErr := ss.endSession(session); svcErr != nil {
			return nil, svcErr
		}
	case errors.Is(err, store.ErrSessionNotFound), errors.Is(err, ErrSessionInactive),
		errors.Is(err, ErrSessionMismatch):
		logger.Debug("No active session to end", log.String("clientID", clientID))
	default:
		logger.Error("Failed to resolve the session", log.Error(err))
		return nil, &oauthmodel.ErrorResponse{Error: constants.ErrorServerError,
			ErrorDescription: "Failed to process the logout request"}
	}

	return &model.LogoutResult{RedirectURI: ss.resolveRedirectURI(clientID, postLogoutRedirectURI),
		State: state}, nil
}

func (ss *sessionService) endSession(session *model.Session) *oauthmodel.ErrorResponse {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	now := ss.now().Unix()

	ended, err := ss.store.EndSession(session.ID, now)
	if err != nil {
		logger.Error("Failed to end the session", log.String("sessionID", session.ID), log.Error(err))
		return &oauthmodel.ErrorResponse{Error: constants.ErrorServerError,
			ErrorDescription: "Failed to process the logout request"}
	}
	if !ended {
		return nil
	}

	if err := ss.tokenStore.RevokeTokenFamily(session.FamilyID, tokenstore.RevokeReasonLogout, false,
		now); err != nil {
		// The ended session already blocks refreshes of this family.
		logger.Error("Failed to revoke the token family of the session", log.String("familyID",
			session.FamilyID), log.Error(err))
		return &oauthmodel.ErrorResponse{Error: constants.ErrorServerError,
			ErrorDescription: "Failed to process the logout request"}
	}
	metrics.TokenRevocationsTotal.WithLabelValues("refresh_token", string(tokenstore.RevokeReasonLogout)).Inc()

	logger.Debug("Session ended", log.String("sessionID", session.ID), log.String("clientID", session.ClientID))
	return nil
}

func (ss *sessionService) resolveRedirectURI(clientID, postLogoutRedirectURI string) string {
	if postLogoutRedirectURI == "" {
		return ""
	}
	app, err := ss.appService.GetOAuthApplication(clientID)
	if err != nil {
		return ""
	}
	if app.ValidatePostLogoutRedirectURI(postLogoutRedirectURI) {
		return postLogoutRedirectURI
	}
	return ""
}

// PurgeExpired deletes expired and ended sessions.
func (ss *sessionService) PurgeExpired(now time.Time) (int64, error) {
	deleted, err := ss.store.DeleteStale(now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return deleted, nil
}
