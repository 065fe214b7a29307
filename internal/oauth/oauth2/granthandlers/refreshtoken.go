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

package granthandlers

import (
	"errors"
	"slices"
	"time"

	appmodel "github.com/asgardeo/tokenengine/internal/application/model"
	"github.com/asgardeo/tokenengine/internal/oauth/jwt"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenstore"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/validator"
	"github.com/asgardeo/tokenengine/internal/oauth/scope"
	"github.com/asgardeo/tokenengine/internal/oauth/session"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/log"
	"github.com/asgardeo/tokenengine/internal/system/metrics"
)

// Reuse and expiry share this description so a replaying party cannot tell them apart.
const invalidRefreshTokenDesc = "Invalid or expired refresh token"

// refreshTokenGrantHandler handles the refresh token grant type with one-time-use rotation.
type refreshTokenGrantHandler struct {
	jwtService     jwt.JWTServiceInterface
	tokenStore     tokenstore.TokenStoreInterface
	sessionService session.SessionServiceInterface
	validator      validator.TokenValidatorInterface
	scopeValidator scope.ScopeValidatorInterface
	issuer         *tokenIssuer
	now            func() time.Time
}

func newRefreshTokenGrantHandler(jwtService jwt.JWTServiceInterface, tokenStore tokenstore.TokenStoreInterface,
	sessionService session.SessionServiceInterface, tokenValidator validator.TokenValidatorInterface,
	issuer *tokenIssuer) GrantHandlerInterface {
	return &refreshTokenGrantHandler{
		jwtService:     jwtService,
		tokenStore:     tokenStore,
		sessionService: sessionService,
		validator:      tokenValidator,
		scopeValidator: scope.NewAPIScopeValidator(),
		issuer:         issuer,
		now:            time.Now,
	}
}

// ValidateGrant validates the refresh token grant request.
func (h *refreshTokenGrantHandler) ValidateGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication) *model.ErrorResponse {
	if tokenRequest.GrantType != string(constants.GrantTypeRefreshToken) {
		return &model.ErrorResponse{
			Error:            constants.ErrorUnsupportedGrantType,
			ErrorDescription: "Unsupported grant type",
		}
	}
	if tokenRequest.RefreshToken == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Refresh token is required",
		}
	}
	return nil
}

// HandleGrant rotates the presented refresh token. A token presented after it has been rotated
// revokes its whole family.
func (h *refreshTokenGrantHandler) HandleGrant(tokenRequest *model.TokenRequest,
	oauthApp *appmodel.OAuthApplication) (*model.TokenResponseDTO, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RefreshTokenGrantHandler"),
		log.String(log.LoggerKeyClientID, oauthApp.ClientID))
	oauthConfig := config.GetServerRuntime().Config.OAuth
	now := h.now().Unix()

	// Expiry is checked after the revocation state so that replays of expired tokens still trip
	// reuse detection.
	claims, err := h.jwtService.Verify(tokenRequest.RefreshToken, jwt.VerifyOptions{
		Issuer:       oauthConfig.JWT.Issuer,
		ClockSkew:    time.Duration(oauthConfig.TokenValidation.ClockSkew) * time.Second,
		AllowExpired: true,
		ExpectedType: constants.JWTTypeDefault,
	})
	if err != nil || !claims.IsRefreshToken() || claims.ID == "" {
		logger.Debug("Refresh token verification failed", log.Error(err))
		return nil, invalidGrant(invalidRefreshTokenDesc)
	}

	stored, err := h.tokenStore.GetRefreshToken(claims.ID)
	if err != nil {
		if errors.Is(err, tokenstore.ErrRefreshTokenNotFound) {
			return nil, invalidGrant(invalidRefreshTokenDesc)
		}
		logger.Error("Failed to retrieve the refresh token", log.Error(err))
		return nil, serverError("Failed to process the refresh token")
	}
	if stored.ClientID != oauthApp.ClientID {
		logger.Debug("Refresh token was issued to a different client")
		return nil, invalidGrant(invalidRefreshTokenDesc)
	}
	if stored.Revoked {
		return nil, h.revokeOnReuse(stored.FamilyID, oauthApp.ClientID, now)
	}
	if stored.ExpiresAt <= now {
		return nil, invalidGrant(invalidRefreshTokenDesc)
	}

	family, err := h.tokenStore.GetTokenFamily(stored.FamilyID)
	if err != nil {
		logger.Error("Failed to retrieve the token family", log.String(log.LoggerKeyFamilyID, stored.FamilyID),
			log.Error(err))
		return nil, serverError("Failed to process the refresh token")
	}
	if family.Revoked {
		return nil, invalidGrant(invalidRefreshTokenDesc)
	}

	scopes, scopeErr := h.scopeValidator.ValidateNarrowing(tokenRequest.Scope, family.Scopes)
	if scopeErr != nil {
		return nil, &model.ErrorResponse{Error: scopeErr.Error, ErrorDescription: scopeErr.ErrorDescription}
	}

	if family.SessionID != "" {
		if err := h.sessionService.ValidateSession(family.SessionID, family.UserID, oauthApp.ClientID,
			scopes); err != nil {
			logger.Debug("Session no longer allows refresh", log.String("sessionID", family.SessionID),
				log.Error(err))
			return nil, invalidGrant(invalidRefreshTokenDesc)
		}
	}

	response, errResp := h.mintSuccessor(oauthApp, family, stored, scopes)
	if errResp != nil {
		return nil, errResp
	}

	err = h.tokenStore.RotateRefreshToken(stored.JTI,
		refreshTokenRecord(&response.RefreshToken, family.UserID, stored.JTI),
		accessTokenRecord(&response.AccessToken, family.UserID), family.SessionID, now)
	if err != nil {
		if errors.Is(err, tokenstore.ErrRotationConflict) {
			return nil, h.revokeOnReuse(stored.FamilyID, oauthApp.ClientID, now)
		}
		logger.Error("Failed to rotate the refresh token", log.Error(err))
		return nil, serverError("Failed to process the refresh token")
	}

	logger.Debug("Rotated refresh token", log.String(log.LoggerKeyFamilyID, family.FamilyID),
		log.Int("generation", response.RefreshToken.Generation))
	return response, nil
}

func (h *refreshTokenGrantHandler) mintSuccessor(oauthApp *appmodel.OAuthApplication, family *tokenstore.TokenFamily,
	presented *tokenstore.RefreshToken, scopes []string) (*model.TokenResponseDTO, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RefreshTokenGrantHandler"),
		log.String(log.LoggerKeyClientID, oauthApp.ClientID))
	factory := h.issuer.tokenFactory

	accessToken, err := factory.MintAccessToken(family.UserID, oauthApp.ClientID, accessTokenAudience(oauthApp),
		scopes, family.FamilyID, accessTokenValidity(oauthApp))
	if err != nil {
		logger.Error("Failed to mint access token", log.Error(err))
		return nil, serverError("Failed to generate token")
	}
	// The successor keeps the family's scope so a narrowed request does not shrink later refreshes.
	refreshToken, err := factory.MintRefreshToken(family.UserID, oauthApp.ClientID, family.Scopes, family.FamilyID,
		presented.Generation+1, refreshTokenValidity(oauthApp))
	if err != nil {
		logger.Error("Failed to mint refresh token", log.Error(err))
		return nil, serverError("Failed to generate token")
	}

	response := &model.TokenResponseDTO{AccessToken: *accessToken, RefreshToken: *refreshToken}
	if slices.Contains(scopes, constants.ScopeOpenID) {
		idToken, errResp := h.issuer.mintIDToken(oauthApp, userGrant{
			UserID:   family.UserID,
			Scopes:   scopes,
			AuthTime: family.AuthTime,
			AMR:      family.AMR,
		}, family.SessionID)
		if errResp != nil {
			return nil, errResp
		}
		response.IDToken = *idToken
	}
	return response, nil
}

// revokeOnReuse revokes every token of the family and drops it from the local validation cache
// before answering.
func (h *refreshTokenGrantHandler) revokeOnReuse(familyID, clientID string, now int64) *model.ErrorResponse {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RefreshTokenGrantHandler"))
	logger.Warn("Refresh token reuse detected, revoking token family",
		log.String(log.LoggerKeySecurityEvent, "REFRESH_TOKEN_REUSE"),
		log.String(log.LoggerKeyClientID, clientID),
		log.String(log.LoggerKeyFamilyID, familyID))
	metrics.RefreshReuseDetectedTotal.Inc()

	if err := h.tokenStore.RevokeTokenFamily(familyID, tokenstore.RevokeReasonReuseDetected, true, now); err != nil {
		logger.Error("Failed to revoke the token family", log.String(log.LoggerKeyFamilyID, familyID),
			log.Error(err))
		return serverError("Failed to process the refresh token")
	}
	h.validator.InvalidateFamily(familyID)
	metrics.TokenRevocationsTotal.WithLabelValues("token_family",
		string(tokenstore.RevokeReasonReuseDetected)).Inc()

	return invalidGrant(invalidRefreshTokenDesc)
}
