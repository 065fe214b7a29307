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

// Package revocation implements the OAuth 2.0 token revocation endpoint (RFC 7009).
package revocation

import (
	"errors"

	appmodel "github.com/asgardeo/tokenengine/internal/application/model"
	"github.com/asgardeo/tokenengine/internal/oauth/jwt"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenstore"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/validator"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/log"
	"github.com/asgardeo/tokenengine/internal/system/metrics"
)

// RevocationServiceInterface defines the token revocation operation.
type RevocationServiceInterface interface {
	RevokeToken(token, tokenTypeHint string, app *appmodel.OAuthApplication) *model.ErrorResponse
}

type revocationService struct {
	jwtService jwt.JWTServiceInterface
	tokenStore tokenstore.TokenStoreInterface
	validator  validator.TokenValidatorInterface
}

// NewRevocationService creates a new revocation service.
func NewRevocationService(jwtService jwt.JWTServiceInterface, tokenStore tokenstore.TokenStoreInterface,
	tokenValidator validator.TokenValidatorInterface) RevocationServiceInterface {
	return &revocationService{
		jwtService: jwtService,
		tokenStore: tokenStore,
		validator:  tokenValidator,
	}
}

// RevokeToken revokes a single token issued to app. Unknown or invalid tokens and tokens of other
// clients are ignored. Revoking a refresh token does not touch the rest of its family. The type
// of a token is read from the token itself, so the hint is not needed to locate it.
func (rs *revocationService) RevokeToken(token, tokenTypeHint string,
	app *appmodel.OAuthApplication) *model.ErrorResponse {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RevocationService"),
		log.String(log.LoggerKeyClientID, app.ClientID))

	claims, err := rs.jwtService.Verify(token, jwt.VerifyOptions{
		Issuer:       config.GetServerRuntime().Config.OAuth.JWT.Issuer,
		AllowExpired: true,
	})
	if err != nil || claims.ID == "" {
		logger.Debug("Ignoring revocation of an unrecognized token", log.String("hint", tokenTypeHint),
			log.Error(err))
		return nil
	}
	if claims.ClientID != app.ClientID {
		logger.Debug("Ignoring revocation of a token issued to another client")
		return nil
	}

	if claims.IsRefreshToken() {
		return rs.revokeRefreshToken(claims, app.ClientID)
	}

	if err := rs.tokenStore.RevokeAccessToken(claims.ID); err != nil {
		logger.Error("Failed to revoke the access token", log.Error(err))
		return &model.ErrorResponse{Error: constants.ErrorServerError,
			ErrorDescription: "Failed to revoke the token"}
	}
	rs.validator.InvalidateToken(claims.ID, claims.ExpiryUnix())
	metrics.TokenRevocationsTotal.WithLabelValues(constants.TokenTypeHintAccessToken,
		string(tokenstore.RevokeReasonAdmin)).Inc()
	logger.Debug("Access token revoked", log.String("jti", claims.ID))
	return nil
}

func (rs *revocationService) revokeRefreshToken(claims *jwt.Claims, clientID string) *model.ErrorResponse {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RevocationService"),
		log.String(log.LoggerKeyClientID, clientID))

	stored, err := rs.tokenStore.GetRefreshToken(claims.ID)
	if err != nil {
		if errors.Is(err, tokenstore.ErrRefreshTokenNotFound) {
			return nil
		}
		logger.Error("Failed to retrieve the refresh token", log.Error(err))
		return &model.ErrorResponse{Error: constants.ErrorServerError,
			ErrorDescription: "Failed to revoke the token"}
	}
	if stored.ClientID != clientID || stored.Revoked {
		return nil
	}

	if err := rs.tokenStore.RevokeRefreshToken(claims.ID); err != nil {
		logger.Error("Failed to revoke the refresh token", log.Error(err))
		return &model.ErrorResponse{Error: constants.ErrorServerError,
			ErrorDescription: "Failed to revoke the token"}
	}
	metrics.TokenRevocationsTotal.WithLabelValues(constants.TokenTypeHintRefreshToken,
		string(tokenstore.RevokeReasonAdmin)).Inc()
	logger.Debug("Refresh token revoked", log.String("jti", claims.ID),
		log.String(log.LoggerKeyFamilyID, stored.FamilyID))
	return nil
}
