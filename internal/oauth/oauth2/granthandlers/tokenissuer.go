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
	"slices"
	"strings"
	"time"

	appmodel "github.com/asgardeo/tokenengine/internal/application/model"
	"github.com/asgardeo/tokenengine/internal/authn"
	authnmodel "github.com/asgardeo/tokenengine/internal/authn/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenfactory"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenstore"
	"github.com/asgardeo/tokenengine/internal/oauth/session"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/log"
	"github.com/asgardeo/tokenengine/internal/system/utils"
)

const (
	defaultAccessTokenValidity  = 3600
	defaultRefreshTokenValidity = 86400
	defaultIDTokenValidity      = 3600
)

// userGrant is the authorization granted by a user that a new token family is issued for.
type userGrant struct {
	UserID   string
	Scopes   []string
	AuthTime int64
	AMR      []string
	Nonce    string
}

// tokenIssuer mints and persists the tokens of a grant. Tokens are persisted only after every
// token of the response has been signed.
type tokenIssuer struct {
	tokenFactory   tokenfactory.TokenFactoryInterface
	tokenStore     tokenstore.TokenStoreInterface
	sessionService session.SessionServiceInterface
	authenticator  authn.AuthenticatorInterface
}

func newTokenIssuer(tokenFactory tokenfactory.TokenFactoryInterface, tokenStore tokenstore.TokenStoreInterface,
	sessionService session.SessionServiceInterface, authenticator authn.AuthenticatorInterface) *tokenIssuer {
	return &tokenIssuer{
		tokenFactory:   tokenFactory,
		tokenStore:     tokenStore,
		sessionService: sessionService,
		authenticator:  authenticator,
	}
}

// issueForNewFamily issues access, refresh and, for openid grants, ID tokens that start a new
// token family with its session.
func (ti *tokenIssuer) issueForNewFamily(app *appmodel.OAuthApplication, grant userGrant) (
	*model.TokenResponseDTO, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenIssuer"),
		log.String(log.LoggerKeyClientID, app.ClientID))

	familyID := utils.GenerateUUID()
	sess := ti.sessionService.CreateSession(grant.UserID, app.ClientID, familyID, strings.Join(grant.AMR, " "),
		grant.Scopes)

	accessToken, err := ti.tokenFactory.MintAccessToken(grant.UserID, app.ClientID, accessTokenAudience(app),
		grant.Scopes, familyID, accessTokenValidity(app))
	if err != nil {
		logger.Error("Failed to mint access token", log.Error(err))
		return nil, serverError("Failed to generate token")
	}
	refreshToken, err := ti.tokenFactory.MintRefreshToken(grant.UserID, app.ClientID, grant.Scopes, familyID, 0,
		refreshTokenValidity(app))
	if err != nil {
		logger.Error("Failed to mint refresh token", log.Error(err))
		return nil, serverError("Failed to generate token")
	}

	response := &model.TokenResponseDTO{AccessToken: *accessToken, RefreshToken: *refreshToken}
	if slices.Contains(grant.Scopes, constants.ScopeOpenID) {
		idToken, errResp := ti.mintIDToken(app, grant, sess.ID)
		if errResp != nil {
			return nil, errResp
		}
		response.IDToken = *idToken
	}

	family := tokenstore.TokenFamily{
		FamilyID:  familyID,
		ClientID:  app.ClientID,
		UserID:    grant.UserID,
		SessionID: sess.ID,
		Scopes:    grant.Scopes,
		AuthTime:  grant.AuthTime,
		AMR:       grant.AMR,
		CreatedAt: accessToken.IssuedAt,
	}
	if err := ti.tokenStore.CreateTokenFamily(family, refreshTokenRecord(refreshToken, grant.UserID, ""),
		accessTokenRecord(accessToken, grant.UserID), sess); err != nil {
		logger.Error("Failed to persist the issued tokens", log.Error(err))
		return nil, serverError("Failed to generate token")
	}

	logger.Debug("Issued tokens for a new token family", log.String(log.LoggerKeyFamilyID, familyID))
	return response, nil
}

func (ti *tokenIssuer) mintIDToken(app *appmodel.OAuthApplication, grant userGrant, sid string) (
	*model.TokenDTO, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenIssuer"),
		log.String(log.LoggerKeyClientID, app.ClientID))

	profile := authnmodel.UserProfile{}
	if slices.Contains(grant.Scopes, constants.ScopeProfile) || slices.Contains(grant.Scopes, constants.ScopeEmail) {
		userProfile, err := ti.authenticator.GetUserProfile(grant.UserID)
		if err != nil {
			logger.Error("Failed to load the user profile", log.Error(err))
			return nil, serverError("Failed to generate token")
		}
		profile = tokenfactory.ProfileForScopes(*userProfile, grant.Scopes)
	}

	idToken, err := ti.tokenFactory.MintIDToken(grant.UserID, app.ClientID, profile, grant.AuthTime, grant.AMR,
		sid, grant.Nonce, idTokenValidity())
	if err != nil {
		logger.Error("Failed to mint ID token", log.Error(err))
		return nil, serverError("Failed to generate token")
	}
	return idToken, nil
}

func accessTokenAudience(app *appmodel.OAuthApplication) string {
	if app.Audience != "" {
		return app.Audience
	}
	return config.GetServerRuntime().Config.OAuth.JWT.Audience
}

func accessTokenValidity(app *appmodel.OAuthApplication) time.Duration {
	validity := config.GetServerRuntime().Config.OAuth.JWT.ValidityPeriod
	if validity <= 0 {
		validity = defaultAccessTokenValidity
	}
	return time.Duration(app.GetAccessTokenValidity(validity)) * time.Second
}

func refreshTokenValidity(app *appmodel.OAuthApplication) time.Duration {
	validity := config.GetServerRuntime().Config.OAuth.RefreshToken.ValidityPeriod
	if validity <= 0 {
		validity = defaultRefreshTokenValidity
	}
	return time.Duration(app.GetRefreshTokenValidity(validity)) * time.Second
}

func idTokenValidity() time.Duration {
	validity := config.GetServerRuntime().Config.OAuth.IDToken.ValidityPeriod
	if validity <= 0 {
		validity = defaultIDTokenValidity
	}
	return time.Duration(validity) * time.Second
}

func accessTokenRecord(token *model.TokenDTO, userID string) tokenstore.AccessToken {
	return tokenstore.AccessToken{
		JTI:       token.JTI,
		FamilyID:  token.FamilyID,
		ClientID:  token.ClientID,
		UserID:    userID,
		Scopes:    token.Scopes,
		Audience:  token.Audience,
		IssuedAt:  token.IssuedAt,
		ExpiresAt: token.ExpiresAt(),
	}
}

func refreshTokenRecord(token *model.TokenDTO, userID, parentJTI string) tokenstore.RefreshToken {
	return tokenstore.RefreshToken{
		JTI:        token.JTI,
		FamilyID:   token.FamilyID,
		ClientID:   token.ClientID,
		UserID:     userID,
		Scopes:     token.Scopes,
		Generation: token.Generation,
		ParentJTI:  parentJTI,
		IssuedAt:   token.IssuedAt,
		ExpiresAt:  token.ExpiresAt(),
	}
}

func serverError(desc string) *model.ErrorResponse {
	return &model.ErrorResponse{Error: constants.ErrorServerError, ErrorDescription: desc}
}

func invalidGrant(desc string) *model.ErrorResponse {
	return &model.ErrorResponse{Error: constants.ErrorInvalidGrant, ErrorDescription: desc}
}

// issueClientToken issues an access token on behalf of the client itself. No refresh token and
// no session are created.
func (ti *tokenIssuer) issueClientToken(app *appmodel.OAuthApplication, scopes []string) (
	*model.TokenResponseDTO, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenIssuer"),
		log.String(log.LoggerKeyClientID, app.ClientID))

	accessToken, err := ti.tokenFactory.MintAccessToken(app.ClientID, app.ClientID, accessTokenAudience(app),
		scopes, "", accessTokenValidity(app))
	if err != nil {
		logger.Error("Failed to mint access token", log.Error(err))
		return nil, serverError("Failed to generate token")
	}
	if err := ti.tokenStore.StoreAccessToken(accessTokenRecord(accessToken, app.ClientID)); err != nil {
		logger.Error("Failed to persist the access token", log.Error(err))
		return nil, serverError("Failed to generate token")
	}
	return &model.TokenResponseDTO{AccessToken: *accessToken}, nil
}
