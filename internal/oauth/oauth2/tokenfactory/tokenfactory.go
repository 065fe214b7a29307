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

// Package tokenfactory builds and signs the access, refresh and ID tokens issued by the server.
package tokenfactory

import (
	"fmt"
	"slices"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	authnmodel "github.com/asgardeo/tokenengine/internal/authn/model"
	"github.com/asgardeo/tokenengine/internal/oauth/jwt"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
	"github.com/asgardeo/tokenengine/internal/oauth/scope"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/utils"
)

// TokenFactoryInterface mints signed tokens. Nothing is persisted here.
type TokenFactoryInterface interface {
	MintAccessToken(subject, clientID, audience string, scopes []string, familyID string,
		validity time.Duration) (*model.TokenDTO, error)
	MintRefreshToken(subject, clientID string, scopes []string, familyID string, generation int,
		validity time.Duration) (*model.TokenDTO, error)
	MintIDToken(subject, clientID string, profile authnmodel.UserProfile, authTime int64, amr []string,
		sid, nonce string, validity time.Duration) (*model.TokenDTO, error)
}

type tokenFactory struct {
	jwtService jwt.JWTServiceInterface
	issuer     string
	now        func() time.Time
}

// NewTokenFactory creates a token factory signing through the given JWT service.
func NewTokenFactory(jwtService jwt.JWTServiceInterface) TokenFactoryInterface {
	return &tokenFactory{
		jwtService: jwtService,
		issuer:     config.GetServerRuntime().Config.OAuth.JWT.Issuer,
		now:        time.Now,
	}
}

func (tf *tokenFactory) MintAccessToken(subject, clientID, audience string, scopes []string, familyID string,
	validity time.Duration) (*model.TokenDTO, error) {
	if audience == "" {
		audience = clientID
	}
	claims, dto := tf.baseClaims(subject, clientID, audience, validity)
	claims.Scope = scope.JoinScopes(scopes)
	claims.ClientID = clientID
	claims.FamilyID = familyID

	if err := tf.sign(claims, constants.JWTTypeAccessToken, dto); err != nil {
		return nil, err
	}
	dto.Scopes = scopes
	dto.FamilyID = familyID
	return dto, nil
}

func (tf *tokenFactory) MintRefreshToken(subject, clientID string, scopes []string, familyID string,
	generation int, validity time.Duration) (*model.TokenDTO, error) {
	claims, dto := tf.baseClaims(subject, clientID, clientID, validity)
	claims.Scope = scope.JoinScopes(scopes)
	claims.ClientID = clientID
	claims.FamilyID = familyID
	claims.Generation = &generation

	if err := tf.sign(claims, constants.JWTTypeDefault, dto); err != nil {
		return nil, err
	}
	dto.Scopes = scopes
	dto.FamilyID = familyID
	dto.Generation = generation
	return dto, nil
}

func (tf *tokenFactory) MintIDToken(subject, clientID string, profile authnmodel.UserProfile, authTime int64,
	amr []string, sid, nonce string, validity time.Duration) (*model.TokenDTO, error) {
	claims, dto := tf.baseClaims(subject, clientID, clientID, validity)
	claims.AuthTime = authTime
	claims.AMR = amr
	claims.SessionID = sid
	claims.Nonce = nonce
	claims.GivenName = profile.GivenName
	claims.FamilyName = profile.FamilyName
	claims.Email = profile.Email

	if err := tf.sign(claims, constants.JWTTypeDefault, dto); err != nil {
		return nil, err
	}
	return dto, nil
}

func (tf *tokenFactory) baseClaims(subject, clientID, audience string, validity time.Duration) (
	*jwt.Claims, *model.TokenDTO) {
	now := tf.now().Truncate(time.Second)
	jti := utils.GenerateUUID()

	claims := &jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    tf.issuer,
			Subject:   subject,
			Audience:  gojwt.ClaimStrings{audience},
			ExpiresAt: gojwt.NewNumericDate(now.Add(validity)),
			NotBefore: gojwt.NewNumericDate(now),
			IssuedAt:  gojwt.NewNumericDate(now),
			ID:        jti,
		},
	}
	dto := &model.TokenDTO{
		TokenType: constants.TokenTypeBearer,
		JTI:       jti,
		Subject:   subject,
		ClientID:  clientID,
		Audience:  audience,
		IssuedAt:  now.Unix(),
		ExpiresIn: int64(validity / time.Second),
	}
	return claims, dto
}

func (tf *tokenFactory) sign(claims *jwt.Claims, typ string, dto *model.TokenDTO) error {
	token, err := tf.jwtService.Sign(claims, typ)
	if err != nil {
		return fmt.Errorf("failed to sign %s token: %w", typ, err)
	}
	dto.Token = token
	return nil
}

// ProfileForScopes returns the profile claims released for the granted scopes: names with
// profile, email with email.
func ProfileForScopes(profile authnmodel.UserProfile, scopes []string) authnmodel.UserProfile {
	released := authnmodel.UserProfile{}
	if slices.Contains(scopes, constants.ScopeProfile) {
		released.GivenName = profile.GivenName
		released.FamilyName = profile.FamilyName
	}
	if slices.Contains(scopes, constants.ScopeEmail) {
		released.Email = profile.Email
	}
	return released
}
