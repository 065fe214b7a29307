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

// Package introspect provides functionality for the OAuth2 token introspection endpoint.
package introspect

import (
	"time"

	"github.com/asgardeo/tokenengine/internal/oauth/jwt"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenstore"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/validator"
	"github.com/asgardeo/tokenengine/internal/oauth/scope"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/log"
)

// TokenIntrospectionServiceInterface defines the interface for OAuth 2.0 token introspection.
type TokenIntrospectionServiceInterface interface {
	IntrospectToken(token, tokenTypeHint string) *IntrospectResponse
}

type tokenIntrospectionService struct {
	jwtService jwt.JWTServiceInterface
	tokenStore tokenstore.TokenStoreInterface
	validator  validator.TokenValidatorInterface
	now        func() time.Time
}

// NewTokenIntrospectionService creates a new token introspection service.
func NewTokenIntrospectionService(jwtService jwt.JWTServiceInterface, tokenStore tokenstore.TokenStoreInterface,
	tokenValidator validator.TokenValidatorInterface) TokenIntrospectionServiceInterface {
	return &tokenIntrospectionService{
		jwtService: jwtService,
		tokenStore: tokenStore,
		validator:  tokenValidator,
		now:        time.Now,
	}
}

// IntrospectToken reports whether the token is active. Every failure, including server side ones,
// yields an inactive response so that callers cannot tell failure kinds apart.
func (s *tokenIntrospectionService) IntrospectToken(token, tokenTypeHint string) *IntrospectResponse {
	if tokenTypeHint == constants.TokenTypeHintRefreshToken {
		if resp := s.introspectRefreshToken(token); resp != nil {
			return resp
		}
		if resp := s.introspectAccessToken(token); resp != nil {
			return resp
		}
	} else {
		if resp := s.introspectAccessToken(token); resp != nil {
			return resp
		}
		if resp := s.introspectRefreshToken(token); resp != nil {
			return resp
		}
	}
	return &IntrospectResponse{Active: false}
}

func (s *tokenIntrospectionService) introspectAccessToken(token string) *IntrospectResponse {
	claims, errResp := s.validator.Validate(token, nil, "")
	if errResp != nil {
		return nil
	}
	return activeResponse(claims, constants.TokenTypeBearer)
}

func (s *tokenIntrospectionService) introspectRefreshToken(token string) *IntrospectResponse {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenIntrospectionService"))
	oauthConfig := config.GetServerRuntime().Config.OAuth

	claims, err := s.jwtService.Verify(token, jwt.VerifyOptions{
		Issuer:       oauthConfig.JWT.Issuer,
		ClockSkew:    time.Duration(oauthConfig.TokenValidation.ClockSkew) * time.Second,
		ExpectedType: constants.JWTTypeDefault,
	})
	if err != nil || !claims.IsRefreshToken() || claims.ID == "" {
		return nil
	}

	stored, err := s.tokenStore.GetRefreshToken(claims.ID)
	if err != nil {
		logger.Debug("Refresh token lookup failed during introspection", log.Error(err))
		return nil
	}
	if stored.Revoked || stored.ExpiresAt <= s.now().Unix() {
		return nil
	}
	return activeResponse(claims, constants.TokenTypeHintRefreshToken)
}

func activeResponse(claims *jwt.Claims, tokenType string) *IntrospectResponse {
	return &IntrospectResponse{
		Active:    true,
		Scope:     scope.JoinScopes(claims.Scopes()),
		ClientID:  claims.ClientID,
		TokenType: tokenType,
		Exp:       claims.ExpiryUnix(),
		Iat:       claims.IssuedAtUnix(),
		Nbf:       claims.NotBeforeUnix(),
		Sub:       claims.Subject,
		Aud:       claims.Audience,
		Iss:       claims.Issuer,
		Jti:       claims.ID,
	}
}
