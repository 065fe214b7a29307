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

// Package validator validates bearer access tokens for resource endpoints.
package validator

import (
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/asgardeo/tokenengine/internal/oauth/jwt"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenstore"
	"github.com/asgardeo/tokenengine/internal/system/cache"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/log"
	"github.com/asgardeo/tokenengine/internal/system/metrics"
)

const (
	loggerComponentName = "TokenValidator"

	tokenStatusCacheName    = "TokenRevocationCache"
	revokedTokenCacheName   = "RevokedTokenCache"
	revokedFamilyCacheName  = "RevokedFamilyCache"
	defaultFamilyCacheTTL   = time.Hour
	defaultActiveStatusTTL  = 5 * time.Second
	invalidTokenDescription = "The access token is invalid or expired"
)

// Validation results recorded in the token validation metric.
const (
	resultValid             = "valid"
	resultInvalid           = "invalid"
	resultRevoked           = "revoked"
	resultInsufficientScope = "insufficient_scope"
	resultError             = "error"
)

// TokenValidatorInterface validates access tokens and tracks local revocations.
type TokenValidatorInterface interface {
	// Validate checks signature, time window, issuer, audience (when expectedAudience is set),
	// revocation state and required scopes of an access token.
	Validate(token string, requiredScopes []string, expectedAudience string) (*jwt.Claims, *model.ErrorResponse)
	// InvalidateToken records a local revocation of one token until it expires.
	InvalidateToken(jti string, expiresAt int64)
	// InvalidateFamily records a local revocation of every access token of a family.
	InvalidateFamily(familyID string)
}

// tokenStatus is the cached revocation state of a jti.
type tokenStatus struct {
	Revoked  bool
	FamilyID string
}

type tokenValidator struct {
	jwtService  jwt.JWTServiceInterface
	tokenStore  tokenstore.TokenStoreInterface
	statusCache cache.CacheInterface[tokenStatus]
	tokenCache  cache.CacheInterface[bool]
	familyCache cache.CacheInterface[bool]
	loads       singleflight.Group
	issuer      string
	clockSkew   time.Duration
	activeTTL   time.Duration
	familyTTL   time.Duration
	now         func() time.Time
}

// NewTokenValidator creates a token validator backed by the token store.
func NewTokenValidator(jwtService jwt.JWTServiceInterface,
	tokenStore tokenstore.TokenStoreInterface) TokenValidatorInterface {
	oauthConfig := config.GetServerRuntime().Config.OAuth

	activeTTL := time.Duration(oauthConfig.TokenValidation.RevocationCacheTTL) * time.Second
	if activeTTL <= 0 {
		activeTTL = defaultActiveStatusTTL
	}
	familyTTL := time.Duration(oauthConfig.JWT.ValidityPeriod) * time.Second
	if familyTTL <= 0 {
		familyTTL = defaultFamilyCacheTTL
	}

	return &tokenValidator{
		jwtService:  jwtService,
		tokenStore:  tokenStore,
		statusCache: cache.GetCache[tokenStatus](tokenStatusCacheName),
		tokenCache:  cache.GetCache[bool](revokedTokenCacheName),
		familyCache: cache.GetCache[bool](revokedFamilyCacheName),
		issuer:      oauthConfig.JWT.Issuer,
		clockSkew:   time.Duration(oauthConfig.TokenValidation.ClockSkew) * time.Second,
		activeTTL:   activeTTL,
		familyTTL:   familyTTL,
		now:         time.Now,
	}
}

func (tv *tokenValidator) Validate(token string, requiredScopes []string, expectedAudience string) (
	*jwt.Claims, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if token == "" {
		return nil, tv.reject(resultInvalid, constants.ErrorInvalidToken, "The access token is missing")
	}

	claims, err := tv.jwtService.Verify(token, jwt.VerifyOptions{
		Issuer:       tv.issuer,
		Audience:     expectedAudience,
		ClockSkew:    tv.clockSkew,
		ExpectedType: constants.JWTTypeAccessToken,
	})
	if err != nil {
		logger.Debug("Access token verification failed", log.Error(err))
		return nil, tv.reject(resultInvalid, constants.ErrorInvalidToken, invalidTokenDescription)
	}
	if claims.ID == "" || claims.IsRefreshToken() {
		return nil, tv.reject(resultInvalid, constants.ErrorInvalidToken, invalidTokenDescription)
	}

	revoked, err := tv.isRevoked(claims)
	if err != nil {
		logger.Error("Failed to resolve the token revocation state", log.String("jti", claims.ID),
			log.Error(err))
		return nil, tv.reject(resultError, constants.ErrorServerError, "Failed to validate the access token")
	}
	if revoked {
		return nil, tv.reject(resultRevoked, constants.ErrorInvalidToken, invalidTokenDescription)
	}

	if !claims.HasScopes(requiredScopes) {
		return nil, tv.reject(resultInsufficientScope, constants.ErrorInsufficientScope,
			"The access token does not grant the required scope")
	}

	metrics.TokenValidationsTotal.WithLabelValues(resultValid).Inc()
	return claims, nil
}

// isRevoked consults the local revocation caches, then the status cache, and falls back to the
// store. Concurrent misses for the same jti share one store lookup. Store loads only write the
// status cache, so a load that started before a local revocation cannot mask it.
func (tv *tokenValidator) isRevoked(claims *jwt.Claims) (bool, error) {
	if claims.FamilyID != "" {
		if _, ok := tv.familyCache.Get(cache.CacheKey{Key: claims.FamilyID}); ok {
			return true, nil
		}
	}

	key := cache.CacheKey{Key: claims.ID}
	if _, ok := tv.tokenCache.Get(key); ok {
		return true, nil
	}
	if status, ok := tv.statusCache.Get(key); ok {
		return status.Revoked, nil
	}

	result, err, _ := tv.loads.Do(claims.ID, func() (any, error) {
		stored, err := tv.tokenStore.GetAccessTokenStatus(claims.ID)
		if err != nil {
			if errors.Is(err, tokenstore.ErrAccessTokenNotFound) {
				// Unknown to the store: never issued here or already purged.
				return tokenStatus{Revoked: true}, nil
			}
			return nil, err
		}

		status := tokenStatus{Revoked: stored.Revoked, FamilyID: stored.FamilyID}
		if status.Revoked {
			tv.statusCache.SetWithTTL(key, status, tv.untilExpiry(claims.ExpiryUnix()))
		} else {
			tv.statusCache.SetWithTTL(key, status, tv.activeTTL)
		}
		return status, nil
	})
	if err != nil {
		return false, err
	}
	return result.(tokenStatus).Revoked, nil
}

func (tv *tokenValidator) InvalidateToken(jti string, expiresAt int64) {
	if jti == "" {
		return
	}
	key := cache.CacheKey{Key: jti}
	tv.tokenCache.SetWithTTL(key, true, tv.untilExpiry(expiresAt))
	tv.statusCache.Delete(key)
}

func (tv *tokenValidator) InvalidateFamily(familyID string) {
	if familyID == "" {
		return
	}
	tv.familyCache.SetWithTTL(cache.CacheKey{Key: familyID}, true, tv.familyTTL+tv.clockSkew)
}

func (tv *tokenValidator) untilExpiry(expiresAt int64) time.Duration {
	return time.Unix(expiresAt, 0).Add(tv.clockSkew).Sub(tv.now())
}

func (tv *tokenValidator) reject(result, code, desc string) *model.ErrorResponse {
	metrics.TokenValidationsTotal.WithLabelValues(result).Inc()
	return &model.ErrorResponse{Error: code, ErrorDescription: desc}
}
