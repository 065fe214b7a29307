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

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/asgardeo/tokenengine/internal/application"
	"github.com/asgardeo/tokenengine/internal/authn"
	"github.com/asgardeo/tokenengine/internal/oauth/cleanup"
	"github.com/asgardeo/tokenengine/internal/oauth/discovery"
	"github.com/asgardeo/tokenengine/internal/oauth/jwks"
	"github.com/asgardeo/tokenengine/internal/oauth/jwt"
	"github.com/asgardeo/tokenengine/internal/oauth/keymanager"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/authz"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/granthandlers"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/introspect"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/revocation"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/token"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenfactory"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenstore"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/validator"
	"github.com/asgardeo/tokenengine/internal/oauth/session"
	"github.com/asgardeo/tokenengine/internal/oauth/userinfo"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/crypto"
	"github.com/asgardeo/tokenengine/internal/system/database/provider"
	"github.com/asgardeo/tokenengine/internal/system/healthcheck"
	"github.com/asgardeo/tokenengine/internal/system/log"
	"github.com/asgardeo/tokenengine/internal/system/metrics"
	"github.com/asgardeo/tokenengine/internal/system/middleware"
)

// registerServices builds the services and registers their routes on the provided mux.
// Background jobs stop when ctx is cancelled.
func registerServices(ctx context.Context, mux *http.ServeMux) {
	logger := log.GetLogger()
	cfg := config.GetServerRuntime().Config

	dbProvider := provider.GetDBProvider()
	cryptoService := crypto.GetCryptoService()

	keyManager, err := keymanager.Initialize(dbProvider, cryptoService)
	if err != nil {
		logger.Fatal("Failed to initialize signing keys", log.Error(err))
	}
	jwtService := jwt.NewJWTService(keyManager)

	appService, err := application.Initialize(dbProvider)
	if err != nil {
		logger.Fatal("Failed to initialize applications", log.Error(err))
	}
	authenticator, err := authn.Initialize(dbProvider, cryptoService)
	if err != nil {
		logger.Fatal("Failed to initialize users", log.Error(err))
	}

	tokenStore := tokenstore.NewTokenStore(dbProvider)
	tokenValidator := validator.NewTokenValidator(jwtService, tokenStore)

	sessionService := session.Initialize(mux, dbProvider, tokenStore, jwtService, appService)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	authzService := authz.Initialize(mux, dbProvider, appService, authenticator, rateLimiter)

	grantProvider := granthandlers.NewGrantHandlerProvider(granthandlers.Dependencies{
		AuthzService:   authzService,
		Authenticator:  authenticator,
		JWTService:     jwtService,
		TokenFactory:   tokenfactory.NewTokenFactory(jwtService),
		TokenStore:     tokenStore,
		SessionService: sessionService,
		Validator:      tokenValidator,
	})

	token.Initialize(mux, appService, grantProvider, rateLimiter)
	_ = revocation.Initialize(mux, appService, jwtService, tokenStore, tokenValidator)
	_ = introspect.Initialize(mux, appService, jwtService, tokenStore, tokenValidator)
	_ = userinfo.Initialize(mux, tokenValidator, authenticator)
	_ = jwks.Initialize(mux, keyManager)
	_ = discovery.Initialize(mux)

	_ = healthcheck.Initialize(mux, dbProvider)
	metrics.Initialize(mux)

	keyManager.StartAutoRotation(ctx)

	sweeper := cleanup.NewSweeper(time.Duration(cfg.OAuth.CleanupInterval)*time.Second,
		map[string]cleanup.PurgerInterface{
			"authorization": authzService,
			"session":       sessionService,
			"token": cleanup.PurgerFunc(func(now time.Time) (int64, error) {
				return tokenStore.DeleteExpired(now.Unix())
			}),
		})
	sweeper.Start(ctx)
}
