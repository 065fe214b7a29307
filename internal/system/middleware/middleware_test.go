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

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/tokenengine/internal/system/config"
)

type MiddlewareTestSuite struct {
	suite.Suite
}

func TestMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareTestSuite))
}

func (suite *MiddlewareTestSuite) SetupTest() {
	config.ResetServerRuntime()
	_ = config.InitializeServerRuntime("test", &config.Config{
		CORS: config.CORSConfig{AllowedOrigins: []string{"https://app.example"}},
	})
}

func (suite *MiddlewareTestSuite) TearDownTest() {
	config.ResetServerRuntime()
}

func (suite *MiddlewareTestSuite) TestWithCORSAllowedOrigin() {
	pattern, handler := WithCORS("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, CORSOptions{AllowedMethods: "POST", AllowedHeaders: "Content-Type, Authorization", AllowCredentials: true})
	assert.Equal(suite.T(), "POST /oauth/token", pattern)

	req := httptest.NewRequest(http.MethodPost, "/oauth/token", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(suite.T(), "POST", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(suite.T(), "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func (suite *MiddlewareTestSuite) TestWithCORSDisallowedOrigin() {
	_, handler := WithCORS("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {},
		CORSOptions{AllowedMethods: "POST"})

	req := httptest.NewRequest(http.MethodPost, "/oauth/token", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Empty(suite.T(), rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(suite.T(), "Origin", rec.Header().Get("Vary"))
}

func (suite *MiddlewareTestSuite) TestPreflightHandler() {
	req := httptest.NewRequest(http.MethodOptions, "/oauth/introspect", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	PreflightHandler(CORSOptions{AllowedMethods: "POST"})(rec, req)

	assert.Equal(suite.T(), http.StatusNoContent, rec.Code)
	assert.Equal(suite.T(), "POST", rec.Header().Get("Access-Control-Allow-Methods"))
}

func (suite *MiddlewareTestSuite) TestRateLimiterPerClient() {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, Burst: 2})

	assert.True(suite.T(), rl.Allow("10.0.0.1"))
	assert.True(suite.T(), rl.Allow("10.0.0.1"))
	assert.False(suite.T(), rl.Allow("10.0.0.1"))
	assert.True(suite.T(), rl.Allow("10.0.0.2"), "other clients have their own bucket")
}

func (suite *MiddlewareTestSuite) TestRateLimiterDisabled() {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: false})
	for i := 0; i < 100; i++ {
		assert.True(suite.T(), rl.Allow("10.0.0.1"))
	}
}

func (suite *MiddlewareTestSuite) TestWithRateLimitRejects() {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, Burst: 1})
	calls := 0
	_, handler := rl.WithRateLimit("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/oauth/token", nil)
		req.RemoteAddr = "192.0.2.1:4000"
		rec := httptest.NewRecorder()
		handler(rec, req)
		if i == 1 {
			assert.Equal(suite.T(), http.StatusTooManyRequests, rec.Code)
			assert.NotEmpty(suite.T(), rec.Header().Get("Retry-After"))
		}
	}
	assert.Equal(suite.T(), 1, calls)
}
