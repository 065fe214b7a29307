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

package metrics

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestWithMetricsRecordsStatus(t *testing.T) {
	pattern, handler := WithMetrics("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	assert.Equal(t, "POST /oauth/token", pattern)

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPost, "/oauth/token", "400"))
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/oauth/token", nil))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPost, "/oauth/token", "400"))

	assert.Equal(t, before+1, after)
}

func TestSplitPattern(t *testing.T) {
	method, path := splitPattern("GET /.well-known/jwks.json")
	assert.Equal(t, "GET", method)
	assert.Equal(t, "/.well-known/jwks.json", path)

	method, path = splitPattern("/metrics")
	assert.Empty(t, method)
	assert.Equal(t, "/metrics", path)
}

func TestInitializeServesMetrics(t *testing.T) {
	RefreshReuseDetectedTotal.Inc()

	mux := http.NewServeMux()
	Initialize(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "tokenengine_refresh_reuse_detected_total"))
}

func TestRegisterDBStatsTwice(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.NoError(t, RegisterDBStats(db, "metrics_test"))
	assert.NoError(t, RegisterDBStats(db, "metrics_test"))
}
