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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) getFilePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// sampleDeploymentPath is the configuration shipped with the server distribution.
var sampleDeploymentPath = filepath.Join("..", "..", "..", "repository", "conf", "deployment.yaml")

func (suite *ConfigTestSuite) TestLoadConfigValid() {
	cfg, err := LoadConfig(suite.getFilePath("deployment.yaml"))

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), cfg)

	assert.Equal(suite.T(), "localhost", cfg.Server.Hostname)
	assert.Equal(suite.T(), 8090, cfg.Server.Port)
	assert.True(suite.T(), cfg.Server.HTTPOnly)

	assert.Equal(suite.T(), "sqlite", cfg.Database.Identity.Type)
	assert.Equal(suite.T(), "postgres", cfg.Database.Runtime.Type)
	assert.Equal(suite.T(), "runtimedb", cfg.Database.Runtime.Name)

	assert.Equal(suite.T(), "https://auth.example", cfg.OAuth.JWT.Issuer)
	assert.Equal(suite.T(), int64(900), cfg.OAuth.JWT.ValidityPeriod)
	assert.Equal(suite.T(), int64(30), cfg.OAuth.AuthorizationCode.ValidityPeriod)
	assert.Len(suite.T(), cfg.OAuth.Clients, 1)
	assert.Equal(suite.T(), []string{"https://app.example/cb"}, cfg.OAuth.Clients[0].RedirectURIs)
	assert.Equal(suite.T(), "alice", cfg.UserStore.Users[0].Username)
}

func (suite *ConfigTestSuite) TestLoadConfigAppliesDefaults() {
	cfg, err := LoadConfig(suite.getFilePath("deployment.yaml"))
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), int64(defaultRefreshTokenValidity), cfg.OAuth.RefreshToken.ValidityPeriod)
	assert.Equal(suite.T(), int64(defaultIDTokenValidity), cfg.OAuth.IDToken.ValidityPeriod)
	assert.Equal(suite.T(), int64(defaultAuthorizationRequestTimeout),
		cfg.OAuth.AuthorizationRequest.ValidityPeriod)
	assert.Equal(suite.T(), int64(defaultClockSkew), cfg.OAuth.TokenValidation.ClockSkew)
	assert.Equal(suite.T(), int64(defaultRevocationCacheTTL), cfg.OAuth.TokenValidation.RevocationCacheTTL)
	assert.Equal(suite.T(), defaultSigningKeySize, cfg.OAuth.SigningKeys.KeySize)
}

func (suite *ConfigTestSuite) TestLoadConfigEnvironmentOverrides() {
	suite.T().Setenv(EnvServerPort, "9443")
	suite.T().Setenv(EnvIssuer, "https://issuer.override")
	suite.T().Setenv(EnvAuthorizationCodeExpiry, "45")
	suite.T().Setenv(EnvRuntimeDBPath, "/tmp/runtime.db")

	cfg, err := LoadConfig(suite.getFilePath("deployment.yaml"))
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), 9443, cfg.Server.Port)
	assert.Equal(suite.T(), "https://issuer.override", cfg.OAuth.JWT.Issuer)
	assert.Equal(suite.T(), int64(45), cfg.OAuth.AuthorizationCode.ValidityPeriod)
	assert.Equal(suite.T(), "/tmp/runtime.db", cfg.Database.Runtime.Path)
}

func (suite *ConfigTestSuite) TestLoadConfigIgnoresMalformedEnvironmentValues() {
	suite.T().Setenv(EnvServerPort, "not-a-port")

	cfg, err := LoadConfig(suite.getFilePath("deployment.yaml"))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 8090, cfg.Server.Port)
}

func (suite *ConfigTestSuite) TestLoadConfigRejectsLongAuthorizationCodeLifetime() {
	suite.T().Setenv(EnvAuthorizationCodeExpiry, "600")

	cfg, err := LoadConfig(suite.getFilePath("deployment.yaml"))
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigFileNotFound() {
	cfg, err := LoadConfig(suite.getFilePath("non_existent_config.yaml"))

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
	assert.True(suite.T(), os.IsNotExist(err))
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidYAML() {
	cfg, err := LoadConfig(suite.getFilePath("invalid_deployment.yaml"))

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigSampleDeployment() {
	cfg, err := LoadConfig(sampleDeploymentPath)

	suite.Require().NoError(err)
	suite.Require().NotEmpty(cfg.UserStore.Users)
	for _, user := range cfg.UserStore.Users {
		assert.GreaterOrEqual(suite.T(), len(user.Password), 8, user.Username)
		assert.LessOrEqual(suite.T(), len(user.Password), 128, user.Username)
	}
}

func (suite *ConfigTestSuite) TestLoadConfigRejectsShortUserPassword() {
	content, err := os.ReadFile(suite.getFilePath("deployment.yaml"))
	suite.Require().NoError(err)
	path := filepath.Join(suite.T().TempDir(), "deployment.yaml")
	suite.Require().NoError(os.WriteFile(path,
		[]byte(strings.Replace(string(content), `"alice-password"`, `"alice"`, 1)), 0o600))

	cfg, err := LoadConfig(path)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
	assert.Contains(suite.T(), err.Error(), "Password")
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidClientType() {
	cfg, err := LoadConfig(suite.getFilePath("invalid_client.yaml"))

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
	assert.Contains(suite.T(), err.Error(), "ClientType")
}

func (suite *ConfigTestSuite) TestIssuerDefaultsToPublicURL() {
	cfg := &Config{Server: ServerConfig{PublicURL: "https://login.example/"}}
	applyDefaults(cfg)

	assert.Equal(suite.T(), "https://login.example", cfg.OAuth.JWT.Issuer)
	assert.Equal(suite.T(), defaultPort, cfg.Server.Port)
}
