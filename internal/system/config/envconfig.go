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
	"strconv"
)

// Environment variables that override values read from deployment.yaml.
const (
	EnvServerHostname          = "TOKENENGINE_HOSTNAME"
	EnvServerPort              = "TOKENENGINE_PORT"
	EnvIssuer                  = "TOKENENGINE_ISSUER"
	EnvIdentityDBPath          = "TOKENENGINE_DB_IDENTITY_PATH"
	EnvRuntimeDBPath           = "TOKENENGINE_DB_RUNTIME_PATH"
	EnvCryptoKey               = "TOKENENGINE_CRYPTO_KEY"
	EnvAuthorizationCodeExpiry = "AUTH_CODE_EXPIRY_SECONDS"
)

// applyEnvOverrides replaces configuration values with the ones set in the environment.
// Values that fail to parse are ignored.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvServerHostname); v != "" {
		cfg.Server.Hostname = v
	}
	if v := os.Getenv(EnvServerPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv(EnvIssuer); v != "" {
		cfg.OAuth.JWT.Issuer = v
	}
	if v := os.Getenv(EnvIdentityDBPath); v != "" {
		cfg.Database.Identity.Path = v
	}
	if v := os.Getenv(EnvRuntimeDBPath); v != "" {
		cfg.Database.Runtime.Path = v
	}
	if v := os.Getenv(EnvCryptoKey); v != "" {
		cfg.Crypto.Key = v
	}
	if v := os.Getenv(EnvAuthorizationCodeExpiry); v != "" {
		if seconds, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.OAuth.AuthorizationCode.ValidityPeriod = seconds
		}
	}
}
