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

import "strings"

const (
	defaultHostname                    = "localhost"
	defaultPort                        = 8090
	defaultIssuer                      = "https://localhost:8090"
	defaultAccessTokenValidity         = 3600
	defaultRefreshTokenValidity        = 86400
	defaultIDTokenValidity             = 3600
	defaultAuthorizationCodeValidity   = 60
	defaultAuthorizationRequestTimeout = 600
	defaultSigningKeyCacheTTL          = 60
	defaultSigningKeySize              = 2048
	defaultClockSkew                   = 60
	defaultRevocationCacheTTL          = 5
	defaultSessionValidity             = 86400
	defaultRateLimitRequestsPerSecond  = 20
	defaultRateLimitBurst              = 40
)

// applyDefaults fills zero valued settings with the server defaults.
func applyDefaults(cfg *Config) {
	if cfg.Server.Hostname == "" {
		cfg.Server.Hostname = defaultHostname
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}

	oauth := &cfg.OAuth
	if oauth.JWT.Issuer == "" {
		if cfg.Server.PublicURL != "" {
			oauth.JWT.Issuer = strings.TrimSuffix(cfg.Server.PublicURL, "/")
		} else {
			oauth.JWT.Issuer = defaultIssuer
		}
	}
	setDefaultInt64(&oauth.JWT.ValidityPeriod, defaultAccessTokenValidity)
	setDefaultInt64(&oauth.RefreshToken.ValidityPeriod, defaultRefreshTokenValidity)
	setDefaultInt64(&oauth.IDToken.ValidityPeriod, defaultIDTokenValidity)
	setDefaultInt64(&oauth.AuthorizationCode.ValidityPeriod, defaultAuthorizationCodeValidity)
	setDefaultInt64(&oauth.AuthorizationRequest.ValidityPeriod, defaultAuthorizationRequestTimeout)
	setDefaultInt64(&oauth.SigningKeys.CacheTTL, defaultSigningKeyCacheTTL)
	if oauth.SigningKeys.KeySize == 0 {
		oauth.SigningKeys.KeySize = defaultSigningKeySize
	}
	setDefaultInt64(&oauth.TokenValidation.ClockSkew, defaultClockSkew)
	setDefaultInt64(&oauth.TokenValidation.RevocationCacheTTL, defaultRevocationCacheTTL)
	setDefaultInt64(&oauth.Session.ValidityPeriod, defaultSessionValidity)

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.RequestsPerSecond == 0 {
			cfg.RateLimit.RequestsPerSecond = defaultRateLimitRequestsPerSecond
		}
		if cfg.RateLimit.Burst == 0 {
			cfg.RateLimit.Burst = defaultRateLimitBurst
		}
	}
}

func setDefaultInt64(target *int64, value int64) {
	if *target == 0 {
		*target = value
	}
}
