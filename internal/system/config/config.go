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

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname  string `yaml:"hostname"`
	Port      int    `yaml:"port" validate:"gte=0,lte=65535"`
	HTTPOnly  bool   `yaml:"http_only"`
	PublicURL string `yaml:"public_url" validate:"omitempty,url"`
}

// SecurityConfig holds the security configuration details.
type SecurityConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
	// SigningKeyFile is an optional PEM private key imported as the first signing key.
	SigningKeyFile string `yaml:"signing_key_file"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type" validate:"omitempty,oneof=postgres sqlite"`
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Identity DataSource `yaml:"identity"`
	Runtime  DataSource `yaml:"runtime"`
}

// CacheProperty holds the configuration of an individual named cache.
type CacheProperty struct {
	Name            string `yaml:"name"`
	Disabled        bool   `yaml:"disabled"`
	Size            int    `yaml:"size"`
	TTL             int    `yaml:"ttl"`
	CleanupInterval int    `yaml:"cleanup_interval"`
}

// CacheConfig holds the cache configuration details.
type CacheConfig struct {
	Disabled        bool            `yaml:"disabled"`
	Type            string          `yaml:"type"`
	Size            int             `yaml:"size"`
	TTL             int             `yaml:"ttl"`
	CleanupInterval int             `yaml:"cleanup_interval"`
	Properties      []CacheProperty `yaml:"properties"`
}

// CORSConfig holds the CORS configuration details.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// CryptoConfig holds the cryptographic configuration details.
type CryptoConfig struct {
	Key string `yaml:"key"`
}

// RateLimitConfig holds the token endpoint rate limit configuration.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`
	Burst             int     `yaml:"burst" validate:"gte=0"`
}

// JWTConfig holds the access token configuration details.
type JWTConfig struct {
	Issuer         string `yaml:"issuer"`
	ValidityPeriod int64  `yaml:"validity_period"`
	// Audience is the default audience for access tokens when the client has none configured.
	Audience string `yaml:"audience"`
}

// RefreshTokenConfig holds the refresh token configuration details.
type RefreshTokenConfig struct {
	ValidityPeriod int64 `yaml:"validity_period"`
}

// IDTokenConfig holds the ID token configuration details.
type IDTokenConfig struct {
	ValidityPeriod int64 `yaml:"validity_period"`
}

// AuthorizationCodeConfig holds the authorization code configuration details.
type AuthorizationCodeConfig struct {
	ValidityPeriod int64 `yaml:"validity_period" validate:"gte=0,lte=60"`
}

// AuthorizationRequestConfig holds the in-flight authorization request configuration details.
type AuthorizationRequestConfig struct {
	ValidityPeriod int64  `yaml:"validity_period"`
	LoginPage      string `yaml:"login_page"`
	ErrorPage      string `yaml:"error_page"`
}

// PKCEConfig holds the PKCE configuration details.
type PKCEConfig struct {
	RequiredForConfidentialClients bool `yaml:"required_for_confidential_clients"`
	AllowPlain                     bool `yaml:"allow_plain"`
}

// SigningKeyConfig holds the signing key management configuration details.
type SigningKeyConfig struct {
	RotationInterval int64 `yaml:"rotation_interval"`
	CacheTTL         int64 `yaml:"cache_ttl"`
	KeySize          int   `yaml:"key_size" validate:"omitempty,oneof=2048 3072 4096"`
}

// TokenValidationConfig holds the token validation configuration details.
type TokenValidationConfig struct {
	ClockSkew          int64 `yaml:"clock_skew" validate:"gte=0"`
	RevocationCacheTTL int64 `yaml:"revocation_cache_ttl" validate:"gte=0"`
}

// SessionConfig holds the logout session configuration details.
type SessionConfig struct {
	ValidityPeriod int64 `yaml:"validity_period"`
}

// LegacyConfig holds switches for grant types kept only for compatibility.
type LegacyConfig struct {
	PasswordGrantEnabled bool `yaml:"password_grant_enabled"`
}

// ClientConfig holds an OAuth client registered through the deployment configuration.
type ClientConfig struct {
	ClientID                 string   `yaml:"client_id" validate:"required"`
	ClientSecret             string   `yaml:"client_secret"`
	ClientType               string   `yaml:"client_type" validate:"omitempty,oneof=public confidential"`
	RedirectURIs             []string `yaml:"redirect_uris" validate:"dive,url"`
	PostLogoutRedirectURIs   []string `yaml:"post_logout_redirect_uris" validate:"dive,url"`
	GrantTypes               []string `yaml:"grant_types"`
	Scopes                   []string `yaml:"scopes"`
	TokenEndpointAuthMethods []string `yaml:"token_endpoint_auth_methods"`
	Audience                 string   `yaml:"audience"`
	AccessTokenValidity      int64    `yaml:"access_token_validity"`
	RefreshTokenValidity     int64    `yaml:"refresh_token_validity"`
}

// OAuthConfig holds the OAuth configuration details.
type OAuthConfig struct {
	JWT                  JWTConfig                  `yaml:"jwt"`
	RefreshToken         RefreshTokenConfig         `yaml:"refresh_token"`
	IDToken              IDTokenConfig              `yaml:"id_token"`
	AuthorizationCode    AuthorizationCodeConfig    `yaml:"authorization_code"`
	AuthorizationRequest AuthorizationRequestConfig `yaml:"authorization_request"`
	PKCE                 PKCEConfig                 `yaml:"pkce"`
	SigningKeys          SigningKeyConfig           `yaml:"signing_keys"`
	TokenValidation      TokenValidationConfig      `yaml:"token_validation"`
	Session              SessionConfig              `yaml:"session"`
	Legacy               LegacyConfig               `yaml:"legacy"`
	CleanupInterval      int64                      `yaml:"cleanup_interval"`
	Clients              []ClientConfig             `yaml:"clients" validate:"dive"`
}

// UserConfig holds a user seeded into the local credential store.
type UserConfig struct {
	ID         string `yaml:"id"`
	Username   string `yaml:"username" validate:"required,min=3,max=50"`
	Password   string `yaml:"password" validate:"required,min=8,max=128"`
	TOTPSecret string `yaml:"totp_secret"`
	GivenName  string `yaml:"given_name"`
	FamilyName string `yaml:"family_name"`
	Email      string `yaml:"email" validate:"omitempty,email"`
}

// UserStore holds the user store configuration details.
type UserStore struct {
	Users []UserConfig `yaml:"users" validate:"dive"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Security  SecurityConfig  `yaml:"security"`
	Database  DatabaseConfig  `yaml:"database"`
	Cache     CacheConfig     `yaml:"cache"`
	CORS      CORSConfig      `yaml:"cors"`
	Crypto    CryptoConfig    `yaml:"crypto"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	OAuth     OAuthConfig     `yaml:"oauth"`
	UserStore UserStore       `yaml:"user_store"`
}

// LoadConfig loads the configurations from the specified YAML file, applies environment
// overrides and defaults, and validates the result.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateConfig validates the configuration against its struct constraints.
func ValidateConfig(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
