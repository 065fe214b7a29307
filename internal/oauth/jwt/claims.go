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

// Package jwt signs and verifies the RS256 tokens issued by the server.
package jwt

import (
	"slices"
	"strings"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set of every token the server issues. Which optional claims are present
// depends on the token kind.
type Claims struct {
	gojwt.RegisteredClaims
	Scope      string   `json:"scope,omitempty"`
	ClientID   string   `json:"client_id,omitempty"`
	FamilyID   string   `json:"fid,omitempty"`
	Generation *int     `json:"gen,omitempty"`
	AuthTime   int64    `json:"auth_time,omitempty"`
	Nonce      string   `json:"nonce,omitempty"`
	AMR        []string `json:"amr,omitempty"`
	SessionID  string   `json:"sid,omitempty"`
	GivenName  string   `json:"given_name,omitempty"`
	FamilyName string   `json:"family_name,omitempty"`
	Email      string   `json:"email,omitempty"`
}

// IsRefreshToken reports whether the claims belong to a refresh token.
func (c *Claims) IsRefreshToken() bool {
	return c.Generation != nil
}

// GetGeneration returns the rotation generation of a refresh token, or -1 for other tokens.
func (c *Claims) GetGeneration() int {
	if c.Generation == nil {
		return -1
	}
	return *c.Generation
}

// Scopes returns the granted scopes.
func (c *Claims) Scopes() []string {
	return strings.Fields(c.Scope)
}

// HasScopes reports whether every required scope was granted.
func (c *Claims) HasScopes(required []string) bool {
	granted := c.Scopes()
	for _, scope := range required {
		if !slices.Contains(granted, scope) {
			return false
		}
	}
	return true
}

// ExpiryUnix returns the exp claim as unix seconds, or zero when absent.
func (c *Claims) ExpiryUnix() int64 {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Unix()
}

// IssuedAtUnix returns the iat claim as unix seconds, or zero when absent.
func (c *Claims) IssuedAtUnix() int64 {
	if c.IssuedAt == nil {
		return 0
	}
	return c.IssuedAt.Unix()
}

// NotBeforeUnix returns the nbf claim as unix seconds, or zero when absent.
func (c *Claims) NotBeforeUnix() int64 {
	if c.NotBefore == nil {
		return 0
	}
	return c.NotBefore.Unix()
}
