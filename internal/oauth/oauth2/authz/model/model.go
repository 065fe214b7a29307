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

// Package model defines the data structures for OAuth2 authorization.
package model

// AuthorizationParams are the parameters of an incoming authorization request.
type AuthorizationParams struct {
	ClientID            string
	RedirectURI         string
	ResponseType        string
	Scope               string
	State               string
	Nonce               string
	CodeChallenge       string
	CodeChallengeMethod string
}

// AuthorizationRequest is an authorization request awaiting or past user authentication.
type AuthorizationRequest struct {
	ID                  string
	ClientID            string
	RedirectURI         string
	Scopes              []string
	State               string
	Nonce               string
	CodeChallenge       string
	CodeChallengeMethod string
	Status              string
	UserID              string
	AuthTime            int64
	AMR                 []string
	CreatedAt           int64
	ExpiresAt           int64
}

// AuthorizationCode is a persisted authorization code. Only the hash of the code value is stored.
type AuthorizationCode struct {
	CodeID              string
	CodeHash            string
	RequestID           string
	ClientID            string
	RedirectURI         string
	UserID              string
	Scopes              []string
	Nonce               string
	CodeChallenge       string
	CodeChallengeMethod string
	AMR                 []string
	AuthTime            int64
	State               string
	IssuedAt            int64
	ExpiresAt           int64
}

// IssuedCode is a freshly issued code value with the redirect it must be delivered to.
type IssuedCode struct {
	Code        string
	RedirectURI string
	State       string
}

// AuthorizationError is an error raised while processing an authorization request. When
// RedirectURI is empty the error must not be sent back to the client.
type AuthorizationError struct {
	Error            string
	ErrorDescription string
	RedirectURI      string
	State            string
	// RetryLogin marks a failed authentication that leaves the request open for another attempt.
	RetryLogin bool
}
