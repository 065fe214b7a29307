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

package tokenstore

// RevokeReason records why a token family was revoked.
type RevokeReason string

const (
	// RevokeReasonReuseDetected is recorded when a rotated refresh token is presented again.
	RevokeReasonReuseDetected RevokeReason = "REUSE_DETECTED"
	// RevokeReasonLogout is recorded when the session owning the family is ended.
	RevokeReasonLogout RevokeReason = "LOGOUT"
	// RevokeReasonAdmin is recorded for revocations requested by an operator or the client.
	RevokeReasonAdmin RevokeReason = "ADMIN"
)

// TokenFamily is the lineage of refresh tokens descending from one authorization grant.
type TokenFamily struct {
	FamilyID     string
	ClientID     string
	UserID       string
	SessionID    string
	Scopes       []string
	AuthTime     int64
	AMR          []string
	Revoked      bool
	RevokedAt    int64
	RevokeReason RevokeReason
	CreatedAt    int64
}

// RefreshToken is the persisted record of a refresh token.
type RefreshToken struct {
	JTI        string
	FamilyID   string
	ClientID   string
	UserID     string
	Scopes     []string
	Generation int
	ParentJTI  string
	Revoked    bool
	IssuedAt   int64
	ExpiresAt  int64
}

// AccessToken is the persisted record of an access token.
type AccessToken struct {
	JTI       string
	FamilyID  string
	ClientID  string
	UserID    string
	Scopes    []string
	Audience  string
	Revoked   bool
	IssuedAt  int64
	ExpiresAt int64
}

// TokenStatus is the revocation state of a token as seen by the validator.
type TokenStatus struct {
	Revoked   bool
	FamilyID  string
	ClientID  string
	ExpiresAt int64
}
