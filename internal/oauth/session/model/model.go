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

// Package model defines the data structures of the OAuth session tracker.
package model

// SessionState is the lifecycle state of a session.
type SessionState string

const (
	// SessionStateActive marks a session that can still refresh tokens.
	SessionStateActive SessionState = "ACTIVE"
	// SessionStateEnded marks a session ended by logout.
	SessionStateEnded SessionState = "ENDED"
)

// Session binds a user's login at a client to the token family issued for it.
type Session struct {
	ID           string
	UserID       string
	ClientID     string
	FamilyID     string
	Scopes       []string
	AuthMethod   string
	State        SessionState
	CreatedAt    int64
	LastActivity int64
	ExpiresAt    int64
}

// IsActive reports whether the session is active and unexpired at now.
func (s *Session) IsActive(now int64) bool {
	return s.State == SessionStateActive && now < s.ExpiresAt
}

// LogoutResult describes the outcome of an RP-initiated logout.
type LogoutResult struct {
	// RedirectURI is the validated post logout redirect URI, empty when the logged-out page is shown.
	RedirectURI string
	State       string
}
