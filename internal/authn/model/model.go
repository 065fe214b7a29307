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

// Package model defines the data structures used by the local user authentication provider.
package model

// Credentials are the values a user submits on the login page.
type Credentials struct {
	Username string `validate:"required,min=3,max=50"`
	Password string `validate:"required,min=8,max=128"`
	OTP      string `validate:"omitempty,numeric,len=6"`
}

// UserCredential is a stored user with its password hash and optional TOTP secret.
type UserCredential struct {
	UserID       string
	Username     string
	PasswordHash string
	// TOTPSecret is kept encrypted by the crypto service.
	TOTPSecret string
	GivenName  string
	FamilyName string
	Email      string
	Disabled   bool
}

// AuthenticatedUser is the outcome of a successful authentication.
type AuthenticatedUser struct {
	UserID   string
	Username string
	Profile  UserProfile
	AMR      []string
	AuthTime int64
}

// UserProfile holds the profile claims released in ID tokens and at the userinfo endpoint.
type UserProfile struct {
	GivenName  string
	FamilyName string
	Email      string
}
