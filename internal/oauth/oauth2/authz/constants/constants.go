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

// Package constants defines constants related to OAuth2 authorization.
package constants

import "errors"

// RequestStatus is the lifecycle state of an authorization request.
type RequestStatus string

// Authorization request states.
const (
	RequestStatusAwaitingAuthentication RequestStatus = "AWAITING_AUTHENTICATION"
	RequestStatusAuthenticated          RequestStatus = "AUTHENTICATED"
	RequestStatusCodeIssued             RequestStatus = "CODE_ISSUED"
	RequestStatusAbandoned              RequestStatus = "ABANDONED"
)

// Authorization code states.
const (
	AuthCodeStateActive   = "ACTIVE"
	AuthCodeStateConsumed = "CONSUMED"
)

// AuthorizationCodeBytes is the amount of randomness in an authorization code.
const AuthorizationCodeBytes = 32

var (
	// ErrAuthorizationCodeNotFound is returned when an authorization code is not found in the database.
	ErrAuthorizationCodeNotFound = errors.New("authorization code not found")
	// ErrAuthorizationRequestNotFound is returned when an authorization request is not found.
	ErrAuthorizationRequestNotFound = errors.New("authorization request not found")
	// ErrStateTransitionFailed is returned when a conditional status update matched no row because
	// the record was expired or already moved on.
	ErrStateTransitionFailed = errors.New("authorization state transition failed")
)
