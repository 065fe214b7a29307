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

// Package constants defines the constants used across the application module.
package constants

import "errors"

// ClientType distinguishes clients that can keep a secret from those that cannot.
type ClientType string

const (
	// ClientTypePublic is a client that cannot authenticate with a secret, such as a SPA.
	ClientTypePublic ClientType = "public"
	// ClientTypeConfidential is a client holding a secret.
	ClientTypeConfidential ClientType = "confidential"
)

// URIType distinguishes the redirect URI kinds registered for a client.
type URIType string

const (
	URITypeRedirect   URIType = "REDIRECT"
	URITypePostLogout URIType = "POST_LOGOUT"
)

// ApplicationNotFoundError is the error returned when an application is not found.
var ApplicationNotFoundError = errors.New("application not found")
