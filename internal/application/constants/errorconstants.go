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

package constants

import "errors"

// Client authentication failures. Callers map all of these to invalid_client.
var (
	// ErrInvalidClientCredentials is returned when the client id or secret does not match.
	ErrInvalidClientCredentials = errors.New("invalid client credentials")
	// ErrClientSecretRequired is returned when a confidential client presents no secret.
	ErrClientSecretRequired = errors.New("client secret is required")
	// ErrAuthMethodNotAllowed is returned when the client used an authentication method it is not
	// registered for.
	ErrAuthMethodNotAllowed = errors.New("client authentication method is not allowed")
)
