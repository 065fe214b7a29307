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

package jwks

import "github.com/asgardeo/tokenengine/internal/system/error/serviceerror"

// ErrorWhileRetrievingKeySet is returned when the signing key set cannot be loaded.
var ErrorWhileRetrievingKeySet = serviceerror.ServiceError{
	Type:             serviceerror.ServerErrorType,
	Code:             "JWKS-5001",
	Error:            "Key set unavailable",
	ErrorDescription: "An error occurred while retrieving the signing key set",
}
