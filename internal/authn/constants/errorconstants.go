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

// Package constants defines the errors of the user authentication provider.
package constants

import (
	"errors"

	"github.com/asgardeo/tokenengine/internal/system/error/serviceerror"
)

// Client errors for user authentication.
var (
	// ErrorInvalidCredentials is returned for an unknown user, a wrong password or a disabled user.
	ErrorInvalidCredentials = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTHN-1001",
		Error:            "Invalid credentials",
		ErrorDescription: "The provided credentials are invalid",
	}
	// ErrorInvalidCredentialFormat is returned when the submitted values fail input validation.
	ErrorInvalidCredentialFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTHN-1002",
		Error:            "Invalid credential format",
		ErrorDescription: "The username or password does not satisfy the length requirements",
	}
	// ErrorOTPRequired is returned when the user has a second factor and no code was submitted.
	ErrorOTPRequired = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTHN-1003",
		Error:            "OTP required",
		ErrorDescription: "A one-time password is required for this user",
	}
	// ErrorInvalidOTP is returned when the submitted one-time password does not verify.
	ErrorInvalidOTP = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AUTHN-1004",
		Error:            "Invalid OTP",
		ErrorDescription: "The provided one-time password is invalid",
	}
)

// ErrUserNotFound is returned by the credential store when no user matches.
var ErrUserNotFound = errors.New("user not found")
