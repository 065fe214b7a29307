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

// Package otp verifies time based one-time passwords used as the second authentication factor.
package otp

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// validateOpts are the RFC 6238 defaults used by authenticator apps, accepting one step of drift.
var validateOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// VerifyTOTP reports whether passcode is valid for the base32 secret at time t.
func VerifyTOTP(secret, passcode string, t time.Time) bool {
	valid, err := totp.ValidateCustom(passcode, secret, t.UTC(), validateOpts)
	return err == nil && valid
}

// GenerateTOTP returns the passcode for secret at time t.
func GenerateTOTP(secret string, t time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, t.UTC(), validateOpts)
}

// GenerateSecret creates a new base32 TOTP secret for the given account.
func GenerateSecret(issuer, accountName string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{Issuer: issuer, AccountName: accountName})
	if err != nil {
		return "", err
	}
	return key.Secret(), nil
}
