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

// Package pkce implements the Proof Key for Code Exchange checks of RFC 7636.
package pkce

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/system/crypto/hash"
)

const (
	minLength       = 43
	maxLength       = 128
	s256ChallengeLn = 43
)

// PKCE validation errors
var (
	ErrInvalidCodeVerifier    = errors.New("invalid code verifier")
	ErrInvalidCodeChallenge   = errors.New("invalid code challenge")
	ErrInvalidChallengeMethod = errors.New("invalid code challenge method")
	ErrPKCEValidationFailed   = errors.New("PKCE validation failed")
)

func isUnreserved(c byte) bool {
	return isBase64URL(c) || c == '.' || c == '~'
}

func isBase64URL(c byte) bool {
	return (c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_'
}

func allOf(s string, valid func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if !valid(s[i]) {
			return false
		}
	}
	return true
}

// NormalizeMethod returns the effective challenge method. An absent method means plain.
func NormalizeMethod(method string) string {
	if method == "" {
		return constants.CodeChallengeMethodPlain
	}
	return method
}

// ValidateCodeChallenge checks the challenge presented at the authorization endpoint.
// The plain method is accepted only when allowPlain is set.
func ValidateCodeChallenge(codeChallenge, codeChallengeMethod string, allowPlain bool) error {
	switch NormalizeMethod(codeChallengeMethod) {
	case constants.CodeChallengeMethodS256:
		if len(codeChallenge) != s256ChallengeLn || !allOf(codeChallenge, isBase64URL) {
			return ErrInvalidCodeChallenge
		}
		return nil
	case constants.CodeChallengeMethodPlain:
		if !allowPlain {
			return ErrInvalidChallengeMethod
		}
		if len(codeChallenge) < minLength || len(codeChallenge) > maxLength ||
			!allOf(codeChallenge, isUnreserved) {
			return ErrInvalidCodeChallenge
		}
		return nil
	default:
		return ErrInvalidChallengeMethod
	}
}

func validateCodeVerifier(codeVerifier string) error {
	if len(codeVerifier) < minLength || len(codeVerifier) > maxLength || !allOf(codeVerifier, isUnreserved) {
		return ErrInvalidCodeVerifier
	}
	return nil
}

// ValidatePKCE checks the verifier presented at the token endpoint against the stored challenge.
// The comparison runs in constant time.
func ValidatePKCE(codeChallenge, codeChallengeMethod, codeVerifier string) error {
	if codeChallenge == "" {
		return ErrInvalidCodeChallenge
	}
	if err := validateCodeVerifier(codeVerifier); err != nil {
		return err
	}

	expected, err := GenerateCodeChallenge(codeVerifier, NormalizeMethod(codeChallengeMethod))
	if err != nil {
		return err
	}
	if !hash.ConstantTimeEquals(expected, codeChallenge) {
		return ErrPKCEValidationFailed
	}
	return nil
}

// GenerateCodeChallenge derives the challenge for a verifier using the given method.
func GenerateCodeChallenge(codeVerifier, method string) (string, error) {
	if err := validateCodeVerifier(codeVerifier); err != nil {
		return "", err
	}

	switch method {
	case constants.CodeChallengeMethodPlain:
		return codeVerifier, nil
	case constants.CodeChallengeMethodS256:
		sum := sha256.Sum256([]byte(codeVerifier))
		return base64.RawURLEncoding.EncodeToString(sum[:]), nil
	default:
		return "", ErrInvalidChallengeMethod
	}
}
