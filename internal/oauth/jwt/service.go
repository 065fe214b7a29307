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

package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/asgardeo/tokenengine/internal/oauth/keymanager"
	"github.com/asgardeo/tokenengine/internal/oauth/keymanager/model"
)

var (
	// ErrUnexpectedTokenType is returned when the typ header does not match the expected type.
	ErrUnexpectedTokenType = errors.New("unexpected token type")
	// ErrMissingKeyID is returned when the token header carries no kid.
	ErrMissingKeyID = errors.New("token has no key id")
)

// VerifyOptions controls which claims are checked during verification.
type VerifyOptions struct {
	// Issuer, when set, must equal the iss claim.
	Issuer string
	// Audience, when set, must be contained in the aud claim.
	Audience string
	// ClockSkew is the leeway applied to exp, nbf and iat.
	ClockSkew time.Duration
	// AllowExpired skips the time based checks. Issuer and audience are still enforced.
	AllowExpired bool
	// ExpectedType, when set, must equal the typ header.
	ExpectedType string
}

// JWTServiceInterface defines the token codec.
type JWTServiceInterface interface {
	Sign(claims *Claims, typ string) (string, error)
	Verify(token string, opts VerifyOptions) (*Claims, error)
}

type jwtService struct {
	keyManager keymanager.KeyManagerInterface
	now        func() time.Time
}

// NewJWTService creates a token codec over the key manager.
func NewJWTService(keyManager keymanager.KeyManagerInterface) JWTServiceInterface {
	return &jwtService{keyManager: keyManager, now: time.Now}
}

// Sign signs the claims with the active key, setting the kid and typ headers.
func (js *jwtService) Sign(claims *Claims, typ string) (string, error) {
	key, err := js.keyManager.GetActiveKey()
	if err != nil {
		return "", fmt.Errorf("failed to get signing key: %w", err)
	}

	token := gojwt.NewWithClaims(gojwt.SigningMethodRS256, claims)
	token.Header["kid"] = key.KID
	token.Header["typ"] = typ

	signed, err := token.SignedString(key.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token, resolves its kid, checks the signature and then the claims requested
// by opts. Errors wrap the golang-jwt sentinel errors, so gojwt.ErrTokenExpired and friends can be
// matched with errors.Is.
func (js *jwtService) Verify(token string, opts VerifyOptions) (*Claims, error) {
	parserOpts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{model.AlgorithmRS256}),
		gojwt.WithTimeFunc(js.now),
	}
	if opts.AllowExpired {
		parserOpts = append(parserOpts, gojwt.WithoutClaimsValidation())
	} else {
		parserOpts = append(parserOpts,
			gojwt.WithLeeway(opts.ClockSkew),
			gojwt.WithIssuedAt(),
			gojwt.WithExpirationRequired(),
		)
		if opts.Issuer != "" {
			parserOpts = append(parserOpts, gojwt.WithIssuer(opts.Issuer))
		}
		if opts.Audience != "" {
			parserOpts = append(parserOpts, gojwt.WithAudience(opts.Audience))
		}
	}

	claims := &Claims{}
	parsed, err := gojwt.ParseWithClaims(token, claims, js.keyFunc, parserOpts...)
	if err != nil {
		return nil, err
	}

	if opts.ExpectedType != "" {
		typ, _ := parsed.Header["typ"].(string)
		if !strings.EqualFold(typ, opts.ExpectedType) {
			return nil, ErrUnexpectedTokenType
		}
	}

	if opts.AllowExpired {
		if opts.Issuer != "" && claims.Issuer != opts.Issuer {
			return nil, gojwt.ErrTokenInvalidIssuer
		}
		if opts.Audience != "" && !containsAudience(claims.Audience, opts.Audience) {
			return nil, gojwt.ErrTokenInvalidAudience
		}
	}
	return claims, nil
}

// keyFunc resolves the verification key from the kid header.
func (js *jwtService) keyFunc(token *gojwt.Token) (any, error) {
	kid, _ := token.Header["kid"].(string)
	if kid == "" {
		return nil, ErrMissingKeyID
	}
	return js.keyManager.GetVerificationKey(kid)
}

func containsAudience(audience gojwt.ClaimStrings, expected string) bool {
	for _, aud := range audience {
		if aud == expected {
			return true
		}
	}
	return false
}
