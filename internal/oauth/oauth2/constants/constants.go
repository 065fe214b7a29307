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

// Package constants defines constants used across the OAuth2 module.
package constants

// OAuth2 request parameters.
const (
	RequestParamGrantType             = "grant_type"
	RequestParamClientID              = "client_id"
	RequestParamClientSecret          = "client_secret"
	RequestParamRedirectURI           = "redirect_uri"
	RequestParamUsername              = "username"
	RequestParamPassword              = "password"
	RequestParamScope                 = "scope"
	RequestParamCode                  = "code"
	RequestParamCodeVerifier          = "code_verifier"
	RequestParamCodeChallenge         = "code_challenge"
	RequestParamCodeChallengeMethod   = "code_challenge_method"
	RequestParamRefreshToken          = "refresh_token"
	RequestParamResponseType          = "response_type"
	RequestParamState                 = "state"
	RequestParamNonce                 = "nonce"
	RequestParamToken                 = "token"
	RequestParamTokenTypeHint         = "token_type_hint"
	RequestParamIDTokenHint           = "id_token_hint"
	RequestParamPostLogoutRedirectURI = "post_logout_redirect_uri"
	RequestParamError                 = "error"
	RequestParamErrorDescription      = "error_description"
)

// Parameters exchanged with the login page.
const (
	RequestParamAuthID = "authId"
	RequestParamOTP    = "otp"
	RequestParamCancel = "cancel"
)

// OAuth2 endpoints.
const (
	OAuth2AuthorizationEndpoint = "/authorize"
	OAuth2TokenEndpoint         = "/oauth/token" // #nosec G101
	OAuth2RevokeEndpoint        = "/oauth/revoke"
	OAuth2IntrospectionEndpoint = "/oauth/introspect"
	OAuth2UserInfoEndpoint      = "/oauth/userinfo"
	OAuth2JWKSEndpoint          = "/.well-known/jwks.json"
	OAuth2DiscoveryEndpoint     = "/.well-known/openid-configuration"
	OAuth2LogoutEndpoint        = "/logout"
)

// GrantType defines a type for OAuth2 grant types.
type GrantType string

// OAuth2 grant types.
const (
	GrantTypeAuthorizationCode GrantType = "authorization_code"
	GrantTypeClientCredentials GrantType = "client_credentials"
	GrantTypePassword          GrantType = "password"
	GrantTypeImplicit          GrantType = "implicit"
	GrantTypeRefreshToken      GrantType = "refresh_token"
)

// ResponseType defines a type for OAuth2 response types.
type ResponseType string

// OAuth2 response types.
const (
	ResponseTypeCode ResponseType = "code"
)

// TokenEndpointAuthMethod defines how a client authenticates at the token endpoint.
type TokenEndpointAuthMethod string

// Supported token endpoint authentication methods.
const (
	TokenEndpointAuthMethodClientSecretBasic TokenEndpointAuthMethod = "client_secret_basic"
	TokenEndpointAuthMethodClientSecretPost  TokenEndpointAuthMethod = "client_secret_post"
	TokenEndpointAuthMethodNone              TokenEndpointAuthMethod = "none"
)

// PKCE code challenge methods.
const (
	CodeChallengeMethodS256  = "S256"
	CodeChallengeMethodPlain = "plain"
)

// OAuth2 token types.
const (
	TokenTypeBearer = "Bearer"
)

// Token type hints and introspection token types.
const (
	TokenTypeHintAccessToken  = "access_token"
	TokenTypeHintRefreshToken = "refresh_token"
)

// JWT "typ" header values.
const (
	JWTTypeAccessToken = "at+jwt"
	JWTTypeDefault     = "JWT"
)

// Standard scopes with special meaning.
const (
	ScopeOpenID  = "openid"
	ScopeProfile = "profile"
	ScopeEmail   = "email"
)

// Authentication method references.
const (
	AMRPassword = "pwd"
	AMROTP      = "otp"
)

// OAuth2 error codes.
const (
	ErrorInvalidRequest          = "invalid_request"
	ErrorInvalidClient           = "invalid_client"
	ErrorInvalidGrant            = "invalid_grant"
	ErrorUnauthorizedClient      = "unauthorized_client"
	ErrorUnsupportedGrantType    = "unsupported_grant_type"
	ErrorUnsupportedResponseType = "unsupported_response_type"
	ErrorInvalidScope            = "invalid_scope"
	ErrorInsufficientScope       = "insufficient_scope"
	ErrorInvalidToken            = "invalid_token"
	ErrorAccessDenied            = "access_denied"
	ErrorServerError             = "server_error"
)
