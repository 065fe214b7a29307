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

package scope

import (
	appmodel "github.com/asgardeo/tokenengine/internal/application/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/system/log"
)

// ScopeError represents an error during scope validation.
type ScopeError struct {
	Error            string
	ErrorDescription string
}

// ScopeValidatorInterface defines the interface for scope validation.
type ScopeValidatorInterface interface {
	ValidateScopes(requestedScopes string, app *appmodel.OAuthApplication) ([]string, *ScopeError)
	ValidateNarrowing(requestedScopes string, granted []string) ([]string, *ScopeError)
}

// APIScopeValidator validates requested scopes against the client's registered scopes.
type APIScopeValidator struct{}

// NewAPIScopeValidator creates a new instance of the APIScopeValidator.
func NewAPIScopeValidator() ScopeValidatorInterface {
	return &APIScopeValidator{}
}

// ValidateScopes returns the requested scopes when all of them are registered for the client.
// A request naming any unregistered scope is rejected as a whole.
func (sv *APIScopeValidator) ValidateScopes(requestedScopes string,
	app *appmodel.OAuthApplication) ([]string, *ScopeError) {
	scopes := ParseScopes(requestedScopes)
	if len(scopes) == 0 {
		return []string{}, nil
	}

	if !app.IsAllowedScope(scopes) {
		logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "APIScopeValidator"))
		logger.Debug("Requested scopes exceed the client's registered scopes",
			log.String("clientID", app.ClientID), log.String("scopes", requestedScopes))
		return nil, &ScopeError{
			Error:            constants.ErrorInvalidScope,
			ErrorDescription: "The requested scope is invalid or not allowed for the client",
		}
	}
	return scopes, nil
}

// ValidateNarrowing checks a scope parameter sent with a refresh request. An absent parameter
// keeps the original grant; otherwise it must not exceed it.
func (sv *APIScopeValidator) ValidateNarrowing(requestedScopes string, granted []string) ([]string, *ScopeError) {
	scopes := ParseScopes(requestedScopes)
	if len(scopes) == 0 {
		return granted, nil
	}
	if !IsSubset(scopes, granted) {
		return nil, &ScopeError{
			Error:            constants.ErrorInvalidScope,
			ErrorDescription: "The requested scope exceeds the scope originally granted",
		}
	}
	return scopes, nil
}
