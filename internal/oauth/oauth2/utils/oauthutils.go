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

// Package utils provides utility functions for OAuth2 operations.
package utils

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/log"
	"github.com/asgardeo/tokenengine/internal/system/utils"
)

// errorParamPattern is the character set allowed in error and error_description values.
var errorParamPattern = regexp.MustCompile(`^[\x20-\x21\x23-\x5B\x5D-\x7E]*$`)

// GetURIWithQueryParams constructs a URI with the given query parameters, rejecting error
// parameters outside the allowed character set.
func GetURIWithQueryParams(uri string, queryParams map[string]string) (string, error) {
	if err := validateErrorParams(queryParams[constants.RequestParamError],
		queryParams[constants.RequestParamErrorDescription]); err != nil {
		return "", err
	}
	return utils.GetURIWithQueryParams(uri, queryParams)
}

func validateErrorParams(err, desc string) error {
	if err != "" && !errorParamPattern.MatchString(err) {
		return fmt.Errorf("invalid error code: %s", err)
	}
	if desc != "" && !errorParamPattern.MatchString(desc) {
		return fmt.Errorf("invalid error description: %s", desc)
	}
	return nil
}

// RedirectToErrorPage sends an error that must not reach the client to the configured error page,
// or renders it as a JSON 400 response when no error page is configured.
func RedirectToErrorPage(w http.ResponseWriter, r *http.Request, code, desc string) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "OAuthUtils"))

	errorPage := config.GetServerRuntime().Config.OAuth.AuthorizationRequest.ErrorPage
	if errorPage == "" {
		utils.WriteJSONError(w, code, desc, http.StatusBadRequest, nil)
		return
	}

	redirectURI, err := GetURIWithQueryParams(errorPage, map[string]string{
		constants.RequestParamError:            code,
		constants.RequestParamErrorDescription: desc,
	})
	if err != nil {
		logger.Error("Failed to construct error page URI", log.Error(err))
		utils.WriteJSONError(w, constants.ErrorServerError, "Failed to redirect to the error page",
			http.StatusInternalServerError, nil)
		return
	}
	http.Redirect(w, r, redirectURI, http.StatusFound)
}

// RedirectWithError sends an authorization error back to the client's redirect URI.
func RedirectWithError(w http.ResponseWriter, r *http.Request, redirectURI, code, desc, state string) {
	target, err := GetURIWithQueryParams(redirectURI, map[string]string{
		constants.RequestParamError:            code,
		constants.RequestParamErrorDescription: desc,
		constants.RequestParamState:            state,
	})
	if err != nil {
		RedirectToErrorPage(w, r, constants.ErrorServerError, "Failed to redirect to the client")
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}
