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

package utils

import (
	"errors"
	"net/http"

	"github.com/asgardeo/tokenengine/internal/application"
	appconstants "github.com/asgardeo/tokenengine/internal/application/constants"
	appmodel "github.com/asgardeo/tokenengine/internal/application/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
	"github.com/asgardeo/tokenengine/internal/system/log"
	sysutils "github.com/asgardeo/tokenengine/internal/system/utils"
)

// ClientAuthError is a failed client authentication at a back channel endpoint.
type ClientAuthError struct {
	model.ErrorResponse
	// BasicAttempted is set when the client sent an Authorization header, which requires a
	// WWW-Authenticate challenge on a 401 response.
	BasicAttempted bool
}

// AuthenticateClient authenticates the client of a back channel request using HTTP Basic, form
// parameters or, for public clients, the client_id alone. The form must already be parsed.
func AuthenticateClient(r *http.Request, appService application.ApplicationServiceInterface) (
	*appmodel.OAuthApplication, *ClientAuthError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ClientAuthenticator"))

	clientID, clientSecret, err := sysutils.ExtractBasicAuthCredentials(r)
	basic := err == nil
	if err != nil && !errors.Is(err, sysutils.ErrNoBasicAuth) {
		return nil, invalidClient("Invalid client credentials", true)
	}

	formClientID := r.PostForm.Get(constants.RequestParamClientID)
	formClientSecret := r.PostForm.Get(constants.RequestParamClientSecret)

	method := constants.TokenEndpointAuthMethodNone
	switch {
	case basic:
		if formClientSecret != "" {
			return nil, &ClientAuthError{ErrorResponse: model.ErrorResponse{
				Error:            constants.ErrorInvalidRequest,
				ErrorDescription: "Client credentials must not be sent in both the header and the body",
			}}
		}
		if formClientID != "" && formClientID != clientID {
			return nil, &ClientAuthError{ErrorResponse: model.ErrorResponse{
				Error:            constants.ErrorInvalidRequest,
				ErrorDescription: "client_id does not match the authenticated client",
			}}
		}
		method = constants.TokenEndpointAuthMethodClientSecretBasic
	case formClientSecret != "":
		clientID, clientSecret = formClientID, formClientSecret
		method = constants.TokenEndpointAuthMethodClientSecretPost
	default:
		clientID = formClientID
	}

	if clientID == "" {
		return nil, invalidClient("Client authentication is required", basic)
	}

	app, err := appService.AuthenticateClient(clientID, clientSecret, method)
	if err != nil {
		if errors.Is(err, appconstants.ErrInvalidClientCredentials) ||
			errors.Is(err, appconstants.ErrClientSecretRequired) ||
			errors.Is(err, appconstants.ErrAuthMethodNotAllowed) {
			return nil, invalidClient("Invalid client credentials", basic)
		}
		logger.Error("Failed to authenticate the client", log.String(log.LoggerKeyClientID, clientID),
			log.Error(err))
		return nil, &ClientAuthError{ErrorResponse: model.ErrorResponse{
			Error:            constants.ErrorServerError,
			ErrorDescription: "Failed to authenticate the client",
		}}
	}
	return app, nil
}

func invalidClient(desc string, basic bool) *ClientAuthError {
	return &ClientAuthError{
		ErrorResponse:  model.ErrorResponse{Error: constants.ErrorInvalidClient, ErrorDescription: desc},
		BasicAttempted: basic,
	}
}

// WriteClientAuthError writes a client authentication failure.
func WriteClientAuthError(w http.ResponseWriter, authErr *ClientAuthError) {
	var headers []map[string]string
	if authErr.Error == constants.ErrorInvalidClient && authErr.BasicAttempted {
		headers = []map[string]string{{"WWW-Authenticate": "Basic"}}
	}
	WriteOAuthError(w, &authErr.ErrorResponse, headers)
}

// WriteOAuthError writes an OAuth error response with the status code its error code maps to.
func WriteOAuthError(w http.ResponseWriter, errResp *model.ErrorResponse, headers []map[string]string) {
	sysutils.WriteJSONError(w, errResp.Error, errResp.ErrorDescription, StatusForError(errResp.Error), headers)
}

// StatusForError maps an OAuth error code to its HTTP status code.
func StatusForError(code string) int {
	switch code {
	case constants.ErrorInvalidClient, constants.ErrorInvalidToken:
		return http.StatusUnauthorized
	case constants.ErrorInsufficientScope:
		return http.StatusForbidden
	case constants.ErrorServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
