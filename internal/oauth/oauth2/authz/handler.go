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

package authz

import (
	"net/http"

	authnmodel "github.com/asgardeo/tokenengine/internal/authn/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/authz/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	oauthutils "github.com/asgardeo/tokenengine/internal/oauth/oauth2/utils"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/log"
	"github.com/asgardeo/tokenengine/internal/system/utils"
)

// authorizeResponse is returned instead of a login page redirect when no login page is configured.
type authorizeResponse struct {
	AuthID string `json:"authId"`
}

type authorizeHandler struct {
	service AuthorizationServiceInterface
}

func newAuthorizeHandler(service AuthorizationServiceInterface) *authorizeHandler {
	return &authorizeHandler{service: service}
}

// HandleAuthorizeRequest starts an authorization request and hands the user agent to the login page.
func (ah *authorizeHandler) HandleAuthorizeRequest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := model.AuthorizationParams{
		ClientID:            query.Get(constants.RequestParamClientID),
		RedirectURI:         query.Get(constants.RequestParamRedirectURI),
		ResponseType:        query.Get(constants.RequestParamResponseType),
		Scope:               query.Get(constants.RequestParamScope),
		State:               query.Get(constants.RequestParamState),
		Nonce:               query.Get(constants.RequestParamNonce),
		CodeChallenge:       query.Get(constants.RequestParamCodeChallenge),
		CodeChallengeMethod: query.Get(constants.RequestParamCodeChallengeMethod),
	}

	request, authzErr := ah.service.Begin(params)
	if authzErr != nil {
		writeAuthorizationError(w, r, authzErr)
		return
	}

	ah.redirectToLoginPage(w, r, request.ID, nil)
}

// HandleAuthenticationCallback receives the login page submission for a pending request.
func (ah *authorizeHandler) HandleAuthenticationCallback(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizeHandler"))

	if err := r.ParseForm(); err != nil {
		logger.Debug("Failed to parse the authentication callback", log.Error(err))
		oauthutils.RedirectToErrorPage(w, r, constants.ErrorInvalidRequest, "Invalid authentication request")
		return
	}
	requestID := r.PostForm.Get(constants.RequestParamAuthID)

	if r.PostForm.Get(constants.RequestParamCancel) == "true" {
		writeAuthorizationError(w, r, ah.service.Abandon(requestID))
		return
	}

	issued, authzErr := ah.service.Authenticate(requestID, authnmodel.Credentials{
		Username: r.PostForm.Get(constants.RequestParamUsername),
		Password: r.PostForm.Get(constants.RequestParamPassword),
		OTP:      r.PostForm.Get(constants.RequestParamOTP),
	})
	if authzErr != nil {
		if authzErr.RetryLogin {
			ah.redirectToLoginPage(w, r, requestID, authzErr)
			return
		}
		writeAuthorizationError(w, r, authzErr)
		return
	}

	target, err := oauthutils.GetURIWithQueryParams(issued.RedirectURI, map[string]string{
		constants.RequestParamCode:  issued.Code,
		constants.RequestParamState: issued.State,
	})
	if err != nil {
		logger.Error("Failed to construct the client redirect", log.Error(err))
		oauthutils.RedirectToErrorPage(w, r, constants.ErrorServerError, "Failed to redirect to the client")
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// redirectToLoginPage sends the user agent to the login page with the request id, or returns the
// id as JSON when no login page is configured.
func (ah *authorizeHandler) redirectToLoginPage(w http.ResponseWriter, r *http.Request, requestID string,
	authzErr *model.AuthorizationError) {
	loginPage := config.GetServerRuntime().Config.OAuth.AuthorizationRequest.LoginPage
	if loginPage == "" {
		if authzErr != nil {
			utils.WriteJSONError(w, authzErr.Error, authzErr.ErrorDescription, http.StatusUnauthorized, nil)
			return
		}
		utils.WriteJSON(w, http.StatusOK, authorizeResponse{AuthID: requestID})
		return
	}

	params := map[string]string{constants.RequestParamAuthID: requestID}
	if authzErr != nil {
		params[constants.RequestParamError] = authzErr.Error
		params[constants.RequestParamErrorDescription] = authzErr.ErrorDescription
	}
	target, err := oauthutils.GetURIWithQueryParams(loginPage, params)
	if err != nil {
		oauthutils.RedirectToErrorPage(w, r, constants.ErrorServerError, "Failed to redirect to the login page")
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func writeAuthorizationError(w http.ResponseWriter, r *http.Request, authzErr *model.AuthorizationError) {
	if authzErr.RedirectURI == "" {
		oauthutils.RedirectToErrorPage(w, r, authzErr.Error, authzErr.ErrorDescription)
		return
	}
	oauthutils.RedirectWithError(w, r, authzErr.RedirectURI, authzErr.Error, authzErr.ErrorDescription,
		authzErr.State)
}
