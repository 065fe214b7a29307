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

package session

import (
	"net/http"

	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/system/log"
	"github.com/asgardeo/tokenengine/internal/system/utils"
)

const loggedOutPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Signed out</title></head>
<body><p>You have been signed out.</p></body></html>
`

type logoutHandler struct {
	service SessionServiceInterface
}

func newLogoutHandler(service SessionServiceInterface) *logoutHandler {
	return &logoutHandler{service: service}
}

// HandleLogout implements RP-initiated logout. Parameters are read from the query string or,
// for POST, the form body.
func (lh *logoutHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "LogoutHandler"))

	if err := r.ParseForm(); err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Invalid logout request", http.StatusBadRequest, nil)
		return
	}

	result, errResp := lh.service.Logout(r.Form.Get(constants.RequestParamIDTokenHint),
		r.Form.Get(constants.RequestParamPostLogoutRedirectURI), r.Form.Get(constants.RequestParamState))
	if errResp != nil {
		status := http.StatusBadRequest
		if errResp.Error == constants.ErrorServerError {
			status = http.StatusInternalServerError
		}
		utils.WriteJSONError(w, errResp.Error, errResp.ErrorDescription, status, nil)
		return
	}

	utils.SetNoStoreHeaders(w)
	if result.RedirectURI != "" {
		target, err := utils.GetURIWithQueryParams(result.RedirectURI, map[string]string{
			constants.RequestParamState: result.State,
		})
		if err == nil {
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		logger.Debug("Failed to build the post logout redirect", log.Error(err))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(loggedOutPage)); err != nil {
		logger.Error("Failed to write the logout page", log.Error(err))
	}
}
