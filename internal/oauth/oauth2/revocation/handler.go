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

package revocation

import (
	"net/http"

	"github.com/asgardeo/tokenengine/internal/application"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	oauthutils "github.com/asgardeo/tokenengine/internal/oauth/oauth2/utils"
	"github.com/asgardeo/tokenengine/internal/system/utils"
)

type revocationHandler struct {
	service    RevocationServiceInterface
	appService application.ApplicationServiceInterface
}

// HandleRevocationRequest authenticates the client and revokes the submitted token. Any token
// the client may not revoke still gets a 200 response.
func (h *revocationHandler) HandleRevocationRequest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Failed to parse request body",
			http.StatusBadRequest, nil)
		return
	}

	app, authErr := oauthutils.AuthenticateClient(r, h.appService)
	if authErr != nil {
		oauthutils.WriteClientAuthError(w, authErr)
		return
	}

	token := r.PostForm.Get(constants.RequestParamToken)
	if token == "" {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Token parameter is required",
			http.StatusBadRequest, nil)
		return
	}

	if errResp := h.service.RevokeToken(token, r.PostForm.Get(constants.RequestParamTokenTypeHint),
		app); errResp != nil {
		oauthutils.WriteOAuthError(w, errResp, nil)
		return
	}

	utils.SetNoStoreHeaders(w)
	w.WriteHeader(http.StatusOK)
}
