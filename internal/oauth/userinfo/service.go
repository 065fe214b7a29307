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

// Package userinfo implements the OpenID Connect userinfo endpoint.
package userinfo

import (
	"errors"

	"github.com/asgardeo/tokenengine/internal/authn"
	authnconstants "github.com/asgardeo/tokenengine/internal/authn/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenfactory"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/validator"
	"github.com/asgardeo/tokenengine/internal/system/log"
)

// UserInfoResponse holds the claims released for the subject of an access token.
type UserInfoResponse struct {
	Sub        string `json:"sub"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	Email      string `json:"email,omitempty"`
}

// UserInfoServiceInterface defines the userinfo operation.
type UserInfoServiceInterface interface {
	GetUserInfo(accessToken string) (*UserInfoResponse, *model.ErrorResponse)
}

type userInfoService struct {
	validator     validator.TokenValidatorInterface
	authenticator authn.AuthenticatorInterface
}

// NewUserInfoService creates a new userinfo service.
func NewUserInfoService(tokenValidator validator.TokenValidatorInterface,
	authenticator authn.AuthenticatorInterface) UserInfoServiceInterface {
	return &userInfoService{
		validator:     tokenValidator,
		authenticator: authenticator,
	}
}

// GetUserInfo validates an access token carrying the openid scope and returns the profile claims
// its scopes release.
func (s *userInfoService) GetUserInfo(accessToken string) (*UserInfoResponse, *model.ErrorResponse) {
	claims, errResp := s.validator.Validate(accessToken, []string{constants.ScopeOpenID}, "")
	if errResp != nil {
		return nil, errResp
	}

	profile, err := s.authenticator.GetUserProfile(claims.Subject)
	if err != nil {
		if errors.Is(err, authnconstants.ErrUserNotFound) {
			return nil, &model.ErrorResponse{Error: constants.ErrorInvalidToken,
				ErrorDescription: "The subject of the access token no longer exists"}
		}
		log.GetLogger().Error("Failed to load the user profile",
			log.String(log.LoggerKeyComponentName, "UserInfoService"), log.Error(err))
		return nil, &model.ErrorResponse{Error: constants.ErrorServerError,
			ErrorDescription: "Failed to load the user profile"}
	}

	released := tokenfactory.ProfileForScopes(*profile, claims.Scopes())
	return &UserInfoResponse{
		Sub:        claims.Subject,
		GivenName:  released.GivenName,
		FamilyName: released.FamilyName,
		Email:      released.Email,
	}, nil
}
