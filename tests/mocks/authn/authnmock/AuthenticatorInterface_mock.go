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

package authnmock

import (
	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/tokenengine/internal/authn/model"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/error/serviceerror"
)

// AuthenticatorInterfaceMock is a mock type for the AuthenticatorInterface type.
type AuthenticatorInterfaceMock struct {
	mock.Mock
}

// Authenticate provides a mock function with given fields: credentials
func (_m *AuthenticatorInterfaceMock) Authenticate(credentials model.Credentials) (
	*model.AuthenticatedUser, *serviceerror.ServiceError) {
	ret := _m.Called(credentials)

	var r0 *model.AuthenticatedUser
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.AuthenticatedUser)
	}
	var r1 *serviceerror.ServiceError
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(*serviceerror.ServiceError)
	}
	return r0, r1
}

// GetUserProfile provides a mock function with given fields: userID
func (_m *AuthenticatorInterfaceMock) GetUserProfile(userID string) (*model.UserProfile, error) {
	ret := _m.Called(userID)

	var r0 *model.UserProfile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.UserProfile)
	}
	return r0, ret.Error(1)
}

// SeedUsers provides a mock function with given fields: users
func (_m *AuthenticatorInterfaceMock) SeedUsers(users []config.UserConfig) error {
	ret := _m.Called(users)
	return ret.Error(0)
}

// NewAuthenticatorInterfaceMock creates a new instance of AuthenticatorInterfaceMock. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewAuthenticatorInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthenticatorInterfaceMock {
	m := &AuthenticatorInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
