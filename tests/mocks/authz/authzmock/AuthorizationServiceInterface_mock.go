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

package authzmock

import (
	"time"

	"github.com/stretchr/testify/mock"

	authnmodel "github.com/asgardeo/tokenengine/internal/authn/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/authz/model"
)

// AuthorizationServiceInterfaceMock is a mock type for the AuthorizationServiceInterface type.
type AuthorizationServiceInterfaceMock struct {
	mock.Mock
}

// Begin provides a mock function with given fields: params
func (_m *AuthorizationServiceInterfaceMock) Begin(params model.AuthorizationParams) (
	*model.AuthorizationRequest, *model.AuthorizationError) {
	ret := _m.Called(params)

	var r0 *model.AuthorizationRequest
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.AuthorizationRequest)
	}
	var r1 *model.AuthorizationError
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(*model.AuthorizationError)
	}
	return r0, r1
}

// Authenticate provides a mock function with given fields: requestID, credentials
func (_m *AuthorizationServiceInterfaceMock) Authenticate(requestID string, credentials authnmodel.Credentials) (
	*model.IssuedCode, *model.AuthorizationError) {
	ret := _m.Called(requestID, credentials)

	var r0 *model.IssuedCode
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.IssuedCode)
	}
	var r1 *model.AuthorizationError
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(*model.AuthorizationError)
	}
	return r0, r1
}

// IssueCode provides a mock function with given fields: requestID, user
func (_m *AuthorizationServiceInterfaceMock) IssueCode(requestID string, user *authnmodel.AuthenticatedUser) (
	*model.IssuedCode, error) {
	ret := _m.Called(requestID, user)

	var r0 *model.IssuedCode
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.IssuedCode)
	}
	return r0, ret.Error(1)
}

// Abandon provides a mock function with given fields: requestID
func (_m *AuthorizationServiceInterfaceMock) Abandon(requestID string) *model.AuthorizationError {
	ret := _m.Called(requestID)

	var r0 *model.AuthorizationError
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.AuthorizationError)
	}
	return r0
}

// GetAuthorizationCode provides a mock function with given fields: code
func (_m *AuthorizationServiceInterfaceMock) GetAuthorizationCode(code string) (*model.AuthorizationCode, error) {
	ret := _m.Called(code)

	var r0 *model.AuthorizationCode
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.AuthorizationCode)
	}
	return r0, ret.Error(1)
}

// ConsumeAuthorizationCode provides a mock function with given fields: code
func (_m *AuthorizationServiceInterfaceMock) ConsumeAuthorizationCode(code string) error {
	ret := _m.Called(code)
	return ret.Error(0)
}

// PurgeExpired provides a mock function with given fields: now
func (_m *AuthorizationServiceInterfaceMock) PurgeExpired(now time.Time) (int64, error) {
	ret := _m.Called(now)
	return ret.Get(0).(int64), ret.Error(1)
}

// NewAuthorizationServiceInterfaceMock creates a new instance of AuthorizationServiceInterfaceMock. It also
// registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAuthorizationServiceInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthorizationServiceInterfaceMock {
	m := &AuthorizationServiceInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
