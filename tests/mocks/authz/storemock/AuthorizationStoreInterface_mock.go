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

package storemock

import (
	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/authz/model"
)

// AuthorizationStoreInterfaceMock is a mock type for the AuthorizationStoreInterface type.
type AuthorizationStoreInterfaceMock struct {
	mock.Mock
}

// InsertAuthorizationRequest provides a mock function with given fields: request
func (_m *AuthorizationStoreInterfaceMock) InsertAuthorizationRequest(request model.AuthorizationRequest) error {
	ret := _m.Called(request)
	return ret.Error(0)
}

// GetAuthorizationRequest provides a mock function with given fields: requestID
func (_m *AuthorizationStoreInterfaceMock) GetAuthorizationRequest(requestID string) (
	*model.AuthorizationRequest, error) {
	ret := _m.Called(requestID)

	var r0 *model.AuthorizationRequest
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.AuthorizationRequest)
	}
	return r0, ret.Error(1)
}

// MarkRequestAuthenticated provides a mock function with given fields: requestID, userID, authTime, amr, now
func (_m *AuthorizationStoreInterfaceMock) MarkRequestAuthenticated(requestID, userID string, authTime int64,
	amr []string, now int64) error {
	ret := _m.Called(requestID, userID, authTime, amr, now)
	return ret.Error(0)
}

// IssueAuthorizationCode provides a mock function with given fields: code, now
func (_m *AuthorizationStoreInterfaceMock) IssueAuthorizationCode(code model.AuthorizationCode, now int64) error {
	ret := _m.Called(code, now)
	return ret.Error(0)
}

// AbandonAuthorizationRequest provides a mock function with given fields: requestID
func (_m *AuthorizationStoreInterfaceMock) AbandonAuthorizationRequest(requestID string) error {
	ret := _m.Called(requestID)
	return ret.Error(0)
}

// GetAuthorizationCode provides a mock function with given fields: codeHash
func (_m *AuthorizationStoreInterfaceMock) GetAuthorizationCode(codeHash string) (*model.AuthorizationCode, error) {
	ret := _m.Called(codeHash)

	var r0 *model.AuthorizationCode
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.AuthorizationCode)
	}
	return r0, ret.Error(1)
}

// ConsumeAuthorizationCode provides a mock function with given fields: codeHash, now
func (_m *AuthorizationStoreInterfaceMock) ConsumeAuthorizationCode(codeHash string, now int64) error {
	ret := _m.Called(codeHash, now)
	return ret.Error(0)
}

// DeleteExpired provides a mock function with given fields: now
func (_m *AuthorizationStoreInterfaceMock) DeleteExpired(now int64) (int64, error) {
	ret := _m.Called(now)
	return ret.Get(0).(int64), ret.Error(1)
}

// NewAuthorizationStoreInterfaceMock creates a new instance of AuthorizationStoreInterfaceMock. It also registers
// a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAuthorizationStoreInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthorizationStoreInterfaceMock {
	m := &AuthorizationStoreInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
