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

	"github.com/asgardeo/tokenengine/internal/authn/model"
)

// UserCredentialStoreInterfaceMock is a mock type for the UserCredentialStoreInterface type.
type UserCredentialStoreInterfaceMock struct {
	mock.Mock
}

// GetUserByUsername provides a mock function with given fields: username
func (_m *UserCredentialStoreInterfaceMock) GetUserByUsername(username string) (*model.UserCredential, error) {
	ret := _m.Called(username)

	var r0 *model.UserCredential
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.UserCredential)
	}
	return r0, ret.Error(1)
}

// GetUserByID provides a mock function with given fields: userID
func (_m *UserCredentialStoreInterfaceMock) GetUserByID(userID string) (*model.UserCredential, error) {
	ret := _m.Called(userID)

	var r0 *model.UserCredential
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.UserCredential)
	}
	return r0, ret.Error(1)
}

// UpsertUser provides a mock function with given fields: user
func (_m *UserCredentialStoreInterfaceMock) UpsertUser(user model.UserCredential) error {
	ret := _m.Called(user)
	return ret.Error(0)
}

// NewUserCredentialStoreInterfaceMock creates a new instance of UserCredentialStoreInterfaceMock. It also
// registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewUserCredentialStoreInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserCredentialStoreInterfaceMock {
	m := &UserCredentialStoreInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
