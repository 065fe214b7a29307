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

package keymanagermock

import (
	"context"
	"crypto/rsa"

	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/tokenengine/internal/oauth/keymanager/model"
)

// KeyManagerInterfaceMock is a mock type for the KeyManagerInterface type.
type KeyManagerInterfaceMock struct {
	mock.Mock
}

// GetActiveKey provides a mock function with no fields
func (_m *KeyManagerInterfaceMock) GetActiveKey() (*model.SigningKey, error) {
	ret := _m.Called()

	var r0 *model.SigningKey
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.SigningKey)
	}
	return r0, ret.Error(1)
}

// GetKeySet provides a mock function with no fields
func (_m *KeyManagerInterfaceMock) GetKeySet() ([]model.SigningKey, error) {
	ret := _m.Called()

	var r0 []model.SigningKey
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.SigningKey)
	}
	return r0, ret.Error(1)
}

// GetVerificationKey provides a mock function with given fields: kid
func (_m *KeyManagerInterfaceMock) GetVerificationKey(kid string) (*rsa.PublicKey, error) {
	ret := _m.Called(kid)

	var r0 *rsa.PublicKey
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*rsa.PublicKey)
	}
	return r0, ret.Error(1)
}

// Rotate provides a mock function with no fields
func (_m *KeyManagerInterfaceMock) Rotate() (*model.SigningKey, error) {
	ret := _m.Called()

	var r0 *model.SigningKey
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.SigningKey)
	}
	return r0, ret.Error(1)
}

// Initialize provides a mock function with no fields
func (_m *KeyManagerInterfaceMock) Initialize() error {
	ret := _m.Called()
	return ret.Error(0)
}

// StartAutoRotation provides a mock function with given fields: ctx
func (_m *KeyManagerInterfaceMock) StartAutoRotation(ctx context.Context) {
	_m.Called(ctx)
}

// NewKeyManagerInterfaceMock creates a new instance of KeyManagerInterfaceMock. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewKeyManagerInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *KeyManagerInterfaceMock {
	m := &KeyManagerInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
