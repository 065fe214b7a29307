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

package jwtmock

import (
	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/tokenengine/internal/oauth/jwt"
)

// JWTServiceInterfaceMock is a mock type for the JWTServiceInterface type.
type JWTServiceInterfaceMock struct {
	mock.Mock
}

// Sign provides a mock function with given fields: claims, typ
func (_m *JWTServiceInterfaceMock) Sign(claims *jwt.Claims, typ string) (string, error) {
	ret := _m.Called(claims, typ)
	return ret.String(0), ret.Error(1)
}

// Verify provides a mock function with given fields: token, opts
func (_m *JWTServiceInterfaceMock) Verify(token string, opts jwt.VerifyOptions) (*jwt.Claims, error) {
	ret := _m.Called(token, opts)

	var r0 *jwt.Claims
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*jwt.Claims)
	}
	return r0, ret.Error(1)
}

// NewJWTServiceInterfaceMock creates a new instance of JWTServiceInterfaceMock. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewJWTServiceInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *JWTServiceInterfaceMock {
	m := &JWTServiceInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
