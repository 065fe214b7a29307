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

package validatormock

import (
	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/tokenengine/internal/oauth/jwt"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
)

// TokenValidatorInterfaceMock is a mock type for the TokenValidatorInterface type.
type TokenValidatorInterfaceMock struct {
	mock.Mock
}

// Validate provides a mock function with given fields: token, requiredScopes, expectedAudience
func (_m *TokenValidatorInterfaceMock) Validate(token string, requiredScopes []string,
	expectedAudience string) (*jwt.Claims, *model.ErrorResponse) {
	ret := _m.Called(token, requiredScopes, expectedAudience)

	var r0 *jwt.Claims
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*jwt.Claims)
	}
	var r1 *model.ErrorResponse
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(*model.ErrorResponse)
	}
	return r0, r1
}

// InvalidateToken provides a mock function with given fields: jti, expiresAt
func (_m *TokenValidatorInterfaceMock) InvalidateToken(jti string, expiresAt int64) {
	_m.Called(jti, expiresAt)
}

// InvalidateFamily provides a mock function with given fields: familyID
func (_m *TokenValidatorInterfaceMock) InvalidateFamily(familyID string) {
	_m.Called(familyID)
}

// NewTokenValidatorInterfaceMock creates a new instance of TokenValidatorInterfaceMock. It also
// registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTokenValidatorInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenValidatorInterfaceMock {
	m := &TokenValidatorInterfaceMock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
