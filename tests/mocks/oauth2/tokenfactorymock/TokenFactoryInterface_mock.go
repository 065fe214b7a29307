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

package tokenfactorymock

import (
	"time"

	"github.com/stretchr/testify/mock"

	authnmodel "github.com/asgardeo/tokenengine/internal/authn/model"
	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
)

// TokenFactoryInterfaceMock is a mock type for the TokenFactoryInterface type
type TokenFactoryInterfaceMock struct {
	mock.Mock
}

// MintAccessToken provides a mock function with given fields: subject, clientID, audience, scopes, familyID, validity
func (_m *TokenFactoryInterfaceMock) MintAccessToken(subject, clientID, audience string, scopes []string,
	familyID string, validity time.Duration) (*model.TokenDTO, error) {
	ret := _m.Called(subject, clientID, audience, scopes, familyID, validity)

	var r0 *model.TokenDTO
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.TokenDTO)
	}
	return r0, ret.Error(1)
}

// MintRefreshToken provides a mock function with given fields: subject, clientID, scopes, familyID, generation, validity
func (_m *TokenFactoryInterfaceMock) MintRefreshToken(subject, clientID string, scopes []string, familyID string,
	generation int, validity time.Duration) (*model.TokenDTO, error) {
	ret := _m.Called(subject, clientID, scopes, familyID, generation, validity)

	var r0 *model.TokenDTO
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.TokenDTO)
	}
	return r0, ret.Error(1)
}

// MintIDToken provides a mock function with given fields: subject, clientID, profile, authTime, amr, sid, nonce, validity
func (_m *TokenFactoryInterfaceMock) MintIDToken(subject, clientID string, profile authnmodel.UserProfile,
	authTime int64, amr []string, sid, nonce string, validity time.Duration) (*model.TokenDTO, error) {
	ret := _m.Called(subject, clientID, profile, authTime, amr, sid, nonce, validity)

	var r0 *model.TokenDTO
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.TokenDTO)
	}
	return r0, ret.Error(1)
}

// NewTokenFactoryInterfaceMock creates a new instance of TokenFactoryInterfaceMock. It also
// registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTokenFactoryInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenFactoryInterfaceMock {
	m := &TokenFactoryInterfaceMock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
