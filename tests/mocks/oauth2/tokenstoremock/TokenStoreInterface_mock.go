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

package tokenstoremock

import (
	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/tokenengine/internal/oauth/oauth2/tokenstore"
	sessionmodel "github.com/asgardeo/tokenengine/internal/oauth/session/model"
)

// TokenStoreInterfaceMock is a mock type for the TokenStoreInterface type.
type TokenStoreInterfaceMock struct {
	mock.Mock
}

// CreateTokenFamily provides a mock function with given fields: family, refreshToken, accessToken, session
func (_m *TokenStoreInterfaceMock) CreateTokenFamily(family tokenstore.TokenFamily,
	refreshToken tokenstore.RefreshToken, accessToken tokenstore.AccessToken, session sessionmodel.Session) error {
	ret := _m.Called(family, refreshToken, accessToken, session)
	return ret.Error(0)
}

// StoreAccessToken provides a mock function with given fields: accessToken
func (_m *TokenStoreInterfaceMock) StoreAccessToken(accessToken tokenstore.AccessToken) error {
	ret := _m.Called(accessToken)
	return ret.Error(0)
}

// GetTokenFamily provides a mock function with given fields: familyID
func (_m *TokenStoreInterfaceMock) GetTokenFamily(familyID string) (*tokenstore.TokenFamily, error) {
	ret := _m.Called(familyID)

	var r0 *tokenstore.TokenFamily
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*tokenstore.TokenFamily)
	}
	return r0, ret.Error(1)
}

// GetRefreshToken provides a mock function with given fields: jti
func (_m *TokenStoreInterfaceMock) GetRefreshToken(jti string) (*tokenstore.RefreshToken, error) {
	ret := _m.Called(jti)

	var r0 *tokenstore.RefreshToken
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*tokenstore.RefreshToken)
	}
	return r0, ret.Error(1)
}

// RotateRefreshToken provides a mock function with given fields: presentedJTI, successor, accessToken, sessionID, now
func (_m *TokenStoreInterfaceMock) RotateRefreshToken(presentedJTI string, successor tokenstore.RefreshToken,
	accessToken tokenstore.AccessToken, sessionID string, now int64) error {
	ret := _m.Called(presentedJTI, successor, accessToken, sessionID, now)
	return ret.Error(0)
}

// RevokeTokenFamily provides a mock function with given fields: familyID, reason, revokeAccessTokens, now
func (_m *TokenStoreInterfaceMock) RevokeTokenFamily(familyID string, reason tokenstore.RevokeReason,
	revokeAccessTokens bool, now int64) error {
	ret := _m.Called(familyID, reason, revokeAccessTokens, now)
	return ret.Error(0)
}

// RevokeAccessToken provides a mock function with given fields: jti
func (_m *TokenStoreInterfaceMock) RevokeAccessToken(jti string) error {
	ret := _m.Called(jti)
	return ret.Error(0)
}

// RevokeRefreshToken provides a mock function with given fields: jti
func (_m *TokenStoreInterfaceMock) RevokeRefreshToken(jti string) error {
	ret := _m.Called(jti)
	return ret.Error(0)
}

// GetAccessTokenStatus provides a mock function with given fields: jti
func (_m *TokenStoreInterfaceMock) GetAccessTokenStatus(jti string) (*tokenstore.TokenStatus, error) {
	ret := _m.Called(jti)

	var r0 *tokenstore.TokenStatus
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*tokenstore.TokenStatus)
	}
	return r0, ret.Error(1)
}

// DeleteExpired provides a mock function with given fields: now
func (_m *TokenStoreInterfaceMock) DeleteExpired(now int64) (int64, error) {
	ret := _m.Called(now)
	return ret.Get(0).(int64), ret.Error(1)
}

// NewTokenStoreInterfaceMock creates a new instance of TokenStoreInterfaceMock. It also registers a
// testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTokenStoreInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenStoreInterfaceMock {
	m := &TokenStoreInterfaceMock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
