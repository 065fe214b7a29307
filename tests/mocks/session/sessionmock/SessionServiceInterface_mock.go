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

package sessionmock

import (
	"time"

	"github.com/stretchr/testify/mock"

	oauthmodel "github.com/asgardeo/tokenengine/internal/oauth/oauth2/model"
	"github.com/asgardeo/tokenengine/internal/oauth/session/model"
)

// SessionServiceInterfaceMock is a mock type for the SessionServiceInterface type.
type SessionServiceInterfaceMock struct {
	mock.Mock
}

// CreateSession provides a mock function with given fields: userID, clientID, familyID, authMethod, scopes
func (_m *SessionServiceInterfaceMock) CreateSession(userID, clientID, familyID, authMethod string,
	scopes []string) model.Session {
	ret := _m.Called(userID, clientID, familyID, authMethod, scopes)
	return ret.Get(0).(model.Session)
}

// Touch provides a mock function with given fields: sessionID
func (_m *SessionServiceInterfaceMock) Touch(sessionID string) error {
	ret := _m.Called(sessionID)
	return ret.Error(0)
}

// GetActiveSession provides a mock function with given fields: userID, clientID, sid
func (_m *SessionServiceInterfaceMock) GetActiveSession(userID, clientID, sid string) (*model.Session, error) {
	ret := _m.Called(userID, clientID, sid)

	var r0 *model.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Session)
	}
	return r0, ret.Error(1)
}

// ValidateSession provides a mock function with given fields: sessionID, userID, clientID, scopes
func (_m *SessionServiceInterfaceMock) ValidateSession(sessionID, userID, clientID string, scopes []string) error {
	ret := _m.Called(sessionID, userID, clientID, scopes)
	return ret.Error(0)
}

// Logout provides a mock function with given fields: idTokenHint, postLogoutRedirectURI, state
func (_m *SessionServiceInterfaceMock) Logout(idTokenHint, postLogoutRedirectURI, state string) (
	*model.LogoutResult, *oauthmodel.ErrorResponse) {
	ret := _m.Called(idTokenHint, postLogoutRedirectURI, state)

	var r0 *model.LogoutResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.LogoutResult)
	}
	var r1 *oauthmodel.ErrorResponse
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(*oauthmodel.ErrorResponse)
	}
	return r0, r1
}

// PurgeExpired provides a mock function with given fields: now
func (_m *SessionServiceInterfaceMock) PurgeExpired(now time.Time) (int64, error) {
	ret := _m.Called(now)
	return ret.Get(0).(int64), ret.Error(1)
}

// NewSessionServiceInterfaceMock creates a new instance of SessionServiceInterfaceMock. It also
// registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewSessionServiceInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionServiceInterfaceMock {
	m := &SessionServiceInterfaceMock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
