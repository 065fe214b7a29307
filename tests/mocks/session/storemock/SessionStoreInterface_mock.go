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

	"github.com/asgardeo/tokenengine/internal/oauth/session/model"
)

// SessionStoreInterfaceMock is a mock type for the SessionStoreInterface type.
type SessionStoreInterfaceMock struct {
	mock.Mock
}

// GetSession provides a mock function with given fields: sessionID
func (_m *SessionStoreInterfaceMock) GetSession(sessionID string) (*model.Session, error) {
	ret := _m.Called(sessionID)

	var r0 *model.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Session)
	}
	return r0, ret.Error(1)
}

// GetLatestActiveSession provides a mock function with given fields: userID, clientID, now
func (_m *SessionStoreInterfaceMock) GetLatestActiveSession(userID, clientID string, now int64) (
	*model.Session, error) {
	ret := _m.Called(userID, clientID, now)

	var r0 *model.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Session)
	}
	return r0, ret.Error(1)
}

// TouchSession provides a mock function with given fields: sessionID, now
func (_m *SessionStoreInterfaceMock) TouchSession(sessionID string, now int64) error {
	ret := _m.Called(sessionID, now)
	return ret.Error(0)
}

// EndSession provides a mock function with given fields: sessionID, now
func (_m *SessionStoreInterfaceMock) EndSession(sessionID string, now int64) (bool, error) {
	ret := _m.Called(sessionID, now)
	return ret.Bool(0), ret.Error(1)
}

// DeleteStale provides a mock function with given fields: now
func (_m *SessionStoreInterfaceMock) DeleteStale(now int64) (int64, error) {
	ret := _m.Called(now)
	return ret.Get(0).(int64), ret.Error(1)
}

// NewSessionStoreInterfaceMock creates a new instance of SessionStoreInterfaceMock. It also registers
// a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewSessionStoreInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionStoreInterfaceMock {
	m := &SessionStoreInterfaceMock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
