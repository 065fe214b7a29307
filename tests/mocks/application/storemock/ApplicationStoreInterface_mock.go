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

	"github.com/asgardeo/tokenengine/internal/application/model"
)

// ApplicationStoreInterfaceMock is a mock type for the ApplicationStoreInterface type.
type ApplicationStoreInterfaceMock struct {
	mock.Mock
}

// GetOAuthApplication provides a mock function with given fields: clientID
func (_m *ApplicationStoreInterfaceMock) GetOAuthApplication(clientID string) (*model.OAuthApplication, error) {
	ret := _m.Called(clientID)

	var r0 *model.OAuthApplication
	if rf, ok := ret.Get(0).(func(string) *model.OAuthApplication); ok {
		r0 = rf(clientID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.OAuthApplication)
	}

	return r0, ret.Error(1)
}

// UpsertOAuthApplication provides a mock function with given fields: app
func (_m *ApplicationStoreInterfaceMock) UpsertOAuthApplication(app model.OAuthApplication) error {
	ret := _m.Called(app)
	return ret.Error(0)
}

// NewApplicationStoreInterfaceMock creates a new instance of ApplicationStoreInterfaceMock. It also registers a
// testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewApplicationStoreInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *ApplicationStoreInterfaceMock {
	m := &ApplicationStoreInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
