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

package applicationmock

import (
	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/tokenengine/internal/application/model"
	oauth2const "github.com/asgardeo/tokenengine/internal/oauth/oauth2/constants"
	"github.com/asgardeo/tokenengine/internal/system/config"
)

// ApplicationServiceInterfaceMock is a mock type for the ApplicationServiceInterface type.
type ApplicationServiceInterfaceMock struct {
	mock.Mock
}

// GetOAuthApplication provides a mock function with given fields: clientID
func (_m *ApplicationServiceInterfaceMock) GetOAuthApplication(clientID string) (*model.OAuthApplication, error) {
	ret := _m.Called(clientID)

	var r0 *model.OAuthApplication
	if rf, ok := ret.Get(0).(func(string) *model.OAuthApplication); ok {
		r0 = rf(clientID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.OAuthApplication)
	}

	return r0, ret.Error(1)
}

// AuthenticateClient provides a mock function with given fields: clientID, clientSecret, method
func (_m *ApplicationServiceInterfaceMock) AuthenticateClient(clientID, clientSecret string,
	method oauth2const.TokenEndpointAuthMethod) (*model.OAuthApplication, error) {
	ret := _m.Called(clientID, clientSecret, method)

	var r0 *model.OAuthApplication
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.OAuthApplication)
	}

	return r0, ret.Error(1)
}

// SeedApplications provides a mock function with given fields: clients
func (_m *ApplicationServiceInterfaceMock) SeedApplications(clients []config.ClientConfig) error {
	ret := _m.Called(clients)
	return ret.Error(0)
}

// NewApplicationServiceInterfaceMock creates a new instance of ApplicationServiceInterfaceMock. It also registers
// a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewApplicationServiceInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *ApplicationServiceInterfaceMock {
	m := &ApplicationServiceInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
