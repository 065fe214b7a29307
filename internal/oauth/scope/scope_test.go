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

package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	appmodel "github.com/asgardeo/tokenengine/internal/application/model"
)

type ScopeValidatorTestSuite struct {
	suite.Suite
	validator ScopeValidatorInterface
	app       *appmodel.OAuthApplication
}

func TestScopeValidatorSuite(t *testing.T) {
	suite.Run(t, new(ScopeValidatorTestSuite))
}

func (suite *ScopeValidatorTestSuite) SetupTest() {
	suite.validator = NewAPIScopeValidator()
	suite.app = &appmodel.OAuthApplication{
		ClientID: "client1",
		Scopes:   []string{"openid", "profile", "email", "read"},
	}
}

func (suite *ScopeValidatorTestSuite) TestParseScopes() {
	assert.Equal(suite.T(), []string{"openid", "read"}, ParseScopes("  openid read openid "))
	assert.Empty(suite.T(), ParseScopes(""))
	assert.Equal(suite.T(), "openid read", JoinScopes([]string{"openid", "read"}))
}

func (suite *ScopeValidatorTestSuite) TestValidateScopes() {
	testCases := []struct {
		name           string
		requested      string
		expectedScopes []string
		expectError    bool
	}{
		{name: "EmptyScopes", requested: "", expectedScopes: []string{}},
		{name: "SingleScope", requested: "read", expectedScopes: []string{"read"}},
		{name: "MultipleScopes", requested: "openid profile", expectedScopes: []string{"openid", "profile"}},
		{name: "DuplicateScopes", requested: "read read", expectedScopes: []string{"read"}},
		{name: "UnregisteredScope", requested: "openid admin", expectError: true},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			scopes, scopeErr := suite.validator.ValidateScopes(tc.requested, suite.app)
			if tc.expectError {
				suite.Require().NotNil(scopeErr)
				suite.Equal("invalid_scope", scopeErr.Error)
				suite.Nil(scopes)
				return
			}
			suite.Nil(scopeErr)
			suite.Equal(tc.expectedScopes, scopes)
		})
	}
}

func (suite *ScopeValidatorTestSuite) TestValidateNarrowing() {
	granted := []string{"openid", "read"}

	scopes, scopeErr := suite.validator.ValidateNarrowing("", granted)
	suite.Nil(scopeErr)
	suite.Equal(granted, scopes)

	scopes, scopeErr = suite.validator.ValidateNarrowing("read", granted)
	suite.Nil(scopeErr)
	suite.Equal([]string{"read"}, scopes)

	_, scopeErr = suite.validator.ValidateNarrowing("read write", granted)
	suite.Require().NotNil(scopeErr)
	suite.Equal("invalid_scope", scopeErr.Error)
}

func (suite *ScopeValidatorTestSuite) TestIsSubset() {
	suite.True(IsSubset(nil, []string{"a"}))
	suite.True(IsSubset([]string{"a"}, []string{"a", "b"}))
	suite.False(IsSubset([]string{"c"}, []string{"a", "b"}))
}
