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

package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type HashUtilTestSuite struct {
	suite.Suite
}

func TestHashSuite(t *testing.T) {
	suite.Run(t, new(HashUtilTestSuite))
}

func (suite *HashUtilTestSuite) TestHashString() {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"EmptyString", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"Password", "password", "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, HashString(tc.input))
		})
	}
}

func (suite *HashUtilTestSuite) TestHashAndComparePassword() {
	hashed, err := HashPassword("correct horse")
	suite.Require().NoError(err)

	assert.True(suite.T(), ComparePassword(hashed, "correct horse"))
	assert.False(suite.T(), ComparePassword(hashed, "wrong horse"))
	assert.False(suite.T(), ComparePassword("", "correct horse"))
	assert.False(suite.T(), ComparePassword("not-a-bcrypt-hash", "correct horse"))
}

func (suite *HashUtilTestSuite) TestConstantTimeEquals() {
	assert.True(suite.T(), ConstantTimeEquals("abc", "abc"))
	assert.False(suite.T(), ConstantTimeEquals("abc", "abd"))
	assert.False(suite.T(), ConstantTimeEquals("abc", "abcd"))
}
