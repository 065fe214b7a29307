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

// Package scope provides scope parsing and validation for OAuth2 requests.
package scope

import (
	"slices"
	"strings"
)

// ParseScopes splits a space delimited scope string, dropping duplicates and keeping order.
func ParseScopes(scopes string) []string {
	fields := strings.Fields(scopes)
	result := make([]string, 0, len(fields))
	for _, s := range fields {
		if !slices.Contains(result, s) {
			result = append(result, s)
		}
	}
	return result
}

// JoinScopes renders scopes in their wire form.
func JoinScopes(scopes []string) string {
	return strings.Join(scopes, " ")
}

// IsSubset reports whether every requested scope is in granted.
func IsSubset(requested, granted []string) bool {
	for _, s := range requested {
		if !slices.Contains(granted, s) {
			return false
		}
	}
	return true
}
