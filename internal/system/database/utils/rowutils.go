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

// Package utils provides helpers for reading values out of query result rows.
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// GetString returns the string value of a column. NULL yields an empty string.
func GetString(row map[string]any, column string) string {
	switch v := row[column].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// GetInt64 returns the integer value of a column. NULL or unparsable values yield zero.
func GetInt64(row map[string]any, column string) int64 {
	switch v := row[column].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

// GetBool returns the boolean value of a column stored as an integer flag.
func GetBool(row map[string]any, column string) bool {
	if v, ok := row[column].(bool); ok {
		return v
	}
	return GetInt64(row, column) != 0
}

// GetSpaceSeparated returns the fields of a space separated column value.
func GetSpaceSeparated(row map[string]any, column string) []string {
	return strings.Fields(GetString(row, column))
}

// BoolToInt converts a boolean flag into the integer representation used in the schema.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
