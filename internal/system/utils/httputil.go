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

// Package utils provides utility functions for HTTP and server wide operations.
package utils

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/asgardeo/tokenengine/internal/system/constants"
	"github.com/asgardeo/tokenengine/internal/system/log"
)

// ErrNoBasicAuth is returned when the request carries no Basic authorization header.
var ErrNoBasicAuth = errors.New("no basic authorization header")

// ExtractBasicAuthCredentials extracts the basic authentication credentials from the request header.
// Client credentials are form-urlencoded before being base64 encoded, so both parts are unescaped.
func ExtractBasicAuthCredentials(r *http.Request) (string, string, error) {
	authHeader := r.Header.Get(constants.AuthorizationHeaderName)
	if authHeader == "" {
		return "", "", ErrNoBasicAuth
	}
	if !strings.HasPrefix(authHeader, constants.AuthSchemeBasic) {
		return "", "", errors.New("invalid authorization header")
	}

	encodedCredentials := strings.TrimPrefix(authHeader, constants.AuthSchemeBasic)
	decodedCredentials, err := base64.StdEncoding.DecodeString(encodedCredentials)
	if err != nil {
		return "", "", errors.New("failed to decode authorization header")
	}

	credentials := strings.SplitN(string(decodedCredentials), ":", 2)
	if len(credentials) != 2 {
		return "", "", errors.New("invalid authorization header format")
	}

	username, err := url.QueryUnescape(credentials[0])
	if err != nil {
		return "", "", errors.New("invalid authorization header encoding")
	}
	password, err := url.QueryUnescape(credentials[1])
	if err != nil {
		return "", "", errors.New("invalid authorization header encoding")
	}
	return username, password, nil
}

// ExtractBearerToken returns the token of a Bearer authorization header.
func ExtractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get(constants.AuthorizationHeaderName)
	if len(authHeader) <= len(constants.AuthSchemeBearer) ||
		!strings.EqualFold(authHeader[:len(constants.AuthSchemeBearer)], constants.AuthSchemeBearer) {
		return "", false
	}
	token := strings.TrimSpace(authHeader[len(constants.AuthSchemeBearer):])
	return token, token != ""
}

// WriteJSONError writes an OAuth style JSON error response with the given details.
func WriteJSONError(w http.ResponseWriter, code, desc string, statusCode int, respHeaders []map[string]string) {
	logger := log.GetLogger()
	logger.Debug("Error in HTTP response", log.String("error", code), log.String("description", desc))

	for _, header := range respHeaders {
		for key, value := range header {
			w.Header().Set(key, value)
		}
	}

	body := map[string]string{"error": code}
	if desc != "" {
		body["error_description"] = desc
	}
	WriteJSON(w, statusCode, body)
}

// WriteJSON writes body as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.GetLogger().Error("Failed to write JSON response", log.Error(err))
	}
}

// SetNoStoreHeaders marks a response as carrying credentials that must not be cached.
func SetNoStoreHeaders(w http.ResponseWriter) {
	w.Header().Set(constants.CacheControlHeaderName, constants.CacheControlNoStore)
	w.Header().Set(constants.PragmaHeaderName, constants.PragmaNoCache)
}

// GetURIWithQueryParams appends the given query parameters to uri, keeping any it already has.
func GetURIWithQueryParams(uri string, queryParams map[string]string) (string, error) {
	parsedURL, err := url.Parse(uri)
	if err != nil {
		return "", err
	}

	query := parsedURL.Query()
	for key, value := range queryParams {
		if value != "" {
			query.Set(key, value)
		}
	}
	parsedURL.RawQuery = query.Encode()
	return parsedURL.String(), nil
}

// GetClientIP returns the remote address of the request without its port.
func GetClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
