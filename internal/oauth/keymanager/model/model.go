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

// Package model defines the signing key structures managed by the key manager.
package model

import "crypto/rsa"

// KeyStatus is the lifecycle state of a signing key.
type KeyStatus string

const (
	// KeyStatusActive marks the key used for signing new tokens.
	KeyStatusActive KeyStatus = "ACTIVE"
	// KeyStatusRetired marks a key kept only to verify tokens signed before a rotation.
	KeyStatusRetired KeyStatus = "RETIRED"
)

// AlgorithmRS256 is the only signing algorithm issued by the server.
const AlgorithmRS256 = "RS256"

// SigningKey is a loaded signing key. PrivateKey is nil for retired keys and in key sets
// handed out for publication.
type SigningKey struct {
	KID        string
	Algorithm  string
	Status     KeyStatus
	PrivateKey *rsa.PrivateKey
	PublicKey  *rsa.PublicKey
	NotBefore  int64
	NotAfter   int64
	CreatedAt  int64
}

// SigningKeyRecord is the persisted form of a signing key. PrivateKeyPEM is encrypted.
type SigningKeyRecord struct {
	KID           string
	Algorithm     string
	Status        KeyStatus
	PrivateKeyPEM string
	PublicKeyPEM  string
	NotBefore     int64
	NotAfter      int64
	CreatedAt     int64
}
