/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// key.go: Key derivation for go-openwallet
package core

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	crypto "github.com/gitrgoliveira/go-openwallet/internal/crypto"
)

const (
	// PBKDF2Iterations is the iteration count baked into the wallet format.
	// Changing it makes existing wallets unreadable.
	PBKDF2Iterations = 500000

	// KeySize is the derived key size (16 bytes for AES-128)
	KeySize = 16
)

// deriveKey is the KDF used by the decryption pipeline.
var deriveKey = DeriveKey

// DeriveKey derives the wallet key from a password using PBKDF2-HMAC-SHA256,
// with the file IV as salt. The caller must securely zero the key after use.
//
// Parameters:
//   - password: The password bytes (will not be modified, may be empty)
//   - iv: The 16-byte IV read from the wallet header
//
// Example:
//
//	iv, err := ReadHeader(f)
//	if err != nil {
//	    return err
//	}
//	key, err := DeriveKey([]byte("password"), iv)
//	if err != nil {
//	    return err
//	}
//	defer secure.Zero(key)
func DeriveKey(password, iv []byte) ([]byte, error) {
	if len(iv) != IVSize {
		return nil, fmt.Errorf("%w: iv must be %d bytes, got %d", crypto.ErrKeyDerivationFailed, IVSize, len(iv))
	}

	key := pbkdf2.Key(password, iv, PBKDF2Iterations, KeySize, sha256.New)
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d key bytes", crypto.ErrKeyDerivationFailed, len(key))
	}
	return key, nil
}
