/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// key_test.go: Tests for wallet key derivation
package core

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"testing"

	"golang.org/x/crypto/pbkdf2"

	crypto "github.com/gitrgoliveira/go-openwallet/internal/crypto"
	"github.com/gitrgoliveira/go-openwallet/secure"
)

var testIV = []byte("0123456789abcdef")

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("password")

	key, err := DeriveKey(password, testIV)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	defer secure.Zero(key)

	if len(key) != KeySize {
		t.Errorf("Expected key length %d, got %d", KeySize, len(key))
	}

	key2, err := DeriveKey(password, testIV)
	if err != nil {
		t.Fatalf("DeriveKey second call failed: %v", err)
	}
	defer secure.Zero(key2)

	if !bytes.Equal(key, key2) {
		t.Error("DeriveKey is not deterministic")
	}

	// Same parameters as every other wallet implementation
	want := pbkdf2.Key(password, testIV, 500000, 16, sha256.New)
	if !bytes.Equal(key, want) {
		t.Errorf("key does not match PBKDF2-HMAC-SHA256(500000): %x vs %x", key, want)
	}
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	key1, err := DeriveKey([]byte("password1"), testIV)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	key2, err := DeriveKey([]byte("password2"), testIV)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	key3, err := DeriveKey([]byte("password1"), []byte("fedcba9876543210"))
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}

	if bytes.Equal(key1, key2) {
		t.Error("Different passwords produced the same key")
	}
	if bytes.Equal(key1, key3) {
		t.Error("Different IVs produced the same key")
	}
}

func TestDeriveKey_EmptyPassword(t *testing.T) {
	key, err := DeriveKey(nil, testIV)
	if err != nil {
		t.Fatalf("empty passwords are valid wallet passwords: %v", err)
	}
	if len(key) != KeySize {
		t.Errorf("Expected key length %d, got %d", KeySize, len(key))
	}
}

func TestDeriveKey_InvalidIV(t *testing.T) {
	for _, iv := range [][]byte{nil, testIV[:15], append(bytes.Clone(testIV), 0)} {
		key, err := DeriveKey([]byte("password"), iv)
		if !errors.Is(err, crypto.ErrKeyDerivationFailed) {
			t.Errorf("iv length %d: expected ErrKeyDerivationFailed, got %v", len(iv), err)
		}
		if key != nil {
			t.Errorf("iv length %d: expected nil key", len(iv))
		}
	}
}
