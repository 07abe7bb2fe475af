/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package core_test

import (
	"crypto/sha256"
	"sync/atomic"
	"testing"

	"github.com/gitrgoliveira/go-openwallet/internal/core"
	"github.com/gitrgoliveira/go-openwallet/internal/wallettest"
)

// fastKDF stands in for PBKDF2 in tests that exercise many wallets.
func fastKDF(password, iv []byte) ([]byte, error) {
	sum := sha256.Sum256(append(append([]byte(nil), password...), iv...))
	return sum[:core.KeySize], nil
}

// useFastKDF swaps the pipeline KDF for fastKDF and counts its invocations.
func useFastKDF(t *testing.T) *atomic.Int32 {
	t.Helper()
	var calls atomic.Int32
	restore := core.SetDeriveKey(func(password, iv []byte) ([]byte, error) {
		calls.Add(1)
		return fastKDF(password, iv)
	})
	t.Cleanup(restore)
	return &calls
}

// fastWallet builds a wallet readable under useFastKDF.
func fastWallet(password string, payload []byte) []byte {
	key, _ := fastKDF([]byte(password), wallettest.FixedIV)
	return wallettest.SealWithKey(key, wallettest.FixedIV, payload)
}

func newDecryptor(t *testing.T, opts ...core.Option) *core.Decryptor {
	t.Helper()
	dec, err := core.NewDecryptor(opts...)
	if err != nil {
		t.Fatalf("NewDecryptor failed: %v", err)
	}
	return dec
}
