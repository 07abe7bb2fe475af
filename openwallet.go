/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// Package openwallet opens password-protected wallet files.
//
// A wallet file is a small binary container:
//
//	[64 bytes file magic][16 bytes IV][AES-128-CBC ciphertext...]
//
// The key is PBKDF2-HMAC-SHA256(password, IV, 500000 iterations, 16 bytes);
// the IV doubles as the KDF salt. The decrypted payload starts with a
// 26-byte password marker followed by the secret content as UTF-8 text.
//
// # Basic Usage
//
//	secret, err := openwallet.OpenWallet(ctx, "my.wallet", password)
//	switch {
//	case errors.Is(err, openwallet.ErrWrongPassword):
//	    // ask again
//	case err != nil:
//	    return err
//	}
//
// Every call is a single forward pass: read the header, check the file
// magic, derive the key, decrypt, verify the password marker. The first
// failure ends the call with one error that matches exactly one of the
// Err* sentinels below via errors.Is. Wrong passwords and corrupted
// ciphertext both report ErrWrongPassword.
//
// Key derivation is deliberately slow. Pass a context with a deadline to
// bound it; the call then returns ErrContextCanceled.
//
// # Inspecting
//
// Inspect reads the header of a wallet without a password:
//
//	h, err := openwallet.Inspect("my.wallet")
//	fmt.Println(h) // path, IV, ciphertext size, SHA-256
//
// Calls share no state and are safe to run concurrently.
package openwallet

import (
	"context"
	"io"

	"github.com/gitrgoliveira/go-openwallet/internal/core"
	crypto "github.com/gitrgoliveira/go-openwallet/internal/crypto"
	"github.com/gitrgoliveira/go-openwallet/secure"
)

// Option defines functional options for opening wallets (re-exported from internal/core).
type Option = core.Option

// WithMaxSize bounds the ciphertext buffered in memory (re-exported from internal/core).
var WithMaxSize = core.WithMaxSize

// WithLogger sets a logrus logger for stage debug logs (re-exported from internal/core).
var WithLogger = core.WithLogger

// WithStageObserver sets a stage callback (re-exported from internal/core).
var WithStageObserver = core.WithStageObserver

// Stage is a step of the open pipeline (re-exported from internal/core).
type Stage = core.Stage

const (
	StageStart            = core.StageStart
	StageMagicChecked     = core.StageMagicChecked
	StageKeyDerived       = core.StageKeyDerived
	StageDecrypted        = core.StageDecrypted
	StagePasswordVerified = core.StagePasswordVerified
	StageDone             = core.StageDone
)

// Header describes the plaintext part of a wallet file (re-exported from internal/core).
type Header = core.Header

// WalletError carries the operation, path and stage of a failure.
type WalletError = crypto.WalletError

// Errors returned by OpenWallet, OpenReader and Inspect. Match with errors.Is.
var (
	ErrFileOpenFailed      = crypto.ErrFileOpenFailed
	ErrTruncatedInput      = crypto.ErrTruncatedInput
	ErrNotAWalletFile      = crypto.ErrNotAWalletFile
	ErrKeyDerivationFailed = crypto.ErrKeyDerivationFailed
	ErrWrongPassword       = crypto.ErrWrongPassword
	ErrInvalidEncoding     = crypto.ErrInvalidEncoding
	ErrWalletTooLarge      = crypto.ErrWalletTooLarge
	ErrContextCanceled     = crypto.ErrContextCanceled
)

// SanitizeError maps an error to a short message safe to show to users.
var SanitizeError = crypto.SanitizeError

// Re-export format constants from internal/core
const (
	FileMagic        = core.FileMagic
	PasswordMagic    = core.PasswordMagic
	IVSize           = core.IVSize
	HeaderSize       = core.HeaderSize
	KeySize          = core.KeySize
	PBKDF2Iterations = core.PBKDF2Iterations
	DefaultMaxSize   = core.DefaultMaxSize
	MaxSizeEnv       = core.MaxSizeEnv
)

// ZeroKey securely zeroes a key slice. Always use defer ZeroKey(key) after DeriveKey.
var ZeroKey = secure.Zero

// OpenWallet decrypts the wallet file at path and returns its secret content.
func OpenWallet(ctx context.Context, path, password string, opts ...Option) (string, error) {
	dec, err := core.NewDecryptor(opts...)
	if err != nil {
		return "", err
	}
	pw := []byte(password)
	defer secure.Zero(pw)
	return dec.OpenFile(ctx, path, pw)
}

// OpenReader decrypts a wallet read from r and returns its secret content.
func OpenReader(ctx context.Context, r io.Reader, password string, opts ...Option) (string, error) {
	dec, err := core.NewDecryptor(opts...)
	if err != nil {
		return "", err
	}
	pw := []byte(password)
	defer secure.Zero(pw)
	return dec.Open(ctx, r, pw)
}

// Inspect reads the plaintext header of a wallet file. It needs no password.
func Inspect(path string) (*Header, error) {
	return core.Inspect(path)
}

// VerifyChecksumHex reports whether the file at path has the given hex SHA-256.
var VerifyChecksumHex = core.VerifyChecksumHex

// DeriveKey derives the 16-byte wallet key for password and the file's IV.
// Re-exported from internal/core for public API.
func DeriveKey(password, iv []byte) ([]byte, error) {
	return core.DeriveKey(password, iv)
}
