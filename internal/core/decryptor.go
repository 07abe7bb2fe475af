/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// decryptor.go: Wallet open pipeline for go-openwallet
package core

import (
	"bufio"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	crypto "github.com/gitrgoliveira/go-openwallet/internal/crypto"
	"github.com/gitrgoliveira/go-openwallet/secure"
)

// Decryptor opens wallet files. It holds no key material between calls and
// is safe for concurrent use.
type Decryptor struct {
	maxSize  int64
	logger   logrus.FieldLogger
	observer func(Stage)
}

func NewDecryptor(opts ...Option) (*Decryptor, error) {
	cfg, err := defaultConfig()
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.MaxSize < MinMaxSize {
		return nil, fmt.Errorf("invalid max size: must be at least %d bytes, got %d", MinMaxSize, cfg.MaxSize)
	}
	return &Decryptor{
		maxSize:  cfg.MaxSize,
		logger:   cfg.Logger,
		observer: cfg.Observer,
	}, nil
}

// OpenFile decrypts the wallet at path and returns its secret content.
func (d *Decryptor) OpenFile(ctx context.Context, path string, password []byte) (string, error) {
	srcFile, err := os.Open(path) // #nosec G304 -- File path provided by caller, library purpose is opening wallets
	if err != nil {
		return "", d.fail(path, StageStart, fmt.Errorf("%w: %w", crypto.ErrFileOpenFailed, err))
	}
	defer srcFile.Close()

	return d.open(ctx, bufio.NewReader(srcFile), path, password)
}

// Open decrypts a wallet read from r and returns its secret content.
func (d *Decryptor) Open(ctx context.Context, r io.Reader, password []byte) (string, error) {
	return d.open(ctx, r, "", password)
}

func (d *Decryptor) open(ctx context.Context, r io.Reader, path string, password []byte) (string, error) {
	stage := StageStart
	d.reach(path, stage)

	if ctx.Err() != nil {
		return "", d.fail(path, stage, fmt.Errorf("%w: %w", crypto.ErrContextCanceled, ctx.Err()))
	}

	iv, err := ReadHeader(r)
	if err != nil {
		return "", d.fail(path, stage, asReadError(err))
	}
	stage = StageMagicChecked
	d.reach(path, stage)

	ciphertext, err := readRemainder(r, d.maxSize)
	if err != nil {
		return "", d.fail(path, stage, asReadError(crypto.WrapError("read ciphertext", err)))
	}
	defer secure.Zero(ciphertext)
	if len(ciphertext) == 0 {
		return "", d.fail(path, stage, fmt.Errorf("%w: no ciphertext after header", crypto.ErrTruncatedInput))
	}

	cred, err := d.deriveCredential(ctx, password, iv)
	if err != nil {
		return "", d.fail(path, stage, err)
	}
	defer cred.Destroy()
	stage = StageKeyDerived
	d.reach(path, stage)

	plaintext, err := decryptPayload(cred.Key(), iv, ciphertext)
	if err != nil {
		return "", d.fail(path, stage, err)
	}
	defer secure.Zero(plaintext)
	// Padding and marker are checked together so the stage never tells them apart
	stage = StageDecrypted
	d.reach(path, stage)
	stage = StagePasswordVerified
	d.reach(path, stage)

	content := plaintext[len(PasswordMagic):]
	if !utf8.Valid(content) {
		return "", d.fail(path, stage, crypto.ErrInvalidEncoding)
	}
	secret := string(content)

	d.reach(path, StageDone)
	return secret, nil
}

type kdfResult struct {
	key []byte
	err error
}

// deriveCredential runs the KDF. With a cancellable context the derivation
// runs on its own goroutine so a deadline can fire mid-derivation; the
// abandoned key is zeroed when that goroutine finishes.
func (d *Decryptor) deriveCredential(ctx context.Context, password, iv []byte) (*crypto.Credential, error) {
	if ctx.Done() == nil {
		key, err := deriveKey(password, iv)
		if err != nil {
			return nil, asKDFError(err)
		}
		return crypto.NewCredential(key), nil
	}

	// The caller may zero password once we return
	pw := append([]byte(nil), password...)
	done := make(chan kdfResult, 1)
	go func() {
		defer secure.Zero(pw)
		key, err := deriveKey(pw, iv)
		done <- kdfResult{key: key, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, asKDFError(res.err)
		}
		return crypto.NewCredential(res.key), nil
	case <-ctx.Done():
		go func() {
			res := <-done
			secure.Zero(res.key)
		}()
		return nil, fmt.Errorf("%w: %w", crypto.ErrContextCanceled, ctx.Err())
	}
}

// decryptPayload decrypts ciphertext and checks the password marker. Every
// failure, including a wrong-length ciphertext, is ErrWrongPassword. On
// success the returned slice still starts with the marker; the caller owns
// it and must zero it.
func decryptPayload(key, iv, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%BlockSize != 0 {
		return nil, crypto.ErrWrongPassword
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", crypto.ErrKeyDerivationFailed, err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, ok := unpad(plaintext)
	if !ok || !secure.HasPrefix(unpadded, []byte(PasswordMagic)) {
		secure.Zero(plaintext)
		return nil, crypto.ErrWrongPassword
	}
	return unpadded, nil
}

// unpad strips PKCS#7 padding. The padding bytes are checked without early exit.
func unpad(b []byte) ([]byte, bool) {
	if len(b) == 0 || len(b)%BlockSize != 0 {
		return nil, false
	}
	n := int(b[len(b)-1])
	if n == 0 || n > BlockSize {
		return nil, false
	}
	good := 1
	for _, p := range b[len(b)-n:] {
		good &= subtle.ConstantTimeByteEq(p, byte(n))
	}
	if good != 1 {
		return nil, false
	}
	return b[:len(b)-n], true
}

// asReadError maps I/O failures that are not format errors onto ErrFileOpenFailed.
func asReadError(err error) error {
	switch {
	case errors.Is(err, crypto.ErrTruncatedInput),
		errors.Is(err, crypto.ErrNotAWalletFile),
		errors.Is(err, crypto.ErrWalletTooLarge):
		return err
	default:
		return fmt.Errorf("%w: %w", crypto.ErrFileOpenFailed, err)
	}
}

func asKDFError(err error) error {
	if errors.Is(err, crypto.ErrKeyDerivationFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", crypto.ErrKeyDerivationFailed, err)
}

func (d *Decryptor) reach(path string, s Stage) {
	d.logger.WithFields(logrus.Fields{
		"path":  path,
		"stage": s.String(),
	}).Debug("wallet stage reached")
	if d.observer != nil {
		d.observer(s)
	}
}

func (d *Decryptor) fail(path string, s Stage, err error) error {
	d.logger.WithFields(logrus.Fields{
		"path":  path,
		"stage": s.String(),
	}).WithError(err).Debug("wallet open failed")
	return crypto.NewWalletError("open", path, s.String(), err)
}
