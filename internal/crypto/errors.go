/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package crypto

import (
	"errors"
	"fmt"
	"os"
)

// SanitizeError removes sensitive details for external consumption
func SanitizeError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrWrongPassword):
		return fmt.Errorf("wrong password")
	case errors.Is(err, ErrNotAWalletFile):
		return fmt.Errorf("not a wallet file")
	case errors.Is(err, ErrTruncatedInput):
		return fmt.Errorf("wallet file is truncated")
	case errors.Is(err, ErrInvalidEncoding):
		return fmt.Errorf("wallet content is not valid text")
	case errors.Is(err, ErrWalletTooLarge):
		return fmt.Errorf("wallet file is too large")
	case errors.Is(err, ErrContextCanceled):
		return fmt.Errorf("operation canceled")
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("insufficient permissions")
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("file not found")
	case errors.Is(err, ErrFileOpenFailed):
		return fmt.Errorf("cannot read wallet file")
	default:
		// Key derivation failures land here too
		return fmt.Errorf("wallet operation failed")
	}
}

// Error types for opening wallet files
var (
	ErrFileOpenFailed      = fmt.Errorf("file open failed")
	ErrTruncatedInput      = fmt.Errorf("truncated input")
	ErrNotAWalletFile      = fmt.Errorf("not a wallet file")
	ErrKeyDerivationFailed = fmt.Errorf("key derivation failed")
	ErrWrongPassword       = fmt.Errorf("wrong password")
	ErrInvalidEncoding     = fmt.Errorf("invalid encoding")
	ErrWalletTooLarge      = fmt.Errorf("wallet too large")
	ErrContextCanceled     = fmt.Errorf("context canceled")
)

// WalletError represents a failed wallet operation with context
type WalletError struct {
	Op    string // Operation: "open", "inspect", "derive_key"
	Path  string // Wallet path, empty for in-memory sources
	Stage string // Last pipeline stage reached before the failure
	Err   error  // Underlying error
}

func (e *WalletError) Error() string {
	path := e.Path
	if path == "" {
		path = "<stream>"
	}
	if e.Stage != "" {
		return fmt.Sprintf("%s %s (after %s): %v", e.Op, path, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, path, e.Err)
}

func (e *WalletError) Unwrap() error {
	return e.Err
}

// NewWalletError creates a new WalletError
func NewWalletError(op, path, stage string, err error) *WalletError {
	return &WalletError{
		Op:    op,
		Path:  path,
		Stage: stage,
		Err:   err,
	}
}

// WrapError adds context to an error
func WrapError(context string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}
