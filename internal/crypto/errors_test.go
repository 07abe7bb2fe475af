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
	"strings"
	"testing"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected string
	}{
		{
			name:     "nil error",
			input:    nil,
			expected: "",
		},
		{
			name:     "ErrWrongPassword",
			input:    ErrWrongPassword,
			expected: "wrong password",
		},
		{
			name:     "wrapped ErrWrongPassword",
			input:    NewWalletError("open", "a.wallet", "key derived", ErrWrongPassword),
			expected: "wrong password",
		},
		{
			name:     "ErrNotAWalletFile",
			input:    fmt.Errorf("read header: %w", ErrNotAWalletFile),
			expected: "not a wallet file",
		},
		{
			name:     "ErrTruncatedInput",
			input:    ErrTruncatedInput,
			expected: "wallet file is truncated",
		},
		{
			name:     "ErrInvalidEncoding",
			input:    ErrInvalidEncoding,
			expected: "wallet content is not valid text",
		},
		{
			name:     "ErrWalletTooLarge",
			input:    ErrWalletTooLarge,
			expected: "wallet file is too large",
		},
		{
			name:     "ErrContextCanceled",
			input:    ErrContextCanceled,
			expected: "operation canceled",
		},
		{
			name:     "file open failed on missing path",
			input:    fmt.Errorf("%w: %w", ErrFileOpenFailed, os.ErrNotExist),
			expected: "file not found",
		},
		{
			name:     "file open failed on permissions",
			input:    fmt.Errorf("%w: %w", ErrFileOpenFailed, os.ErrPermission),
			expected: "insufficient permissions",
		},
		{
			name:     "file open failed generic",
			input:    fmt.Errorf("%w: is a directory", ErrFileOpenFailed),
			expected: "cannot read wallet file",
		},
		{
			name:     "key derivation failure is not detailed",
			input:    fmt.Errorf("%w: iv must be 16 bytes", ErrKeyDerivationFailed),
			expected: "wallet operation failed",
		},
		{
			name:     "custom error",
			input:    errors.New("some custom error"),
			expected: "wallet operation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeError(tt.input)

			if tt.input == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}
				return
			}

			if result == nil {
				t.Fatal("expected non-nil error")
			}

			if result.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result.Error())
			}
		})
	}
}

func TestWalletError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *WalletError
		contains []string
	}{
		{
			name: "with stage",
			err: &WalletError{
				Op:    "open",
				Path:  "/path/to/test.wallet",
				Stage: "magic checked",
				Err:   ErrWrongPassword,
			},
			contains: []string{"open", "/path/to/test.wallet", "after magic checked", "wrong password"},
		},
		{
			name: "without stage",
			err: &WalletError{
				Op:   "inspect",
				Path: "/path/to/test.wallet",
				Err:  ErrNotAWalletFile,
			},
			contains: []string{"inspect", "/path/to/test.wallet", "not a wallet file"},
		},
		{
			name: "stream source",
			err: &WalletError{
				Op:  "open",
				Err: ErrTruncatedInput,
			},
			contains: []string{"open", "<stream>", "truncated input"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()

			for _, substr := range tt.contains {
				if !strings.Contains(result, substr) {
					t.Errorf("expected error message to contain %q, got: %s", substr, result)
				}
			}
		})
	}
}

func TestWalletError_Unwrap(t *testing.T) {
	innerErr := fmt.Errorf("%w: short read", ErrTruncatedInput)
	walletErr := &WalletError{
		Op:   "open",
		Path: "test.wallet",
		Err:  innerErr,
	}

	if walletErr.Unwrap() != innerErr {
		t.Errorf("expected unwrapped error to be %v, got %v", innerErr, walletErr.Unwrap())
	}

	if !errors.Is(walletErr, ErrTruncatedInput) {
		t.Error("errors.Is should see through WalletError")
	}

	var target *WalletError
	if !errors.As(fmt.Errorf("cli: %w", walletErr), &target) {
		t.Fatal("errors.As should find WalletError")
	}
	if target.Path != "test.wallet" {
		t.Errorf("expected Path 'test.wallet', got %q", target.Path)
	}
}

func TestNewWalletError(t *testing.T) {
	err := NewWalletError("open", "/path/file.wallet", "decrypted", ErrInvalidEncoding)

	if err.Op != "open" {
		t.Errorf("expected Op to be 'open', got %q", err.Op)
	}
	if err.Path != "/path/file.wallet" {
		t.Errorf("expected Path to be '/path/file.wallet', got %q", err.Path)
	}
	if err.Stage != "decrypted" {
		t.Errorf("expected Stage to be 'decrypted', got %q", err.Stage)
	}
	if err.Err != ErrInvalidEncoding {
		t.Errorf("expected Err to be %v, got %v", ErrInvalidEncoding, err.Err)
	}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name     string
		context  string
		err      error
		expected string
		isNil    bool
	}{
		{
			name:    "nil error",
			context: "some context",
			err:     nil,
			isNil:   true,
		},
		{
			name:     "wrap simple error",
			context:  "read iv",
			err:      ErrTruncatedInput,
			expected: "read iv: truncated input",
		},
		{
			name:     "wrap with empty context",
			context:  "",
			err:      fmt.Errorf("some error"),
			expected: ": some error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WrapError(tt.context, tt.err)

			if tt.isNil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}
				return
			}

			if result == nil {
				t.Fatal("expected non-nil error")
			}

			if result.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result.Error())
			}

			if !errors.Is(result, tt.err) {
				t.Error("wrapped error should be detectable with errors.Is")
			}
		})
	}
}

func TestErrorConstantsAreDistinct(t *testing.T) {
	all := []error{
		ErrFileOpenFailed,
		ErrTruncatedInput,
		ErrNotAWalletFile,
		ErrKeyDerivationFailed,
		ErrWrongPassword,
		ErrInvalidEncoding,
		ErrWalletTooLarge,
		ErrContextCanceled,
	}

	for i, a := range all {
		if a.Error() == "" {
			t.Errorf("error %d has an empty message", i)
		}
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}
