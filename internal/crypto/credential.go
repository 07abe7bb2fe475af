/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package crypto

import (
	"sync"

	"github.com/gitrgoliveira/go-openwallet/secure"
)

// Credential holds a derived wallet key for the duration of a single open.
// The memory is locked where the platform allows it and zeroed on Destroy.
type Credential struct {
	key       []byte
	mu        sync.Mutex
	destroyed bool
	unlock    func()
}

// NewCredential takes ownership of key: the slice is locked in place and
// zeroed by Destroy, so callers must not reuse it.
func NewCredential(key []byte) *Credential {
	unlock := func() {}
	if err := secure.LockMemory(key); err == nil {
		unlock = func() {
			_ = secure.UnlockMemory(key)
		}
	}

	return &Credential{
		key:    key,
		unlock: unlock,
	}
}

// Key returns the key bytes. The slice is zeroed once Destroy is called.
func (c *Credential) Key() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.key
}

// Len returns the key length in bytes.
func (c *Credential) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.key)
}

// Destroy zeroes the key and unlocks its memory. Safe to call more than once.
func (c *Credential) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return
	}
	secure.Zero(c.key)
	c.destroyed = true
	if c.unlock != nil {
		c.unlock()
	}
}
