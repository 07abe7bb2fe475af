/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package core

// SetDeriveKey replaces the pipeline KDF until the returned restore func runs.
// Tests using it must not run in parallel.
func SetDeriveKey(f func(password, iv []byte) ([]byte, error)) (restore func()) {
	old := deriveKey
	deriveKey = f
	return func() {
		deriveKey = old
	}
}
