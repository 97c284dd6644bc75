// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

// Package encryption provides the authenticated payload encryption engine.
package encryption

import "errors"

// ValueAEAD represents encryption/decryption operations for a finite byte
// array under a caller-supplied nonce. The nonce travels inside the container
// trailer, so unlike self-describing AEAD envelopes it is not prepended to
// the ciphertext.
type ValueAEAD interface {
	// Seal encrypts the given plaintext and appends the authentication tag.
	Seal(nonce, plaintext []byte) ([]byte, error)
	// Open decrypts the given ciphertext after checking its authentication tag.
	Open(nonce, ciphertext []byte) ([]byte, error)
	// Overhead returns the ciphertext size overhead in bytes.
	Overhead() int
}

// ErrAuthentication is raised when the ciphertext authentication tag does not
// match, meaning the ciphertext, the nonce or the key has been altered.
var ErrAuthentication = errors.New("message authentication failed")
