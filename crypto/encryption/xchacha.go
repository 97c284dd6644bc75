// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

package encryption

import (
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// KeySize is the XChaCha20-Poly1305 key length in bytes.
	KeySize = chacha20poly1305.KeySize
	// NonceSize is the XChaCha20-Poly1305 extended nonce length in bytes.
	NonceSize = chacha20poly1305.NonceSizeX
)

// XChaCha instantiates an XChaCha20-Poly1305 engine bound to the given
// 32 byte key.
func XChaCha(key []byte) (ValueAEAD, error) {
	// Check arguments
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be exactly %d bytes", KeySize)
	}

	// Copy the key for resiliency reasons
	keyRaw := make([]byte, len(key))
	copy(keyRaw, key)

	aead, err := chacha20poly1305.NewX(keyRaw)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize the XChaCha20-Poly1305 cipher: %w", err)
	}

	return &xchachaAEAD{
		aead: aead,
	}, nil
}

// -----------------------------------------------------------------------------

type xchachaAEAD struct {
	aead cipher.AEAD
}

// Seal the given plaintext. The authentication tag is appended to the
// ciphertext; associated data is empty by format contract.
func (e *xchachaAEAD) Seal(nonce, plaintext []byte) ([]byte, error) {
	// Check arguments
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("nonce must be exactly %d bytes", NonceSize)
	}

	return e.aead.Seal(nil, nonce, plaintext, nil), nil
}

// Open decrypts the given ciphertext.
func (e *xchachaAEAD) Open(nonce, ciphertext []byte) ([]byte, error) {
	// Check arguments
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("nonce must be exactly %d bytes", NonceSize)
	}
	if len(ciphertext) < e.aead.Overhead() {
		return nil, fmt.Errorf("ciphertext shorter than the authentication tag: %w", ErrAuthentication)
	}

	plaintext, err := e.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// Collapse the cipher error so that callers can't distinguish the
		// internal failure cause.
		return nil, ErrAuthentication
	}

	return plaintext, nil
}

// Overhead returns the appended authentication tag length.
func (e *xchachaAEAD) Overhead() int {
	return e.aead.Overhead()
}
