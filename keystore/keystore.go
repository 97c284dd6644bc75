// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

// Package keystore persists raw 32 byte Ed25519 key files.
package keystore

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/awnumar/memguard"

	"github.com/pixealed/go-pxl/crypto/keyutil"
	"github.com/pixealed/go-pxl/ioutil"
	"github.com/pixealed/go-pxl/ioutil/atomic"
)

// keyFileSize is the raw length of both seed and public key files.
const keyFileSize = keyutil.SeedSize

// ErrKeyFile is raised when a key file has not the expected raw length.
var ErrKeyFile = errors.New("key file must hold exactly 32 bytes")

// Save writes the given raw key to the target path atomically with owner-only
// permissions.
func Save(path string, key []byte) error {
	// Check arguments
	if len(key) != keyFileSize {
		return ErrKeyFile
	}

	// Create the target with restrictive permissions first so that the
	// atomic replacement preserves them.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("unable to create the key file %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to close the key file %q: %w", path, err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(key)); err != nil {
		return fmt.Errorf("unable to write the key file %q: %w", path, err)
	}

	return nil
}

// Load reads a raw 32 byte key from the given path.
func Load(path string) ([]byte, error) {
	raw, err := ioutil.ReadFileLimit(path, keyFileSize)
	if err != nil {
		if errors.Is(err, ioutil.ErrTruncatedCopy) {
			return nil, ErrKeyFile
		}
		return nil, fmt.Errorf("unable to read the key file %q: %w", path, err)
	}
	if len(raw) != keyFileSize {
		return nil, ErrKeyFile
	}

	return raw, nil
}

// LoadSealed reads a raw 32 byte key from the given path into a memguard
// enclave and wipes the intermediate buffer. Use it for signing seeds that
// should not linger in process memory.
func LoadSealed(path string) (*memguard.Enclave, error) {
	raw, err := Load(path)
	if err != nil {
		return nil, err
	}

	// NewEnclave wipes the source buffer
	return memguard.NewEnclave(raw), nil
}
