// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

// Package hashutil provides BLAKE3 hashing helpers used for chunk integrity
// and key derivation.
package hashutil

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
)

// Sum returns the raw 32 byte BLAKE3 digest of the given content.
func Sum(content []byte) [32]byte {
	return blake3.Sum256(content)
}

// SumHex returns the BLAKE3 digest of the given content encoded as a 64
// character lowercase hexadecimal string.
func SumHex(content []byte) string {
	h := Sum(content)
	return hex.EncodeToString(h[:])
}

// DeriveKey derives a size byte key from the concatenation of the given
// parts using the BLAKE3 extendable output function.
//
// The output is read from the XOF directly so that derived keys longer than
// a single digest stay well-defined, and shorter ones are not a truncation
// of a hex encoding.
func DeriveKey(size int, parts ...[]byte) ([]byte, error) {
	// Check arguments
	if size < 1 {
		return nil, errors.New("derived key size must be strictly positive")
	}
	if len(parts) == 0 {
		return nil, errors.New("at least one input part must be provided")
	}

	h := blake3.New()
	for _, p := range parts {
		// The hasher never returns a write error
		_, _ = h.Write(p)
	}

	// Read the derived key from the extendable output
	out := make([]byte, size)
	if _, err := io.ReadFull(h.Digest(), out); err != nil {
		return nil, fmt.Errorf("unable to read derived key from the XOF: %w", err)
	}

	return out, nil
}
