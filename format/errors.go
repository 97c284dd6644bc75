// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"errors"

	"github.com/pixealed/go-pxl/chunker"
	"github.com/pixealed/go-pxl/crypto/encryption"
)

var (
	// ErrEmptyPayload is raised when packing a zero length payload.
	ErrEmptyPayload = chunker.ErrEmptyPayload

	// ErrStructural is raised when the container byte layout or the embedded
	// manifest document is malformed.
	ErrStructural = errors.New("malformed container")

	// ErrAuthentication is raised when payload decryption fails its
	// authentication tag check.
	ErrAuthentication = encryption.ErrAuthentication

	// ErrMerkleMismatch is raised when the recomputed chunk hash list or
	// Merkle root differs from the manifest.
	ErrMerkleMismatch = errors.New("chunk hashes or merkle root mismatch")

	// ErrSizeMismatch is raised when the decrypted payload length or chunk
	// count contradicts the manifest.
	ErrSizeMismatch = errors.New("payload size or chunk count mismatch")

	// ErrKeyFormat is raised when a key buffer has not the expected length.
	ErrKeyFormat = errors.New("key must be exactly 32 bytes")
)
