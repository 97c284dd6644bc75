// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

// Package chunker splits payloads into fixed-size chunks and summarizes them
// with a BLAKE3 Merkle tree.
package chunker

import (
	"errors"
	"fmt"
)

// ErrEmptyPayload is raised when a zero length payload is submitted for
// chunking. A container always carries at least one chunk.
var ErrEmptyPayload = errors.New("payload must not be empty")

// Split divides the given payload into ordered chunks of chunkSize bytes.
// All chunks are exactly chunkSize long except the last one which may be
// shorter, but never empty.
//
// The returned slices alias the payload backing array.
func Split(payload []byte, chunkSize int) ([][]byte, error) {
	// Check arguments
	if chunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be strictly positive, got %d", chunkSize)
	}
	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}

	chunks := make([][]byte, 0, (len(payload)+chunkSize-1)/chunkSize)
	for offset := 0; offset < len(payload); offset += chunkSize {
		end := offset + chunkSize
		if end > len(payload) {
			end = len(payload)
		}
		chunks = append(chunks, payload[offset:end])
	}

	return chunks, nil
}
