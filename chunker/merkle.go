// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

package chunker

import (
	"github.com/pixealed/go-pxl/crypto/hashutil"
)

// BuildMerkleTree hashes every chunk with BLAKE3 and reduces the hash list to
// a single Merkle root. It returns the root and the ordered leaf hash list,
// both as 64 character lowercase hex strings.
//
// Parent nodes hash the concatenated hex encodings of their children, not the
// raw digests; this is a wire format invariant. Odd-sized levels duplicate
// their last node. A single-chunk payload has its chunk hash as root.
func BuildMerkleTree(chunks [][]byte) (root string, chunkHashes []string, err error) {
	// Check arguments
	if len(chunks) == 0 {
		return "", nil, ErrEmptyPayload
	}

	// Hash all chunks
	chunkHashes = make([]string, len(chunks))
	for i := range chunks {
		chunkHashes[i] = hashutil.SumHex(chunks[i])
	}

	root, err = RootFromHashes(chunkHashes)
	if err != nil {
		return "", nil, err
	}

	return root, chunkHashes, nil
}

// RootFromHashes reduces an ordered hex chunk hash list to its Merkle root.
// Rebuilding from a recorded hash list reproduces the recorded root.
func RootFromHashes(chunkHashes []string) (string, error) {
	// Check arguments
	if len(chunkHashes) == 0 {
		return "", ErrEmptyPayload
	}

	level := chunkHashes
	for len(level) > 1 {
		next := make([]string, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, hashutil.SumHex([]byte(left+right)))
		}
		level = next
	}

	return level[0], nil
}

// VerifyChunk reports whether the given chunk matches its expected hex
// encoded BLAKE3 hash.
func VerifyChunk(chunk []byte, expectedHex string) bool {
	return hashutil.SumHex(chunk) == expectedHex
}
