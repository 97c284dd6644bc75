// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

package chunker

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pixealed/go-pxl/crypto/hashutil"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		payloadSize int
		chunkSize   int
		expected    []int
	}{
		{name: "single byte", payloadSize: 1, chunkSize: 16, expected: []int{1}},
		{name: "exactly one chunk", payloadSize: 16, chunkSize: 16, expected: []int{16}},
		{name: "one chunk plus one byte", payloadSize: 17, chunkSize: 16, expected: []int{16, 1}},
		{name: "three full chunks", payloadSize: 48, chunkSize: 16, expected: []int{16, 16, 16}},
		{name: "five chunks ragged", payloadSize: 70, chunkSize: 16, expected: []int{16, 16, 16, 16, 6}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			payload := bytes.Repeat([]byte{0x41}, tc.payloadSize)
			chunks, err := Split(payload, tc.chunkSize)
			require.NoError(t, err)
			require.Len(t, chunks, len(tc.expected))

			var reassembled []byte
			for i, c := range chunks {
				require.Len(t, c, tc.expected[i])
				reassembled = append(reassembled, c...)
			}
			require.Equal(t, payload, reassembled)
		})
	}
}

func TestSplit_EmptyPayload(t *testing.T) {
	t.Parallel()

	_, err := Split(nil, 16)
	require.ErrorIs(t, err, ErrEmptyPayload)

	_, err = Split([]byte{}, 16)
	require.ErrorIs(t, err, ErrEmptyPayload)
}

func TestSplit_InvalidChunkSize(t *testing.T) {
	t.Parallel()

	_, err := Split([]byte("data"), 0)
	require.Error(t, err)

	_, err = Split([]byte("data"), -1)
	require.Error(t, err)
}

func TestBuildMerkleTree_SingleChunk(t *testing.T) {
	t.Parallel()

	chunks := [][]byte{[]byte("hello world")}
	root, hashes, err := BuildMerkleTree(chunks)
	require.NoError(t, err)
	require.Len(t, hashes, 1)

	// A single-chunk tree has its chunk hash as root
	require.Equal(t, hashes[0], root)
	require.Equal(t, hashutil.SumHex([]byte("hello world")), root)
}

func TestBuildMerkleTree_TwoChunks(t *testing.T) {
	t.Parallel()

	chunks := [][]byte{[]byte("left"), []byte("right")}
	root, hashes, err := BuildMerkleTree(chunks)
	require.NoError(t, err)
	require.Len(t, hashes, 2)

	// The parent hashes the concatenated hex encodings, not the raw digests
	expected := hashutil.SumHex([]byte(hashes[0] + hashes[1]))
	require.Equal(t, expected, root)
}

func TestBuildMerkleTree_OddDuplicatesLast(t *testing.T) {
	t.Parallel()

	chunks := [][]byte{[]byte("c0"), []byte("c1"), []byte("c2")}
	root, hashes, err := BuildMerkleTree(chunks)
	require.NoError(t, err)
	require.Len(t, hashes, 3)

	// Level 1 pairs (h0,h1) and (h2,h2), level 2 pairs the two parents
	p01 := hashutil.SumHex([]byte(hashes[0] + hashes[1]))
	p22 := hashutil.SumHex([]byte(hashes[2] + hashes[2]))
	require.Equal(t, hashutil.SumHex([]byte(p01+p22)), root)
}

func TestBuildMerkleTree_FiveChunksMultiLevel(t *testing.T) {
	t.Parallel()

	chunks := [][]byte{[]byte("c0"), []byte("c1"), []byte("c2"), []byte("c3"), []byte("c4")}
	root, hashes, err := BuildMerkleTree(chunks)
	require.NoError(t, err)
	require.Len(t, hashes, 5)

	// Level 1: (h0,h1) (h2,h3) (h4,h4)
	p01 := hashutil.SumHex([]byte(hashes[0] + hashes[1]))
	p23 := hashutil.SumHex([]byte(hashes[2] + hashes[3]))
	p44 := hashutil.SumHex([]byte(hashes[4] + hashes[4]))
	// Level 2: (p01,p23) (p44,p44)
	q0 := hashutil.SumHex([]byte(p01 + p23))
	q1 := hashutil.SumHex([]byte(p44 + p44))
	require.Equal(t, hashutil.SumHex([]byte(q0+q1)), root)
}

func TestBuildMerkleTree_RebuildInvariance(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte{0xA5}, 1000)
	chunks, err := Split(payload, 64)
	require.NoError(t, err)

	root1, hashes1, err := BuildMerkleTree(chunks)
	require.NoError(t, err)
	root2, hashes2, err := BuildMerkleTree(chunks)
	require.NoError(t, err)

	require.Equal(t, root1, root2)
	require.Equal(t, hashes1, hashes2)
}

func TestRootFromHashes_RebuildsRecordedRoot(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte{0x3C}, 500)
	chunks, err := Split(payload, 64)
	require.NoError(t, err)

	root, hashes, err := BuildMerkleTree(chunks)
	require.NoError(t, err)

	// The recorded hash list alone reproduces the recorded root
	rebuilt, err := RootFromHashes(hashes)
	require.NoError(t, err)
	require.Equal(t, root, rebuilt)

	_, err = RootFromHashes(nil)
	require.ErrorIs(t, err, ErrEmptyPayload)
}

func TestBuildMerkleTree_EmptyChunks(t *testing.T) {
	t.Parallel()

	_, _, err := BuildMerkleTree(nil)
	require.ErrorIs(t, err, ErrEmptyPayload)
}

func TestVerifyChunk(t *testing.T) {
	t.Parallel()

	chunk := []byte("chunk content")
	require.True(t, VerifyChunk(chunk, hashutil.SumHex(chunk)))
	require.False(t, VerifyChunk(chunk, hashutil.SumHex([]byte("other content"))))
}
