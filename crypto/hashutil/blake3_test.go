// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

package hashutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSumHex_Vectors(t *testing.T) {
	t.Parallel()

	// Reference vectors from the BLAKE3 specification test suite
	testCases := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "empty input",
			input:    []byte{},
			expected: "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
		},
		{
			name:     "hello world",
			input:    []byte("hello world"),
			expected: "d74981efa70a0c880b8d8c1985d075dbcbf679b99a5f9914e5aaf96b831a9e24",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, SumHex(tc.input))
			require.Len(t, SumHex(tc.input), 64)
		})
	}
}

func TestDeriveKey(t *testing.T) {
	t.Parallel()

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		k1, err := DeriveKey(32, []byte("manifest"), []byte("label"))
		require.NoError(t, err)
		k2, err := DeriveKey(32, []byte("manifest"), []byte("label"))
		require.NoError(t, err)
		require.Equal(t, k1, k2)
		require.Len(t, k1, 32)
	})

	t.Run("concatenation equivalence", func(t *testing.T) {
		t.Parallel()

		// Part boundaries don't influence the derivation, only the
		// concatenated byte stream does.
		k1, err := DeriveKey(32, []byte("manifest"), []byte("label"))
		require.NoError(t, err)
		k2, err := DeriveKey(32, []byte("manifestlabel"))
		require.NoError(t, err)
		require.Equal(t, k1, k2)
	})

	t.Run("input sensitivity", func(t *testing.T) {
		t.Parallel()

		k1, err := DeriveKey(32, []byte("manifest-a"))
		require.NoError(t, err)
		k2, err := DeriveKey(32, []byte("manifest-b"))
		require.NoError(t, err)
		require.NotEqual(t, k1, k2)
	})

	t.Run("xof prefix consistency", func(t *testing.T) {
		t.Parallel()

		// The XOF output is an extension, shorter reads are prefixes
		k32, err := DeriveKey(32, []byte("manifest"))
		require.NoError(t, err)
		k64, err := DeriveKey(64, []byte("manifest"))
		require.NoError(t, err)
		require.Equal(t, k32, k64[:32])
	})

	t.Run("invalid size", func(t *testing.T) {
		t.Parallel()

		_, err := DeriveKey(0, []byte("manifest"))
		require.Error(t, err)
	})

	t.Run("no parts", func(t *testing.T) {
		t.Parallel()

		_, err := DeriveKey(32)
		require.Error(t, err)
	})
}
