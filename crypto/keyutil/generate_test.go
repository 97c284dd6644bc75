// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

package keyutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateKeypair(t *testing.T) {
	t.Parallel()

	seed, pub, err := GenerateKeypair()
	require.NoError(t, err)
	require.Len(t, seed, SeedSize)
	require.Len(t, pub, PublicKeySize)

	// The public key is recoverable from the seed
	expanded, err := PublicKeyFromSeed(seed)
	require.NoError(t, err)
	require.Equal(t, pub, expanded)
}

func TestGenerateKeypairWithRand(t *testing.T) {
	t.Parallel()

	t.Run("deterministic source", func(t *testing.T) {
		t.Parallel()

		seed1, pub1, err := GenerateKeypairWithRand(strings.NewReader("00000-deterministic-key-for-testing-purpose"))
		require.NoError(t, err)
		seed2, pub2, err := GenerateKeypairWithRand(strings.NewReader("00000-deterministic-key-for-testing-purpose"))
		require.NoError(t, err)

		require.Equal(t, seed1, seed2)
		require.Equal(t, pub1, pub2)
	})

	t.Run("nil source", func(t *testing.T) {
		t.Parallel()

		_, _, err := GenerateKeypairWithRand(nil)
		require.Error(t, err)
	})
}

func TestPublicKeyFromSeed_InvalidLength(t *testing.T) {
	t.Parallel()

	_, err := PublicKeyFromSeed([]byte("short"))
	require.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	_, pub, err := GenerateKeypair()
	require.NoError(t, err)

	fp, err := Fingerprint(pub)
	require.NoError(t, err)
	require.Len(t, fp, 64)

	// Stable for the same key
	fp2, err := Fingerprint(pub)
	require.NoError(t, err)
	require.Equal(t, fp, fp2)

	_, err = Fingerprint([]byte("short"))
	require.Error(t, err)
}
