// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

// Package keyutil provides Ed25519 key material helpers for the container
// format. Keys are exchanged in their raw form: 32 byte private seeds and
// 32 byte public keys.
package keyutil

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// SeedSize is the raw Ed25519 private seed length in bytes.
const SeedSize = ed25519.SeedSize

// PublicKeySize is the raw Ed25519 public key length in bytes.
const PublicKeySize = ed25519.PublicKeySize

// GenerateKeypair generates a fresh Ed25519 keypair and returns its raw seed
// and public key.
func GenerateKeypair() (seed, publicKey []byte, err error) {
	return GenerateKeypairWithRand(rand.Reader)
}

// GenerateKeypairWithRand generates an Ed25519 keypair from the given random
// source and returns its raw seed and public key.
func GenerateKeypairWithRand(r io.Reader) (seed, publicKey []byte, err error) {
	// Check arguments
	if r == nil {
		return nil, nil, errors.New("random reader must not be nil")
	}

	pub, pk, err := ed25519.GenerateKey(r)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to generate Ed25519 key pair: %w", err)
	}

	return pk.Seed(), pub, nil
}

// PublicKeyFromSeed expands a raw 32 byte seed to its Ed25519 public key.
func PublicKeyFromSeed(seed []byte) ([]byte, error) {
	// Check arguments
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be exactly %d bytes", SeedSize)
	}

	pk := ed25519.NewKeyFromSeed(seed)
	//nolint:forcetypeassert // ed25519 private keys always expose an ed25519 public key
	return []byte(pk.Public().(ed25519.PublicKey)), nil
}
