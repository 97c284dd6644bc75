// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/awnumar/memguard"

	"github.com/pixealed/go-pxl/chunker"
	"github.com/pixealed/go-pxl/crypto/encryption"
	"github.com/pixealed/go-pxl/crypto/keyutil"
	"github.com/pixealed/go-pxl/crypto/signature"
	"github.com/pixealed/go-pxl/generator/randomness"
	"github.com/pixealed/go-pxl/ioutil"
	"github.com/pixealed/go-pxl/ioutil/atomic"
	"github.com/pixealed/go-pxl/metadata"
)

// Pack seals the given payload and metadata mapping into a .pxl container
// signed with the given raw 32 byte Ed25519 seed.
//
// The payload encryption key is derived from the signed manifest itself. The
// manifest travels in cleartext inside the container, so the encryption does
// not provide confidentiality against a holder of the complete file; it binds
// the ciphertext to the manifest so that any manifest mutation breaks
// decryption independently of the signature.
//
// A fresh random nonce is drawn for every call: packing the same inputs twice
// produces different files which both verify.
func Pack(payload []byte, meta map[string]any, seed []byte) ([]byte, error) {
	// Check arguments
	if len(seed) != keyutil.SeedSize {
		return nil, fmt.Errorf("invalid signing seed: %w", ErrKeyFormat)
	}
	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}

	// Split the payload and summarize it
	chunks, err := chunker.Split(payload, ChunkSize)
	if err != nil {
		return nil, fmt.Errorf("unable to chunk the payload: %w", err)
	}
	root, chunkHashes, err := chunker.BuildMerkleTree(chunks)
	if err != nil {
		return nil, fmt.Errorf("unable to build the merkle tree: %w", err)
	}

	// Assemble the manifest
	m := &Manifest{
		Metadata:    meta,
		ChunkHashes: chunkHashes,
		MerkleRoot:  root,
		ChunkSize:   ChunkSize,
		TotalSize:   int64(len(payload)),
		NumChunks:   len(chunks),
	}
	manifestBytes, err := m.Canonical()
	if err != nil {
		return nil, err
	}
	if len(manifestBytes) > math.MaxUint32 {
		return nil, fmt.Errorf("manifest too large for its length prefix: %w", ErrStructural)
	}

	// Derive the content key from the canonical manifest
	key, err := deriveContentKey(manifestBytes)
	if err != nil {
		return nil, err
	}
	defer memguard.WipeBytes(key)

	aead, err := encryption.XChaCha(key)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize the payload cipher: %w", err)
	}

	// Draw a fresh nonce
	nonce, err := randomness.Bytes(NonceSize)
	if err != nil {
		return nil, fmt.Errorf("unable to generate the nonce: %w", err)
	}

	// Seal the payload
	ciphertext, err := aead.Seal(nonce, payload)
	if err != nil {
		return nil, fmt.Errorf("unable to encrypt the payload: %w", err)
	}

	// Sign the canonical manifest
	signer, err := signature.Ed25519SignerFromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid signing seed: %w", ErrKeyFormat)
	}
	sig, err := signer.Sign(manifestBytes)
	if err != nil {
		return nil, fmt.Errorf("unable to sign the manifest: %w", err)
	}

	// Assemble the container
	var out bytes.Buffer
	out.Grow(len(ciphertext) + minTrailerSize + len(manifestBytes))

	out.Write(ciphertext)
	out.WriteString(Magic)
	out.WriteByte(Version)

	var lenPrefix [manifestLenSize]byte
	binary.LittleEndian.PutUint32(lenPrefix[:], uint32(len(manifestBytes)))
	out.Write(lenPrefix[:])
	out.Write(manifestBytes)

	out.Write(sig)
	out.WriteByte(byte(NonceSize))
	out.Write(nonce)
	out.WriteString(Footer)

	return out.Bytes(), nil
}

// PackFile reads the input image, extracts its metadata mapping and writes
// the sealed container to outputPath atomically.
func PackFile(inputPath, outputPath string, seed []byte) error {
	// Read the whole payload, the layout is two-pass by design
	payload, err := ioutil.ReadFileLimit(inputPath, maxContainerSize)
	if err != nil {
		return fmt.Errorf("unable to read the input image: %w", err)
	}

	out, err := Pack(payload, metadata.FromImage(inputPath), seed)
	if err != nil {
		return err
	}

	if err := atomic.WriteFile(outputPath, bytes.NewReader(out)); err != nil {
		return fmt.Errorf("unable to write the container: %w", err)
	}

	return nil
}

// GenerateKeypair generates a fresh Ed25519 keypair usable with Pack and
// Verify, returned as raw 32 byte seed and public key.
func GenerateKeypair() (seed, publicKey []byte, err error) {
	return keyutil.GenerateKeypair()
}
