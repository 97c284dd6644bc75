// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"fmt"

	"github.com/awnumar/memguard"

	pxl "github.com/pixealed/go-pxl"
	"github.com/pixealed/go-pxl/chunker"
	"github.com/pixealed/go-pxl/crypto/encryption"
	"github.com/pixealed/go-pxl/crypto/keyutil"
	"github.com/pixealed/go-pxl/crypto/signature"
	"github.com/pixealed/go-pxl/ioutil"
	"github.com/pixealed/go-pxl/log"
)

// Verify performs the full container verification against the given raw
// 32 byte Ed25519 public key: structural parse, manifest signature, payload
// decryption, chunk hash list and Merkle root recomputation, and size
// cross-checks.
//
// Verify never panics and never returns an error: every failure collapses to
// false so that callers can't learn the failure kind from the result. With
// the development mode flag enabled the internal cause is logged at debug
// level.
func Verify(data []byte, publicKey []byte) (ok bool) {
	// Harden the boolean contract against any internal panic
	defer func() {
		if r := recover(); r != nil {
			logVerifyFailure(fmt.Errorf("panic during verification: %v", r))
			ok = false
		}
	}()

	if err := verify(data, publicKey); err != nil {
		logVerifyFailure(err)
		return false
	}

	return true
}

// VerifyFile performs the full container verification of the file at the
// given path. It follows the Verify boolean contract.
func VerifyFile(path string, publicKey []byte) bool {
	data, err := ioutil.ReadFileLimit(path, maxContainerSize)
	if err != nil {
		logVerifyFailure(fmt.Errorf("unable to read the container file: %w", err))
		return false
	}
	return Verify(data, publicKey)
}

// -----------------------------------------------------------------------------

func verify(data []byte, publicKey []byte) error {
	// Check arguments
	if len(publicKey) != keyutil.PublicKeySize {
		return fmt.Errorf("invalid public key: %w", ErrKeyFormat)
	}

	// Structural parse
	c, err := parseContainer(data)
	if err != nil {
		return err
	}
	m, err := parseManifest(c.manifestRaw)
	if err != nil {
		return err
	}

	// Manifest signature
	verifier, err := signature.Ed25519Verifier(publicKey)
	if err != nil {
		return fmt.Errorf("invalid public key: %w", ErrKeyFormat)
	}
	if err := verifier.Verify(c.manifestRaw, c.signatureRaw); err != nil {
		return fmt.Errorf("manifest signature rejected: %w", err)
	}

	// Payload decryption, authenticated by the AEAD tag
	key, err := deriveContentKey(c.manifestRaw)
	if err != nil {
		return err
	}
	defer memguard.WipeBytes(key)

	aead, err := encryption.XChaCha(key)
	if err != nil {
		return fmt.Errorf("unable to initialize the payload cipher: %w", err)
	}
	payload, err := aead.Open(c.nonce, c.ciphertext)
	if err != nil {
		return fmt.Errorf("unable to decrypt the payload: %w", err)
	}

	// Recompute the integrity summary from the plaintext
	chunks, err := chunker.Split(payload, m.ChunkSize)
	if err != nil {
		return fmt.Errorf("unable to re-chunk the payload: %w", err)
	}
	root, chunkHashes, err := chunker.BuildMerkleTree(chunks)
	if err != nil {
		return fmt.Errorf("unable to rebuild the merkle tree: %w", err)
	}

	if len(chunkHashes) != len(m.ChunkHashes) {
		return fmt.Errorf("chunk count drift: %w", ErrMerkleMismatch)
	}
	for i := range chunkHashes {
		if chunkHashes[i] != m.ChunkHashes[i] {
			return fmt.Errorf("chunk %d hash drift: %w", i, ErrMerkleMismatch)
		}
	}
	if root != m.MerkleRoot {
		return fmt.Errorf("root drift: %w", ErrMerkleMismatch)
	}

	// Size cross-checks
	if m.NumChunks != len(m.ChunkHashes) {
		return fmt.Errorf("declared chunk count drift: %w", ErrSizeMismatch)
	}
	if m.TotalSize != int64(len(payload)) {
		return fmt.Errorf("declared payload size drift: %w", ErrSizeMismatch)
	}

	return nil
}

func logVerifyFailure(err error) {
	if !pxl.InDevMode() {
		return
	}
	log.Error(err).Level(log.DebugLevel).Message("container verification failed")
}
