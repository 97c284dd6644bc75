// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/awnumar/memguard"

	"github.com/pixealed/go-pxl/crypto/encryption"
	"github.com/pixealed/go-pxl/ioutil"
)

// container is the parsed byte layout of a .pxl file.
type container struct {
	ciphertext   []byte
	version      byte
	manifestRaw  []byte
	signatureRaw []byte
	nonce        []byte
}

// parseContainer locates the trailer and slices the container regions out of
// the raw file bytes. Parsing is tail-anchored: the trailer is found through
// the last occurrence of the magic marker, because the ciphertext may
// coincidentally contain the pattern while nothing follows the real trailer.
func parseContainer(data []byte) (*container, error) {
	pos := bytes.LastIndex(data, []byte(Magic))
	if pos < 0 {
		return nil, fmt.Errorf("magic marker not found: %w", ErrStructural)
	}

	c := &container{
		ciphertext: data[:pos],
	}

	block := data[pos:]
	if len(block) < minTrailerSize {
		return nil, fmt.Errorf("trailer too short: %w", ErrStructural)
	}

	// MAGIC
	offset := len(Magic)

	// VERSION
	c.version = block[offset]
	offset++
	if c.version != Version {
		return nil, fmt.Errorf("unsupported container version 0x%02x: %w", c.version, ErrStructural)
	}

	// MANIFEST_LEN || MANIFEST
	manifestLen := int(binary.LittleEndian.Uint32(block[offset : offset+manifestLenSize]))
	offset += manifestLenSize
	if manifestLen > len(block)-offset {
		return nil, fmt.Errorf("manifest length exceeds the trailer: %w", ErrStructural)
	}
	c.manifestRaw = block[offset : offset+manifestLen]
	offset += manifestLen

	// SIGNATURE
	if len(block)-offset < SignatureSize {
		return nil, fmt.Errorf("truncated signature: %w", ErrStructural)
	}
	c.signatureRaw = block[offset : offset+SignatureSize]
	offset += SignatureSize

	// NONCE_LEN || NONCE
	if len(block)-offset < 1 {
		return nil, fmt.Errorf("truncated nonce length: %w", ErrStructural)
	}
	nonceLen := int(block[offset])
	offset++
	if nonceLen != NonceSize {
		return nil, fmt.Errorf("unexpected nonce length %d: %w", nonceLen, ErrStructural)
	}
	if len(block)-offset < nonceLen {
		return nil, fmt.Errorf("truncated nonce: %w", ErrStructural)
	}
	c.nonce = block[offset : offset+nonceLen]
	offset += nonceLen

	// FOOTER, terminating the file
	if len(block)-offset != len(Footer) || string(block[offset:offset+len(Footer)]) != Footer {
		return nil, fmt.Errorf("missing footer marker: %w", ErrStructural)
	}

	return c, nil
}

// -----------------------------------------------------------------------------

// Read parses the given container bytes, decrypts the payload and returns it
// with the embedded manifest.
//
// Read does not verify the Ed25519 signature nor the Merkle summary; the
// payload is authenticated by the AEAD tag alone. Binding the container to a
// specific signer is Verify's job.
func Read(data []byte) ([]byte, *Manifest, error) {
	c, err := parseContainer(data)
	if err != nil {
		return nil, nil, err
	}

	m, err := parseManifest(c.manifestRaw)
	if err != nil {
		return nil, nil, err
	}

	// Derive the content key from the manifest found in the file
	key, err := deriveContentKey(c.manifestRaw)
	if err != nil {
		return nil, nil, err
	}
	defer memguard.WipeBytes(key)

	aead, err := encryption.XChaCha(key)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to initialize the payload cipher: %w", err)
	}

	payload, err := aead.Open(c.nonce, c.ciphertext)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to decrypt the payload: %w", err)
	}

	return payload, m, nil
}

// ReadFile reads and decrypts the container at the given path.
func ReadFile(path string) ([]byte, *Manifest, error) {
	data, err := ioutil.ReadFileLimit(path, maxContainerSize)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to read the container file: %w", err)
	}
	return Read(data)
}
