// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"encoding/json"
	"fmt"

	"github.com/pixealed/go-pxl/crypto/canonicalization"
	"github.com/pixealed/go-pxl/crypto/hashutil"
)

// Manifest describes a packed payload: its descriptive metadata and the
// integrity summary the verifier recomputes.
type Manifest struct {
	// Metadata is the opaque descriptive mapping supplied at pack time. The
	// container never interprets its values.
	Metadata map[string]any
	// ChunkHashes is the ordered hex encoded BLAKE3 hash list of the
	// plaintext chunks.
	ChunkHashes []string
	// MerkleRoot is the hex encoded Merkle root over ChunkHashes.
	MerkleRoot string
	// ChunkSize is the chunking size the payload was split with.
	ChunkSize int
	// TotalSize is the plaintext payload length in bytes.
	TotalSize int64
	// NumChunks is the chunk count, equal to len(ChunkHashes).
	NumChunks int
}

// Canonical returns the canonical JSON encoding of the manifest: the exact
// byte sequence that is signed and that the content key is derived from.
func (m *Manifest) Canonical() ([]byte, error) {
	meta := m.Metadata
	if meta == nil {
		meta = map[string]any{}
	}

	doc := map[string]any{
		"metadata":     meta,
		"chunk_hashes": m.ChunkHashes,
		"merkle_root":  m.MerkleRoot,
		"chunk_size":   m.ChunkSize,
		"total_size":   m.TotalSize,
		"num_chunks":   m.NumChunks,
	}

	out, err := canonicalization.MarshalJSON(doc)
	if err != nil {
		return nil, fmt.Errorf("unable to canonicalize the manifest: %w", err)
	}

	return out, nil
}

// -----------------------------------------------------------------------------

// parseManifest decodes and validates the manifest document found in a
// container trailer. All shape defects map to ErrStructural.
func parseManifest(raw []byte) (*Manifest, error) {
	v, err := canonicalization.DecodeJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("manifest is not valid JSON: %w", ErrStructural)
	}

	doc, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("manifest is not a JSON object: %w", ErrStructural)
	}

	// Reject unknown fields, the manifest key set is fixed
	for k := range doc {
		switch k {
		case "metadata", "chunk_hashes", "merkle_root", "chunk_size", "total_size", "num_chunks":
		default:
			return nil, fmt.Errorf("unexpected manifest field %q: %w", k, ErrStructural)
		}
	}

	m := &Manifest{}

	// metadata
	rawMeta, ok := doc["metadata"]
	if !ok {
		return nil, fmt.Errorf("missing manifest field %q: %w", "metadata", ErrStructural)
	}
	if m.Metadata, ok = rawMeta.(map[string]any); !ok {
		return nil, fmt.Errorf("manifest field %q is not an object: %w", "metadata", ErrStructural)
	}

	// chunk_hashes
	rawHashes, ok := doc["chunk_hashes"]
	if !ok {
		return nil, fmt.Errorf("missing manifest field %q: %w", "chunk_hashes", ErrStructural)
	}
	items, ok := rawHashes.([]any)
	if !ok {
		return nil, fmt.Errorf("manifest field %q is not an array: %w", "chunk_hashes", ErrStructural)
	}
	m.ChunkHashes = make([]string, len(items))
	for i := range items {
		s, ok := items[i].(string)
		if !ok {
			return nil, fmt.Errorf("manifest field %q holds a non-string element: %w", "chunk_hashes", ErrStructural)
		}
		m.ChunkHashes[i] = s
	}

	// merkle_root
	rawRoot, ok := doc["merkle_root"]
	if !ok {
		return nil, fmt.Errorf("missing manifest field %q: %w", "merkle_root", ErrStructural)
	}
	if m.MerkleRoot, ok = rawRoot.(string); !ok {
		return nil, fmt.Errorf("manifest field %q is not a string: %w", "merkle_root", ErrStructural)
	}

	// Integer fields
	chunkSize, err := intField(doc, "chunk_size")
	if err != nil {
		return nil, err
	}
	if chunkSize < 1 {
		return nil, fmt.Errorf("manifest field %q must be strictly positive: %w", "chunk_size", ErrStructural)
	}
	m.ChunkSize = int(chunkSize)

	m.TotalSize, err = intField(doc, "total_size")
	if err != nil {
		return nil, err
	}

	numChunks, err := intField(doc, "num_chunks")
	if err != nil {
		return nil, err
	}
	m.NumChunks = int(numChunks)

	return m, nil
}

func intField(doc map[string]any, name string) (int64, error) {
	raw, ok := doc[name]
	if !ok {
		return 0, fmt.Errorf("missing manifest field %q: %w", name, ErrStructural)
	}
	num, ok := raw.(json.Number)
	if !ok {
		return 0, fmt.Errorf("manifest field %q is not a number: %w", name, ErrStructural)
	}
	v, err := num.Int64()
	if err != nil {
		return 0, fmt.Errorf("manifest field %q is not an integer: %w", name, ErrStructural)
	}
	return v, nil
}

// -----------------------------------------------------------------------------

// deriveContentKey derives the payload encryption key from the canonical
// manifest bytes. The key is a deterministic function of the manifest; see
// the package documentation for the confidentiality consequences.
func deriveContentKey(manifestBytes []byte) ([]byte, error) {
	key, err := hashutil.DeriveKey(contentKeySize, manifestBytes, []byte(keyDerivationLabel))
	if err != nil {
		return nil, fmt.Errorf("unable to derive the content key: %w", err)
	}
	return key, nil
}
