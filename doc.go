// Package pxl implements the .pxl container format: a tamper-evident,
// authenticated, encrypted envelope for a single image payload and its
// descriptive metadata.
//
// A .pxl file binds the encrypted payload to a signed manifest. The manifest
// records BLAKE3 chunk hashes and their Merkle root; the payload is sealed
// with XChaCha20-Poly1305 under a key derived from the canonical manifest
// bytes; the manifest itself is signed with Ed25519.
//
// Because the content key is derived from the manifest, and the manifest is
// stored in cleartext inside the file, anyone holding the complete file can
// decrypt the payload. The encryption binds the ciphertext to the manifest
// rather than hiding it from a file-possessor; confidentiality only holds
// against parties that never obtain the manifest bytes.
//
// The container format lives in the format package. Supporting primitives
// are split per concern under crypto/, chunker and generator/.
package pxl
