// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

package format

const (
	// Magic is the 4 byte marker opening the container trailer.
	Magic = "PXL!"
	// Footer is the 4 byte marker closing the container.
	Footer = "END!"
	// Version is the only container layout version this package produces
	// and accepts.
	Version byte = 0x01

	// ChunkSize is the fixed payload chunking size (256 KiB).
	ChunkSize = 256 * 1024
	// NonceSize is the XChaCha20-Poly1305 nonce length stored in the trailer.
	NonceSize = 24
	// SignatureSize is the Ed25519 signature length stored in the trailer.
	SignatureSize = 64

	// contentKeySize is the derived payload encryption key length.
	contentKeySize = 32
	// keyDerivationLabel is appended to the canonical manifest bytes before
	// the key derivation XOF. Changing it is a wire format break.
	keyDerivationLabel = "pxl-aead-key"

	// manifestLenSize is the little-endian length prefix width of the
	// manifest field.
	manifestLenSize = 4

	// minTrailerSize is the smallest structurally possible trailer: magic,
	// version, manifest length prefix, empty manifest, signature, nonce
	// length prefix, nonce and footer.
	minTrailerSize = len(Magic) + 1 + manifestLenSize + SignatureSize + 1 + NonceSize + len(Footer)
)

// maxContainerSize bounds whole-file reads (4GB).
var maxContainerSize uint64 = 4 * 1024 * 1024 * 1024
