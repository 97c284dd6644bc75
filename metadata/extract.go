// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

// Package metadata builds the descriptive mapping embedded in a container
// manifest. The container core treats the mapping as opaque; this package is
// the default producer used by the file-level packing helpers.
package metadata

import (
	"image"
	"os"

	// Register the common still image codecs for DecodeConfig
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/pixealed/go-pxl/log"
)

// FromImage extracts a metadata mapping from the image at the given path:
// pixel dimensions and the detected format. Undecodable or unreadable input
// degrades to a synthetic mapping; extraction never fails.
//
// The mapping is deterministic for a given input so that repacking the same
// image yields the same manifest metadata.
func FromImage(path string) map[string]any {
	f, err := os.Open(path)
	if err != nil {
		log.Error(err).Messagef("unable to open %q for metadata extraction", path)
		return Synthetic(0, 0)
	}
	defer func() { _ = f.Close() }()

	cfg, formatName, err := image.DecodeConfig(f)
	if err != nil {
		log.Error(err).Messagef("unable to decode image configuration of %q", path)
		return Synthetic(0, 0)
	}

	return map[string]any{
		"width":  cfg.Width,
		"height": cfg.Height,
		"format": formatName,
	}
}

// Synthetic returns the minimal fallback mapping used when no image
// information is available.
func Synthetic(width, height int) map[string]any {
	return map[string]any{
		"width":  width,
		"height": height,
		"format": "Unknown",
		"source": "synthetic",
	}
}
