// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

// Package bundle produces and consumes the distribution zip convention: a
// container file together with the signer public key as public_key.bin.
package bundle

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pixealed/go-pxl/crypto/keyutil"
	"github.com/pixealed/go-pxl/ioutil"
	"github.com/pixealed/go-pxl/ioutil/atomic"
)

// PublicKeyEntry is the fixed archive name of the signer public key.
const PublicKeyEntry = "public_key.bin"

// Create writes a bundle zip holding the given container bytes under
// pxlName and the raw public key as public_key.bin.
func Create(w io.Writer, pxlName string, pxlContent, publicKey []byte) error {
	// Check arguments
	if w == nil {
		return errors.New("output writer is nil")
	}
	if pxlName == "" {
		return errors.New("container entry name must not be blank")
	}
	if len(publicKey) != keyutil.PublicKeySize {
		return fmt.Errorf("public key must be exactly %d bytes", keyutil.PublicKeySize)
	}

	zw := zip.NewWriter(w)

	// Enable best compression
	//nolint:wrapcheck // error wrapping is not required here
	zw.RegisterCompressor(zip.Deflate, func(wr io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(wr, flate.BestCompression)
	})

	entries := []struct {
		name    string
		content []byte
	}{
		{name: filepath.Base(pxlName), content: pxlContent},
		{name: PublicKeyEntry, content: publicKey},
	}
	for _, e := range entries {
		fw, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("unable to create the %q archive entry: %w", e.name, err)
		}
		if _, err := fw.Write(e.content); err != nil {
			return fmt.Errorf("unable to write the %q archive entry: %w", e.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to finalize the archive: %w", err)
	}

	return nil
}

// CreateFile bundles the container at pxlPath with the given public key and
// writes the zip to outputPath atomically.
func CreateFile(outputPath, pxlPath string, publicKey []byte) error {
	content, err := ioutil.ReadFileLimit(pxlPath, maxBundleEntrySize)
	if err != nil {
		return fmt.Errorf("unable to read the container file: %w", err)
	}

	var buf bytes.Buffer
	if err := Create(&buf, filepath.Base(pxlPath), content, publicKey); err != nil {
		return err
	}

	if err := atomic.WriteFile(outputPath, &buf); err != nil {
		return fmt.Errorf("unable to write the bundle: %w", err)
	}

	return nil
}
