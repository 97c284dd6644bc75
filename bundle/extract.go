// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/pixealed/go-pxl/ioutil"
)

const (
	// maxBundleEntrySize bounds decompressed entry sizes (4GB).
	maxBundleEntrySize uint64 = 4 * 1024 * 1024 * 1024
	// maxBundleEntryCount bounds the archive entry count.
	maxBundleEntryCount = 16
)

// Extract opens a bundle zip and returns the container entry and the signer
// public key. Exactly one .pxl entry and one public_key.bin entry are
// expected; a missing or duplicated one is rejected. Directories, nested
// paths and other top-level entries are skipped.
func Extract(data []byte) (pxlName string, pxlContent, publicKey []byte, err error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, nil, fmt.Errorf("unable to open the bundle: %w", err)
	}

	// Bound the entry count to prevent resource exhaustion
	if len(zr.File) > maxBundleEntryCount {
		return "", nil, nil, errors.New("too many entries in the bundle")
	}

	for _, f := range zr.File {
		// Ignore directories and nested paths
		if strings.ContainsAny(f.Name, `/\`) || f.FileInfo().IsDir() {
			continue
		}

		switch {
		case f.Name == PublicKeyEntry:
			if publicKey != nil {
				return "", nil, nil, errors.New("duplicate public key entry in the bundle")
			}
			publicKey, err = readEntry(f)
		case strings.HasSuffix(f.Name, ".pxl"):
			if pxlContent != nil {
				return "", nil, nil, errors.New("multiple container entries in the bundle")
			}
			pxlName = f.Name
			pxlContent, err = readEntry(f)
		default:
			// Foreign entries are tolerated and skipped
		}
		if err != nil {
			return "", nil, nil, err
		}
	}

	if pxlContent == nil {
		return "", nil, nil, errors.New("no container entry in the bundle")
	}
	if publicKey == nil {
		return "", nil, nil, errors.New("no public key entry in the bundle")
	}

	return pxlName, pxlContent, publicKey, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open the %q archive entry: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	var buf bytes.Buffer
	if _, err := ioutil.LimitCopy(&buf, rc, maxBundleEntrySize); err != nil {
		return nil, fmt.Errorf("unable to read the %q archive entry: %w", f.Name, err)
	}

	return buf.Bytes(), nil
}
