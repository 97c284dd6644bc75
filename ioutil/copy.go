// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

// Package ioutil provides hardened I/O helpers.
package ioutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrTruncatedCopy is raised when the copy is larger than expected.
var ErrTruncatedCopy = errors.New("truncated copy due to too large input")

// LimitCopy uses a buffered CopyN and a hardlimit to stop read from the reader
// when the maxSize amount of data has been written to the given writer and
// raise an error.
func LimitCopy(dst io.Writer, src io.Reader, maxSize uint64) (uint64, error) {
	writtenLength := uint64(0)

	// Check arguments
	if dst == nil {
		return 0, errors.New("writer must not be nil")
	}
	if src == nil {
		return 0, errors.New("reader must not be nil")
	}

	// Retrieve system pagesize for optimized buffer length
	pageSize := os.Getpagesize()

	// Chunked read with hard limit to reduce/prevent memory bomb.
	for {
		written, err := io.CopyN(dst, src, int64(pageSize))
		if err != nil {
			if errors.Is(err, io.EOF) {
				writtenLength += uint64(written)
				break
			}
			return writtenLength, fmt.Errorf("unable to stream source data to destination: %w", err)
		}

		// Add to length
		writtenLength += uint64(written)

		// Stop reading as soon as the limit is exceeded
		if writtenLength > maxSize {
			return writtenLength, ErrTruncatedCopy
		}
	}

	// Check max size
	if writtenLength > maxSize {
		return writtenLength, ErrTruncatedCopy
	}

	// No error
	return writtenLength, nil
}

// ReadFileLimit reads the named file entirely in memory while enforcing the
// given hard size limit.
func ReadFileLimit(name string, maxSize uint64) ([]byte, error) {
	// Check arguments
	if name == "" {
		return nil, errors.New("file name must not be blank")
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unable to open %q: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	if _, err := LimitCopy(&buf, f, maxSize); err != nil {
		return nil, fmt.Errorf("unable to read %q: %w", name, err)
	}

	return buf.Bytes(), nil
}
