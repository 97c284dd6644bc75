// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

package ioutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLimitCopy(t *testing.T) {
	t.Parallel()

	t.Run("below the limit", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		n, err := LimitCopy(&out, strings.NewReader("content"), 1024)
		require.NoError(t, err)
		require.Equal(t, uint64(7), n)
		require.Equal(t, "content", out.String())
	})

	t.Run("above the limit", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		_, err := LimitCopy(&out, bytes.NewReader(make([]byte, 64*1024)), 1024)
		require.ErrorIs(t, err, ErrTruncatedCopy)
	})

	t.Run("nil writer", func(t *testing.T) {
		t.Parallel()

		_, err := LimitCopy(nil, strings.NewReader("content"), 1024)
		require.Error(t, err)
	})

	t.Run("nil reader", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		_, err := LimitCopy(&out, nil, 1024)
		require.Error(t, err)
	})
}

func TestReadFileLimit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("reads the whole file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "data.bin")
		require.NoError(t, os.WriteFile(path, []byte("file content"), 0o644))

		out, err := ReadFileLimit(path, 1024)
		require.NoError(t, err)
		require.Equal(t, []byte("file content"), out)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := ReadFileLimit(filepath.Join(dir, "missing.bin"), 1024)
		require.Error(t, err)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(dir, "large.bin")
		require.NoError(t, os.WriteFile(path, make([]byte, 8192), 0o644))

		_, err := ReadFileLimit(path, 1024)
		require.ErrorIs(t, err, ErrTruncatedCopy)
	})
}
