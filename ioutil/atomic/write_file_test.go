// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

package atomic

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	t.Parallel()

	t.Run("creates a new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "target.bin")
		require.NoError(t, WriteFile(path, strings.NewReader("content")))

		out, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "content", string(out))
	})

	t.Run("replaces an existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "target.bin")
		require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

		require.NoError(t, WriteFile(path, strings.NewReader("replacement")))

		out, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "replacement", string(out))
	})

	t.Run("preserves the target file mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "target.bin")
		require.NoError(t, os.WriteFile(path, []byte("previous"), 0o600))

		require.NoError(t, WriteFile(path, strings.NewReader("replacement")))

		fi, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "target.bin")
		require.Error(t, WriteFile(path, strings.NewReader("content")))
	})
}
