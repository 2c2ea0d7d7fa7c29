package options_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantopts/pkg/options"
)

type QueueOptions struct {
	Workers int    `yaml:"workers"`
	Queue   string `yaml:"queue"`
}

func writeOptionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestYAMLFactory(t *testing.T) {
	t.Parallel()

	const doc = `
default:
  workers: 4
  queue: standard
bulk:
  workers: 32
  queue: bulk
`

	t.Run("default instance reads the default section", func(t *testing.T) {
		t.Parallel()

		factory := options.YAMLFactory[QueueOptions](writeOptionsFile(t, doc))
		o, err := factory(context.Background(), options.DefaultName)
		require.NoError(t, err)
		assert.Equal(t, 4, o.Workers)
		assert.Equal(t, "standard", o.Queue)
	})

	t.Run("named instance reads its own section", func(t *testing.T) {
		t.Parallel()

		factory := options.YAMLFactory[QueueOptions](writeOptionsFile(t, doc))
		o, err := factory(context.Background(), "bulk")
		require.NoError(t, err)
		assert.Equal(t, 32, o.Workers)
		assert.Equal(t, "bulk", o.Queue)
	})

	t.Run("missing section is an error", func(t *testing.T) {
		t.Parallel()

		factory := options.YAMLFactory[QueueOptions](writeOptionsFile(t, doc))
		_, err := factory(context.Background(), "missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"missing"`)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		t.Parallel()

		factory := options.YAMLFactory[QueueOptions](filepath.Join(t.TempDir(), "absent.yaml"))
		_, err := factory(context.Background(), options.DefaultName)
		require.Error(t, err)
	})

	t.Run("malformed document is an error", func(t *testing.T) {
		t.Parallel()

		factory := options.YAMLFactory[QueueOptions](writeOptionsFile(t, "default: [unclosed"))
		_, err := factory(context.Background(), options.DefaultName)
		require.Error(t, err)
	})

	t.Run("returns a fresh instance on every call", func(t *testing.T) {
		t.Parallel()

		factory := options.YAMLFactory[QueueOptions](writeOptionsFile(t, doc))
		first, err := factory(context.Background(), options.DefaultName)
		require.NoError(t, err)
		second, err := factory(context.Background(), options.DefaultName)
		require.NoError(t, err)
		assert.NotSame(t, first, second)
	})
}
