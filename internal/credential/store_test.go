package credential

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	var buf bytes.Buffer
	s := Store{
		Path:   filepath.Join(t.TempDir(), "token"),
		Logger: slog.New(slog.NewTextHandler(&buf, nil)),
	}

	assert.Empty(t, s.Load())
	assert.Empty(t, buf.String(), "missing file should not warn")
}

func TestLoad_TrimsContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  abc123 \n"), 0o600))

	assert.Equal(t, "abc123", Store{Path: path}.Load())
}

func TestLoad_DirectoryWarnsAndReturnsEmpty(t *testing.T) {
	var buf bytes.Buffer
	s := Store{Path: t.TempDir(), Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	assert.Empty(t, s.Load())
	assert.Contains(t, buf.String(), "read credential")
}

func TestSave_WritesTrimmedTokenPrivately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	s := Store{Path: path}

	s.Save("  secret\n")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", string(data))
	assert.Equal(t, "secret", s.Load())

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("old-token-that-is-longer"), 0o644))

	Store{Path: path}.Save("new")

	assert.Equal(t, "new", Store{Path: path}.Load())
}

func TestSave_FailureIsLoggedNotReturned(t *testing.T) {
	var buf bytes.Buffer
	s := Store{Path: t.TempDir(), Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	s.Save("tok")

	assert.Contains(t, buf.String(), "save credential")
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	Store{}.Save("tok")

	data, err := os.ReadFile(filepath.Join(dir, DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, "tok", string(data))
}
