package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "keyprep/internal/errors"
)

func createFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("test content"), 0644))
	}
}

func TestNewDiscovery(t *testing.T) {
	discovery := NewDiscovery("/test/base")

	assert.NotNil(t, discovery)
	assert.Equal(t, "/test/base", discovery.basePath)
}

func TestListFiles(t *testing.T) {
	tests := []struct {
		name       string
		files      []string
		dirs       []string
		extensions []string
		expected   []string
	}{
		{
			name:       "sorted by path regardless of creation order",
			files:      []string{"c.wav", "a.wav", "b.wav"},
			extensions: []string{".wav"},
			expected:   []string{"a.wav", "b.wav", "c.wav"},
		},
		{
			name:       "extension filter is case-insensitive",
			files:      []string{"x.WAV", "y.wav", "notes.txt"},
			extensions: []string{".wav"},
			expected:   []string{"x.WAV", "y.wav"},
		},
		{
			name:       "empty filter accepts everything",
			files:      []string{"b.aiff", "a.wav"},
			extensions: nil,
			expected:   []string{"a.wav", "b.aiff"},
		},
		{
			name:       "hidden files and subdirectories are skipped",
			files:      []string{".DS_Store", "tone.wav"},
			dirs:       []string{"nested.wav"},
			extensions: nil,
			expected:   []string{"tone.wav"},
		},
		{
			name:       "empty directory",
			extensions: []string{".wav"},
			expected:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			dir := filepath.Join(tmpDir, "contexts")
			createFiles(t, dir, tt.files...)
			for _, d := range tt.dirs {
				require.NoError(t, os.MkdirAll(filepath.Join(dir, d), 0755))
			}

			files, err := NewDiscovery(tmpDir).ListFiles("contexts", tt.extensions)
			require.NoError(t, err)

			var names []string
			for _, f := range files {
				names = append(names, f.Name)
				assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
				assert.Greater(t, f.Size, int64(0))
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestListFiles_IgnoresModTime(t *testing.T) {
	dir := t.TempDir()
	createFiles(t, dir, "b.wav", "a.wav")

	// Make the lexically later file older.
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "b.wav"), old, old))

	files, err := NewDiscovery("").ListFiles(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.wav"), filepath.Join(dir, "b.wav")}, Paths(files))
}

func TestListFiles_MissingDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	files, err := NewDiscovery(tmpDir).ListFiles("absent", nil)
	require.Error(t, err)
	assert.Nil(t, files)
	assert.ErrorIs(t, err, apperrors.ErrMissingDirectory)
	assert.ErrorIs(t, err, os.ErrNotExist)

	path, ok := apperrors.ContextValue(err, "path")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(tmpDir, "absent"), path)
}

func TestListFiles_NotADirectory(t *testing.T) {
	tmpDir := t.TempDir()
	createFiles(t, tmpDir, "plain.txt")

	_, err := NewDiscovery(tmpDir).ListFiles("plain.txt", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestFindCSVFiles(t *testing.T) {
	tmpDir := t.TempDir()
	createFiles(t, tmpDir, "p02.csv", "p01.CSV", "readme.md")

	files, err := NewDiscovery("").FindCSVFiles(tmpDir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "p01.CSV", files[0].Name)
	assert.Equal(t, "p02.csv", files[1].Name)
}

func TestFindFilesByPattern(t *testing.T) {
	tmpDir := t.TempDir()
	createFiles(t, tmpDir, "s2_exp1.csv", "s1_exp1.csv", "s1_exp2.csv", "s1_exp1.log")

	t.Run("matches sorted", func(t *testing.T) {
		files, err := NewDiscovery(tmpDir).FindFilesByPattern(".", "*_exp1.csv")
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(tmpDir, "s1_exp1.csv"),
			filepath.Join(tmpDir, "s2_exp1.csv"),
		}, Paths(files))
	})

	t.Run("no matches", func(t *testing.T) {
		files, err := NewDiscovery(tmpDir).FindFilesByPattern(".", "*.xlsx")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := NewDiscovery(tmpDir).FindFilesByPattern(".", "[")
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := NewDiscovery(tmpDir).FindFilesByPattern("absent", "*.csv")
		assert.ErrorIs(t, err, apperrors.ErrMissingDirectory)
	})
}
