package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "keyprep/internal/errors"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}

// ListFiles lists the regular, non-hidden files in dir whose extension is in
// extensions (case-insensitive; empty accepts all). Results are sorted by path
// so listings are reproducible across filesystems. A missing directory yields
// a MISSING_DIRECTORY error.
func (d *Discovery) ListFiles(dir string, extensions []string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewMissingDirectoryError(fullPath, err)
		}
		return nil, apperrors.NewStorageError("failed to read directory", err).
			WithContext("path", fullPath)
	}

	var files []FileInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !hasExtension(name, extensions) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	SortByPath(files)
	return files, nil
}

// FindCSVFiles finds all CSV files in the specified directory, sorted by path
func (d *Discovery) FindCSVFiles(dir string) ([]FileInfo, error) {
	return d.ListFiles(dir, []string{".csv"})
}

// FindFilesByPattern finds files matching a glob pattern, sorted by path
func (d *Discovery) FindFilesByPattern(dir string, pattern string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	if _, err := os.Stat(fullPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewMissingDirectoryError(fullPath, err)
		}
		return nil, apperrors.NewStorageError("failed to stat directory", err).
			WithContext("path", fullPath)
	}

	matches, err := filepath.Glob(filepath.Join(fullPath, pattern))
	if err != nil {
		return nil, apperrors.NewInvalidArgumentError("pattern", pattern, fmt.Sprintf("invalid glob: %v", err))
	}

	var files []FileInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, FileInfo{
			Path:    match,
			Name:    filepath.Base(match),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	SortByPath(files)
	return files, nil
}

// SortByPath orders files by their path string
func SortByPath(files []FileInfo) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
}

// Paths extracts the path of every file, preserving order
func Paths(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func hasExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
