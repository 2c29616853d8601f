package validation

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "keyprep/internal/errors"
)

// ResponseExtensions are the log formats the response loader reads
var ResponseExtensions = []string{".csv", ".xlsx"}

// FileValidator checks pipeline inputs and outputs before a stage touches them
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputDirectory checks that dir exists and is a directory. When
// requiredPattern is set, it reports how many entries match; none matching is
// logged but is not an error.
func (v *FileValidator) ValidateInputDirectory(dir string, requiredPattern string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		v.logger.Error("Input directory does not exist",
			slog.String("directory", dir))
		return apperrors.NewMissingDirectoryError(dir, err)
	}
	if err != nil {
		v.logger.Error("Failed to stat input directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to stat directory", err).
			WithContext("path", dir)
	}
	if !info.IsDir() {
		v.logger.Error("Input path is not a directory",
			slog.String("path", dir))
		return apperrors.NewInvalidArgumentError("directory", dir, "path is not a directory")
	}

	if requiredPattern == "" {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, requiredPattern))
	if err != nil {
		return apperrors.NewInvalidArgumentError("pattern", requiredPattern, "malformed glob pattern")
	}

	if len(matches) == 0 {
		v.logger.Warn("No files matching pattern found",
			slog.String("directory", dir),
			slog.String("pattern", requiredPattern))
		return nil
	}

	v.logger.Info("Input directory validated",
		slog.String("directory", dir),
		slog.Int("files_found", len(matches)),
		slog.String("pattern", requiredPattern))
	return nil
}

// ValidateOutputDirectory ensures dir exists and is writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to create output directory", err).
			WithContext("path", dir)
	}

	probe, err := os.CreateTemp(dir, ".write_test*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("output directory is not writable", err).
			WithContext("path", dir)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateFile checks that path is an existing, readable regular file
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("file is not accessible", err).
			WithContext("path", path)
	}
	if info.IsDir() {
		return apperrors.NewInvalidArgumentError("file", path, "path is a directory, not a file")
	}

	file, err := os.Open(path)
	if err != nil {
		return apperrors.NewStorageError("file is not readable", err).
			WithContext("path", path)
	}
	file.Close()

	return nil
}

// ValidateResponseFile checks that path is a readable response log in a
// supported format. Office lock files (~$name.xlsx) are rejected.
func (v *FileValidator) ValidateResponseFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	supported := false
	for _, e := range ResponseExtensions {
		if ext == e {
			supported = true
			break
		}
	}
	if !supported {
		return apperrors.NewInvalidArgumentError("file", path, "unsupported response log format "+ext)
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		return apperrors.NewInvalidArgumentError("file", path, "temporary office lock file")
	}

	return nil
}

// FilterResponseFiles keeps the paths that pass ValidateResponseFile,
// logging and skipping the rest
func (v *FileValidator) FilterResponseFiles(paths []string) []string {
	var kept []string
	for _, p := range paths {
		if err := v.ValidateResponseFile(p); err != nil {
			v.logger.Warn("Skipping response file",
				slog.String("file", p),
				slog.String("reason", err.Error()))
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
