package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the resolved application paths.
// This is the single source of truth for every file the pipeline reads or writes.
type Paths struct {
	BaseDir      string
	StimulusRoot string
	ResponsesDir string
	OutputDir    string
	LogsDir      string

	// Artifacts written by the pipeline
	CorrelationXLSX string
	ConditionsXLSX  string
	PracticeXLSX    string
	ScaleFitXLSX    string
	MeanRatingsXLSX string
	CombinedCSV     string
}

// GetPaths resolves every configured location to an absolute path.
// Relative entries are joined onto Paths.BaseDir, which itself defaults to
// the working directory.
func (c *Config) GetPaths() (*Paths, error) {
	base := c.Paths.BaseDir
	if base == "" {
		base = "."
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory %s: %w", c.Paths.BaseDir, err)
	}

	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(base, p)
	}

	outputDir := resolve(c.Paths.OutputDir)
	return &Paths{
		BaseDir:      base,
		StimulusRoot: resolve(c.Stimuli.Root),
		ResponsesDir: resolve(c.Responses.Dir),
		OutputDir:    outputDir,
		LogsDir:      resolve(c.Paths.LogsDir),

		CorrelationXLSX: outputPath(outputDir, c.Export.CorrelationFile),
		ConditionsXLSX:  outputPath(outputDir, c.Export.ConditionsFile),
		PracticeXLSX:    outputPath(outputDir, c.Export.PracticeFile),
		ScaleFitXLSX:    outputPath(outputDir, c.Export.ScaleFitFile),
		MeanRatingsXLSX: outputPath(outputDir, c.Export.MeanRatingsFile),
		CombinedCSV:     outputPath(outputDir, c.Export.CombinedFile),
	}, nil
}

func outputPath(outputDir, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(outputDir, name)
}

// EnsureDirectories creates the directories the pipeline writes into.
// Input directories are never created.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.OutputDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		logger.Debug("Ensured directory exists",
			slog.String("directory", dir))
	}

	return nil
}

// GetOutputPath returns the path for an artifact in the output directory
func (p *Paths) GetOutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// ExperimentDir returns the stimulus directory of one experiment
func (p *Paths) ExperimentDir(experiment string) string {
	return filepath.Join(p.StimulusRoot, experiment)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("inputs",
			slog.String("base", p.BaseDir),
			slog.String("stimuli", p.StimulusRoot),
			slog.Bool("stimuli_exists", FileExists(p.StimulusRoot)),
			slog.String("responses", p.ResponsesDir),
			slog.Bool("responses_exists", FileExists(p.ResponsesDir)),
		),
		slog.Group("outputs",
			slog.String("output", p.OutputDir),
			slog.String("logs", p.LogsDir),
			slog.String("correlation", p.CorrelationXLSX),
			slog.String("conditions", p.ConditionsXLSX),
			slog.String("practice", p.PracticeXLSX),
			slog.String("scale_fit", p.ScaleFitXLSX),
			slog.String("mean_ratings", p.MeanRatingsXLSX),
			slog.String("combined", p.CombinedCSV),
		))
}
