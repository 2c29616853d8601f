package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"keyprep/internal/conditions"
	"keyprep/internal/config"
	"keyprep/internal/dataprocessing"
	apperrors "keyprep/internal/errors"
	"keyprep/internal/exporter"
	"keyprep/internal/files"
	"keyprep/internal/infrastructure"
	"keyprep/internal/tonality"
	"keyprep/internal/validation"
	"keyprep/pkg/contracts/domain"
)

// Stage is one step of the preparation pipeline
type Stage string

const (
	StageCorrelation Stage = "correlation"
	StageConditions  Stage = "conditions"
	StagePractice    Stage = "practice"
	StageResponses   Stage = "responses"
)

// AllStages lists every stage in execution order
var AllStages = []Stage{StageCorrelation, StageConditions, StagePractice, StageResponses}

// ParseStages parses "all" or a comma-separated list of stage names.
// The result is deduplicated and in execution order.
func ParseStages(s string) ([]Stage, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "all" {
		return append([]Stage(nil), AllStages...), nil
	}

	requested := make(map[Stage]bool)
	for _, part := range strings.Split(s, ",") {
		name := Stage(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if !name.Valid() {
			return nil, apperrors.NewInvalidArgumentError("stage", string(name),
				"unknown stage, expected one of correlation, conditions, practice, responses")
		}
		requested[name] = true
	}

	return orderStages(requested), nil
}

// Valid reports whether s names a known stage
func (s Stage) Valid() bool {
	for _, known := range AllStages {
		if s == known {
			return true
		}
	}
	return false
}

func orderStages(requested map[Stage]bool) []Stage {
	var out []Stage
	for _, s := range AllStages {
		if requested[s] {
			out = append(out, s)
		}
	}
	return out
}

// StageResult summarizes one completed stage
type StageResult struct {
	Stage     Stage
	Artifacts []string
	Items     int
	Duration  time.Duration
}

// Result summarizes a pipeline run
type Result struct {
	RunID  string
	Stages []StageResult
}

// App wires the pipeline components together
type App struct {
	cfg        *config.Config
	paths      *config.Paths
	logger     *slog.Logger
	tracing    *infrastructure.Tracing
	discovery  *files.Discovery
	validator  *validation.FileValidator
	enumerator *conditions.Enumerator
	loader     *dataprocessing.ResponseLoader
	workbooks  *exporter.WorkbookWriter
	csv        *exporter.CSVWriter
}

// New creates an App from a validated configuration. A nil logger uses
// slog.Default(); nil tracing disables spans.
func New(cfg *config.Config, logger *slog.Logger, tracing *infrastructure.Tracing) (*App, error) {
	if cfg == nil {
		return nil, apperrors.NewInvalidArgumentError("config", nil, "configuration is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if tracing == nil {
		var err error
		tracing, err = infrastructure.InitializeTracing(config.TracingConfig{}, nil, logger)
		if err != nil {
			return nil, err
		}
	}

	paths, err := cfg.GetPaths()
	if err != nil {
		return nil, apperrors.NewConfigError("failed to resolve paths", err)
	}

	discovery := files.NewDiscovery(paths.BaseDir)

	return &App{
		cfg:        cfg,
		paths:      paths,
		logger:     logger,
		tracing:    tracing,
		discovery:  discovery,
		validator:  validation.NewFileValidator(logger),
		enumerator: conditions.NewEnumerator(discovery, cfg.Stimuli.Extensions, logger),
		loader:     dataprocessing.NewResponseLoader(logger),
		workbooks:  exporter.NewWorkbookWriter(paths.OutputDir, logger),
		csv:        exporter.NewCSVWriter(paths.OutputDir, logger),
	}, nil
}

// Paths returns the resolved locations used by the app
func (a *App) Paths() *config.Paths {
	return a.paths
}

// Run executes the given stages in execution order, or every stage when none
// are given. The first failing stage stops the run.
func (a *App) Run(ctx context.Context, stages ...Stage) (*Result, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	runID := infrastructure.GetRunID(ctx)

	requested := make(map[Stage]bool)
	for _, s := range stages {
		if !s.Valid() {
			return nil, apperrors.NewInvalidArgumentError("stage", string(s), "unknown stage")
		}
		requested[s] = true
	}
	if len(requested) == 0 {
		for _, s := range AllStages {
			requested[s] = true
		}
	}
	ordered := orderStages(requested)

	ctx, span := a.tracing.StartSpan(ctx, "keyprep.run")
	result := &Result{RunID: runID}
	err := a.run(ctx, ordered, result)
	infrastructure.EndSpan(span, err)
	if err != nil {
		return result, err
	}

	a.logger.InfoContext(ctx, "Run completed",
		slog.Int("stages", len(result.Stages)))
	return result, nil
}

func (a *App) run(ctx context.Context, stages []Stage, result *Result) error {
	a.paths.LogPathResolution(a.logger)

	if err := a.validator.ValidateOutputDirectory(a.paths.OutputDir); err != nil {
		return err
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}

		sr, err := a.runStage(ctx, stage)
		if err != nil {
			return fmt.Errorf("stage %s: %w", stage, err)
		}
		result.Stages = append(result.Stages, sr)
	}
	return nil
}

func (a *App) runStage(ctx context.Context, stage Stage) (StageResult, error) {
	ctx, span := a.tracing.StartSpan(ctx, "keyprep.stage."+string(stage),
		attribute.String("stage", string(stage)))

	a.logger.InfoContext(ctx, "Stage started", slog.String("stage", string(stage)))
	start := time.Now()

	var (
		sr  StageResult
		err error
	)
	switch stage {
	case StageCorrelation:
		sr, err = a.runCorrelation(ctx)
	case StageConditions:
		sr, err = a.runConditions(ctx)
	case StagePractice:
		sr, err = a.runPractice(ctx)
	case StageResponses:
		sr, err = a.runResponses(ctx)
	}
	sr.Stage = stage
	sr.Duration = time.Since(start)

	span.SetAttributes(
		attribute.Int("items", sr.Items),
		attribute.StringSlice("artifacts", sr.Artifacts))
	infrastructure.EndSpan(span, err)

	if err != nil {
		a.logger.ErrorContext(ctx, "Stage failed",
			slog.String("stage", string(stage)),
			slog.String("error", err.Error()))
		return sr, err
	}

	a.logger.InfoContext(ctx, "Stage completed",
		slog.String("stage", string(stage)),
		slog.Int("items", sr.Items),
		slog.Any("artifacts", sr.Artifacts),
		slog.Duration("duration", sr.Duration))
	return sr, nil
}

// runCorrelation writes the 24x24 key profile matrix and the scale fit table
func (a *App) runCorrelation(ctx context.Context) (StageResult, error) {
	profiles := tonality.AllProfiles()

	matrix, err := tonality.CorrelationMatrix(profiles)
	if err != nil {
		return StageResult{}, err
	}
	if err := a.workbooks.ExportCorrelationMatrix(a.paths.CorrelationXLSX, matrix); err != nil {
		return StageResult{}, err
	}

	fit, err := tonality.FitScales(tonality.ScaleVectors(), profiles)
	if err != nil {
		return StageResult{}, err
	}
	for _, name := range fit.Skipped {
		a.logger.WarnContext(ctx, "Scale has zero variance, no correlation defined",
			slog.String("scale", name))
	}
	if err := a.workbooks.ExportScaleFit(a.paths.ScaleFitXLSX, fit); err != nil {
		return StageResult{}, err
	}

	return StageResult{
		Artifacts: []string{a.paths.CorrelationXLSX, a.paths.ScaleFitXLSX},
		Items:     matrix.Size(),
	}, nil
}

// runConditions writes the trial manifest for every configured experiment
func (a *App) runConditions(ctx context.Context) (StageResult, error) {
	conds, err := a.enumerator.EnumerateConditions(ctx, a.cfg.Stimuli.Experiments, a.paths.StimulusRoot)
	if err != nil {
		return StageResult{}, err
	}
	if len(conds) == 0 {
		a.logger.WarnContext(ctx, "No conditions generated",
			slog.String("stimulus_root", a.paths.StimulusRoot),
			slog.Any("experiments", a.cfg.Stimuli.Experiments))
	}

	if err := a.workbooks.ExportConditions(a.paths.ConditionsXLSX, conds); err != nil {
		return StageResult{}, err
	}

	return StageResult{Artifacts: []string{a.paths.ConditionsXLSX}, Items: len(conds)}, nil
}

func (a *App) runPractice(_ context.Context) (StageResult, error) {
	pairs := conditions.PracticeManifest()
	if err := a.workbooks.ExportPracticeManifest(a.paths.PracticeXLSX, pairs); err != nil {
		return StageResult{}, err
	}
	return StageResult{Artifacts: []string{a.paths.PracticeXLSX}, Items: len(pairs)}, nil
}

// runResponses combines the participant logs and writes the mean ratings
func (a *App) runResponses(ctx context.Context) (StageResult, error) {
	logs, err := a.responseFiles()
	if err != nil {
		return StageResult{}, err
	}

	records, err := a.loader.Load(ctx, logs, a.cfg.Responses.DropRows)
	if err != nil {
		return StageResult{}, err
	}
	records = a.filterExperiments(records)

	a.logger.InfoContext(ctx, "Responses loaded",
		slog.Int("files", len(logs)),
		slog.Int("trials", len(records)),
		slog.Int("participants", len(dataprocessing.Participants(records))))

	if err := a.csv.ExportResponses(a.paths.CombinedCSV, records); err != nil {
		return StageResult{}, err
	}

	means := dataprocessing.MeanRatings(records)
	if err := a.workbooks.ExportMeanRatings(a.paths.MeanRatingsXLSX, means); err != nil {
		return StageResult{}, err
	}

	return StageResult{
		Artifacts: []string{a.paths.CombinedCSV, a.paths.MeanRatingsXLSX},
		Items:     len(records),
	}, nil
}

// responseFiles returns the logs to load. An explicit file list is used in
// the order given; otherwise the directory is globbed and sorted by path.
func (a *App) responseFiles() ([]string, error) {
	dir := a.paths.ResponsesDir

	var candidates []string
	if len(a.cfg.Responses.Files) > 0 {
		for _, f := range a.cfg.Responses.Files {
			if !filepath.IsAbs(f) {
				f = filepath.Join(dir, f)
			}
			candidates = append(candidates, f)
		}
		for _, f := range candidates {
			if err := a.validator.ValidateResponseFile(f); err != nil {
				return nil, err
			}
		}
		return candidates, nil
	}

	if err := a.validator.ValidateInputDirectory(dir, a.cfg.Responses.Pattern); err != nil {
		return nil, err
	}
	found, err := a.discovery.FindFilesByPattern(dir, a.cfg.Responses.Pattern)
	if err != nil {
		return nil, err
	}
	return a.validator.FilterResponseFiles(files.Paths(found)), nil
}

func (a *App) filterExperiments(records []domain.TrialRecord) []domain.TrialRecord {
	if len(a.cfg.Responses.Experiments) == 0 {
		return records
	}

	var out []domain.TrialRecord
	for _, exp := range a.cfg.Responses.Experiments {
		out = append(out, dataprocessing.FilterByExperiment(records, exp)...)
	}
	return out
}
