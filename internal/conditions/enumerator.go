package conditions

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	apperrors "keyprep/internal/errors"
	"keyprep/internal/files"
	"keyprep/pkg/contracts/domain"
)

const (
	// ContextsDir holds the context stimuli of an experiment
	ContextsDir = "contexts"
	// TargetsDir holds the target stimuli of an experiment
	TargetsDir = "targets"
)

// Enumerator builds trial manifests from a stimulus tree laid out as
// <root>/<experiment>/{contexts,targets}/
type Enumerator struct {
	discovery  *files.Discovery
	extensions []string
	logger     *slog.Logger
}

// NewEnumerator creates an enumerator. extensions filters stimulus files by
// suffix; nil accepts every regular file.
func NewEnumerator(discovery *files.Discovery, extensions []string, logger *slog.Logger) *Enumerator {
	if discovery == nil {
		discovery = files.NewDiscovery("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Enumerator{
		discovery:  discovery,
		extensions: extensions,
		logger:     logger,
	}
}

// EnumerateConditions pairs every context with every target of each experiment,
// in experiment order then sorted context then sorted target. An experiment
// missing its contexts or targets directory contributes no conditions and does
// not stop the others.
func (e *Enumerator) EnumerateConditions(ctx context.Context, experimentIDs []string, stimulusRoot string) ([]domain.Condition, error) {
	var out []domain.Condition

	for _, exp := range experimentIDs {
		contexts, err := e.listStimuli(ctx, filepath.Join(stimulusRoot, exp, ContextsDir), exp)
		if err != nil {
			return nil, err
		}
		targets, err := e.listStimuli(ctx, filepath.Join(stimulusRoot, exp, TargetsDir), exp)
		if err != nil {
			return nil, err
		}

		for _, c := range contexts {
			for _, t := range targets {
				out = append(out, domain.Condition{Experiment: exp, Context: c, Target: t})
			}
		}

		e.logger.InfoContext(ctx, "Enumerated experiment conditions",
			slog.String("experiment", exp),
			slog.Int("contexts", len(contexts)),
			slog.Int("targets", len(targets)),
			slog.Int("conditions", len(contexts)*len(targets)))
	}

	return out, nil
}

// listStimuli returns the sorted stimulus paths in dir. A missing directory is
// logged and treated as empty.
func (e *Enumerator) listStimuli(ctx context.Context, dir, experiment string) ([]string, error) {
	found, err := e.discovery.ListFiles(dir, e.extensions)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrTypeMissingDirectory) {
			e.logger.WarnContext(ctx, "Stimulus directory missing, experiment yields no conditions",
				slog.String("experiment", experiment),
				slog.String("path", dir))
			return nil, nil
		}
		return nil, fmt.Errorf("experiment %s: %w", experiment, err)
	}
	return files.Paths(found), nil
}

// practicePairs are the fixed practice trials shown before each session
var practicePairs = []domain.PracticePair{
	{Context: "stimuli/practice/contexts/practice_context_1.wav", Target: "stimuli/practice/targets/practice_target_1.wav"},
	{Context: "stimuli/practice/contexts/practice_context_2.wav", Target: "stimuli/practice/targets/practice_target_2.wav"},
}

// PracticeManifest returns the hardcoded practice trials. Each call returns a
// fresh slice.
func PracticeManifest() []domain.PracticePair {
	out := make([]domain.PracticePair, len(practicePairs))
	copy(out, practicePairs)
	return out
}
