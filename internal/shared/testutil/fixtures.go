package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

// ResponseLogHeader is the column layout written by the presentation tool,
// including columns the loader projects away.
var ResponseLogHeader = []string{
	"exp_no", "context", "probe", "sld_rating.response", "sld_rating.rt",
	"trials.thisN", "participant", "session", "date", "frameRate",
}

// Experiment lists the stimulus file names of one experiment. A nil slice
// leaves the corresponding directory uncreated.
type Experiment struct {
	Contexts []string
	Targets  []string
}

// WriteStimulusTree creates <root>/<exp>/{contexts,targets}/ with empty files
func WriteStimulusTree(t *testing.T, root string, experiments map[string]Experiment) {
	t.Helper()

	for exp, e := range experiments {
		writeStimuli(t, filepath.Join(root, exp, "contexts"), e.Contexts)
		writeStimuli(t, filepath.Join(root, exp, "targets"), e.Targets)
	}
}

func writeStimuli(t *testing.T, dir string, names []string) {
	t.Helper()
	if names == nil {
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("create %s: %v", dir, err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("RIFF"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// WriteResponseLog writes a CSV log with the given header and rows
func WriteResponseLog(t *testing.T, path string, header []string, rows [][]string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create log dir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write rows: %v", err)
	}
}

// ResponseRow builds a row matching ResponseLogHeader
func ResponseRow(expNo, context, probe, rating, rt, participant, date string) []string {
	return []string{expNo, context, probe, rating, rt, "0", participant, "001", date, "60.0"}
}
