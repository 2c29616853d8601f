package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		assert.Len(t, handler.GetRecords(), 2)
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelWarn), 1)
		assert.Equal(t, 4, handler.Count())
	})

	t.Run("child loggers share the store and keep attrs", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		child := logger.With(slog.String("stage", "conditions"))
		child.Info("stage done", slog.Int("rows", 4))

		require.Equal(t, 1, handler.Count())
		AssertLogAttr(t, handler, "stage", "conditions")
		AssertLogAttr(t, handler, "rows", int64(4))
	})

	t.Run("assertion helpers", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("important message", slog.String("component", "test"))

		AssertLogContains(t, handler, slog.LevelInfo, "important")
		AssertLogAttr(t, handler, "component", "test")
		AssertNoWarnings(t, handler)
	})

	t.Run("thread safety", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				logger.Info("concurrent log", slog.Int("goroutine", n))
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 10, handler.Count())
	})
}

func TestWriteStimulusTree(t *testing.T) {
	root := t.TempDir()
	WriteStimulusTree(t, root, map[string]Experiment{
		"exp1": {Contexts: []string{"a.wav"}, Targets: []string{"x.wav", "y.wav"}},
		"exp2": {Contexts: []string{"b.wav"}},
	})

	assert.FileExists(t, filepath.Join(root, "exp1", "contexts", "a.wav"))
	assert.FileExists(t, filepath.Join(root, "exp1", "targets", "y.wav"))
	assert.FileExists(t, filepath.Join(root, "exp2", "contexts", "b.wav"))
	assert.NoDirExists(t, filepath.Join(root, "exp2", "targets"))
}

func TestWriteResponseLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "p01.csv")
	WriteResponseLog(t, path, ResponseLogHeader, [][]string{
		ResponseRow("1", "c.wav", "t.wav", "4", "1.2", "p01", "2024-05-01"),
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "exp_no,context,probe")
	assert.Contains(t, string(data), "1,c.wav,t.wav,4,1.2,0,p01,001,2024-05-01,60.0")
}
