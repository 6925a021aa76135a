// internal/observability/logger_test.go
package observability

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/framepoint/internal/config"
)

func TestInitialize(t *testing.T) {
	t.Run("ConsoleWithColors", func(t *testing.T) {
		ResetForTest()
		t.Cleanup(ResetForTest)
		buf := &zaptest.Buffer{}

		Initialize(config.LoggerConfig{
			Level:       "debug",
			Format:      "console",
			ServiceName: "framepoint",
			Colors:      config.ColorConfig{Info: "green"},
		}, buf)
		GetLogger().Named("dispatch").Info("Dispatch request completed.")

		out := buf.String()
		assert.Contains(t, out, ansiColors["green"]+"INFO"+colorReset)
		assert.Contains(t, out, "framepoint.dispatch.")
		assert.Contains(t, out, "Dispatch request completed.")
	})

	t.Run("UncolouredLevel", func(t *testing.T) {
		ResetForTest()
		t.Cleanup(ResetForTest)
		buf := &zaptest.Buffer{}

		Initialize(config.LoggerConfig{Level: "info", Format: "console"}, buf)
		GetLogger().Warn("plain")

		assert.Contains(t, buf.String(), "WARN")
		assert.NotContains(t, buf.String(), colorReset)
	})

	t.Run("JSON", func(t *testing.T) {
		ResetForTest()
		t.Cleanup(ResetForTest)
		buf := &zaptest.Buffer{}

		Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "JSONTest"}, buf)
		GetLogger().Warn("This is a JSON message.", zap.String("key", "value"))

		lines := buf.Lines()
		require.Len(t, lines, 1)
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, "JSONTest", entry["logger"])
		assert.Equal(t, "This is a JSON message.", entry["msg"])
		assert.Equal(t, "value", entry["key"])
	})

	t.Run("LevelFiltering", func(t *testing.T) {
		ResetForTest()
		t.Cleanup(ResetForTest)
		buf := &zaptest.Buffer{}

		Initialize(config.LoggerConfig{Level: "warn", Format: "json"}, buf)
		GetLogger().Info("dropped")
		GetLogger().Error("kept")

		require.Len(t, buf.Lines(), 1)
		assert.Contains(t, buf.Lines()[0], "kept")
	})

	t.Run("InvalidLevelFallsBackToInfo", func(t *testing.T) {
		ResetForTest()
		t.Cleanup(ResetForTest)
		buf := &zaptest.Buffer{}

		Initialize(config.LoggerConfig{Level: "loud", Format: "json"}, buf)
		GetLogger().Debug("dropped")
		GetLogger().Info("kept")

		require.Len(t, buf.Lines(), 1)
	})

	t.Run("WritesLogFile", func(t *testing.T) {
		ResetForTest()
		t.Cleanup(ResetForTest)
		path := filepath.Join(t.TempDir(), "framepoint.log")

		Initialize(config.LoggerConfig{
			Level:   "debug",
			Format:  "console",
			LogFile: path,
			MaxSize: 1,
		}, &zaptest.Buffer{})
		GetLogger().Error("This should go to the file.")
		Sync()

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"msg":"This should go to the file."`)
	})

	t.Run("OnlyOnce", func(t *testing.T) {
		ResetForTest()
		t.Cleanup(ResetForTest)
		buf := &zaptest.Buffer{}

		Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "First"}, buf)
		first := GetLogger()
		Initialize(config.LoggerConfig{Level: "debug", Format: "json", ServiceName: "Second"}, buf)
		second := GetLogger()

		assert.Same(t, first, second)
		second.Info("test")
		assert.Contains(t, buf.String(), "First")
		assert.NotContains(t, buf.String(), "Second")
	})
}

func TestGetLogger(t *testing.T) {
	t.Run("FallbackBeforeInitialization", func(t *testing.T) {
		ResetForTest()
		assert.NotNil(t, GetLogger())
	})

	t.Run("GlobalAfterInitialization", func(t *testing.T) {
		ResetForTest()
		t.Cleanup(ResetForTest)
		Initialize(config.LoggerConfig{Level: "info"}, &zaptest.Buffer{})
		assert.Same(t, globalLogger.Load(), GetLogger())
	})
}

func TestNew_DoesNotTouchGlobal(t *testing.T) {
	ResetForTest()
	buf := &zaptest.Buffer{}
	logger := New(config.LoggerConfig{Level: "info", Format: "json"}, buf)
	logger.Info("local")

	assert.Nil(t, globalLogger.Load())
	assert.Len(t, buf.Lines(), 1)
}
