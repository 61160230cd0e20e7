package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func initTestLogger(t *testing.T, verbose bool) (*bytes.Buffer, string) {
	t.Helper()

	logPath := filepath.Join(t.TempDir(), "logs", "run.log")
	console := &bytes.Buffer{}
	if err := Init(console, logPath, verbose); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(func() {
		Close()
		globalLogger = nil
	})
	return console, logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestLoggerInit(t *testing.T) {
	console, logPath := initTestLogger(t, false)

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatal("Log file was not created")
	}

	Info("Processing sheet %s", "Table 2")

	if !strings.Contains(console.String(), "Processing sheet Table 2") {
		t.Errorf("Console output missing info message: %s", console.String())
	}

	logStr := readLog(t, logPath)
	if !strings.Contains(logStr, "[INFO] Processing sheet Table 2") {
		t.Errorf("Log file missing info entry: %s", logStr)
	}
}

func TestLoggerLevels(t *testing.T) {
	console, logPath := initTestLogger(t, false)

	Debug("Debug message")
	Info("Info message")
	Warn("Warn message")
	Error("Error message")

	logStr := readLog(t, logPath)
	for _, level := range []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"} {
		if !strings.Contains(logStr, level) {
			t.Errorf("Log file missing %s entry", level)
		}
	}

	consoleStr := console.String()
	if strings.Contains(consoleStr, "Debug message") {
		t.Error("Console should not show DEBUG when verbose=false")
	}
	if !strings.Contains(consoleStr, "⚠️  Warn message") {
		t.Errorf("Console missing warn prefix: %s", consoleStr)
	}
	if !strings.Contains(consoleStr, "❌ Error message") {
		t.Errorf("Console missing error prefix: %s", consoleStr)
	}
}

func TestLoggerVerbose(t *testing.T) {
	console, _ := initTestLogger(t, true)

	Debug("Debug message")

	if !strings.Contains(console.String(), "[DEBUG] Debug message") {
		t.Errorf("Console should show DEBUG when verbose=true: %s", console.String())
	}
}

func TestLogSheetError(t *testing.T) {
	console, logPath := initTestLogger(t, false)

	LogSheetError("clean", "Table 7", errors.New("boom"))

	logStr := readLog(t, logPath)
	if !strings.Contains(logStr, "[SHEET_ERROR]") {
		t.Error("Log file missing SHEET_ERROR marker")
	}
	if !strings.Contains(logStr, "Sheet: Table 7") {
		t.Error("Log file missing sheet name")
	}
	if n := strings.Count(logStr, "boom"); n != 1 {
		t.Errorf("Log file records the failure %d times, want once:\n%s", n, logStr)
	}

	consoleStr := console.String()
	if strings.Contains(consoleStr, "[SHEET_ERROR]") {
		t.Error("Console should not show the detailed sheet error entry")
	}
	if !strings.Contains(consoleStr, `sheet "Table 7" failed: boom`) {
		t.Errorf("Console missing sheet warning: %s", consoleStr)
	}
}

func TestSetLevel(t *testing.T) {
	console, _ := initTestLogger(t, false)

	SetLevel(LevelError)
	Info("hidden info")
	Warn("hidden warn")
	Error("shown error")

	consoleStr := console.String()
	if strings.Contains(consoleStr, "hidden") {
		t.Errorf("Console should only show errors: %s", consoleStr)
	}
	if !strings.Contains(consoleStr, "shown error") {
		t.Error("Console missing error message")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected Level
	}{
		{"debug", LevelDebug},
		{" INFO ", LevelInfo},
		{"warning", LevelWarn},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %s, expected %s", tt.name, got, tt.expected)
		}
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if result := tt.level.String(); result != tt.expected {
			t.Errorf("Level.String() = %s, expected %s", result, tt.expected)
		}
	}
}

func TestGetLogFilePath(t *testing.T) {
	_, logPath := initTestLogger(t, false)

	if got := GetLogFilePath(); got != logPath {
		t.Errorf("GetLogFilePath() = %s, expected %s", got, logPath)
	}
	if IsVerbose() {
		t.Error("IsVerbose() should be false")
	}
}

func TestNoGlobalLogger(t *testing.T) {
	globalLogger = nil

	// Must not panic before Init
	Debug("ignored")
	LogSheetError("merge", "Sheet1", errors.New("x"))
	SetLevel(LevelDebug)

	if GetLogFilePath() != "" {
		t.Error("expected empty log path without logger")
	}
}
