package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestDebug_DisabledInProduction(t *testing.T) {
	var buf bytes.Buffer

	logger := log.NewWithOptions(&buf, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(log.DebugLevel)

	appLogger := &AppLogger{
		logger: logger,
		debug:  false, // Production mode
	}

	appLogger.Debug("debug message that should not appear")

	output := buf.String()
	if strings.Contains(output, "debug message that should not appear") {
		t.Errorf("Expected debug message to be suppressed in production mode, got: %s", output)
	}
}

func TestSetVerbose(t *testing.T) {
	var buf bytes.Buffer

	logger := log.NewWithOptions(&buf, log.Options{ReportTimestamp: false})
	logger.SetLevel(log.WarnLevel)
	appLogger := &AppLogger{logger: logger}

	appLogger.Info("hidden before verbose")
	appLogger.SetVerbose(true)
	appLogger.Info("shown after verbose")
	appLogger.SetVerbose(false)
	appLogger.Info("hidden again")

	output := buf.String()
	if strings.Contains(output, "hidden before verbose") || strings.Contains(output, "hidden again") {
		t.Errorf("Expected info messages outside verbose mode to be suppressed, got: %s", output)
	}
	if !strings.Contains(output, "shown after verbose") {
		t.Errorf("Expected info message in verbose mode, got: %s", output)
	}
}

func TestDebugObject(t *testing.T) {
	logger, buf := NewTestLogger()

	testObj := struct {
		Name  string
		Value int
	}{
		Name:  "test",
		Value: 42,
	}

	logger.DebugObject("test_object", testObj)

	output := buf.String()
	if !strings.Contains(output, "Object dump") {
		t.Errorf("Expected log output to contain 'Object dump', got: %s", output)
	}
	if !strings.Contains(output, "test_object") {
		t.Errorf("Expected log output to contain object name, got: %s", output)
	}
	if !strings.Contains(output, "42") {
		t.Errorf("Expected log output to contain object data, got: %s", output)
	}
}

func TestLogPerformance(t *testing.T) {
	logger, buf := NewTestLogger()

	start := time.Now()
	time.Sleep(1 * time.Millisecond) // Small delay for measurable duration
	logger.LogPerformance("test_operation", start)

	output := buf.String()
	if !strings.Contains(output, "Performance") {
		t.Errorf("Expected log output to contain 'Performance', got: %s", output)
	}
	if !strings.Contains(output, "test_operation") {
		t.Errorf("Expected log output to contain operation name, got: %s", output)
	}
	if !strings.Contains(output, "duration") {
		t.Errorf("Expected log output to contain duration, got: %s", output)
	}
}

func TestLogStateTransition(t *testing.T) {
	logger, buf := NewTestLogger()

	logger.LogStateTransition("bootstrap", "Start", "VersionChecked")

	output := buf.String()
	if !strings.Contains(output, "State transition") {
		t.Errorf("Expected log output to contain 'State transition', got: %s", output)
	}
	if !strings.Contains(output, "bootstrap") {
		t.Errorf("Expected log output to contain component name, got: %s", output)
	}
	if !strings.Contains(output, "Start") {
		t.Errorf("Expected log output to contain 'from' state, got: %s", output)
	}
	if !strings.Contains(output, "VersionChecked") {
		t.Errorf("Expected log output to contain 'to' state, got: %s", output)
	}
}

func TestNewFileLogger_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bootstrap.log")

	for _, msg := range []string{"first run", "second run"} {
		logger, closer, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Info(msg, "python", "3.11")
		if err := closer.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "first run") || !strings.Contains(content, "second run") {
		t.Errorf("Expected both records to be kept, got: %s", content)
	}
	if !strings.Contains(content, "python=3.11") {
		t.Errorf("Expected logfmt key/value pairs, got: %s", content)
	}
}

func TestNewFileLogger_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "bootstrap.log")

	if _, _, err := NewFileLogger(path); err == nil {
		t.Error("Expected error when the log directory does not exist")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	// Reset the singleton for testing
	defaultLogger = nil
	once = sync.Once{}
	t.Cleanup(func() {
		defaultLogger = nil
		once = sync.Once{}
	})

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DEBUG", "1")

	Info("package level info")
	Warn("package level warn")
	Debug("package level debug")
	LogPerformance("package_operation", time.Now())

	data, err := os.ReadFile(filepath.Join(dir, "pybootstrap.log"))
	if err != nil {
		t.Fatalf("Expected debug log file in working directory: %v", err)
	}
	if !strings.Contains(string(data), "package level debug") {
		t.Errorf("Expected debug message in log file, got: %s", data)
	}
}

func TestNewAppLogger_DebugFallsBackToStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory permissions are not enforced on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	dir := t.TempDir()
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o755) })
	t.Chdir(dir)
	t.Setenv("DEBUG", "1")

	var buf bytes.Buffer
	orig := stderr
	stderr = &buf
	t.Cleanup(func() { stderr = orig })

	logger := NewAppLogger()
	logger.Debug("still debugging")

	if !logger.debug {
		t.Error("Expected debug mode to survive the fallback")
	}
	if _, err := os.Stat(filepath.Join(dir, "pybootstrap.log")); !os.IsNotExist(err) {
		t.Errorf("Expected no log file in read-only directory, stat err: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "Debug log file unavailable") {
		t.Errorf("Expected fallback warning on stderr, got: %s", output)
	}
	if !strings.Contains(output, "still debugging") {
		t.Errorf("Expected debug messages on stderr, got: %s", output)
	}
}

func TestGetDefault_Singleton(t *testing.T) {
	// Reset the singleton for testing
	defaultLogger = nil
	once = sync.Once{}

	logger1 := GetDefault()
	logger2 := GetDefault()

	if logger1 != logger2 {
		t.Error("Expected GetDefault() to return the same instance (singleton)")
	}
}

// Benchmark tests
func BenchmarkInfo(b *testing.B) {
	logger, _ := NewTestLogger()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "iteration", i)
	}
}

func BenchmarkDebug(b *testing.B) {
	logger, _ := NewTestLogger()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug("benchmark debug message", "iteration", i)
	}
}
