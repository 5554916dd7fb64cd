package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLog(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(data)
}

func TestInit(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "config")
	t.Cleanup(func() { Close() })

	if err := Init(Config{LogDir: logDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if want := filepath.Join(logDir, "logs", "timegrid.log"); Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("rendered grid", "days", 6)
	Info("exported grid")
	Warn("Failed to rotate old backups", "dir", "backups")
	Error("Command execution failed", "day", "Monday")

	log := readLog(t)
	for _, want := range []string{"Failed to rotate old backups", "Command execution failed"} {
		if !strings.Contains(log, want) {
			t.Errorf("log missing %q:\n%s", want, log)
		}
	}
	for _, unwanted := range []string{"rendered grid", "exported grid"} {
		if strings.Contains(log, unwanted) {
			t.Errorf("default level should drop %q", unwanted)
		}
	}
}

func TestInitLevel(t *testing.T) {
	t.Cleanup(func() { Close() })

	tests := []struct {
		level   string
		wantErr bool
		logged  bool
	}{
		{"info", false, true},
		{"error", false, false},
		{"loud", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			err := Init(Config{Level: tt.level, LogDir: t.TempDir()})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Init() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			Info("exported grid")
			Error("marker")
			if got := strings.Contains(readLog(t), "exported grid"); got != tt.logged {
				t.Errorf("info message logged = %v, want %v", got, tt.logged)
			}
		})
	}
}

func TestInitDebugMirrorsStderr(t *testing.T) {
	var stderr bytes.Buffer
	t.Cleanup(func() { Close() })

	if err := Init(Config{Debug: true, Level: "error", LogDir: t.TempDir(), Stderr: &stderr}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	Debug("rendered grid", "days", 6, "slots", 9)

	if !strings.Contains(readLog(t), "rendered grid") {
		t.Error("log file does not contain debug message")
	}
	if !strings.Contains(stderr.String(), "rendered grid") {
		t.Errorf("stderr does not mirror debug message: %q", stderr.String())
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Close()

	if Path() != "" {
		t.Errorf("Path() = %q before Init", Path())
	}
	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
