package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/Asad-28/weather-app/internal/config"
)

func TestNew_prodWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.Config{AppEnv: "prod", LogLevel: slog.LevelInfo}, "1.2.3", "weather-app")

	logger.Info("hello", "city", "Oslo")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	for key, want := range map[string]string{
		"msg":     "hello",
		"app":     "weather-app",
		"version": "1.2.3",
		"env":     "prod",
		"city":    "Oslo",
	} {
		if rec[key] != want {
			t.Errorf("%s = %v; want %q", key, rec[key], want)
		}
	}
}

func TestNew_devRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.Config{AppEnv: "dev", LogLevel: slog.LevelWarn}, "dev", "weather-app")

	logger.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info record written at warn level: %q", buf.String())
	}
	logger.Warn("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Errorf("warn record missing; got %q", buf.String())
	}
}

var outcomeLine = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} (INF|ERR) .+$`)

func TestNewOutcomeLogger_lineFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewOutcomeLogger(&buf)

	logger.Info("Weather retrieved successfully for Paris")
	logger.Error("Connection Error occurred: offline")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines; want 2: %q", len(lines), buf.String())
	}
	for _, l := range lines {
		if !outcomeLine.MatchString(l) {
			t.Errorf("line %q does not match timestamp/level/message layout", l)
		}
		if strings.Contains(l, "\x1b[") {
			t.Errorf("line %q contains ANSI colour codes", l)
		}
	}
	if !strings.HasSuffix(lines[0], "INF Weather retrieved successfully for Paris") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "ERR Connection Error occurred: offline") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestOpenOutcomeLog_appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "weather_app.log")

	for i := 0; i < 2; i++ {
		logger, closer, err := OpenOutcomeLog(path)
		if err != nil {
			t.Fatalf("OpenOutcomeLog: %v", err)
		}
		logger.Info("attempt")
		if err := closer.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if n := strings.Count(string(b), "INF attempt"); n != 2 {
		t.Errorf("found %d lines after reopening; want 2 (file must be appended, not truncated)", n)
	}
}

func TestOpenOutcomeLog_badPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := OpenOutcomeLog(filepath.Join(blocker, "sub", "x.log")); err == nil {
		t.Fatal("OpenOutcomeLog under a regular file = nil; want error")
	}
}
