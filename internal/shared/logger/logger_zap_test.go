package logger_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/logger"
)

func TestNew_CreatesLogFileAndWrites(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "http.log")

	l := logger.New(logger.Options{File: logPath})
	l.Info("test message")
	// закрываем буферы zap
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("expected log file at %q: %v", logPath, err)
	}
	s := string(b)

	if !regexp.MustCompile(`\btest message\b`).MatchString(s) {
		t.Fatalf("expected log to contain message, got: %q", s)
	}

	// формат времени: "HH:MM:SS DD.MM.YYYY"
	timeRe := regexp.MustCompile(`\b\d{2}:\d{2}:\d{2} \d{2}\.\d{2}\.\d{4}\b`)
	if !timeRe.MatchString(s) {
		t.Fatalf("expected custom time format (HH:MM:SS DD.MM.YYYY), got: %q", s)
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "http.log")

	l := logger.New(logger.Options{File: logPath, Level: "warn"})
	l.Info("skipped message")
	l.Warn("kept message")
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(b)

	if regexp.MustCompile(`skipped message`).MatchString(s) {
		t.Fatalf("info should be filtered at warn level, got: %q", s)
	}
	if !regexp.MustCompile(`kept message`).MatchString(s) {
		t.Fatalf("expected warn message, got: %q", s)
	}
}

func TestHTTPLogger_LogRequest_WritesStructuredFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "http.log")

	l := logger.New(logger.Options{File: logPath})
	l.LogRequest("POST", "/api/user/login", 401, 20, 158.5463)
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(b)

	mustContain := []string{
		"HTTP request",
		"method", "POST",
		"uri", "/api/user/login",
		"status", "401",
		"response_size", "20",
		"duration_ms",
	}
	for _, sub := range mustContain {
		if !regexp.MustCompile(regexp.QuoteMeta(sub)).MatchString(s) {
			t.Fatalf("expected log to contain %q, got: %q", sub, s)
		}
	}
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := logger.Nop()
	l.LogRequest("GET", "/", 200, 0, 0)
	l.Sugar().Errorw("register failed", "error", "boom")
}
