package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFieldHelpers(t *testing.T) {
	t.Parallel()
	testErr := errors.New("boom")
	tests := []struct {
		name      string
		field     Field
		wantKey   string
		wantValue any
	}{
		{"String", String("mode", "serial"), "mode", "serial"},
		{"Int", Int("workers", 4), "workers", 4},
		{"Int64", Int64("concordant", 6), "concordant", int64(6)},
		{"Uint64", Uint64("seed", 42), "seed", uint64(42)},
		{"Float64", Float64("tau", 0.5), "tau", 0.5},
		{"Duration", Duration("elapsed", time.Second), "elapsed", time.Second},
		{"Err", Err(testErr), "error", testErr},
		{"Err nil", Err(nil), "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.field.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.wantKey)
			}
			if tt.field.Value != tt.wantValue {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.wantValue)
			}
		})
	}
}

func TestNewLogger_IncludesComponent(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewLogger(&buf, "benchmark")
	logger.Info("run complete", Int("workers", 3), Float64("tau", 0.25))

	out := buf.String()
	for _, want := range []string{"benchmark", "run complete", `"workers":3`, "0.25"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestZerologAdapter_Levels(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		log      func(l Logger)
		contains []string
	}{
		{
			name:     "debug",
			log:      func(l Logger) { l.Debug("dispatch", Int("tasks", 10)) },
			contains: []string{"debug", "dispatch", "10"},
		},
		{
			name:     "error with cause",
			log:      func(l Logger) { l.Error("run failed", errors.New("length mismatch"), String("mode", "parallel")) },
			contains: []string{"error", "run failed", "length mismatch", "parallel"},
		},
		{
			name:     "error without cause",
			log:      func(l Logger) { l.Error("warning", nil) },
			contains: []string{"error", "warning"},
		},
		{
			name:     "printf",
			log:      func(l Logger) { l.Printf("size=%d", 10000) },
			contains: []string{"size=10000"},
		},
		{
			name:     "println",
			log:      func(l Logger) { l.Println("serial", "done") },
			contains: []string{"serial done"},
		},
		{
			name:     "arbitrary value",
			log:      func(l Logger) { l.Info("sample", Field{Key: "p", Value: struct{ X int }{X: 7}}) },
			contains: []string{`"X":7`},
		},
		{
			name:     "bool value",
			log:      func(l Logger) { l.Info("flag", Field{Key: "quiet", Value: true}) },
			contains: []string{`"quiet":true`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.log(NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel)))
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output should contain %q, got: %s", want, out)
				}
			}
		})
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		log      func(l Logger)
		contains []string
	}{
		{"info", func(l Logger) { l.Info("start", String("mode", "serial")) }, []string{"[INFO]", "start", "mode=serial"}},
		{"debug", func(l Logger) { l.Debug("tick", Int("i", 2)) }, []string{"[DEBUG]", "tick", "i=2"}},
		{"error", func(l Logger) { l.Error("failed", errors.New("oops")) }, []string{"[ERROR]", "failed", "oops"}},
		{"printf", func(l Logger) { l.Printf("n=%d", 4) }, []string{"n=4"}},
		{"println", func(l Logger) { l.Println("a", "b") }, []string{"a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.log(NewStdLoggerAdapter(log.New(&buf, "", 0)))
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output should contain %q, got: %s", want, out)
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"warn":    zerolog.WarnLevel,
		"unknown": zerolog.WarnLevel,
		"":        zerolog.WarnLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerInterface(t *testing.T) {
	var _ Logger = NewDefaultLogger()
	var _ Logger = NewStdLoggerAdapter(log.Default())
}
