package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// restoreLogger puts the global logger back after a test replaces it
func restoreLogger(t *testing.T) {
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" info ", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q): expected %v, got %v (%v)", tt.in, tt.want, got, err)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestSetupFileAndConsole(t *testing.T) {
	restoreLogger(t)
	path := filepath.Join(t.TempDir(), "tanks.log")
	var console bytes.Buffer

	closer, err := Setup(Options{Level: "debug", File: path, Console: &console})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	log.Debug().Int("player", 2).Msg("Turn started")
	log.Trace().Msg("filtered")
	if err := closer(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "Turn started") || !strings.Contains(string(data), "player=2") {
		t.Errorf("Expected debug line with player field in file, got %q", data)
	}
	if !strings.Contains(console.String(), "Turn started") {
		t.Errorf("Expected debug line on console, got %q", console.String())
	}
	for _, out := range []string{string(data), console.String()} {
		if strings.Contains(out, "filtered") {
			t.Errorf("Expected trace suppressed at debug level, got %q", out)
		}
	}
}

func TestSetupDiscard(t *testing.T) {
	restoreLogger(t)
	closer, err := Setup(Options{})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	log.Info().Msg("nowhere")
	if err := closer(); err != nil {
		t.Errorf("Expected no-op closer, got %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("Expected info level, got %v", zerolog.GlobalLevel())
	}
}

func TestSetupErrors(t *testing.T) {
	restoreLogger(t)
	if _, err := Setup(Options{Level: "loud"}); err == nil {
		t.Error("Expected error for bad level")
	}
	if _, err := Setup(Options{File: filepath.Join(t.TempDir(), "missing", "dir", "x.log")}); err == nil {
		t.Error("Expected error for unwritable log path")
	}
}
