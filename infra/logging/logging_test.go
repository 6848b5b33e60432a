package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	if err != nil || lvl != zerolog.InfoLevel {
		t.Fatalf("empty level should default to info, got %v %v", lvl, err)
	}
	lvl, err = ParseLevel(" DEBUG ")
	if err != nil || lvl != zerolog.DebugLevel {
		t.Fatalf("expected debug, got %v %v", lvl, err)
	}
	if _, err := ParseLevel("chatty"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "feedthread.log")
	closeFn, err := Setup(path, "debug")
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	log.Debug().Str("scope", "root:1").Msg("page fetched")
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	if !strings.Contains(string(data), `"scope":"root:1"`) {
		t.Fatalf("expected structured field in log: %q", string(data))
	}
}
