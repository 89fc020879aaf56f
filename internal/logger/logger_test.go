package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		mode, level string
		wantErr     bool
	}{
		{"dev", "", false},
		{"prod", "info", false},
		{"production", "warn", false},
		{"dev", "loud", true},
	}
	for _, tt := range tests {
		l, err := New(tt.mode, tt.level)
		if tt.wantErr {
			if err == nil {
				t.Errorf("New(%q, %q): expected error", tt.mode, tt.level)
			}
			continue
		}
		if err != nil {
			t.Errorf("New(%q, %q): %v", tt.mode, tt.level, err)
			continue
		}
		if l.SugaredLogger == nil {
			t.Errorf("New(%q, %q): nil sugared logger", tt.mode, tt.level)
		}
	}
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "recorder").Warn("recovered malformed state", "key", "tsv2Completed")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "recorder" {
		t.Errorf("component = %v, want recorder", fields["component"])
	}
	if fields["key"] != "tsv2Completed" {
		t.Errorf("key = %v, want tsv2Completed", fields["key"])
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Info("ignored", "k", 1)
	l.Sync()
}
