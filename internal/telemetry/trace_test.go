package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"locomotion/internal/config"
)

func TestNilRecorderIsNoop(t *testing.T) {
	r, err := NewRecorder("")
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	if r != nil {
		t.Fatal("Expected nil recorder for empty path")
	}
	if err := r.Record(TraceRow{Tick: 1}); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if r.Rows() != 0 {
		t.Errorf("Expected 0 rows, got %d", r.Rows())
	}
	if err := r.Close(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

func TestRecorderWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "trace.csv")
	r, err := NewRecorder(path)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	for i := 1; i <= 3; i++ {
		if err := r.Record(TraceRow{Tick: i, PosY: 0.9, OnFloor: true}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if r.Rows() != 3 {
		t.Errorf("Expected 3 rows, got %d", r.Rows())
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "tick,time,pos_x") {
		t.Errorf("Expected header first, got %q", lines[0])
	}
	if strings.Count(string(data), "tick,") != 1 {
		t.Error("Expected exactly one header line")
	}

	rows, err := ReadTrace(path)
	if err != nil {
		t.Fatalf("ReadTrace: %v", err)
	}
	if len(rows) != 3 || rows[2].Tick != 3 || !rows[0].OnFloor {
		t.Errorf("Unexpected rows %+v", rows)
	}
}

func TestRecorderWriteConfig(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRecorder(filepath.Join(dir, "trace.csv"))
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	defer r.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := r.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "trace.config.yaml")); err != nil {
		t.Errorf("Expected config next to trace: %v", err)
	}
}
