// Package telemetry writes a per-tick CSV trace of the player's movement.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"locomotion/internal/components"
	"locomotion/internal/config"

	"github.com/gocarina/gocsv"
)

// TraceRow is one physics tick of player state.
type TraceRow struct {
	Tick    int     `csv:"tick"`
	Time    float32 `csv:"time"`
	PosX    float32 `csv:"pos_x"`
	PosY    float32 `csv:"pos_y"`
	PosZ    float32 `csv:"pos_z"`
	VelX    float32 `csv:"vel_x"`
	VelY    float32 `csv:"vel_y"`
	VelZ    float32 `csv:"vel_z"`
	OnFloor bool    `csv:"on_floor"`
	Yaw     float32 `csv:"yaw"`
	Pitch   float32 `csv:"pitch"`
	Jumped  bool    `csv:"jumped"`
}

// Sample captures the player's state after a tick.
func Sample(tick int, tickDelta float32, p *components.PlayerController, jumped bool) TraceRow {
	row := TraceRow{
		Tick:   tick,
		Time:   float32(tick) * tickDelta,
		Jumped: jumped,
	}
	if g := p.GetGameObject(); g != nil {
		pos := g.WorldPosition()
		row.PosX, row.PosY, row.PosZ = pos.X, pos.Y, pos.Z
	}
	if body := p.Body(); body != nil {
		v := body.Velocity()
		row.VelX, row.VelY, row.VelZ = v.X, v.Y, v.Z
		row.OnFloor = body.IsOnFloor()
	}
	rot := p.CameraRotation()
	row.Yaw, row.Pitch = rot.X, rot.Y
	return row
}

// Recorder appends TraceRows to a CSV file.
type Recorder struct {
	path          string
	file          *os.File
	headerWritten bool
	rows          int
}

// NewRecorder creates the trace file. Returns nil if path is empty (tracing disabled).
func NewRecorder(path string) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating trace directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trace: %w", err)
	}
	return &Recorder{path: path, file: f}, nil
}

func (r *Recorder) Record(row TraceRow) error {
	if r == nil {
		return nil
	}

	records := []TraceRow{row}

	if !r.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, r.file); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.file); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	r.rows++
	return nil
}

// WriteConfig saves cfg next to the trace as <trace>.config.yaml.
func (r *Recorder) WriteConfig(cfg *config.Config) error {
	if r == nil {
		return nil
	}
	return cfg.WriteYAML(strings.TrimSuffix(r.path, filepath.Ext(r.path)) + ".config.yaml")
}

func (r *Recorder) Rows() int {
	if r == nil {
		return 0
	}
	return r.rows
}

func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	return r.file.Close()
}

// ReadTrace loads a trace written by Recorder.
func ReadTrace(path string) ([]TraceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace: %w", err)
	}
	defer f.Close()

	var rows []TraceRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return rows, nil
}
