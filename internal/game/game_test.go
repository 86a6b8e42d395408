package game

import (
	"bytes"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"locomotion/internal/config"
	"locomotion/internal/input"
	"locomotion/internal/telemetry"
)

const testScene = "../../assets/scenes/main.json"

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newHeadless(t *testing.T, script string, opts Options) *Game {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	opts.ScenePath = testScene
	opts.Headless = true
	if script != "" {
		opts.InputScript = writeScript(t, script)
	}
	g, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	return g
}

func TestHeadlessWalkForward(t *testing.T) {
	g := newHeadless(t, "steps:\n  - ticks: 30\n    hold: [forward]\n", Options{})
	start := g.Player.GetGameObject().Transform.Position

	if err := g.RunHeadless(0); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}

	if g.Ticks() != 30 {
		t.Errorf("Expected 30 ticks, got %d", g.Ticks())
	}
	end := g.Player.GetGameObject().Transform.Position
	moved := start.Z - end.Z
	// 30 ticks at 10 units/s and 60 ticks/s
	if math.Abs(float64(moved-5)) > 0.01 {
		t.Errorf("Expected to move 5 units toward -Z, moved %v", moved)
	}
	if end.X != start.X {
		t.Errorf("Expected no sideways drift, got x=%v", end.X)
	}
	if !g.Player.Body().IsOnFloor() {
		t.Error("Expected player to stay on the floor")
	}
}

func TestHeadlessJumpIsTraced(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "trace.csv")
	g := newHeadless(t, `
steps:
  - ticks: 5
  - press: [jump]
  - ticks: 90
`, Options{TracePath: tracePath})

	if err := g.RunHeadless(0); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rows, err := telemetry.ReadTrace(tracePath)
	if err != nil {
		t.Fatalf("ReadTrace: %v", err)
	}
	if len(rows) != 96 {
		t.Fatalf("Expected 96 rows, got %d", len(rows))
	}

	jumps := 0
	var apex float32
	for _, r := range rows {
		if r.Jumped {
			jumps++
			if r.Tick != 6 {
				t.Errorf("Expected the jump on tick 6, got %d", r.Tick)
			}
		}
		if r.PosY > apex {
			apex = r.PosY
		}
	}
	if jumps != 1 {
		t.Errorf("Expected exactly one jump, got %d", jumps)
	}
	if apex < 1.9 || apex > 2.05 {
		t.Errorf("Expected apex between 1.9 and 2.05, got %v", apex)
	}
	if last := rows[len(rows)-1]; !last.OnFloor {
		t.Errorf("Expected to have landed by the last tick, got %+v", last)
	}

	if _, err := os.Stat(filepath.Join(filepath.Dir(tracePath), "trace.config.yaml")); err != nil {
		t.Errorf("Expected config snapshot next to the trace: %v", err)
	}
}

func TestHeadlessLookAndCursor(t *testing.T) {
	g := newHeadless(t, `
steps:
  - mouse: [100, 0]
  - press: [ui_cancel]
  - ticks: 2
`, Options{})

	if g.Cursor.Mode() != input.CursorCaptured {
		t.Fatalf("Expected headless cursor to start captured, got %s", g.Cursor.Mode())
	}
	if err := g.RunHeadless(0); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}

	rot := g.Player.CameraRotation()
	if math.Abs(float64(rot.X-0.1)) > 1e-6 {
		t.Errorf("Expected yaw 0.1, got %v", rot.X)
	}
	if g.HUD.look != rot {
		t.Errorf("Expected HUD to follow Looked, got %v", g.HUD.look)
	}
	if g.Cursor.Mode() != input.CursorVisible {
		t.Errorf("Expected cursor visible after cancel, got %s", g.Cursor.Mode())
	}
}

func TestHeadlessNeedsTickCount(t *testing.T) {
	g := newHeadless(t, "", Options{})
	if err := g.RunHeadless(0); err == nil {
		t.Error("Expected error without ticks or script")
	}
	if err := g.RunHeadless(3); err != nil {
		t.Errorf("Expected fixed tick run to succeed, got %v", err)
	}
	if g.Ticks() != 3 {
		t.Errorf("Expected 3 ticks, got %d", g.Ticks())
	}
}

func TestConfigTuningReachesPlayer(t *testing.T) {
	cfg, err := config.Parse([]byte("player:\n  speed: 7\nphysics:\n  default_gravity: 20\n"))
	if err != nil {
		t.Fatal(err)
	}
	g, err := New(cfg, Options{ScenePath: testScene, Headless: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer g.Close()

	if g.Player.Speed != 7 {
		t.Errorf("Expected speed 7 from config, got %v", g.Player.Speed)
	}
	if g.Player.Gravity != 20 {
		t.Errorf("Expected gravity 20 from config, got %v", g.Player.Gravity)
	}
}

func TestReloadAppliesBetweenTicks(t *testing.T) {
	reloads := make(chan *config.Config, 1)
	g := newHeadless(t, "", Options{Reloads: reloads})

	cfg, err := config.Parse([]byte("player:\n  speed: 3\nphysics:\n  tick_rate: 120\n"))
	if err != nil {
		t.Fatal(err)
	}
	reloads <- cfg

	if err := g.RunHeadless(1); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if g.Player.Speed != 3 {
		t.Errorf("Expected reloaded speed 3, got %v", g.Player.Speed)
	}
	if g.Clock.Step != cfg.Derived.TickDelta {
		t.Errorf("Expected clock step %v, got %v", cfg.Derived.TickDelta, g.Clock.Step)
	}
	if g.Config != cfg {
		t.Error("Expected game to hold the reloaded config")
	}
}

func TestReloadReclampsPitch(t *testing.T) {
	reloads := make(chan *config.Config, 1)
	g := newHeadless(t, "steps:\n  - mouse: [0, 5000]\n  - ticks: 1\n", Options{Reloads: reloads})

	if err := g.RunHeadless(1); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if rot := g.Player.CameraRotation(); math.Abs(float64(rot.Y-1.2)) > 1e-6 {
		t.Fatalf("Expected pitch pinned at 1.2, got %v", rot.Y)
	}
	before := g.Player.LookDirection()

	cfg, err := config.Parse([]byte("player:\n  pitch_max: 0.5\n"))
	if err != nil {
		t.Fatal(err)
	}
	reloads <- cfg
	if err := g.RunHeadless(1); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}

	if rot := g.Player.CameraRotation(); math.Abs(float64(rot.Y-0.5)) > 1e-6 {
		t.Errorf("Expected pitch re-clamped to 0.5, got %v", rot.Y)
	}
	if g.Player.LookDirection() == before {
		t.Error("Expected look direction to follow the new pitch limit")
	}
	if g.HUD.look != g.Player.CameraRotation() {
		t.Errorf("Expected HUD to see the re-clamped rotation, got %v", g.HUD.look)
	}
}

func TestAdvanceLogsDroppedBacklog(t *testing.T) {
	g := newHeadless(t, "", Options{})
	var buf bytes.Buffer
	g.log = slog.New(slog.NewTextHandler(&buf, nil))

	owed := g.Clock.MaxSteps + 5
	if n := g.advance(g.Clock.Step * float32(owed)); n != g.Clock.MaxSteps {
		t.Errorf("Expected %d ticks, got %d", g.Clock.MaxSteps, n)
	}
	if g.Ticks() != g.Clock.MaxSteps {
		t.Errorf("Expected %d steps run, got %d", g.Clock.MaxSteps, g.Ticks())
	}
	if !strings.Contains(buf.String(), "physics backlog dropped") {
		t.Errorf("Expected backlog warning, got %q", buf.String())
	}

	buf.Reset()
	g.advance(g.Clock.Step)
	if strings.Contains(buf.String(), "backlog") {
		t.Errorf("Expected no warning for an on-time frame, got %q", buf.String())
	}
}

func TestMissingSceneFails(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(cfg, Options{ScenePath: filepath.Join(t.TempDir(), "none.json"), Headless: true}); err == nil {
		t.Error("Expected error for missing scene")
	}
}
