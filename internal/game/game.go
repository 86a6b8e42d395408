// Package game runs a loaded scene, either in a raylib window or headless.
package game

import (
	"errors"
	"fmt"
	"log/slog"

	"locomotion/internal/components"
	"locomotion/internal/config"
	"locomotion/internal/engine"
	"locomotion/internal/input"
	"locomotion/internal/logger"
	"locomotion/internal/telemetry"
	"locomotion/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Options struct {
	ScenePath   string // overrides scene.path from the config
	TracePath   string // CSV trace; empty disables tracing
	InputScript string // YAML input script; replaces live input when set
	Headless    bool
	// Reloads delivers configs from a watcher. Nil disables hot reload.
	Reloads <-chan *config.Config
}

type Game struct {
	Config *config.Config
	World  *world.World
	Player *components.PlayerController
	Source input.Poller
	Cursor input.Cursor
	Clock  *Clock
	Trace  *telemetry.Recorder
	HUD    *HUD

	headless bool
	script   *input.Script
	reloads  <-chan *config.Config
	tick     int
	jumped   bool
	log      *slog.Logger
}

// New loads the scene, wires the player to its input source and starts the scene.
// The window is not opened until Run.
func New(cfg *config.Config, opts Options) (*Game, error) {
	g := &Game{
		Config:   cfg,
		Clock:    NewClock(cfg.Derived.TickDelta, cfg.Physics.MaxSteps),
		HUD:      NewHUD(),
		headless: opts.Headless,
		reloads:  opts.Reloads,
		log:      logger.For("game"),
	}

	scenePath := opts.ScenePath
	if scenePath == "" {
		scenePath = cfg.Scene.Path
	}
	w, err := world.Load(scenePath)
	if err != nil {
		return nil, err
	}
	g.World = w

	g.Player = w.Player()
	if g.Player == nil {
		return nil, fmt.Errorf("scene %s: no %s script: %w", scenePath, components.PlayerControllerScript, engine.ErrComponentNotFound)
	}

	if err := g.setupInput(cfg, opts); err != nil {
		return nil, err
	}
	g.Player.Source = g.Source
	g.Player.Cursor = g.Cursor
	if cfg.Player.CameraPivot != "" {
		g.Player.CameraPivotPath = cfg.Player.CameraPivot
	}
	g.applyTuning(cfg)

	g.Player.Jumped.AddListener(func() { g.jumped = true })
	g.Player.Looked.AddListener(g.HUD.SetLook)

	if err := w.Start(); err != nil {
		return nil, fmt.Errorf("start scene: %w", err)
	}

	g.Trace, err = telemetry.NewRecorder(opts.TracePath)
	if err != nil {
		return nil, err
	}
	if err := g.Trace.WriteConfig(cfg); err != nil {
		g.Trace.Close()
		return nil, err
	}

	g.log.Info("game ready",
		"scene", scenePath,
		"player", g.Player.GetGameObject().Path(),
		"tick_rate", cfg.Physics.TickRate,
		"headless", g.headless,
	)
	return g, nil
}

func (g *Game) setupInput(cfg *config.Config, opts Options) error {
	switch {
	case opts.InputScript != "":
		script, err := input.LoadScript(opts.InputScript)
		if err != nil {
			return err
		}
		g.script = script
		g.Source = input.NewScriptSource(script)
	case opts.Headless:
		g.Source = input.NewScriptSource(&input.Script{})
	default:
		actions, err := input.NewActionMap(cfg.Input)
		if err != nil {
			return fmt.Errorf("input bindings: %w", err)
		}
		g.Source = input.NewRaylibSource(actions)
	}

	if opts.Headless {
		// Mirror the window, which captures the pointer on startup.
		cursor := &input.MemoryCursor{}
		cursor.SetMode(input.CursorCaptured)
		g.Cursor = cursor
	} else {
		g.Cursor = &input.RaylibCursor{}
	}
	return nil
}

// applyTuning pushes player values from cfg through the script applier, the
// same path the HUD sliders use.
func (g *Game) applyTuning(cfg *config.Config) {
	props := []struct {
		name  string
		value float32
	}{
		{"speed", cfg.Player.Speed},
		{"jumpVelocity", cfg.Player.JumpVelocity},
		{"mouseSensitivity", cfg.Player.MouseSensitivity},
		{"gravity", cfg.Physics.DefaultGravity},
	}
	for _, p := range props {
		if !engine.ApplyScriptProperty(g.Player, p.name, float64(p.value)) {
			g.log.Warn("player rejected property", "name", p.name)
		}
	}
	// Both limits go in together so a reload that moves the whole range
	// never passes through an inverted one.
	if !g.Player.SetPitchLimits(cfg.Player.PitchMin, cfg.Player.PitchMax) {
		g.log.Warn("player rejected pitch range", "min", cfg.Player.PitchMin, "max", cfg.Player.PitchMax)
	}
}

// ApplyConfig swaps in a reloaded config. Tuning, bindings and the tick rate
// take effect immediately; the scene and camera pivot are only read at startup.
func (g *Game) ApplyConfig(cfg *config.Config) {
	g.Config = cfg
	g.applyTuning(cfg)

	if cfg.Derived.TickDelta != g.Clock.Step || cfg.Physics.MaxSteps != g.Clock.MaxSteps {
		g.Clock = NewClock(cfg.Derived.TickDelta, cfg.Physics.MaxSteps)
	}

	if src, ok := g.Source.(*input.RaylibSource); ok {
		actions, err := input.NewActionMap(cfg.Input)
		if err != nil {
			g.log.Error("keeping previous bindings", "error", err)
		} else {
			src.SetActions(actions)
		}
	}

	if !g.headless && rl.IsWindowReady() {
		rl.SetTargetFPS(int32(cfg.Window.TargetFPS))
	}
	g.log.Info("config applied", "speed", cfg.Player.Speed, "tick_rate", cfg.Physics.TickRate)
}

func (g *Game) drainReloads() {
	if g.reloads == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-g.reloads:
			if !ok {
				g.reloads = nil
				return
			}
			g.ApplyConfig(cfg)
		default:
			return
		}
	}
}

// Dispatch hands one frame's input events to the scene.
func (g *Game) Dispatch(events []input.Event) {
	for _, ev := range events {
		if !g.headless && g.HUD.Consumes(ev, g.Cursor.Mode()) {
			continue
		}
		g.World.Scene.Input(ev)
	}
}

// Step runs one fixed physics tick and records it.
func (g *Game) Step() error {
	delta := g.Clock.Step
	g.jumped = false
	g.World.Scene.PhysicsUpdate(delta)
	g.Source.EndTick()
	g.tick++
	return g.Trace.Record(telemetry.Sample(g.tick, delta, g.Player, g.jumped))
}

func (g *Game) Ticks() int {
	return g.tick
}

// RunHeadless runs ticks physics steps without a window, polling input once per
// tick. With ticks <= 0 it runs until the input script is exhausted.
func (g *Game) RunHeadless(ticks int) error {
	if ticks <= 0 {
		if g.script == nil {
			return errors.New("headless run needs a tick count or an input script")
		}
		ticks = g.script.TotalTicks()
	}

	for i := 0; i < ticks; i++ {
		g.drainReloads()
		g.Dispatch(g.Source.Poll())
		if err := g.Step(); err != nil {
			return err
		}
		g.World.Update(g.Clock.Step)
	}

	pos := g.Player.GetGameObject().WorldPosition()
	rot := g.Player.CameraRotation()
	g.log.Info("headless run finished",
		"ticks", g.tick,
		"position", fmt.Sprintf("(%.3f, %.3f, %.3f)", pos.X, pos.Y, pos.Z),
		"on_floor", g.Player.Body().IsOnFloor(),
		"yaw", rot.X,
		"pitch", rot.Y,
		"cursor", g.Cursor.Mode(),
		"trace_rows", g.Trace.Rows(),
	)
	return nil
}

// Run opens the window and loops until it is closed.
func (g *Game) Run() error {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(int32(g.Config.Window.Width), int32(g.Config.Window.Height), g.Config.Window.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(g.Config.Window.TargetFPS))
	// Escape releases the cursor instead of closing the window.
	rl.SetExitKey(0)
	g.HUD.Init()
	g.Cursor.SetMode(input.CursorCaptured)

	for !rl.WindowShouldClose() {
		g.drainReloads()
		g.Update(rl.GetFrameTime())
		g.Draw()
	}
	return nil
}

func (g *Game) Update(deltaTime float32) {
	if rl.IsKeyPressed(rl.KeyF1) {
		g.HUD.Visible = !g.HUD.Visible
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		g.Save()
	}

	g.Dispatch(g.Source.Poll())

	g.advance(deltaTime)
	g.World.Update(deltaTime)
}

// advance runs the physics ticks owed for a frame of deltaTime seconds and
// returns how many ran.
func (g *Game) advance(deltaTime float32) int {
	dropped := g.Clock.Dropped()
	n := g.Clock.Advance(deltaTime)
	if lost := g.Clock.Dropped() - dropped; lost > 0 {
		g.log.Warn("physics backlog dropped", "ticks", lost, "total", g.Clock.Dropped())
	}
	for range n {
		if err := g.Step(); err != nil {
			g.log.Error("trace disabled", "error", err)
			g.Trace.Close()
			g.Trace = nil
		}
	}
	return n
}

// Save writes the scene back to the file it was loaded from.
func (g *Game) Save() {
	if err := g.World.SaveScene(g.World.Path); err != nil {
		g.log.Error("save failed", "error", err)
		g.HUD.Flash("Save failed")
		return
	}
	g.HUD.Flash("Saved " + g.World.Path)
}

func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	if cam := g.World.MainCamera(); cam != nil {
		rl.BeginMode3D(cam.GetRaylibCamera())
		g.World.Draw()
		rl.EndMode3D()
	}

	g.HUD.Draw(g)
	rl.EndDrawing()
}

func (g *Game) Close() error {
	return g.Trace.Close()
}
