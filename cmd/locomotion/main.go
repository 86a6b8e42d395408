package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"locomotion/internal/config"
	"locomotion/internal/game"
	"locomotion/internal/logger"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	scenePath := flag.String("scene", "", "Scene JSON (empty = scene.path from config)")
	headless := flag.Bool("headless", false, "Run without a window")
	ticks := flag.Int("ticks", 0, "Headless: physics ticks to run (0 = length of the input script)")
	inputScript := flag.String("input-script", "", "YAML input script to play instead of live input")
	tracePath := flag.String("trace", "", "Write a per-tick CSV trace of the player to this file")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (empty = config)")
	logFormat := flag.String("log-format", "", "console, text or json (empty = config)")
	watch := flag.Bool("watch", false, "Reload the config file when it changes")

	flag.Parse()

	// Paths given on the command line are relative to where we were started.
	for _, p := range []*string{configPath, scenePath, inputScript, tracePath} {
		*p = absPath(*p)
	}
	chdirToExecutable()

	if err := run(*configPath, *logLevel, *logFormat, *watch, *ticks, game.Options{
		ScenePath:   *scenePath,
		TracePath:   *tracePath,
		InputScript: *inputScript,
		Headless:    *headless,
	}); err != nil {
		logger.L().Error("locomotion failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, logLevel, logFormat string, watch bool, ticks int, opts game.Options) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if logLevel == "" {
		logLevel = cfg.Log.Level
	}
	if logFormat == "" {
		logFormat = cfg.Log.Format
	}
	logger.Init(logger.Config{Level: logLevel, Format: logFormat})

	if watch {
		if configPath == "" {
			return errors.New("-watch needs -config")
		}
		w, err := config.Watch(configPath)
		if err != nil {
			return fmt.Errorf("watching config: %w", err)
		}
		defer w.Close()
		go logWatchErrors(w)
		opts.Reloads = w.Updates
	}

	g, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	if opts.Headless {
		return g.RunHeadless(ticks)
	}
	return g.Run()
}

func logWatchErrors(w *config.Watcher) {
	log := logger.For("config")
	for err := range w.Errors {
		log.Warn("config reload failed, keeping previous", "error", err)
	}
}

func absPath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// chdirToExecutable moves to the executable's directory so bundled assets resolve
// in deployed builds. Skipped for "go run", which builds into a temp directory.
func chdirToExecutable() {
	execPath, err := os.Executable()
	if err != nil {
		return
	}
	execDir := filepath.Dir(execPath)
	if strings.Contains(execDir, "go-build") {
		return
	}
	if _, err := os.Stat(filepath.Join(execDir, "assets")); err != nil {
		return
	}
	os.Chdir(execDir)
}
