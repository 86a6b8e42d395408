package input

import (
	"fmt"
	"os"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// Script is a recorded sequence of per-tick inputs, used for headless runs.
//
//	steps:
//	  - ticks: 60
//	    hold: [forward]
//	    mouse: [4, 0]
//	  - press: [jump]
type Script struct {
	Steps []ScriptStep `yaml:"steps"`
}

// ScriptStep holds actions down for Ticks ticks (default 1). Press actions are
// held too, and always count as freshly pressed on the step's first tick.
type ScriptStep struct {
	Ticks int        `yaml:"ticks"`
	Hold  []string   `yaml:"hold"`
	Press []string   `yaml:"press"`
	Mouse [2]float32 `yaml:"mouse"`
}

func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	for i := range s.Steps {
		if s.Steps[i].Ticks <= 0 {
			s.Steps[i].Ticks = 1
		}
	}
	return &s, nil
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input script: %w", err)
	}
	return ParseScript(data)
}

// TotalTicks is the number of ticks the script covers.
func (s *Script) TotalTicks() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Ticks
	}
	return n
}

// ScriptSource plays a Script back one tick per Poll.
type ScriptSource struct {
	actionState
	script *Script
	step   int
	tick   int
	events []Event
}

func NewScriptSource(script *Script) *ScriptSource {
	return &ScriptSource{actionState: newActionState(), script: script}
}

// Done reports whether every step has been played.
func (s *ScriptSource) Done() bool {
	return s.step >= len(s.script.Steps)
}

func (s *ScriptSource) Poll() []Event {
	s.events = s.events[:0]
	if s.Done() {
		for _, name := range s.downActions() {
			s.pressed[name] = false
			s.events = append(s.events, ActionRelease(name))
		}
		return s.events
	}

	st := s.script.Steps[s.step]
	first := s.tick == 0

	held := make(map[string]bool, len(st.Hold)+len(st.Press))
	var names []string
	for _, name := range append(append([]string{}, st.Hold...), st.Press...) {
		if !held[name] {
			held[name] = true
			names = append(names, name)
		}
	}

	for _, name := range s.downActions() {
		if !held[name] {
			s.pressed[name] = false
			s.events = append(s.events, ActionRelease(name))
		}
	}
	for _, name := range names {
		fresh := !s.pressed[name]
		if !fresh && first && contains(st.Press, name) {
			fresh = true
		}
		s.pressed[name] = true
		if fresh {
			s.justPressed[name] = true
			s.events = append(s.events, ActionPress(name))
		}
	}
	if st.Mouse[0] != 0 || st.Mouse[1] != 0 {
		s.events = append(s.events, MouseMotion(rl.Vector2{X: st.Mouse[0], Y: st.Mouse[1]}))
	}

	s.tick++
	if s.tick >= st.Ticks {
		s.step++
		s.tick = 0
	}
	return s.events
}

func (s *ScriptSource) downActions() []string {
	var names []string
	for name, down := range s.pressed {
		if down {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
