package input

import (
	"fmt"
	"sort"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action names understood by the player controller.
const (
	ActionCancel   = "ui_cancel"
	ActionEnter    = "enter"
	ActionJump     = "jump"
	ActionLeft     = "left"
	ActionRight    = "right"
	ActionForward  = "forward"
	ActionBackward = "backward"
)

// Binding is a single physical control bound to an action.
type Binding struct {
	Key     int32
	Button  rl.MouseButton
	IsMouse bool
}

func (b Binding) down() bool {
	if b.IsMouse {
		return rl.IsMouseButtonDown(b.Button)
	}
	return rl.IsKeyDown(b.Key)
}

func (b Binding) pressed() bool {
	if b.IsMouse {
		return rl.IsMouseButtonPressed(b.Button)
	}
	return rl.IsKeyPressed(b.Key)
}

func (b Binding) released() bool {
	if b.IsMouse {
		return rl.IsMouseButtonReleased(b.Button)
	}
	return rl.IsKeyReleased(b.Key)
}

// ActionMap binds action names to physical controls.
type ActionMap struct {
	names    []string
	bindings map[string][]Binding
}

var namedKeys = map[string]int32{
	"escape":     rl.KeyEscape,
	"enter":      rl.KeyEnter,
	"kp_enter":   rl.KeyKpEnter,
	"space":      rl.KeySpace,
	"tab":        rl.KeyTab,
	"up":         rl.KeyUp,
	"down":       rl.KeyDown,
	"left":       rl.KeyLeft,
	"right":      rl.KeyRight,
	"left_shift": rl.KeyLeftShift,
	"left_ctrl":  rl.KeyLeftControl,
}

var namedButtons = map[string]rl.MouseButton{
	"mouse_left":   rl.MouseButtonLeft,
	"mouse_right":  rl.MouseButtonRight,
	"mouse_middle": rl.MouseButtonMiddle,
}

// ParseBinding converts a config key name ("w", "space", "mouse_left") into a Binding.
func ParseBinding(name string) (Binding, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if k, ok := namedKeys[n]; ok {
		return Binding{Key: k}, nil
	}
	if b, ok := namedButtons[n]; ok {
		return Binding{Button: b, IsMouse: true}, nil
	}
	if len(n) == 1 {
		c := n[0]
		switch {
		case c >= 'a' && c <= 'z':
			return Binding{Key: rl.KeyA + int32(c-'a')}, nil
		case c >= '0' && c <= '9':
			return Binding{Key: rl.KeyZero + int32(c-'0')}, nil
		}
	}
	return Binding{}, fmt.Errorf("unknown key %q", name)
}

// NewActionMap builds a map from action name to key names.
func NewActionMap(keys map[string][]string) (*ActionMap, error) {
	m := &ActionMap{bindings: make(map[string][]Binding, len(keys))}
	for action, names := range keys {
		for _, name := range names {
			b, err := ParseBinding(name)
			if err != nil {
				return nil, fmt.Errorf("action %s: %w", action, err)
			}
			m.bindings[action] = append(m.bindings[action], b)
		}
		m.names = append(m.names, action)
	}
	sort.Strings(m.names)
	return m, nil
}

// Actions returns the bound action names in sorted order.
func (m *ActionMap) Actions() []string {
	return m.names
}

func (m *ActionMap) Bindings(action string) []Binding {
	return m.bindings[action]
}
