package input

import rl "github.com/gen2brain/raylib-go/raylib"

// CursorMode is the pointer state owned by the host window.
type CursorMode int

const (
	CursorVisible CursorMode = iota
	CursorCaptured
)

func (m CursorMode) String() string {
	if m == CursorCaptured {
		return "captured"
	}
	return "visible"
}

type Cursor interface {
	Mode() CursorMode
	SetMode(mode CursorMode)
}

// RaylibCursor hides and locks the pointer to the window when captured.
type RaylibCursor struct {
	mode CursorMode
}

func (c *RaylibCursor) Mode() CursorMode { return c.mode }

func (c *RaylibCursor) SetMode(mode CursorMode) {
	if mode == c.mode {
		return
	}
	c.mode = mode
	if mode == CursorCaptured {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
}

// MemoryCursor records the requested mode without touching a window.
type MemoryCursor struct {
	mode    CursorMode
	Changes int
}

func (c *MemoryCursor) Mode() CursorMode { return c.mode }

func (c *MemoryCursor) SetMode(mode CursorMode) {
	if mode != c.mode {
		c.Changes++
	}
	c.mode = mode
}
