package world

import (
	"encoding/json"
	"fmt"
	"os"

	"locomotion/internal/components"
	"locomotion/internal/engine"
	"locomotion/internal/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// --- JSON types ---

type SceneFile struct {
	Name    string      `json:"name,omitempty"`
	Objects []ObjectDef `json:"objects"`
}

type ObjectDef struct {
	Name       string            `json:"name"`
	Tags       []string          `json:"tags,omitempty"`
	Position   [3]float32        `json:"position"`
	Rotation   [3]float32        `json:"rotation"` // Euler angles in degrees (pitch, yaw, roll)
	Scale      [3]float32        `json:"scale"`
	Components []json.RawMessage `json:"components,omitempty"`
	Children   []ObjectDef       `json:"children,omitempty"`
}

type componentHeader struct {
	Type string `json:"type"`
}

type meshRendererDef struct {
	Type      string     `json:"type"`
	Mesh      string     `json:"mesh"`
	Size      [3]float32 `json:"size"`
	Color     string     `json:"color"`
	Wireframe bool       `json:"wireframe,omitempty"`
}

type boxColliderDef struct {
	Type   string     `json:"type"`
	Size   [3]float32 `json:"size"`
	Offset [3]float32 `json:"offset,omitempty"`
}

type characterBodyDef struct {
	Type   string     `json:"type"`
	Size   [3]float32 `json:"size"`
	Offset [3]float32 `json:"offset,omitempty"`
}

type cameraDef struct {
	Type         string  `json:"type"`
	FOV          float32 `json:"fov,omitempty"`
	Main         bool    `json:"main,omitempty"`
	Orthographic bool    `json:"orthographic,omitempty"`
}

type scriptDef struct {
	Type  string         `json:"type"`
	Name  string         `json:"name"`
	Props map[string]any `json:"props,omitempty"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

var nameByColor map[rl.Color]string

func init() {
	nameByColor = make(map[rl.Color]string, len(colorByName))
	for name, c := range colorByName {
		nameByColor[c] = name
	}
}

// lookupColor accepts a palette name or "#rrggbbaa". Anything else is white.
func lookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	var c rl.Color
	if n, _ := fmt.Sscanf(name, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); n == 4 {
		return c
	}
	return rl.White
}

func lookupColorName(c rl.Color) string {
	if name, ok := nameByColor[c]; ok {
		return name
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func vec3(a [3]float32) rl.Vector3 {
	return rl.Vector3{X: a[0], Y: a[1], Z: a[2]}
}

func arr3(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// --- Loading ---

func (w *World) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}

	var sf SceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse scene: %w", err)
	}
	if sf.Name != "" {
		w.Scene.Name = sf.Name
	}

	for _, objDef := range sf.Objects {
		g, err := buildObject(objDef)
		if err != nil {
			return fmt.Errorf("scene %s: %w", path, err)
		}
		w.Scene.AddGameObject(g)
	}

	w.Path = path
	logger.For("world").Info("scene loaded", "path", path, "roots", len(sf.Objects))
	return nil
}

func buildObject(def ObjectDef) (*engine.GameObject, error) {
	g := engine.NewGameObject(def.Name)
	g.Tags = def.Tags
	g.Transform.Position = vec3(def.Position)
	if def.Rotation != [3]float32{} {
		g.Transform.Rotation = rl.QuaternionFromEuler(
			def.Rotation[0]*rl.Deg2rad,
			def.Rotation[1]*rl.Deg2rad,
			def.Rotation[2]*rl.Deg2rad,
		)
	}

	// A zero scale in the file means unset
	if def.Scale != [3]float32{} {
		g.Transform.Scale = vec3(def.Scale)
	}

	for i, raw := range def.Components {
		if err := loadComponent(g, raw); err != nil {
			return nil, fmt.Errorf("%s component %d: %w", def.Name, i, err)
		}
	}

	for _, childDef := range def.Children {
		child, err := buildObject(childDef)
		if err != nil {
			return nil, err
		}
		g.AddChild(child)
	}
	return g, nil
}

func loadComponent(g *engine.GameObject, raw json.RawMessage) error {
	var header componentHeader
	if err := json.Unmarshal(raw, &header); err != nil {
		return err
	}

	switch header.Type {
	case "MeshRenderer":
		var def meshRendererDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		r := components.NewMeshRenderer(components.ParseMeshType(def.Mesh), lookupColor(def.Color), vec3(def.Size))
		r.Wireframe = def.Wireframe
		g.AddComponent(r)

	case "BoxCollider":
		var def boxColliderDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		col := components.NewBoxCollider(vec3(def.Size))
		col.Offset = vec3(def.Offset)
		g.AddComponent(col)

	case "CharacterBody":
		var def characterBodyDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		body := components.NewCharacterBody(vec3(def.Size))
		body.Offset = vec3(def.Offset)
		g.AddComponent(body)

	case "Camera":
		var def cameraDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		cam := components.NewCamera()
		if def.FOV > 0 {
			cam.FOV = def.FOV
		}
		cam.IsMain = def.Main
		if def.Orthographic {
			cam.Projection = rl.CameraOrthographic
		}
		g.AddComponent(cam)

	case "Script":
		var def scriptDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		comp := engine.CreateScript(def.Name, def.Props)
		if comp == nil {
			return fmt.Errorf("unknown script %q", def.Name)
		}
		g.AddComponent(comp)

	default:
		logger.For("world").Warn("skipping unknown component", "object", g.Name, "type", header.Type)
	}
	return nil
}

// --- Saving ---

func (w *World) SaveScene(path string) error {
	sf := SceneFile{Name: w.Scene.Name}
	for _, g := range w.Scene.GameObjects {
		sf.Objects = append(sf.Objects, objectDef(g))
	}

	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}

	logger.For("world").Info("scene saved", "path", path)
	return nil
}

func objectDef(g *engine.GameObject) ObjectDef {
	def := ObjectDef{
		Name:     g.Name,
		Tags:     g.Tags,
		Position: arr3(g.Transform.Position),
		Rotation: arr3(rl.Vector3Scale(rl.QuaternionToEuler(g.Transform.Rotation), rl.Rad2deg)),
		Scale:    arr3(g.Transform.Scale),
	}

	for _, c := range g.Components() {
		if raw := serializeComponent(c); raw != nil {
			def.Components = append(def.Components, raw)
		}
	}
	for _, child := range g.Children {
		def.Children = append(def.Children, objectDef(child))
	}
	return def
}

func serializeComponent(c engine.Component) json.RawMessage {
	var def any

	switch comp := c.(type) {
	case *components.MeshRenderer:
		def = meshRendererDef{
			Type:      "MeshRenderer",
			Mesh:      comp.MeshType.String(),
			Size:      arr3(comp.Size),
			Color:     lookupColorName(comp.Color),
			Wireframe: comp.Wireframe,
		}

	case *components.BoxCollider:
		def = boxColliderDef{
			Type:   "BoxCollider",
			Size:   arr3(comp.Size),
			Offset: arr3(comp.Offset),
		}

	case *components.CharacterBody:
		def = characterBodyDef{
			Type:   "CharacterBody",
			Size:   arr3(comp.Size),
			Offset: arr3(comp.Offset),
		}

	case *components.Camera:
		def = cameraDef{
			Type:         "Camera",
			FOV:          comp.FOV,
			Main:         comp.IsMain,
			Orthographic: comp.Projection == rl.CameraOrthographic,
		}

	default:
		// Try script registry
		if name, props, ok := engine.SerializeScript(c); ok {
			def = scriptDef{Type: "Script", Name: name, Props: props}
		} else {
			return nil
		}
	}

	data, err := json.Marshal(def)
	if err != nil {
		return nil
	}
	return data
}
