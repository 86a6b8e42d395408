package components

import (
	"locomotion/internal/engine"
	"locomotion/internal/logger"
)

// PlayerControllerScript is the scene-file script name of PlayerController.
const PlayerControllerScript = "PlayerController"

func init() {
	engine.RegisterScriptWithApplier(PlayerControllerScript, playerFactory, playerSerializer, playerApplier)
}

func playerFactory(props map[string]any) engine.Component {
	p := NewPlayerController()
	p.Speed = engine.PropFloat(props, "speed", p.Speed)
	p.JumpVelocity = engine.PropFloat(props, "jumpVelocity", p.JumpVelocity)
	p.MouseSensitivity = engine.PropFloat(props, "mouseSensitivity", p.MouseSensitivity)
	lo := engine.PropFloat(props, "pitchMin", p.PitchMin)
	hi := engine.PropFloat(props, "pitchMax", p.PitchMax)
	if !p.SetPitchLimits(lo, hi) {
		logger.For("player").Warn("ignoring inverted pitch range", "pitchMin", lo, "pitchMax", hi)
	}
	p.CameraPivotPath = engine.PropString(props, "cameraPivot", p.CameraPivotPath)
	return p
}

func playerSerializer(c engine.Component) map[string]any {
	p, ok := c.(*PlayerController)
	if !ok {
		return nil
	}
	return map[string]any{
		"speed":            p.Speed,
		"jumpVelocity":     p.JumpVelocity,
		"mouseSensitivity": p.MouseSensitivity,
		"pitchMin":         p.PitchMin,
		"pitchMax":         p.PitchMax,
		"cameraPivot":      p.CameraPivotPath,
	}
}

func playerApplier(c engine.Component, propName string, value any) bool {
	p, ok := c.(*PlayerController)
	if !ok {
		return false
	}
	const unset = -1e30
	v := engine.PropFloat(map[string]any{propName: value}, propName, unset)
	if v == unset {
		return false
	}
	switch propName {
	case "speed":
		p.Speed = v
	case "jumpVelocity":
		p.JumpVelocity = v
	case "mouseSensitivity":
		p.MouseSensitivity = v
	case "pitchMin":
		return p.SetPitchLimits(v, p.PitchMax)
	case "pitchMax":
		return p.SetPitchLimits(p.PitchMin, v)
	case "gravity":
		p.Gravity = v
	default:
		return false
	}
	return true
}
