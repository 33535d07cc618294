package scene

import "github.com/go-gl/mathgl/mgl32"

// HemisphericLight lights from Direction with Diffuse and from the
// opposite hemisphere with Ground.
type HemisphericLight struct {
	Name      string
	Direction mgl32.Vec3
	Diffuse   mgl32.Vec3
	Ground    mgl32.Vec3
	Intensity float32
}

// NewHemisphericLight creates a white light pointing along direction.
func NewHemisphericLight(name string, direction mgl32.Vec3) *HemisphericLight {
	return &HemisphericLight{
		Name:      name,
		Direction: direction.Normalize(),
		Diffuse:   mgl32.Vec3{1, 1, 1},
		Ground:    mgl32.Vec3{0, 0, 0},
		Intensity: 1,
	}
}
