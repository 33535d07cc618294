package scene

import "github.com/go-gl/mathgl/mgl32"

// Axis names one of the three principal axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes lists the principal axes in application order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

// Vec returns the unit vector along the axis.
func (a Axis) Vec() mgl32.Vec3 {
	switch a {
	case AxisY:
		return mgl32.Vec3{0, 1, 0}
	case AxisZ:
		return mgl32.Vec3{0, 0, 1}
	default:
		return mgl32.Vec3{1, 0, 0}
	}
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Space selects the frame a rotation is expressed in.
type Space int

const (
	// Local rotates about the mesh's own axes.
	Local Space = iota
	// World rotates about the scene axes.
	World
)

func (s Space) String() string {
	if s == World {
		return "WORLD"
	}
	return "LOCAL"
}
