package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/internal/engine/picking"
)

// DefaultIntersectionThreshold is the pick distance for lines, in world units.
const DefaultIntersectionThreshold = 0.1

// Lines is a single line segment drawn with a flat color.
type Lines struct {
	name    string
	From    mgl32.Vec3
	To      mgl32.Vec3
	Color   mgl32.Vec3
	Hovered bool
	Visible bool

	// IntersectionThreshold is the maximum ray distance that counts as a hit.
	IntersectionThreshold float32

	actions *ActionManager
}

// NewLines creates a visible segment from a to b.
func NewLines(name string, from, to, color mgl32.Vec3) *Lines {
	return &Lines{
		name:                  name,
		From:                  from,
		To:                    to,
		Color:                 color,
		Visible:               true,
		IntersectionThreshold: DefaultIntersectionThreshold,
	}
}

func (l *Lines) Name() string { return l.name }

// Actions returns the line action manager, creating it on first use.
func (l *Lines) Actions() *ActionManager {
	if l.actions == nil {
		l.actions = NewActionManager()
	}
	return l.actions
}

func (l *Lines) actionManager() *ActionManager { return l.actions }

func (l *Lines) intersect(ray picking.Ray, scale float32) (float32, bool) {
	if !l.Visible {
		return 0, false
	}
	dist, t := ray.DistanceToSegment(l.From, l.To)
	threshold := l.IntersectionThreshold
	if scale > 0 {
		threshold *= scale
	}
	if dist > threshold {
		return 0, false
	}
	return t, true
}
