package scene

// Trigger identifies a pointer event an action can be registered for.
type Trigger int

const (
	OnPointerOver Trigger = iota
	OnPointerOut
	OnPick
)

func (t Trigger) String() string {
	switch t {
	case OnPointerOver:
		return "pointer-over"
	case OnPointerOut:
		return "pointer-out"
	case OnPick:
		return "pick"
	default:
		return "unknown"
	}
}

// ActionManager holds per-node callbacks keyed by trigger.
type ActionManager struct {
	actions map[Trigger][]func()
}

// NewActionManager creates an empty action manager.
func NewActionManager() *ActionManager {
	return &ActionManager{actions: make(map[Trigger][]func())}
}

// RegisterAction adds fn to run when trigger fires.
func (am *ActionManager) RegisterAction(trigger Trigger, fn func()) {
	am.actions[trigger] = append(am.actions[trigger], fn)
}

// HasTrigger reports whether any action is registered for trigger.
func (am *ActionManager) HasTrigger(trigger Trigger) bool {
	return am != nil && len(am.actions[trigger]) > 0
}

// HasPointerTriggers reports whether over or out actions exist.
func (am *ActionManager) HasPointerTriggers() bool {
	return am.HasTrigger(OnPointerOver) || am.HasTrigger(OnPointerOut)
}

// Process runs the actions registered for trigger in registration order.
func (am *ActionManager) Process(trigger Trigger) {
	if am == nil {
		return
	}
	for _, fn := range am.actions[trigger] {
		fn()
	}
}

// Clear drops every registered action.
func (am *ActionManager) Clear() {
	if am == nil {
		return
	}
	clear(am.actions)
}
