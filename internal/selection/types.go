package selection

// KeyMod is a raw modifier bitmask as reported by the host's input layer
type KeyMod uint8

const (
	ModCtrl KeyMod = 1 << iota
	ModShift
	ModAlt
	ModMeta
)

// Modifiers is the classified modifier state that drives dispatch
type Modifiers int

const (
	ModNone Modifiers = iota
	ModCtrlOnly
	ModShiftOnly
	ModCtrlShift
)

// String returns a short name for logging
func (m Modifiers) String() string {
	switch m {
	case ModCtrlOnly:
		return "ctrl"
	case ModShiftOnly:
		return "shift"
	case ModCtrlShift:
		return "ctrl+shift"
	default:
		return "none"
	}
}

// Classify reduces a raw bitmask to one of the four tracked states.
// Only ctrl and shift are tracked; other bits are ignored.
func Classify(raw KeyMod) Modifiers {
	ctrl := raw&ModCtrl != 0
	shift := raw&ModShift != 0
	switch {
	case ctrl && shift:
		return ModCtrlShift
	case ctrl:
		return ModCtrlOnly
	case shift:
		return ModShiftOnly
	default:
		return ModNone
	}
}

// EventKind tells whether the toolkit reported a node gaining or losing selection
type EventKind int

const (
	EventSelected EventKind = iota
	EventUnselected
)

// Tree is the data source the controller walks
type Tree[N comparable] interface {
	Roots() []N
	Children(n N) []N
	IsExpanded(n N) bool
	// Payload returns the domain value for n, or nil to use n itself
	Payload(n N) any
}

// FlagStore holds the per-node selected flag. SetSelected must call every
// watcher synchronously when, and only when, the value changes.
type FlagStore[N comparable] interface {
	IsSelected(n N) bool
	SetSelected(n N, selected bool)
	Watch(fn func(n N, selected bool))
}

// Host owns the output selection list; the controller is its only writer
type Host interface {
	Add(v any)
	Remove(v any)
	Contains(v any) bool
}

// ModifierSource reports the modifiers held when an intent fires
type ModifierSource func() KeyMod

type disconnected struct{}

// String mirrors the placeholder text toolkits show for detached items
func (disconnected) String() string { return "{DisconnectedItem}" }

// Disconnected is the payload a data source reports for a node that is being
// removed. Events targeting such nodes are ignored.
var Disconnected any = disconnected{}
