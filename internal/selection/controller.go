package selection

// Controller applies single, toggle and range selection to a tree and keeps
// the host's list in step with every node's selected flag
type Controller[N comparable] struct {
	tree  Tree[N]
	flags FlagStore[N]
	host  Host

	anchor    N
	hasAnchor bool

	modsFn   ModifierSource
	changeFn func()
	changed  bool
}

// NewController creates a controller and subscribes it to flag changes
func NewController[N comparable](tree Tree[N], flags FlagStore[N], host Host) *Controller[N] {
	c := &Controller[N]{
		tree:  tree,
		flags: flags,
		host:  host,
	}
	flags.Watch(c.syncSelection)
	return c
}

// SetModifierSource sets the function HandleIntent queries for modifiers
func (c *Controller[N]) SetModifierSource(fn ModifierSource) {
	c.modsFn = fn
}

// SetChangeFunction sets a callback run once after any operation that
// changed the host list
func (c *Controller[N]) SetChangeFunction(fn func()) {
	c.changeFn = fn
}

// Anchor returns the current anchor, if any
func (c *Controller[N]) Anchor() (N, bool) {
	return c.anchor, c.hasAnchor
}

// Reset forgets the anchor. Call it when the data source is rebuilt; any
// host changes the rebuild caused are reported through the change function.
func (c *Controller[N]) Reset() {
	var zero N
	c.anchor = zero
	c.hasAnchor = false
	c.settle()
}

// HandleIntent is HandleEvent with modifiers taken from the modifier source
func (c *Controller[N]) HandleIntent(node N, kind EventKind) {
	var raw KeyMod
	if c.modsFn != nil {
		raw = c.modsFn()
	}
	c.HandleEvent(node, raw, kind)
}

// HandleEvent is the entry point for toolkit selection events
func (c *Controller[N]) HandleEvent(node N, raw KeyMod, kind EventKind) {
	if c.isDisconnected(node) {
		return
	}

	mods := Classify(raw)
	defer c.settle()

	if kind == EventUnselected {
		// A held modifier means one of our own multi-select operations is
		// in flight; clearing here would undo it.
		if mods == ModNone {
			c.flags.SetSelected(node, false)
		}
		return
	}

	switch mods {
	case ModCtrlShift:
	case ModCtrlOnly:
		c.toggleSelect(node)
	case ModShiftOnly:
		c.rangeSelect(node)
	default:
		c.singleSelect(node)
	}
}

// ClearAll deselects every node, hidden ones included, and reports the
// change once. The anchor is kept.
func (c *Controller[N]) ClearAll() {
	defer c.settle()
	for n := range All(c.tree) {
		if !c.isDisconnected(n) && c.flags.IsSelected(n) {
			c.flags.SetSelected(n, false)
		}
	}
}

// SingleSelect selects node alone among the visible nodes and anchors on it
func (c *Controller[N]) SingleSelect(node N) {
	if c.isDisconnected(node) {
		return
	}
	defer c.settle()
	c.singleSelect(node)
}

// ToggleSelect flips node's selection
func (c *Controller[N]) ToggleSelect(node N) {
	if c.isDisconnected(node) {
		return
	}
	defer c.settle()
	c.toggleSelect(node)
}

// RangeSelect selects the visible span between the anchor and node
func (c *Controller[N]) RangeSelect(node N) {
	if c.isDisconnected(node) {
		return
	}
	defer c.settle()
	c.rangeSelect(node)
}

func (c *Controller[N]) singleSelect(node N) {
	for n := range Expanded(c.tree) {
		c.flags.SetSelected(n, n == node)
	}
	c.flags.SetSelected(node, true)
	c.setAnchor(node)
}

func (c *Controller[N]) toggleSelect(node N) {
	c.flags.SetSelected(node, !c.flags.IsSelected(node))
	if !c.hasAnchor {
		c.setAnchor(node)
	}
}

func (c *Controller[N]) rangeSelect(node N) {
	// only visible nodes take part in a range
	if !contains(Expanded(c.tree), node) {
		return
	}
	if !c.resolveAnchor() {
		return
	}

	anchor := c.anchor
	inside := false
	for n := range Expanded(c.tree) {
		if n == anchor || n == node {
			c.flags.SetSelected(n, true)
			if anchor != node {
				inside = !inside
			}
			continue
		}
		c.flags.SetSelected(n, inside)
	}
}

// resolveAnchor keeps a visible anchor, otherwise picks the last selected
// visible node, otherwise the first visible node
func (c *Controller[N]) resolveAnchor() bool {
	seq := Expanded(c.tree)
	if c.hasAnchor && contains(seq, c.anchor) {
		return true
	}

	var first, last N
	var haveFirst, haveLast bool
	for n := range seq {
		if !haveFirst {
			first, haveFirst = n, true
		}
		if c.flags.IsSelected(n) {
			last, haveLast = n, true
		}
	}

	switch {
	case haveLast:
		c.setAnchor(last)
	case haveFirst:
		c.setAnchor(first)
	default:
		c.Reset()
		return false
	}
	return true
}

func (c *Controller[N]) setAnchor(n N) {
	c.anchor = n
	c.hasAnchor = true
}

// syncSelection is the flag store hook that mirrors flags into the host
func (c *Controller[N]) syncSelection(node N, selected bool) {
	v := c.payload(node)
	if selected {
		if !c.host.Contains(v) {
			c.host.Add(v)
			c.changed = true
		}
		return
	}
	if c.host.Contains(v) {
		c.host.Remove(v)
		c.changed = true
	}
}

func (c *Controller[N]) settle() {
	if !c.changed {
		return
	}
	c.changed = false
	if c.changeFn != nil {
		c.changeFn()
	}
}

func (c *Controller[N]) payload(node N) any {
	if v := c.tree.Payload(node); v != nil {
		return v
	}
	return node
}

func (c *Controller[N]) isDisconnected(node N) bool {
	return c.tree.Payload(node) == Disconnected
}
