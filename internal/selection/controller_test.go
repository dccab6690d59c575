package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testNode struct {
	name     string
	children []*testNode
	expanded bool
	payload  any
}

type testTree struct {
	roots    []*testNode
	selected map[*testNode]bool
	watchers []func(*testNode, bool)
	writes   int
}

func (t *testTree) Roots() []*testNode               { return t.roots }
func (t *testTree) Children(n *testNode) []*testNode { return n.children }
func (t *testTree) IsExpanded(n *testNode) bool      { return n.expanded }
func (t *testTree) Payload(n *testNode) any          { return n.payload }

func (t *testTree) IsSelected(n *testNode) bool { return t.selected[n] }

func (t *testTree) SetSelected(n *testNode, v bool) {
	if t.selected[n] == v {
		return
	}
	t.writes++
	t.selected[n] = v
	for _, w := range t.watchers {
		w(n, v)
	}
}

func (t *testTree) Watch(fn func(*testNode, bool)) {
	t.watchers = append(t.watchers, fn)
}

func node(name string, children ...*testNode) *testNode {
	return &testNode{name: name, children: children, expanded: true}
}

// fixture builds Root -> [FolderA -> [Leaf1, Leaf2], FolderB -> [Leaf3]]
type fixture struct {
	tree                                  *testTree
	list                                  *List
	ctrl                                  *Controller[*testNode]
	folderA, leaf1, leaf2, folderB, leaf3 *testNode
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{}
	f.leaf1 = node("Leaf1")
	f.leaf2 = node("Leaf2")
	f.leaf3 = node("Leaf3")
	f.folderA = node("FolderA", f.leaf1, f.leaf2)
	f.folderB = node("FolderB", f.leaf3)
	f.tree = &testTree{
		roots:    []*testNode{f.folderA, f.folderB},
		selected: make(map[*testNode]bool),
	}
	f.list = NewList()
	f.ctrl = NewController[*testNode](f.tree, f.tree, f.list)
	return f
}

func (f *fixture) all() []*testNode {
	return []*testNode{f.folderA, f.leaf1, f.leaf2, f.folderB, f.leaf3}
}

func (f *fixture) requireSynced(t *testing.T) {
	t.Helper()
	for _, n := range f.all() {
		assert.Equal(t, f.tree.IsSelected(n), f.list.Contains(n), "flag and list disagree for %s", n.name)
	}
}

func names(items []any) []string {
	var out []string
	for _, v := range items {
		out = append(out, v.(*testNode).name)
	}
	return out
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ModNone, Classify(0))
	assert.Equal(t, ModNone, Classify(ModAlt|ModMeta))
	assert.Equal(t, ModCtrlOnly, Classify(ModCtrl|ModAlt))
	assert.Equal(t, ModShiftOnly, Classify(ModShift))
	assert.Equal(t, ModCtrlShift, Classify(ModCtrl|ModShift))
}

func TestScenario(t *testing.T) {
	f := newFixture(t)

	f.ctrl.HandleEvent(f.leaf1, 0, EventSelected)
	assert.Equal(t, []string{"Leaf1"}, names(f.list.Items()))

	f.ctrl.HandleEvent(f.leaf3, ModShift, EventSelected)
	assert.ElementsMatch(t, []string{"Leaf1", "Leaf2", "FolderB", "Leaf3"}, names(f.list.Items()))

	f.ctrl.HandleEvent(f.folderA, ModCtrl, EventSelected)
	assert.ElementsMatch(t, []string{"FolderA", "Leaf1", "Leaf2", "FolderB", "Leaf3"}, names(f.list.Items()))

	f.requireSynced(t)
}

func TestSingleSelectIdempotent(t *testing.T) {
	f := newFixture(t)

	f.ctrl.SingleSelect(f.leaf2)
	assert.Equal(t, []string{"Leaf2"}, names(f.list.Items()))
	f.ctrl.SingleSelect(f.leaf2)
	assert.Equal(t, []string{"Leaf2"}, names(f.list.Items()))

	anchor, ok := f.ctrl.Anchor()
	require.True(t, ok)
	assert.Same(t, f.leaf2, anchor)
	f.requireSynced(t)
}

func TestToggleSymmetry(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SingleSelect(f.leaf1)
	before := f.list.Items()

	f.ctrl.ToggleSelect(f.folderB)
	assert.True(t, f.tree.IsSelected(f.folderB))
	f.ctrl.ToggleSelect(f.folderB)

	assert.False(t, f.tree.IsSelected(f.folderB))
	assert.Equal(t, before, f.list.Items())
	f.requireSynced(t)
}

func TestToggleKeepsExistingAnchor(t *testing.T) {
	f := newFixture(t)

	f.ctrl.ToggleSelect(f.leaf1)
	f.ctrl.ToggleSelect(f.leaf3)

	anchor, ok := f.ctrl.Anchor()
	require.True(t, ok)
	assert.Same(t, f.leaf1, anchor)
}

func TestRangeInclusivity(t *testing.T) {
	a, b, c, d, e := node("a"), node("b"), node("c"), node("d"), node("e")
	tree := &testTree{roots: []*testNode{a, b, c, d, e}, selected: make(map[*testNode]bool)}
	list := NewList()
	ctrl := NewController[*testNode](tree, tree, list)

	ctrl.SingleSelect(b)
	ctrl.RangeSelect(d)
	assert.ElementsMatch(t, []string{"b", "c", "d"}, names(list.Items()))

	ctrl.RangeSelect(a)
	assert.ElementsMatch(t, []string{"a", "b"}, names(list.Items()))

	anchor, _ := ctrl.Anchor()
	assert.Same(t, b, anchor)
}

func TestRangeSymmetry(t *testing.T) {
	all := newFixture(t).all()
	for i := range all {
		for j := range all {
			f1 := newFixture(t)
			n1 := f1.all()
			f1.ctrl.SingleSelect(n1[i])
			f1.ctrl.RangeSelect(n1[j])

			f2 := newFixture(t)
			n2 := f2.all()
			f2.ctrl.SingleSelect(n2[j])
			f2.ctrl.RangeSelect(n2[i])

			for k := range n1 {
				assert.Equal(t, f1.tree.IsSelected(n1[k]), f2.tree.IsSelected(n2[k]),
					"range %d..%d differs at %s", i, j, n1[k].name)
			}
		}
	}
}

func TestRangeSameNodeSelectsOnlyThatNode(t *testing.T) {
	f := newFixture(t)

	f.ctrl.SingleSelect(f.leaf2)
	f.ctrl.RangeSelect(f.leaf2)

	assert.Equal(t, []string{"Leaf2"}, names(f.list.Items()))
	f.requireSynced(t)
}

func TestRangeResolvesAnchorFromLastSelected(t *testing.T) {
	f := newFixture(t)
	f.tree.SetSelected(f.leaf1, true)

	f.ctrl.RangeSelect(f.leaf3)

	anchor, ok := f.ctrl.Anchor()
	require.True(t, ok)
	assert.Same(t, f.leaf1, anchor)
	assert.ElementsMatch(t, []string{"Leaf1", "Leaf2", "FolderB", "Leaf3"}, names(f.list.Items()))
}

func TestRangeResolvesAnchorFromFirstVisible(t *testing.T) {
	f := newFixture(t)

	f.ctrl.RangeSelect(f.leaf2)

	anchor, ok := f.ctrl.Anchor()
	require.True(t, ok)
	assert.Same(t, f.folderA, anchor)
	assert.ElementsMatch(t, []string{"FolderA", "Leaf1", "Leaf2"}, names(f.list.Items()))
}

func TestRangeOnEmptyTreeIsNoop(t *testing.T) {
	tree := &testTree{selected: make(map[*testNode]bool)}
	list := NewList()
	ctrl := NewController[*testNode](tree, tree, list)

	ctrl.RangeSelect(node("orphan"))

	_, ok := ctrl.Anchor()
	assert.False(t, ok)
	assert.Zero(t, list.Len())
}

func TestRangeReresolvesStaleAnchor(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SingleSelect(f.leaf1)

	// Leaf1 disappears from the data source
	f.folderA.children = []*testNode{f.leaf2}
	f.ctrl.HandleEvent(f.leaf1, 0, EventUnselected)

	f.ctrl.RangeSelect(f.leaf3)

	anchor, ok := f.ctrl.Anchor()
	require.True(t, ok)
	assert.Same(t, f.folderA, anchor)
	assert.ElementsMatch(t, []string{"FolderA", "Leaf2", "FolderB", "Leaf3"}, names(f.list.Items()))
}

func TestRangeReresolvesCollapsedAnchor(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SingleSelect(f.leaf1)
	f.ctrl.ToggleSelect(f.folderB)
	f.folderA.expanded = false

	f.ctrl.RangeSelect(f.leaf3)

	anchor, _ := f.ctrl.Anchor()
	assert.Same(t, f.folderB, anchor)
	assert.True(t, f.tree.IsSelected(f.folderB))
	assert.True(t, f.tree.IsSelected(f.leaf3))
	assert.False(t, f.tree.IsSelected(f.folderA))
}

func TestRangeToHiddenTargetIsNoop(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SingleSelect(f.leaf1)
	f.folderB.expanded = false
	writes := f.tree.writes

	f.ctrl.RangeSelect(f.leaf3)

	assert.Equal(t, []string{"Leaf1"}, names(f.list.Items()))
	assert.False(t, f.tree.IsSelected(f.folderB))
	assert.False(t, f.tree.IsSelected(f.leaf3))
	assert.Equal(t, writes, f.tree.writes)
	anchor, _ := f.ctrl.Anchor()
	assert.Same(t, f.leaf1, anchor)
}

func TestClearAllIncludesHiddenAndSettlesOnce(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SingleSelect(f.leaf1)
	f.ctrl.RangeSelect(f.leaf3)
	f.folderB.expanded = false

	calls := 0
	f.ctrl.SetChangeFunction(func() { calls++ })
	f.ctrl.ClearAll()

	assert.Equal(t, 1, calls)
	assert.Zero(t, f.list.Len())
	assert.False(t, f.tree.IsSelected(f.leaf3))
	f.requireSynced(t)

	f.ctrl.ClearAll()
	assert.Equal(t, 1, calls, "nothing left to clear")
}

func TestCtrlShiftIsNoop(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SingleSelect(f.leaf1)
	f.ctrl.ToggleSelect(f.folderB)
	before := f.list.Items()
	writes := f.tree.writes
	anchor, _ := f.ctrl.Anchor()

	f.ctrl.HandleEvent(f.leaf3, ModCtrl|ModShift, EventSelected)

	assert.Equal(t, before, f.list.Items())
	assert.Equal(t, writes, f.tree.writes)
	after, _ := f.ctrl.Anchor()
	assert.Same(t, anchor, after)
}

func TestUnselectedGuard(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SingleSelect(f.leaf1)

	f.ctrl.HandleEvent(f.leaf1, ModShift, EventUnselected)
	assert.True(t, f.tree.IsSelected(f.leaf1))
	f.ctrl.HandleEvent(f.leaf1, ModCtrl, EventUnselected)
	assert.True(t, f.tree.IsSelected(f.leaf1))

	f.ctrl.HandleEvent(f.leaf1, ModAlt, EventUnselected)
	assert.False(t, f.tree.IsSelected(f.leaf1))
	assert.Zero(t, f.list.Len())
}

func TestDisconnectedGuard(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SingleSelect(f.leaf1)
	f.leaf2.payload = Disconnected

	for _, mods := range []KeyMod{0, ModCtrl, ModShift} {
		f.ctrl.HandleEvent(f.leaf2, mods, EventSelected)
		assert.Equal(t, []string{"Leaf1"}, names(f.list.Items()))
	}
	f.ctrl.ToggleSelect(f.leaf2)
	f.ctrl.RangeSelect(f.leaf2)
	assert.Equal(t, []string{"Leaf1"}, names(f.list.Items()))
	assert.False(t, f.tree.IsSelected(f.leaf2))
}

func TestPayloadFallsBackToNode(t *testing.T) {
	f := newFixture(t)
	f.leaf3.payload = "sprite:walk"

	f.ctrl.SingleSelect(f.leaf3)
	assert.Equal(t, []any{"sprite:walk"}, f.list.Items())

	f.ctrl.SingleSelect(f.leaf1)
	assert.Equal(t, []any{f.leaf1}, f.list.Items())
}

func TestHandleIntentUsesModifierSource(t *testing.T) {
	f := newFixture(t)
	var held KeyMod
	f.ctrl.SetModifierSource(func() KeyMod { return held })

	f.ctrl.HandleIntent(f.leaf1, EventSelected)
	held = ModShift
	f.ctrl.HandleIntent(f.folderB, EventSelected)

	assert.ElementsMatch(t, []string{"Leaf1", "Leaf2", "FolderB"}, names(f.list.Items()))
}

func TestChangeFunctionFiresOncePerOperation(t *testing.T) {
	f := newFixture(t)
	calls := 0
	f.ctrl.SetChangeFunction(func() { calls++ })

	f.ctrl.SingleSelect(f.leaf1)
	assert.Equal(t, 1, calls)

	f.ctrl.RangeSelect(f.leaf3)
	assert.Equal(t, 2, calls)

	f.ctrl.HandleEvent(f.leaf3, ModCtrl|ModShift, EventSelected)
	assert.Equal(t, 2, calls)
}

func TestResetClearsAnchor(t *testing.T) {
	f := newFixture(t)
	f.ctrl.SingleSelect(f.leaf2)

	f.ctrl.Reset()

	_, ok := f.ctrl.Anchor()
	assert.False(t, ok)
}
