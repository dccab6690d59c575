package tree

import (
	"github.com/google/uuid"

	"atlasgrip/internal/domain"
	"atlasgrip/internal/selection"
)

// Kind classifies what a node's payload is
type Kind int

const (
	KindAtlas Kind = iota
	KindFolder
	KindSprite
)

// String returns the kind name shown in the UI
func (k Kind) String() string {
	switch k {
	case KindAtlas:
		return "atlas"
	case KindFolder:
		return "folder"
	default:
		return "sprite"
	}
}

// Node is one row of the project tree
type Node struct {
	ID       string
	Label    string
	Kind     Kind
	Payload  any // *domain.Atlas, *domain.Folder or *domain.Sprite
	Depth    int
	Parent   *Node
	Children []*Node
	Expanded bool
	Selected bool
}

// Store holds the node tree and implements both selection.Tree and
// selection.FlagStore. It is owned by a single goroutine.
type Store struct {
	roots    []*Node
	byID     map[string]*Node
	watchers []func(*Node, bool)
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{byID: make(map[string]*Node)}
}

// FromProject builds a store mirroring the project's atlases
func FromProject(p *domain.Project, expanded bool) *Store {
	s := NewStore()
	s.Load(p, expanded)
	return s
}

// Load regenerates the tree from p. Existing nodes are removed first, so
// watchers see every selection drop and old nodes become disconnected.
func (s *Store) Load(p *domain.Project, expanded bool) {
	for len(s.roots) > 0 {
		s.Remove(s.roots[0])
	}
	for _, atlas := range p.Atlases {
		n := s.Add(nil, atlas.Name(), KindAtlas, atlas)
		s.addContents(n, atlas.Folders, atlas.Sprites)
	}
	s.SetAllExpanded(expanded)
}

func (s *Store) addContents(parent *Node, folders []*domain.Folder, sprites []*domain.Sprite) {
	for _, f := range folders {
		n := s.Add(parent, f.Name, KindFolder, f)
		s.addContents(n, f.Folders, f.Sprites)
	}
	for _, sp := range sprites {
		s.Add(parent, sp.Name, KindSprite, sp)
	}
}

// Add appends a collapsed node under parent (nil for a root) and returns it
func (s *Store) Add(parent *Node, label string, kind Kind, payload any) *Node {
	n := &Node{
		ID:      uuid.NewString(),
		Label:   label,
		Kind:    kind,
		Payload: payload,
		Parent:  parent,
	}
	if parent == nil {
		s.roots = append(s.roots, n)
	} else {
		n.Depth = parent.Depth + 1
		parent.Children = append(parent.Children, n)
	}
	s.byID[n.ID] = n
	return n
}

// Remove detaches n and its subtree. Selected nodes are deselected first so
// watchers see the real payload leave, then each node is marked disconnected.
func (s *Store) Remove(n *Node) {
	s.walk(n, func(x *Node) {
		s.SetSelected(x, false)
		x.Payload = selection.Disconnected
		delete(s.byID, x.ID)
	})

	siblings := &s.roots
	if n.Parent != nil {
		siblings = &n.Parent.Children
	}
	for i, c := range *siblings {
		if c == n {
			*siblings = append((*siblings)[:i:i], (*siblings)[i+1:]...)
			break
		}
	}
	n.Parent = nil
}

func (s *Store) walk(n *Node, fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		s.walk(c, fn)
	}
}

// Get looks a node up by ID
func (s *Store) Get(id string) *Node {
	return s.byID[id]
}

// Len returns the number of nodes in the store
func (s *Store) Len() int {
	return len(s.byID)
}

// Roots returns the top-level nodes
func (s *Store) Roots() []*Node { return s.roots }

// Children returns n's children in declared order
func (s *Store) Children(n *Node) []*Node { return n.Children }

// IsExpanded reports whether n shows its children
func (s *Store) IsExpanded(n *Node) bool { return n.Expanded }

// Payload returns the domain object behind n
func (s *Store) Payload(n *Node) any { return n.Payload }

// IsSelected reports n's selected flag
func (s *Store) IsSelected(n *Node) bool { return n.Selected }

// SetSelected writes n's flag and notifies watchers if it changed
func (s *Store) SetSelected(n *Node, selected bool) {
	if n.Selected == selected {
		return
	}
	n.Selected = selected
	for _, w := range s.watchers {
		w(n, selected)
	}
}

// Watch registers fn for flag changes
func (s *Store) Watch(fn func(*Node, bool)) {
	s.watchers = append(s.watchers, fn)
}

// Visible returns the expanded traversal as a slice
func (s *Store) Visible() []*Node {
	var out []*Node
	for n := range selection.Expanded[*Node](s) {
		out = append(out, n)
	}
	return out
}

// SetExpanded expands or collapses n; leaves are never expanded
func (s *Store) SetExpanded(n *Node, expanded bool) {
	if len(n.Children) == 0 {
		n.Expanded = false
		return
	}
	n.Expanded = expanded
}

// ExpandTo expands every ancestor of n so that it becomes visible
func (s *Store) ExpandTo(n *Node) {
	for p := n.Parent; p != nil; p = p.Parent {
		p.Expanded = true
	}
}

// SetAllExpanded expands or collapses every node with children
func (s *Store) SetAllExpanded(expanded bool) {
	for _, r := range s.roots {
		s.walk(r, func(x *Node) { s.SetExpanded(x, expanded) })
	}
}

// All returns every node in pre-order regardless of expansion
func (s *Store) All() []*Node {
	var out []*Node
	for _, r := range s.roots {
		s.walk(r, func(x *Node) { out = append(out, x) })
	}
	return out
}

// Selected returns the selected nodes in pre-order
func (s *Store) Selected() []*Node {
	var out []*Node
	for _, n := range s.All() {
		if n.Selected {
			out = append(out, n)
		}
	}
	return out
}
