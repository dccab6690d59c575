package selection

import "iter"

// Expanded yields every visible node of t in pre-order: a node, then its
// children when it is expanded, before its next sibling. Each call to the
// returned sequence starts a fresh walk.
func Expanded[N comparable](t Tree[N]) iter.Seq[N] {
	return walk(t, true)
}

// All yields every node of t in pre-order, collapsed subtrees included
func All[N comparable](t Tree[N]) iter.Seq[N] {
	return walk(t, false)
}

func walk[N comparable](t Tree[N], expandedOnly bool) iter.Seq[N] {
	return func(yield func(N) bool) {
		roots := t.Roots()
		stack := make([]N, 0, len(roots))
		for i := len(roots) - 1; i >= 0; i-- {
			stack = append(stack, roots[i])
		}

		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(n) {
				return
			}

			if expandedOnly && !t.IsExpanded(n) {
				continue
			}
			children := t.Children(n)
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
}

// contains reports whether n is currently visible
func contains[N comparable](seq iter.Seq[N], n N) bool {
	for v := range seq {
		if v == n {
			return true
		}
	}
	return false
}
