package selection

// List is an ordered Host backed by a slice. Values must be comparable.
type List struct {
	items []any
}

// NewList creates an empty selection list
func NewList() *List {
	return &List{}
}

// Add appends v unless it is already present
func (l *List) Add(v any) {
	if l.Contains(v) {
		return
	}
	l.items = append(l.items, v)
}

// Remove deletes v if present, keeping the order of the rest
func (l *List) Remove(v any) {
	for i, item := range l.items {
		if item == v {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

// Contains reports whether v is in the list
func (l *List) Contains(v any) bool {
	for _, item := range l.items {
		if item == v {
			return true
		}
	}
	return false
}

// Items returns a copy of the selected values in insertion order
func (l *List) Items() []any {
	out := make([]any, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of selected values
func (l *List) Len() int {
	return len(l.items)
}

// Clear empties the list
func (l *List) Clear() {
	l.items = nil
}
