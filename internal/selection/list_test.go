package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListIsIdempotent(t *testing.T) {
	l := NewList()

	l.Add("a")
	l.Add("b")
	l.Add("a")
	assert.Equal(t, []any{"a", "b"}, l.Items())

	l.Remove("c")
	l.Remove("a")
	l.Remove("a")
	assert.Equal(t, []any{"b"}, l.Items())
	assert.Equal(t, 1, l.Len())

	l.Clear()
	assert.False(t, l.Contains("b"))
}

func TestListItemsIsACopy(t *testing.T) {
	l := NewList()
	l.Add(1)

	items := l.Items()
	items[0] = 2

	assert.True(t, l.Contains(1))
}
