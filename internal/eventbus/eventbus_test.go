package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan DomainEvent) DomainEvent {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestPublishDeliversInOrder(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 4)
	b.Subscribe(EventAtlasAdded, func(e DomainEvent) { got <- e })

	b.Publish(AtlasAddedEvent{Name: "hero"})
	b.Publish(AtlasAddedEvent{Name: "tiles"})

	first := receive(t, got).(AtlasAddedEvent)
	second := receive(t, got).(AtlasAddedEvent)
	assert.Equal(t, "hero", first.Name)
	assert.Equal(t, "tiles", second.Name)
}

func TestSubscribeFiltersByType(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 4)
	b.Subscribe(EventSelectionChanged, func(e DomainEvent) { got <- e })

	b.Publish(AtlasRemovedEvent{Name: "hero"})
	b.Publish(SelectionChangedEvent{Total: 2})

	e := receive(t, got)
	require.IsType(t, SelectionChangedEvent{}, e)
	assert.Equal(t, 2, e.(SelectionChangedEvent).Total)
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	defer b.Close()

	removed := make(chan DomainEvent, 1)
	kept := make(chan DomainEvent, 1)
	unsubscribe := b.Subscribe(EventProjectReset, func(e DomainEvent) { removed <- e })
	b.Subscribe(EventProjectReset, func(e DomainEvent) { kept <- e })

	unsubscribe()
	b.Publish(ProjectResetEvent{})

	receive(t, kept)
	assert.Empty(t, removed)
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(e DomainEvent) { got <- e })

	b.Publish(ErrorEvent{Message: "x"})

	receive(t, got)
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()
	b.Close()

	assert.NotPanics(t, func() { b.Publish(ProjectResetEvent{}) })
	assert.NotPanics(t, b.Close)
}
