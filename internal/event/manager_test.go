package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchDeliversInOrder(t *testing.T) {
	m := NewManager()
	var got []string
	m.Subscribe(TypeCursorMoved, func(e Event) bool {
		got = append(got, "first")
		return false
	})
	m.Subscribe(TypeCursorMoved, func(e Event) bool {
		data := e.Data.(CursorMovedData)
		got = append(got, "second")
		assert.Equal(t, 4, data.NewPosition.Line)
		return false
	})
	m.Subscribe(TypeBufferLoaded, func(Event) bool {
		t.Fatal("wrong type delivered")
		return false
	})

	data := CursorMovedData{}
	data.NewPosition.Line = 4
	m.Dispatch(TypeCursorMoved, data)

	assert.Equal(t, []string{"first", "second"}, got)
}

func TestConsumedEventStopsDelivery(t *testing.T) {
	m := NewManager()
	calls := 0
	m.Subscribe(TypeSearchChanged, func(Event) bool { calls++; return true })
	m.Subscribe(TypeSearchChanged, func(Event) bool { calls++; return false })

	m.Dispatch(TypeSearchChanged, SearchChangedData{})

	assert.Equal(t, 1, calls)
}

func TestUnsubscribe(t *testing.T) {
	m := NewManager()
	calls := 0
	id := m.Subscribe(TypeBufferModified, func(Event) bool { calls++; return false })

	m.Dispatch(TypeBufferModified, nil)
	m.Unsubscribe(id)
	m.Unsubscribe(id)
	m.Dispatch(TypeBufferModified, nil)

	assert.Equal(t, 1, calls)
}

func TestNilManagerDropsEvents(t *testing.T) {
	var m *Manager
	assert.NotPanics(t, func() { m.Dispatch(TypeBufferLoaded, nil) })
}

func TestConcurrentSubscribeAndDispatch(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.Subscribe(TypeFocusChanged, func(Event) bool { return false })
		}()
		go func() {
			defer wg.Done()
			m.Dispatch(TypeFocusChanged, DocumentData{})
		}()
	}
	wg.Wait()
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "buffer.modified", TypeBufferModified.String())
	assert.Equal(t, "unknown", Type(999).String())
}
