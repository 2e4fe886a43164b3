package hub

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubRegisterAssignsMonotonicIDs(t *testing.T) {
	h := NewHub()

	first := h.register(newOutbox())
	second := h.register(newOutbox())
	third := h.register(newOutbox())

	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(2), second)
	assert.Equal(t, uint64(3), third)

	h.unregister(second)

	// a freed slot never revives an old identity
	assert.Equal(t, uint64(4), h.register(newOutbox()))
}

func TestHubUnicastToUnknownClientIsNoop(t *testing.T) {
	h := NewHub()
	out := newOutbox()
	id := h.register(out)
	h.unregister(id)

	h.unicast(id, []byte("late"))
	h.unicast(9999, []byte("never registered"))

	_, ok, open := out.Pop()
	assert.False(t, ok)
	assert.False(t, open)
}

func TestHubUnicastReachesOnlyTarget(t *testing.T) {
	h := NewHub()
	outA := newOutbox()
	outB := newOutbox()
	idA := h.register(outA)
	h.register(outB)

	h.unicast(idA, []byte("for A"))

	frame, ok, _ := outA.Pop()
	require.True(t, ok)
	assert.Equal(t, "for A", string(frame))

	_, ok, _ = outB.Pop()
	assert.False(t, ok, "unicast must not leak to other clients")
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	h := NewHub()

	outboxes := make([]*outbox, 5)
	for i := range outboxes {
		outboxes[i] = newOutbox()
		h.register(outboxes[i])
	}

	h.broadcast([]byte("hello"))

	for i, out := range outboxes {
		frame, ok, _ := out.Pop()
		require.True(t, ok, "client %d missed the broadcast", i)
		assert.Equal(t, "hello", string(frame))
	}
}

func TestHubBroadcastSurvivesClosedOutbox(t *testing.T) {
	h := NewHub()

	outA := newOutbox()
	outB := newOutbox()
	outC := newOutbox()
	h.register(outA)
	h.register(outB)
	h.register(outC)

	// B's write pump has exited but B has not been unregistered yet
	outB.Close()

	h.broadcast([]byte("update"))

	frame, ok, _ := outA.Pop()
	require.True(t, ok)
	assert.Equal(t, "update", string(frame))

	frame, ok, _ = outC.Pop()
	require.True(t, ok)
	assert.Equal(t, "update", string(frame))
}

func TestHubUnregisterDuringBroadcasts(t *testing.T) {
	h := NewHub()

	const clients = 20
	ids := make([]uint64, clients)
	for i := range ids {
		ids[i] = h.register(newOutbox())
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			h.broadcast([]byte(fmt.Sprintf("frame-%d", i)))
		}
	}()

	go func() {
		defer wg.Done()
		for _, id := range ids[:clients/2] {
			h.unregister(id)
		}
	}()

	wg.Wait()

	assert.Equal(t, clients/2, h.ClientCount())
}

func TestHubShutdownClosesEveryOutbox(t *testing.T) {
	h := NewHub()

	outA := newOutbox()
	outB := newOutbox()
	h.register(outA)
	h.register(outB)

	h.Shutdown()

	assert.Equal(t, 0, h.ClientCount())

	_, _, open := outA.Pop()
	assert.False(t, open)
	_, _, open = outB.Pop()
	assert.False(t, open)
}
