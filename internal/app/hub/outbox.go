/*
Package hub contains the core logic for tracking connected clients and fanning
record updates out to them.

This file defines the outbox, the ordered, unbounded queue of outbound frames
owned by one connection. A single consumer (the client's WritePump) drains it;
producers never block, so a slow client cannot stall a broadcast.
*/
package hub

import "sync"

// outbox is the per-client outbound delivery queue.
// Put never blocks and is a silent no-op after Close, so a broadcast racing a
// disconnect is harmless. Exactly one goroutine may consume via Wait/Pop.
type outbox struct {
	// mu protects queue and closed.
	mu sync.Mutex

	// queue holds marshaled frames in delivery order. Unbounded: a stalled
	// client accumulates frames, which is the accepted resource trade-off.
	queue [][]byte

	// wake carries at most one pending signal for the consumer.
	wake chan struct{}

	// closed marks the outbox as finished; queued frames are discarded.
	closed bool
}

func newOutbox() *outbox {
	return &outbox{wake: make(chan struct{}, 1)}
}

// signal nudges the consumer without ever blocking the producer.
func (o *outbox) signal() {
	select {
	case o.wake <- struct{}{}:
	default:
	}
}

// Put enqueues a frame for delivery. Frames put after Close are dropped.
func (o *outbox) Put(frame []byte) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.queue = append(o.queue, frame)
	o.mu.Unlock()

	o.signal()
}

// Wait returns the channel the consumer selects on. A receive means frames
// may be pending or the outbox may have closed; the consumer re-checks via Pop.
func (o *outbox) Wait() <-chan struct{} {
	return o.wake
}

// Pop removes and returns the oldest queued frame.
// ok reports whether a frame was returned; open reports whether the outbox
// can still deliver. Once open is false no further frames will ever arrive.
func (o *outbox) Pop() (frame []byte, ok bool, open bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil, false, false
	}

	if len(o.queue) > 0 {
		frame = o.queue[0]
		o.queue = o.queue[1:]
		return frame, true, true
	}

	return nil, false, true
}

// Close marks the outbox as finished and drops any undelivered frames.
// Idempotent; wakes the consumer so it can observe the closure.
func (o *outbox) Close() {
	o.mu.Lock()
	o.closed = true
	o.queue = nil
	o.mu.Unlock()

	o.signal()
}
