package remote

import (
	"sync"
	"sync/atomic"
)

// Stream is a lossy, non-blocking event queue between a controller reader
// and the game tick. When the buffer is full the oldest event is dropped;
// a fresher direction snapshot always supersedes an older one anyway.
type Stream struct {
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
	dropped  atomic.Uint64
}

// NewStream creates a stream. bufferSize below 1 falls back to 64.
func NewStream(bufferSize int) *Stream {
	if bufferSize < 1 {
		bufferSize = 64
	}
	return &Stream{
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// Send queues an event without blocking.
func (s *Stream) Send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		select {
		case <-s.events:
			s.dropped.Add(1)
		default:
		}
		select {
		case s.events <- evt:
		default:
			s.dropped.Add(1)
		}
	}
}

// Drain returns every queued event in arrival order without blocking.
func (s *Stream) Drain() []Event {
	var out []Event
	for {
		select {
		case evt := <-s.events:
			out = append(out, evt)
		default:
			return out
		}
	}
}

// Dropped returns how many events were discarded due to a full buffer.
func (s *Stream) Dropped() uint64 {
	return s.dropped.Load()
}

// Done returns a channel closed when the stream is closed.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Close stops accepting events. Safe to call multiple times.
func (s *Stream) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
