package workflow

import "sync"

// EventKind says what changed.
type EventKind string

const (
	EventStage    EventKind = "stage"
	EventProgress EventKind = "progress"
	EventStatus   EventKind = "status"
	EventEdit     EventKind = "edit"
	EventError    EventKind = "error"
)

// Event is delivered to listeners after every change, carrying a snapshot
// of the state as of that change.
type Event struct {
	Kind  EventKind
	State State
}

// progressStream carries upload percentages from the transport goroutine
// to the session. The stream ends when Close is called, after which late
// sends are dropped.
type progressStream struct {
	mu     sync.Mutex
	ch     chan int
	done   chan struct{}
	closed bool
}

func newProgressStream(apply func(pct int)) *progressStream {
	p := &progressStream{
		ch:   make(chan int),
		done: make(chan struct{}),
	}
	go func() {
		defer close(p.done)
		for pct := range p.ch {
			apply(pct)
		}
	}()
	return p
}

// Send forwards pct unless the stream has been closed.
func (p *progressStream) Send(pct int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.ch <- pct
}

// Close terminates the stream and waits until every sent value is applied.
func (p *progressStream) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.ch)
	}
	p.mu.Unlock()
	<-p.done
}
