package progress

import (
	"context"
	"sync"
	"time"

	"github.com/jackzampolin/draftcheck/internal/workflow"
)

// RenderFunc receives every projected view. Calls are serialized.
type RenderFunc func(View)

// Reporter re-renders a session's state on every change and, while the
// session is reading or checking, on a ticker so the phases advance.
type Reporter struct {
	mu      sync.Mutex
	opts    Options
	render  RenderFunc
	now     func() time.Time
	state   workflow.State
	started time.Time
	gen     int
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	closed  bool
}

// NewReporter creates a reporter that calls render for each view.
func NewReporter(render RenderFunc, opts Options) *Reporter {
	return &Reporter{
		opts:   opts.withDefaults(),
		render: render,
		now:    time.Now,
	}
}

// Attach subscribes the reporter to a session.
func (r *Reporter) Attach(s *workflow.Session) {
	s.OnChange(r.Handle)
}

// Handle takes one workflow event. It starts the ticker when a long-running
// stage begins and stops it when the stage ends.
func (r *Reporter) Handle(e workflow.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	prev := r.state.Stage
	r.state = e.State
	if e.State.Stage != prev {
		r.stopLocked()
		r.started = r.now()
		if e.State.Stage == workflow.StageReading || e.State.Stage == workflow.StageChecking {
			r.startLocked()
		}
	}
	r.renderLocked()
}

// Close stops the ticker and waits for it to exit. Later events are ignored.
func (r *Reporter) Close() {
	r.mu.Lock()
	r.closed = true
	r.stopLocked()
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Reporter) startLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	gen := r.gen
	interval := min(r.opts.DotsInterval, r.opts.PhaseInterval)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.mu.Lock()
				if r.gen == gen && !r.closed {
					r.renderLocked()
				}
				r.mu.Unlock()
			}
		}
	}()
}

// stopLocked cancels the running ticker. A tick already waiting on the
// lock sees the bumped generation and does nothing.
func (r *Reporter) stopLocked() {
	r.gen++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *Reporter) renderLocked() {
	if r.render == nil {
		return
	}
	r.render(Project(r.state, r.now().Sub(r.started), r.opts))
}
