package watch

import (
	"sync"
	"time"
)

// Source is the event stream a Debounced wraps. *Watcher implements it.
type Source interface {
	Path() string
	Events() <-chan Event
	Errors() <-chan error
	Close() error
}

// Debounced wraps a Source and coalesces rapid changes into one event.
// Editors commonly emit several events per save; a consumer reloading
// the file wants only the last one.
type Debounced struct {
	inner Source
	delay time.Duration

	mu       sync.Mutex
	pending  *pendingEvent
	events   chan Event
	errors   chan error
	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// pendingEvent tracks a coalesced event waiting to fire.
type pendingEvent struct {
	event Event
	timer *time.Timer
	ops   Op // combined operations
}

// Debounce wraps inner so that events arriving within delay of each
// other merge into one. A delay of zero or less selects 100ms.
func Debounce(inner Source, delay time.Duration) *Debounced {
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}

	d := &Debounced{
		inner:   inner,
		delay:   delay,
		events:  make(chan Event, 16),
		errors:  make(chan error, 16),
		closeCh: make(chan struct{}),
	}

	d.closedWg.Add(1)
	go d.processLoop()

	return d
}

// Path returns the watched path of the wrapped source.
func (d *Debounced) Path() string {
	return d.inner.Path()
}

// Events returns the debounced event channel. It is closed by Close.
func (d *Debounced) Events() <-chan Event {
	return d.events
}

// Errors returns the error channel. Errors forward without delay.
func (d *Debounced) Errors() <-chan error {
	return d.errors
}

// Close cancels any pending event, closes both channels, and closes the
// wrapped source. Closing twice is a no-op.
func (d *Debounced) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.closeCh)
	if d.pending != nil {
		d.pending.timer.Stop()
		d.pending = nil
	}
	d.mu.Unlock()

	d.closedWg.Wait()

	// The timer goroutine also sends on events; both it and this close
	// run under the mutex with the closed flag checked, so the send can
	// never hit a closed channel.
	d.mu.Lock()
	close(d.events)
	close(d.errors)
	d.mu.Unlock()

	return d.inner.Close()
}

// processLoop pumps the wrapped source until closed.
func (d *Debounced) processLoop() {
	defer d.closedWg.Done()

	for {
		select {
		case <-d.closeCh:
			return

		case event, ok := <-d.inner.Events():
			if !ok {
				return
			}
			d.handleEvent(event)

		case err, ok := <-d.inner.Errors():
			if !ok {
				return
			}
			d.forwardError(err)
		}
	}
}

// handleEvent merges the event into the pending one or arms the timer.
func (d *Debounced) handleEvent(event Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	if p := d.pending; p != nil {
		p.ops |= event.Op
		p.event.Op = p.ops
		p.event.Timestamp = event.Timestamp
		p.timer.Reset(d.delay)
		return
	}

	p := &pendingEvent{event: event, ops: event.Op}
	p.timer = time.AfterFunc(d.delay, d.fire)
	d.pending = p
}

// fire delivers the pending event, dropping it if the channel is full.
func (d *Debounced) fire() {
	d.mu.Lock()
	defer d.mu.Unlock()

	p := d.pending
	d.pending = nil
	if p == nil || d.closed {
		return
	}

	select {
	case d.events <- p.event:
	default:
	}
}

func (d *Debounced) forwardError(err error) {
	select {
	case d.errors <- err:
	default:
	}
}

// Flush fires the pending event immediately, if any.
func (d *Debounced) Flush() {
	d.mu.Lock()
	if p := d.pending; p != nil {
		p.timer.Stop()
	}
	d.mu.Unlock()

	d.fire()
}

// Pending reports whether an event is waiting to fire.
func (d *Debounced) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Ensure Debounced can stand in for the watcher it wraps.
var _ Source = (*Debounced)(nil)
