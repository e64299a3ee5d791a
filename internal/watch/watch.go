// Package watch reports modifications to a single file.
package watch

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrDirNotExist is reported when the watched file's directory does
// not exist.
var ErrDirNotExist = errors.New("directory does not exist")

// Op classifies an observed change. Ops combine as a bitmask when the
// platform reports several at once.
type Op int

// Observable operations.
const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

// Has reports whether o contains all of op.
func (o Op) Has(op Op) bool {
	return o&op == op
}

func (o Op) String() string {
	switch {
	case o.Has(OpCreate):
		return "create"
	case o.Has(OpWrite):
		return "write"
	case o.Has(OpRemove):
		return "remove"
	case o.Has(OpRename):
		return "rename"
	}
	return "unknown"
}

// Event describes one observed change to the watched file.
type Event struct {
	Path      string
	Op        Op
	Timestamp time.Time
}

// Watcher reports changes to one file until closed.
//
// Editors often save by writing a temporary file and renaming it over
// the target, which silently drops an inode-level watch. The watcher
// therefore watches the parent directory and filters events down to the
// named file, so rewrites keep being reported.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string // absolute path of the watched file

	events chan Event
	errors chan error

	mu       sync.Mutex
	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewFileWatcher watches path for creation, writes, removal, and
// renames. The file itself need not exist yet; its directory must.
func NewFileWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(abs)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, ErrDirNotExist
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		path:    abs,
		events:  make(chan Event, 16),
		errors:  make(chan error, 16),
		closeCh: make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the event channel. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes both channels. Closing twice is a
// no-op.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()

	close(w.events)
	close(w.errors)

	return w.watcher.Close()
}

// processLoop pumps fsnotify events until closed.
func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// handleFSEvent filters directory events down to the watched file.
func (w *Watcher) handleFSEvent(fsEvent fsnotify.Event) {
	if filepath.Clean(fsEvent.Name) != w.path {
		return
	}
	op := convertOp(fsEvent.Op)
	if op == 0 {
		return
	}

	w.sendEvent(Event{
		Path:      w.path,
		Op:        op,
		Timestamp: time.Now(),
	})
}

// convertOp maps fsnotify operations onto the package's Op bitmask.
// Chmod-only events are dropped.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}

// sendEvent delivers an event without blocking; a full channel drops
// the event, since a pending one already forces a reload.
func (w *Watcher) sendEvent(event Event) {
	select {
	case w.events <- event:
	default:
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
