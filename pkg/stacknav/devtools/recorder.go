// Package devtools records the actions a store reduces so a session can be
// inspected or replayed.
package devtools

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/store"
)

// Entry is one reduced action and the state it produced.
type Entry[S any] struct {
	Seq    int          `json:"seq"`
	Time   time.Time    `json:"time"`
	Type   string       `json:"type"`
	Action store.Action `json:"action"`
	State  S            `json:"state"`
	Err    string       `json:"error,omitempty"`
}

// Sink receives every recorded entry as JSON.
type Sink interface {
	Publish(data []byte) error
}

// Option configures a Recorder.
type Option func(*options)

type options struct {
	limit  int
	sink   Sink
	logger *slog.Logger
}

// WithLimit keeps only the newest n entries. Zero keeps everything.
func WithLimit(n int) Option {
	return func(o *options) { o.limit = n }
}

// WithSink forwards every entry to sink.
func WithSink(sink Sink) Option {
	return func(o *options) { o.sink = sink }
}

// WithLogger sets the logger sink failures are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Recorder is a store middleware keeping a log of reduced actions.
type Recorder[S any] struct {
	opts options

	mu      sync.Mutex
	seq     int
	entries []Entry[S]
}

// NewRecorder creates a recorder.
func NewRecorder[S any](opts ...Option) *Recorder[S] {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Recorder[S]{opts: o}
}

// Middleware returns the store middleware. Thunks are not recorded, the
// plain actions they dispatch are.
func (r *Recorder[S]) Middleware() store.Middleware[S] {
	return func(api store.API[S]) func(store.Dispatch) store.Dispatch {
		return func(next store.Dispatch) store.Dispatch {
			return func(action store.Action) error {
				if action == nil || action.Type() == store.TypeThunk {
					return next(action)
				}
				err := next(action)
				r.record(action, api.GetState(), err)
				return err
			}
		}
	}
}

func (r *Recorder[S]) record(action store.Action, state S, err error) {
	r.mu.Lock()
	entry := Entry[S]{
		Seq:    r.seq,
		Time:   time.Now(),
		Type:   action.Type(),
		Action: action,
		State:  state,
	}
	if err != nil {
		entry.Err = err.Error()
	}
	r.seq++
	r.entries = append(r.entries, entry)
	if r.opts.limit > 0 && len(r.entries) > r.opts.limit {
		r.entries = r.entries[len(r.entries)-r.opts.limit:]
	}
	r.mu.Unlock()

	if r.opts.sink == nil {
		return
	}
	data, mErr := json.Marshal(entry)
	if mErr != nil {
		r.opts.logger.Warn("Failed to encode devtools entry", "seq", entry.Seq, "error", mErr)
		return
	}
	if pErr := r.opts.sink.Publish(data); pErr != nil {
		r.opts.logger.Warn("Failed to publish devtools entry", "seq", entry.Seq, "error", pErr)
	}
}

// Entries returns a copy of the recorded entries, oldest first.
func (r *Recorder[S]) Entries() []Entry[S] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry[S], len(r.entries))
	copy(out, r.entries)
	return out
}

// Reset drops all recorded entries. Sequence numbers keep counting.
func (r *Recorder[S]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// Replay rebuilds a state by reducing store.Init followed by every entry that
// did not fail. Transitions are pure, so replaying a complete log through a
// fresh reducer yields a state equal to the last recorded one, up to the
// entry keys the reducer generates.
func Replay[S any](reducer store.Reducer[S], entries []Entry[S]) (S, error) {
	var state S
	state, err := reducer(state, store.Init{})
	if err != nil {
		return state, err
	}
	for _, e := range entries {
		if e.Err != "" {
			continue
		}
		next, err := reducer(state, e.Action)
		if err != nil {
			return state, err
		}
		state = next
	}
	return state, nil
}
