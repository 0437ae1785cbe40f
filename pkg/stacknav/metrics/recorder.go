package metrics

import (
	"time"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/store"
)

// ResultLabel enumerates dispatch outcomes for counters.
type ResultLabel string

const (
	ResultChanged   ResultLabel = "changed"
	ResultUnchanged ResultLabel = "unchanged"
	ResultError     ResultLabel = "error"
)

// Recorder defines observability hooks for dispatches.
type Recorder interface {
	IncDispatch(action string, result ResultLabel)
	ObserveDispatchDuration(action string, d time.Duration)
	SetStackDepth(n int)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) IncDispatch(string, ResultLabel)              {}
func (NoopRecorder) ObserveDispatchDuration(string, time.Duration) {}
func (NoopRecorder) SetStackDepth(int)                             {}

// Middleware records every dispatch passing through it. selector picks the
// navigation stack out of the store state; a dispatch counts as changed
// when the selected stack is a different value afterwards.
func Middleware[S any](rec Recorder, selector func(S) *router.State) store.Middleware[S] {
	if rec == nil {
		rec = NoopRecorder{}
	}
	return func(api store.API[S]) func(store.Dispatch) store.Dispatch {
		return func(next store.Dispatch) store.Dispatch {
			return func(action store.Action) error {
				if action == nil || action.Type() == store.TypeThunk {
					return next(action)
				}
				kind := action.Type()

				before := selector(api.GetState())
				start := time.Now()
				err := next(action)
				rec.ObserveDispatchDuration(kind, time.Since(start))

				if err != nil {
					rec.IncDispatch(kind, ResultError)
					return err
				}
				after := selector(api.GetState())
				if after == before {
					rec.IncDispatch(kind, ResultUnchanged)
				} else {
					rec.IncDispatch(kind, ResultChanged)
				}
				rec.SetStackDepth(after.Len())
				return nil
			}
		}
	}
}
