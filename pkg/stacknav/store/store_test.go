package store

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type counterAction struct {
	kind string
	by   int
}

func (a counterAction) Type() string { return a.kind }

var errNegative = errors.New("counter would go negative")

func counterReducer(state int, action Action) (int, error) {
	a, ok := action.(counterAction)
	if !ok {
		return state, nil
	}
	switch a.kind {
	case "add":
		return state + a.by, nil
	case "sub":
		if state-a.by < 0 {
			return state, errNegative
		}
		return state - a.by, nil
	}
	return state, nil
}

func TestNew_BuildsInitialStateFromInit(t *testing.T) {
	var seen []Action
	s, err := New(func(state int, action Action) (int, error) {
		seen = append(seen, action)
		return 10, nil
	})
	require.NoError(t, err)
	require.Equal(t, 10, s.GetState())
	require.Equal(t, []Action{Init{}}, seen)
	require.Equal(t, uint64(0), s.Version())
}

func TestNew_InitialStateError(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(func(int, Action) (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)

	_, err = New[int](nil)
	require.Error(t, err)
}

func TestDispatch_ReducesAndNotifies(t *testing.T) {
	s, err := New(counterReducer)
	require.NoError(t, err)

	calls := 0
	s.Subscribe(func() { calls++ })

	require.NoError(t, s.Dispatch(counterAction{kind: "add", by: 3}))
	require.NoError(t, s.Dispatch(counterAction{kind: "add", by: 2}))
	require.Equal(t, 5, s.GetState())
	require.Equal(t, 2, calls)
	require.Equal(t, uint64(2), s.Version())
}

func TestDispatch_ErrorLeavesStateAndSkipsListeners(t *testing.T) {
	s, err := New(counterReducer)
	require.NoError(t, err)
	require.NoError(t, s.Dispatch(counterAction{kind: "add", by: 1}))

	calls := 0
	s.Subscribe(func() { calls++ })

	err = s.Dispatch(counterAction{kind: "sub", by: 5})
	require.ErrorIs(t, err, errNegative)
	require.Equal(t, 1, s.GetState())
	require.Equal(t, 0, calls)
}

func TestDispatch_NilAction(t *testing.T) {
	s, err := New(counterReducer)
	require.NoError(t, err)
	require.ErrorIs(t, s.Dispatch(nil), ErrNilAction)
}

func TestSubscribe_OrderAndUnsubscribe(t *testing.T) {
	s, err := New(counterReducer)
	require.NoError(t, err)

	var order []string
	unsubA := s.Subscribe(func() { order = append(order, "a") })
	s.Subscribe(func() { order = append(order, "b") })

	require.NoError(t, s.Dispatch(counterAction{kind: "add", by: 1}))
	unsubA()
	unsubA()
	require.NoError(t, s.Dispatch(counterAction{kind: "add", by: 1}))

	require.Equal(t, []string{"a", "b", "b"}, order)
}

func TestSubscribe_ListenerMayDispatch(t *testing.T) {
	s, err := New(counterReducer)
	require.NoError(t, err)

	var seen []int
	s.Subscribe(func() {
		seen = append(seen, s.GetState())
		if s.GetState() < 3 {
			require.NoError(t, s.Dispatch(counterAction{kind: "add", by: 1}))
		}
	})

	require.NoError(t, s.Dispatch(counterAction{kind: "add", by: 1}))
	require.Equal(t, 3, s.GetState())
	require.Equal(t, []int{1, 2, 3}, seen)
}

func TestSubscribe_RunsAfterMiddlewareReturns(t *testing.T) {
	var trace []string
	mw := func(api API[int]) func(Dispatch) Dispatch {
		return func(next Dispatch) Dispatch {
			return func(a Action) error {
				err := next(a)
				trace = append(trace, "middleware:after")
				return err
			}
		}
	}
	s, err := New(counterReducer, mw)
	require.NoError(t, err)
	s.Subscribe(func() { trace = append(trace, "subscriber") })

	require.NoError(t, s.Dispatch(counterAction{kind: "add", by: 1}))
	require.Equal(t, []string{"middleware:after", "subscriber"}, trace)
}

func TestMiddleware_Order(t *testing.T) {
	var trace []string
	mw := func(name string) Middleware[int] {
		return func(api API[int]) func(Dispatch) Dispatch {
			return func(next Dispatch) Dispatch {
				return func(a Action) error {
					trace = append(trace, name+":before")
					err := next(a)
					trace = append(trace, name+":after")
					return err
				}
			}
		}
	}

	s, err := New(counterReducer, mw("outer"), mw("inner"))
	require.NoError(t, err)
	require.NoError(t, s.Dispatch(counterAction{kind: "add", by: 1}))

	require.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, trace)
}

func TestMiddleware_SeesCommittedStateAfterNext(t *testing.T) {
	var before, after int
	observe := func(api API[int]) func(Dispatch) Dispatch {
		return func(next Dispatch) Dispatch {
			return func(a Action) error {
				before = api.GetState()
				err := next(a)
				after = api.GetState()
				return err
			}
		}
	}

	s, err := New(counterReducer, observe)
	require.NoError(t, err)
	require.NoError(t, s.Dispatch(counterAction{kind: "add", by: 4}))
	require.Equal(t, 0, before)
	require.Equal(t, 4, after)
}

func TestThunkMiddleware_RunsThunk(t *testing.T) {
	s, err := New(counterReducer, ThunkMiddleware[int]())
	require.NoError(t, err)

	thunk := Thunk(func(dispatch Dispatch, getState func() any) error {
		if getState().(int) == 0 {
			return dispatch(counterAction{kind: "add", by: 7})
		}
		return nil
	})

	require.NoError(t, s.Dispatch(thunk))
	require.Equal(t, 7, s.GetState())
	require.NoError(t, s.Dispatch(thunk))
	require.Equal(t, 7, s.GetState())
}

func TestThunkWithoutMiddlewareIsIgnoredByReducer(t *testing.T) {
	s, err := New(counterReducer)
	require.NoError(t, err)

	ran := false
	require.NoError(t, s.Dispatch(Thunk(func(Dispatch, func() any) error {
		ran = true
		return nil
	})))
	require.False(t, ran)
	require.Equal(t, 0, s.GetState())
}

func TestLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := New(counterReducer, LoggerMiddleware[int](logger))
	require.NoError(t, err)

	require.NoError(t, s.Dispatch(counterAction{kind: "add", by: 1}))
	require.Error(t, s.Dispatch(counterAction{kind: "sub", by: 9}))

	out := buf.String()
	require.Contains(t, out, `"msg":"Dispatching action"`)
	require.Contains(t, out, `"msg":"Action reduced"`)
	require.Contains(t, out, `"msg":"Action rejected"`)
}

func TestDispatch_ConcurrentDispatchesAreSerialised(t *testing.T) {
	s, err := New(counterReducer)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_ = s.Dispatch(counterAction{kind: "add", by: 1})
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1000, s.GetState())
	require.Equal(t, uint64(1000), s.Version())
}
