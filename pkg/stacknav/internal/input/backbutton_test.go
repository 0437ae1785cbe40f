package input

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/require"
)

var errClosed = errors.New("closed")

type fakeSource struct {
	events chan *evdev.InputEvent
	closed chan struct{}
	fail   error
}

func newFakeSource() *fakeSource {
	return &fakeSource{events: make(chan *evdev.InputEvent, 16), closed: make(chan struct{})}
}

func (f *fakeSource) ReadOne() (*evdev.InputEvent, error) {
	select {
	case ev, ok := <-f.events:
		if !ok {
			return nil, f.fail
		}
		return ev, nil
	case <-f.closed:
		return nil, errClosed
	}
}

func (f *fakeSource) Close() error {
	close(f.closed)
	return nil
}

func key(code evdev.EvCode, value int32) *evdev.InputEvent {
	return &evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value}
}

func TestBackButton_PressesAndCancellation(t *testing.T) {
	src := newFakeSource()
	b := NewBackButton(src)
	b.delay = 0

	// press, release, a non-back key and a sync frame, then another press
	src.events <- key(evdev.KEY_BACK, 1)
	src.events <- key(evdev.KEY_BACK, 0)
	src.events <- key(evdev.KEY_A, 1)
	src.events <- &evdev.InputEvent{Type: evdev.EV_SYN}
	src.events <- key(evdev.KEY_ESC, 1)

	ctx, cancel := context.WithCancel(t.Context())
	presses := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- b.Run(ctx, func() { presses <- struct{}{} })
	}()

	for range 2 {
		select {
		case <-presses:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for press")
		}
	}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	require.Empty(t, presses)
	require.NoError(t, b.Close())
}

func TestBackButton_Debounce(t *testing.T) {
	src := newFakeSource()
	b := NewBackButton(src, evdev.KEY_BACK)
	b.delay = time.Hour

	src.events <- key(evdev.KEY_BACK, 1)
	src.events <- key(evdev.KEY_BACK, 1)
	src.fail = errors.New("unplugged")
	close(src.events)

	count := 0
	err := b.Run(t.Context(), func() { count++ })
	require.ErrorContains(t, err, "unplugged")
	require.Equal(t, 1, count)
}

func TestBackButton_CustomCodes(t *testing.T) {
	b := NewBackButton(newFakeSource(), evdev.KEY_B)
	require.True(t, b.isPress(key(evdev.KEY_B, 1)))
	require.False(t, b.isPress(key(evdev.KEY_BACK, 1)))
	require.False(t, b.isPress(nil))
}
