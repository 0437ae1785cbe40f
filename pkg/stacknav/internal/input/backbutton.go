// Package input reads hardware buttons that are not delivered through SDL
// or the terminal.
package input

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/holoplot/go-evdev"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/constants"
)

// Source is the part of an evdev device BackButton reads from.
type Source interface {
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

// DefaultBackCodes are the key codes treated as a back gesture.
var DefaultBackCodes = []evdev.EvCode{evdev.KEY_BACK, evdev.KEY_ESC, evdev.BTN_EAST}

// BackButton turns key presses on an input device into back gestures.
type BackButton struct {
	src   Source
	codes map[evdev.EvCode]struct{}
	delay time.Duration

	closeOnce sync.Once
}

// OpenBackButton opens the evdev device at path.
func OpenBackButton(path string, codes ...evdev.EvCode) (*BackButton, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: open %s: %w", path, err)
	}
	return NewBackButton(dev, codes...), nil
}

// NewBackButton reads from src. Without codes DefaultBackCodes are used.
func NewBackButton(src Source, codes ...evdev.EvCode) *BackButton {
	if len(codes) == 0 {
		codes = DefaultBackCodes
	}
	set := make(map[evdev.EvCode]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return &BackButton{src: src, codes: set, delay: constants.DefaultInputDelay}
}

// Run calls onPress for every debounced press until ctx is cancelled or
// the device fails. Cancellation closes the device and returns nil.
func (b *BackButton) Run(ctx context.Context, onPress func()) error {
	stop := context.AfterFunc(ctx, func() { b.Close() })
	defer stop()

	var last time.Time
	for {
		ev, err := b.src.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("input: read: %w", err)
		}
		if !b.isPress(ev) {
			continue
		}
		now := time.Now()
		if !last.IsZero() && now.Sub(last) < b.delay {
			continue
		}
		last = now
		onPress()
	}
}

func (b *BackButton) isPress(ev *evdev.InputEvent) bool {
	if ev == nil || ev.Type != evdev.EV_KEY || ev.Value != 1 {
		return false
	}
	_, ok := b.codes[ev.Code]
	return ok
}

// Close releases the device. It is safe to call more than once.
func (b *BackButton) Close() error {
	var err error
	b.closeOnce.Do(func() {
		err = b.src.Close()
	})
	return err
}

