package bridge

import (
	"sync"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/store"
)

// Channel names an event stream listeners can subscribe to.
type Channel string

const (
	ChannelWillFocus Channel = "willFocus"
	ChannelDidFocus  Channel = "didFocus"
	ChannelWillBlur  Channel = "willBlur"
	ChannelDidBlur   Channel = "didBlur"

	// ChannelAction fires after a dispatch changed the navigation stack and
	// before the navigator is told about it.
	ChannelAction Channel = "action"
)

// Event is delivered to listeners.
type Event struct {
	Channel   Channel
	Route     router.RouteEntry // Entry the event is about (lifecycle channels)
	Action    store.Action      // Action that produced State (action channel)
	State     *router.State
	LastState *router.State

	// Dispatch is the dispatch to use from inside the listener. During a
	// forward it queues behind the cycle; dispatching through the store
	// from there would wait on the cycle itself.
	Dispatch store.Dispatch
}

// Subscription is returned by AddListener.
type Subscription struct {
	remove func()
}

// Remove detaches the listener. It is safe to call more than once.
func (s Subscription) Remove() {
	if s.remove != nil {
		s.remove()
	}
}

type listenerEntry struct {
	id int
	fn func(Event)
}

type listeners struct {
	mu     sync.Mutex
	byChan map[Channel][]listenerEntry
	nextID int
}

func (l *listeners) add(ch Channel, fn func(Event)) Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.byChan == nil {
		l.byChan = make(map[Channel][]listenerEntry)
	}
	id := l.nextID
	l.nextID++
	l.byChan[ch] = append(l.byChan[ch], listenerEntry{id: id, fn: fn})

	var once sync.Once
	return Subscription{remove: func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			entries := l.byChan[ch]
			for i, e := range entries {
				if e.id == id {
					l.byChan[ch] = append(entries[:i:i], entries[i+1:]...)
					return
				}
			}
		})
	}}
}

// notify runs the listeners of ev.Channel in registration order. The list is
// copied first so listeners may add or remove subscriptions.
func (l *listeners) notify(ev Event) {
	l.mu.Lock()
	entries := make([]listenerEntry, len(l.byChan[ev.Channel]))
	copy(entries, l.byChan[ev.Channel])
	l.mu.Unlock()

	for _, e := range entries {
		e.fn(ev)
	}
}

// FocusEvents derives the lifecycle events a navigator should emit when
// its projection moves from prev to next. It returns nil when the focused
// entry did not change.
func FocusEvents(prev, next *router.State) []Event {
	if next == nil || len(next.Routes) == 0 {
		return nil
	}
	focused := next.Focused()

	if prev == nil || len(prev.Routes) == 0 {
		return []Event{
			{Channel: ChannelWillFocus, Route: focused, State: next, LastState: prev},
			{Channel: ChannelDidFocus, Route: focused, State: next, LastState: prev},
		}
	}

	blurred := prev.Focused()
	if blurred.Key == focused.Key {
		return nil
	}
	return []Event{
		{Channel: ChannelWillBlur, Route: blurred, State: next, LastState: prev},
		{Channel: ChannelWillFocus, Route: focused, State: next, LastState: prev},
		{Channel: ChannelDidBlur, Route: blurred, State: next, LastState: prev},
		{Channel: ChannelDidFocus, Route: focused, State: next, LastState: prev},
	}
}
