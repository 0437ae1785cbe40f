package router_test

import (
	"fmt"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
)

func newExampleRouter() *router.Router {
	registry := router.NewRegistry().
		Register("list", router.Screen{Title: "Games"}).
		Register("detail", router.Screen{Title: "Game"}).
		Register("settings", router.Screen{Title: "Settings"})

	return router.New(registry, router.WithKeyFunc(router.SequentialKeys("id")))
}

func printState(s *router.State) {
	fmt.Printf("index=%d routes=%v focused=%s\n", s.Index, s.RouteNames(), s.Focused().Key)
}

// Example demonstrates pushing and popping screens.
func Example() {
	r := newExampleRouter()

	state, _ := r.InitialState("list", nil)
	printState(state)

	state, _ = r.Transition(state, router.Navigate{RouteName: "detail", Params: router.Params{"id": 1}})
	printState(state)

	state, _ = r.Transition(state, router.Back{})
	printState(state)

	// Back at the root is a no-op and returns the same stack.
	same, _ := r.Transition(state, router.Back{})
	fmt.Println("unchanged:", same == state)

	// Output:
	// index=0 routes=[list] focused=id-0
	// index=1 routes=[list detail] focused=id-1
	// index=0 routes=[list] focused=id-0
	// unchanged: true
}

// Example_forwardHistory shows that a fresh Navigate discards entries above
// the focused one.
func Example_forwardHistory() {
	r := newExampleRouter()

	state, _ := r.Transition(nil, router.Reset{
		Index: 0,
		Routes: []router.RouteEntry{
			{RouteName: "list"},
			{RouteName: "detail"},
			{RouteName: "settings"},
		},
	})
	printState(state)

	state, _ = r.Transition(state, router.Navigate{RouteName: "settings"})
	printState(state)

	// Output:
	// index=0 routes=[list detail settings] focused=id-0
	// index=1 routes=[list settings] focused=id-3
}

// Example_unknownRoute shows that unregistered routes are reported.
func Example_unknownRoute() {
	r := newExampleRouter()

	state, _ := r.InitialState("list", nil)
	_, err := r.Transition(state, router.Navigate{RouteName: "does-not-exist"})

	fmt.Println(err)
	fmt.Println(router.IsUnknownRoute(err))
	printState(state)

	// Output:
	// router: navigate: unknown route "does-not-exist"
	// true
	// index=0 routes=[list] focused=id-0
}
