package nav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/store"
)

type unrelated struct{}

func (unrelated) Type() string { return "USER_LOGGED_IN" }

func demoRouter() *router.Router {
	registry := router.NewRegistry().
		Register("page1", router.Screen{Title: "Page 1"}).
		Register("page2", router.Screen{Title: "Page 2"}).
		Register("page3", router.Screen{Title: "Page 3"})
	return router.New(registry, router.WithKeyFunc(router.SequentialKeys("id")))
}

func demoReducer(t *testing.T, opts ...Option) *Reducer {
	t.Helper()
	opts = append([]Option{WithInitialRoute("page1", nil), WithAdvanceRoute("page2")}, opts...)
	r, err := NewReducer(demoRouter(), opts...)
	require.NoError(t, err)
	return r
}

func TestReduce_NilStateYieldsInitialStack(t *testing.T) {
	r := demoReducer(t)

	s, err := r.Reduce(nil, store.Init{})
	require.NoError(t, err)
	require.Equal(t, &router.State{Index: 0, Routes: []router.RouteEntry{{Key: "id-0", RouteName: "page1"}}}, s)
}

func TestReduce_AdvanceReturnScenario(t *testing.T) {
	s, err := store.New(demoReducer(t).Func())
	require.NoError(t, err)
	require.Equal(t, []string{"page1"}, s.GetState().RouteNames())

	require.NoError(t, s.Dispatch(Advance()))
	require.Equal(t, []string{"page1", "page2"}, s.GetState().RouteNames())
	require.Equal(t, 1, s.GetState().Index)

	require.NoError(t, s.Dispatch(Retreat()))
	afterReturn := s.GetState()
	require.Equal(t, []string{"page1"}, afterReturn.RouteNames())
	require.Equal(t, 0, afterReturn.Index)

	require.NoError(t, s.Dispatch(Retreat()))
	require.Same(t, afterReturn, s.GetState())
}

func TestReduce_UnrelatedActionsAreIdentity(t *testing.T) {
	r := demoReducer(t)
	s, err := r.Reduce(nil, store.Init{})
	require.NoError(t, err)

	next, err := r.Reduce(s, unrelated{})
	require.NoError(t, err)
	require.Same(t, s, next)
}

func TestReduce_RawNavigationActionsIgnoredByDefault(t *testing.T) {
	r := demoReducer(t)
	s, err := r.Reduce(nil, store.Init{})
	require.NoError(t, err)

	next, err := r.Reduce(s, router.Navigate{RouteName: "page3"})
	require.NoError(t, err)
	require.Same(t, s, next)
}

func TestReduce_WithNavigationActions(t *testing.T) {
	r := demoReducer(t, WithNavigationActions())
	s, err := r.Reduce(nil, store.Init{})
	require.NoError(t, err)

	next, err := r.Reduce(s, router.Navigate{RouteName: "page3"})
	require.NoError(t, err)
	require.Equal(t, []string{"page1", "page3"}, next.RouteNames())

	next, err = r.Reduce(next, router.Back{})
	require.NoError(t, err)
	require.Equal(t, []string{"page1"}, next.RouteNames())

	_, err = r.Reduce(next, router.Navigate{RouteName: "nope"})
	require.True(t, router.IsUnknownRoute(err))
}

func TestReduce_CustomIntent(t *testing.T) {
	r := demoReducer(t, WithIntent("GO_THIRD", func() router.Action {
		return router.Navigate{RouteName: "page3"}
	}))
	s, err := r.Reduce(nil, store.Init{})
	require.NoError(t, err)

	next, err := r.Reduce(s, Intent{Kind: "GO_THIRD"})
	require.NoError(t, err)
	require.Equal(t, "page3", next.Focused().RouteName)
}

func TestReduce_ErrorPropagatesThroughStore(t *testing.T) {
	r := demoReducer(t, WithIntent("BROKEN", func() router.Action {
		return router.Navigate{RouteName: "does-not-exist"}
	}))
	s, err := store.New(r.Func())
	require.NoError(t, err)
	before := s.GetState()

	err = s.Dispatch(Intent{Kind: "BROKEN"})
	require.True(t, router.IsUnknownRoute(err))
	require.Same(t, before, s.GetState())
}

func TestNewReducer_ValidatesRoutes(t *testing.T) {
	_, err := NewReducer(demoRouter(), WithInitialRoute("missing", nil), WithAdvanceRoute("page2"))
	require.True(t, router.IsUnknownRoute(err))

	_, err = NewReducer(demoRouter(), WithInitialRoute("page1", nil), WithAdvanceRoute("missing"))
	require.True(t, router.IsUnknownRoute(err))

	_, err = NewReducer(nil)
	require.Error(t, err)
}

func TestActionCreators(t *testing.T) {
	require.Equal(t, "ADVANCE", Advance().Type())
	require.Equal(t, "RETURN", Retreat().Type())

	var got []store.Action
	dispatch := func(a store.Action) error {
		got = append(got, a)
		return nil
	}
	require.NoError(t, AdvanceAsync()(dispatch, nil))
	require.NoError(t, RetreatAsync()(dispatch, nil))
	require.Equal(t, []store.Action{Advance(), Retreat()}, got)
}

func TestAsyncCreatorsThroughThunkMiddleware(t *testing.T) {
	s, err := store.New(demoReducer(t).Func(), store.ThunkMiddleware[*router.State]())
	require.NoError(t, err)

	require.NoError(t, s.Dispatch(AdvanceAsync()))
	require.Equal(t, "page2", s.GetState().Focused().RouteName)
	require.NoError(t, s.Dispatch(RetreatAsync()))
	require.Equal(t, "page1", s.GetState().Focused().RouteName)
}
