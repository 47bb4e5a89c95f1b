package controller

import (
	"testing"
	"time"

	"github.com/mchmarny/markingmenu/pkg/geometry"
	"github.com/mchmarny/markingmenu/pkg/gesture"
	"github.com/mchmarny/markingmenu/pkg/menu"
	"github.com/mchmarny/markingmenu/pkg/timer"
	"github.com/mchmarny/markingmenu/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const step = 20 * time.Millisecond

type fixture struct {
	t       *testing.T
	clock   *timer.Manual
	trail   *view.RecordingTrail
	radials map[int][]*view.RecordingRadial
	session *Session
	calls   map[string]int
	selects []Selection

	root  *menu.Node
	child *menu.Node
}

// newFixture builds an 8-way root whose slice 1 opens a 4-way child.
// Root slice 3 and both child slices 1 and 2 hold actions.
func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	f := &fixture{
		t:       t,
		clock:   timer.NewManual(),
		trail:   &view.RecordingTrail{},
		radials: make(map[int][]*view.RecordingRadial),
		calls:   make(map[string]int),
		root:    menu.MustNew(8),
		child:   menu.MustNew(4),
	}

	require.NoError(t, f.root.SetSlot(1, menu.SubMenu("edit", f.child)))
	require.NoError(t, f.root.SetSlot(3, f.action("root-right")))
	require.NoError(t, f.child.SetSlot(1, f.action("child-up")))
	require.NoError(t, f.child.SetSlot(2, f.action("child-right")))

	base := []Option{
		WithScheduler(f.clock),
		WithTrailView(f.trail),
		WithRadialFactory(func(n int) view.RadialView {
			r := view.NewRecordingRadial(n)
			f.radials[n] = append(f.radials[n], r)
			return r
		}),
		WithSelectHandler(func(s Selection) { f.selects = append(f.selects, s) }),
	}

	s, err := NewSession(f.root, append(base, opts...)...)
	require.NoError(t, err)
	f.session = s

	return f
}

func (f *fixture) action(name string) *menu.Entry {
	return menu.Action(name, func() { f.calls[name]++ })
}

func (f *fixture) radial(n *menu.Node) *view.RecordingRadial {
	return f.session.controller(n).radial.(*view.RecordingRadial)
}

func (f *fixture) press(x, y float64) {
	require.True(f.t, f.session.Press(geometry.Point{X: x, Y: y}, ButtonSecondary, 0))
}

func (f *fixture) move(x, y float64) {
	f.clock.Advance(step)
	f.session.Move(geometry.Point{X: x, Y: y})
}

func (f *fixture) release(x, y float64) {
	f.clock.Advance(step)
	f.session.Release(geometry.Point{X: x, Y: y})
}

func TestExpertSelection(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.session.Configure(f.root, 2, f.action("root-up-right")))
	require.NoError(t, f.session.Clear(f.root, 1))
	require.NoError(t, f.session.Configure(f.root, 1, f.action("root-up")))

	f.press(100, 100)
	assert.True(t, f.trail.IsVisible())

	f.move(100, 95)
	f.move(100, 88)
	assert.Equal(t, gesture.TrackingExpert, f.session.Active().Mode())
	f.move(100, 75)
	f.release(100, 60)

	assert.Equal(t, 1, f.calls["root-up"])
	assert.Len(t, f.calls, 1)
	assert.Equal(t, 0, f.radial(f.root).Shown)
	assert.False(t, f.trail.IsVisible())
	assert.Nil(t, f.session.Active())
	assert.Equal(t, 0, f.clock.Pending())

	require.Len(t, f.selects, 1)
	assert.Equal(t, Selection{Path: []int{1}, Description: "root-up", Mode: "expert"}, f.selects[0])

	refs := f.trail.Vectors(view.KindReference)
	require.Len(t, refs, 1)
	assert.InDelta(t, 100, refs[0].X2, 1e-9)
	assert.InDelta(t, 90, refs[0].Y2, 1e-9)
	assert.Len(t, f.trail.Vectors(view.KindCurrent), 1)
}

func TestDirectionChangeEntersSubMenu(t *testing.T) {
	f := newFixture(t)

	f.press(100, 100)
	f.move(100, 85)

	f.move(120, 85)
	active := f.session.Active()
	require.NotNil(t, active)
	assert.Same(t, f.child, active.Node())
	assert.Equal(t, geometry.Point{X: 100, Y: 85}, active.Origin())
	assert.Equal(t, gesture.TrackingExpert, active.Mode())
	assert.Equal(t, []int{1}, active.Path())

	// the root level is torn down
	assert.Equal(t, gesture.Idle, f.session.controller(f.root).Mode())

	// the child built its own reference from the replayed move
	refs := f.trail.Vectors(view.KindReference)
	require.Len(t, refs, 2)
	assert.InDelta(t, 110, refs[1].X2, 1e-9)
	assert.InDelta(t, 85, refs[1].Y2, 1e-9)

	f.release(120, 60)
	assert.Equal(t, 1, f.calls["child-up"])
	assert.Zero(t, f.calls["root-right"])
	require.Len(t, f.selects, 1)
	assert.Equal(t, []int{1, 1}, f.selects[0].Path)
}

func TestDirectionChangeUpThenRight(t *testing.T) {
	f := newFixture(t)

	f.press(100, 100)
	f.move(100, 85)
	f.move(120, 85)
	f.move(135, 85)
	f.release(140, 85)

	assert.Equal(t, 1, f.calls["child-right"])
	assert.Zero(t, f.calls["root-right"])
	assert.Equal(t, 0, f.clock.Pending())
}

func TestSmallTurnStaysOnRoot(t *testing.T) {
	f := newFixture(t)

	f.press(100, 100)
	f.move(100, 85)
	// about 45 degrees, below the 65 degree threshold of a 4-way child
	f.move(110, 75)

	assert.Same(t, f.root, f.session.Active().Node())
}

func TestDirectionChangeOnItem(t *testing.T) {
	f := newFixture(t)

	f.press(100, 100)
	f.move(115, 100)
	f.move(115, 115)

	assert.Same(t, f.root, f.session.Active().Node())
	assert.Len(t, f.trail.Vectors(view.KindDirectionChangeOnItem), 1)
}

func TestPauseRevealsView(t *testing.T) {
	f := newFixture(t)

	f.press(100, 100)
	f.session.Move(geometry.Point{X: 102, Y: 101})
	f.clock.Advance(gesture.DefaultPauseDelay - time.Millisecond)
	assert.False(t, f.session.Visible())

	f.clock.Advance(time.Millisecond)
	assert.True(t, f.session.Visible())
	assert.Equal(t, gesture.ViewAssisted, f.session.Active().Mode())

	r := f.radial(f.root)
	assert.True(t, r.IsVisible())
	assert.Equal(t, 1, r.Shown)
	c, ok := r.Last("SetCenter")
	require.True(t, ok)
	assert.Equal(t, geometry.Point{X: 100, Y: 100}, c.Point)
	assert.False(t, f.trail.IsVisible())
}

func TestMovementPostponesView(t *testing.T) {
	f := newFixture(t)

	f.press(100, 100)
	for i := 1; i <= 20; i++ {
		f.clock.Advance(150 * time.Millisecond)
		f.session.Move(geometry.Point{X: 100 + float64(i), Y: 100})
	}

	assert.False(t, f.session.Visible())
	assert.Equal(t, 1, f.clock.Pending())
}

func TestPauseOnSubMenuOpensIt(t *testing.T) {
	f := newFixture(t)

	f.press(100, 100)
	f.clock.Advance(gesture.DefaultPauseDelay)
	require.True(t, f.session.Visible())

	f.move(100, 60)
	h, ok := f.radial(f.root).Last("Highlight")
	require.True(t, ok)
	assert.Equal(t, 1, h.Slice)
	assert.True(t, h.SubMenu)

	f.clock.Advance(gesture.DefaultPauseDelay)

	active := f.session.Active()
	require.NotNil(t, active)
	assert.Same(t, f.child, active.Node())
	assert.Equal(t, gesture.ViewAssisted, active.Mode())
	assert.Equal(t, geometry.Point{X: 100, Y: 60}, active.Origin())
	assert.True(t, f.radial(f.child).IsVisible())
	assert.False(t, f.radial(f.root).IsVisible())

	f.move(130, 60)
	f.release(130, 60)

	assert.Equal(t, 1, f.calls["child-right"])
	require.Len(t, f.selects, 1)
	assert.Equal(t, Selection{Path: []int{1, 2}, Description: "child-right", Mode: "assisted"}, f.selects[0])
	assert.False(t, f.radial(f.child).IsVisible())
}

func TestLeavingSubMenuCancelsActivation(t *testing.T) {
	f := newFixture(t)

	f.press(100, 100)
	f.clock.Advance(gesture.DefaultPauseDelay)

	f.move(100, 60)
	f.move(140, 100)
	f.clock.Advance(time.Second)

	assert.Same(t, f.root, f.session.Active().Node())

	f.release(140, 100)
	assert.Equal(t, 1, f.calls["root-right"])
	assert.Equal(t, "assisted", f.selects[0].Mode)
}

func TestExpertReleaseOverSubMenuSelectsNested(t *testing.T) {
	f := newFixture(t)

	f.press(100, 100)
	f.move(100, 85)
	f.release(100, 40)

	assert.Equal(t, 1, f.calls["child-up"])
	require.Len(t, f.selects, 1)
	assert.Equal(t, Selection{Path: []int{1, 1}, Description: "child-up", Mode: "expert"}, f.selects[0])
	assert.Equal(t, 0, f.clock.Pending())
}

func TestVisibleReleaseOverSubMenuDoesNothing(t *testing.T) {
	f := newFixture(t)

	f.press(100, 100)
	f.clock.Advance(gesture.DefaultPauseDelay)
	f.move(100, 60)
	f.release(100, 60)

	assert.Empty(t, f.calls)
	assert.Nil(t, f.session.Active())
	assert.False(t, f.radial(f.root).IsVisible())

	assert.NotPanics(t, func() { f.clock.Advance(time.Second) })
	assert.Nil(t, f.session.Active())
}

func TestNeutralAndEmptyRelease(t *testing.T) {
	f := newFixture(t)

	f.press(100, 100)
	f.release(103, 104)
	assert.Empty(t, f.calls)

	// slice 5 points down and is empty
	f.press(100, 100)
	f.move(100, 130)
	f.release(100, 150)
	assert.Empty(t, f.calls)
	assert.Empty(t, f.selects)
	assert.Equal(t, 0, f.clock.Pending())
}

func TestTriggerAndIdleEvents(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.session.Press(geometry.Point{}, ButtonPrimary, 0))
	assert.Nil(t, f.session.Active())

	f.session.Move(geometry.Point{X: 5})
	f.session.Release(geometry.Point{X: 5})
	assert.Nil(t, f.session.Active())

	assert.True(t, f.session.Press(geometry.Point{}, ButtonPrimary, ModCtrl))
	assert.NotNil(t, f.session.Active())
}

func TestConfigureDuringGestureRejected(t *testing.T) {
	f := newFixture(t)

	f.press(100, 100)
	assert.ErrorIs(t, f.session.Configure(f.root, 2, f.action("late")), ErrGestureActive)
	assert.ErrorIs(t, f.session.Clear(f.root, 3), ErrGestureActive)

	f.session.Cancel()
	assert.Nil(t, f.session.Active())
	assert.False(t, f.trail.IsVisible())
	assert.Equal(t, 0, f.clock.Pending())

	require.NoError(t, f.session.Configure(f.root, 2, f.action("late")))
	a, ok := f.radial(f.root).Last("AddSlot")
	require.True(t, ok)
	assert.Equal(t, "late", a.Description)
	assert.Equal(t, 2, a.Slice)

	assert.ErrorIs(t, f.session.Configure(f.root, 2, f.action("again")), menu.ErrDuplicateSlot)
	assert.ErrorIs(t, f.session.Configure(f.root, 9, f.action("far")), menu.ErrRange)
}

func TestConfigureMirrorsNewSubMenu(t *testing.T) {
	f := newFixture(t)

	nested := menu.MustNew(8)
	require.NoError(t, nested.SetSlot(4, f.action("deep")))
	require.NoError(t, f.session.Configure(f.child, 3, menu.SubMenu("more", nested)))

	a, ok := f.radial(nested).Last("AddSlot")
	require.True(t, ok)
	assert.Equal(t, "deep", a.Description)
	assert.Len(t, f.radial(nested).Calls, 1)

	s, ok := f.radial(f.child).Last("AddSlot")
	require.True(t, ok)
	assert.True(t, s.SubMenu)
}

func TestSessionMirrorsInitialSlots(t *testing.T) {
	f := newFixture(t)

	r := f.radial(f.root)
	require.Len(t, r.Calls, 2)
	assert.Equal(t, view.Call{Method: "AddSlot", Description: "edit", Slice: 1, SubMenu: true}, r.Calls[0])
	assert.Equal(t, view.Call{Method: "AddSlot", Description: "root-right", Slice: 3}, r.Calls[1])
}

func TestNewSessionErrors(t *testing.T) {
	_, err := NewSession(nil, WithScheduler(timer.NewManual()))
	assert.ErrorIs(t, err, menu.ErrConfiguration)

	_, err = NewSession(menu.MustNew(4))
	assert.ErrorIs(t, err, ErrNoScheduler)

	opts := gesture.DefaultOptions()
	opts.MoveThreshold = 0
	_, err = NewSession(menu.MustNew(4), WithScheduler(timer.NewManual()), WithGestureOptions(opts))
	assert.ErrorIs(t, err, menu.ErrConfiguration)
}

type fakeSource struct {
	handler   InputHandler
	cancelled int
}

func (s *fakeSource) Subscribe(h InputHandler) func() {
	s.handler = h
	return func() {
		s.cancelled++
		s.handler = nil
	}
}

func TestAttachDetach(t *testing.T) {
	f := newFixture(t)
	src := &fakeSource{}

	assert.True(t, f.session.Attach(src))
	assert.False(t, f.session.Attach(&fakeSource{}))
	require.NotNil(t, src.handler)

	src.handler.Press(geometry.Point{X: 10, Y: 10}, ButtonSecondary, 0)
	assert.NotNil(t, f.session.Active())

	f.session.Detach()
	f.session.Detach()
	assert.Equal(t, 1, src.cancelled)
	assert.Nil(t, f.session.Active())

	assert.True(t, f.session.Attach(src))
}
