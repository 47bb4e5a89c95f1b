package controller

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mchmarny/markingmenu/pkg/geometry"
	"github.com/mchmarny/markingmenu/pkg/gesture"
	"github.com/mchmarny/markingmenu/pkg/menu"
	"github.com/mchmarny/markingmenu/pkg/metric"
	"github.com/mchmarny/markingmenu/pkg/timer"
	"github.com/mchmarny/markingmenu/pkg/view"
)

var (
	// ErrNoScheduler is returned when a session is created without a timer
	// scheduler.
	ErrNoScheduler = errors.New("no timer scheduler")

	// ErrGestureActive is returned when the menu is reconfigured while a
	// gesture is in flight.
	ErrGestureActive = errors.New("gesture in progress")
)

// Session owns the controllers of one menu tree and routes pointer events to
// the controller that currently owns the gesture. A session must be driven
// from a single goroutine, the same one that runs its timer callbacks.
type Session struct {
	root    *menu.Node
	sched   timer.Scheduler
	opts    gesture.Options
	radials view.RadialFactory
	trigger Trigger
	env     *env

	// arena holds one controller per menu level
	arena  map[*menu.Node]*Controller
	active *Controller

	detach func()
}

// Option configures a Session.
type Option func(*Session)

// WithScheduler sets the timer service. Required.
func WithScheduler(sched timer.Scheduler) Option {
	return func(s *Session) { s.sched = sched }
}

// WithTrailView sets the gesture trail view shared by every level.
func WithTrailView(t view.TrailView) Option {
	return func(s *Session) { s.env.trail = t }
}

// WithRadialFactory sets how radial views are created for each level.
func WithRadialFactory(f view.RadialFactory) Option {
	return func(s *Session) { s.radials = f }
}

// WithGestureOptions overrides the recognition settings.
func WithGestureOptions(o gesture.Options) Option {
	return func(s *Session) { s.opts = o }
}

// WithTrigger sets which presses open the menu.
func WithTrigger(t Trigger) Option {
	return func(s *Session) { s.trigger = t }
}

// WithRecorder sets the gesture metrics recorder.
func WithRecorder(r metric.Recorder) Option {
	return func(s *Session) { s.env.recorder = r }
}

// WithSelectHandler registers fn to be called after every selected action.
func WithSelectHandler(fn func(Selection)) Option {
	return func(s *Session) { s.env.onSelect = fn }
}

// NewSession creates a session for the menu tree under root.
func NewSession(root *menu.Node, opts ...Option) (*Session, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil root menu", menu.ErrConfiguration)
	}

	s := &Session{
		root:    root,
		opts:    gesture.DefaultOptions(),
		radials: view.NopRadialFactory,
		trigger: DefaultTrigger,
		arena:   make(map[*menu.Node]*Controller),
		env: &env{
			trail:    &view.NopTrail{},
			recorder: metric.Nop{},
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.sched == nil {
		return nil, ErrNoScheduler
	}

	if err := s.opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", menu.ErrConfiguration, err)
	}

	s.env.lookup = s.controller
	s.env.route = s.route

	root.Walk(func(_ []int, n *menu.Node) {
		s.controller(n)
	})

	slog.Debug("menu session created", "levels", len(s.arena), "pause", s.opts.PauseDelay)

	return s, nil
}

// controller returns the controller of n, creating it on first use.
func (s *Session) controller(n *menu.Node) *Controller {
	if c, ok := s.arena[n]; ok {
		return c
	}

	c := &Controller{
		node:    n,
		tracker: gesture.NewTracker(n, s.sched, s.opts),
		radial:  s.radials(n.SlotCount()),
		env:     s.env,
	}
	s.arena[n] = c

	// mirror what was configured before the view existed
	for i := 1; i <= n.SlotCount(); i++ {
		if e, ok := n.SlotAt(i); ok {
			c.radial.AddSlot(e.Description(), i, e.IsSubMenu())
		}
	}

	return c
}

func (s *Session) route(from *Controller, fn func() *Controller) {
	if s.active != from {
		panic(fmt.Errorf("timer of %d-way menu fired while it does not own the gesture", from.node.SlotCount()))
	}
	s.active = fn()
}

// Root returns the root menu.
func (s *Session) Root() *menu.Node { return s.root }

// Active returns the controller owning the current gesture, nil when idle.
func (s *Session) Active() *Controller { return s.active }

// Visible reports whether the radial menu of the active level is showing.
func (s *Session) Visible() bool {
	return s.active != nil && s.active.Mode() == gesture.ViewAssisted
}

// Press starts a gesture on the root menu when the trigger accepts the
// button and modifiers. A press during a gesture abandons it first.
func (s *Session) Press(p geometry.Point, b Button, mods Modifier) bool {
	if !s.trigger(b, mods) {
		return false
	}

	if s.active != nil {
		s.Cancel()
	}

	s.active = s.controller(s.root).press(p)
	return true
}

// Move feeds a pointer move to the active controller.
func (s *Session) Move(p geometry.Point) {
	if s.active == nil {
		return
	}
	s.active = s.active.move(p)
}

// Release ends the gesture at p.
func (s *Session) Release(p geometry.Point) {
	if s.active == nil {
		return
	}

	c := s.active
	s.active = nil
	c.release(p)
}

// Cancel abandons the current gesture without selecting anything.
func (s *Session) Cancel() {
	if s.active == nil {
		return
	}

	s.active.deactivate()
	s.active = nil

	s.env.trail.Hide()
	s.env.trail.Clear()
	s.env.recorder.Gesture(metric.OutcomeCancelled)
}

// Configure assigns e to slice index of node and mirrors it into the
// node's radial view.
func (s *Session) Configure(node *menu.Node, index int, e *menu.Entry) error {
	if s.active != nil {
		return ErrGestureActive
	}

	c := s.controller(node)
	if err := node.SetSlot(index, e); err != nil {
		return err
	}

	c.radial.AddSlot(e.Description(), index, e.IsSubMenu())

	if e.IsSubMenu() {
		e.Child().Walk(func(_ []int, n *menu.Node) {
			s.controller(n)
		})
	}

	return nil
}

// Clear removes the entry at slice index of node and from its radial view.
func (s *Session) Clear(node *menu.Node, index int) error {
	if s.active != nil {
		return ErrGestureActive
	}

	_, had := node.SlotAt(index)
	if err := node.ClearSlot(index); err != nil {
		return err
	}

	if had {
		s.controller(node).radial.RemoveSlot(index)
	}

	return nil
}

// Attach subscribes the session to src. It returns false when the session
// is already attached.
func (s *Session) Attach(src InputSource) bool {
	if s.detach != nil {
		slog.Warn("menu session already attached")
		return false
	}

	s.detach = src.Subscribe(s)
	return true
}

// Detach stops receiving events and abandons any gesture in flight.
func (s *Session) Detach() {
	if s.detach == nil {
		return
	}

	s.detach()
	s.detach = nil
	s.Cancel()
}
