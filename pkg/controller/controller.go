// Package controller runs the marking menu state machine: one Controller per
// menu level, and a Session that routes pointer events to whichever level
// currently owns the gesture.
package controller

import (
	"fmt"
	"log/slog"

	"github.com/mchmarny/markingmenu/pkg/geometry"
	"github.com/mchmarny/markingmenu/pkg/gesture"
	"github.com/mchmarny/markingmenu/pkg/menu"
	"github.com/mchmarny/markingmenu/pkg/metric"
	"github.com/mchmarny/markingmenu/pkg/view"
)

// Selection describes an action chosen by a gesture.
type Selection struct {
	// Path holds the slice indexes from the root to the selected slice.
	Path []int `json:"path"`

	// Description of the selected slice.
	Description string `json:"description"`

	// Mode is "expert" when the menu never showed on the final level and
	// "assisted" otherwise.
	Mode string `json:"mode"`
}

// env is what every controller of one session shares.
type env struct {
	trail    view.TrailView
	recorder metric.Recorder
	onSelect func(Selection)

	// lookup returns the controller of a menu level
	lookup func(*menu.Node) *Controller

	// route hands the gesture from one controller to the one fn returns
	route func(from *Controller, fn func() *Controller)
}

// Controller drives the gesture on one menu level. Its handlers return the
// controller that owns the gesture afterwards: itself, a sub-menu controller
// after a hand-off, or nil once the gesture is over.
type Controller struct {
	node    *menu.Node
	tracker *gesture.Tracker
	radial  view.RadialView
	env     *env

	// path from the root to this level for the current gesture
	path []int
}

// Node returns the menu level this controller drives.
func (c *Controller) Node() *menu.Node { return c.node }

// Mode returns the interaction mode of the current gesture.
func (c *Controller) Mode() gesture.Mode { return c.tracker.Mode() }

// Origin returns the center of this level for the current gesture.
func (c *Controller) Origin() geometry.Point { return c.tracker.Origin() }

// Radial returns the radial view of this level.
func (c *Controller) Radial() view.RadialView { return c.radial }

// Path returns the slice indexes leading to this level.
func (c *Controller) Path() []int { return c.path }

func (c *Controller) begin(origin geometry.Point, path []int) {
	c.tracker.Begin(origin)
	c.path = path
}

func (c *Controller) press(p geometry.Point) *Controller {
	c.begin(p, nil)

	c.env.trail.SetCenter(p)
	c.env.trail.Show()

	c.tracker.ScheduleShowView(c.showView)

	slog.Debug("gesture started", "x", p.X, "y", p.Y, "slots", c.node.SlotCount())
	return c
}

func (c *Controller) move(p geometry.Point) *Controller {
	if c.tracker.Mode() == gesture.ViewAssisted {
		return c.hover(p)
	}

	// continuous movement keeps the menu hidden, any pause reveals it
	c.tracker.ScheduleShowView(c.showView)

	out := c.tracker.ObserveMove(p)

	switch out.Outcome {
	case gesture.OutcomeReference:
		c.env.trail.DrawVector(out.Reference, view.KindReference)
	case gesture.OutcomeSegment:
		c.env.trail.DrawVector(out.Segment, view.KindCurrent)
	case gesture.OutcomeDirectionChangeOnItem:
		c.env.trail.DrawVector(out.Segment, view.KindDirectionChangeOnItem)
	case gesture.OutcomeDirectionChange:
		c.env.trail.DrawVector(out.Segment, view.KindCurrent)
		return c.enterByDirection(out, p)
	}

	return c
}

// enterByDirection deactivates this level and replays the move that changed
// direction into the sub-menu, which builds its own reference from it.
func (c *Controller) enterByDirection(out gesture.MoveOutcome, p geometry.Point) *Controller {
	child := c.env.lookup(out.Child)

	c.deactivate()

	child.begin(out.Segment.Start(), appendPath(c.path, out.Slice))
	child.tracker.AdoptSegment(out.Segment)

	c.env.recorder.SubMenuActivation(metric.TriggerDirection)
	slog.Debug("sub-menu entered by direction change",
		"slice", out.Slice,
		"angle", out.Angle,
		"path", child.path,
	)

	return child.move(p)
}

func (c *Controller) showView() {
	c.tracker.SetMode(gesture.ViewAssisted)

	c.env.trail.Hide()

	c.radial.SetCenter(c.tracker.Origin())
	c.radial.Show()

	c.env.recorder.ViewShown()
	slog.Debug("menu shown", "path", c.path)
}

func (c *Controller) hover(p geometry.Point) *Controller {
	slice, e := c.tracker.ObserveHover(p)
	isSubMenu := e != nil && e.IsSubMenu()

	c.radial.Highlight(slice, isSubMenu)

	if isSubMenu {
		c.tracker.ScheduleActivateSubMenu(func() {
			c.env.route(c, c.enterByPause)
		})
	} else {
		c.tracker.CancelActivateSubMenu()
	}

	return c
}

// enterByPause opens the hovered sub-menu directly in assisted mode,
// centered on the last pointer position.
func (c *Controller) enterByPause() *Controller {
	p := c.tracker.LastPoint()
	slice, e := c.tracker.ObserveHover(p)
	if e == nil || !e.IsSubMenu() {
		panic(fmt.Errorf("sub-menu timer fired over slice %d which holds no sub-menu", slice))
	}

	child := c.env.lookup(e.Child())

	c.deactivate()

	child.begin(p, appendPath(c.path, slice))
	child.showView()

	c.env.recorder.SubMenuActivation(metric.TriggerPause)
	slog.Debug("sub-menu entered by pause", "slice", slice, "path", child.path)

	return child
}

// release resolves the gesture. While the menu is hidden a release over a
// sub-menu is resolved again by the sub-menu, from the same origin.
func (c *Controller) release(p geometry.Point) {
	c.env.trail.Hide()
	c.env.trail.Clear()

	origin := c.tracker.Origin()
	cur := c

	for {
		mode := cur.tracker.Mode()
		r := cur.tracker.End(p)

		switch r.Consumed {
		case gesture.ConsumedAction:
			sel := Selection{
				Path:        appendPath(cur.path, r.Slice),
				Description: r.Entry.Description(),
				Mode:        modeName(mode),
			}

			slog.Debug("item selected", "description", sel.Description, "path", sel.Path, "mode", sel.Mode)
			r.Entry.Invoke()
			cur.deactivate()

			c.env.recorder.Selection(sel.Mode)
			c.env.recorder.Gesture(metric.OutcomeSelected)
			if c.env.onSelect != nil {
				c.env.onSelect(sel)
			}
			return

		case gesture.ConsumedSubMenu:
			if mode == gesture.ViewAssisted {
				// entering a visible sub-menu only happens by pausing on it
				cur.deactivate()
				c.env.recorder.Gesture(metric.OutcomeSubMenu)
				return
			}

			child := c.env.lookup(r.Entry.Child())
			cur.deactivate()
			child.begin(origin, appendPath(cur.path, r.Slice))

			c.env.recorder.SubMenuActivation(metric.TriggerRelease)
			cur = child

		default:
			cur.deactivate()
			if r.Slice == 0 {
				c.env.recorder.Gesture(metric.OutcomeNeutral)
			} else {
				c.env.recorder.Gesture(metric.OutcomeEmpty)
			}
			return
		}
	}
}

// deactivate stops the timers, clears the gesture and hides this level.
func (c *Controller) deactivate() {
	c.tracker.Cancel()
	c.radial.Hide()
}

func modeName(m gesture.Mode) string {
	if m == gesture.ViewAssisted {
		return "assisted"
	}
	return "expert"
}

func appendPath(path []int, slice int) []int {
	out := make([]int, len(path)+1)
	copy(out, path)
	out[len(path)] = slice
	return out
}
