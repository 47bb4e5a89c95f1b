// Package gesture tracks one press-drag-release gesture over one menu level:
// origin, move segments, the reference vector and the two pause timers.
package gesture

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mchmarny/markingmenu/pkg/geometry"
	"github.com/mchmarny/markingmenu/pkg/menu"
	"github.com/mchmarny/markingmenu/pkg/timer"
)

const (
	// DefaultPauseDelay is how long the pointer must rest before the menu
	// shows or a hovered sub-menu opens.
	DefaultPauseDelay = 200 * time.Millisecond

	// DefaultMoveThreshold is the minimum length in pixels of a move segment.
	DefaultMoveThreshold = 10.0

	// DefaultNeutralRadius is the radius in pixels of the inactive zone
	// around the menu center.
	DefaultNeutralRadius = 10.0
)

var (
	// angleThreshold4 sits between the 45 degree minimum and the 90 degree
	// slice separation of a 4-way menu.
	angleThreshold4 = geometry.Degrees(65)

	// angleThreshold8 sits between 22.5 and 45 degrees for an 8-way menu.
	angleThreshold8 = geometry.Degrees(30)
)

// AngleThreshold returns the minimum direction change, in radians, that
// enters a sub-menu with slotCount slices.
func AngleThreshold(slotCount int) float64 {
	if slotCount == 4 {
		return angleThreshold4
	}
	return angleThreshold8
}

// Mode is the interaction mode of a gesture.
type Mode int

const (
	// Idle means no gesture is tracked.
	Idle Mode = iota

	// Armed means the gesture started and no segment reached the threshold.
	Armed

	// TrackingExpert means a reference vector exists and the menu is hidden.
	TrackingExpert

	// ViewAssisted means the radial menu is visible.
	ViewAssisted
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case TrackingExpert:
		return "expert"
	case ViewAssisted:
		return "assisted"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Options tune gesture recognition.
type Options struct {
	// PauseDelay before the menu shows or a hovered sub-menu opens.
	PauseDelay time.Duration

	// MoveThreshold is the length a segment must reach to count.
	MoveThreshold float64

	// NeutralRadius applies while the menu is visible.
	NeutralRadius float64

	// ExpertNeutralRadius applies to releases while the menu is hidden.
	ExpertNeutralRadius float64
}

// DefaultOptions returns the stock recognition settings.
func DefaultOptions() Options {
	return Options{
		PauseDelay:          DefaultPauseDelay,
		MoveThreshold:       DefaultMoveThreshold,
		NeutralRadius:       DefaultNeutralRadius,
		ExpertNeutralRadius: DefaultNeutralRadius,
	}
}

// Validate reports settings the tracker cannot work with.
func (o Options) Validate() error {
	if o.PauseDelay <= 0 {
		return fmt.Errorf("pause delay must be positive, got %v", o.PauseDelay)
	}
	if o.MoveThreshold <= 0 {
		return fmt.Errorf("move threshold must be positive, got %v", o.MoveThreshold)
	}
	if o.NeutralRadius < 0 || o.ExpertNeutralRadius < 0 {
		return fmt.Errorf("neutral radius must not be negative")
	}
	return nil
}

// Outcome classifies one observed move.
type Outcome int

const (
	// OutcomePending means the segment is still below the threshold.
	OutcomePending Outcome = iota

	// OutcomeReference means the reference vector was just established.
	OutcomeReference

	// OutcomeSegment means a segment completed with no direction change.
	OutcomeSegment

	// OutcomeDirectionChangeOnItem means the direction changed over a slice
	// holding an action.
	OutcomeDirectionChangeOnItem

	// OutcomeDirectionChange means the direction changed over a sub-menu
	// slice; the child menu should take over.
	OutcomeDirectionChange
)

// MoveOutcome is the result of ObserveMove.
type MoveOutcome struct {
	Outcome Outcome

	// Segment is the completed segment, before it restarts at the pointer.
	Segment geometry.Vector

	// Reference is the snapped reference vector.
	Reference geometry.Vector

	// Slice is the slice under the reference vector.
	Slice int

	// Angle between Reference and Segment, set once a reference exists.
	Angle float64

	// Child is the sub-menu to enter on OutcomeDirectionChange.
	Child *menu.Node
}

// Consumed tells what a release resolved to.
type Consumed int

const (
	ConsumedNothing Consumed = iota
	ConsumedAction
	ConsumedSubMenu
)

// Resolution is the result of End.
type Resolution struct {
	Slice    int
	Entry    *menu.Entry
	Consumed Consumed
}

// Tracker holds the mutable state of a gesture on one menu level.
// It is driven from a single goroutine.
type Tracker struct {
	node  *menu.Node
	sched timer.Scheduler
	opts  Options

	mode      Mode
	origin    geometry.Point
	lastPoint geometry.Point
	segment   geometry.Vector

	reference  *geometry.Vector
	refSlice   int
	refSubMenu bool

	showView        timer.Handle
	activateSubMenu timer.Handle
}

// NewTracker creates an idle tracker for node.
func NewTracker(node *menu.Node, sched timer.Scheduler, opts Options) *Tracker {
	return &Tracker{
		node:  node,
		sched: sched,
		opts:  opts,
	}
}

// Node returns the tracked menu level.
func (t *Tracker) Node() *menu.Node { return t.node }

// Options returns the recognition settings.
func (t *Tracker) Options() Options { return t.opts }

// Mode returns the current interaction mode.
func (t *Tracker) Mode() Mode { return t.mode }

// SetMode changes the interaction mode.
func (t *Tracker) SetMode(m Mode) { t.mode = m }

// Origin returns the gesture origin on this level.
func (t *Tracker) Origin() geometry.Point { return t.origin }

// LastPoint returns the latest pointer position.
func (t *Tracker) LastPoint() geometry.Point { return t.lastPoint }

// Segment returns the in-progress move segment.
func (t *Tracker) Segment() geometry.Vector { return t.segment }

// Reference returns the reference vector, if established.
func (t *Tracker) Reference() (geometry.Vector, bool) {
	if t.reference == nil {
		return geometry.Vector{}, false
	}
	return *t.reference, true
}

// Begin starts a gesture at origin. Pending timers are cancelled.
func (t *Tracker) Begin(origin geometry.Point) {
	t.Cancel()

	t.mode = Armed
	t.origin = origin
	t.lastPoint = origin
	t.segment = geometry.VectorBetween(origin, origin)
}

// AdoptSegment replaces the in-progress segment, used when a parent level
// hands its current motion over to this level.
func (t *Tracker) AdoptSegment(v geometry.Vector) {
	t.segment = v
}

// ObserveMove extends the current segment to p and classifies the move.
// Once a segment reaches the move threshold it restarts at p.
func (t *Tracker) ObserveMove(p geometry.Point) MoveOutcome {
	t.lastPoint = p
	t.segment.X2, t.segment.Y2 = p.X, p.Y

	if t.segment.Length() < t.opts.MoveThreshold {
		return MoveOutcome{Outcome: OutcomePending}
	}

	out := MoveOutcome{Segment: t.segment}

	if t.reference == nil {
		ref, slice := geometry.SnapToSlice(t.origin, p, t.node.SlotCount(), t.opts.MoveThreshold)
		t.reference = &ref
		t.refSlice = slice
		t.refSubMenu = t.node.IsSubMenu(slice)
		t.mode = TrackingExpert

		out.Outcome = OutcomeReference
		out.Reference = ref
		out.Slice = slice

		slog.Debug("gesture reference set", "slice", slice, "submenu", t.refSubMenu)
	} else {
		out.Reference = *t.reference
		out.Slice = t.refSlice
		out.Angle = t.angle(*t.reference, t.segment)
		out.Outcome = t.classify(out.Angle, &out)
	}

	// rolling checkpoint
	t.segment = geometry.VectorBetween(p, p)

	return out
}

func (t *Tracker) classify(angle float64, out *MoveOutcome) Outcome {
	e, ok := t.node.SlotAt(t.refSlice)
	if !ok {
		return OutcomeSegment
	}

	if t.refSubMenu {
		child := e.Child()
		if angle >= AngleThreshold(child.SlotCount()) {
			out.Child = child
			return OutcomeDirectionChange
		}
		return OutcomeSegment
	}

	if angle >= AngleThreshold(t.node.SlotCount()) {
		return OutcomeDirectionChangeOnItem
	}
	return OutcomeSegment
}

func (t *Tracker) angle(a, b geometry.Vector) float64 {
	d, err := geometry.AngleDifference(a, b)
	if err != nil {
		// both vectors passed the move threshold, so this is a broken invariant
		panic(fmt.Errorf("gesture angle on %d-way menu: %w", t.node.SlotCount(), err))
	}
	return d
}

// ObserveHover resolves the slice under p while the menu is visible.
func (t *Tracker) ObserveHover(p geometry.Point) (int, *menu.Entry) {
	t.lastPoint = p

	slice := geometry.ResolveSlice(t.origin, p, t.node.SlotCount(), t.opts.NeutralRadius)
	e, _ := t.node.SlotAt(slice)

	return slice, e
}

// End resolves the slice under the release point p. The neutral radius
// depends on whether the menu is visible.
func (t *Tracker) End(p geometry.Point) Resolution {
	t.lastPoint = p

	radius := t.opts.ExpertNeutralRadius
	if t.mode == ViewAssisted {
		radius = t.opts.NeutralRadius
	}

	r := Resolution{Slice: geometry.ResolveSlice(t.origin, p, t.node.SlotCount(), radius)}

	e, ok := t.node.SlotAt(r.Slice)
	if !ok {
		return r
	}

	r.Entry = e
	if e.IsSubMenu() {
		r.Consumed = ConsumedSubMenu
	} else {
		r.Consumed = ConsumedAction
	}

	return r
}

// ScheduleShowView (re)starts the pause timer that reveals the menu.
func (t *Tracker) ScheduleShowView(fn func()) {
	timer.Cancel(t.showView)
	t.showView = t.sched.Schedule(t.opts.PauseDelay, fn)
}

// CancelShowView stops the pause timer that reveals the menu.
func (t *Tracker) CancelShowView() {
	timer.Cancel(t.showView)
	t.showView = nil
}

// ScheduleActivateSubMenu (re)starts the pause timer that opens a hovered
// sub-menu.
func (t *Tracker) ScheduleActivateSubMenu(fn func()) {
	timer.Cancel(t.activateSubMenu)
	t.activateSubMenu = t.sched.Schedule(t.opts.PauseDelay, fn)
}

// CancelActivateSubMenu stops the hovered sub-menu timer.
func (t *Tracker) CancelActivateSubMenu() {
	timer.Cancel(t.activateSubMenu)
	t.activateSubMenu = nil
}

// Cancel stops both timers and returns the tracker to Idle. It may be called
// at any time and more than once.
func (t *Tracker) Cancel() {
	t.CancelShowView()
	t.CancelActivateSubMenu()

	t.reference = nil
	t.refSlice = 0
	t.refSubMenu = false
	t.mode = Idle
}
