package metric

import "github.com/prometheus/client_golang/prometheus"

// Gesture outcomes.
const (
	OutcomeSelected  = "selected"
	OutcomeSubMenu   = "submenu"
	OutcomeNeutral   = "neutral"
	OutcomeEmpty     = "empty"
	OutcomeCancelled = "cancelled"
)

// Sub-menu activation triggers.
const (
	TriggerDirection = "direction"
	TriggerPause     = "pause"
	TriggerRelease   = "release"
)

// Recorder receives gesture events from a menu session.
type Recorder interface {
	Gesture(outcome string)
	Selection(mode string)
	SubMenuActivation(trigger string)
	ViewShown()
}

// Nop is a Recorder that discards everything.
type Nop struct{}

func (Nop) Gesture(string)           {}
func (Nop) Selection(string)         {}
func (Nop) SubMenuActivation(string) {}
func (Nop) ViewShown()               {}

// GestureCounters is a Recorder backed by Prometheus counters.
type GestureCounters struct {
	gestures    IncrementalCounter
	selections  IncrementalCounter
	activations IncrementalCounter
	views       IncrementalCounter
}

// NewGestureCounters registers the gesture counters with reg.
func NewGestureCounters(reg prometheus.Registerer) *GestureCounters {
	return &GestureCounters{
		gestures: NewCounterWithRegistry(reg, "gestures_total",
			"Finished gestures by outcome.", "outcome"),
		selections: NewCounterWithRegistry(reg, "selections_total",
			"Selected actions by interaction mode.", "mode"),
		activations: NewCounterWithRegistry(reg, "submenu_activations_total",
			"Sub-menus entered by trigger.", "trigger"),
		views: NewCounterWithRegistry(reg, "view_shown_total",
			"Times the radial menu became visible."),
	}
}

func (g *GestureCounters) Gesture(outcome string) {
	g.gestures.Increment(outcome)
}

func (g *GestureCounters) Selection(mode string) {
	g.selections.Increment(mode)
}

func (g *GestureCounters) SubMenuActivation(trigger string) {
	g.activations.Increment(trigger)
}

func (g *GestureCounters) ViewShown() {
	g.views.Increment()
}
