package replay

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mchmarny/markingmenu/pkg/controller"
	"github.com/mchmarny/markingmenu/pkg/geometry"
	"github.com/mchmarny/markingmenu/pkg/gesture"
	"github.com/mchmarny/markingmenu/pkg/menu"
	"github.com/mchmarny/markingmenu/pkg/metric"
	"github.com/mchmarny/markingmenu/pkg/timer"
	"github.com/mchmarny/markingmenu/pkg/view"
)

// Options tune a replay.
type Options struct {
	Gesture gesture.Options

	// Recorder also receives every gesture event, e.g. the server counters.
	Recorder metric.Recorder
}

// DefaultOptions returns stock gesture settings and no extra recorder.
func DefaultOptions() Options {
	return Options{
		Gesture:  gesture.DefaultOptions(),
		Recorder: metric.Nop{},
	}
}

// Result summarizes one replay.
type Result struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name,omitempty"`
	Selections []controller.Selection `json:"selections"`
	Outcomes   map[string]int         `json:"outcomes"`
	ViewShown  int                    `json:"view_shown"`

	// Activations counts sub-menu entries by trigger.
	Activations map[string]int `json:"activations"`

	// Vectors counts trail vectors drawn by kind.
	Vectors map[string]int `json:"vectors"`

	// Elapsed virtual time.
	Elapsed Duration `json:"elapsed"`

	// Unfinished is set when the recording ended mid-gesture.
	Unfinished bool `json:"unfinished,omitempty"`
}

// Run replays rec against the tree under root. Actions of selected items
// are invoked. Timers run on a virtual clock, so a replay never sleeps.
func Run(root *menu.Node, rec *Recording, opts Options) (*Result, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	if opts.Recorder == nil {
		opts.Recorder = metric.Nop{}
	}

	res := &Result{
		ID:          uuid.New().String(),
		Name:        rec.Name,
		Selections:  []controller.Selection{},
		Outcomes:    map[string]int{},
		Activations: map[string]int{},
		Vectors:     map[string]int{},
	}

	clock := timer.NewManual()
	trail := &view.RecordingTrail{}

	session, err := controller.NewSession(root,
		controller.WithScheduler(clock),
		controller.WithTrailView(trail),
		controller.WithRadialFactory(func(n int) view.RadialView { return view.NewRecordingRadial(n) }),
		controller.WithGestureOptions(opts.Gesture),
		controller.WithRecorder(&tally{next: opts.Recorder, res: res}),
		controller.WithSelectHandler(func(s controller.Selection) {
			res.Selections = append(res.Selections, s)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	for _, ev := range rec.Events {
		clock.Advance(time.Duration(ev.After))

		p := geometry.Point{X: ev.X, Y: ev.Y}

		switch ev.Type {
		case EventPress:
			b, _ := parseButton(ev.Button)
			var mods controller.Modifier
			if ev.Ctrl {
				mods |= controller.ModCtrl
			}
			session.Press(p, b, mods)
		case EventMove:
			session.Move(p)
		case EventRelease:
			session.Release(p)
		case EventWait:
		}
	}

	if session.Active() != nil {
		res.Unfinished = true
		session.Cancel()
	}

	for _, c := range trail.Calls {
		if c.Method == "DrawVector" {
			res.Vectors[c.Kind.String()]++
		}
	}
	res.Elapsed = Duration(clock.Now())

	slog.Debug("replay finished",
		"id", res.ID,
		"events", len(rec.Events),
		"selections", len(res.Selections),
		"elapsed", clock.Now())

	return res, nil
}

// tally counts gesture events into a Result and forwards them.
type tally struct {
	next metric.Recorder
	res  *Result
}

func (t *tally) Gesture(outcome string) {
	t.res.Outcomes[outcome]++
	t.next.Gesture(outcome)
}

func (t *tally) Selection(mode string) {
	t.next.Selection(mode)
}

func (t *tally) SubMenuActivation(trigger string) {
	t.res.Activations[trigger]++
	t.next.SubMenuActivation(trigger)
}

func (t *tally) ViewShown() {
	t.res.ViewShown++
	t.next.ViewShown()
}
