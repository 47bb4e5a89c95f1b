// Package terminal hosts a marking menu in a tcell screen: mouse events feed
// a menu session and the trail and radial views are drawn with cells.
package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mchmarny/markingmenu/pkg/controller"
	"github.com/mchmarny/markingmenu/pkg/geometry"
)

// Grid converts between terminal cells and gesture units. Cells are taller
// than wide, so rows are stretched by Aspect to keep angles honest.
type Grid struct {
	Aspect float64
}

// ToPoint returns the gesture point of cell (x, y).
func (g Grid) ToPoint(x, y int) geometry.Point {
	return geometry.Point{X: float64(x), Y: float64(y) * g.Aspect}
}

// ToCell returns the cell that holds p.
func (g Grid) ToCell(p geometry.Point) (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y / g.Aspect))
}

const buttonMask = tcell.Button1 | tcell.Button2 | tcell.Button3

// Input is a controller.InputSource fed with tcell events by the host loop.
// It turns button transitions into press and release and drags into moves.
type Input struct {
	grid    Grid
	handler controller.InputHandler

	held     tcell.ButtonMask
	tracking bool
}

// NewInput creates an input source for a grid.
func NewInput(grid Grid) *Input {
	return &Input{grid: grid}
}

// Subscribe implements controller.InputSource.
func (in *Input) Subscribe(h controller.InputHandler) func() {
	in.handler = h
	return func() {
		in.handler = nil
		in.tracking = false
	}
}

// Handle processes ev and reports whether it was a mouse event.
func (in *Input) Handle(ev tcell.Event) bool {
	m, ok := ev.(*tcell.EventMouse)
	if !ok {
		return false
	}

	x, y := m.Position()
	p := in.grid.ToPoint(x, y)
	btns := m.Buttons() & buttonMask

	defer func() { in.held = btns }()

	if in.handler == nil {
		return true
	}

	switch {
	case in.held == 0 && btns != 0:
		in.tracking = in.handler.Press(p, button(btns), modifiers(m.Modifiers()))
	case btns != 0:
		if in.tracking {
			in.handler.Move(p)
		}
	case in.held != 0:
		if in.tracking {
			in.tracking = false
			in.handler.Release(p)
		}
	}

	return true
}

func button(m tcell.ButtonMask) controller.Button {
	switch {
	case m&tcell.ButtonSecondary != 0:
		return controller.ButtonSecondary
	case m&tcell.ButtonMiddle != 0:
		return controller.ButtonMiddle
	case m&tcell.ButtonPrimary != 0:
		return controller.ButtonPrimary
	default:
		return controller.ButtonNone
	}
}

func modifiers(m tcell.ModMask) controller.Modifier {
	var out controller.Modifier
	if m&tcell.ModShift != 0 {
		out |= controller.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= controller.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= controller.ModAlt
	}
	return out
}
