package controller

import "github.com/mchmarny/markingmenu/pkg/geometry"

// Button identifies the pointer button captured at press time.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// Modifier is a bit set of keyboard modifiers held at press time.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// InputHandler receives normalized pointer events.
type InputHandler interface {
	// Press reports whether the press started a gesture.
	Press(p geometry.Point, b Button, mods Modifier) bool
	Move(p geometry.Point)
	Release(p geometry.Point)
}

// InputSource delivers pointer events to one subscriber at a time.
type InputSource interface {
	// Subscribe starts delivering events to h and returns a function that
	// stops delivery.
	Subscribe(h InputHandler) (cancel func())
}

// Trigger decides whether a press opens the menu.
type Trigger func(b Button, mods Modifier) bool

// DefaultTrigger opens the menu on the secondary button or on any button
// held with ctrl.
func DefaultTrigger(b Button, mods Modifier) bool {
	return b == ButtonSecondary || mods&ModCtrl != 0
}
