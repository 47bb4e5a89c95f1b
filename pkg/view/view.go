// Package view declares the rendering capabilities a marking menu drives.
// The gesture state machine never draws; it tells a TrailView and one
// RadialView per menu level what to show.
package view

import (
	"fmt"

	"github.com/mchmarny/markingmenu/pkg/geometry"
)

// VectorKind tells a trail view how to style a drawn vector.
type VectorKind int

const (
	// KindReference is the first significant move of a gesture.
	KindReference VectorKind = iota + 1

	// KindCurrent is a following move segment.
	KindCurrent

	// KindDirectionChangeOnItem is a direction change over a slice that
	// holds an action, so no sub-menu can be entered.
	KindDirectionChangeOnItem
)

func (k VectorKind) String() string {
	switch k {
	case KindReference:
		return "reference"
	case KindCurrent:
		return "current"
	case KindDirectionChangeOnItem:
		return "directionChangeOnItem"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Surface is the visibility part shared by both views.
type Surface interface {
	Show()
	Hide()
	IsVisible() bool
	SetCenter(p geometry.Point)
}

// TrailView draws the gesture while the menu is hidden. One trail view is
// shared by every level of a menu tree.
type TrailView interface {
	Surface
	DrawVector(v geometry.Vector, kind VectorKind)
	Clear()
}

// RadialView draws one menu level around its center.
type RadialView interface {
	Surface

	// Highlight marks slice as hovered, 0 clears the highlight.
	Highlight(slice int, isSubMenu bool)

	// AddSlot and RemoveSlot mirror menu configuration.
	AddSlot(description string, index int, isSubMenu bool)
	RemoveSlot(index int)
}

// RadialFactory creates the radial view for a menu level of the given size.
type RadialFactory func(slotCount int) RadialView
