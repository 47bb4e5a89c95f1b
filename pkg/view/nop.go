package view

import "github.com/mchmarny/markingmenu/pkg/geometry"

// NopTrail tracks visibility and draws nothing.
type NopTrail struct {
	visible bool
}

func (t *NopTrail) Show()                                  { t.visible = true }
func (t *NopTrail) Hide()                                  { t.visible = false }
func (t *NopTrail) IsVisible() bool                        { return t.visible }
func (t *NopTrail) SetCenter(geometry.Point)               {}
func (t *NopTrail) DrawVector(geometry.Vector, VectorKind) {}
func (t *NopTrail) Clear()                                 {}

// NopRadial tracks visibility and draws nothing.
type NopRadial struct {
	visible bool
}

func (r *NopRadial) Show()                     { r.visible = true }
func (r *NopRadial) Hide()                     { r.visible = false }
func (r *NopRadial) IsVisible() bool           { return r.visible }
func (r *NopRadial) SetCenter(geometry.Point)  {}
func (r *NopRadial) Highlight(int, bool)       {}
func (r *NopRadial) AddSlot(string, int, bool) {}
func (r *NopRadial) RemoveSlot(int)            {}

// NopRadialFactory is a RadialFactory returning NopRadial views.
func NopRadialFactory(int) RadialView {
	return &NopRadial{}
}
