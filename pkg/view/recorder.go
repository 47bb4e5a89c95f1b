package view

import "github.com/mchmarny/markingmenu/pkg/geometry"

// Call is one recorded view invocation.
type Call struct {
	Method      string
	Point       geometry.Point
	Vector      geometry.Vector
	Kind        VectorKind
	Slice       int
	SubMenu     bool
	Description string
}

// RecordingTrail is a TrailView that keeps every call, for headless hosts
// and tests.
type RecordingTrail struct {
	NopTrail
	Calls []Call
}

func (t *RecordingTrail) Show() {
	t.NopTrail.Show()
	t.Calls = append(t.Calls, Call{Method: "Show"})
}

func (t *RecordingTrail) Hide() {
	t.NopTrail.Hide()
	t.Calls = append(t.Calls, Call{Method: "Hide"})
}

func (t *RecordingTrail) SetCenter(p geometry.Point) {
	t.Calls = append(t.Calls, Call{Method: "SetCenter", Point: p})
}

func (t *RecordingTrail) DrawVector(v geometry.Vector, kind VectorKind) {
	t.Calls = append(t.Calls, Call{Method: "DrawVector", Vector: v, Kind: kind})
}

func (t *RecordingTrail) Clear() {
	t.Calls = append(t.Calls, Call{Method: "Clear"})
}

// Vectors returns the drawn vectors of the given kind.
func (t *RecordingTrail) Vectors(kind VectorKind) []geometry.Vector {
	var out []geometry.Vector
	for _, c := range t.Calls {
		if c.Method == "DrawVector" && c.Kind == kind {
			out = append(out, c.Vector)
		}
	}
	return out
}

// RecordingRadial is a RadialView that keeps every call.
type RecordingRadial struct {
	NopRadial
	SlotCount int
	Calls     []Call
	Shown     int
}

// NewRecordingRadial creates a recording radial view for a menu level.
func NewRecordingRadial(slotCount int) *RecordingRadial {
	return &RecordingRadial{SlotCount: slotCount}
}

func (r *RecordingRadial) Show() {
	r.NopRadial.Show()
	r.Shown++
	r.Calls = append(r.Calls, Call{Method: "Show"})
}

func (r *RecordingRadial) Hide() {
	r.NopRadial.Hide()
	r.Calls = append(r.Calls, Call{Method: "Hide"})
}

func (r *RecordingRadial) SetCenter(p geometry.Point) {
	r.Calls = append(r.Calls, Call{Method: "SetCenter", Point: p})
}

func (r *RecordingRadial) Highlight(slice int, isSubMenu bool) {
	r.Calls = append(r.Calls, Call{Method: "Highlight", Slice: slice, SubMenu: isSubMenu})
}

func (r *RecordingRadial) AddSlot(description string, index int, isSubMenu bool) {
	r.Calls = append(r.Calls, Call{Method: "AddSlot", Description: description, Slice: index, SubMenu: isSubMenu})
}

func (r *RecordingRadial) RemoveSlot(index int) {
	r.Calls = append(r.Calls, Call{Method: "RemoveSlot", Slice: index})
}

// Last returns the most recent call with the given method.
func (r *RecordingRadial) Last(method string) (Call, bool) {
	for i := len(r.Calls) - 1; i >= 0; i-- {
		if r.Calls[i].Method == method {
			return r.Calls[i], true
		}
	}
	return Call{}, false
}
