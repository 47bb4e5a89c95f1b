// Package geometry holds the pure functions behind slice resolution and
// direction-change detection. Coordinates are screen coordinates: x grows to
// the right and y grows downward.
package geometry

import (
	"errors"
	"math"
)

// boundaryEpsilon absorbs float noise so a point sitting on a slice boundary
// always resolves to the same slice.
const boundaryEpsilon = 1e-9

// ErrDegenerateVector is returned when an angle is requested for a vector
// of zero length.
var ErrDegenerateVector = errors.New("degenerate vector")

// Point is a pointer position.
type Point struct {
	X, Y float64
}

// Vector is a directed displacement from (X1, Y1) to (X2, Y2).
type Vector struct {
	X1, Y1, X2, Y2 float64
}

// VectorBetween returns the vector going from a to b.
func VectorBetween(a, b Point) Vector {
	return Vector{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
}

// Start returns the first point of the vector.
func (v Vector) Start() Point { return Point{X: v.X1, Y: v.Y1} }

// End returns the last point of the vector.
func (v Vector) End() Point { return Point{X: v.X2, Y: v.Y2} }

// Length returns the euclidean length of the vector.
func (v Vector) Length() float64 {
	return math.Hypot(v.X2-v.X1, v.Y2-v.Y1)
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// ResolveSlice returns the slice of a slotCount-way menu centered on origin
// that lies under p. Slice 1 is centered at 12 o'clock and numbering goes
// clockwise. Points closer to origin than neutralRadius return 0.
//
// A point exactly on a boundary belongs to the clockwise-next slice.
func ResolveSlice(origin, p Point, slotCount int, neutralRadius float64) int {
	dx := p.X - origin.X
	dy := origin.Y - p.Y

	if math.Hypot(dx, dy) < neutralRadius {
		return 0
	}

	n := float64(slotCount)
	width := 2 * math.Pi / n

	// clockwise from 12 o'clock, then shifted so 0 sits on the boundary
	// between the last and the first slice
	angle := normalize(math.Atan2(dx, dy) + width/2)

	q := angle / width
	if r := math.Round(q); math.Abs(q-r) < boundaryEpsilon {
		q = r
	}

	slice := int(math.Floor(q))
	if slice >= slotCount {
		slice = 0
	}

	return slice + 1
}

// CenterAngle returns the screen angle of the centerline of slice, in
// radians, measured from the positive x axis and growing clockwise on screen.
func CenterAngle(slice, slotCount int) float64 {
	angle := float64(slice-1)*(2*math.Pi/float64(slotCount)) - math.Pi/2
	return normalize(angle)
}

// CenterlinePoint returns the point at distance radius from origin along the
// centerline of slice.
func CenterlinePoint(origin Point, slice, slotCount int, radius float64) Point {
	a := CenterAngle(slice, slotCount)
	return Point{
		X: origin.X + math.Cos(a)*radius,
		Y: origin.Y + math.Sin(a)*radius,
	}
}

// SnapToSlice resolves the slice under p without a neutral zone and returns
// a vector of the given length starting at origin and pointing along that
// slice's centerline, together with the slice.
func SnapToSlice(origin, p Point, slotCount int, length float64) (Vector, int) {
	slice := ResolveSlice(origin, p, slotCount, 0)
	end := CenterlinePoint(origin, slice, slotCount, length)
	return VectorBetween(origin, end), slice
}

// AngleDifference returns the unsigned angle between a and b in [0, π].
// Both vectors must have a non-zero length.
func AngleDifference(a, b Vector) (float64, error) {
	al := a.Length()
	bl := b.Length()
	if al == 0 || bl == 0 {
		return 0, ErrDegenerateVector
	}

	ax, ay := (a.X2-a.X1)/al, (a.Y1-a.Y2)/al
	bx, by := (b.X2-b.X1)/bl, (b.Y1-b.Y2)/bl

	// atan2(|a×b|, a·b) equals acos(a·b) for unit vectors and stays exact
	// for parallel inputs
	dot := ax*bx + ay*by
	cross := ax*by - ay*bx

	return math.Atan2(math.Abs(cross), dot), nil
}

// Degrees converts degrees to radians.
func Degrees(d float64) float64 {
	return d * math.Pi / 180
}

func normalize(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}
