package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mchmarny/markingmenu/pkg/geometry"
	"github.com/mchmarny/markingmenu/pkg/view"
)

// DefaultRadius is the distance, in gesture units, of the slot labels from
// the menu center.
const DefaultRadius = 12.0

var (
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCenter    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleLabel     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHighlight = tcell.StyleDefault.Reverse(true)

	trailRunes = map[view.VectorKind]rune{
		view.KindReference:             '*',
		view.KindCurrent:               '.',
		view.KindDirectionChangeOnItem: 'x',
	}

	trailStyles = map[view.VectorKind]tcell.Style{
		view.KindReference:             tcell.StyleDefault.Foreground(tcell.ColorYellow),
		view.KindCurrent:               tcell.StyleDefault.Foreground(tcell.ColorGreen),
		view.KindDirectionChangeOnItem: tcell.StyleDefault.Foreground(tcell.ColorRed),
	}
)

var (
	_ view.TrailView  = (*Trail)(nil)
	_ view.RadialView = (*Radial)(nil)
)

// Canvas owns the screen and every view drawn on it. The host calls Draw
// after each batch of events.
type Canvas struct {
	screen  tcell.Screen
	grid    Grid
	radius  float64
	trail   *Trail
	radials []*Radial
	status  string
}

// NewCanvas creates a canvas on an initialized screen.
func NewCanvas(screen tcell.Screen, grid Grid) *Canvas {
	return &Canvas{
		screen: screen,
		grid:   grid,
		radius: DefaultRadius,
		trail:  &Trail{},
	}
}

// Trail returns the shared gesture trail view.
func (c *Canvas) Trail() *Trail { return c.trail }

// Radials returns the radial views created so far.
func (c *Canvas) Radials() []*Radial { return c.radials }

// RadialFactory returns a factory that creates radial views drawn on c.
func (c *Canvas) RadialFactory() view.RadialFactory {
	return func(slotCount int) view.RadialView {
		r := &Radial{
			slotCount: slotCount,
			labels:    make(map[int]label, slotCount),
		}
		c.radials = append(c.radials, r)
		return r
	}
}

// SetStatus sets the text of the bottom line.
func (c *Canvas) SetStatus(s string) { c.status = s }

// Draw renders every view and shows the screen.
func (c *Canvas) Draw() {
	c.screen.Clear()

	if c.trail.visible {
		c.drawTrail()
	}

	for _, r := range c.radials {
		if r.visible {
			c.drawRadial(r)
		}
	}

	_, h := c.screen.Size()
	c.text(0, h-1, c.status, styleStatus)

	c.screen.Show()
}

func (c *Canvas) drawTrail() {
	for _, s := range c.trail.segments {
		x1, y1 := c.grid.ToCell(s.v.Start())
		x2, y2 := c.grid.ToCell(s.v.End())
		line(x1, y1, x2, y2, func(x, y int) {
			c.screen.SetContent(x, y, trailRunes[s.kind], nil, trailStyles[s.kind])
		})
	}

	x, y := c.grid.ToCell(c.trail.center)
	c.screen.SetContent(x, y, '+', nil, styleCenter)
}

func (c *Canvas) drawRadial(r *Radial) {
	cx, cy := c.grid.ToCell(r.center)
	c.screen.SetContent(cx, cy, 'o', nil, styleCenter)

	for i := 1; i <= r.slotCount; i++ {
		l, ok := r.labels[i]
		if !ok {
			continue
		}

		text := l.description
		if l.subMenu {
			text += " >"
		}

		style := styleLabel
		if i == r.highlight {
			style = styleHighlight
		}

		p := geometry.CenterlinePoint(r.center, i, r.slotCount, c.radius)
		x, y := c.grid.ToCell(p)
		c.text(x-len([]rune(text))/2, y, text, style)
	}
}

func (c *Canvas) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		c.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// line calls plot for every cell between two cells (Bresenham).
func line(x1, y1, x2, y2 int, plot func(x, y int)) {
	dx, sx := abs(x2-x1), 1
	if x1 > x2 {
		sx = -1
	}
	dy, sy := -abs(y2-y1), 1
	if y1 > y2 {
		sy = -1
	}

	err := dx + dy
	for {
		plot(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type segment struct {
	v    geometry.Vector
	kind view.VectorKind
}

// Trail is the view.TrailView of a canvas.
type Trail struct {
	visible  bool
	center   geometry.Point
	segments []segment
}

func (t *Trail) Show()                      { t.visible = true }
func (t *Trail) Hide()                      { t.visible = false }
func (t *Trail) IsVisible() bool            { return t.visible }
func (t *Trail) SetCenter(p geometry.Point) { t.center = p }
func (t *Trail) Clear()                     { t.segments = nil }

func (t *Trail) DrawVector(v geometry.Vector, kind view.VectorKind) {
	t.segments = append(t.segments, segment{v: v, kind: kind})
}

type label struct {
	description string
	subMenu     bool
}

// Radial is the view.RadialView of one menu level on a canvas.
type Radial struct {
	slotCount int
	visible   bool
	center    geometry.Point
	highlight int
	labels    map[int]label
}

func (r *Radial) Show() { r.visible = true }

func (r *Radial) Hide() {
	r.visible = false
	r.highlight = 0
}

func (r *Radial) IsVisible() bool            { return r.visible }
func (r *Radial) SetCenter(p geometry.Point) { r.center = p }

func (r *Radial) Highlight(slice int, _ bool) { r.highlight = slice }

func (r *Radial) AddSlot(description string, index int, isSubMenu bool) {
	r.labels[index] = label{description: description, subMenu: isSubMenu}
}

func (r *Radial) RemoveSlot(index int) {
	delete(r.labels, index)
	if r.highlight == index {
		r.highlight = 0
	}
}
