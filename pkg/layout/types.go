package layout

import (
	"saba/pkg/css"
	"saba/pkg/html"
)

// BoxID addresses a box inside its View.
type BoxID int

// NoBox marks an absent box link.
const NoBox BoxID = -1

type BoxKind int

const (
	BlockBox BoxKind = iota
	InlineBox
	TextBox
)

func (k BoxKind) String() string {
	return [...]string{"Block", "Inline", "Text"}[k]
}

// Point is a position in content-area coordinates.
type Point struct {
	X float64
	Y float64
}

// Size represents dimensions (width and height)
type Size struct {
	Width  float64
	Height float64
}

// Rect represents a rectangular region
type Rect struct {
	Point
	Size
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// union returns the smallest rect covering r and o. Empty rects are ignored.
func (r Rect) union(o Rect) Rect {
	if r.Width == 0 && r.Height == 0 {
		return o
	}
	if o.Width == 0 && o.Height == 0 {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.Width, o.X+o.Width), max(r.Y+r.Height, o.Y+o.Height)
	return Rect{Point{x0, y0}, Size{x1 - x0, y1 - y0}}
}

// Fragment is the part of a text box that sits on one line.
type Fragment struct {
	Text string
	Rect
}

// Box is a node of the layout tree. Children are owned through the View;
// Parent is only followed upward.
type Box struct {
	Kind      BoxKind
	Anonymous bool
	Node      html.NodeID // originating node, html.NoNode for anonymous boxes
	Style     css.ComputedStyle
	Point     Point
	Size      Size
	Lines     []Fragment // text boxes only
	Link      string     // href of the enclosing <a>, if any

	parent   BoxID
	children []BoxID
}

func (b *Box) Parent() BoxID     { return b.parent }
func (b *Box) Children() []BoxID { return b.children }

// Rect returns the box's border rect.
func (b *Box) Rect() Rect {
	return Rect{b.Point, b.Size}
}

// View is the layout tree of one page. Boxes live in an arena addressed by BoxID.
type View struct {
	boxes []Box
	root  BoxID
}

func newView() *View {
	return &View{root: NoBox}
}

// Root returns the box of the html element, or NoBox for an empty view.
func (v *View) Root() BoxID { return v.root }

// Len returns the number of boxes.
func (v *View) Len() int { return len(v.boxes) }

// Box returns the box for id, or nil if id is out of range.
func (v *View) Box(id BoxID) *Box {
	if id < 0 || int(id) >= len(v.boxes) {
		return nil
	}
	return &v.boxes[id]
}

// AddBox appends b as the last child of parent (or as the root when parent is
// NoBox) and returns its ID.
func (v *View) AddBox(parent BoxID, b Box) BoxID {
	id := BoxID(len(v.boxes))
	b.parent = parent
	b.children = nil
	v.boxes = append(v.boxes, b)
	if p := v.Box(parent); p != nil {
		p.children = append(p.children, id)
	} else if v.root == NoBox {
		v.root = id
	}
	return id
}

// Walk visits id and its descendants in pre-order.
func (v *View) Walk(id BoxID, fn func(id BoxID, b *Box)) {
	b := v.Box(id)
	if b == nil {
		return
	}
	fn(id, b)
	for _, c := range b.children {
		v.Walk(c, fn)
	}
}
