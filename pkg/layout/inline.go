package layout

import (
	"saba/pkg/css"
	"saba/pkg/html"
	"saba/pkg/text"
)

// lineState is the pen of one inline formatting context. x and lineTop are
// relative to the containing block's origin.
type lineState struct {
	originX, originY float64
	width            float64

	x          float64
	lineTop    float64
	lineHeight float64
	line       int

	pendingSpace bool
	lastText     BoxID
	lastLine     int
}

// layoutInlineContent flows children into lines of the given width starting
// at (x, y) and returns the height of all lines.
func (le *LayoutEngine) layoutInlineContent(children []BoxID, x, y, width float64) float64 {
	ls := &lineState{originX: x, originY: y, width: width, lastText: NoBox}
	for _, c := range children {
		le.layoutInline(c, ls)
	}
	return ls.lineTop + ls.lineHeight
}

// layoutInline places an inline or text box and returns its bounding rect.
// Inline boxes take the union of their descendants once those are placed.
func (le *LayoutEngine) layoutInline(id BoxID, ls *lineState) Rect {
	b := le.view.Box(id)
	if le.followsWhitespace(b.Node) {
		ls.pendingSpace = true
	}

	var r Rect
	if b.Kind == TextBox {
		words, leading, trailing := text.Words(le.doc.Node(b.Node).Text)
		if leading {
			ls.pendingSpace = true
		}
		size := b.Style.FontSize
		for i, w := range words {
			if i > 0 {
				ls.pendingSpace = true
			}
			le.placeWord(id, w, size, ls)
		}
		if trailing {
			ls.pendingSpace = true
		}
		for _, f := range le.view.Box(id).Lines {
			r = r.union(f.Rect)
		}
	} else {
		for _, c := range b.children {
			r = r.union(le.layoutInline(c, ls))
		}
	}

	if r.Width == 0 && r.Height == 0 {
		r = Rect{Point: Point{ls.originX + ls.x, ls.originY + ls.lineTop}}
	}
	b = le.view.Box(id)
	b.Point, b.Size = r.Point, r.Size
	return r
}

// followsWhitespace reports whether node id comes right after a whitespace-only
// text node. Such nodes get no box, but the space they stand for still
// separates inline elements.
func (le *LayoutEngine) followsWhitespace(id html.NodeID) bool {
	n := le.doc.Node(id)
	if n == nil {
		return false
	}
	prev := le.doc.Node(n.PrevSibling())
	return prev != nil && prev.Type == html.TextNode && text.IsWhitespace(prev.Text)
}

// placeWord adds word to text box id, breaking the line first when it does
// not fit. A word wider than the line is split across lines.
func (le *LayoutEngine) placeWord(id BoxID, word string, size css.FontSize, ls *lineState) {
	w, _ := text.MeasureText(word, size)
	space := 0.0
	if ls.pendingSpace && ls.x > 0 {
		space = text.CharAdvance(size)
	}
	if ls.x > 0 && ls.x+space+w > ls.width {
		ls.newLine()
		space = 0
	}
	if w <= ls.width {
		le.emit(id, word, space, size, ls)
		return
	}
	for i, piece := range text.BreakWord(word, ls.width, size) {
		if i > 0 {
			ls.newLine()
		}
		le.emit(id, piece, space, size, ls)
		space = 0
	}
}

// emit appends s to the current line, extending the box's last fragment when
// it is already on this line.
func (le *LayoutEngine) emit(id BoxID, s string, space float64, size css.FontSize, ls *lineState) {
	w, h := text.MeasureText(s, size)
	b := le.view.Box(id)
	if n := len(b.Lines); n > 0 && ls.lastText == id && ls.lastLine == ls.line {
		f := &b.Lines[n-1]
		if space > 0 {
			f.Text += " "
		}
		f.Text += s
		f.Width += space + w
		f.Height = max(f.Height, h)
	} else {
		b.Lines = append(b.Lines, Fragment{
			Text: s,
			Rect: Rect{
				Point: Point{X: ls.originX + ls.x + space, Y: ls.originY + ls.lineTop},
				Size:  Size{Width: w, Height: h},
			},
		})
	}
	ls.x += space + w
	ls.lineHeight = max(ls.lineHeight, h)
	ls.pendingSpace = false
	ls.lastText, ls.lastLine = id, ls.line
}

func (ls *lineState) newLine() {
	ls.lineTop += ls.lineHeight
	ls.x = 0
	ls.lineHeight = 0
	ls.line++
	ls.pendingSpace = false
}
