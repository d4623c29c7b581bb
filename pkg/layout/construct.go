package layout

import (
	"saba/pkg/css"
	"saba/pkg/html"
	"saba/pkg/text"

	"golang.org/x/net/html/atom"
)

// construct creates the box for node id under parent, then its descendants.
// link is the destination of the nearest enclosing anchor.
func (le *LayoutEngine) construct(id html.NodeID, parent BoxID, link string) BoxID {
	node := le.doc.Node(id)
	style := le.styles.Get(id)

	var kind BoxKind
	switch node.Type {
	case html.TextNode:
		if text.IsWhitespace(node.Text) {
			return NoBox
		}
		kind = TextBox
	case html.ElementNode:
		switch style.Display {
		case css.DisplayNone:
			return NoBox
		case css.DisplayBlock, css.DisplayListItem:
			kind = BlockBox
		default:
			kind = InlineBox
		}
		if node.Atom == atom.A {
			if href, ok := node.GetAttribute("href"); ok {
				link = href
			}
		}
	default:
		return NoBox
	}

	// Blocks inside inline content flow with it; the root is always a block.
	if p := le.view.Box(parent); p != nil && p.Kind != BlockBox && kind == BlockBox {
		kind = InlineBox
	} else if parent == NoBox && kind == InlineBox {
		kind = BlockBox
	}

	box := le.view.AddBox(parent, Box{Kind: kind, Node: id, Style: style, Link: link})
	if kind == TextBox {
		return box
	}
	for _, child := range le.doc.Children(id) {
		le.construct(child, box, link)
	}
	if kind == BlockBox {
		le.wrapInlineRuns(box)
	}
	return box
}

// wrapInlineRuns gives a block with both block and inline children an
// anonymous block box around each run of inline children.
func (le *LayoutEngine) wrapInlineRuns(id BoxID) {
	children := le.view.Box(id).children
	hasBlock, hasInline := false, false
	for _, c := range children {
		if le.view.Box(c).Kind == BlockBox {
			hasBlock = true
		} else {
			hasInline = true
		}
	}
	if !hasBlock || !hasInline {
		return
	}

	parentStyle := le.view.Box(id).Style
	link := le.view.Box(id).Link
	var wrapped []BoxID
	anon := NoBox
	for _, c := range children {
		if le.view.Box(c).Kind == BlockBox {
			wrapped = append(wrapped, c)
			anon = NoBox
			continue
		}
		if anon == NoBox {
			anon = le.view.detached(Box{
				Kind:      BlockBox,
				Anonymous: true,
				Node:      html.NoNode,
				Style:     anonymousStyle(parentStyle),
				Link:      link,
			})
			le.view.boxes[anon].parent = id
			wrapped = append(wrapped, anon)
		}
		le.view.boxes[anon].children = append(le.view.boxes[anon].children, c)
		le.view.boxes[c].parent = anon
	}
	le.view.boxes[id].children = wrapped
}

// anonymousStyle keeps the inherited properties of the containing block and
// never paints a background of its own.
func anonymousStyle(parent css.ComputedStyle) css.ComputedStyle {
	style := parent
	style.BackgroundColor = css.Transparent
	style.Display = css.DisplayBlock
	style.Width = css.Length{}
	style.Height = css.Length{}
	return style
}

// detached appends b to the arena without attaching it to a parent.
func (v *View) detached(b Box) BoxID {
	b.parent = NoBox
	v.boxes = append(v.boxes, b)
	return BoxID(len(v.boxes) - 1)
}
