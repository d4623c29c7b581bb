package layout

// layoutBlock positions block box id at (x, y) inside a containing block
// containingWidth wide, then its children. Block children stack vertically;
// inline children are flowed into lines.
func (le *LayoutEngine) layoutBlock(id BoxID, x, y, containingWidth float64) {
	b := le.view.Box(id)
	b.Point = Point{X: x, Y: y}
	width := b.Style.Width.Or(containingWidth)
	b.Size.Width = width
	style := b.Style
	children := b.children

	var contentHeight float64
	switch {
	case len(children) == 0:
	case le.view.Box(children[0]).Kind == BlockBox:
		cy := y
		for _, c := range children {
			le.layoutBlock(c, x, cy, width)
			cy += le.view.Box(c).Size.Height
		}
		contentHeight = cy - y
	default:
		contentHeight = le.layoutInlineContent(children, x, y, width)
	}

	le.view.Box(id).Size.Height = style.Height.Or(contentHeight)
}
