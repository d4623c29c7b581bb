package layout

import (
	"saba/pkg/css"
	"saba/pkg/html"
	"saba/pkg/observability"

	"go.uber.org/zap"
)

// LayoutEngine builds and positions the box tree for one document.
type LayoutEngine struct {
	viewport struct {
		width  float64
		height float64
	}
	doc    *html.Document
	styles css.Styles
	view   *View
}

func NewLayoutEngine(viewportWidth, viewportHeight float64) *LayoutEngine {
	le := &LayoutEngine{}
	le.viewport.width = viewportWidth
	le.viewport.height = viewportHeight
	return le
}

// Layout builds the box tree from the html element and positions every box.
// The returned view is complete: no box is left without a position and size.
func (le *LayoutEngine) Layout(doc *html.Document, styles css.Styles) *View {
	le.doc = doc
	le.styles = styles
	le.view = newView()

	if root := doc.DocumentElement(); root != html.NoNode {
		le.construct(root, NoBox, "")
	}
	if le.view.root != NoBox {
		le.layoutBlock(le.view.root, 0, 0, le.viewport.width)
	}

	observability.GetLogger().Debug("built layout view", zap.Int("boxes", le.view.Len()))
	view := le.view
	le.doc, le.styles, le.view = nil, nil, nil
	return view
}

// Build lays out doc in a content area width pixels wide.
func Build(doc *html.Document, styles css.Styles, width float64) *View {
	return NewLayoutEngine(width, 0).Layout(doc, styles)
}
