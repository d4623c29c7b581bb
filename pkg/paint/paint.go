// Package paint turns a layout view into an ordered list of display items.
package paint

import (
	"fmt"

	"saba/pkg/css"
	"saba/pkg/layout"
	"saba/pkg/observability"

	"go.uber.org/zap"
)

// DisplayItem is one paint primitive. Items are drawn in slice order.
type DisplayItem interface {
	displayItem()
	fmt.Stringer
}

// RectItem fills a box's border rect, or one line of an inline box, with its
// background color.
type RectItem struct {
	Style css.ComputedStyle
	Point layout.Point
	Size  layout.Size
}

// TextItem draws one line fragment of a text box. Point is the top-left corner
// of the line.
type TextItem struct {
	Text  string
	Style css.ComputedStyle
	Point layout.Point
}

func (RectItem) displayItem() {}
func (TextItem) displayItem() {}

func (r RectItem) String() string {
	return fmt.Sprintf("Rect %s at (%g,%g) size %gx%g",
		r.Style.BackgroundColor, r.Point.X, r.Point.Y, r.Size.Width, r.Size.Height)
}

func (t TextItem) String() string {
	return fmt.Sprintf("Text %q %s at (%g,%g)", t.Text, t.Style.Color, t.Point.X, t.Point.Y)
}

// Paint walks view in pre-order: a box's background first, then its children,
// then its own text lines.
func Paint(view *layout.View) []DisplayItem {
	if view == nil {
		return nil
	}
	var items []DisplayItem
	items = paintBox(view, view.Root(), items)
	observability.GetLogger().Debug("painted display items", zap.Int("items", len(items)))
	return items
}

func paintBox(view *layout.View, id layout.BoxID, items []DisplayItem) []DisplayItem {
	b := view.Box(id)
	if b == nil {
		return items
	}

	if b.Style.BackgroundColor.A > 0 {
		for _, r := range view.LineRects(id) {
			items = append(items, RectItem{Style: b.Style, Point: r.Point, Size: r.Size})
		}
	}
	for _, c := range b.Children() {
		items = paintBox(view, c, items)
	}
	for _, f := range b.Lines {
		items = append(items, TextItem{Text: f.Text, Style: b.Style, Point: f.Point})
	}
	return items
}
