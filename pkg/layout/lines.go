package layout

// LineRects returns the area box id covers, one rect per line for boxes that
// flow inline. A block box covers its own rect. A text box covers its
// fragments. An inline box covers, on each line it spans, the extent of its
// descendant fragments on that line; the gaps around it stay uncovered.
func (v *View) LineRects(id BoxID) []Rect {
	b := v.Box(id)
	switch {
	case b == nil:
		return nil
	case b.Kind == BlockBox:
		return []Rect{b.Rect()}
	case b.Kind == TextBox:
		rects := make([]Rect, len(b.Lines))
		for i, f := range b.Lines {
			rects[i] = f.Rect
		}
		return rects
	}

	// Fragments on one line share the line's top edge.
	var rects []Rect
	line := map[float64]int{}
	v.Walk(id, func(_ BoxID, d *Box) {
		for _, f := range d.Lines {
			i, ok := line[f.Y]
			if !ok {
				line[f.Y] = len(rects)
				rects = append(rects, f.Rect)
				continue
			}
			rects[i] = rects[i].union(f.Rect)
		}
	})
	if len(rects) == 0 {
		return []Rect{b.Rect()}
	}
	return rects
}
