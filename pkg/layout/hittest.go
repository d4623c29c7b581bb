package layout

// HitTest returns the link of the innermost box containing p that carries one.
// Inline and text boxes are tested line by line, so neither the gap at the end
// of a wrapped line nor the text before a link on its first line is part of it.
func (v *View) HitTest(p Point) (string, bool) {
	if v == nil {
		return "", false
	}
	return v.hitTest(v.root, p)
}

func (v *View) hitTest(id BoxID, p Point) (string, bool) {
	b := v.Box(id)
	if b == nil {
		return "", false
	}
	// Later siblings paint over earlier ones.
	for i := len(b.children) - 1; i >= 0; i-- {
		if link, ok := v.hitTest(b.children[i], p); ok {
			return link, true
		}
	}
	if b.Link == "" || !v.contains(id, p) {
		return "", false
	}
	return b.Link, true
}

func (v *View) contains(id BoxID, p Point) bool {
	for _, r := range v.LineRects(id) {
		if r.Contains(p) {
			return true
		}
	}
	return false
}
