package css

import (
	"saba/pkg/html"
	"saba/pkg/observability"

	"go.uber.org/zap"
	"golang.org/x/net/html/atom"
)

// Styles holds the computed style of every node, indexed by html.NodeID.
type Styles []ComputedStyle

// Get returns the style of id, or the initial style when id is out of range.
func (s Styles) Get(id html.NodeID) ComputedStyle {
	if id < 0 || int(id) >= len(s) {
		return InitialStyle()
	}
	return s[id]
}

// applyUserAgentStyles applies default browser styles based on element type
func applyUserAgentStyles(node *html.Node, style *ComputedStyle) {
	switch {
	case html.IsHidden(node.Atom):
		style.Display = DisplayNone
	case node.Atom == atom.Li:
		style.Display = DisplayListItem
	case html.IsBlockLevel(node.Atom):
		style.Display = DisplayBlock
	default:
		style.Display = DisplayInline
	}

	switch node.Atom {
	case atom.H1:
		style.FontSize = FontXXLarge
	case atom.H2:
		style.FontSize = FontXLarge
	case atom.A:
		style.Color = Blue
		style.TextDecoration = DecorationUnderline
	}
}

// inherit copies the inherited properties of parent that differ from their
// initial values.
func inherit(parent ComputedStyle) ComputedStyle {
	style := InitialStyle()
	initial := InitialStyle()
	if parent.Color != initial.Color {
		style.Color = parent.Color
	}
	if parent.FontSize != initial.FontSize {
		style.FontSize = parent.FontSize
	}
	if parent.TextDecoration != initial.TextDecoration {
		style.TextDecoration = parent.TextDecoration
	}
	return style
}

// ComputeStyle resolves the style of node id given its parent's computed style:
// inherited values, then element defaults, then every matching sheet rule in
// order, then the inline style attribute.
func ComputeStyle(doc *html.Document, id html.NodeID, sheet *StyleSheet, parent ComputedStyle) ComputedStyle {
	node := doc.Node(id)
	if node == nil || node.Type == html.DocumentNode {
		return InitialStyle()
	}

	style := inherit(parent)
	if node.Type == html.TextNode {
		return style
	}

	applyUserAgentStyles(node, &style)

	for _, rule := range FindMatchingRules(doc, id, sheet) {
		style.ApplyAll(rule.Declarations)
	}

	if styleAttr, ok := node.GetAttribute("style"); ok {
		style.ApplyAll(ParseInlineStyle(styleAttr))
	}
	return style
}

// Resolve computes the style of every node in doc.
func Resolve(doc *html.Document, sheet *StyleSheet) Styles {
	styles := make(Styles, doc.Len())
	styles[doc.Root()] = InitialStyle()
	doc.Walk(doc.Root(), func(id html.NodeID, n *html.Node) bool {
		if id == doc.Root() {
			return true
		}
		styles[id] = ComputeStyle(doc, id, sheet, styles.Get(n.Parent()))
		return true
	})
	observability.GetLogger().Debug("resolved styles", zap.Int("nodes", doc.Len()))
	return styles
}
