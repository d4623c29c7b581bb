package css

import (
	"strings"

	"saba/pkg/html"
)

// MatchesSelector reports whether the element id matches selector. Text and
// document nodes never match.
func MatchesSelector(doc *html.Document, id html.NodeID, selector Selector) bool {
	node := doc.Node(id)
	if node == nil || node.Type != html.ElementNode {
		return false
	}

	switch selector.Kind {
	case UniversalSelector:
		return true
	case TypeSelector:
		return node.TagName == selector.Value
	case IDSelector:
		v, ok := node.GetAttribute("id")
		return ok && v == selector.Value
	case ClassSelector:
		classes, ok := node.GetAttribute("class")
		if !ok {
			return false
		}
		for _, class := range strings.Fields(classes) {
			if class == selector.Value {
				return true
			}
		}
	}
	return false
}

// FindMatchingRules returns the rules whose selector matches id, in sheet order.
func FindMatchingRules(doc *html.Document, id html.NodeID, sheet *StyleSheet) []Rule {
	if sheet == nil {
		return nil
	}
	var matches []Rule
	for _, rule := range sheet.Rules {
		if MatchesSelector(doc, id, rule.Selector) {
			matches = append(matches, rule)
		}
	}
	return matches
}
