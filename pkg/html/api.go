package html

import "strings"

// GetElementByTag returns the first element named tagName in document order.
func (d *Document) GetElementByTag(tagName string) (NodeID, bool) {
	found := NoNode
	d.Walk(d.Root(), func(id NodeID, n *Node) bool {
		if found != NoNode {
			return false
		}
		if n.Type == ElementNode && n.TagName == tagName {
			found = id
			return false
		}
		return true
	})
	return found, found != NoNode
}

// ElementsByTag returns all elements named tagName in document order.
func (d *Document) ElementsByTag(tagName string) []NodeID {
	var ids []NodeID
	d.Walk(d.Root(), func(id NodeID, n *Node) bool {
		if n.Type == ElementNode && n.TagName == tagName {
			ids = append(ids, id)
		}
		return true
	})
	return ids
}

// StyleContent returns the text of every <style> element, in document order,
// joined by newlines.
func (d *Document) StyleContent() string {
	var parts []string
	for _, id := range d.ElementsByTag("style") {
		parts = append(parts, d.TextContent(id))
	}
	return strings.Join(parts, "\n")
}
