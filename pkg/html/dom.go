package html

import (
	"strings"

	"github.com/xlab/treeprint"
	"golang.org/x/net/html/atom"
)

// NodeID addresses a node inside its Document's arena.
type NodeID int

// NoNode marks an absent link.
const NoNode NodeID = -1

type NodeType int

const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
)

func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "Document"
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	}
	return "Unknown"
}

// Attribute is a single name/value pair in source order.
type Attribute struct {
	Name  string
	Value string
}

// Node is a DOM node. Downward links (first/last child, next sibling) own the
// subtree; parent and previous sibling are only followed upward.
type Node struct {
	Type       NodeType
	TagName    string
	Atom       atom.Atom
	Attributes []Attribute
	Text       string

	parent      NodeID
	firstChild  NodeID
	lastChild   NodeID
	prevSibling NodeID
	nextSibling NodeID
}

// Parent returns the parent's ID or NoNode.
func (n *Node) Parent() NodeID { return n.parent }

func (n *Node) FirstChild() NodeID  { return n.firstChild }
func (n *Node) LastChild() NodeID   { return n.lastChild }
func (n *Node) PrevSibling() NodeID { return n.prevSibling }
func (n *Node) NextSibling() NodeID { return n.nextSibling }

func (n *Node) GetAttribute(name string) (string, bool) {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Document is the node arena of one parsed page. NodeID(0) is the document node.
type Document struct {
	nodes []Node
}

func NewDocument() *Document {
	d := &Document{nodes: make([]Node, 0, 64)}
	d.newNode(Node{Type: DocumentNode, TagName: "#document"})
	return d
}

// Root returns the ID of the document node.
func (d *Document) Root() NodeID { return 0 }

// Len returns the number of nodes in the arena.
func (d *Document) Len() int { return len(d.nodes) }

// Node returns the node for id, or nil if id is out of range.
func (d *Document) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(d.nodes) {
		return nil
	}
	return &d.nodes[id]
}

func (d *Document) newNode(n Node) NodeID {
	n.parent, n.firstChild, n.lastChild = NoNode, NoNode, NoNode
	n.prevSibling, n.nextSibling = NoNode, NoNode
	d.nodes = append(d.nodes, n)
	return NodeID(len(d.nodes) - 1)
}

// CreateElement adds a detached element node.
func (d *Document) CreateElement(tagName string, attrs []Attribute) NodeID {
	tagName = strings.ToLower(tagName)
	return d.newNode(Node{
		Type:       ElementNode,
		TagName:    tagName,
		Atom:       atom.Lookup([]byte(tagName)),
		Attributes: attrs,
	})
}

// CreateText adds a detached text node.
func (d *Document) CreateText(text string) NodeID {
	return d.newNode(Node{Type: TextNode, Text: text})
}

// AppendChild attaches a detached child as the last child of parent.
func (d *Document) AppendChild(parent, child NodeID) {
	p, c := d.Node(parent), d.Node(child)
	if p == nil || c == nil || c.parent != NoNode {
		return
	}
	c.parent = parent
	c.prevSibling = p.lastChild
	if p.lastChild != NoNode {
		d.nodes[p.lastChild].nextSibling = child
	} else {
		p.firstChild = child
	}
	p.lastChild = child
}

// Children returns the child IDs of id in document order.
func (d *Document) Children(id NodeID) []NodeID {
	n := d.Node(id)
	if n == nil {
		return nil
	}
	var children []NodeID
	for c := n.firstChild; c != NoNode; c = d.nodes[c].nextSibling {
		children = append(children, c)
	}
	return children
}

// DocumentElement returns the first element child of the document node (normally
// <html>), or NoNode.
func (d *Document) DocumentElement() NodeID {
	for c := d.nodes[0].firstChild; c != NoNode; c = d.nodes[c].nextSibling {
		if d.nodes[c].Type == ElementNode {
			return c
		}
	}
	return NoNode
}

// Attribute returns the value of attribute name on element id.
func (d *Document) Attribute(id NodeID, name string) (string, bool) {
	n := d.Node(id)
	if n == nil {
		return "", false
	}
	return n.GetAttribute(name)
}

// Walk visits id and its descendants in pre-order. Returning false from fn skips
// the node's subtree.
func (d *Document) Walk(id NodeID, fn func(id NodeID, n *Node) bool) {
	n := d.Node(id)
	if n == nil {
		return
	}
	if !fn(id, n) {
		return
	}
	for c := n.firstChild; c != NoNode; c = d.nodes[c].nextSibling {
		d.Walk(c, fn)
	}
}

// TextContent concatenates the text of all descendant text nodes of id.
func (d *Document) TextContent(id NodeID) string {
	var sb strings.Builder
	d.Walk(id, func(_ NodeID, n *Node) bool {
		if n.Type == TextNode {
			sb.WriteString(n.Text)
		}
		return true
	})
	return sb.String()
}

// Serialize returns the inner HTML of id.
func (d *Document) Serialize(id NodeID) string {
	var sb strings.Builder
	for _, c := range d.Children(id) {
		d.serializeNode(&sb, c)
	}
	return sb.String()
}

func (d *Document) serializeNode(sb *strings.Builder, id NodeID) {
	n := &d.nodes[id]
	if n.Type == TextNode {
		if p := d.Node(n.parent); p != nil && isRawTextElement(p.Atom) {
			sb.WriteString(n.Text)
			return
		}
		sb.WriteString(escapeHTML(n.Text))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.TagName)
	for _, a := range n.Attributes {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttr(a.Value))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	if isVoidElement(n.Atom) {
		return
	}
	for _, c := range d.Children(id) {
		d.serializeNode(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(n.TagName)
	sb.WriteByte('>')
}

// Dump renders the tree below the document node for debugging.
func (d *Document) Dump() string {
	tree := treeprint.NewWithRoot("#document")
	for _, c := range d.Children(d.Root()) {
		d.dumpNode(tree, c)
	}
	return tree.String()
}

func (d *Document) dumpNode(branch treeprint.Tree, id NodeID) {
	n := &d.nodes[id]
	switch n.Type {
	case TextNode:
		branch.AddNode("#text " + quoteText(n.Text))
	case ElementNode:
		label := "<" + n.TagName
		for _, a := range n.Attributes {
			label += " " + a.Name + `="` + a.Value + `"`
		}
		label += ">"
		if n.firstChild == NoNode {
			branch.AddNode(label)
			return
		}
		sub := branch.AddBranch(label)
		for _, c := range d.Children(id) {
			d.dumpNode(sub, c)
		}
	}
}

func quoteText(s string) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return `"` + s + `"`
}

func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// Window is the frame holding the document of one page.
type Window struct {
	document *Document
}

func NewWindow() *Window {
	return &Window{document: NewDocument()}
}

func (w *Window) Document() *Document {
	return w.document
}
