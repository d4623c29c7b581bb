package html

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// InsertionMode is the tree builder's current insertion mode.
type InsertionMode int

const (
	ModeInitial InsertionMode = iota
	ModeBeforeHtml
	ModeBeforeHead
	ModeInHead
	ModeAfterHead
	ModeInBody
	ModeText
	ModeAfterBody
	ModeAfterAfterBody
)

func (m InsertionMode) String() string {
	return [...]string{"Initial", "BeforeHtml", "BeforeHead", "InHead", "AfterHead",
		"InBody", "Text", "AfterBody", "AfterAfterBody"}[m]
}

// Parser builds a Document from a token stream.
type Parser struct {
	tokenizer    *Tokenizer
	window       *Window
	doc          *Document
	stack        []NodeID // open elements
	mode         InsertionMode
	originalMode InsertionMode

	openText NodeID // text node currently being extended
	textBuf  strings.Builder
}

func NewParser(t *Tokenizer) *Parser {
	w := NewWindow()
	return &Parser{
		tokenizer: t,
		window:    w,
		doc:       w.Document(),
		mode:      ModeInitial,
		openText:  NoNode,
	}
}

// ConstructTree consumes tokens until EOF and returns the frame holding the
// document. Unclosed elements are not an error.
func (p *Parser) ConstructTree() *Window {
	token := p.tokenizer.NextToken()
	for {
		reprocess := false
		switch p.mode {
		case ModeInitial:
			if token.Type == TokenChar && isWhitespace(token.Char) {
				break
			}
			p.mode = ModeBeforeHtml
			reprocess = true

		case ModeBeforeHtml:
			switch {
			case token.Type == TokenChar && isWhitespace(token.Char):
			case token.Type == TokenStartTag && token.TagName == "html":
				p.insertElement(token.TagName, token.Attributes)
				p.mode = ModeBeforeHead
			case token.Type == TokenEOF:
				return p.finish()
			default:
				p.insertElement("html", nil)
				p.mode = ModeBeforeHead
				reprocess = true
			}

		case ModeBeforeHead:
			switch {
			case token.Type == TokenChar && isWhitespace(token.Char):
			case token.Type == TokenStartTag && token.TagName == "head":
				p.insertElement(token.TagName, token.Attributes)
				p.mode = ModeInHead
			case token.Type == TokenEOF:
				return p.finish()
			default:
				p.insertElement("head", nil)
				p.mode = ModeInHead
				reprocess = true
			}

		case ModeInHead:
			switch {
			case token.Type == TokenChar && isWhitespace(token.Char):
				p.insertChar(token.Char)
			case token.Type == TokenStartTag && isHeadTextElement(token.TagName):
				p.insertElement(token.TagName, token.Attributes)
				p.originalMode = p.mode
				p.mode = ModeText
			case token.Type == TokenStartTag && isHeadVoidElement(token.TagName):
				p.insertElement(token.TagName, token.Attributes)
				p.pop()
			case token.Type == TokenEndTag && token.TagName == "head":
				p.popUntil("head")
				p.mode = ModeAfterHead
			case token.Type == TokenEOF:
				return p.finish()
			default:
				p.popUntil("head")
				p.mode = ModeAfterHead
				reprocess = true
			}

		case ModeAfterHead:
			switch {
			case token.Type == TokenChar && isWhitespace(token.Char):
				p.insertChar(token.Char)
			case token.Type == TokenStartTag && token.TagName == "body":
				p.insertElement(token.TagName, token.Attributes)
				p.mode = ModeInBody
			case token.Type == TokenEOF:
				return p.finish()
			default:
				p.insertElement("body", nil)
				p.mode = ModeInBody
				reprocess = true
			}

		case ModeInBody:
			switch token.Type {
			case TokenStartTag:
				p.inBodyStartTag(token)
			case TokenEndTag:
				switch token.TagName {
				case "body":
					if p.inStack("body") {
						p.mode = ModeAfterBody
					}
				case "html":
					if p.inStack("body") {
						p.mode = ModeAfterBody
						reprocess = true
					}
				case "p":
					if !p.inStack("p") {
						// </p> without an open p creates an empty paragraph.
						p.insertElement("p", nil)
					}
					p.popUntil("p")
				default:
					p.popUntil(token.TagName)
				}
			case TokenChar:
				p.insertChar(token.Char)
			case TokenEOF:
				return p.finish()
			}

		case ModeText:
			switch token.Type {
			case TokenChar:
				p.insertChar(token.Char)
			case TokenEndTag:
				p.pop()
				p.mode = p.originalMode
			case TokenEOF:
				return p.finish()
			}

		case ModeAfterBody:
			switch {
			case token.Type == TokenChar && isWhitespace(token.Char):
				p.insertChar(token.Char)
			case token.Type == TokenEndTag && token.TagName == "html":
				p.mode = ModeAfterAfterBody
			case token.Type == TokenEOF:
				return p.finish()
			default:
				p.mode = ModeInBody
				reprocess = true
			}

		case ModeAfterAfterBody:
			switch {
			case token.Type == TokenEOF:
				return p.finish()
			case token.Type == TokenChar && isWhitespace(token.Char):
			default:
				p.mode = ModeInBody
				reprocess = true
			}
		}

		if !reprocess {
			token = p.tokenizer.NextToken()
		}
	}
}

func (p *Parser) inBodyStartTag(token Token) {
	switch token.TagName {
	case "html", "body", "head":
		// Already open or misplaced; attributes are not merged.
		return
	case "style", "script", "title", "textarea", "xmp", "noframes":
		p.insertElement(token.TagName, token.Attributes)
		p.originalMode = p.mode
		p.mode = ModeText
		return
	}

	a := atom.Lookup([]byte(token.TagName))
	if IsBlockLevel(a) {
		p.autoCloseP()
	}
	p.insertElement(token.TagName, token.Attributes)
	if isVoidElement(a) || token.SelfClosing {
		p.pop()
	}
}

// currentNode returns the node at the top of the stack, or the document node.
func (p *Parser) currentNode() NodeID {
	if len(p.stack) == 0 {
		return p.doc.Root()
	}
	return p.stack[len(p.stack)-1]
}

// insertElement creates an element, appends it to the current node and pushes it.
func (p *Parser) insertElement(tagName string, attrs []Attribute) NodeID {
	p.flushText()
	id := p.doc.CreateElement(tagName, attrs)
	p.doc.AppendChild(p.currentNode(), id)
	p.stack = append(p.stack, id)
	return id
}

// insertChar extends the current node's trailing text node or starts a new one.
func (p *Parser) insertChar(c rune) {
	parent := p.currentNode()
	if parent == p.doc.Root() {
		return
	}
	if p.openText == NoNode || p.doc.Node(parent).LastChild() != p.openText {
		p.flushText()
		if last := p.doc.Node(parent).LastChild(); last != NoNode && p.doc.Node(last).Type == TextNode {
			p.openText = last
			p.textBuf.WriteString(p.doc.Node(last).Text)
		} else {
			p.openText = p.doc.CreateText("")
			p.doc.AppendChild(parent, p.openText)
		}
	}
	p.textBuf.WriteRune(c)
}

func (p *Parser) flushText() {
	if p.openText == NoNode {
		return
	}
	p.doc.Node(p.openText).Text = p.textBuf.String()
	p.textBuf.Reset()
	p.openText = NoNode
}

func (p *Parser) pop() {
	if len(p.stack) > 0 {
		p.stack = p.stack[:len(p.stack)-1]
	}
}

func (p *Parser) inStack(tagName string) bool {
	for _, id := range p.stack {
		if p.doc.Node(id).TagName == tagName {
			return true
		}
	}
	return false
}

// popUntil pops the stack up to and including the nearest element named tagName.
// Nothing is popped when no such element is open.
func (p *Parser) popUntil(tagName string) {
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.doc.Node(p.stack[i]).TagName == tagName {
			p.stack = p.stack[:i]
			return
		}
	}
}

// autoCloseP closes an open <p> element if one is on the stack
func (p *Parser) autoCloseP() {
	for i := len(p.stack) - 1; i >= 0; i-- {
		n := p.doc.Node(p.stack[i])
		if n.Atom == atom.P {
			p.stack = p.stack[:i]
			return
		}
		// Don't close past block-level containers
		if IsBlockLevel(n.Atom) {
			return
		}
	}
}

func (p *Parser) finish() *Window {
	p.flushText()
	p.stack = nil
	return p.window
}

func isHeadTextElement(tagName string) bool {
	switch tagName {
	case "style", "script", "title", "noframes":
		return true
	}
	return false
}

func isHeadVoidElement(tagName string) bool {
	switch tagName {
	case "meta", "link", "base":
		return true
	}
	return false
}

// Parse tokenizes and parses html into a frame.
func Parse(html string) *Window {
	return NewParser(NewTokenizer(html)).ConstructTree()
}
