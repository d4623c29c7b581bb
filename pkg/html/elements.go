package html

import "golang.org/x/net/html/atom"

// isVoidElement returns true for elements that never have children
func isVoidElement(a atom.Atom) bool {
	switch a {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img,
		atom.Input, atom.Link, atom.Meta, atom.Param, atom.Source, atom.Track, atom.Wbr:
		return true
	}
	return false
}

// isRawTextElement returns true for elements whose content is kept as literal text.
func isRawTextElement(a atom.Atom) bool {
	switch a {
	case atom.Style, atom.Script, atom.Textarea, atom.Xmp, atom.Noframes:
		return true
	}
	return false
}

// IsBlockLevel returns true for elements that are laid out as blocks by default.
// The same set closes an open <p>.
func IsBlockLevel(a atom.Atom) bool {
	switch a {
	case atom.Html, atom.Body, atom.Address, atom.Article, atom.Aside, atom.Blockquote,
		atom.Center, atom.Details, atom.Dialog, atom.Dd, atom.Div, atom.Dl, atom.Dt,
		atom.Fieldset, atom.Figcaption, atom.Figure, atom.Footer, atom.Form,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Header, atom.Hgroup,
		atom.Hr, atom.Li, atom.Main, atom.Nav, atom.Ol, atom.P, atom.Pre, atom.Section,
		atom.Summary, atom.Table, atom.Ul:
		return true
	}
	return false
}

// IsHidden returns true for elements that never generate boxes.
func IsHidden(a atom.Atom) bool {
	switch a {
	case atom.Head, atom.Style, atom.Script, atom.Title, atom.Meta, atom.Link,
		atom.Base, atom.Template, atom.Noscript:
		return true
	}
	return false
}
