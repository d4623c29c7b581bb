package css

import (
	"strings"

	"saba/pkg/observability"

	"go.uber.org/zap"
)

type SelectorKind int

const (
	TypeSelector      SelectorKind = iota // div, p, span
	ClassSelector                         // .classname
	IDSelector                            // #idname
	UniversalSelector                     // *
	UnsupportedSelector
)

func (k SelectorKind) String() string {
	return [...]string{"Type", "Class", "ID", "Universal", "Unsupported"}[k]
}

// Selector is a single simple selector. Anything more complex is kept with
// Kind UnsupportedSelector and never matches.
type Selector struct {
	Kind  SelectorKind
	Value string // element name, class name or id
	Raw   string // source text
}

// Declaration is one property: value pair. Value is the raw source text.
type Declaration struct {
	Property string
	Value    string
}

// Declarations is an ordered declaration block. A repeated property replaces
// the earlier value in place.
type Declarations []Declaration

// Set adds or replaces property.
func (d *Declarations) Set(property, value string) {
	for i := range *d {
		if (*d)[i].Property == property {
			(*d)[i].Value = value
			return
		}
	}
	*d = append(*d, Declaration{Property: property, Value: value})
}

func (d Declarations) Get(property string) (string, bool) {
	for _, decl := range d {
		if decl.Property == property {
			return decl.Value, true
		}
	}
	return "", false
}

// Rule represents a CSS rule (selector + declarations)
type Rule struct {
	Selector     Selector
	Declarations Declarations
}

// StyleSheet is the ordered list of rules from all embedded style text.
type StyleSheet struct {
	Rules []Rule
}

// Parser builds a StyleSheet from a token stream.
type Parser struct {
	tokenizer *Tokenizer
	src       string
	eof       bool
}

func NewParser(t *Tokenizer) *Parser {
	return &Parser{tokenizer: t, src: t.Source()}
}

func (p *Parser) next() Token {
	tok := p.tokenizer.NextToken()
	if tok.Type == TokenEOF {
		p.eof = true
	}
	return tok
}

// ParseStyleSheet consumes every rule. At-rules are skipped. A prelude that
// reaches EOF without '{' ends parsing, and a block cut off by EOF keeps the
// declarations read so far.
func (p *Parser) ParseStyleSheet() *StyleSheet {
	sheet := &StyleSheet{}
	for !p.eof {
		tok := p.next()
		switch tok.Type {
		case TokenEOF:
		case TokenAtKeyword:
			p.skipAtRule()
		case TokenCloseCurly, TokenSemicolon:
			// stray
		default:
			if rule, ok := p.parseQualifiedRule(tok); ok {
				sheet.Rules = append(sheet.Rules, rule)
			}
		}
	}
	observability.GetLogger().Debug("parsed style sheet", zap.Int("rules", len(sheet.Rules)))
	return sheet
}

func (p *Parser) parseQualifiedRule(first Token) (Rule, bool) {
	var prelude []Token
	for tok := first; tok.Type != TokenOpenCurly; tok = p.next() {
		if tok.Type == TokenEOF {
			return Rule{}, false
		}
		prelude = append(prelude, tok)
	}
	rule := Rule{Selector: p.selector(prelude)}
	rule.Declarations = p.parseDeclarations(true)
	return rule, true
}

// selector classifies the prelude tokens of a rule.
func (p *Parser) selector(prelude []Token) Selector {
	if len(prelude) == 0 {
		return Selector{Kind: UnsupportedSelector}
	}
	raw := strings.TrimSpace(p.src[prelude[0].Start:prelude[len(prelude)-1].End])
	switch {
	case len(prelude) == 1 && prelude[0].Type == TokenIdent:
		return Selector{Kind: TypeSelector, Value: strings.ToLower(prelude[0].Value), Raw: raw}
	case len(prelude) == 1 && prelude[0].Type == TokenHash:
		return Selector{Kind: IDSelector, Value: prelude[0].Value, Raw: raw}
	case len(prelude) == 1 && prelude[0].Type == TokenDelim && prelude[0].Delim == '*':
		return Selector{Kind: UniversalSelector, Raw: raw}
	case len(prelude) == 2 && prelude[0].Type == TokenDelim && prelude[0].Delim == '.' &&
		prelude[1].Type == TokenIdent && prelude[0].End == prelude[1].Start:
		return Selector{Kind: ClassSelector, Value: prelude[1].Value, Raw: raw}
	}
	return Selector{Kind: UnsupportedSelector, Raw: raw}
}

// parseDeclarations reads declarations up to '}' (when inBlock) or EOF.
func (p *Parser) parseDeclarations(inBlock bool) Declarations {
	var decls Declarations
	for {
		tok := p.next()
		switch tok.Type {
		case TokenEOF:
			return decls
		case TokenCloseCurly:
			if inBlock {
				return decls
			}
		case TokenSemicolon:
		case TokenIdent:
			colon := p.next()
			if colon.Type != TokenColon {
				if p.skipDeclaration(colon) {
					return decls
				}
				continue
			}
			value, end := p.readValue()
			if value != "" {
				decls.Set(strings.ToLower(tok.Value), value)
			}
			if end == TokenEOF || (end == TokenCloseCurly && inBlock) {
				return decls
			}
		default:
			if p.skipDeclaration(tok) {
				return decls
			}
		}
	}
}

// skipDeclaration discards tokens through the next ';'. It reports whether the
// block ended instead.
func (p *Parser) skipDeclaration(tok Token) bool {
	for {
		switch tok.Type {
		case TokenSemicolon:
			return false
		case TokenCloseCurly, TokenEOF:
			return true
		}
		tok = p.next()
	}
}

// readValue returns the raw text after ':' up to ';', '}' or EOF with any
// trailing !important removed, and the type of the token that ended it.
func (p *Parser) readValue() (string, TokenType) {
	start, end := -1, -1
	depth := 0
	for {
		tok := p.next()
		switch tok.Type {
		case TokenEOF:
			return p.valueText(start, end), TokenEOF
		case TokenSemicolon, TokenCloseCurly:
			if depth == 0 {
				return p.valueText(start, end), tok.Type
			}
		case TokenOpenParen:
			depth++
		case TokenCloseParen:
			if depth > 0 {
				depth--
			}
		}
		if start < 0 {
			start = tok.Start
		}
		end = tok.End
	}
}

func (p *Parser) valueText(start, end int) string {
	if start < 0 {
		return ""
	}
	return stripImportant(strings.TrimSpace(p.src[start:end]))
}

func stripImportant(value string) string {
	i := strings.LastIndexByte(value, '!')
	if i < 0 || !strings.EqualFold(strings.TrimSpace(value[i+1:]), "important") {
		return value
	}
	return strings.TrimSpace(value[:i])
}

// skipAtRule discards an at-rule: up to ';' or through its balanced block.
func (p *Parser) skipAtRule() {
	depth := 0
	for {
		tok := p.next()
		switch tok.Type {
		case TokenEOF:
			return
		case TokenSemicolon:
			if depth == 0 {
				return
			}
		case TokenOpenCurly:
			depth++
		case TokenCloseCurly:
			depth--
			if depth <= 0 {
				return
			}
		}
	}
}

// ParseStyleSheet tokenizes and parses style text.
func ParseStyleSheet(src string) *StyleSheet {
	return NewParser(NewTokenizer(src)).ParseStyleSheet()
}

// ParseDeclarationList parses a bare declaration list such as a style attribute.
func ParseDeclarationList(src string) Declarations {
	return NewParser(NewTokenizer(src)).parseDeclarations(false)
}
