package html

import (
	"unicode"

	gohtml "golang.org/x/net/html"
)

type TokenType int

const (
	TokenStartTag TokenType = iota
	TokenEndTag
	TokenChar
	TokenEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenStartTag:
		return "StartTag"
	case TokenEndTag:
		return "EndTag"
	case TokenChar:
		return "Char"
	case TokenEOF:
		return "EOF"
	}
	return "Unknown"
}

type Token struct {
	Type        TokenType
	TagName     string
	Attributes  []Attribute
	SelfClosing bool // True for tags ending with />
	Char        rune
}

// State is the tokenizer's current state.
type State int

const (
	StateData State = iota
	StateCharacterReference
	StateTagOpen
	StateEndTagOpen
	StateTagName
	StateBeforeAttributeName
	StateAttributeName
	StateAfterAttributeName
	StateBeforeAttributeValue
	StateAttributeValueDoubleQuoted
	StateAttributeValueSingleQuoted
	StateAttributeValueUnquoted
	StateAfterAttributeValueQuoted
	StateSelfClosingStartTag
	StateMarkupDeclarationOpen
	StateComment
	StateBogusComment
	StateScriptData
	StateScriptDataLessThanSign
	StateScriptDataEndTagOpen
	StateScriptDataEndTagName
	StateRawText
	StateRawTextLessThanSign
	StateRawTextEndTagOpen
	StateRawTextEndTagName
	StateTemporaryBuffer
)

// maxCharRefLen bounds the scan for a named character reference.
const maxCharRefLen = 32

// Tokenizer turns HTML source into a lazy sequence of tokens. It never fails:
// malformed input degrades to whatever tokens were complete, followed by EOF.
type Tokenizer struct {
	input []rune
	pos   int
	state State

	// returnState is where CharacterReference and TemporaryBuffer go back to.
	returnState State

	latest    *Token
	attrOpen  bool
	attrName  []rune
	attrValue []rune

	buf          []rune // temporary buffer for end tag names in raw text
	lastStartTag string
	pending      []Token
	done         bool
}

func NewTokenizer(html string) *Tokenizer {
	return &Tokenizer{input: []rune(html), state: StateData}
}

// Reset rewinds the tokenizer to the start of its input.
func (t *Tokenizer) Reset() {
	*t = Tokenizer{input: t.input, state: StateData}
}

// State returns the current state.
func (t *Tokenizer) State() State {
	return t.state
}

// NextToken returns the next token. Once the input is exhausted it returns EOF
// on every call.
func (t *Tokenizer) NextToken() Token {
	for {
		if len(t.pending) > 0 {
			tok := t.pending[0]
			t.pending = t.pending[1:]
			return tok
		}
		if t.done {
			return Token{Type: TokenEOF}
		}
		if t.state == StateTemporaryBuffer {
			if len(t.buf) > 0 {
				c := t.buf[0]
				t.buf = t.buf[1:]
				return charToken(c)
			}
			t.state = t.returnState
			continue
		}
		if t.pos >= len(t.input) {
			if tok, ok := t.eof(); ok {
				return tok
			}
			continue
		}

		c := t.input[t.pos]
		t.pos++
		if tok, ok := t.step(c); ok {
			return tok
		}
	}
}

// step consumes c in the current state. It returns a token when one is complete.
func (t *Tokenizer) step(c rune) (Token, bool) {
	switch t.state {
	case StateData:
		switch c {
		case '&':
			t.returnState = StateData
			t.state = StateCharacterReference
		case '<':
			t.state = StateTagOpen
		default:
			return charToken(c), true
		}

	case StateCharacterReference:
		t.reconsume(t.returnState)
		t.consumeCharacterReference()

	case StateTagOpen:
		switch {
		case c == '!':
			t.state = StateMarkupDeclarationOpen
		case c == '/':
			t.state = StateEndTagOpen
		case isASCIIAlpha(c):
			t.latest = &Token{Type: TokenStartTag}
			t.reconsume(StateTagName)
		case c == '?':
			t.reconsume(StateBogusComment)
		default:
			t.reconsume(StateData)
			return charToken('<'), true
		}

	case StateEndTagOpen:
		switch {
		case isASCIIAlpha(c):
			t.latest = &Token{Type: TokenEndTag}
			t.reconsume(StateTagName)
		case c == '>':
			t.state = StateData
		default:
			t.reconsume(StateBogusComment)
		}

	case StateTagName:
		switch {
		case isWhitespace(c):
			t.state = StateBeforeAttributeName
		case c == '/':
			t.state = StateSelfClosingStartTag
		case c == '>':
			return t.emitTag(), true
		default:
			t.latest.TagName += string(unicode.ToLower(c))
		}

	case StateBeforeAttributeName:
		switch {
		case isWhitespace(c):
		case c == '/' || c == '>':
			t.reconsume(StateAfterAttributeName)
		case c == '=':
			t.startAttribute()
			t.attrName = append(t.attrName, c)
			t.state = StateAttributeName
		default:
			t.startAttribute()
			t.reconsume(StateAttributeName)
		}

	case StateAttributeName:
		switch {
		case isWhitespace(c) || c == '/' || c == '>':
			t.reconsume(StateAfterAttributeName)
		case c == '=':
			t.state = StateBeforeAttributeValue
		default:
			t.attrName = append(t.attrName, unicode.ToLower(c))
		}

	case StateAfterAttributeName:
		switch {
		case isWhitespace(c):
		case c == '/':
			t.state = StateSelfClosingStartTag
		case c == '=':
			t.state = StateBeforeAttributeValue
		case c == '>':
			return t.emitTag(), true
		default:
			t.startAttribute()
			t.reconsume(StateAttributeName)
		}

	case StateBeforeAttributeValue:
		switch {
		case isWhitespace(c):
		case c == '"':
			t.state = StateAttributeValueDoubleQuoted
		case c == '\'':
			t.state = StateAttributeValueSingleQuoted
		case c == '>':
			return t.emitTag(), true
		default:
			t.reconsume(StateAttributeValueUnquoted)
		}

	case StateAttributeValueDoubleQuoted, StateAttributeValueSingleQuoted:
		quote := '"'
		if t.state == StateAttributeValueSingleQuoted {
			quote = '\''
		}
		switch c {
		case quote:
			t.state = StateAfterAttributeValueQuoted
		case '&':
			t.returnState = t.state
			t.state = StateCharacterReference
		default:
			t.attrValue = append(t.attrValue, c)
		}

	case StateAttributeValueUnquoted:
		switch {
		case isWhitespace(c):
			t.state = StateBeforeAttributeName
		case c == '&':
			t.returnState = StateAttributeValueUnquoted
			t.state = StateCharacterReference
		case c == '>':
			return t.emitTag(), true
		default:
			t.attrValue = append(t.attrValue, c)
		}

	case StateAfterAttributeValueQuoted:
		switch {
		case isWhitespace(c):
			t.state = StateBeforeAttributeName
		case c == '/':
			t.state = StateSelfClosingStartTag
		case c == '>':
			return t.emitTag(), true
		default:
			t.reconsume(StateBeforeAttributeName)
		}

	case StateSelfClosingStartTag:
		if c == '>' {
			t.latest.SelfClosing = true
			return t.emitTag(), true
		}
		t.reconsume(StateBeforeAttributeName)

	case StateMarkupDeclarationOpen:
		if c == '-' && t.peek() == '-' {
			t.pos++
			t.state = StateComment
			return Token{}, false
		}
		// <!DOCTYPE ...> and other declarations are dropped.
		t.reconsume(StateBogusComment)

	case StateComment:
		if c == '-' && t.peek() == '-' && t.peekAt(1) == '>' {
			t.pos += 2
			t.state = StateData
		}

	case StateBogusComment:
		if c == '>' {
			t.state = StateData
		}

	case StateScriptData, StateRawText:
		if c == '<' {
			if t.state == StateScriptData {
				t.state = StateScriptDataLessThanSign
			} else {
				t.state = StateRawTextLessThanSign
			}
			return Token{}, false
		}
		return charToken(c), true

	case StateScriptDataLessThanSign, StateRawTextLessThanSign:
		text := t.textState()
		if c == '/' {
			t.buf = t.buf[:0]
			if text == StateScriptData {
				t.state = StateScriptDataEndTagOpen
			} else {
				t.state = StateRawTextEndTagOpen
			}
			return Token{}, false
		}
		t.reconsume(text)
		return charToken('<'), true

	case StateScriptDataEndTagOpen, StateRawTextEndTagOpen:
		text := t.textState()
		if isASCIIAlpha(c) {
			t.latest = &Token{Type: TokenEndTag}
			if text == StateScriptData {
				t.reconsume(StateScriptDataEndTagName)
			} else {
				t.reconsume(StateRawTextEndTagName)
			}
			return Token{}, false
		}
		t.reconsume(text)
		t.pending = append(t.pending, charToken('/'))
		return charToken('<'), true

	case StateScriptDataEndTagName, StateRawTextEndTagName:
		appropriate := t.latest.TagName == t.lastStartTag
		switch {
		case isWhitespace(c) && appropriate:
			t.state = StateBeforeAttributeName
		case c == '/' && appropriate:
			t.state = StateSelfClosingStartTag
		case c == '>' && appropriate:
			return t.emitTag(), true
		case isASCIIAlpha(c):
			t.latest.TagName += string(unicode.ToLower(c))
			t.buf = append(t.buf, c)
		default:
			text := t.textState()
			t.reconsume(text)
			t.flushTemporaryBuffer(text)
		}
	}
	return Token{}, false
}

// eof handles the end of input in the current state. It reports false when the
// caller should keep looping (a buffer still has to be flushed).
func (t *Tokenizer) eof() (Token, bool) {
	switch t.state {
	case StateTagOpen, StateScriptDataLessThanSign, StateRawTextLessThanSign:
		t.state = StateData
		return charToken('<'), true
	case StateEndTagOpen, StateScriptDataEndTagOpen, StateRawTextEndTagOpen:
		t.state = StateData
		t.pending = append(t.pending, charToken('/'))
		return charToken('<'), true
	case StateScriptDataEndTagName, StateRawTextEndTagName:
		t.flushTemporaryBuffer(StateData)
		return Token{}, false
	case StateCharacterReference:
		t.state = t.returnState
		if t.returnState == StateData {
			return charToken('&'), true
		}
	}
	// Tags and attributes still under construction are dropped.
	t.latest = nil
	t.done = true
	return Token{Type: TokenEOF}, true
}

func (t *Tokenizer) reconsume(s State) {
	t.pos--
	t.state = s
}

func (t *Tokenizer) peek() rune {
	return t.peekAt(0)
}

func (t *Tokenizer) peekAt(offset int) rune {
	if t.pos+offset >= len(t.input) {
		return 0
	}
	return t.input[t.pos+offset]
}

// textState returns the text state a raw-text sub-state belongs to.
func (t *Tokenizer) textState() State {
	switch t.state {
	case StateScriptDataLessThanSign, StateScriptDataEndTagOpen, StateScriptDataEndTagName:
		return StateScriptData
	}
	return StateRawText
}

// flushTemporaryBuffer re-emits "</" plus the buffered name as characters and then
// continues in s.
func (t *Tokenizer) flushTemporaryBuffer(s State) {
	t.buf = append([]rune("</"), t.buf...)
	t.latest = nil
	t.returnState = s
	t.state = StateTemporaryBuffer
}

func (t *Tokenizer) startAttribute() {
	t.commitAttribute()
	t.attrOpen = true
}

// commitAttribute appends the attribute under construction. Duplicates keep the
// first value.
func (t *Tokenizer) commitAttribute() {
	if !t.attrOpen || t.latest == nil {
		t.attrOpen = false
		t.attrName, t.attrValue = t.attrName[:0], t.attrValue[:0]
		return
	}
	name := string(t.attrName)
	dup := false
	for _, a := range t.latest.Attributes {
		if a.Name == name {
			dup = true
			break
		}
	}
	if !dup && name != "" {
		t.latest.Attributes = append(t.latest.Attributes, Attribute{Name: name, Value: string(t.attrValue)})
	}
	t.attrOpen = false
	t.attrName, t.attrValue = t.attrName[:0], t.attrValue[:0]
}

func (t *Tokenizer) emitTag() Token {
	t.commitAttribute()
	tok := *t.latest
	t.latest = nil
	t.state = StateData
	if tok.Type == TokenStartTag {
		t.lastStartTag = tok.TagName
		switch tok.TagName {
		case "script":
			t.state = StateScriptData
		case "style", "title", "textarea", "xmp", "noframes":
			t.state = StateRawText
		}
	}
	return tok
}

// consumeCharacterReference decodes a reference starting at the current position
// (just after '&') and delivers the result to the return state.
func (t *Tokenizer) consumeCharacterReference() {
	end := t.pos
	if end < len(t.input) && t.input[end] == '#' {
		end++
		if end < len(t.input) && (t.input[end] == 'x' || t.input[end] == 'X') {
			end++
		}
		for end < len(t.input) && end-t.pos < maxCharRefLen && isHexDigit(t.input[end]) {
			end++
		}
	} else {
		for end < len(t.input) && end-t.pos < maxCharRefLen && isASCIIAlphanumeric(t.input[end]) {
			end++
		}
	}
	if end < len(t.input) && t.input[end] == ';' {
		end++
	}

	candidate := "&" + string(t.input[t.pos:end])
	decoded := gohtml.UnescapeString(candidate)
	if end == t.pos || decoded == candidate {
		t.deliver([]rune{'&'})
		return
	}
	t.pos = end
	t.deliver([]rune(decoded))
}

func (t *Tokenizer) deliver(rs []rune) {
	switch t.returnState {
	case StateAttributeValueDoubleQuoted, StateAttributeValueSingleQuoted, StateAttributeValueUnquoted:
		t.attrValue = append(t.attrValue, rs...)
	default:
		for _, r := range rs {
			t.pending = append(t.pending, charToken(r))
		}
	}
}

func charToken(c rune) Token {
	return Token{Type: TokenChar, Char: c}
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\f' || c == '\r'
}

func isASCIIAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIAlphanumeric(c rune) bool {
	return isASCIIAlpha(c) || (c >= '0' && c <= '9')
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
