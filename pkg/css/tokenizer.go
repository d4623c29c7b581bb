package css

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType int

const (
	TokenIdent TokenType = iota
	TokenNumber
	TokenString
	TokenHash      // #name, Value excludes the '#'
	TokenAtKeyword // @name, Value excludes the '@'
	TokenDelim
	TokenColon
	TokenSemicolon
	TokenComma
	TokenOpenParen
	TokenCloseParen
	TokenOpenCurly
	TokenCloseCurly
	TokenEOF
)

func (t TokenType) String() string {
	return [...]string{"Ident", "Number", "String", "Hash", "AtKeyword", "Delim", "Colon",
		"Semicolon", "Comma", "OpenParen", "CloseParen", "OpenCurly", "CloseCurly", "EOF"}[t]
}

// Token is one CSS token. Start and End are byte offsets into the source.
type Token struct {
	Type   TokenType
	Value  string
	Number float64
	Delim  rune
	Start  int
	End    int
}

// Tokenizer splits a style sheet into tokens. It never fails; unterminated
// strings and comments run to the end of input.
type Tokenizer struct {
	input string
	pos   int
}

func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// Source returns the text being tokenized.
func (t *Tokenizer) Source() string {
	return t.input
}

// NextToken returns the next token, skipping whitespace and comments. EOF is
// returned on every call once the input is exhausted.
func (t *Tokenizer) NextToken() Token {
	t.skipWhitespace()
	start := t.pos
	if t.pos >= len(t.input) {
		return Token{Type: TokenEOF, Start: start, End: start}
	}

	c, size := utf8.DecodeRuneInString(t.input[t.pos:])
	switch {
	case c == '"' || c == '\'':
		return t.readString(c)
	case isDigit(c) || (c == '.' && isDigit(t.peekRune(1))):
		return t.readNumber()
	case (c == '-' || c == '+') && (isDigit(t.peekRune(1)) || (t.peekRune(1) == '.' && isDigit(t.peekRune(2)))):
		return t.readNumber()
	case c == '-' && isNameStart(t.peekRune(1)):
		return t.readIdent()
	case isNameStart(c):
		return t.readIdent()
	case c == '#' && isNameChar(t.peekRune(1)):
		t.pos++
		name := t.readName()
		return Token{Type: TokenHash, Value: name, Start: start, End: t.pos}
	case c == '@' && isNameStart(t.peekRune(1)):
		t.pos++
		name := t.readName()
		return Token{Type: TokenAtKeyword, Value: name, Start: start, End: t.pos}
	}

	t.pos += size
	tok := Token{Start: start, End: t.pos}
	switch c {
	case ':':
		tok.Type = TokenColon
	case ';':
		tok.Type = TokenSemicolon
	case ',':
		tok.Type = TokenComma
	case '(':
		tok.Type = TokenOpenParen
	case ')':
		tok.Type = TokenCloseParen
	case '{':
		tok.Type = TokenOpenCurly
	case '}':
		tok.Type = TokenCloseCurly
	default:
		tok.Type = TokenDelim
		tok.Delim = c
	}
	tok.Value = t.input[start:t.pos]
	return tok
}

func (t *Tokenizer) readIdent() Token {
	start := t.pos
	if t.input[t.pos] == '-' {
		t.pos++
	}
	t.readName()
	return Token{Type: TokenIdent, Value: t.input[start:t.pos], Start: start, End: t.pos}
}

func (t *Tokenizer) readName() string {
	start := t.pos
	for t.pos < len(t.input) {
		c, size := utf8.DecodeRuneInString(t.input[t.pos:])
		if !isNameChar(c) {
			break
		}
		t.pos += size
	}
	return t.input[start:t.pos]
}

// readNumber reads an optionally signed decimal. A unit or percent sign that
// follows is left for the next token.
func (t *Tokenizer) readNumber() Token {
	start := t.pos
	if c := t.input[t.pos]; c == '-' || c == '+' {
		t.pos++
	}
	seenDot := false
	for t.pos < len(t.input) {
		c := t.input[t.pos]
		if c == '.' && !seenDot && t.pos+1 < len(t.input) && isDigit(rune(t.input[t.pos+1])) {
			seenDot = true
			t.pos++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		t.pos++
	}
	text := t.input[start:t.pos]
	n, _ := strconv.ParseFloat(text, 64)
	return Token{Type: TokenNumber, Value: text, Number: n, Start: start, End: t.pos}
}

// readString reads a quoted string. Backslash escapes the next character.
func (t *Tokenizer) readString(quote rune) Token {
	start := t.pos
	t.pos++
	var sb strings.Builder
	for t.pos < len(t.input) {
		c, size := utf8.DecodeRuneInString(t.input[t.pos:])
		t.pos += size
		if c == quote {
			break
		}
		if c == '\\' && t.pos < len(t.input) {
			c, size = utf8.DecodeRuneInString(t.input[t.pos:])
			t.pos += size
		}
		sb.WriteRune(c)
	}
	return Token{Type: TokenString, Value: sb.String(), Start: start, End: t.pos}
}

func (t *Tokenizer) skipWhitespace() {
	for t.pos < len(t.input) {
		if isSpace(t.input[t.pos]) {
			t.pos++
		} else if strings.HasPrefix(t.input[t.pos:], "/*") {
			t.skipComment()
		} else {
			break
		}
	}
}

// skipComment skips a /* ... */ comment. Assumes pos is at the '/'.
func (t *Tokenizer) skipComment() {
	end := strings.Index(t.input[t.pos+2:], "*/")
	if end < 0 {
		t.pos = len(t.input)
		return
	}
	t.pos += 2 + end + 2
}

// peekRune returns the rune n runes past the current position, or 0.
func (t *Tokenizer) peekRune(n int) rune {
	pos := t.pos
	for i := 0; ; i++ {
		if pos >= len(t.input) {
			return 0
		}
		c, size := utf8.DecodeRuneInString(t.input[pos:])
		if i == n {
			return c
		}
		pos += size
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isNameStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf && unicode.IsLetter(c)
}

func isNameChar(c rune) bool {
	return isNameStart(c) || isDigit(c) || c == '-' || c >= utf8.RuneSelf
}
