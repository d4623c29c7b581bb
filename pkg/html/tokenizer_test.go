package html

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect drains the tokenizer. It fails the test if EOF does not arrive within a
// bound proportional to the input length.
func collect(t *testing.T, input string) []Token {
	t.Helper()
	tokenizer := NewTokenizer(input)
	limit := 4*len(input) + 16
	var tokens []Token
	for i := 0; i < limit; i++ {
		tok := tokenizer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
	t.Fatalf("no EOF after %d tokens for %q", limit, input)
	return nil
}

// normalize rebuilds source text from tag names and characters.
func normalize(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		switch tok.Type {
		case TokenStartTag:
			sb.WriteString("<" + tok.TagName + ">")
		case TokenEndTag:
			sb.WriteString("</" + tok.TagName + ">")
		case TokenChar:
			sb.WriteRune(tok.Char)
		}
	}
	return sb.String()
}

func TestTokenizer_SimpleStartTag(t *testing.T) {
	tokenizer := NewTokenizer("<div>")
	token := tokenizer.NextToken()
	if token.Type != TokenStartTag {
		t.Errorf("expected TokenStartTag, got %v", token.Type)
	}
	if token.TagName != "div" {
		t.Errorf("expected tag name 'div', got '%s'", token.TagName)
	}
	if tokenizer.NextToken().Type != TokenEOF {
		t.Error("expected EOF")
	}
}

func TestTokenizer_TagWithAttributes(t *testing.T) {
	tokens := collect(t, `<div style="color: red" id='main' class=note hidden>`)
	require.Len(t, tokens, 2)
	assert.Equal(t, []Attribute{
		{Name: "style", Value: "color: red"},
		{Name: "id", Value: "main"},
		{Name: "class", Value: "note"},
		{Name: "hidden", Value: ""},
	}, tokens[0].Attributes)
}

func TestTokenizer_DuplicateAttributeKeepsFirst(t *testing.T) {
	tokens := collect(t, `<a href="one" HREF="two">`)
	assert.Equal(t, []Attribute{{Name: "href", Value: "one"}}, tokens[0].Attributes)
}

func TestTokenizer_CompleteSequence(t *testing.T) {
	tokens := collect(t, "<div>Hi</div>")
	want := []Token{
		{Type: TokenStartTag, TagName: "div"},
		{Type: TokenChar, Char: 'H'},
		{Type: TokenChar, Char: 'i'},
		{Type: TokenEndTag, TagName: "div"},
		{Type: TokenEOF},
	}
	assert.Equal(t, want, tokens)
}

func TestTokenizer_SelfClosing(t *testing.T) {
	tokens := collect(t, `<br/><img src="a.png" />`)
	require.Len(t, tokens, 3)
	assert.True(t, tokens[0].SelfClosing)
	assert.Equal(t, "br", tokens[0].TagName)
	assert.True(t, tokens[1].SelfClosing)
	assert.Equal(t, []Attribute{{Name: "src", Value: "a.png"}}, tokens[1].Attributes)
}

func TestTokenizer_UppercaseNamesAreLowered(t *testing.T) {
	tokens := collect(t, `<DIV CLASS="X"></DiV>`)
	assert.Equal(t, "div", tokens[0].TagName)
	assert.Equal(t, "class", tokens[0].Attributes[0].Name)
	assert.Equal(t, "X", tokens[0].Attributes[0].Value)
	assert.Equal(t, "div", tokens[1].TagName)
}

func TestTokenizer_StyleIsRawText(t *testing.T) {
	tokens := collect(t, "<style>p > a { color: red; }</style><p>")
	assert.Equal(t, "<style>p > a { color: red; }</style><p>", normalize(tokens))

	var starts []string
	for _, tok := range tokens {
		if tok.Type == TokenStartTag {
			starts = append(starts, tok.TagName)
		}
	}
	assert.Equal(t, []string{"style", "p"}, starts, "markup inside <style> must not produce tags")
}

func TestTokenizer_TitleIsRawText(t *testing.T) {
	tokens := collect(t, "<title>a</b>b</title>")
	assert.Equal(t, "<title>a</b>b</title>", normalize(tokens))

	var ends []string
	for _, tok := range tokens {
		if tok.Type == TokenEndTag {
			ends = append(ends, tok.TagName)
		}
	}
	assert.Equal(t, []string{"title"}, ends)
}

func TestTokenizer_ScriptData(t *testing.T) {
	tokens := collect(t, `<script>if (a < b) { s = "</div>"; }</script>`)
	assert.Equal(t, `<script>if (a < b) { s = "</div>"; }</script>`, normalize(tokens))
	assert.Equal(t, TokenEndTag, tokens[len(tokens)-2].Type)
	assert.Equal(t, "script", tokens[len(tokens)-2].TagName)
}

func TestTokenizer_CommentsAndDoctypeAreSkipped(t *testing.T) {
	tokens := collect(t, "<!DOCTYPE html><!-- a <b> comment --><p>x</p><?xml nope?>")
	assert.Equal(t, "<p>x</p>", normalize(tokens))
}

func TestTokenizer_CharacterReferences(t *testing.T) {
	tokens := collect(t, `<a title="x &amp; y">&lt;b&gt; &#65;&#x42; &unknown; &</a>`)
	assert.Equal(t, "x & y", tokens[0].Attributes[0].Value)
	assert.Equal(t, "<a><b> AB &unknown; &</a>", normalize(tokens))
}

func TestTokenizer_LoneLessThan(t *testing.T) {
	tokens := collect(t, "a < b")
	assert.Equal(t, "a < b", normalize(tokens))
}

func TestTokenizer_EOFAlwaysLast(t *testing.T) {
	inputs := []string{
		"",
		"<",
		"</",
		"<div",
		"<div class=",
		`<div class="unterminated`,
		"<div class='x' /",
		"<!-- never closed",
		"<!DOCTYPE",
		"<script>var a = 1;</scr",
		"<style>p{}</sty",
		"<p>text &am",
		"&",
		"<a href=x>link",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tokens := collect(t, input)
			for i, tok := range tokens[:len(tokens)-1] {
				assert.NotEqual(t, TokenEOF, tok.Type, "EOF before end at index %d", i)
			}
			assert.Equal(t, TokenEOF, tokens[len(tokens)-1].Type)
		})
	}
}

func TestTokenizer_UnterminatedTagIsDropped(t *testing.T) {
	tokens := collect(t, `<p>ok</p><div class="a`)
	assert.Equal(t, "<p>ok</p>", normalize(tokens))
}

func TestTokenizer_RawTextTailIsFlushed(t *testing.T) {
	tokens := collect(t, "<style>a{}</sty")
	assert.Equal(t, "<style>a{}</sty", normalize(tokens))
}

func TestTokenizer_EOFIsSticky(t *testing.T) {
	tokenizer := NewTokenizer("x")
	tokenizer.NextToken()
	for i := 0; i < 3; i++ {
		assert.Equal(t, TokenEOF, tokenizer.NextToken().Type)
	}
}

func TestTokenizer_Reset(t *testing.T) {
	tokenizer := NewTokenizer("<b>x</b>")
	first := []Token{tokenizer.NextToken(), tokenizer.NextToken()}
	tokenizer.Reset()
	assert.Equal(t, StateData, tokenizer.State())
	second := []Token{tokenizer.NextToken(), tokenizer.NextToken()}
	assert.Equal(t, first, second)
}

func TestTokenizer_NormalizedRoundTrip(t *testing.T) {
	inputs := []string{
		"<html><body><p>hi</p></body></html>",
		"<ul><li>one</li><li>two</li></ul>",
		"plain text only",
		"<p>a<p>b",
		"<h1>Title</h1>\n<p>Some <a>link</a> here.</p>",
	}
	for _, input := range inputs {
		assert.Equal(t, input, normalize(collect(t, input)))
	}
}
