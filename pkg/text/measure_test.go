package text

import (
	"testing"

	"saba/pkg/css"

	"github.com/stretchr/testify/assert"
)

func TestMeasureText(t *testing.T) {
	w, h := MeasureText("Hi", css.FontMedium)
	assert.Equal(t, 16.0, w)
	assert.Equal(t, 20.0, h)

	w, h = MeasureText("héllo", css.FontXXLarge)
	assert.Equal(t, 5*8*3.0, w, "width counts runes, not bytes")
	assert.Equal(t, 60.0, h)

	assert.Equal(t, 16.0, CharAdvance(css.FontXLarge))
	assert.Equal(t, 40.0, LineHeightFor(css.FontXLarge))
}

func TestWords(t *testing.T) {
	words, leading, trailing := Words("  hello \n world ")
	assert.Equal(t, []string{"hello", "world"}, words)
	assert.True(t, leading)
	assert.True(t, trailing)

	words, leading, trailing = Words("one")
	assert.Equal(t, []string{"one"}, words)
	assert.False(t, leading)
	assert.False(t, trailing)

	words, _, _ = Words("")
	assert.Empty(t, words)
}

func TestIsWhitespace(t *testing.T) {
	assert.True(t, IsWhitespace(" \n\t "))
	assert.True(t, IsWhitespace(""))
	assert.False(t, IsWhitespace(" x "))
}

func TestBreakWord(t *testing.T) {
	assert.Equal(t, []string{"abc", "def", "g"}, BreakWord("abcdefg", 24, css.FontMedium))
	assert.Equal(t, []string{"short"}, BreakWord("short", 100, css.FontMedium))
	assert.Equal(t, []string{"a", "b"}, BreakWord("ab", 3, css.FontMedium), "at least one rune per piece")
	assert.Equal(t, []string{"ab", "cd"}, BreakWord("abcd", 50, css.FontXXLarge))
}
