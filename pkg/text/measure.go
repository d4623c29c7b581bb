package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"saba/pkg/css"
)

// Fixed metrics of the base (medium) font. Larger sizes scale by
// css.FontSize.Ratio.
const (
	CharWidth  = 8
	CharHeight = 16
	// LineHeight is CharHeight plus inter-line padding.
	LineHeight = 20
)

// MeasureText returns the advance width and line height of s.
func MeasureText(s string, size css.FontSize) (width, height float64) {
	ratio := float64(size.Ratio())
	return float64(utf8.RuneCountInString(s)) * CharWidth * ratio, LineHeight * ratio
}

// CharAdvance is the width of one character at size.
func CharAdvance(size css.FontSize) float64 {
	return float64(CharWidth * size.Ratio())
}

// LineHeightFor is the height of one line at size.
func LineHeightFor(size css.FontSize) float64 {
	return float64(LineHeight * size.Ratio())
}

// Words splits text on whitespace. leading and trailing report whether text
// starts or ends with whitespace, which matters when inline content continues
// across element boundaries.
func Words(s string) (words []string, leading, trailing bool) {
	if s == "" {
		return nil, false, false
	}
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	return strings.FieldsFunc(s, unicode.IsSpace), unicode.IsSpace(first), unicode.IsSpace(last)
}

// IsWhitespace reports whether s consists only of whitespace.
func IsWhitespace(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

// BreakWord splits a word wider than maxWidth into pieces that each fit. At
// least one character goes on every piece.
func BreakWord(word string, maxWidth float64, size css.FontSize) []string {
	perLine := int(maxWidth / CharAdvance(size))
	if perLine < 1 {
		perLine = 1
	}
	runes := []rune(word)
	if len(runes) <= perLine {
		return []string{word}
	}
	var pieces []string
	for len(runes) > perLine {
		pieces = append(pieces, string(runes[:perLine]))
		runes = runes[perLine:]
	}
	return append(pieces, string(runes))
}
