package css

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  Color
		ok    bool
	}{
		{"red", Color{255, 0, 0, 255}, true},
		{" Green ", Color{0, 128, 0, 255}, true},
		{"orange", Color{255, 165, 0, 255}, true},
		{"aqua", Color{0, 255, 255, 255}, true},
		{"#00ff00", Color{0, 255, 0, 255}, true},
		{"#ABCDEF", Color{0xab, 0xcd, 0xef, 255}, true},
		{"#f00", Color{255, 0, 0, 255}, true},
		{"rgb(10, 20, 300)", Color{10, 20, 255, 255}, true},
		{"transparent", Transparent, true},
		{"#12345", Color{}, false},
		{"#ggg", Color{}, false},
		{"rgb(1,2)", Color{}, false},
		{"rebeccapurple-ish", Color{}, false},
		{"", Color{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestColorImplementsImageColor(t *testing.T) {
	var c color.Color = Color{255, 0, 0, 255}
	r, g, b, a := c.RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0, 0xffff}, []uint32{r, g, b, a})

	_, _, _, a = Transparent.RGBA()
	assert.Zero(t, a)

	half := color.RGBAModel.Convert(Color{200, 100, 0, 128}).(color.RGBA)
	assert.Equal(t, uint8(128), half.A)
	assert.Equal(t, uint8(100), half.R)
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "#00ff00", Color{0, 255, 0, 255}.String())
	assert.Equal(t, "transparent", Transparent.String())
	assert.Equal(t, "rgba(1,2,3,4)", Color{1, 2, 3, 4}.String())
}

func TestParseFontSize(t *testing.T) {
	tests := []struct {
		input string
		want  FontSize
		ok    bool
	}{
		{"xx-large", FontXXLarge, true},
		{"x-large", FontXLarge, true},
		{"medium", FontMedium, true},
		{"small", FontMedium, true},
		{"32px", FontXXLarge, true},
		{"40px", FontXXLarge, true},
		{"24px", FontXLarge, true},
		{"31px", FontXLarge, true},
		{"16px", FontMedium, true},
		{"2em", FontMedium, false},
	}
	for _, tt := range tests {
		got, ok := ParseFontSize(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestFontSizeRatio(t *testing.T) {
	assert.Equal(t, 1, FontMedium.Ratio())
	assert.Equal(t, 2, FontXLarge.Ratio())
	assert.Equal(t, 3, FontXXLarge.Ratio())
}

func TestParseDisplay(t *testing.T) {
	for input, want := range map[string]DisplayType{
		"block":        DisplayBlock,
		"inline":       DisplayInline,
		"inline-block": DisplayInline,
		"list-item":    DisplayListItem,
		"NONE":         DisplayNone,
	} {
		got, ok := ParseDisplay(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}
	_, ok := ParseDisplay("flex")
	assert.False(t, ok)
}

func TestGetLength_PixelValue(t *testing.T) {
	if v, ok := ParseLength("100px"); !ok || v != 100 {
		t.Errorf("expected 100, got %v", v)
	}
	if v, ok := ParseLength("12.5"); !ok || v != 12.5 {
		t.Errorf("expected 12.5, got %v", v)
	}
	if _, ok := ParseLength("auto"); ok {
		t.Error("auto is not a length")
	}
}

func TestComputedStyle_Apply(t *testing.T) {
	s := InitialStyle()
	s.Apply("color", "red")
	s.Apply("background", "#00f")
	s.Apply("font-size", "xx-large")
	s.Apply("text-decoration", "underline")
	s.Apply("display", "block")
	s.Apply("width", "100px")
	s.Apply("height", "0")

	assert.Equal(t, ComputedStyle{
		BackgroundColor: Color{0, 0, 255, 255},
		Color:           Color{255, 0, 0, 255},
		FontSize:        FontXXLarge,
		TextDecoration:  DecorationUnderline,
		Display:         DisplayBlock,
		Width:           Length{Px: 100, Specified: true},
		Height:          Length{Px: 0, Specified: true},
	}, s)
}

func TestComputedStyle_ApplyIgnoresBadValues(t *testing.T) {
	s := InitialStyle()
	s.Apply("color", "not-a-color")
	s.Apply("display", "grid")
	s.Apply("width", "-5px")
	s.Apply("height", "auto")
	s.Apply("margin", "10px")
	assert.Equal(t, InitialStyle(), s)
}

func TestLengthOr(t *testing.T) {
	assert.Equal(t, 50.0, Length{}.Or(50))
	assert.Equal(t, 0.0, Length{Specified: true}.Or(50))
}
