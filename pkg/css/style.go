package css

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a non-premultiplied RGBA color. It implements image/color.Color.
type Color struct {
	R, G, B, A uint8
}

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Blue        = Color{0, 0, 255, 255}
	Transparent = Color{}
)

// RGBA returns alpha-premultiplied components in the range [0, 0xffff].
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	r = uint32(c.R) * a / 0xff
	g = uint32(c.G) * a / 0xff
	b = uint32(c.B) * a / 0xff
	return r * 0x101, g * 0x101, b * 0x101, a * 0x101
}

func (c Color) IsTransparent() bool {
	return c.A == 0
}

func (c Color) String() string {
	switch c.A {
	case 0:
		return "transparent"
	case 255:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}

var namedColors = map[string]Color{
	"black":   {0, 0, 0, 255},
	"silver":  {192, 192, 192, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"white":   {255, 255, 255, 255},
	"maroon":  {128, 0, 0, 255},
	"red":     {255, 0, 0, 255},
	"purple":  {128, 0, 128, 255},
	"fuchsia": {255, 0, 255, 255},
	"magenta": {255, 0, 255, 255},
	"green":   {0, 128, 0, 255},
	"lime":    {0, 255, 0, 255},
	"olive":   {128, 128, 0, 255},
	"yellow":  {255, 255, 0, 255},
	"navy":    {0, 0, 128, 255},
	"blue":    {0, 0, 255, 255},
	"teal":    {0, 128, 128, 255},
	"aqua":    {0, 255, 255, 255},
	"cyan":    {0, 255, 255, 255},
	"orange":  {255, 165, 0, 255},
}

// ParseColor parses a named color, #rgb, #rrggbb, rgb(r, g, b) or transparent.
func ParseColor(colorStr string) (Color, bool) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))
	if colorStr == "transparent" {
		return Transparent, true
	}
	if c, ok := namedColors[colorStr]; ok {
		return c, true
	}
	if hex, ok := strings.CutPrefix(colorStr, "#"); ok {
		return parseHexColor(hex)
	}
	if args, ok := strings.CutPrefix(colorStr, "rgb("); ok {
		return parseRGBFunction(strings.TrimSuffix(args, ")"))
	}
	return Color{}, false
}

func parseHexColor(hex string) (Color, bool) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, true
}

func parseRGBFunction(args string) (Color, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return Color{}, false
	}
	var rgb [3]uint8
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Color{}, false
		}
		rgb[i] = uint8(min(max(n, 0), 255))
	}
	return Color{rgb[0], rgb[1], rgb[2], 255}, true
}

// FontSize is the enumerated text size.
type FontSize int

const (
	FontMedium FontSize = iota
	FontXLarge
	FontXXLarge
)

func (f FontSize) String() string {
	return [...]string{"medium", "x-large", "xx-large"}[f]
}

// Ratio is the scale factor applied to the base character metrics.
func (f FontSize) Ratio() int {
	switch f {
	case FontXLarge:
		return 2
	case FontXXLarge:
		return 3
	}
	return 1
}

// ParseFontSize accepts the size keywords and px lengths.
func ParseFontSize(val string) (FontSize, bool) {
	val = strings.ToLower(strings.TrimSpace(val))
	switch val {
	case "xx-large", "xxx-large":
		return FontXXLarge, true
	case "x-large":
		return FontXLarge, true
	case "medium", "large", "small", "x-small", "xx-small", "smaller", "larger":
		return FontMedium, true
	}
	px, ok := ParseLength(val)
	if !ok {
		return FontMedium, false
	}
	switch {
	case px >= 32:
		return FontXXLarge, true
	case px >= 24:
		return FontXLarge, true
	}
	return FontMedium, true
}

type TextDecoration int

const (
	DecorationNone TextDecoration = iota
	DecorationUnderline
)

func (d TextDecoration) String() string {
	if d == DecorationUnderline {
		return "underline"
	}
	return "none"
}

func ParseTextDecoration(val string) (TextDecoration, bool) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "underline":
		return DecorationUnderline, true
	case "none":
		return DecorationNone, true
	}
	return DecorationNone, false
}

// DisplayType represents the display property value
type DisplayType int

const (
	DisplayInline DisplayType = iota
	DisplayBlock
	DisplayListItem
	DisplayNone
)

func (d DisplayType) String() string {
	return [...]string{"inline", "block", "list-item", "none"}[d]
}

// ParseDisplay maps a display value. inline-block is treated as inline.
func ParseDisplay(val string) (DisplayType, bool) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "block":
		return DisplayBlock, true
	case "inline", "inline-block":
		return DisplayInline, true
	case "list-item":
		return DisplayListItem, true
	case "none":
		return DisplayNone, true
	}
	return DisplayInline, false
}

// Length is an optional px length. The zero value means auto.
type Length struct {
	Px        float64
	Specified bool
}

// Or returns the length, or fallback when it is auto.
func (l Length) Or(fallback float64) float64 {
	if l.Specified {
		return l.Px
	}
	return fallback
}

// ParseLength parses a length value (e.g., "100px" or "100")
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// ComputedStyle is the resolved style of one node.
type ComputedStyle struct {
	BackgroundColor Color
	Color           Color
	FontSize        FontSize
	TextDecoration  TextDecoration
	Display         DisplayType
	Width           Length
	Height          Length
}

// InitialStyle returns the style every property starts from.
func InitialStyle() ComputedStyle {
	return ComputedStyle{
		BackgroundColor: Transparent,
		Color:           Black,
		FontSize:        FontMedium,
		TextDecoration:  DecorationNone,
		Display:         DisplayInline,
	}
}

// Apply overlays one declaration. Unknown properties and unparseable values are
// ignored.
func (s *ComputedStyle) Apply(property, value string) {
	switch property {
	case "color":
		if c, ok := ParseColor(value); ok {
			s.Color = c
		}
	case "background-color":
		if c, ok := ParseColor(value); ok {
			s.BackgroundColor = c
		}
	case "background":
		// Only the single-color shorthand is understood.
		if c, ok := ParseColor(value); ok {
			s.BackgroundColor = c
		}
	case "font-size":
		if f, ok := ParseFontSize(value); ok {
			s.FontSize = f
		}
	case "text-decoration", "text-decoration-line":
		if d, ok := ParseTextDecoration(value); ok {
			s.TextDecoration = d
		}
	case "display":
		if d, ok := ParseDisplay(value); ok {
			s.Display = d
		}
	case "width":
		if px, ok := ParseLength(value); ok && px >= 0 {
			s.Width = Length{Px: px, Specified: true}
		}
	case "height":
		if px, ok := ParseLength(value); ok && px >= 0 {
			s.Height = Length{Px: px, Specified: true}
		}
	}
}

// ApplyAll overlays decls in order.
func (s *ComputedStyle) ApplyAll(decls Declarations) {
	for _, d := range decls {
		s.Apply(d.Property, d.Value)
	}
}

func (s ComputedStyle) String() string {
	return fmt.Sprintf("display=%s color=%s background=%s font=%s decoration=%s",
		s.Display, s.Color, s.BackgroundColor, s.FontSize, s.TextDecoration)
}
