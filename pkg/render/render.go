// Package render rasterizes display items with gg.
package render

import (
	"image"
	"image/color"
	"io"

	"saba/pkg/core"
	"saba/pkg/css"
	"saba/pkg/layout"
	"saba/pkg/paint"
	"saba/pkg/text"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
)

// face is an 8x16 bitmap font, matching the fixed metrics in pkg/text.
var face *basicfont.Face = inconsolata.Regular8x16

type Renderer struct {
	context *gg.Context
	origin  layout.Point
	bg      color.Color
}

func NewRenderer(width, height int) *Renderer {
	return newRenderer(gg.NewContext(width, height))
}

// NewRendererForImage draws directly into im.
func NewRendererForImage(im *image.RGBA) *Renderer {
	return newRenderer(gg.NewContextForRGBA(im))
}

func newRenderer(dc *gg.Context) *Renderer {
	dc.SetFontFace(face)
	return &Renderer{context: dc, bg: color.White}
}

// SetOrigin moves the content area inside the canvas. Display item
// coordinates are relative to it.
func (r *Renderer) SetOrigin(p layout.Point) {
	r.origin = p
}

// Render clears the canvas and draws items in order.
func (r *Renderer) Render(items []paint.DisplayItem) {
	r.context.SetColor(r.bg)
	r.context.Clear()

	for _, item := range items {
		switch it := item.(type) {
		case paint.RectItem:
			r.drawRect(it)
		case paint.TextItem:
			r.drawText(it)
		}
	}
}

func (r *Renderer) drawRect(it paint.RectItem) {
	if it.Size.Width <= 0 || it.Size.Height <= 0 {
		return
	}
	r.context.SetColor(it.Style.BackgroundColor)
	r.context.DrawRectangle(r.origin.X+it.Point.X, r.origin.Y+it.Point.Y, it.Size.Width, it.Size.Height)
	r.context.Fill()
}

func (r *Renderer) drawText(it paint.TextItem) {
	if it.Text == "" {
		return
	}
	ratio := float64(it.Style.FontSize.Ratio())
	x, y := r.origin.X+it.Point.X, r.origin.Y+it.Point.Y

	r.context.SetColor(it.Style.Color)
	r.context.Push()
	r.context.Translate(x, y)
	r.context.Scale(ratio, ratio)
	// The bitmap face is 16px tall; the line box adds padding below it.
	r.context.DrawString(it.Text, 0, float64(face.Ascent))
	r.context.Pop()

	if it.Style.TextDecoration == css.DecorationUnderline {
		width, _ := text.MeasureText(it.Text, it.Style.FontSize)
		r.context.DrawRectangle(x, y+float64(face.Ascent+1)*ratio, width, ratio)
		r.context.Fill()
	}
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	if err := r.context.SavePNG(filename); err != nil {
		return core.Errorf(core.ErrInvalidUI, "saving %s: %w", filename, err)
	}
	return nil
}

func (r *Renderer) EncodePNG(w io.Writer) error {
	if err := r.context.EncodePNG(w); err != nil {
		return core.Errorf(core.ErrInvalidUI, "encoding png: %w", err)
	}
	return nil
}

// Extent returns the size needed to show every item.
func Extent(items []paint.DisplayItem) layout.Size {
	var s layout.Size
	for _, item := range items {
		var right, bottom float64
		switch it := item.(type) {
		case paint.RectItem:
			right, bottom = it.Point.X+it.Size.Width, it.Point.Y+it.Size.Height
		case paint.TextItem:
			w, h := text.MeasureText(it.Text, it.Style.FontSize)
			right, bottom = it.Point.X+w, it.Point.Y+h
		}
		s.Width = max(s.Width, right)
		s.Height = max(s.Height, bottom)
	}
	return s
}
