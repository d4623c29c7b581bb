package shell

import (
	"image"

	"saba/pkg/layout"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// pageView shows the rendered content area and reports taps in content
// coordinates.
type pageView struct {
	widget.BaseWidget
	image *canvas.Image
	onTap func(layout.Point)
}

func newPageView(width, height int, onTap func(layout.Point)) *pageView {
	img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
	img.FillMode = canvas.ImageFillOriginal
	img.ScaleMode = canvas.ImageScalePixels
	v := &pageView{image: img, onTap: onTap}
	v.ExtendBaseWidget(v)
	return v
}

func (v *pageView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.image)
}

func (v *pageView) Tapped(ev *fyne.PointEvent) {
	if v.onTap != nil {
		v.onTap(layout.Point{X: float64(ev.Position.X), Y: float64(ev.Position.Y)})
	}
}

// setImage must run on the fyne main thread.
func (v *pageView) setImage(img image.Image) {
	v.image.Image = img
	v.image.Refresh()
}
