// Package shell is the fyne window around a browser: an address bar, the
// rendered page and a status line.
package shell

import (
	"context"
	"fmt"
	"image"
	"sync"

	"saba/pkg/browser"
	"saba/pkg/config"
	"saba/pkg/core"
	"saba/pkg/layout"
	"saba/pkg/observability"
	"saba/pkg/render"
	"saba/pkg/resource"
	"saba/std/net"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

// Shell owns one browser and the window showing its current page.
type Shell struct {
	window  fyne.Window
	address *widget.Entry
	status  *widget.Label
	view    *pageView

	width, height int
	browser       *browser.Browser
	nav           *resource.Navigator

	// navMu keeps navigations one at a time.
	navMu sync.Mutex

	mu  sync.Mutex
	url string
}

// New builds the window on app. Nothing is shown until Run.
func New(app fyne.App, cfg *config.Config) *Shell {
	s := &Shell{
		width:   cfg.Browser.ViewportWidth,
		height:  cfg.Browser.ViewportHeight,
		browser: browser.New(browser.WithViewportWidth(float64(cfg.Browser.ViewportWidth))),
		nav:     resource.NewNavigator(net.NewClient(cfg.Network.Timeout, cfg.Network.UserAgent)),
	}

	s.window = app.NewWindow("saba")
	s.status = widget.NewLabel("Enter a URL and press Enter")
	s.address = widget.NewEntry()
	s.address.SetPlaceHolder(cfg.Browser.HomeURL)
	s.address.OnSubmitted = func(dest string) { s.Navigate(dest) }
	s.view = newPageView(s.width, s.height, s.clicked)

	s.window.SetContent(container.NewBorder(s.address, s.status, nil, nil, s.view))
	s.window.Resize(fyne.NewSize(float32(s.width), float32(s.height)+80))
	s.window.Canvas().Focus(s.address)
	return s
}

// Run shows the window and blocks until it is closed.
func (s *Shell) Run() {
	s.window.ShowAndRun()
}

// URL returns the address of the page on screen.
func (s *Shell) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// Navigate loads dest in the background. Must be called on the main thread.
func (s *Shell) Navigate(dest string) {
	s.address.SetText(dest)
	s.status.SetText("Loading " + dest + "...")
	go func() {
		if err := s.load(context.Background(), dest); err != nil {
			observability.GetLogger().Warn("navigation failed", zap.String("url", dest), zap.Error(err))
			fyne.Do(func() { s.status.SetText("Error: " + err.Error()) })
		}
	}()
}

// load fetches dest and replaces the current page. On failure the page
// keeps what it showed before.
func (s *Shell) load(ctx context.Context, dest string) error {
	s.navMu.Lock()
	defer s.navMu.Unlock()

	res, err := s.nav.Navigate(ctx, dest)
	if err != nil {
		return err
	}
	page := s.browser.CurrentPage()
	if page == nil {
		return core.Errorf(core.ErrInvalidUI, "no page to show %s", dest)
	}
	page.ClearDisplayItems()
	page.ReceiveResponse(res.Response)

	img, err := s.draw(page)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.url = res.URL
	s.mu.Unlock()
	fyne.Do(func() {
		s.view.setImage(img)
		s.address.SetText(res.URL)
		s.status.SetText(fmt.Sprintf("%s (%d)", res.URL, res.Response.StatusCode))
		s.window.SetTitle("saba - " + res.URL)
	})
	return nil
}

func (s *Shell) draw(page *browser.Page) (image.Image, error) {
	if s.width <= 0 || s.height <= 0 {
		return nil, core.Errorf(core.ErrInvalidUI, "invalid viewport %dx%d", s.width, s.height)
	}
	r := render.NewRenderer(s.width, s.height)
	r.Render(page.DisplayItems())
	return r.Image(), nil
}

// clicked follows the link under p, if any.
func (s *Shell) clicked(p layout.Point) {
	page := s.browser.CurrentPage()
	if page == nil {
		return
	}
	link, ok := page.Clicked(p)
	if !ok {
		return
	}
	s.Navigate(s.nav.Resolve(s.URL(), link))
}
