package cli

import (
	"context"

	"saba/pkg/browser"
	"saba/pkg/resource"
	"saba/std/net"
)

// Loaded is a destination fetched and run through the pipeline. It keeps the
// Browser alive, since pages only hold a weak reference to it.
type Loaded struct {
	URL     string
	Browser *browser.Browser
	Page    *browser.Page
}

// Navigator returns a navigator using the configured network settings.
func (a *App) Navigator() *resource.Navigator {
	return resource.NewNavigator(net.NewClient(a.Config.Network.Timeout, a.Config.Network.UserAgent))
}

// NewBrowser returns a browser laying out into the configured viewport.
func (a *App) NewBrowser() *browser.Browser {
	return browser.New(browser.WithViewportWidth(float64(a.Config.Browser.ViewportWidth)))
}

// Open navigates to dest and renders the response into a fresh page.
func (a *App) Open(ctx context.Context, dest string) (*Loaded, error) {
	res, err := a.Navigator().Navigate(ctx, dest)
	if err != nil {
		return nil, err
	}
	b := a.NewBrowser()
	page := b.CurrentPage()
	page.ReceiveResponse(res.Response)
	return &Loaded{URL: res.URL, Browser: b, Page: page}, nil
}
