// Package browser ties the rendering pipeline together: a Browser owns pages
// and each Page turns a response into display items.
package browser

import (
	"sync"

	"saba/pkg/core"
)

// DefaultViewportWidth is the content-area width used when none is configured.
const DefaultViewportWidth = 590

// Option configures a Browser.
type Option func(*Browser)

// WithViewportWidth sets the width new pages lay out into.
func WithViewportWidth(width float64) Option {
	return func(b *Browser) {
		if width > 0 {
			b.viewportWidth = width
		}
	}
}

// Browser owns a list of pages and tracks the current one.
type Browser struct {
	mu            sync.Mutex
	pages         []*Page
	current       int
	viewportWidth float64
}

// New creates a browser with one empty page, which is current.
func New(opts ...Option) *Browser {
	b := &Browser{viewportWidth: DefaultViewportWidth}
	for _, opt := range opts {
		opt(b)
	}
	b.NewPage()
	return b
}

// NewPage appends an empty page. The current page does not change.
func (b *Browser) NewPage() *Page {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := newPage(b, b.viewportWidth)
	b.pages = append(b.pages, p)
	return p
}

// ClosePage removes page i. When the current page is removed the previous
// one becomes current.
func (b *Browser) ClosePage(i int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i >= len(b.pages) {
		return core.Errorf(core.ErrInvalidUI, "no page %d", i)
	}
	b.pages = append(b.pages[:i], b.pages[i+1:]...)
	if b.current >= i && b.current > 0 {
		b.current--
	}
	return nil
}

// CurrentPage returns the current page, or nil when every page is closed.
func (b *Browser) CurrentPage() *Page {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pages) == 0 {
		return nil
	}
	return b.pages[b.current]
}

// SetCurrent makes page i current.
func (b *Browser) SetCurrent(i int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i >= len(b.pages) {
		return core.Errorf(core.ErrInvalidUI, "no page %d", i)
	}
	b.current = i
	return nil
}

// Pages returns the open pages in order.
func (b *Browser) Pages() []*Page {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Page(nil), b.pages...)
}
