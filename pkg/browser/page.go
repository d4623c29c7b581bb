package browser

import (
	"sync"
	"weak"

	"saba/pkg/css"
	"saba/pkg/html"
	"saba/pkg/layout"
	"saba/pkg/observability"
	"saba/pkg/paint"
	"saba/std/net"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PageState tracks how far the rendering pipeline has run for a page.
type PageState int

const (
	Empty PageState = iota
	FrameBuilt
	LayoutBuilt
	Painted
)

func (s PageState) String() string {
	switch s {
	case Empty:
		return "Empty"
	case FrameBuilt:
		return "FrameBuilt"
	case LayoutBuilt:
		return "LayoutBuilt"
	case Painted:
		return "Painted"
	}
	return "Unknown"
}

// Page renders one document. Each response replaces everything the page
// held before.
type Page struct {
	id            uuid.UUID
	browser       weak.Pointer[Browser]
	viewportWidth float64

	mu    sync.Mutex
	state PageState
	frame *html.Window
	style *css.StyleSheet
	view  *layout.View
	items []paint.DisplayItem
}

func newPage(b *Browser, viewportWidth float64) *Page {
	return &Page{
		id:            uuid.New(),
		browser:       weak.Make(b),
		viewportWidth: viewportWidth,
	}
}

// ID identifies the page in logs.
func (p *Page) ID() uuid.UUID { return p.id }

// Browser returns the owning browser, or nil once it has been collected.
func (p *Page) Browser() *Browser { return p.browser.Value() }

// ReceiveResponse runs the whole pipeline on the response body: DOM and
// style sheet, then the layout view, then the display items.
func (p *Page) ReceiveResponse(resp *net.Response) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var body string
	if resp != nil {
		body = resp.Body
	}
	p.createFrame(body)
	p.setLayoutView()
	p.paintTree()

	observability.GetLogger().Debug("page painted",
		zap.Stringer("page", p.id),
		zap.Int("display_items", len(p.items)))
}

func (p *Page) createFrame(body string) {
	frame := html.NewParser(html.NewTokenizer(body)).ConstructTree()
	sheet := css.NewParser(css.NewTokenizer(frame.Document().StyleContent())).ParseStyleSheet()

	p.frame, p.style = frame, sheet
	p.view, p.items = nil, nil
	p.state = FrameBuilt
}

func (p *Page) setLayoutView() {
	doc := p.frame.Document()
	styles := css.Resolve(doc, p.style)
	p.view = layout.NewLayoutEngine(p.viewportWidth, 0).Layout(doc, styles)
	p.state = LayoutBuilt
}

func (p *Page) paintTree() {
	p.items = paint.Paint(p.view)
	p.state = Painted
}

// Clicked returns the link under p, in content-area coordinates.
func (p *Page) Clicked(pt layout.Point) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.view == nil {
		return "", false
	}
	return p.view.HitTest(pt)
}

// DisplayItems returns a copy of the current display items.
func (p *Page) DisplayItems() []paint.DisplayItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.items == nil {
		return nil
	}
	return append([]paint.DisplayItem(nil), p.items...)
}

// ClearDisplayItems drops the display items. The DOM and layout are kept.
func (p *Page) ClearDisplayItems() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = nil
}

func (p *Page) Frame() *html.Window {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame
}

func (p *Page) StyleSheet() *css.StyleSheet {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.style
}

func (p *Page) LayoutView() *layout.View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

func (p *Page) State() PageState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
