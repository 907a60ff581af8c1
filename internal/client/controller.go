package client

import (
	"context"
	"fmt"
	"sync"

	"marianails/internal/domain/gallery"

	"github.com/rs/zerolog/log"
)

// PlaceholderURL is shown in place of an image that fails to load.
const PlaceholderURL = "img/placeholder.jpg"

// Phase of the request/render cycle.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseLoading  Phase = "loading"
	PhaseRendered Phase = "rendered"
	PhaseErrored  Phase = "errored"
)

// Fetcher retrieves one gallery page.
type Fetcher interface {
	FetchPage(ctx context.Context, page, perPage int) (*PageData, error)
}

// Renderer displays controller output.
type Renderer interface {
	ShowLoader()
	HideLoader()
	Render(View)
}

// Item is one rendered gallery tile.
type Item struct {
	URL      string
	Label    string
	Fallback string
}

// Pagination is the state of the navigation controls.
type Pagination struct {
	Indicator    string
	PrevDisabled bool
	NextDisabled bool
}

// View is the outcome of one load: Rendered or Errored.
type View struct {
	Phase      Phase
	Items      []Item
	Empty      bool
	Message    string
	Pagination *Pagination // nil when the load failed; controls keep their last state
	Err        error
	Retry      bool
}

// Controller holds the client session state. Overlapping loads are not
// sequenced: whichever response arrives last is rendered last.
type Controller struct {
	fetcher  Fetcher
	renderer Renderer
	perPage  int

	mu          sync.Mutex
	currentPage int
	phase       Phase
	last        View
}

func NewController(f Fetcher, r Renderer, perPage int) *Controller {
	if perPage <= 0 {
		perPage = 30
	}
	return &Controller{
		fetcher:     f,
		renderer:    r,
		perPage:     perPage,
		currentPage: 1,
		phase:       PhaseIdle,
	}
}

func (c *Controller) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPage
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// LastView returns the most recently rendered view.
func (c *Controller) LastView() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Load fetches and renders page. The loader is hidden and the controller
// returns to idle on every exit path.
func (c *Controller) Load(ctx context.Context, page int) View {
	c.setPhase(PhaseLoading)
	c.renderer.ShowLoader()
	defer func() {
		c.renderer.HideLoader()
		c.setPhase(PhaseIdle)
	}()

	data, err := c.fetcher.FetchPage(ctx, page, c.perPage)
	var view View
	if err != nil {
		log.Error().Err(err).Int("page", page).Msg("failed to load gallery")
		view = ErrorView(err)
	} else {
		view = BuildView(data)
	}

	c.mu.Lock()
	c.phase = view.Phase
	c.last = view
	c.mu.Unlock()

	c.renderer.Render(view)
	return view
}

// Start loads the current page.
func (c *Controller) Start(ctx context.Context) View {
	return c.Load(ctx, c.CurrentPage())
}

// Prev moves back one page; on page 1 it does nothing and reports false.
func (c *Controller) Prev(ctx context.Context) (View, bool) {
	c.mu.Lock()
	if c.currentPage <= 1 {
		c.mu.Unlock()
		return View{}, false
	}
	c.currentPage--
	page := c.currentPage
	c.mu.Unlock()

	return c.Load(ctx, page), true
}

// Next always moves forward, even past the last page.
func (c *Controller) Next(ctx context.Context) View {
	c.mu.Lock()
	c.currentPage++
	page := c.currentPage
	c.mu.Unlock()

	return c.Load(ctx, page)
}

// Reload starts the session over from page 1, like a full page reload.
func (c *Controller) Reload(ctx context.Context) View {
	c.mu.Lock()
	c.currentPage = 1
	c.mu.Unlock()

	return c.Load(ctx, 1)
}

func (c *Controller) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}

// BuildView renders a successful page.
func BuildView(data *PageData) View {
	view := View{Phase: PhaseRendered, Pagination: PaginationFor(data)}
	if len(data.Images) == 0 {
		view.Empty = true
		view.Message = "No images found. Please check the gallery folder."
		return view
	}

	view.Items = make([]Item, len(data.Images))
	for i, img := range data.Images {
		view.Items[i] = Item{URL: img, Label: gallery.Label(img), Fallback: PlaceholderURL}
	}
	return view
}

// ErrorView renders a failed load with a retry affordance.
func ErrorView(err error) View {
	return View{
		Phase:   PhaseErrored,
		Err:     err,
		Message: fmt.Sprintf("Images could not be loaded: %v", err),
		Retry:   true,
	}
}

// PaginationFor derives control state: previous is disabled on page 1, next on the last page.
func PaginationFor(data *PageData) *Pagination {
	return &Pagination{
		Indicator:    fmt.Sprintf("Page %d of %d", data.CurrentPage, data.TotalPages),
		PrevDisabled: data.CurrentPage == 1,
		NextDisabled: data.CurrentPage == data.TotalPages,
	}
}
