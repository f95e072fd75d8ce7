package transport

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	content "elyseeWeb/internal/modules/content/domain"
	"elyseeWeb/internal/modules/reservations/application/usecase"
	resdomain "elyseeWeb/internal/modules/reservations/domain"
	sitedomain "elyseeWeb/internal/modules/site/domain"
	viewer "elyseeWeb/internal/modules/viewer/domain"
)

// CatalogSource returns the catalog currently being served.
type CatalogSource interface {
	Catalog() *content.Catalog
}

// Site renders the public pages and serves the content API.
type Site struct {
	renderer *Renderer
	catalog  CatalogSource
	submit   *usecase.SubmitUseCase
	now      func() time.Time
	started  time.Time
}

type Option func(*Site)

// WithClock replaces time.Now, used for the hero slideshow and the date picker.
func WithClock(now func() time.Time) Option {
	return func(s *Site) { s.now = now }
}

// NewSite parses the embedded templates and binds the content and reservation dependencies.
func NewSite(catalog CatalogSource, submit *usecase.SubmitUseCase, opts ...Option) (*Site, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	s := &Site{renderer: renderer, catalog: catalog, submit: submit, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.started = s.now()
	return s, nil
}

func (s *Site) Renderer() *Renderer { return s.renderer }

// page assembles the view model for route from the request's query string.
func (s *Site) page(c echo.Context, route sitedomain.Route) PageData {
	catalog := s.catalog.Catalog()
	query := c.QueryParams()
	now := s.now()

	chrome := sitedomain.NewChrome(route.Path)
	if query.Get("nav") == "open" {
		chrome = chrome.ToggleMobileMenu()
	}

	data := PageData{
		Route:       route,
		Title:       route.Title,
		Chrome:      chrome,
		HeroImages:  catalog.HeroImages,
		HeroIndex:   content.HeroIndexAt(now.Sub(s.started), content.HeroInterval, len(catalog.HeroImages)),
		Menu:        menuView(catalog, query),
		Gallery:     galleryView(catalog, query),
		Timeline:    timelineView(catalog, query),
		Experiences: catalog.Experiences,
		Hours:       hoursView(catalog, now),
		Form:        newFormView(formAction(route), resdomain.NewRequest(), now),
	}
	if chrome.MobileMenuOpen {
		data.MenuToggle = "?"
	} else {
		data.MenuToggle = "?nav=open"
	}

	if raw := query.Get("dish"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			if dish, err := catalog.Dish(id); err == nil && dish.VREnabled {
				state := viewer.NewState()
				if query.Get("nutrition") == "1" {
					state = state.ToggleNutrition()
				}
				if query.Get("pairing") == "1" {
					state = state.TogglePairing()
				}
				data.Menu.Viewer = viewerView(dish, data.Menu, state)
				data.Chrome = data.Chrome.OpenViewer(dish.ID)
			}
		}
	}
	if raw := query.Get("image"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			if img, err := catalog.Image(id); err == nil {
				data.Gallery.Lightbox = &img
				data.Chrome = data.Chrome.OpenLightbox(img.ID)
			}
		}
	}

	if s.submit != nil {
		data.EnquiryLink = s.submit.EnquiryLink()
		data.HeroLink = s.submit.MessageLink(catalog.WhatsAppMessage)
	}
	data.Nav = navLinks(data.Chrome)
	return data
}

func (s *Site) render(c echo.Context, status int, data PageData) error {
	name := string(data.Route.Page)
	if !s.renderer.Has(name) {
		slog.Error("page template missing", slog.String("page", name))
		return echo.NewHTTPError(http.StatusInternalServerError, "page unavailable")
	}
	return c.Render(status, name, data)
}

func formAction(route sitedomain.Route) string {
	if route.Page == sitedomain.PageReservation {
		return sitedomain.ReservationRoute.Path
	}
	return "/contact"
}
