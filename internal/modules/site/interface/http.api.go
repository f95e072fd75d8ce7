package transport

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	content "elyseeWeb/internal/modules/content/domain"
	resdomain "elyseeWeb/internal/modules/reservations/domain"
	sitedomain "elyseeWeb/internal/modules/site/domain"
	"elyseeWeb/internal/shared/httputil"
)

var contentErrors = httputil.NewErrorMapper().
	WithMapping(content.ErrDishNotFound, http.StatusNotFound, "dish not found").
	WithMapping(content.ErrImageNotFound, http.StatusNotFound, "image not found")

var reservationErrors = httputil.NewErrorMapper().
	WithMapping(resdomain.ErrInvalidRequest, http.StatusBadRequest, "invalid reservation request").
	WithMapping(resdomain.ErrRelayDisabled, http.StatusServiceUnavailable, "email reservations are unavailable").
	WithMapping(resdomain.ErrRelayFailed, http.StatusBadGateway, "reservation could not be sent")

// MenuResponse is the body of GET /api/menu.
type MenuResponse struct {
	Category string                 `json:"category"`
	Search   string                 `json:"search,omitempty"`
	Price    content.PriceBand      `json:"price"`
	Count    int                    `json:"count"`
	Dishes   []content.Dish         `json:"dishes"`
	Tabs     []content.MenuCategory `json:"categories"`
}

// NewMenuAPIHandler lists dishes. Without a category every section is returned.
func NewMenuAPIHandler(catalog CatalogSource) echo.HandlerFunc {
	return func(c echo.Context) error {
		cat := catalog.Catalog()
		category := content.MenuAll
		if raw := c.QueryParam("category"); raw != "" {
			category = content.ParseMenuCategory(raw)
		}
		q := content.DishQuery{
			Category: category,
			Search:   c.QueryParam("search"),
			Price:    content.ParsePriceBand(c.QueryParam("price")),
		}
		dishes := content.FilterDishes(cat.Dishes, q)
		return c.JSON(http.StatusOK, MenuResponse{
			Category: q.Category,
			Search:   q.Search,
			Price:    q.Price,
			Count:    len(dishes),
			Dishes:   dishes,
			Tabs:     cat.MenuCategories,
		})
	}
}

func NewDishAPIHandler(catalog CatalogSource) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "dish not found")
		}
		dish, err := catalog.Catalog().Dish(id)
		if err != nil {
			info := contentErrors.Map(err)
			return echo.NewHTTPError(info.Status, info.Message)
		}
		return c.JSON(http.StatusOK, dish)
	}
}

// NewGalleryAPIHandler lists the images for ?filter=, defaulting to all.
func NewGalleryAPIHandler(catalog CatalogSource) echo.HandlerFunc {
	return func(c echo.Context) error {
		cat := catalog.Catalog()
		filter := content.ParseGalleryFilter(c.QueryParam("filter"))
		return c.JSON(http.StatusOK, map[string]any{
			"filter":  filter,
			"filters": cat.GalleryFilters,
			"images":  content.FilterGallery(cat.Gallery, filter),
		})
	}
}

// NewTimelineAPIHandler returns every milestone plus the clamped ?index= selection.
func NewTimelineAPIHandler(catalog CatalogSource) echo.HandlerFunc {
	return func(c echo.Context) error {
		cat := catalog.Catalog()
		requested, _ := strconv.Atoi(c.QueryParam("index"))
		selected, index := cat.Milestone(requested)
		return c.JSON(http.StatusOK, map[string]any{
			"entries":  cat.Timeline,
			"index":    index,
			"selected": selected,
			"progress": content.TimelineProgress(index),
		})
	}
}

func NewExperiencesAPIHandler(catalog CatalogSource) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, catalog.Catalog().Experiences)
	}
}

// HoursResponse is the body of GET /api/hours.
type HoursResponse struct {
	Hours   []content.ServiceHours `json:"hours"`
	OpenNow bool                   `json:"openNow"`
}

func NewHoursAPIHandler(catalog CatalogSource, now func() time.Time) echo.HandlerFunc {
	return func(c echo.Context) error {
		cat := catalog.Catalog()
		return c.JSON(http.StatusOK, HoursResponse{
			Hours:   cat.Hours,
			OpenNow: cat.OpenAt(now().In(resdomain.RestaurantZone)),
		})
	}
}

// ReservationPayload is the body of POST /api/reservations.
type ReservationPayload struct {
	resdomain.Request
	Channel string `json:"channel,omitempty"`
}

type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// NewReservationAPIHandler submits a reservation as JSON: 202 once relayed,
// 200 with the deep link for WhatsApp, 400 on validation and 502 when the
// relay fails.
func NewReservationAPIHandler(site *Site) echo.HandlerFunc {
	return func(c echo.Context) error {
		if site.submit == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "reservations unavailable")
		}
		var payload ReservationPayload
		if err := c.Bind(&payload); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		channel := resdomain.ParseChannel(firstNonEmpty(payload.Channel, c.QueryParam("channel")))

		result, err := site.submit.Execute(c.Request().Context(), payload.Request, channel)
		if err == nil {
			if channel == resdomain.ChannelWhatsApp {
				return c.JSON(http.StatusOK, result)
			}
			return c.JSON(http.StatusAccepted, result)
		}

		info := reservationErrors.Map(err)
		body := map[string]any{"error": info.Message}
		if errors.Is(err, resdomain.ErrInvalidRequest) {
			fields := make([]fieldError, 0, len(result.Errors))
			for _, fe := range result.Errors {
				fields = append(fields, fieldError{Field: fe.Field, Reason: fe.Reason})
			}
			body["fields"] = fields
		}
		if result.WhatsAppURL != "" {
			body["whatsappUrl"] = result.WhatsAppURL
			body["indicator"] = result.Indicator
		}
		return c.JSON(info.Status, body)
	}
}

// NewWhatsAppLinkHandler builds the deep link for the reservation given in the query string.
func NewWhatsAppLinkHandler(site *Site) echo.HandlerFunc {
	return func(c echo.Context) error {
		if site.submit == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "reservations unavailable")
		}
		var req resdomain.Request
		if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
		}
		req = resdomain.Normalize(req)
		return c.JSON(http.StatusOK, map[string]string{
			"url":     site.submit.WhatsAppLink(req),
			"message": req.ComposeMessage(),
		})
	}
}

// ChromeRequest is the scroll and navigation state reported by the page script.
type ChromeRequest struct {
	Path           string               `json:"path"`
	Y              float64              `json:"y"`
	Sections       []sitedomain.Section `json:"sections"`
	MobileMenuOpen bool                 `json:"mobileMenuOpen"`
	ToggleMenu     bool                 `json:"toggleMenu"`
	NavigateTo     string               `json:"navigateTo,omitempty"`
}

// NewChromeAPIHandler derives the header style and active link from a scroll
// position. A navigateTo path resets the chrome for the target route instead.
func NewChromeAPIHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req ChromeRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		chrome := sitedomain.NewChrome(req.Path)
		chrome.MobileMenuOpen = req.MobileMenuOpen
		if req.ToggleMenu {
			chrome = chrome.ToggleMobileMenu()
		}
		chrome = chrome.Scroll(req.Y, sitedomain.KnownSections(req.Sections))
		if req.NavigateTo != "" {
			route, _ := sitedomain.ResolveRoute(req.NavigateTo)
			chrome = chrome.Navigate(route)
		}
		return c.JSON(http.StatusOK, chrome)
	}
}

func NewHealthHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
}
