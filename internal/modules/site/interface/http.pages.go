package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	resdomain "elyseeWeb/internal/modules/reservations/domain"
	sitedomain "elyseeWeb/internal/modules/site/domain"
)

// NewPageHandler renders route's page.
func NewPageHandler(site *Site, route sitedomain.Route) echo.HandlerFunc {
	return func(c echo.Context) error {
		return site.render(c, http.StatusOK, site.page(c, route))
	}
}

// NewFallbackHandler resolves paths the router did not match exactly, such as
// "/Menu/" or "/BOOK", and answers everything else with the 404 page.
func NewFallbackHandler(site *Site) echo.HandlerFunc {
	return func(c echo.Context) error {
		route, ok := sitedomain.ResolveRoute(c.Request().URL.Path)
		status := http.StatusOK
		if !ok {
			status = http.StatusNotFound
		}
		return site.render(c, status, site.page(c, route))
	}
}

// NewReservationFormHandler accepts the HTML reservation form. WhatsApp
// submissions are redirected to the deep link; email submissions re-render
// the page with the outcome indicator.
func NewReservationFormHandler(site *Site, route sitedomain.Route) echo.HandlerFunc {
	return func(c echo.Context) error {
		if site.submit == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "reservations unavailable")
		}
		var req resdomain.Request
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
		}
		channel := resdomain.ParseChannel(firstNonEmpty(c.QueryParam("channel"), c.FormValue("channel")))

		result, err := site.submit.Execute(c.Request().Context(), req, channel)
		if channel == resdomain.ChannelWhatsApp {
			return c.Redirect(http.StatusSeeOther, result.WhatsAppURL)
		}

		data := site.page(c, route)
		data.Form = newFormView(formAction(route), result.Form, site.now())
		data.Form.Reference = result.Reference
		data.Form.WhatsAppURL = result.WhatsAppURL
		if result.Indicator.Visible(site.now()) {
			data.Form.Indicator = result.Indicator.Outcome
		}

		status := http.StatusOK
		switch {
		case err == nil:
		case errors.Is(err, resdomain.ErrInvalidRequest):
			status = http.StatusUnprocessableEntity
			data.Form.Errors = make(map[string]string, len(result.Errors))
			for _, fe := range result.Errors {
				if _, seen := data.Form.Errors[fe.Field]; !seen {
					data.Form.Errors[fe.Field] = fe.Reason
				}
			}
		default:
			status = http.StatusBadGateway
			slog.Warn("reservation form relay failed", slog.String("path", c.Path()), slog.Any("error", err))
		}
		return site.render(c, status, data)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
