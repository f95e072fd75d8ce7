package transport

import (
	"github.com/labstack/echo/v4"

	sitedomain "elyseeWeb/internal/modules/site/domain"
)

// Register mounts the pages, the form endpoints, the static assets and the
// JSON API on e, and installs the template renderer.
func (s *Site) Register(e *echo.Echo) {
	e.Renderer = s.renderer
	e.StaticFS("/static", StaticFS())

	for _, route := range sitedomain.NavRoutes {
		e.GET(route.Path, NewPageHandler(s, route))
	}
	for _, alias := range sitedomain.ReservationAliases {
		e.GET(alias, NewPageHandler(s, sitedomain.ReservationRoute))
	}
	contact, _ := sitedomain.ResolveRoute("/contact")
	e.POST("/contact", NewReservationFormHandler(s, contact))
	e.POST(sitedomain.ReservationRoute.Path, NewReservationFormHandler(s, sitedomain.ReservationRoute))

	api := e.Group("/api")
	api.GET("/menu", NewMenuAPIHandler(s.catalog))
	api.GET("/menu/:id", NewDishAPIHandler(s.catalog))
	api.GET("/gallery", NewGalleryAPIHandler(s.catalog))
	api.GET("/timeline", NewTimelineAPIHandler(s.catalog))
	api.GET("/experiences", NewExperiencesAPIHandler(s.catalog))
	api.GET("/hours", NewHoursAPIHandler(s.catalog, s.now))
	api.POST("/reservations", NewReservationAPIHandler(s))
	api.GET("/reservations/whatsapp", NewWhatsAppLinkHandler(s))
	api.POST("/chrome", NewChromeAPIHandler())

	e.GET("/healthz", NewHealthHandler())
	e.GET("/*", NewFallbackHandler(s))
}
