package domain

import "strings"

// Page names one of the rendered pages.
type Page string

const (
	PageHome        Page = "home"
	PageAbout       Page = "about"
	PageMenu        Page = "menu"
	PageGallery     Page = "gallery"
	PageExperience  Page = "experience"
	PageContact     Page = "contact"
	PageReservation Page = "reservation"
	PageNotFound    Page = "not-found"
)

// Route is a navigable path and how it is presented in the navigation bar.
type Route struct {
	Page  Page
	Path  string
	Label string
	Icon  string
	Title string
}

// NavRoutes are the navigation bar entries in display order.
var NavRoutes = []Route{
	{Page: PageHome, Path: "/", Label: "Home", Icon: "🏠", Title: "Élysée Fine Dining"},
	{Page: PageAbout, Path: "/about", Label: "About", Icon: "✨", Title: "Our Story"},
	{Page: PageMenu, Path: "/menu", Label: "Menu", Icon: "🍽️", Title: "Culinary Masterpieces"},
	{Page: PageGallery, Path: "/gallery", Label: "Gallery", Icon: "🖼️", Title: "Visual Journey"},
	{Page: PageExperience, Path: "/experience", Label: "Experience", Icon: "⭐", Title: "Dining Experiences"},
	{Page: PageContact, Path: "/contact", Label: "Contact", Icon: "📞", Title: "Reserve Your Table"},
}

// ReservationRoute renders the reservation form on its own.
var ReservationRoute = Route{Page: PageReservation, Path: "/reservation", Label: "Reserve", Icon: "📅", Title: "Reserve Your Table"}

// NotFoundRoute is served for every unknown path.
var NotFoundRoute = Route{Page: PageNotFound, Title: "Page Not Found"}

// ReservationAliases all resolve to the reservation page.
var ReservationAliases = []string{"/reservation", "/reservations", "/reserve", "/book"}

// ResolveRoute maps a request path to its route, ignoring case and a trailing
// slash. Unknown paths resolve to NotFoundRoute and false.
func ResolveRoute(path string) (Route, bool) {
	clean := strings.ToLower(strings.TrimSpace(path))
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	if len(clean) > 1 {
		clean = strings.TrimRight(clean, "/")
	}
	if clean == "" {
		clean = "/"
	}
	for _, r := range NavRoutes {
		if r.Path == clean {
			return r, true
		}
	}
	for _, alias := range ReservationAliases {
		if alias == clean {
			return ReservationRoute, true
		}
	}
	return NotFoundRoute, false
}
