package transport

import (
	"html/template"
	"net/url"
	"strconv"
	"time"

	content "elyseeWeb/internal/modules/content/domain"
	resdomain "elyseeWeb/internal/modules/reservations/domain"
	sitedomain "elyseeWeb/internal/modules/site/domain"
	viewer "elyseeWeb/internal/modules/viewer/domain"
)

// Link is an anchor rendered in a tab strip, filter bar or navigation bar.
type Link struct {
	Href   string
	Label  string
	Icon   string
	Active bool
}

// SelectOption is one entry of a select input.
type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

// ViewerView is the VR viewer overlay opened from the menu.
type ViewerView struct {
	Dish      content.Dish
	State     viewer.State
	Transform template.CSS
	Layers    []SelectOption
	Modes     []SelectOption
	CloseHref string
}

// MenuView holds the menu browser selections and the matching dishes.
type MenuView struct {
	Category   string
	Search     string
	Price      content.PriceBand
	Tabs       []Link
	PriceBands []SelectOption
	Dishes     []content.Dish
	Viewer     *ViewerView
}

// GalleryView holds the active gallery filter and the lightbox.
type GalleryView struct {
	Filter   string
	Filters  []Link
	Images   []content.GalleryImage
	Lightbox *content.GalleryImage
	Close    string
}

// TimelineView is the about page's milestone browser.
type TimelineView struct {
	Entries  []Link
	Selected content.TimelineEntry
	Index    int
	Progress int
}

// FormView is the reservation form as rendered, with per-field errors.
type FormView struct {
	Action        string
	Request       resdomain.Request
	Errors        map[string]string
	Indicator     resdomain.Outcome
	Reference     string
	WhatsAppURL   string
	MinDate       string
	GuestOptions  []SelectOption
	OccasionLabel string
	Occasions     []SelectOption
}

// PageData is the view model every page template receives.
type PageData struct {
	Route      sitedomain.Route
	Title      string
	Nav        []Link
	Chrome     sitedomain.Chrome
	MenuToggle string

	HeroImages []string
	HeroIndex  int
	HeroLink   string

	Menu        MenuView
	Gallery     GalleryView
	Timeline    TimelineView
	Experiences []content.Experience
	Hours       HoursView
	Form        FormView

	EnquiryLink string
}

// HoursView feeds the contact card.
type HoursView struct {
	Lines   []HoursLine
	OpenNow bool
}

type HoursLine struct {
	Label   string
	Summary string
}

func hoursView(catalog *content.Catalog, now time.Time) HoursView {
	view := HoursView{OpenNow: catalog.OpenAt(now.In(resdomain.RestaurantZone))}
	for _, h := range catalog.Hours {
		view.Lines = append(view.Lines, HoursLine{Label: h.Label, Summary: h.Summary()})
	}
	return view
}

func navLinks(chrome sitedomain.Chrome) []Link {
	links := make([]Link, 0, len(sitedomain.NavRoutes))
	for _, r := range sitedomain.NavRoutes {
		active := chrome.ActiveLink == r.Path || chrome.ActiveLink == "/#"+string(r.Page)
		links = append(links, Link{Href: r.Path, Label: r.Label, Icon: r.Icon, Active: active})
	}
	return links
}

func menuView(catalog *content.Catalog, query url.Values) MenuView {
	view := MenuView{
		Category: content.ParseMenuCategory(query.Get("category")),
		Search:   query.Get("search"),
		Price:    content.ParsePriceBand(query.Get("price")),
	}
	for _, cat := range catalog.MenuCategories {
		view.Tabs = append(view.Tabs, Link{
			Href:   menuHref(cat.ID, view.Search, view.Price),
			Label:  cat.Name,
			Icon:   cat.Icon,
			Active: cat.ID == view.Category,
		})
	}
	for _, band := range content.PriceBands {
		view.PriceBands = append(view.PriceBands, SelectOption{Value: string(band), Label: band.Label(), Selected: band == view.Price})
	}
	view.Dishes = content.FilterDishes(catalog.Dishes, content.DishQuery{Category: view.Category, Search: view.Search, Price: view.Price})
	return view
}

func menuHref(category, search string, price content.PriceBand) string {
	q := url.Values{}
	q.Set("category", category)
	if search != "" {
		q.Set("search", search)
	}
	if price != content.PriceAll {
		q.Set("price", string(price))
	}
	return "?" + q.Encode() + "#menu"
}

func viewerView(dish content.Dish, menu MenuView, state viewer.State) *ViewerView {
	view := &ViewerView{
		Dish:      dish,
		State:     state,
		Transform: template.CSS(state.Transform()),
		CloseHref: menuHref(menu.Category, menu.Search, menu.Price),
	}
	for _, layer := range viewer.Layers {
		view.Layers = append(view.Layers, SelectOption{Value: string(layer), Label: layer.Label(), Selected: layer == state.Layer})
	}
	for _, mode := range []viewer.Mode{viewer.Mode360, viewer.ModeAR, viewer.ModeXRay} {
		view.Modes = append(view.Modes, SelectOption{Value: string(mode), Label: modeLabel(mode), Selected: mode == state.Mode})
	}
	return view
}

func modeLabel(m viewer.Mode) string {
	switch m {
	case viewer.ModeAR:
		return "AR View"
	case viewer.ModeXRay:
		return "Cross-Section"
	default:
		return "360° View"
	}
}

func galleryView(catalog *content.Catalog, query url.Values) GalleryView {
	view := GalleryView{Filter: content.ParseGalleryFilter(query.Get("filter"))}
	for _, f := range catalog.GalleryFilters {
		view.Filters = append(view.Filters, Link{
			Href:   "?filter=" + url.QueryEscape(f.ID) + "#gallery",
			Label:  f.Label,
			Active: f.ID == view.Filter,
		})
	}
	view.Images = content.FilterGallery(catalog.Gallery, view.Filter)
	view.Close = "?filter=" + url.QueryEscape(view.Filter) + "#gallery"
	return view
}

func timelineView(catalog *content.Catalog, query url.Values) TimelineView {
	requested, _ := strconv.Atoi(query.Get("milestone"))
	selected, index := catalog.Milestone(requested)
	view := TimelineView{Selected: selected, Index: index, Progress: content.TimelineProgress(index)}
	for i, entry := range catalog.Timeline {
		view.Entries = append(view.Entries, Link{
			Href:   "?milestone=" + strconv.Itoa(i) + "#about",
			Label:  entry.Year,
			Active: i == index,
		})
	}
	return view
}

func newFormView(action string, req resdomain.Request, now time.Time) FormView {
	view := FormView{
		Action:        action,
		Request:       req,
		MinDate:       resdomain.Today(now),
		OccasionLabel: resdomain.OccasionNone.Label(),
	}
	for n := resdomain.MinGuests; n <= resdomain.MaxGuests; n++ {
		label := strconv.Itoa(n) + " Guests"
		if n == 1 {
			label = "1 Guest"
		}
		view.GuestOptions = append(view.GuestOptions, SelectOption{Value: strconv.Itoa(n), Label: label, Selected: n == req.Guests})
	}
	for _, o := range resdomain.Occasions {
		view.Occasions = append(view.Occasions, SelectOption{Value: string(o), Label: o.Label(), Selected: o == req.Occasion})
	}
	return view
}
