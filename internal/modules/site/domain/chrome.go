package domain

import "slices"

// ScrollThreshold is the scroll offset past which the header turns solid.
const ScrollThreshold = 100.0

// SectionProbe is added to the scroll offset when deciding which section is in view.
const SectionProbe = 100.0

// HomeSections are the anchors of the single-page home view in document order.
var HomeSections = []string{"home", "about", "experience", "menu", "gallery", "contact"}

// Section is a page anchor's vertical extent in document coordinates.
type Section struct {
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Chrome is the navigation state shared by every page: header style, active
// link, mobile menu and the overlays that navigation closes.
type Chrome struct {
	ScrollY        float64 `json:"scrollY"`
	Scrolled       bool    `json:"scrolled"`
	ActiveLink     string  `json:"activeLink"`
	MobileMenuOpen bool    `json:"mobileMenuOpen"`
	ViewerDish     int     `json:"viewerDish,omitempty"`
	LightboxImage  int     `json:"lightboxImage,omitempty"`
}

// NewChrome is the state on first load of path.
func NewChrome(path string) Chrome {
	r, _ := ResolveRoute(path)
	return Chrome{ActiveLink: r.Path}
}

// Scroll records the offset y. The active link follows the first section
// containing y+SectionProbe; with no match it is left unchanged.
func (c Chrome) Scroll(y float64, sections []Section) Chrome {
	if y < 0 {
		y = 0
	}
	c.ScrollY = y
	c.Scrolled = y > ScrollThreshold
	if id, ok := ActiveSection(y, sections); ok {
		c.ActiveLink = "/#" + id
	}
	return c
}

// KnownSections keeps the sections that are anchors of the home view.
func KnownSections(sections []Section) []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		if slices.Contains(HomeSections, s.ID) {
			out = append(out, s)
		}
	}
	return out
}

// ActiveSection returns the first section whose extent holds y+SectionProbe.
func ActiveSection(y float64, sections []Section) (string, bool) {
	pos := y + SectionProbe
	for _, s := range sections {
		if pos >= s.Top && pos < s.Top+s.Height {
			return s.ID, true
		}
	}
	return "", false
}

func (c Chrome) ToggleMobileMenu() Chrome {
	c.MobileMenuOpen = !c.MobileMenuOpen
	return c
}

// Navigate moves to r: scroll resets to the top and the mobile menu, viewer
// and lightbox all close.
func (c Chrome) Navigate(r Route) Chrome {
	return Chrome{ActiveLink: r.Path}
}

func (c Chrome) OpenViewer(dishID int) Chrome {
	c.ViewerDish = dishID
	return c
}

func (c Chrome) OpenLightbox(imageID int) Chrome {
	c.LightboxImage = imageID
	return c
}
