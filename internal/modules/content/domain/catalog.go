package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrDishNotFound  = errors.New("dish not found")
	ErrImageNotFound = errors.New("gallery image not found")
	ErrEmptyCatalog  = errors.New("catalog has no dishes")
)

// Catalog is the complete set of site content. Values are treated as read-only
// once published; reloads replace the whole catalog.
type Catalog struct {
	HeroImages      []string        `yaml:"heroImages" json:"heroImages"`
	MenuCategories  []MenuCategory  `yaml:"menuCategories" json:"menuCategories"`
	Dishes          []Dish          `yaml:"dishes" json:"dishes"`
	GalleryFilters  []GalleryFilter `yaml:"galleryFilters" json:"galleryFilters"`
	Gallery         []GalleryImage  `yaml:"gallery" json:"gallery"`
	Timeline        []TimelineEntry `yaml:"timeline" json:"timeline"`
	Experiences     []Experience    `yaml:"experiences" json:"experiences"`
	Hours           []ServiceHours  `yaml:"hours" json:"hours"`
	WhatsAppMessage string          `yaml:"whatsappMessage" json:"whatsappMessage"`
}

// Dish looks a dish up by its literal id.
func (c *Catalog) Dish(id int) (Dish, error) {
	for _, dish := range c.Dishes {
		if dish.ID == id {
			return dish, nil
		}
	}
	return Dish{}, fmt.Errorf("%w: %d", ErrDishNotFound, id)
}

// Image looks a gallery image up by its literal id.
func (c *Catalog) Image(id int) (GalleryImage, error) {
	for _, img := range c.Gallery {
		if img.ID == id {
			return img, nil
		}
	}
	return GalleryImage{}, fmt.Errorf("%w: %d", ErrImageNotFound, id)
}

// Milestone returns the clamped timeline entry and its index.
func (c *Catalog) Milestone(index int) (TimelineEntry, int) {
	if len(c.Timeline) == 0 {
		return TimelineEntry{}, 0
	}
	i := ClampTimelineIndex(index, len(c.Timeline))
	return c.Timeline[i], i
}

// OpenAt reports whether any service window covers t. Callers pass t in the
// restaurant's local time.
func (c *Catalog) OpenAt(t time.Time) bool {
	for _, h := range c.Hours {
		if h.OpenAt(t) {
			return true
		}
	}
	return false
}

// Validate checks the invariants the pages rely on: unique ids, known gallery
// tags and hotspots inside the frame.
func (c *Catalog) Validate() error {
	if len(c.Dishes) == 0 {
		return ErrEmptyCatalog
	}
	var errs []error
	seenDish := make(map[int]struct{}, len(c.Dishes))
	for _, dish := range c.Dishes {
		if _, dup := seenDish[dish.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate dish id %d", dish.ID))
		}
		seenDish[dish.ID] = struct{}{}
		for _, spot := range dish.Hotspots {
			if spot.X < 0 || spot.X > 100 || spot.Y < 0 || spot.Y > 100 {
				errs = append(errs, fmt.Errorf("dish %d hotspot %q outside frame", dish.ID, spot.Title))
			}
		}
	}
	seenImage := make(map[int]struct{}, len(c.Gallery))
	for _, img := range c.Gallery {
		if _, dup := seenImage[img.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate gallery id %d", img.ID))
		}
		seenImage[img.ID] = struct{}{}
		if ParseGalleryFilter(img.Category) != img.Category || img.Category == GalleryAll {
			errs = append(errs, fmt.Errorf("gallery image %d has unknown category %q", img.ID, img.Category))
		}
	}
	for _, h := range c.Hours {
		if err := h.validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
