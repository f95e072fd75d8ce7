package domain

import "elyseeWeb/internal/shared/normalization"

// GalleryImage is one tile of the photo gallery.
type GalleryImage struct {
	ID          int    `yaml:"id" json:"id"`
	Category    string `yaml:"category" json:"category"`
	Src         string `yaml:"src" json:"src"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// GalleryFilter is one of the gallery filter buttons.
type GalleryFilter struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

const (
	GalleryAll        = "all"
	GalleryFood       = "food"
	GalleryInterior   = "interior"
	GalleryExperience = "experience"
	GalleryTeam       = "team"
)

var galleryTags = []string{GalleryAll, GalleryFood, GalleryInterior, GalleryExperience, GalleryTeam}

// ParseGalleryFilter normalizes a requested filter, defaulting to all.
func ParseGalleryFilter(raw string) string {
	key := normalization.Key(raw)
	for _, tag := range galleryTags {
		if key == tag {
			return tag
		}
	}
	return GalleryAll
}

// FilterGallery returns the images tagged active, or every image for "all".
// Order is preserved and the input is never modified.
func FilterGallery(images []GalleryImage, active string) []GalleryImage {
	result := make([]GalleryImage, 0, len(images))
	for _, img := range images {
		if active == GalleryAll || img.Category == active {
			result = append(result, img)
		}
	}
	return result
}
