package domain

import (
	"strings"

	"elyseeWeb/internal/shared/normalization"
)

// Hotspot marks a point of interest on a dish image; X and Y are percentages of the frame.
type Hotspot struct {
	X           float64 `yaml:"x" json:"x"`
	Y           float64 `yaml:"y" json:"y"`
	Title       string  `yaml:"title" json:"title"`
	Description string  `yaml:"description" json:"description"`
}

// Dish is a menu item as presented on the site and in the VR viewer.
type Dish struct {
	ID          int       `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description" json:"description"`
	Price       string    `yaml:"price" json:"price"`
	PriceAmount int       `yaml:"priceAmount" json:"priceAmount"`
	PrepTime    string    `yaml:"prepTime" json:"prepTime"`
	Calories    string    `yaml:"calories" json:"calories"`
	Category    string    `yaml:"category" json:"category"`
	MenuSection string    `yaml:"menuSection" json:"menuSection"`
	Ingredients []string  `yaml:"ingredients" json:"ingredients"`
	Hotspots    []Hotspot `yaml:"hotspots,omitempty" json:"hotspots,omitempty"`
	Featured    bool      `yaml:"featured" json:"featured"`
	VREnabled   bool      `yaml:"vrEnabled" json:"vrEnabled"`
	Image       string    `yaml:"image" json:"image"`
	Pairing     string    `yaml:"pairing,omitempty" json:"pairing,omitempty"`
}

// MenuCategory is one tab of the menu browser.
type MenuCategory struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
	Icon string `yaml:"icon" json:"icon"`
}

const (
	MenuSignature = "signature"
	MenuTasting   = "tasting"
	MenuStarters  = "starters"
	MenuMains     = "mains"
	MenuDesserts  = "desserts"
	MenuPairing   = "pairing"
	// MenuAll is accepted by the JSON API to skip the category filter.
	MenuAll = "all"
)

var menuSections = []string{MenuSignature, MenuTasting, MenuStarters, MenuMains, MenuDesserts, MenuPairing, MenuAll}

// ParseMenuCategory normalizes a requested tab, defaulting to the signature tab.
func ParseMenuCategory(raw string) string {
	key := normalization.Key(raw)
	for _, section := range menuSections {
		if key == section {
			return section
		}
	}
	return MenuSignature
}

// PriceBand narrows dishes by AED price. Lower bounds are inclusive, upper bounds exclusive.
type PriceBand string

const (
	PriceAll       PriceBand = "all"
	PriceUnder500  PriceBand = "0-500"
	Price500To1000 PriceBand = "500-1000"
	PriceOver1000  PriceBand = "1000+"
)

// PriceBands lists the select options in display order.
var PriceBands = []PriceBand{PriceAll, PriceUnder500, Price500To1000, PriceOver1000}

// ParsePriceBand maps user input onto a known band, defaulting to all prices.
func ParsePriceBand(raw string) PriceBand {
	key := PriceBand(normalization.Key(raw))
	for _, band := range PriceBands {
		if key == band {
			return band
		}
	}
	return PriceAll
}

// Label is the human readable select option.
func (b PriceBand) Label() string {
	switch b {
	case PriceUnder500:
		return "Under AED 500"
	case Price500To1000:
		return "AED 500 - 1000"
	case PriceOver1000:
		return "Over AED 1000"
	default:
		return "All Prices"
	}
}

// Contains reports whether amount falls inside the band.
func (b PriceBand) Contains(amount int) bool {
	switch b {
	case PriceUnder500:
		return amount < 500
	case Price500To1000:
		return amount >= 500 && amount < 1000
	case PriceOver1000:
		return amount >= 1000
	default:
		return true
	}
}

// DishQuery holds the menu browser selections.
type DishQuery struct {
	Category string
	Search   string
	Price    PriceBand
}

// FilterDishes keeps dishes in the active menu section that match the search text
// and price band. Order is preserved. Search ignores case and accents and looks at
// the name, the description and the ingredient list.
func FilterDishes(dishes []Dish, q DishQuery) []Dish {
	category := normalization.Key(q.Category)
	search := strings.TrimSpace(q.Search)
	result := make([]Dish, 0, len(dishes))
	for _, dish := range dishes {
		if category != "" && category != MenuAll && normalization.Key(dish.MenuSection) != category {
			continue
		}
		if !q.Price.Contains(dish.PriceAmount) {
			continue
		}
		if search != "" {
			fields := append([]string{dish.Name, dish.Description}, dish.Ingredients...)
			if !normalization.ContainsFolded(search, fields...) {
				continue
			}
		}
		result = append(result, dish)
	}
	return result
}
