package listing

import (
	"strings"

	"github.com/gosimple/slug"
)

// CategoryAll is the filter value that matches every category.
const CategoryAll = "all"

const defaultImageBase = "/assets/materials/"

// Category is an entry of the reference category list.
type Category struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	DefaultImage string `json:"default_image,omitempty"`
}

var categories = []Category{
	{ID: CategoryAll, Label: "Hamısı"},
	{ID: "concrete", Label: "Beton & Kərpic", DefaultImage: defaultImageBase + "concrete-blocks.jpg"},
	{ID: "metal", Label: "Metal & Polad", DefaultImage: defaultImageBase + "steel-rebar.jpg"},
	{ID: "wood", Label: "Ağac & Taxta", DefaultImage: defaultImageBase + "lumber.jpg"},
	{ID: "cement", Label: "Sement", DefaultImage: defaultImageBase + "cement-bags.jpg"},
	{ID: "pipes", Label: "Borular", DefaultImage: defaultImageBase + "pvc-pipes.jpg"},
	{ID: "tiles", Label: "Kafel & Plitələr", DefaultImage: defaultImageBase + "ceramic-tiles.jpg"},
	{ID: "glass", Label: "Şüşə", DefaultImage: defaultImageBase + "glass-panels.jpg"},
	{ID: "electrical", Label: "Elektrik", DefaultImage: defaultImageBase + "electrical-cables.jpg"},
}

var locations = []string{
	"Bakı",
	"Gəncə",
	"Sumqayıt",
	"Ağdam",
	"Şəki",
	"Lənkəran",
	"Mingəçevir",
	"Şirvan",
	"Naxçıvan",
	"Quba",
}

// Categories returns the reference category list, "all" first.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Locations returns the supported locations.
func Locations() []string {
	out := make([]string, len(locations))
	copy(out, locations)
	return out
}

// IsKnownLocation reports whether loc is one of the supported locations.
func IsKnownLocation(loc string) bool {
	for _, l := range locations {
		if l == loc {
			return true
		}
	}
	return false
}

func findCategory(id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// NormalizeCategory maps a category id or label onto a known id. Unknown
// values are kept as a slug, which is how the set is extended.
func NormalizeCategory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if c, ok := findCategory(strings.ToLower(trimmed)); ok {
		return c.ID
	}
	for _, c := range categories {
		if strings.EqualFold(c.Label, trimmed) {
			return c.ID
		}
	}
	return slug.Make(trimmed)
}

// DefaultImageFor returns the stock image of a category, falling back to
// the concrete one for extension categories.
func DefaultImageFor(category string) string {
	if c, ok := findCategory(category); ok && c.DefaultImage != "" {
		return c.DefaultImage
	}
	return categories[1].DefaultImage
}
