package themes

import (
	"regexp"
	"sort"
)

// Theme is a coarse day-theme category used to bias curation.
type Theme string

const (
	THEME_SHOPPING  Theme = "shopping"
	THEME_SIGHTS    Theme = "sights"
	THEME_MUSEUMS   Theme = "museums"
	THEME_FOOD      Theme = "food"
	THEME_NIGHTLIFE Theme = "nightlife"
	THEME_NATURE    Theme = "nature"
	THEME_MIXED     Theme = "mixed"
)

// primaryPriority is the fixed order used when a place maps to several themes.
var primaryPriority = []Theme{
	THEME_MUSEUMS,
	THEME_NIGHTLIFE,
	THEME_NATURE,
	THEME_SHOPPING,
	THEME_FOOD,
	THEME_SIGHTS,
}

var museumTypes = map[string]bool{
	"museum":      true,
	"art_gallery": true,
}

var nightlifeTypes = map[string]bool{
	"night_club": true,
	"bar":        true,
	"casino":     true,
}

var natureTypes = map[string]bool{
	"park":             true,
	"national_park":    true,
	"campground":       true,
	"natural_feature":  true,
	"zoo":              true,
	"botanical_garden": true,
	"beach":            true,
	"hiking_area":      true,
}

var foodTypes = map[string]bool{
	"restaurant":    true,
	"cafe":          true,
	"bakery":        true,
	"food":          true,
	"meal_takeaway": true,
	"food_court":    true,
}

var shoppingTypes = map[string]bool{
	"shopping_mall":    true,
	"store":            true,
	"clothing_store":   true,
	"department_store": true,
	"market":           true,
	"supermarket":      true,
	"jewelry_store":    true,
	"book_store":       true,
	"souvenir_store":   true,
}

// sightsTypes is curated from the historical place-type tags, minus anything
// already covered by museum or nature sets.
var sightsTypes = map[string]bool{
	"tourist_attraction":  true,
	"landmark":            true,
	"historical_landmark": true,
	"monument":            true,
	"church":              true,
	"place_of_worship":    true,
	"castle":              true,
	"plaza":               true,
	"observation_deck":    true,
}

// ClassifyTypes maps a place's type tags to the set of themes it belongs to,
// in a fixed deterministic order.
func ClassifyTypes(types []string) []Theme {
	hit := map[Theme]bool{}
	for _, tag := range types {
		switch {
		case museumTypes[tag]:
			hit[THEME_MUSEUMS] = true
		case nightlifeTypes[tag]:
			hit[THEME_NIGHTLIFE] = true
		case natureTypes[tag]:
			hit[THEME_NATURE] = true
		case shoppingTypes[tag]:
			hit[THEME_SHOPPING] = true
		case foodTypes[tag]:
			hit[THEME_FOOD] = true
		case sightsTypes[tag]:
			hit[THEME_SIGHTS] = true
		}
	}
	var out []Theme
	for _, theme := range primaryPriority {
		if hit[theme] {
			out = append(out, theme)
		}
	}
	return out
}

// PrimaryTheme picks the single dominant theme for a place using the fixed
// priority order. Returns false when no tag maps to a theme.
func PrimaryTheme(types []string) (Theme, bool) {
	matched := ClassifyTypes(types)
	if len(matched) == 0 {
		return "", false
	}
	return matched[0], true
}

var messagePatterns = []struct {
	theme   Theme
	pattern *regexp.Regexp
}{
	{THEME_SHOPPING, regexp.MustCompile(`(?i)\b(shopping|shops?|mall|market|boutiques?|souvenirs?)\b`)},
	{THEME_MUSEUMS, regexp.MustCompile(`(?i)\b(museums?|galler(y|ies)|exhibits?|art)\b`)},
	{THEME_FOOD, regexp.MustCompile(`(?i)\b(food|restaurants?|eat|eating|dinner|lunch|brunch|cafes?|culinary)\b`)},
	{THEME_NIGHTLIFE, regexp.MustCompile(`(?i)\b(nightlife|bars?|clubs?|clubbing|drinks?|party)\b`)},
	{THEME_NATURE, regexp.MustCompile(`(?i)\b(nature|parks?|gardens?|hike|hiking|outdoors?|beach)\b`)},
	{THEME_SIGHTS, regexp.MustCompile(`(?i)\b(sights?|sightseeing|landmarks?|monuments?|attractions?|historic(al)?)\b`)},
}

// MatchKeywords returns every theme whose keywords appear in the text, in
// fixed pattern order.
func MatchKeywords(text string) []Theme {
	var matched []Theme
	for _, mp := range messagePatterns {
		if mp.pattern.MatchString(text) {
			matched = append(matched, mp.theme)
		}
	}
	return matched
}

// InferFromMessage scans free text for theme keywords. Zero hits returns
// false; exactly one theme returns it; several distinct themes return mixed.
func InferFromMessage(text string) (Theme, bool) {
	matched := MatchKeywords(text)
	switch len(matched) {
	case 0:
		return "", false
	case 1:
		return matched[0], true
	default:
		return THEME_MIXED, true
	}
}

// RankByCount orders themes by descending count, ties broken by theme name, so
// interest lists are deterministic.
func RankByCount(counts map[Theme]int) []Theme {
	var ranked []Theme
	for theme, n := range counts {
		if n > 0 {
			ranked = append(ranked, theme)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	return ranked
}
