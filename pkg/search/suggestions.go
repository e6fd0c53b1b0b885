package search

import (
	"fmt"
	"math"
	"strings"

	"property-search-be/pkg/query"
)

const maxTrendingSuggestions = 2

// Suggestions maps a failed (already broadened) query to a small set of
// human-readable alternatives by substituting nearby price and bedroom
// bands into a phrase template. No re-parsing involved.
func Suggestions(parsed query.ParsedQuery, trending []string) []string {
	var out []string

	if parsed.MaxPrice != nil {
		raised := math.Ceil(*parsed.MaxPrice * 1.25)
		out = append(out, renderPhrase(parsed.Bedrooms, parsed.PropertyType, &raised, nil))
	}
	if parsed.Bedrooms != nil {
		if lower := *parsed.Bedrooms - 1; lower >= 1 {
			out = append(out, renderPhrase(&lower, parsed.PropertyType, parsed.MaxPrice, parsed.MinPrice))
		}
		higher := *parsed.Bedrooms + 1
		out = append(out, renderPhrase(&higher, parsed.PropertyType, parsed.MaxPrice, parsed.MinPrice))
	}
	if parsed.PropertyType != "" {
		out = append(out, renderPhrase(parsed.Bedrooms, "", parsed.MaxPrice, parsed.MinPrice))
	}

	added := 0
	for _, t := range trending {
		if added == maxTrendingSuggestions {
			break
		}
		if strings.EqualFold(t, parsed.RawText) || contains(out, t) {
			continue
		}
		out = append(out, t)
		added++
	}

	return dedupe(out)
}

func renderPhrase(bedrooms *int, propertyType string, maxPrice, minPrice *float64) string {
	var parts []string
	if bedrooms != nil {
		parts = append(parts, fmt.Sprintf("%d bedroom", *bedrooms))
	}
	if propertyType != "" {
		parts = append(parts, propertyType)
	} else {
		parts = append(parts, "property")
	}
	if maxPrice != nil {
		parts = append(parts, fmt.Sprintf("under RM%.0f", *maxPrice))
	} else if minPrice != nil {
		parts = append(parts, fmt.Sprintf("above RM%.0f", *minPrice))
	}
	return strings.Join(parts, " ")
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := list[:0]
	for _, s := range list {
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
