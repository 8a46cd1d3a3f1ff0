package service

import "strings"

// defaultImages maps normalized category names to the bundled asset served by
// the storefront. Categories outside this table get no default.
var defaultImages = map[string]string{
	"indian":    "/sweets/indian.svg",
	"chocolate": "/sweets/chocolate.svg",
	"candy":     "/sweets/candy.svg",
	"cake":      "/sweets/cake.svg",
	"cookie":    "/sweets/cookie.svg",
	"ice_cream": "/sweets/ice_cream.svg",
	"ice-cream": "/sweets/ice_cream.svg",
	"icecream":  "/sweets/ice_cream.svg",
}

// defaultImageForCategory returns the default asset reference for a category,
// or nil when the category has no mapping.
func defaultImageForCategory(category string) *string {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(category)), " ", "_")
	if url, ok := defaultImages[normalized]; ok {
		return &url
	}
	return nil
}
