package model

import "strings"

// Product is a catalog entry returned by the products endpoint.
type Product struct {
	Name     string `json:"name"`
	Price    Amount `json:"price"`
	ImageURL string `json:"image_url,omitempty"`
}

// HasImage reports whether the product should be sent as a photo.
// Absent and blank image URLs are equivalent.
func (p Product) HasImage() bool {
	return strings.TrimSpace(p.ImageURL) != ""
}
