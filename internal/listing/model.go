package listing

import (
	"time"
)

// Placeholder seller details used when a listing omits them.
const (
	DefaultSellerName    = "Anonim Satıcı"
	DefaultSellerCompany = "Fərdi Satıcı"
	DefaultSellerPhone   = "+994 XX XXX XX XX"
)

// Seller identifies who is offering a listing.
type Seller struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
}

// Listing is a seller's offer of a material quantity at a unit price.
// Listings are never edited in place; Replace swaps the whole value.
type Listing struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	PricePerUnit float64   `json:"price_per_unit"`
	Location     string    `json:"location"`
	Image        string    `json:"image"`
	Seller       Seller    `json:"seller"`
	CreatedAt    time.Time `json:"created_at"`
}

// Subtotal is pricePerUnit × quantity with no rounding.
func (l *Listing) Subtotal() float64 {
	return l.PricePerUnit * l.Quantity
}

// SellerInput carries optional seller details on create/replace.
type SellerInput struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
}

// CreateListingRequest is the payload for creating or replacing a listing.
// Numeric fields are pointers so that an absent value is distinguishable
// from zero; their magnitude is not checked.
type CreateListingRequest struct {
	Title        string      `json:"title" binding:"required"`
	Category     string      `json:"category" binding:"required"`
	Description  string      `json:"description"`
	Quantity     *float64    `json:"quantity" binding:"required"`
	Unit         string      `json:"unit"`
	PricePerUnit *float64    `json:"price_per_unit" binding:"required"`
	Location     string      `json:"location" binding:"required"`
	Image        string      `json:"image"`
	Seller       SellerInput `json:"seller"`
}

// ImageUploadResponse is returned after an image upload.
type ImageUploadResponse struct {
	Image string `json:"image"`
}
