package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateSweetRequest struct {
	Name     string          `json:"name"      validate:"required,min=1,max=120"`
	Category string          `json:"category"  validate:"required,min=1,max=60"`
	Price    decimal.Decimal `json:"price"     validate:"min=0"`
	Quantity int             `json:"quantity"  validate:"min=0"`
	ImageURL *string         `json:"image_url"`
}

// UpdateSweetRequest applies only the fields explicitly supplied:
// PATCH-merge semantics even though the route is exposed as PUT.
type UpdateSweetRequest struct {
	Name     *string          `json:"name"      validate:"omitempty,min=1,max=120"`
	Category *string          `json:"category"  validate:"omitempty,min=1,max=60"`
	Price    *decimal.Decimal `json:"price"`
	Quantity *int             `json:"quantity"  validate:"omitempty,min=0"`
	ImageURL *string          `json:"image_url"`
}

// PurchaseRequest defaults to a single unit when the body is empty.
type PurchaseRequest struct {
	Quantity *int `json:"quantity"`
}

// RestockRequest leaves the quantity range to the service so that a
// non-positive restock gets the same InvalidQuantity answer a purchase does.
type RestockRequest struct {
	Quantity int `json:"quantity"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

// SweetFilter carries the /sweets/search query parameters. All provided
// filters combine with AND; category accepts a comma-separated list matched
// with OR across the listed values.
type SweetFilter struct {
	Name     string           `form:"name"`
	Category string           `form:"category"`
	MinPrice *decimal.Decimal `form:"min_price"`
	MaxPrice *decimal.Decimal `form:"max_price"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SweetResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	ImageURL *string         `json:"image_url"`
}

type PurchaseResponse struct {
	PurchasedQty   int `json:"purchased_qty"`
	RemainingStock int `json:"remaining_stock"`
}

type RestockResponse struct {
	NewStock int `json:"new_stock"`
}
