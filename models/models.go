package models

import (
	"github.com/shopspring/decimal"
)

// Machine represents a piece of tracked equipment in the catalog.
type Machine struct {
	Seq           int    `json:"seq"`
	Make          string `json:"make"`
	Model         string `json:"model"`
	EquipmentType string `json:"equipment_type"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// TrackSize represents a rubber track size in the catalog. The size code is
// WIDTHxPITCHxLINKS, e.g. "320x86x52".
type TrackSize struct {
	Size           string           `json:"size"`
	Width          *float64         `json:"width,omitempty"`
	Pitch          *float64         `json:"pitch,omitempty"`
	Links          *int             `json:"links,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	IsInStock      bool             `json:"is_in_stock"`
	InventoryCount int              `json:"inventory_count"`
	Description    string           `json:"description,omitempty"`
	IsActive       bool             `json:"is_active"`
}

// PartNumber represents an undercarriage part in the catalog, searchable by
// its part number, e.g. "127-3807".
type PartNumber struct {
	PartNumber  string           `json:"part_number"`
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	IsInStock   bool             `json:"is_in_stock"`
	IsActive    bool             `json:"is_active"`
}

// Compatibility links a machine to the track sizes that fit it.
type Compatibility struct {
	Make       string   `json:"make"`
	Model      string   `json:"model"`
	TrackSizes []string `json:"track_sizes"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Service string `json:"service,omitempty"`
}

// BrandInfo represents a canonical brand and its known aliases
type BrandInfo struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// BrandsResponse represents the response for available brands
type BrandsResponse struct {
	Brands []BrandInfo `json:"brands"`
	Count  int         `json:"count"`
}

// MachinesResponse represents the response for a machine search
type MachinesResponse struct {
	Machines []Machine `json:"machines"`
	Count    int       `json:"count"`
	Query    string    `json:"query,omitempty"`
}

// TrackSizesResponse represents the response for a track size search
type TrackSizesResponse struct {
	TrackSizes []TrackSize `json:"track_sizes"`
	Count      int         `json:"count"`
	Query      string      `json:"query,omitempty"`
}

// PartNumbersResponse represents the response for a part number search
type PartNumbersResponse struct {
	Parts []PartNumber `json:"parts"`
	Count int          `json:"count"`
	Query string       `json:"query,omitempty"`
}

// CompatibilityResponse represents the response for a compatibility lookup
type CompatibilityResponse struct {
	Make       string      `json:"make"`
	Model      string      `json:"model"`
	TrackSizes []TrackSize `json:"track_sizes"`
	Count      int         `json:"count"`
}
