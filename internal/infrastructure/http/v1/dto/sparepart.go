package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"bengkel/internal/domain/catalogs/sparepart"
	"bengkel/internal/domain/units"
)

// --- Conversion DTO ---

// ConversionRequest describes how an item's display units relate to its
// base unit.
type ConversionRequest struct {
	BaseUnit    units.BaseUnit     `json:"baseUnit" binding:"required"`
	PcsPerPack  int64              `json:"pcsPerPack"`
	PackLabel   string             `json:"packLabel"`
	LiterPerPcs LenientDecimal     `json:"literPerPcs"`
	Basis       units.PricingBasis `json:"pricingBasis"`
}

// ToConversion converts the DTO to the domain value.
func (r ConversionRequest) ToConversion() units.Conversion {
	return units.Conversion{
		BaseUnit:    r.BaseUnit,
		PcsPerPack:  r.PcsPerPack,
		PackLabel:   r.PackLabel,
		LiterPerPcs: r.LiterPerPcs.Decimal,
		Basis:       r.Basis,
	}
}

// --- Request DTOs ---

// CreateSparepartRequest is the request body for creating a spare part.
type CreateSparepartRequest struct {
	Name       string            `json:"name" binding:"required"`
	PartNumber string            `json:"partNumber"`
	NGKNumber  string            `json:"ngkNumber"`
	Brand      string            `json:"brand"`
	Category   string            `json:"category"`
	Source     string            `json:"source"`
	Conversion ConversionRequest `json:"conversion" binding:"required"`
	StockBase  LenientDecimal    `json:"stockBase"`
	PriceBuy   LenientDecimal    `json:"priceBuy"`
	PriceSell  LenientDecimal    `json:"priceSell"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSparepartRequest) ToEntity() *sparepart.Sparepart {
	item := sparepart.NewSparepart(r.Name, r.Conversion.ToConversion())
	item.PartNumber = r.PartNumber
	item.NGKNumber = r.NGKNumber
	item.Brand = r.Brand
	item.Category = r.Category
	item.Source = r.Source
	item.StockBase = r.StockBase.Decimal
	item.PriceBuy = r.PriceBuy.Decimal
	item.PriceSell = r.PriceSell.Decimal
	return item
}

// UpdateSparepartRequest is the request body for updating a spare part.
type UpdateSparepartRequest struct {
	Name       string            `json:"name" binding:"required"`
	PartNumber string            `json:"partNumber"`
	NGKNumber  string            `json:"ngkNumber"`
	Brand      string            `json:"brand"`
	Category   string            `json:"category"`
	Source     string            `json:"source"`
	Conversion ConversionRequest `json:"conversion" binding:"required"`
	PriceBuy   LenientDecimal    `json:"priceBuy"`
	PriceSell  LenientDecimal    `json:"priceSell"`
	Version    int               `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity. Code, stock level and
// the stock-moved flag come from the stored item, never the request.
func (r *UpdateSparepartRequest) ApplyTo(item *sparepart.Sparepart) {
	item.Name = r.Name
	item.PartNumber = r.PartNumber
	item.NGKNumber = r.NGKNumber
	item.Brand = r.Brand
	item.Category = r.Category
	item.Source = r.Source
	item.Conversion = r.Conversion.ToConversion()
	item.PriceBuy = r.PriceBuy.Decimal
	item.PriceSell = r.PriceSell.Decimal
	item.Version = r.Version
}

// RestockRequest adds stock in base units, optionally recording a new
// buy price.
type RestockRequest struct {
	QtyBase  decimal.Decimal `json:"qtyBase" binding:"required"`
	PriceBuy *LenientDecimal `json:"priceBuy"`
}

// --- Response DTOs ---

// SparepartResponse is the response body for a spare part.
type SparepartResponse struct {
	ID           string           `json:"id"`
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	PartNumber   string           `json:"partNumber,omitempty"`
	NGKNumber    string           `json:"ngkNumber,omitempty"`
	Brand        string           `json:"brand,omitempty"`
	Category     string           `json:"category,omitempty"`
	Source       string           `json:"source,omitempty"`
	Conversion   units.Conversion `json:"conversion"`
	StockBase    decimal.Decimal  `json:"stockBase"`
	StockMoved   bool             `json:"stockMoved"`
	PriceBuy     decimal.Decimal  `json:"priceBuy"`
	PriceSell    decimal.Decimal  `json:"priceSell"`
	DeletionMark bool             `json:"deletionMark"`
	Version      int              `json:"version"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// FromSparepart creates response DTO from domain entity.
func FromSparepart(item *sparepart.Sparepart) *SparepartResponse {
	return &SparepartResponse{
		ID:           item.ID.String(),
		Code:         item.Code,
		Name:         item.Name,
		PartNumber:   item.PartNumber,
		NGKNumber:    item.NGKNumber,
		Brand:        item.Brand,
		Category:     item.Category,
		Source:       item.Source,
		Conversion:   item.Conversion,
		StockBase:    item.StockBase,
		StockMoved:   item.StockMoved,
		PriceBuy:     item.PriceBuy,
		PriceSell:    item.PriceSell,
		DeletionMark: item.DeletionMark,
		Version:      item.Version,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// FromSpareparts maps a slice of entities.
func FromSpareparts(items []*sparepart.Sparepart) []*SparepartResponse {
	out := make([]*SparepartResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FromSparepart(item))
	}
	return out
}

// UnitOptionsResponse lists the display units an item may be sold in,
// with the per-unit sell price for each.
type UnitOptionsResponse struct {
	Units []UnitOption `json:"units"`
}

// UnitOption is one sellable display unit of an item.
type UnitOption struct {
	Unit  units.DisplayUnit `json:"unit"`
	Label string            `json:"label"`
	Price decimal.Decimal   `json:"price"`
}
