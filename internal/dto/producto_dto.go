package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearProductoRequest is bound from the multipart create form. Monetary
// fields arrive as decimal strings; the service parses and range-checks them
// so a value like "-1" or "3.999" fails with a field-level message instead of
// a bind error.
type CrearProductoRequest struct {
	Codigo            string  `form:"codigo"             validate:"required,max=255"`
	Nombre            string  `form:"nombre"             validate:"required,max=255"`
	PresentacionTipo  string  `form:"presentacion_tipo"  validate:"required,oneof=unidad peso"`
	PresentacionValor *string `form:"presentacion_valor" validate:"omitempty,max=255"`
	ValorCosto        string  `form:"valor_costo"        validate:"required"`
	ValorVenta        string  `form:"valor_venta"        validate:"required"`
	Marca             *string `form:"marca"              validate:"omitempty,max=255"`
	Observaciones     *string `form:"observaciones"`
}

// ActualizarProductoRequest updates any subset of fields — nil means "keep".
type ActualizarProductoRequest struct {
	Codigo            *string `form:"codigo"             validate:"omitempty,max=255"`
	Nombre            *string `form:"nombre"             validate:"omitempty,max=255"`
	PresentacionTipo  *string `form:"presentacion_tipo"  validate:"omitempty,oneof=unidad peso"`
	PresentacionValor *string `form:"presentacion_valor" validate:"omitempty,max=255"`
	ValorCosto        *string `form:"valor_costo"`
	ValorVenta        *string `form:"valor_venta"`
	Marca             *string `form:"marca"              validate:"omitempty,max=255"`
	Observaciones     *string `form:"observaciones"`
}

// ImagenSubida carries an uploaded image through to the service, which
// enforces the size and content-type rules before touching blob storage.
type ImagenSubida struct {
	Data        []byte
	ContentType string
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ProductoFilter — codigo/nombre/marca are substring matches,
// presentacion_tipo is exact. Page size is fixed at 10.
type ProductoFilter struct {
	Codigo           string `form:"codigo"`
	Nombre           string `form:"nombre"`
	Marca            string `form:"marca"`
	PresentacionTipo string `form:"presentacion_tipo"`
	Page             int    `form:"page,default=1" validate:"min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID                uint            `json:"id"`
	Codigo            string          `json:"codigo"`
	Nombre            string          `json:"nombre"`
	PresentacionTipo  string          `json:"presentacion_tipo"`
	PresentacionValor *string         `json:"presentacion_valor"`
	Imagen            *string         `json:"imagen"`
	ValorCosto        decimal.Decimal `json:"valor_costo"`
	ValorVenta        decimal.Decimal `json:"valor_venta"`
	Marca             *string         `json:"marca"`
	Observaciones     *string         `json:"observaciones"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductoListResponse is the page data for the list view — records plus
// pagination state and the filters that produced it (echoed back so the UI
// can keep its inputs in sync).
type ProductoListResponse struct {
	Data       []ProductoResponse `json:"data"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Filters    ProductoFilter     `json:"filters"`
}
