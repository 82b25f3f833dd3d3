package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Presentation types — the only two values the catalog accepts.
const (
	PresentacionUnidad = "unidad"
	PresentacionPeso   = "peso"
)

// PresentacionTipoValido reports whether tipo is one of the accepted
// presentation types.
func PresentacionTipoValido(tipo string) bool {
	return tipo == PresentacionUnidad || tipo == PresentacionPeso
}

// Producto is the sole catalog entity. Codigo is globally unique — the DB
// constraint is the arbiter under concurrent creates. Imagen holds the blob
// locator returned by the configured storage backend (relative path for the
// local driver, absolute URL for S3).
type Producto struct {
	ID                uint            `gorm:"primaryKey"`
	Codigo            string          `gorm:"size:255;uniqueIndex;not null"`
	Nombre            string          `gorm:"size:255;not null"`
	PresentacionTipo  string          `gorm:"size:20;not null;default:'unidad'"`
	PresentacionValor *string         `gorm:"size:255"`
	Imagen            *string         `gorm:"size:255"`
	ValorCosto        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ValorVenta        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Marca             *string         `gorm:"size:255"`
	Observaciones     *string         `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Producto) TableName() string { return "productos" }
