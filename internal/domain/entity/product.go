package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto do catálogo. O cadastro é gerenciado fora do
// núcleo de estoque; aqui o produto é somente lido (existência e preços).
type Product struct {
	ID               string
	Description      string
	Brand            string
	ManufacturerCode string
	PurchasePrice    decimal.Decimal
	SalePrice        decimal.Decimal
	MinQuantity      int64
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
