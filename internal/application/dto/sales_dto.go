package dto

import "github.com/shopspring/decimal"

// SaleLineRequest item vendido. PrecoUnitario nulo usa o preço do catálogo.
type SaleLineRequest struct {
	ProductID string           `json:"produto_id"`
	Quantity  int64            `json:"quantidade"`
	UnitPrice *decimal.Decimal `json:"preco_unitario,omitempty"`
}

// FinalizeSaleRequest body para POST /api/vendas/finalizar.
type FinalizeSaleRequest struct {
	SaleID  string            `json:"venda_id"`
	StoreID string            `json:"loja_id"`
	Lines   []SaleLineRequest `json:"itens"`
}

// FinalizeSaleResponse resumo da baixa de estoque da venda.
type FinalizeSaleResponse struct {
	SaleID    string                `json:"venda_id"`
	Total     decimal.Decimal       `json:"total"`
	Movements []LedgerEntryResponse `json:"movimentacoes"`
}
