package dto

import (
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/estoque/movimentacoes.
// Quantidade é o delta assinado: positivo entra, negativo sai.
type RegisterMovementRequest struct {
	ProductID string `json:"produto_id"`
	StoreID   string `json:"loja_id"`
	Type      string `json:"tipo"`
	Quantity  int64  `json:"quantidade"`
	Reference string `json:"referencia,omitempty"`
	Reason    string `json:"motivo,omitempty"`
}

// HistoryQuery filtros de GET /api/estoque/movimentacoes.
type HistoryQuery struct {
	ProductID string `query:"produto_id"`
	StoreID   string `query:"loja_id"`
	Type      string `query:"tipo"`
	From      string `query:"data_inicio"` // RFC 3339 ou YYYY-MM-DD
	To        string `query:"data_fim"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
}

// LedgerEntryResponse entrada do histórico na API.
type LedgerEntryResponse struct {
	ID             int64     `json:"id"`
	ProductID      string    `json:"produto_id"`
	StoreID        string    `json:"loja_id"`
	Type           string    `json:"tipo"`
	QuantityDelta  int64     `json:"quantidade_alterada"`
	QuantityBefore int64     `json:"quantidade_anterior"`
	QuantityAfter  int64     `json:"quantidade_nova"`
	Reference      string    `json:"referencia,omitempty"`
	Reason         string    `json:"motivo,omitempty"`
	ActorID        string    `json:"usuario_id,omitempty"`
	CreatedAt      time.Time `json:"criado_em"`
}

// NewLedgerEntryResponse converte a entidade para a resposta da API.
func NewLedgerEntryResponse(e *entity.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:             e.ID,
		ProductID:      e.ProductID,
		StoreID:        e.StoreID,
		Type:           e.Type,
		QuantityDelta:  e.QuantityDelta,
		QuantityBefore: e.QuantityBefore,
		QuantityAfter:  e.QuantityAfter,
		Reference:      e.Reference,
		Reason:         e.Reason,
		ActorID:        e.ActorID,
		CreatedAt:      e.CreatedAt,
	}
}

// StockResponse linha de estoque na API.
type StockResponse struct {
	ProductID string    `json:"produto_id"`
	StoreID   string    `json:"loja_id"`
	Quantity  int64     `json:"quantidade"`
	UpdatedAt time.Time `json:"atualizado_em"`
}

// NewStockResponse converte a entidade para a resposta da API.
func NewStockResponse(s *entity.Stock) StockResponse {
	return StockResponse{
		ProductID: s.ProductID,
		StoreID:   s.StoreID,
		Quantity:  s.Quantity,
		UpdatedAt: s.UpdatedAt,
	}
}
