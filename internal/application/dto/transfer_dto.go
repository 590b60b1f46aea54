package dto

import (
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// TransferLineRequest item da transferência a criar.
type TransferLineRequest struct {
	ProductID string `json:"produto_id"`
	Quantity  int64  `json:"quantidade"`
}

// CreateTransferRequest body para POST /api/transferencias.
type CreateTransferRequest struct {
	OriginStoreID      string                `json:"loja_origem_id"`
	DestinationStoreID string                `json:"loja_destino_id"`
	Notes              string                `json:"observacoes,omitempty"`
	Lines              []TransferLineRequest `json:"itens"`
}

// CancelTransferRequest body para POST /api/transferencias/:id/cancelar.
type CancelTransferRequest struct {
	Reason string `json:"motivo"`
}

// TransferLineResponse item na resposta da API.
type TransferLineResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"produto_id"`
	Quantity  int64  `json:"quantidade"`
}

// TransferResponse transferência na resposta da API.
type TransferResponse struct {
	ID                 string                 `json:"id"`
	OriginStoreID      string                 `json:"loja_origem_id"`
	DestinationStoreID string                 `json:"loja_destino_id"`
	Status             string                 `json:"status"`
	Notes              string                 `json:"observacoes,omitempty"`
	CreatedBy          string                 `json:"criado_por"`
	CreatedAt          time.Time              `json:"criado_em"`
	ConfirmedBy        *string                `json:"confirmado_por,omitempty"`
	ConfirmedAt        *time.Time             `json:"confirmado_em,omitempty"`
	CancelledBy        *string                `json:"cancelado_por,omitempty"`
	CancelledAt        *time.Time             `json:"cancelado_em,omitempty"`
	CancelReason       *string                `json:"motivo_cancelamento,omitempty"`
	Lines              []TransferLineResponse `json:"itens"`
}

// NewTransferResponse converte a entidade para a resposta da API.
func NewTransferResponse(t *entity.Transfer) TransferResponse {
	resp := TransferResponse{
		ID:                 t.ID,
		OriginStoreID:      t.OriginStoreID,
		DestinationStoreID: t.DestinationStoreID,
		Status:             t.Status,
		Notes:              t.Notes,
		CreatedBy:          t.CreatedBy,
		CreatedAt:          t.CreatedAt,
		ConfirmedBy:        t.ConfirmedBy,
		ConfirmedAt:        t.ConfirmedAt,
		CancelledBy:        t.CancelledBy,
		CancelledAt:        t.CancelledAt,
		CancelReason:       t.CancelReason,
	}
	for _, line := range t.Lines {
		resp.Lines = append(resp.Lines, TransferLineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return resp
}
