package entity

import (
	"time"

	"github.com/jhoicas/estoque-api/internal/domain"
)

// Tipos de movimentação de estoque (valores persistidos em historico_estoque).
const (
	MovementTypeEntrada              = "entrada"
	MovementTypeSaida                = "saida"
	MovementTypeAjuste               = "ajuste"
	MovementTypeDevolucao            = "devolucao"
	MovementTypeTransferenciaSaida   = "transferencia_saida"
	MovementTypeTransferenciaEntrada = "transferencia_entrada"
)

// ValidMovementType informa se o tipo de movimentação é conhecido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntrada, MovementTypeSaida, MovementTypeAjuste,
		MovementTypeDevolucao, MovementTypeTransferenciaSaida, MovementTypeTransferenciaEntrada:
		return true
	}
	return false
}

// LedgerEntry é um registro imutável do histórico de estoque: uma única
// alteração de quantidade de um produto em uma loja. Nunca é atualizado nem
// removido depois de gravado.
//
// Invariantes: QuantityAfter = QuantityBefore + QuantityDelta;
// QuantityAfter >= 0; QuantityBefore encadeia com o QuantityAfter da
// entrada anterior do mesmo par (produto, loja).
type LedgerEntry struct {
	ID             int64
	ProductID      string
	StoreID        string
	Type           string
	QuantityDelta  int64
	QuantityBefore int64
	QuantityAfter  int64
	Reference      string // id de venda, OS ou transferência que originou a movimentação
	Reason         string
	ActorID        string
	CreatedAt      time.Time
}

// LedgerDraft são os campos fornecidos pelo chamador para compor uma entrada.
// QuantityBefore vem da leitura bloqueada do estoque, dentro da mesma transação.
type LedgerDraft struct {
	ProductID     string
	StoreID       string
	Type          string
	QuantityDelta int64
	Reference     string
	Reason        string
	ActorID       string
}

// NewLedgerEntry monta a entrada do histórico a partir do saldo atual do par,
// aplicando a aritmética e as validações do ledger. O significado de negócio
// da movimentação é responsabilidade do chamador; aqui só se garante que os
// números fecham e que o saldo nunca fica negativo.
func NewLedgerEntry(d LedgerDraft, before int64, now time.Time) (*LedgerEntry, error) {
	if d.ProductID == "" || d.StoreID == "" {
		return nil, domain.ErrInvalidMovement
	}
	if d.QuantityDelta == 0 {
		return nil, domain.ErrInvalidMovement
	}
	if !ValidMovementType(d.Type) {
		return nil, domain.ErrInvalidMovement
	}
	after := before + d.QuantityDelta
	if after < 0 {
		return nil, domain.ErrInsufficientStock
	}
	return &LedgerEntry{
		ProductID:      d.ProductID,
		StoreID:        d.StoreID,
		Type:           d.Type,
		QuantityDelta:  d.QuantityDelta,
		QuantityBefore: before,
		QuantityAfter:  after,
		Reference:      d.Reference,
		Reason:         d.Reason,
		ActorID:        d.ActorID,
		CreatedAt:      now,
	}, nil
}
