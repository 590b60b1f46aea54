package entity

import (
	"time"

	"github.com/jhoicas/estoque-api/internal/domain"
)

// Status de uma transferência entre lojas. pendente é o estado inicial;
// confirmada e cancelada são terminais.
const (
	TransferStatusPendente   = "pendente"
	TransferStatusConfirmada = "confirmada"
	TransferStatusCancelada  = "cancelada"
)

// TransferLine é um item da transferência: um produto e a quantidade a mover.
type TransferLine struct {
	ID         string
	TransferID string
	ProductID  string
	Quantity   int64
	CreatedAt  time.Time
}

// Transfer representa uma transferência de estoque entre duas lojas.
// Enquanto pendente não há nenhum efeito sobre o estoque: a validação de
// saldo acontece apenas na confirmação.
type Transfer struct {
	ID                 string
	OriginStoreID      string
	DestinationStoreID string
	Status             string
	Notes              string
	CreatedBy          string
	CreatedAt          time.Time
	ConfirmedBy        *string
	ConfirmedAt        *time.Time
	CancelledBy        *string
	CancelledAt        *time.Time
	CancelReason       *string
	Lines              []TransferLine
}

// Validate verifica as regras de criação: lojas distintas, pelo menos um
// item e quantidades positivas.
func (t *Transfer) Validate() error {
	if t.OriginStoreID == "" || t.DestinationStoreID == "" {
		return domain.ErrInvalidInput
	}
	if t.OriginStoreID == t.DestinationStoreID {
		return domain.ErrInvalidInput
	}
	if len(t.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, line := range t.Lines {
		if line.ProductID == "" || line.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// IsPendente informa se a transferência ainda aceita confirmação/cancelamento.
func (t *Transfer) IsPendente() bool {
	return t.Status == TransferStatusPendente
}

// Confirm marca a transferência como confirmada. Falha com
// ErrInvalidTransition se o status já for terminal (proteção contra
// duplo clique/confirmação repetida).
func (t *Transfer) Confirm(actorID string, now time.Time) error {
	if !t.IsPendente() {
		return domain.ErrInvalidTransition
	}
	t.Status = TransferStatusConfirmada
	t.ConfirmedBy = &actorID
	t.ConfirmedAt = &now
	return nil
}

// Cancel marca a transferência como cancelada. Nunca toca o estoque:
// uma transferência pendente não reservou saldo algum.
func (t *Transfer) Cancel(actorID, reason string, now time.Time) error {
	if !t.IsPendente() {
		return domain.ErrInvalidTransition
	}
	t.Status = TransferStatusCancelada
	t.CancelledBy = &actorID
	t.CancelledAt = &now
	t.CancelReason = &reason
	return nil
}
