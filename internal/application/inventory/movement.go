package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// MovementUseCase é o único caminho de escrita do estoque: cada chamada grava
// uma atualização em estoque_lojas e uma entrada em historico_estoque, na
// mesma transação, com bloqueio da linha do par (SELECT FOR UPDATE).
type MovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
}

// NewMovementUseCase constrói o caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		storeRepo:   storeRepo,
	}
}

// MovementInput entrada para registrar uma movimentação.
// QuantityDelta é assinado: positivo aumenta o estoque, negativo reduz.
type MovementInput struct {
	ProductID     string
	StoreID       string
	Type          string
	QuantityDelta int64
	Reference     string
	Reason        string
	ActorID       string
}

// Move registra uma movimentação. Valida a entrada e a existência de produto
// e loja, depois abre a transação: lê o saldo com bloqueio de linha, aplica o
// delta (falha com ErrInsufficientStock se ficasse negativo), grava estoque e
// histórico e faz Commit. Qualquer falha faz Rollback e nada é aplicado.
func (uc *MovementUseCase) Move(ctx context.Context, input MovementInput) (*entity.LedgerEntry, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	store, err := uc.storeRepo.GetByID(input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	var entry *entity.LedgerEntry
	err = uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		stockRepo repository.StockRepository,
	) error {
		entry, err = ApplyInTx(ledgerRepo, stockRepo, input, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Adjust registra um ajuste manual. O motivo é obrigatório: ajustes sem
// justificativa humana não entram no histórico.
func (uc *MovementUseCase) Adjust(ctx context.Context, productID, storeID string, delta int64, reason, actorID string) (*entity.LedgerEntry, error) {
	return uc.Move(ctx, MovementInput{
		ProductID:     productID,
		StoreID:       storeID,
		Type:          entity.MovementTypeAjuste,
		QuantityDelta: delta,
		Reason:        reason,
		ActorID:       actorID,
	})
}

func (uc *MovementUseCase) validate(input MovementInput) error {
	if input.ProductID == "" || input.StoreID == "" || input.ActorID == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(input.Type) {
		return domain.ErrInvalidMovement
	}
	if input.QuantityDelta == 0 {
		return domain.ErrInvalidMovement
	}
	if input.Type == entity.MovementTypeAjuste && input.Reason == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// ApplyInTx executa uma movimentação usando repositórios já atados à
// transação do chamador. É o que a confirmação de transferência e a
// finalização de venda usam para mover várias linhas de forma atômica:
// todas as chamadas compartilham a mesma transação e qualquer erro
// desfaz o conjunto inteiro.
func ApplyInTx(
	ledgerRepo repository.LedgerRepository,
	stockRepo repository.StockRepository,
	input MovementInput,
	now time.Time,
) (*entity.LedgerEntry, error) {
	// Bloqueia a linha do par (produto, loja); movimentações concorrentes do
	// mesmo par serializam aqui, pares diferentes seguem em paralelo.
	stock, err := stockRepo.GetForUpdate(input.ProductID, input.StoreID)
	if err != nil {
		return nil, err
	}

	entry, err := entity.NewLedgerEntry(entity.LedgerDraft{
		ProductID:     input.ProductID,
		StoreID:       input.StoreID,
		Type:          input.Type,
		QuantityDelta: input.QuantityDelta,
		Reference:     input.Reference,
		Reason:        input.Reason,
		ActorID:       input.ActorID,
	}, stock.Quantity, now)
	if err != nil {
		return nil, err
	}

	stock.Quantity = entry.QuantityAfter
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(stock); err != nil {
		return nil, err
	}
	if err := ledgerRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}
