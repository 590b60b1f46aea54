package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// UseCase coordena o ciclo de vida de uma transferência entre lojas:
// criação (pendente, sem efeito no estoque), confirmação (movimenta todas as
// linhas em uma transação, tudo ou nada) e cancelamento (só status).
type UseCase struct {
	txRunner     TxRunner
	transferRepo repository.TransferRepository
	productRepo  repository.ProductRepository
	storeRepo    repository.StoreRepository
}

// NewUseCase constrói o caso de uso de transferências.
func NewUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		transferRepo: transferRepo,
		productRepo:  productRepo,
		storeRepo:    storeRepo,
	}
}

// CreateLineInput item da transferência a criar.
type CreateLineInput struct {
	ProductID string
	Quantity  int64
}

// CreateInput dados para criar uma transferência.
type CreateInput struct {
	OriginStoreID      string
	DestinationStoreID string
	Notes              string
	ActorID            string
	Lines              []CreateLineInput
}

// Create cria a transferência em pendente. Não valida saldo da origem de
// propósito: o estoque pode mudar entre a criação e a confirmação, então a
// validação que vale é a da confirmação.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*entity.Transfer, error) {
	if input.ActorID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	t := &entity.Transfer{
		ID:                 uuid.New().String(),
		OriginStoreID:      input.OriginStoreID,
		DestinationStoreID: input.DestinationStoreID,
		Status:             entity.TransferStatusPendente,
		Notes:              input.Notes,
		CreatedBy:          input.ActorID,
		CreatedAt:          now,
	}
	for _, line := range input.Lines {
		t.Lines = append(t.Lines, entity.TransferLine{
			ID:         uuid.New().String(),
			TransferID: t.ID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			CreatedAt:  now,
		})
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	// Lojas e produtos precisam existir antes de aceitar a transferência.
	for _, storeID := range []string{t.OriginStoreID, t.DestinationStoreID} {
		store, err := uc.storeRepo.GetByID(storeID)
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, domain.ErrNotFound
		}
	}
	for _, line := range t.Lines {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	}

	if err := uc.transferRepo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Confirm executa a transferência: em uma única transação, para cada item
// registra a saída na loja de origem e a entrada na de destino, e grava o
// status confirmada. Se qualquer item não tiver saldo suficiente, a
// transação inteira é desfeita — nenhuma loja muda e a transferência
// continua pendente, podendo ser reconfirmada ou cancelada depois.
func (uc *UseCase) Confirm(ctx context.Context, transferID, actorID string) (*entity.Transfer, error) {
	if transferID == "" || actorID == "" {
		return nil, domain.ErrInvalidInput
	}

	var confirmed *entity.Transfer
	err := uc.txRunner.RunTransfer(ctx, func(
		ledgerRepo repository.LedgerRepository,
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
	) error {
		t, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		if err := t.Confirm(actorID, now); err != nil {
			return err
		}

		// Primeiro todas as saídas da origem: é aqui que a falta de saldo
		// aparece, antes de qualquer entrada no destino.
		for _, line := range t.Lines {
			_, err := inventory.ApplyInTx(ledgerRepo, stockRepo, inventory.MovementInput{
				ProductID:     line.ProductID,
				StoreID:       t.OriginStoreID,
				Type:          entity.MovementTypeTransferenciaSaida,
				QuantityDelta: -line.Quantity,
				Reference:     t.ID,
				ActorID:       actorID,
			}, now)
			if err != nil {
				return fmt.Errorf("produto %s: %w", line.ProductID, err)
			}
		}
		for _, line := range t.Lines {
			_, err := inventory.ApplyInTx(ledgerRepo, stockRepo, inventory.MovementInput{
				ProductID:     line.ProductID,
				StoreID:       t.DestinationStoreID,
				Type:          entity.MovementTypeTransferenciaEntrada,
				QuantityDelta: line.Quantity,
				Reference:     t.ID,
				ActorID:       actorID,
			}, now)
			if err != nil {
				return fmt.Errorf("produto %s: %w", line.ProductID, err)
			}
		}

		if err := transferRepo.UpdateStatus(t); err != nil {
			return err
		}
		confirmed = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}

// Cancel cancela uma transferência pendente. Atualização de status apenas:
// como pendente nunca reservou estoque, não há nada a devolver.
func (uc *UseCase) Cancel(ctx context.Context, transferID, actorID, reason string) (*entity.Transfer, error) {
	if transferID == "" || actorID == "" {
		return nil, domain.ErrInvalidInput
	}

	var cancelled *entity.Transfer
	err := uc.txRunner.RunTransfer(ctx, func(
		_ repository.LedgerRepository,
		_ repository.StockRepository,
		transferRepo repository.TransferRepository,
	) error {
		t, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if err := t.Cancel(actorID, reason, time.Now()); err != nil {
			return err
		}
		if err := transferRepo.UpdateStatus(t); err != nil {
			return err
		}
		cancelled = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// Get devolve a transferência com itens.
func (uc *UseCase) Get(ctx context.Context, transferID string) (*entity.Transfer, error) {
	t, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// List devolve transferências filtradas por status e/ou loja, paginadas.
func (uc *UseCase) List(ctx context.Context, filter repository.TransferFilter, limit, offset int) ([]*entity.Transfer, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.transferRepo.List(filter, limit, offset)
}
