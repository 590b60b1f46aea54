package workorder

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// PartsUseCase consumo e devolução de peças de ordens de serviço.
// Consumir uma peça baixa o estoque (saida); cancelar a OS devolve
// exatamente o que foi consumido (devolucao), nem mais nem menos.
type PartsUseCase struct {
	txRunner   inventory.TxRunner
	movementUC *inventory.MovementUseCase
}

// NewPartsUseCase constrói o caso de uso.
func NewPartsUseCase(txRunner inventory.TxRunner, movementUC *inventory.MovementUseCase) *PartsUseCase {
	return &PartsUseCase{txRunner: txRunner, movementUC: movementUC}
}

// ConsumeInput peça anexada a uma OS.
type ConsumeInput struct {
	WorkOrderID string
	ProductID   string
	StoreID     string
	Quantity    int64
	ActorID     string
}

// Consume baixa a peça do estoque com referência à OS.
func (uc *PartsUseCase) Consume(ctx context.Context, input ConsumeInput) (*entity.LedgerEntry, error) {
	if input.WorkOrderID == "" || input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.movementUC.Move(ctx, inventory.MovementInput{
		ProductID:     input.ProductID,
		StoreID:       input.StoreID,
		Type:          entity.MovementTypeSaida,
		QuantityDelta: -input.Quantity,
		Reference:     input.WorkOrderID,
		Reason:        fmt.Sprintf("Consumo de peça na OS %s", input.WorkOrderID),
		ActorID:       input.ActorID,
	})
}

// CancelWorkOrder devolve ao estoque todas as peças consumidas pela OS.
// O saldo a devolver é calculado a partir do próprio histórico (saídas menos
// devoluções já feitas com a mesma referência), por par (produto, loja):
// cancelar duas vezes não devolve nada na segunda. Todas as devoluções
// entram em uma única transação.
func (uc *PartsUseCase) CancelWorkOrder(ctx context.Context, workOrderID, actorID string) ([]*entity.LedgerEntry, error) {
	if workOrderID == "" || actorID == "" {
		return nil, domain.ErrInvalidInput
	}

	var entries []*entity.LedgerEntry
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		stockRepo repository.StockRepository,
	) error {
		// Histórico completo da OS, sem paginação: qualquer corte aqui
		// devolveria menos do que foi consumido.
		consumed, err := ledgerRepo.ListByReference(workOrderID)
		if err != nil {
			return err
		}

		// Saldo líquido consumido por par: saídas negativas, devoluções positivas.
		type pair struct{ productID, storeID string }
		net := make(map[pair]int64)
		var order []pair
		for _, e := range consumed {
			switch e.Type {
			case entity.MovementTypeSaida, entity.MovementTypeDevolucao:
				p := pair{e.ProductID, e.StoreID}
				if _, ok := net[p]; !ok {
					order = append(order, p)
				}
				net[p] += e.QuantityDelta
			}
		}

		now := time.Now()
		for _, p := range order {
			outstanding := -net[p]
			if outstanding <= 0 {
				continue
			}
			entry, err := inventory.ApplyInTx(ledgerRepo, stockRepo, inventory.MovementInput{
				ProductID:     p.productID,
				StoreID:       p.storeID,
				Type:          entity.MovementTypeDevolucao,
				QuantityDelta: outstanding,
				Reference:     workOrderID,
				Reason:        fmt.Sprintf("Devolução por cancelamento da OS %s", workOrderID),
				ActorID:       actorID,
			}, now)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
