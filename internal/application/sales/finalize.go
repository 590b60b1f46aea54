package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// FinalizeSaleUseCase baixa o estoque de todos os itens de uma venda em uma
// única transação. Se qualquer item não tiver saldo, nenhum item é baixado:
// a venda falha inteira e o chamador decide o que fazer.
type FinalizeSaleUseCase struct {
	txRunner    inventory.TxRunner
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
}

// NewFinalizeSaleUseCase constrói o caso de uso.
func NewFinalizeSaleUseCase(
	txRunner inventory.TxRunner,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
) *FinalizeSaleUseCase {
	return &FinalizeSaleUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		storeRepo:   storeRepo,
	}
}

// SaleLineInput item vendido. UnitPrice nulo usa o preço de venda do catálogo.
type SaleLineInput struct {
	ProductID string
	Quantity  int64
	UnitPrice *decimal.Decimal
}

// FinalizeSaleInput dados da finalização da venda.
type FinalizeSaleInput struct {
	SaleID  string
	StoreID string
	ActorID string
	Lines   []SaleLineInput
}

// FinalizeSaleResult resumo da baixa: total vendido e entradas geradas.
type FinalizeSaleResult struct {
	Total   decimal.Decimal
	Entries []*entity.LedgerEntry
}

// Finalize baixa o estoque de cada item (saida, referência = id da venda) e
// calcula o total. Tudo ou nada: a falta de saldo em um único item desfaz a
// transação inteira e identifica o produto no erro.
func (uc *FinalizeSaleUseCase) Finalize(ctx context.Context, input FinalizeSaleInput) (*FinalizeSaleResult, error) {
	if input.SaleID == "" || input.StoreID == "" || input.ActorID == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range input.Lines {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	store, err := uc.storeRepo.GetByID(input.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	// Resolve preços fora da transação; o catálogo não participa da baixa.
	prices := make(map[string]decimal.Decimal, len(input.Lines))
	for _, line := range input.Lines {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if line.UnitPrice != nil {
			prices[line.ProductID] = *line.UnitPrice
		} else {
			prices[line.ProductID] = product.SalePrice
		}
	}

	result := &FinalizeSaleResult{Total: decimal.Zero}
	err = uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		stockRepo repository.StockRepository,
	) error {
		now := time.Now()
		for _, line := range input.Lines {
			entry, err := inventory.ApplyInTx(ledgerRepo, stockRepo, inventory.MovementInput{
				ProductID:     line.ProductID,
				StoreID:       input.StoreID,
				Type:          entity.MovementTypeSaida,
				QuantityDelta: -line.Quantity,
				Reference:     input.SaleID,
				Reason:        fmt.Sprintf("Baixa por venda %s", input.SaleID),
				ActorID:       input.ActorID,
			}, now)
			if err != nil {
				return fmt.Errorf("produto %s: %w", line.ProductID, err)
			}
			result.Entries = append(result.Entries, entry)
			lineTotal := prices[line.ProductID].Mul(decimal.NewFromInt(line.Quantity))
			result.Total = result.Total.Add(lineTotal)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
