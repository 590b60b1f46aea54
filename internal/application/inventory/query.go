package inventory

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// StockQueryUseCase consultas de leitura sobre estoque e histórico.
// Nenhuma operação aqui tem efeito colateral.
type StockQueryUseCase struct {
	stockRepo  repository.StockRepository
	ledgerRepo repository.LedgerRepository
}

// NewStockQueryUseCase constrói o caso de uso de consulta.
func NewStockQueryUseCase(stockRepo repository.StockRepository, ledgerRepo repository.LedgerRepository) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo, ledgerRepo: ledgerRepo}
}

// Current devolve a quantidade atual do par (produto, loja); 0 se o par
// nunca foi movimentado.
func (uc *StockQueryUseCase) Current(ctx context.Context, productID, storeID string) (int64, error) {
	stock, err := uc.stockRepo.Get(productID, storeID)
	if err != nil {
		return 0, err
	}
	return stock.Quantity, nil
}

// StoreStock devolve o estoque de todos os produtos de uma loja, paginado.
func (uc *StockQueryUseCase) StoreStock(ctx context.Context, storeID string, limit, offset int) ([]*entity.Stock, int, error) {
	return uc.stockRepo.ListByStore(storeID, limit, offset)
}

// ProductStock devolve o estoque de um produto em todas as lojas.
func (uc *StockQueryUseCase) ProductStock(ctx context.Context, productID string) ([]*entity.Stock, error) {
	return uc.stockRepo.ListByProduct(productID)
}

// History devolve o histórico filtrado, da movimentação mais recente para a
// mais antiga, com o total para paginação.
func (uc *StockQueryUseCase) History(ctx context.Context, filter repository.LedgerFilter, limit, offset int) ([]*entity.LedgerEntry, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.ledgerRepo.List(filter, limit, offset)
}
