package repository

import "github.com/jhoicas/estoque-api/internal/domain/entity"

// StockRepository acesso à quantidade materializada por (produto, loja).
// A mutação (Upsert) só pode acontecer dentro da mesma transação que grava a
// entrada correspondente no histórico; fora da camada de movimentação os
// repositórios expõem apenas leitura.
type StockRepository interface {
	// Get devolve o estoque atual; se o par ainda não tem linha, devolve um
	// registro zerado (quantidade 0), nunca erro.
	Get(productID, storeID string) (*entity.Stock, error)
	// GetForUpdate lê o estoque bloqueando a linha (SELECT FOR UPDATE) para
	// serializar movimentações concorrentes do mesmo par. Se o par ainda não
	// tem linha, ela é criada zerada dentro da transação, para que o lock
	// exista desde a primeira movimentação.
	GetForUpdate(productID, storeID string) (*entity.Stock, error)
	// Upsert grava a nova quantidade do par (cria a linha na primeira movimentação).
	Upsert(stock *entity.Stock) error
	// ListByStore devolve o estoque de todos os produtos de uma loja.
	ListByStore(storeID string, limit, offset int) ([]*entity.Stock, int, error)
	// ListByProduct devolve o estoque de um produto em todas as lojas.
	ListByProduct(productID string) ([]*entity.Stock, error)
}
