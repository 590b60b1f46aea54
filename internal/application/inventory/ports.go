package inventory

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação do banco, passando
// repositórios atados a essa transação. É o que garante que histórico e
// estoque materializado nunca divergem: ou os dois writes entram, ou nenhum.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		stockRepo repository.StockRepository,
	) error) error
}
