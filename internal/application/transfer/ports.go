package transfer

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// TxRunner executa a confirmação de uma transferência em uma única transação:
// além dos repositórios de estoque e histórico, o de transferências também
// precisa estar atado à mesma transação para que a mudança de status entre
// ou caia junto com as movimentações.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
	) error) error
}
