package repository

import (
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// LedgerFilter filtros do histórico de movimentações. Campos vazios/nulos
// não filtram.
type LedgerFilter struct {
	ProductID string
	StoreID   string
	Type      string
	From      *time.Time
	To        *time.Time
	Reference string
}

// LedgerRepository persistência do histórico de estoque (append-only).
// Entradas nunca são atualizadas nem removidas.
type LedgerRepository interface {
	// Create grava uma entrada do histórico. Deve ser chamado na mesma
	// transação que atualiza o estoque materializado.
	Create(entry *entity.LedgerEntry) error
	// List devolve entradas da mais recente para a mais antiga, com total
	// para paginação.
	List(filter LedgerFilter, limit, offset int) ([]*entity.LedgerEntry, int, error)
	// ListByReference devolve todas as entradas de uma referência (venda,
	// OS ou transferência), da mais antiga para a mais recente, sem
	// paginação: quem reverte uma referência precisa do histórico inteiro.
	ListByReference(reference string) ([]*entity.LedgerEntry, error)
	// LastForPair devolve a entrada mais recente do par (produto, loja),
	// ou nil se o par nunca foi movimentado.
	LastForPair(productID, storeID string) (*entity.LedgerEntry, error)
}
