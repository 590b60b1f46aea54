package repository

import "github.com/jhoicas/estoque-api/internal/domain/entity"

// TransferFilter filtros de listagem de transferências. StoreID casa tanto
// com a loja de origem quanto com a de destino.
type TransferFilter struct {
	Status  string
	StoreID string
}

// TransferRepository persistência de transferências e seus itens.
type TransferRepository interface {
	// Create grava a transferência com seus itens (status pendente).
	Create(transfer *entity.Transfer) error
	// GetByID devolve a transferência com itens, ou nil se não existir.
	GetByID(id string) (*entity.Transfer, error)
	// GetForUpdate lê a transferência bloqueando a linha, para que
	// confirmações/cancelamentos concorrentes serializem.
	GetForUpdate(id string) (*entity.Transfer, error)
	// UpdateStatus grava a mudança de status e os metadados de
	// confirmação/cancelamento. Itens nunca mudam.
	UpdateStatus(transfer *entity.Transfer) error
	// List devolve transferências da mais recente para a mais antiga.
	List(filter TransferFilter, limit, offset int) ([]*entity.Transfer, int, error)
}
