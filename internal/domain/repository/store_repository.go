package repository

import "github.com/jhoicas/estoque-api/internal/domain/entity"

// StoreRepository leitura do cadastro de lojas (mantido externamente).
type StoreRepository interface {
	// GetByID devolve a loja, ou nil se não existir.
	GetByID(id string) (*entity.Store, error)
}
