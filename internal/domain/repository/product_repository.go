package repository

import "github.com/jhoicas/estoque-api/internal/domain/entity"

// ProductRepository leitura do catálogo de produtos. O cadastro em si é
// mantido por outro sistema; o núcleo de estoque só valida existência e
// consulta preços.
type ProductRepository interface {
	// GetByID devolve o produto, ou nil se não existir.
	GetByID(id string) (*entity.Product, error)
}
