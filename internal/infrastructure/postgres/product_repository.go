package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo leitura do catálogo de produtos (mantido por outro sistema).
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID devolve o produto, ou nil se não existir.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, descricao, marca, codigo_fabricante,
		       preco_compra, preco_venda, quantidade_minima, ativo,
		       criado_em, atualizado_em
		FROM produtos WHERE id = $1`
	var p entity.Product
	var brand, code *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Description, &brand, &code,
		&p.PurchasePrice, &p.SalePrice, &p.MinQuantity, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	if brand != nil {
		p.Brand = *brand
	}
	if code != nil {
		p.ManufacturerCode = *code
	}
	return &p, nil
}
