package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo leitura do cadastro de lojas (mantido por outro sistema).
type StoreRepo struct {
	q Querier
}

// NewStoreRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// GetByID devolve a loja, ou nil se não existir.
func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	query := `
		SELECT id, nome, endereco, criado_em, atualizado_em
		FROM lojas WHERE id = $1`
	var s entity.Store
	var address *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &address, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loja: %w", err)
	}
	if address != nil {
		s.Address = *address
	}
	return &s, nil
}
