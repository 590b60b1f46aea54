package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementação de StockRepository sobre PostgreSQL (usável com pool ou tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository constrói o adaptador de estoque. Passar pool ou tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get devolve o estoque atual de um produto em uma loja; linha zerada se o
// par nunca foi movimentado.
func (r *StockRepo) Get(productID, storeID string) (*entity.Stock, error) {
	query := `
		SELECT id_produto, id_loja, quantidade, atualizado_em
		FROM estoque_lojas WHERE id_produto = $1 AND id_loja = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, storeID).Scan(
		&s.ProductID, &s.StoreID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, StoreID: storeID}, nil
		}
		return nil, fmt.Errorf("get estoque: %w", err)
	}
	return &s, nil
}

// GetForUpdate lê o estoque bloqueando a linha (SELECT FOR UPDATE).
// Se o par ainda não tem linha, ela é materializada com quantidade zero
// antes do SELECT: um FOR UPDATE sobre linha inexistente não bloqueia nada,
// e duas primeiras movimentações concorrentes do mesmo par leriam ambas
// saldo zero. Com a linha garantida, a segunda transação espera a primeira
// no lock e lê o saldo já commitado.
func (r *StockRepo) GetForUpdate(productID, storeID string) (*entity.Stock, error) {
	ctx := context.Background()
	insert := `
		INSERT INTO estoque_lojas (id_produto, id_loja, quantidade)
		VALUES ($1, $2, 0)
		ON CONFLICT (id_produto, id_loja) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, productID, storeID); err != nil {
		return nil, fmt.Errorf("materializar estoque: %w", err)
	}

	query := `
		SELECT id_produto, id_loja, quantidade, atualizado_em
		FROM estoque_lojas WHERE id_produto = $1 AND id_loja = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID, storeID).Scan(
		&s.ProductID, &s.StoreID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get estoque for update: %w", err)
	}
	return &s, nil
}

// Upsert insere ou atualiza a quantidade do par (produto, loja).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO estoque_lojas (id_produto, id_loja, quantidade, atualizado_em)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id_produto, id_loja)
		DO UPDATE SET quantidade = EXCLUDED.quantidade, atualizado_em = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ProductID, stock.StoreID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert estoque: %w", err)
	}
	return nil
}

// ListByStore lista o estoque de uma loja, maiores quantidades primeiro.
func (r *StockRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Stock, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM estoque_lojas WHERE id_loja = $1`, storeID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count estoque loja: %w", err)
	}

	query := `
		SELECT id_produto, id_loja, quantidade, atualizado_em
		FROM estoque_lojas WHERE id_loja = $1
		ORDER BY quantidade DESC, id_produto
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storeID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list estoque loja: %w", err)
	}
	defer rows.Close()

	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.StoreID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan estoque: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

// ListByProduct lista o estoque de um produto em todas as lojas.
func (r *StockRepo) ListByProduct(productID string) ([]*entity.Stock, error) {
	query := `
		SELECT id_produto, id_loja, quantidade, atualizado_em
		FROM estoque_lojas WHERE id_produto = $1
		ORDER BY quantidade DESC, id_loja`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list estoque produto: %w", err)
	}
	defer rows.Close()

	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.StoreID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan estoque: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
