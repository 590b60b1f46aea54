package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementação do histórico de estoque sobre PostgreSQL
// (usável com pool ou tx). A tabela historico_estoque é append-only:
// este repositório só insere e lê, nunca atualiza ou remove.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = `id, id_produto, id_loja, tipo_movimentacao,
	quantidade_alterada, quantidade_anterior, quantidade_nova,
	referencia, motivo, usuario_id, criado_em`

// Create persiste uma entrada do histórico e preenche o ID gerado.
func (r *LedgerRepo) Create(entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO historico_estoque
			(id_produto, id_loja, tipo_movimentacao, quantidade_alterada,
			 quantidade_anterior, quantidade_nova, referencia, motivo, usuario_id, criado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	reference := nullable(entry.Reference)
	reason := nullable(entry.Reason)
	actor := nullable(entry.ActorID)
	err := r.q.QueryRow(context.Background(), query,
		entry.ProductID, entry.StoreID, entry.Type, entry.QuantityDelta,
		entry.QuantityBefore, entry.QuantityAfter, reference, reason, actor, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("create historico: %w", err)
	}
	return nil
}

// List devolve entradas filtradas, da mais recente para a mais antiga, com o
// total para paginação.
func (r *LedgerRepo) List(filter repository.LedgerFilter, limit, offset int) ([]*entity.LedgerEntry, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		where += fmt.Sprintf(" AND id_produto = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.StoreID != "" {
		where += fmt.Sprintf(" AND id_loja = $%d", pos)
		args = append(args, filter.StoreID)
		pos++
	}
	if filter.Type != "" {
		where += fmt.Sprintf(" AND tipo_movimentacao = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.Reference != "" {
		where += fmt.Sprintf(" AND referencia = $%d", pos)
		args = append(args, filter.Reference)
		pos++
	}
	if filter.From != nil {
		where += fmt.Sprintf(" AND criado_em >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		where += fmt.Sprintf(" AND criado_em <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}

	var total int
	if err := r.q.QueryRow(context.Background(),
		"SELECT count(*) FROM historico_estoque"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count historico: %w", err)
	}

	query := "SELECT " + ledgerColumns + " FROM historico_estoque" + where +
		fmt.Sprintf(" ORDER BY criado_em DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list historico: %w", err)
	}
	defer rows.Close()

	var list []*entity.LedgerEntry
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, entry)
	}
	return list, total, rows.Err()
}

// ListByReference devolve todas as entradas da referência, da mais antiga
// para a mais recente.
func (r *LedgerRepo) ListByReference(reference string) ([]*entity.LedgerEntry, error) {
	query := "SELECT " + ledgerColumns + ` FROM historico_estoque
		WHERE referencia = $1
		ORDER BY criado_em, id`
	rows, err := r.q.Query(context.Background(), query, reference)
	if err != nil {
		return nil, fmt.Errorf("list historico referencia: %w", err)
	}
	defer rows.Close()

	var list []*entity.LedgerEntry
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, entry)
	}
	return list, rows.Err()
}

// LastForPair devolve a entrada mais recente do par (produto, loja), ou nil.
func (r *LedgerRepo) LastForPair(productID, storeID string) (*entity.LedgerEntry, error) {
	query := "SELECT " + ledgerColumns + ` FROM historico_estoque
		WHERE id_produto = $1 AND id_loja = $2
		ORDER BY criado_em DESC, id DESC
		LIMIT 1`
	rows, err := r.q.Query(context.Background(), query, productID, storeID)
	if err != nil {
		return nil, fmt.Errorf("last historico: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	entry, err := scanLedgerEntry(rows)
	if err != nil {
		return nil, err
	}
	return entry, rows.Err()
}

func scanLedgerEntry(rows pgx.Rows) (*entity.LedgerEntry, error) {
	var e entity.LedgerEntry
	var reference, reason, actor *string
	if err := rows.Scan(&e.ID, &e.ProductID, &e.StoreID, &e.Type,
		&e.QuantityDelta, &e.QuantityBefore, &e.QuantityAfter,
		&reference, &reason, &actor, &e.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan historico: %w", err)
	}
	if reference != nil {
		e.Reference = *reference
	}
	if reason != nil {
		e.Reason = *reason
	}
	if actor != nil {
		e.ActorID = *actor
	}
	return &e, nil
}

// nullable converte string vazia em NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
