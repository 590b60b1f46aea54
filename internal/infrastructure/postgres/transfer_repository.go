package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementação de TransferRepository sobre PostgreSQL
// (usável com pool ou tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, loja_origem_id, loja_destino_id, status, observacoes,
	criado_por, criado_em, confirmado_por, confirmado_em,
	cancelado_por, cancelado_em, motivo_cancelamento`

// Create grava a transferência e seus itens.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	ctx := context.Background()
	query := `
		INSERT INTO transferencias
			(id, loja_origem_id, loja_destino_id, status, observacoes, criado_por, criado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.OriginStoreID, t.DestinationStoreID, t.Status,
		nullable(t.Notes), t.CreatedBy, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transferencia: %w", err)
	}

	lineQuery := `
		INSERT INTO transferencias_itens (id, transferencia_id, produto_id, quantidade, criado_em)
		VALUES ($1, $2, $3, $4, $5)`
	for _, line := range t.Lines {
		if _, err := r.q.Exec(ctx, lineQuery,
			line.ID, line.TransferID, line.ProductID, line.Quantity, line.CreatedAt); err != nil {
			return fmt.Errorf("create item transferencia: %w", err)
		}
	}
	return nil
}

// GetByID devolve a transferência com itens, ou nil se não existir.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	return r.get(id, false)
}

// GetForUpdate lê a transferência bloqueando a linha (SELECT FOR UPDATE),
// para serializar confirmações/cancelamentos concorrentes.
func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.get(id, true)
}

func (r *TransferRepo) get(id string, forUpdate bool) (*entity.Transfer, error) {
	ctx := context.Background()
	query := "SELECT " + transferColumns + " FROM transferencias WHERE id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}
	t, err := scanTransfer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transferencia: %w", err)
	}

	if err := r.loadLines(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateStatus grava a mudança de status e os metadados de confirmação ou
// cancelamento. Itens nunca mudam depois da criação.
func (r *TransferRepo) UpdateStatus(t *entity.Transfer) error {
	query := `
		UPDATE transferencias
		SET status = $2,
		    confirmado_por = $3, confirmado_em = $4,
		    cancelado_por = $5, cancelado_em = $6, motivo_cancelamento = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Status,
		t.ConfirmedBy, t.ConfirmedAt,
		t.CancelledBy, t.CancelledAt, t.CancelReason,
	)
	if err != nil {
		return fmt.Errorf("update status transferencia: %w", err)
	}
	return nil
}

// List devolve transferências filtradas, da mais recente para a mais antiga.
// StoreID casa origem ou destino (visão "transferências da loja").
func (r *TransferRepo) List(filter repository.TransferFilter, limit, offset int) ([]*entity.Transfer, int, error) {
	ctx := context.Background()
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.StoreID != "" {
		where += fmt.Sprintf(" AND (loja_origem_id = $%d OR loja_destino_id = $%d)", pos, pos)
		args = append(args, filter.StoreID)
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx,
		"SELECT count(*) FROM transferencias"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transferencias: %w", err)
	}

	query := "SELECT " + transferColumns + " FROM transferencias" + where +
		fmt.Sprintf(" ORDER BY criado_em DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transferencias: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transferencia: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, t := range list {
		if err := r.loadLines(ctx, t); err != nil {
			return nil, 0, err
		}
	}
	return list, total, nil
}

func (r *TransferRepo) loadLines(ctx context.Context, t *entity.Transfer) error {
	query := `
		SELECT id, transferencia_id, produto_id, quantidade, criado_em
		FROM transferencias_itens
		WHERE transferencia_id = $1
		ORDER BY criado_em, id`
	rows, err := r.q.Query(ctx, query, t.ID)
	if err != nil {
		return fmt.Errorf("list itens transferencia: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line entity.TransferLine
		if err := rows.Scan(&line.ID, &line.TransferID, &line.ProductID, &line.Quantity, &line.CreatedAt); err != nil {
			return fmt.Errorf("scan item transferencia: %w", err)
		}
		t.Lines = append(t.Lines, line)
	}
	return rows.Err()
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var notes *string
	if err := row.Scan(&t.ID, &t.OriginStoreID, &t.DestinationStoreID, &t.Status, &notes,
		&t.CreatedBy, &t.CreatedAt, &t.ConfirmedBy, &t.ConfirmedAt,
		&t.CancelledBy, &t.CancelledAt, &t.CancelReason); err != nil {
		return nil, err
	}
	if notes != nil {
		t.Notes = *notes
	}
	return &t, nil
}
