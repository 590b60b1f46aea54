package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

func draft(tipo string, delta int64) entity.LedgerDraft {
	return entity.LedgerDraft{
		ProductID:     "prod-1",
		StoreID:       "loja-1",
		Type:          tipo,
		QuantityDelta: delta,
		ActorID:       "user-1",
	}
}

func TestNewLedgerEntry_AritmeticaFecha(t *testing.T) {
	now := time.Now()
	entry, err := entity.NewLedgerEntry(draft(entity.MovementTypeEntrada, 10), 40, now)
	require.NoError(t, err)

	assert.Equal(t, int64(40), entry.QuantityBefore)
	assert.Equal(t, int64(10), entry.QuantityDelta)
	assert.Equal(t, int64(50), entry.QuantityAfter)
	assert.Equal(t, entry.QuantityBefore+entry.QuantityDelta, entry.QuantityAfter)
	assert.Equal(t, now, entry.CreatedAt)
}

func TestNewLedgerEntry_SaldoNuncaNegativo(t *testing.T) {
	// Saída de 100 com saldo 40: rejeitada, saldo intacto.
	_, err := entity.NewLedgerEntry(draft(entity.MovementTypeSaida, -100), 40, time.Now())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Saída exata do saldo zera sem erro.
	entry, err := entity.NewLedgerEntry(draft(entity.MovementTypeSaida, -40), 40, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), entry.QuantityAfter)
}

func TestNewLedgerEntry_DeltaZeroRejeitado(t *testing.T) {
	_, err := entity.NewLedgerEntry(draft(entity.MovementTypeAjuste, 0), 10, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidMovement)
}

func TestNewLedgerEntry_TipoDesconhecidoRejeitado(t *testing.T) {
	_, err := entity.NewLedgerEntry(draft("emprestimo", 5), 10, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidMovement)
}

func TestNewLedgerEntry_IdentificadoresObrigatorios(t *testing.T) {
	d := draft(entity.MovementTypeEntrada, 5)
	d.ProductID = ""
	_, err := entity.NewLedgerEntry(d, 10, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidMovement)

	d = draft(entity.MovementTypeEntrada, 5)
	d.StoreID = ""
	_, err = entity.NewLedgerEntry(d, 10, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidMovement)
}

func TestNewLedgerEntry_Encadeamento(t *testing.T) {
	// O QuantityAfter de cada entrada vira o before da próxima.
	now := time.Now()
	saldo := int64(0)
	deltas := []int64{10, -3, 8, -15}
	for _, delta := range deltas {
		tipo := entity.MovementTypeEntrada
		if delta < 0 {
			tipo = entity.MovementTypeSaida
		}
		entry, err := entity.NewLedgerEntry(draft(tipo, delta), saldo, now)
		require.NoError(t, err)
		assert.Equal(t, saldo, entry.QuantityBefore)
		saldo = entry.QuantityAfter
	}
	assert.Equal(t, int64(0), saldo)
}

func TestValidMovementType(t *testing.T) {
	for _, tipo := range []string{
		entity.MovementTypeEntrada, entity.MovementTypeSaida, entity.MovementTypeAjuste,
		entity.MovementTypeDevolucao, entity.MovementTypeTransferenciaSaida, entity.MovementTypeTransferenciaEntrada,
	} {
		assert.True(t, entity.ValidMovementType(tipo), tipo)
	}
	assert.False(t, entity.ValidMovementType(""))
	assert.False(t, entity.ValidMovementType("ENTRADA"))
}
