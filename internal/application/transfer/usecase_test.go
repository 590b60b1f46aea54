package transfer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/transfer"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
)

const (
	prodA   = "aaaaaaaa-0000-0000-0000-000000000001"
	prodB   = "aaaaaaaa-0000-0000-0000-000000000002"
	origem  = "bbbbbbbb-0000-0000-0000-000000000001"
	destino = "bbbbbbbb-0000-0000-0000-000000000002"
	actorID = "cccccccc-0000-0000-0000-000000000001"
)

func newFixture(t *testing.T) (*memory.Store, *transfer.UseCase) {
	t.Helper()
	store := memory.NewStore()
	store.SeedProduct(&entity.Product{ID: prodA, Description: "Bateria iPhone 12", Active: true})
	store.SeedProduct(&entity.Product{ID: prodB, Description: "Conector de carga", Active: true})
	store.SeedStore(&entity.Store{ID: origem, Name: "Loja Centro"})
	store.SeedStore(&entity.Store{ID: destino, Name: "Loja Shopping"})
	uc := transfer.NewUseCase(store, store.TransferRepository(), store.ProductRepository(), store.StoreRepository())
	return store, uc
}

func qty(t *testing.T, store *memory.Store, productID, storeID string) int64 {
	t.Helper()
	stock, err := store.StockRepository().Get(productID, storeID)
	require.NoError(t, err)
	return stock.Quantity
}

func createTransfer(t *testing.T, uc *transfer.UseCase, lines ...transfer.CreateLineInput) *entity.Transfer {
	t.Helper()
	tr, err := uc.Create(context.Background(), transfer.CreateInput{
		OriginStoreID:      origem,
		DestinationStoreID: destino,
		ActorID:            actorID,
		Lines:              lines,
	})
	require.NoError(t, err)
	return tr
}

func TestCreate_PendenteSemEfeitoNoEstoque(t *testing.T) {
	store, uc := newFixture(t)
	store.SeedStock(prodA, origem, 10)

	tr := createTransfer(t, uc, transfer.CreateLineInput{ProductID: prodA, Quantity: 4})

	assert.Equal(t, entity.TransferStatusPendente, tr.Status)
	assert.Len(t, tr.Lines, 1)
	// Pendente não reserva nem move nada.
	assert.Equal(t, int64(10), qty(t, store, prodA, origem))
	assert.Equal(t, int64(0), qty(t, store, prodA, destino))
}

func TestCreate_SemSaldoTambemAceita(t *testing.T) {
	// O saldo pode mudar até a confirmação; criar não valida saldo.
	_, uc := newFixture(t)
	tr := createTransfer(t, uc, transfer.CreateLineInput{ProductID: prodA, Quantity: 99})
	assert.Equal(t, entity.TransferStatusPendente, tr.Status)
}

func TestCreate_Validacoes(t *testing.T) {
	_, uc := newFixture(t)
	ctx := context.Background()

	// Mesma loja de origem e destino.
	_, err := uc.Create(ctx, transfer.CreateInput{
		OriginStoreID:      origem,
		DestinationStoreID: origem,
		ActorID:            actorID,
		Lines:              []transfer.CreateLineInput{{ProductID: prodA, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sem itens.
	_, err = uc.Create(ctx, transfer.CreateInput{
		OriginStoreID:      origem,
		DestinationStoreID: destino,
		ActorID:            actorID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Produto inexistente.
	_, err = uc.Create(ctx, transfer.CreateInput{
		OriginStoreID:      origem,
		DestinationStoreID: destino,
		ActorID:            actorID,
		Lines:              []transfer.CreateLineInput{{ProductID: "ffffffff-0000-0000-0000-000000000009", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirm_MoveSaldoEGravaHistorico(t *testing.T) {
	store, uc := newFixture(t)
	store.SeedStock(prodA, origem, 10)

	tr := createTransfer(t, uc, transfer.CreateLineInput{ProductID: prodA, Quantity: 6})
	confirmed, err := uc.Confirm(context.Background(), tr.ID, actorID)
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusConfirmada, confirmed.Status)
	assert.Equal(t, int64(4), qty(t, store, prodA, origem))
	assert.Equal(t, int64(6), qty(t, store, prodA, destino))

	// Duas entradas no histórico com referência à transferência:
	// transferencia_saida na origem e transferencia_entrada no destino.
	entries, total, err := store.LedgerRepository().List(repository.LedgerFilter{Reference: tr.ID}, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	tipos := map[string]string{}
	for _, e := range entries {
		tipos[e.Type] = e.StoreID
	}
	assert.Equal(t, origem, tipos[entity.MovementTypeTransferenciaSaida])
	assert.Equal(t, destino, tipos[entity.MovementTypeTransferenciaEntrada])
}

func TestConfirm_MultiplasLinhasTudoOuNada(t *testing.T) {
	store, uc := newFixture(t)
	store.SeedStock(prodA, origem, 10)
	store.SeedStock(prodB, origem, 1) // insuficiente para a segunda linha

	tr := createTransfer(t, uc,
		transfer.CreateLineInput{ProductID: prodA, Quantity: 5},
		transfer.CreateLineInput{ProductID: prodB, Quantity: 3},
	)
	_, err := uc.Confirm(context.Background(), tr.ID, actorID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), prodB)

	// Nada mudou em nenhuma das quatro posições.
	assert.Equal(t, int64(10), qty(t, store, prodA, origem))
	assert.Equal(t, int64(0), qty(t, store, prodA, destino))
	assert.Equal(t, int64(1), qty(t, store, prodB, origem))
	assert.Equal(t, int64(0), qty(t, store, prodB, destino))

	// E a transferência continua pendente: pode ser confirmada depois de
	// repor o saldo.
	atual, err := uc.Get(context.Background(), tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusPendente, atual.Status)

	store.SeedStock(prodB, origem, 3)
	_, err = uc.Confirm(context.Background(), tr.ID, actorID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), qty(t, store, prodA, destino))
	assert.Equal(t, int64(3), qty(t, store, prodB, destino))
}

func TestConfirm_RepetidaRejeitada(t *testing.T) {
	store, uc := newFixture(t)
	store.SeedStock(prodA, origem, 10)

	tr := createTransfer(t, uc, transfer.CreateLineInput{ProductID: prodA, Quantity: 2})
	_, err := uc.Confirm(context.Background(), tr.ID, actorID)
	require.NoError(t, err)

	_, err = uc.Confirm(context.Background(), tr.ID, actorID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// O saldo não foi movido duas vezes.
	assert.Equal(t, int64(8), qty(t, store, prodA, origem))
	assert.Equal(t, int64(2), qty(t, store, prodA, destino))
}

func TestCancel_SoMudaStatus(t *testing.T) {
	store, uc := newFixture(t)
	store.SeedStock(prodA, origem, 10)

	tr := createTransfer(t, uc, transfer.CreateLineInput{ProductID: prodA, Quantity: 4})
	cancelled, err := uc.Cancel(context.Background(), tr.ID, actorID, "pedido duplicado")
	require.NoError(t, err)

	assert.Equal(t, entity.TransferStatusCancelada, cancelled.Status)
	require.NotNil(t, cancelled.CancelReason)
	assert.Equal(t, "pedido duplicado", *cancelled.CancelReason)
	assert.Equal(t, int64(10), qty(t, store, prodA, origem))

	// Cancelada é terminal.
	_, err = uc.Confirm(context.Background(), tr.ID, actorID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = uc.Cancel(context.Background(), tr.ID, actorID, "de novo")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestGet_Inexistente(t *testing.T) {
	_, uc := newFixture(t)
	_, err := uc.Get(context.Background(), "ffffffff-0000-0000-0000-000000000009")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_FiltraPorStatusELoja(t *testing.T) {
	store, uc := newFixture(t)
	store.SeedStock(prodA, origem, 10)

	t1 := createTransfer(t, uc, transfer.CreateLineInput{ProductID: prodA, Quantity: 1})
	t2 := createTransfer(t, uc, transfer.CreateLineInput{ProductID: prodA, Quantity: 2})
	_, err := uc.Confirm(context.Background(), t1.ID, actorID)
	require.NoError(t, err)

	pendentes, total, err := uc.List(context.Background(), repository.TransferFilter{Status: entity.TransferStatusPendente}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, pendentes, 1)
	assert.Equal(t, t2.ID, pendentes[0].ID)

	daLoja, total, err := uc.List(context.Background(), repository.TransferFilter{StoreID: destino}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, daLoja, 2)
}
