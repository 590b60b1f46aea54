package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/sales"
	"github.com/jhoicas/estoque-api/internal/application/transfer"
	"github.com/jhoicas/estoque-api/internal/application/workorder"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/estoque-api/internal/interfaces/http"
)

const (
	prodID  = "aaaaaaaa-0000-0000-0000-000000000001"
	origem  = "bbbbbbbb-0000-0000-0000-000000000001"
	destino = "bbbbbbbb-0000-0000-0000-000000000002"
)

// buildAPI monta a API completa sobre o store em memória, com as mesmas
// rotas e middlewares de produção.
func buildAPI(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SeedProduct(&entity.Product{
		ID:          prodID,
		Description: "Tela iPhone 13",
		SalePrice:   decimal.NewFromFloat(350.00),
		Active:      true,
	})
	store.SeedStore(&entity.Store{ID: origem, Name: "Loja Centro"})
	store.SeedStore(&entity.Store{ID: destino, Name: "Loja Shopping"})

	movementUC := inventory.NewMovementUseCase(store, store.ProductRepository(), store.StoreRepository())
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		MovementUC:  movementUC,
		StockQuery:  inventory.NewStockQueryUseCase(store.StockRepository(), store.LedgerRepository()),
		TransferUC:  transfer.NewUseCase(store, store.TransferRepository(), store.ProductRepository(), store.StoreRepository()),
		SalesUC:     sales.NewFinalizeSaleUseCase(store, store.ProductRepository(), store.StoreRepository()),
		WorkOrderUC: workorder.NewPartsUseCase(store, movementUC),
		JWTSecret:   testJWTSecret,
	})
	return app, store
}

// doJSON dispara uma requisição autenticada com corpo JSON opcional.
func doJSON(t *testing.T, app *fiber.App, method, path, role string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenFor(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRegisterMovement_Entrada(t *testing.T) {
	app, _ := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/estoque/movimentacoes", "estoquista", fiber.Map{
		"produto_id": prodID,
		"loja_id":    origem,
		"tipo":       "entrada",
		"quantidade": 10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, float64(0), body["quantidade_anterior"])
	assert.Equal(t, float64(10), body["quantidade_nova"])
	assert.Equal(t, testUserID, body["usuario_id"])
}

func TestRegisterMovement_PapelSemPermissao(t *testing.T) {
	app, _ := buildAPI(t)
	resp := doJSON(t, app, http.MethodPost, "/api/estoque/movimentacoes", "vendedor", fiber.Map{
		"produto_id": prodID,
		"loja_id":    origem,
		"tipo":       "entrada",
		"quantidade": 10,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRegisterMovement_SaldoInsuficiente(t *testing.T) {
	app, store := buildAPI(t)
	store.SeedStock(prodID, origem, 40)

	resp := doJSON(t, app, http.MethodPost, "/api/estoque/movimentacoes", "admin", fiber.Map{
		"produto_id": prodID,
		"loja_id":    origem,
		"tipo":       "saida",
		"quantidade": -100,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])

	// Saldo intacto.
	stock, err := store.StockRepository().Get(prodID, origem)
	require.NoError(t, err)
	assert.Equal(t, int64(40), stock.Quantity)
}

func TestCurrent(t *testing.T) {
	app, store := buildAPI(t)
	store.SeedStock(prodID, origem, 7)

	resp := doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/estoque/atual?produto_id=%s&loja_id=%s", prodID, origem), "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, float64(7), body["quantidade"])
}

func TestProductStock_SomaLojas(t *testing.T) {
	app, store := buildAPI(t)
	store.SeedStock(prodID, origem, 7)
	store.SeedStock(prodID, destino, 3)

	resp := doJSON(t, app, http.MethodGet, "/api/estoque/produtos/"+prodID, "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, float64(10), body["quantidade_total"])
}

func TestTransferencia_CicloCompleto(t *testing.T) {
	app, store := buildAPI(t)
	store.SeedStock(prodID, origem, 10)

	// Criar
	resp := doJSON(t, app, http.MethodPost, "/api/transferencias", "admin", fiber.Map{
		"loja_origem_id":  origem,
		"loja_destino_id": destino,
		"itens": []fiber.Map{
			{"produto_id": prodID, "quantidade": 6},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode(t, resp)
	assert.Equal(t, "pendente", created["status"])
	transferID := created["id"].(string)

	// Confirmar
	resp = doJSON(t, app, http.MethodPost, "/api/transferencias/"+transferID+"/confirmar", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	confirmed := decode(t, resp)
	assert.Equal(t, "confirmada", confirmed["status"])

	// Saldos movidos
	stockOrigem, err := store.StockRepository().Get(prodID, origem)
	require.NoError(t, err)
	stockDestino, err := store.StockRepository().Get(prodID, destino)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stockOrigem.Quantity)
	assert.Equal(t, int64(6), stockDestino.Quantity)

	// Confirmação repetida vira conflito
	resp = doJSON(t, app, http.MethodPost, "/api/transferencias/"+transferID+"/confirmar", "admin", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestTransferencia_ConfirmarSemSaldo(t *testing.T) {
	app, store := buildAPI(t)
	store.SeedStock(prodID, origem, 2)

	resp := doJSON(t, app, http.MethodPost, "/api/transferencias", "admin", fiber.Map{
		"loja_origem_id":  origem,
		"loja_destino_id": destino,
		"itens": []fiber.Map{
			{"produto_id": prodID, "quantidade": 5},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	transferID := decode(t, resp)["id"].(string)

	resp = doJSON(t, app, http.MethodPost, "/api/transferencias/"+transferID+"/confirmar", "admin", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])

	// Continua pendente.
	resp = doJSON(t, app, http.MethodGet, "/api/transferencias/"+transferID, "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pendente", decode(t, resp)["status"])
}

func TestVendas_Finalizar(t *testing.T) {
	app, store := buildAPI(t)
	store.SeedStock(prodID, origem, 10)

	resp := doJSON(t, app, http.MethodPost, "/api/vendas/finalizar", "vendedor", fiber.Map{
		"venda_id": "dddddddd-0000-0000-0000-000000000001",
		"loja_id":  origem,
		"itens": []fiber.Map{
			{"produto_id": prodID, "quantidade": 2},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "700", body["total"])

	stock, err := store.StockRepository().Get(prodID, origem)
	require.NoError(t, err)
	assert.Equal(t, int64(8), stock.Quantity)
}

func TestOrdemServico_ConsumoECancelamento(t *testing.T) {
	app, store := buildAPI(t)
	store.SeedStock(prodID, origem, 5)
	osID := "eeeeeeee-0000-0000-0000-000000000001"

	resp := doJSON(t, app, http.MethodPost, "/api/ordens-servico/pecas", "tecnico", fiber.Map{
		"ordem_servico_id": osID,
		"produto_id":       prodID,
		"loja_id":          origem,
		"quantidade":       2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/ordens-servico/"+osID+"/cancelar", "tecnico", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	stock, err := store.StockRepository().Get(prodID, origem)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stock.Quantity)
}

func TestHistorico_FiltraPorTipo(t *testing.T) {
	app, _ := buildAPI(t)

	for _, q := range []int{5, 8} {
		resp := doJSON(t, app, http.MethodPost, "/api/estoque/movimentacoes", "admin", fiber.Map{
			"produto_id": prodID,
			"loja_id":    origem,
			"tipo":       "entrada",
			"quantidade": q,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
	resp := doJSON(t, app, http.MethodPost, "/api/estoque/movimentacoes", "admin", fiber.Map{
		"produto_id": prodID,
		"loja_id":    origem,
		"tipo":       "saida",
		"quantidade": -3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/estoque/movimentacoes?tipo=entrada", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, float64(2), body["total"])
}

func TestRotasExigemToken(t *testing.T) {
	app, _ := buildAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/transferencias/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
