package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/sales"
	"github.com/jhoicas/estoque-api/internal/application/transfer"
	"github.com/jhoicas/estoque-api/internal/application/workorder"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	MovementUC  *inventory.MovementUseCase
	StockQuery  *inventory.StockQueryUseCase
	TransferUC  *transfer.UseCase
	SalesUC     *sales.FinalizeSaleUseCase
	WorkOrderUC *workorder.PartsUseCase
	JWTSecret   string
}

// Router registra as rotas da API. Tudo exige Bearer Token: não existe
// escrita nem leitura de estoque anônima.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Estoque: consultas e movimentações
	estoque := api.Group("/estoque")
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.StockQuery)
	estoque.Get("/atual", inventoryHandler.Current)
	estoque.Get("/lojas/:id", inventoryHandler.StoreStock)
	estoque.Get("/produtos/:id", inventoryHandler.ProductStock)
	estoque.Get("/movimentacoes", inventoryHandler.History)
	// Movimentação manual (inclui ajustes) é restrita por papel; vendas e
	// ordens de serviço têm rotas próprias sem essa restrição.
	estoque.Post("/movimentacoes", RequireRole("admin", "estoquista"), inventoryHandler.RegisterMovement)

	// Transferências entre lojas
	transferencias := api.Group("/transferencias")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transferencias.Post("/", transferHandler.Create)
	transferencias.Get("/", transferHandler.List)
	transferencias.Get("/:id", transferHandler.GetByID)
	transferencias.Post("/:id/confirmar", transferHandler.Confirm)
	transferencias.Post("/:id/cancelar", transferHandler.Cancel)

	// Vendas: baixa de estoque
	vendas := api.Group("/vendas")
	salesHandler := NewSalesHandler(deps.SalesUC)
	vendas.Post("/finalizar", salesHandler.Finalize)

	// Ordens de serviço: peças
	ordens := api.Group("/ordens-servico")
	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC)
	ordens.Post("/pecas", workOrderHandler.ConsumePart)
	ordens.Post("/:id/cancelar", workOrderHandler.CancelWorkOrder)
}
