package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// InventoryHandler trata as rotas de movimentações e consulta de estoque
// (protegidas).
type InventoryHandler struct {
	movementUC *inventory.MovementUseCase
	queryUC    *inventory.StockQueryUseCase
}

// NewInventoryHandler constrói o handler.
func NewInventoryHandler(movementUC *inventory.MovementUseCase, queryUC *inventory.StockQueryUseCase) *InventoryHandler {
	return &InventoryHandler{movementUC: movementUC, queryUC: queryUC}
}

// RegisterMovement POST /api/estoque/movimentacoes
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}

	entry, err := h.movementUC.Move(c.Context(), inventory.MovementInput{
		ProductID:     in.ProductID,
		StoreID:       in.StoreID,
		Type:          in.Type,
		QuantityDelta: in.Quantity,
		Reference:     in.Reference,
		Reason:        in.Reason,
		ActorID:       GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLedgerEntryResponse(entry))
}

// History GET /api/estoque/movimentacoes
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	var q dto.HistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	from, err := parseDate(q.From)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "data_inicio inválida"})
	}
	to, err := parseDate(q.To)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "data_fim inválida"})
	}

	entries, total, err := h.queryUC.History(c.Context(), repository.LedgerFilter{
		ProductID: q.ProductID,
		StoreID:   q.StoreID,
		Type:      q.Type,
		From:      from,
		To:        to,
	}, q.Limit, q.Offset)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.NewLedgerEntryResponse(e))
	}
	return c.JSON(fiber.Map{
		"movimentacoes": resp,
		"total":         total,
	})
}

// Current GET /api/estoque/atual?produto_id=&loja_id=
func (h *InventoryHandler) Current(c *fiber.Ctx) error {
	productID := c.Query("produto_id")
	storeID := c.Query("loja_id")
	if productID == "" || storeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "produto_id e loja_id obrigatórios"})
	}
	quantity, err := h.queryUC.Current(c.Context(), productID, storeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"produto_id": productID,
		"loja_id":    storeID,
		"quantidade": quantity,
	})
}

// StoreStock GET /api/estoque/lojas/:id
func (h *InventoryHandler) StoreStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginação inválida"})
	}
	page.DefaultPage()

	list, total, err := h.queryUC.StoreStock(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		resp = append(resp, dto.NewStockResponse(s))
	}
	return c.JSON(fiber.Map{
		"estoque": resp,
		"page":    dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// ProductStock GET /api/estoque/produtos/:id
func (h *InventoryHandler) ProductStock(c *fiber.Ctx) error {
	list, err := h.queryUC.ProductStock(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]dto.StockResponse, 0, len(list))
	var total int64
	for _, s := range list {
		resp = append(resp, dto.NewStockResponse(s))
		total += s.Quantity
	}
	return c.JSON(fiber.Map{
		"estoque":          resp,
		"quantidade_total": total,
	})
}

// parseDate aceita RFC 3339 ou YYYY-MM-DD; vazio devolve nil.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
