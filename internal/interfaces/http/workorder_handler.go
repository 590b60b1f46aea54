package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/workorder"
)

// WorkOrderHandler trata o consumo e a devolução de peças de ordens de
// serviço (protegido). A OS em si vive em outro sistema; aqui só passa o
// efeito dela no estoque.
type WorkOrderHandler struct {
	uc *workorder.PartsUseCase
}

// NewWorkOrderHandler constrói o handler.
func NewWorkOrderHandler(uc *workorder.PartsUseCase) *WorkOrderHandler {
	return &WorkOrderHandler{uc: uc}
}

// ConsumePart POST /api/ordens-servico/pecas
func (h *WorkOrderHandler) ConsumePart(c *fiber.Ctx) error {
	var in dto.ConsumePartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}

	entry, err := h.uc.Consume(c.Context(), workorder.ConsumeInput{
		WorkOrderID: in.WorkOrderID,
		ProductID:   in.ProductID,
		StoreID:     in.StoreID,
		Quantity:    in.Quantity,
		ActorID:     GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLedgerEntryResponse(entry))
}

// CancelWorkOrder POST /api/ordens-servico/:id/cancelar
func (h *WorkOrderHandler) CancelWorkOrder(c *fiber.Ctx) error {
	entries, err := h.uc.CancelWorkOrder(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.NewLedgerEntryResponse(e))
	}
	return c.JSON(fiber.Map{"devolucoes": resp})
}
