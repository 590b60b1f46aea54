package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/sales"
)

// SalesHandler trata a baixa de estoque de vendas (protegido).
type SalesHandler struct {
	uc *sales.FinalizeSaleUseCase
}

// NewSalesHandler constrói o handler.
func NewSalesHandler(uc *sales.FinalizeSaleUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Finalize POST /api/vendas/finalizar
func (h *SalesHandler) Finalize(c *fiber.Ctx) error {
	var in dto.FinalizeSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}

	input := sales.FinalizeSaleInput{
		SaleID:  in.SaleID,
		StoreID: in.StoreID,
		ActorID: GetUserID(c),
	}
	for _, line := range in.Lines {
		input.Lines = append(input.Lines, sales.SaleLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	result, err := h.uc.Finalize(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	resp := dto.FinalizeSaleResponse{SaleID: in.SaleID, Total: result.Total}
	for _, e := range result.Entries {
		resp.Movements = append(resp.Movements, dto.NewLedgerEntryResponse(e))
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
