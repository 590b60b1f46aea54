package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/transfer"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// TransferHandler trata as rotas de transferências entre lojas (protegidas).
type TransferHandler struct {
	uc *transfer.UseCase
}

// NewTransferHandler constrói o handler.
func NewTransferHandler(uc *transfer.UseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create POST /api/transferencias
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}

	input := transfer.CreateInput{
		OriginStoreID:      in.OriginStoreID,
		DestinationStoreID: in.DestinationStoreID,
		Notes:              in.Notes,
		ActorID:            GetUserID(c),
	}
	for _, line := range in.Lines {
		input.Lines = append(input.Lines, transfer.CreateLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	t, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTransferResponse(t))
}

// List GET /api/transferencias?status=&loja_id=
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginação inválida"})
	}
	page.DefaultPage()

	list, total, err := h.uc.List(c.Context(), repository.TransferFilter{
		Status:  c.Query("status"),
		StoreID: c.Query("loja_id"),
	}, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		resp = append(resp, dto.NewTransferResponse(t))
	}
	return c.JSON(fiber.Map{
		"transferencias": resp,
		"page":           dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// GetByID GET /api/transferencias/:id
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewTransferResponse(t))
}

// Confirm POST /api/transferencias/:id/confirmar
func (h *TransferHandler) Confirm(c *fiber.Ctx) error {
	t, err := h.uc.Confirm(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewTransferResponse(t))
}

// Cancel POST /api/transferencias/:id/cancelar
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelTransferRequest
	// Corpo opcional; sem corpo cancela sem motivo.
	_ = c.BodyParser(&in)

	t, err := h.uc.Cancel(c.Context(), c.Params("id"), GetUserID(c), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewTransferResponse(t))
}
