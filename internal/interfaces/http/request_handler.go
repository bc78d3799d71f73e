package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/grupond/compras-api/internal/application/dto"
	"github.com/grupond/compras-api/internal/application/requests"
)

// RequestHandler trata as solicitações de compra (protegido).
type RequestHandler struct {
	uc *requests.UseCase
}

// NewRequestHandler constrói o handler.
func NewRequestHandler(uc *requests.UseCase) *RequestHandler {
	return &RequestHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir solicitação de compra (item existente ou avulso)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRequestRequest  true  "Dados da solicitação"
// @Success      201   {object}  dto.RequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter solicitação por ID
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da solicitação"
// @Success      200  {object}  dto.RequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitação não encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar solicitações (mais recentes primeiro)
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.RequestListResponse
// @Router       /api/requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Transicionar status da solicitação
// @Description  PENDENTE → APROVADO | REJEITADO; APROVADO → COMPRADO. A aprovação
// @Description  de item avulso cadastra o item; COMPRADO incorpora a quantidade ao estoque.
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da solicitação"
// @Param        body  body  dto.UpdateRequestStatusRequest  true  "Novo status"
// @Success      200   {object}  dto.RequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [put]
func (h *RequestHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateRequestStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.UpdateStatus(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Baixar a ordem de compra em PDF
// @Tags         requests
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID da solicitação"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/pdf [get]
func (h *RequestHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := h.uc.GeneratePDF(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=pedido_%s.pdf", id))
	return c.Send(data)
}
