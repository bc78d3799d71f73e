package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grupond/compras-api/internal/application/usecase"
)

// LogHandler trata a leitura da trilha de auditoria (protegido).
type LogHandler struct {
	uc *usecase.LogUseCase
}

// NewLogHandler constrói o handler.
func NewLogHandler(uc *usecase.LogUseCase) *LogHandler {
	return &LogHandler{uc: uc}
}

// List godoc
// @Summary      Listar a trilha de auditoria (mais recentes primeiro)
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.LogListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/logs [get]
func (h *LogHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetActor(c), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
