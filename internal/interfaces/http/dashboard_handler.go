package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grupond/compras-api/internal/application/usecase"
)

// DashboardHandler trata os agregados do painel inicial (protegido).
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Metrics godoc
// @Summary      Métricas do painel (itens críticos, pendências, valor do estoque)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardMetricsResponse
// @Router       /api/dashboard/metrics [get]
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	out, err := h.uc.Metrics(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
