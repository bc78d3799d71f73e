package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/grupond/compras-api/internal/application/dto"
	"github.com/grupond/compras-api/internal/application/requests"
	"github.com/grupond/compras-api/internal/application/usecase"
	"github.com/grupond/compras-api/internal/interfaces/report"
)

// exportLimit teto de linhas por exportação.
const exportLimit = 10000

// ReportHandler trata as exportações CSV (protegido).
type ReportHandler struct {
	itemUC    *usecase.ItemUseCase
	requestUC *requests.UseCase
	logUC     *usecase.LogUseCase
}

// NewReportHandler constrói o handler.
func NewReportHandler(itemUC *usecase.ItemUseCase, requestUC *requests.UseCase, logUC *usecase.LogUseCase) *ReportHandler {
	return &ReportHandler{itemUC: itemUC, requestUC: requestUC, logUC: logUC}
}

// Stock godoc
// @Summary      Exportar relatório de estoque em CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  binary
// @Router       /api/reports/stock/csv [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	out, err := h.itemUC.List(c.Context(), dto.PageRequest{Limit: exportLimit})
	if err != nil {
		return writeError(c, err)
	}
	data, err := report.StockCSV(out.Items)
	if err != nil {
		return writeError(c, err)
	}
	return sendCSV(c, report.Filename("Estoque", time.Now()), data)
}

// Orders godoc
// @Summary      Exportar relatório de solicitações em CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  binary
// @Router       /api/reports/orders/csv [get]
func (h *ReportHandler) Orders(c *fiber.Ctx) error {
	out, err := h.requestUC.List(c.Context(), dto.PageRequest{Limit: exportLimit})
	if err != nil {
		return writeError(c, err)
	}
	data, err := report.OrdersCSV(out.Items)
	if err != nil {
		return writeError(c, err)
	}
	return sendCSV(c, report.Filename("Pedidos", time.Now()), data)
}

// Logs godoc
// @Summary      Exportar relatório da trilha de auditoria em CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/logs/csv [get]
func (h *ReportHandler) Logs(c *fiber.Ctx) error {
	out, err := h.logUC.List(c.Context(), GetActor(c), dto.PageRequest{Limit: exportLimit})
	if err != nil {
		return writeError(c, err)
	}
	data, err := report.LogsCSV(out.Items)
	if err != nil {
		return writeError(c, err)
	}
	return sendCSV(c, report.Filename("Logs", time.Now()), data)
}

func sendCSV(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(data)
}
