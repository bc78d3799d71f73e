package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grupond/compras-api/internal/application/auth"
	"github.com/grupond/compras-api/internal/application/requests"
	"github.com/grupond/compras-api/internal/application/usecase"
	"github.com/grupond/compras-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	UserUC      *usecase.UserUseCase
	ItemUC      *usecase.ItemUseCase
	RequestUC   *requests.UseCase
	LogUC       *usecase.LogUseCase
	DashboardUC *usecase.DashboardUseCase
	JWTSecret   string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (protegido; a política restringe a ADM_MASTER nas escritas)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", RequireRole(entity.RoleAdmMaster), userHandler.Create)
	users.Put("/:id", RequireRole(entity.RoleAdmMaster), userHandler.Update)
	users.Post("/:id/reset-password", RequireRole(entity.RoleAdmMaster), userHandler.ResetPassword)
	users.Delete("/:id", RequireRole(entity.RoleAdmMaster), userHandler.Delete)

	// Inventory (protegido)
	inventory := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ItemUC)
	inventory.Get("/", inventoryHandler.List)
	inventory.Get("/:id", inventoryHandler.GetByID)
	inventory.Post("/", inventoryHandler.Create)
	inventory.Put("/:id", inventoryHandler.Update)
	inventory.Post("/:id/withdraw", inventoryHandler.Withdraw)
	inventory.Delete("/:id", inventoryHandler.Delete)

	// Requests (protegido)
	reqs := protected.Group("/requests")
	requestHandler := NewRequestHandler(deps.RequestUC)
	reqs.Get("/", requestHandler.List)
	reqs.Get("/:id", requestHandler.GetByID)
	reqs.Get("/:id/pdf", requestHandler.PDF)
	reqs.Post("/", requestHandler.Create)
	reqs.Put("/:id", requestHandler.UpdateStatus)

	// Logs (protegido)
	logHandler := NewLogHandler(deps.LogUC)
	protected.Get("/logs", logHandler.List)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/metrics", dashboardHandler.Metrics)

	// Reports CSV (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ItemUC, deps.RequestUC, deps.LogUC)
	reports.Get("/stock/csv", reportHandler.Stock)
	reports.Get("/orders/csv", reportHandler.Orders)
	reports.Get("/logs/csv", reportHandler.Logs)
}
