package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/sklad-pro/internal/application/auth"
	"github.com/tu-usuario/sklad-pro/internal/application/operations"
	"github.com/tu-usuario/sklad-pro/internal/application/report"
	"github.com/tu-usuario/sklad-pro/internal/application/stats"
	"github.com/tu-usuario/sklad-pro/internal/application/usecase"
	"github.com/tu-usuario/sklad-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	OrganizationUC *usecase.OrganizationUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	ItemUC         *usecase.ItemUseCase
	DocumentUC     *usecase.DocumentUseCase
	InviteUC       *usecase.InviteUseCase
	SubmitUC       *operations.SubmitUseCase
	HistoryUC      *operations.HistoryUseCase
	ReportUC       *report.UseCase
	Recomputer     *stats.Recomputer
	JWTSecret      string
	InviteQRSize   int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Organizations (protegido; crear no exige pertenencia previa)
	organizations := protected.Group("/organizations")
	organizationHandler := NewOrganizationHandler(deps.OrganizationUC)
	organizations.Post("/", organizationHandler.Create)
	organizations.Get("/", organizationHandler.List)
	organizations.Get("/:id", organizationHandler.GetByID)
	organizations.Put("/:id", RequireRole(entity.RoleAdmin), organizationHandler.Update)
	organizations.Delete("/:id", RequireRole(entity.RoleAdmin), organizationHandler.Delete)

	// Invites: aceptar solo pide sesión; el resto exige organización y rol admin
	invites := protected.Group("/invites")
	inviteHandler := NewInviteHandler(deps.InviteUC, deps.InviteQRSize)
	invites.Post("/accept", inviteHandler.Accept)
	invites.Post("/", RequireOrganization(), RequireRole(entity.RoleAdmin), inviteHandler.Create)
	invites.Get("/", RequireOrganization(), RequireRole(entity.RoleAdmin), inviteHandler.List)
	invites.Get("/:token/qr", RequireOrganization(), RequireRole(entity.RoleAdmin), inviteHandler.QRCode)

	// El resto de la API opera sobre recursos de la organización del token
	org := protected.Group("/", RequireOrganization())

	// Warehouses
	warehouses := org.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), warehouseHandler.Update)
	warehouses.Delete("/:id", RequireRole(entity.RoleAdmin), warehouseHandler.Delete)

	// Items (nomenclatura)
	items := org.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.Recomputer)
	items.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/scan", itemHandler.Scan)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), itemHandler.Update)
	items.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), itemHandler.Delete)

	// Documents
	documents := org.Group("/documents")
	documentHandler := NewDocumentHandler(deps.DocumentUC, deps.Recomputer)
	documents.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), documentHandler.Create)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Get("/:id/xml", documentHandler.ExportXML)
	documents.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), documentHandler.Update)
	documents.Put("/:id/items", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), documentHandler.ReplaceItems)
	documents.Delete("/:id", RequireRole(entity.RoleAdmin), documentHandler.Delete)

	// Operations (validar es libre para cualquier rol con sesión)
	opsGroup := org.Group("/operations")
	operationHandler := NewOperationHandler(deps.SubmitUC, deps.HistoryUC, deps.Recomputer)
	opsGroup.Post("/validate", operationHandler.Validate)
	opsGroup.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleOperador), operationHandler.Submit)
	opsGroup.Get("/", operationHandler.List)

	// Stats
	statsGroup := org.Group("/stats")
	statsHandler := NewStatsHandler(deps.Recomputer)
	statsGroup.Get("/warehouses/:id", statsHandler.Warehouse)
	statsGroup.Get("/organization", statsHandler.Organization)

	// Reports
	reports := org.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/warehouses/:id/inventory.pdf", reportHandler.InventoryPDF)
}
