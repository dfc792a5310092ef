package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soltec-andina/facturacion-api/internal/application/auth"
	appbilling "github.com/soltec-andina/facturacion-api/internal/application/billing"
	"github.com/soltec-andina/facturacion-api/internal/application/catalog"
	"github.com/soltec-andina/facturacion-api/internal/application/ingestion"
	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	InvoiceUC    *appbilling.InvoiceUseCase
	StatsUC      *appbilling.StatisticsUseCase
	ReportUC     *appbilling.AgingReportUseCase
	IngestionUC  *ingestion.UseCase
	ProviderUC   *catalog.ProviderUseCase
	CostCenterUC *catalog.CostCenterUseCase
	ProjectUC    *catalog.ProjectUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
//
// Política de roles:
//   - lecturas: cualquier usuario autenticado
//   - mutaciones de facturas y transiciones de estado: admin y contador
//   - ingesta de documentos: los tres roles (el operador digita en campo)
//   - catálogos: mutaciones solo admin y contador; borrado solo admin
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", MetricsHandler())

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	accounting := RequireRole(entity.RoleAdmin, entity.RoleContador)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Facturas
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.StatsUC, deps.ReportUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/statistics", invoiceHandler.Statistics)
	invoices.Get("/dashboard", invoiceHandler.Dashboard)
	invoices.Get("/aging-report", accounting, invoiceHandler.AgingReport)
	invoices.Post("/", accounting, invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", accounting, invoiceHandler.Update)
	invoices.Patch("/:id/status", accounting, invoiceHandler.UpdateStatus)
	invoices.Delete("/:id", adminOnly, invoiceHandler.Delete)

	// Ingesta de documentos
	drafts := protected.Group("/drafts")
	ingestionHandler := NewIngestionHandler(deps.IngestionUC)
	drafts.Post("/", ingestionHandler.Upload)
	drafts.Get("/", ingestionHandler.List)
	drafts.Get("/:id", ingestionHandler.GetByID)
	drafts.Post("/:id/retry", ingestionHandler.Retry)
	drafts.Post("/:id/commit", accounting, ingestionHandler.Commit)
	drafts.Post("/:id/discard", ingestionHandler.Discard)

	// Proveedores
	providers := protected.Group("/providers")
	providerHandler := NewProviderHandler(deps.ProviderUC)
	providers.Get("/", providerHandler.List)
	providers.Post("/", accounting, providerHandler.Create)
	providers.Get("/:id", providerHandler.GetByID)
	providers.Put("/:id", accounting, providerHandler.Update)
	providers.Delete("/:id", adminOnly, providerHandler.Delete)

	// Centros de costos
	costCenters := protected.Group("/cost-centers")
	costCenterHandler := NewCostCenterHandler(deps.CostCenterUC)
	costCenters.Get("/", costCenterHandler.List)
	costCenters.Post("/", accounting, costCenterHandler.Create)
	costCenters.Get("/:id", costCenterHandler.GetByID)
	costCenters.Put("/:id", accounting, costCenterHandler.Update)
	costCenters.Delete("/:id", adminOnly, costCenterHandler.Delete)

	// Proyectos
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Get("/", projectHandler.List)
	projects.Post("/", accounting, projectHandler.Create)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Put("/:id", accounting, projectHandler.Update)
	projects.Delete("/:id", adminOnly, projectHandler.Delete)
}
