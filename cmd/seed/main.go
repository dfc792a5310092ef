// Seed de datos de demostración. Se ejecuta solo de forma explícita:
//
//	go run ./cmd/seed
//
// La aplicación nunca siembra datos por sí sola; un store vacío es un estado
// válido y las estadísticas sobre él devuelven ceros, no datos de ejemplo.
package main

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
	"github.com/soltec-andina/facturacion-api/internal/infrastructure/postgres"
	"github.com/soltec-andina/facturacion-api/pkg/config"
	"github.com/soltec-andina/facturacion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)
	costCenterRepo := postgres.NewCostCenterRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)

	now := time.Now()

	// Usuarios (password: el nombre del rol)
	for _, u := range []struct{ email, name, role string }{
		{"admin@soltec.co", "Administrador", entity.RoleAdmin},
		{"contadora@soltec.co", "Gloria Pérez", entity.RoleContador},
		{"operador@soltec.co", "Julián Ríos", entity.RoleOperador},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.role), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash de password")
		}
		err = userRepo.Create(ctx, &entity.User{
			Email:        u.email,
			PasswordHash: string(hash),
			Name:         u.name,
			Role:         u.role,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			log.Warn().Err(err).Str("email", u.email).Msg("usuario no sembrado (¿ya existe?)")
			continue
		}
		log.Info().Str("email", u.email).Str("role", u.role).Msg("usuario sembrado")
	}

	// Proveedores
	providers := []*entity.Provider{
		{Name: "Paneles del Caribe SAS", TaxID: "900111222-3", Email: "ventas@panelescaribe.co", CreatedAt: now, UpdatedAt: now},
		{Name: "Inversores Andinos Ltda", TaxID: "900444555-6", Email: "facturacion@invandinos.co", CreatedAt: now, UpdatedAt: now},
		{Name: "Transportes El Dorado", TaxID: "800777888-9", CreatedAt: now, UpdatedAt: now},
	}
	for _, p := range providers {
		if err := providerRepo.Create(ctx, p); err != nil {
			log.Warn().Err(err).Str("name", p.Name).Msg("proveedor no sembrado")
		}
	}

	// Centros de costos
	centers := []*entity.CostCenter{
		{Name: "Equipos e insumos", Code: "CC-100", CreatedAt: now, UpdatedAt: now},
		{Name: "Logística", Code: "CC-200", CreatedAt: now, UpdatedAt: now},
		{Name: "Instalación", Code: "CC-300", CreatedAt: now, UpdatedAt: now},
	}
	for _, cc := range centers {
		if err := costCenterRepo.Create(ctx, cc); err != nil {
			log.Warn().Err(err).Str("code", cc.Code).Msg("centro de costos no sembrado")
		}
	}

	// Proyectos
	projects := []*entity.Project{
		{Name: "Granja solar La Guajira I", ClientRef: "CLI-0042", Status: entity.ProjectActive, CreatedAt: now, UpdatedAt: now},
		{Name: "Techos solares Medellín", ClientRef: "CLI-0087", Status: entity.ProjectActive, CreatedAt: now, UpdatedAt: now},
		{Name: "Piloto autoconsumo Cali", ClientRef: "CLI-0015", Status: entity.ProjectFinished, CreatedAt: now, UpdatedAt: now},
	}
	for _, pr := range projects {
		if err := projectRepo.Create(ctx, pr); err != nil {
			log.Warn().Err(err).Str("name", pr.Name).Msg("proyecto no sembrado")
		}
	}

	// Facturas cubriendo todos los niveles de urgencia.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	invoices := []*entity.Invoice{
		{Number: "FAC-1001", IssueDate: today.AddDate(0, 0, -40), DueDate: today.AddDate(0, 0, -10),
			TotalAmount: decimal.RequireFromString("18500000"), Status: entity.StatusPending,
			ProviderID: &providers[0].ID, CostCenterID: &centers[0].ID, ProjectID: &projects[0].ID,
			PaymentMethod: "transferencia", Description: "Paneles 550W lote 14"},
		{Number: "FAC-1002", IssueDate: today.AddDate(0, 0, -25), DueDate: today,
			TotalAmount: decimal.RequireFromString("7200000"), Status: entity.StatusApproved,
			ProviderID: &providers[1].ID, CostCenterID: &centers[0].ID, ProjectID: &projects[0].ID,
			PaymentMethod: "transferencia", Description: "Inversores híbridos 8kW"},
		{Number: "FAC-1003", IssueDate: today.AddDate(0, 0, -10), DueDate: today.AddDate(0, 0, 12),
			TotalAmount: decimal.RequireFromString("1350000"), Status: entity.StatusPending,
			ProviderID: &providers[2].ID, CostCenterID: &centers[1].ID, ProjectID: &projects[1].ID,
			PaymentMethod: "efectivo", Description: "Flete Barranquilla-Riohacha"},
		{Number: "FAC-1004", IssueDate: today.AddDate(0, 0, -5), DueDate: today.AddDate(0, 0, 25),
			TotalAmount: decimal.RequireFromString("4100000"), Status: entity.StatusPending,
			ProviderID: &providers[0].ID, CostCenterID: &centers[2].ID, ProjectID: &projects[1].ID,
			PaymentMethod: "transferencia", Description: "Estructura de montaje"},
		{Number: "FAC-1005", IssueDate: today.AddDate(0, 0, -60), DueDate: today.AddDate(0, 0, -30),
			TotalAmount: decimal.RequireFromString("9800000"), Status: entity.StatusPaid,
			ProviderID: &providers[1].ID, CostCenterID: &centers[0].ID, ProjectID: &projects[2].ID,
			PaymentMethod: "transferencia", Description: "Cableado y protecciones"},
	}
	for _, inv := range invoices {
		inv.CreatedAt = now
		inv.UpdatedAt = now
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			log.Warn().Err(err).Str("number", inv.Number).Msg("factura no sembrada")
			continue
		}
		log.Info().Str("number", inv.Number).Msg("factura sembrada")
	}

	log.Info().Msg("seed completado")
}
