// Package billing orquesta los casos de uso de cartera sobre el motor puro
// de internal/domain/billing: CRUD de facturas con concurrencia optimista,
// listado filtrado + clasificado, estadísticas y reporte de antigüedad.
package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/soltec-andina/facturacion-api/internal/application/dto"
	"github.com/soltec-andina/facturacion-api/internal/domain"
	domainbilling "github.com/soltec-andina/facturacion-api/internal/domain/billing"
	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
	"github.com/soltec-andina/facturacion-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// InvoiceUseCase casos de uso del store de facturas.
type InvoiceUseCase struct {
	invoiceRepo    repository.InvoiceRepository
	providerRepo   repository.ProviderRepository
	costCenterRepo repository.CostCenterRepository
	projectRepo    repository.ProjectRepository
	horizonDays    int
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	providerRepo repository.ProviderRepository,
	costCenterRepo repository.CostCenterRepository,
	projectRepo repository.ProjectRepository,
	horizonDays int,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoiceRepo:    invoiceRepo,
		providerRepo:   providerRepo,
		costCenterRepo: costCenterRepo,
		projectRepo:    projectRepo,
		horizonDays:    horizonDays,
	}
}

// Create registra una factura con los invariantes de alta:
// número obligatorio, dueDate >= issueDate, monto no negativo y referencias
// existentes si vienen informadas.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceDTO, error) {
	if in.Number == "" {
		return nil, domain.NewValidation("number", "el número de factura es obligatorio")
	}
	issue, err := parseDate("issueDate", in.IssueDate)
	if err != nil {
		return nil, err
	}
	due, err := parseDate("dueDate", in.DueDate)
	if err != nil {
		return nil, err
	}
	if due.Before(issue) {
		return nil, domain.NewValidation("dueDate", "la fecha de vencimiento no puede ser anterior a la de emisión")
	}
	if in.TotalAmount.IsNegative() {
		return nil, domain.NewValidation("totalAmount", "el monto no puede ser negativo")
	}
	if err := uc.checkRefs(ctx, in.ProviderID, in.CostCenterID, in.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now()
	inv := &entity.Invoice{
		Number:        in.Number,
		IssueDate:     issue,
		DueDate:       due,
		TotalAmount:   in.TotalAmount,
		Status:        entity.StatusPending,
		PaymentMethod: in.PaymentMethod,
		ProviderID:    in.ProviderID,
		CostCenterID:  in.CostCenterID,
		ProjectID:     in.ProjectID,
		Description:   in.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	d := uc.toDTO(*inv, now)
	return &d, nil
}

// GetByID obtiene una factura con su clasificación de urgencia.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceDTO, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	d := uc.toDTO(*inv, time.Now())
	return &d, nil
}

// List devuelve el conjunto filtrado, cada factura etiquetada con su nivel de
// urgencia, más el conteo por nivel del conjunto filtrado.
//
// Flujo: snapshot del store -> motor de filtrado -> clasificador -> respuesta.
func (uc *InvoiceUseCase) List(ctx context.Context, in dto.ListInvoicesRequest) (*dto.ListInvoicesResponse, error) {
	criteria, err := criteriaFromRequest(in)
	if err != nil {
		return nil, err
	}
	snapshot, err := uc.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := domainbilling.Filter(snapshot, *criteria)

	now := time.Now()
	out := &dto.ListInvoicesResponse{
		Invoices:    make([]dto.InvoiceDTO, 0, len(filtered)),
		Total:       len(filtered),
		CountByTier: tierCountsToDTO(domainbilling.CountByTier(filtered, now, uc.horizonDays)),
	}
	for _, inv := range filtered {
		out.Invoices = append(out.Invoices, uc.toDTO(inv, now))
	}
	return out, nil
}

// Dashboard devuelve el listado clasificado y las estadísticas del mismo
// conjunto filtrado en una sola llamada, calculados sobre un único snapshot
// para que ambas vistas del panel coincidan entre sí.
func (uc *InvoiceUseCase) Dashboard(ctx context.Context, in dto.ListInvoicesRequest) (*dto.DashboardDTO, error) {
	criteria, err := criteriaFromRequest(in)
	if err != nil {
		return nil, err
	}
	snapshot, err := uc.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := domainbilling.Filter(snapshot, *criteria)

	now := time.Now()
	out := &dto.DashboardDTO{
		Invoices: make([]dto.InvoiceDTO, 0, len(filtered)),
	}
	for _, inv := range filtered {
		out.Invoices = append(out.Invoices, uc.toDTO(inv, now))
	}

	stats := domainbilling.Aggregate(filtered)
	out.Statistics = dto.StatisticsDTO{
		TotalCount:           stats.TotalCount,
		TotalAmount:          stats.TotalAmount,
		AverageInvoiceAmount: stats.AverageInvoiceAmount,
		CountByStatus:        stats.CountByStatus,
		CountByTier:          tierCountsToDTO(domainbilling.CountByTier(filtered, now, uc.horizonDays)),
		TopProviders:         rankingToDTO(stats.TopEntities(domainbilling.DimensionProvider, statisticsTopN)),
		TopCostCenters:       rankingToDTO(stats.TopEntities(domainbilling.DimensionCostCenter, statisticsTopN)),
	}
	return out, nil
}

// Update edita los campos no identitarios de una factura. El número y el ID
// son inmutables. Concurrencia optimista: in.UpdatedAt debe coincidir con la
// fila actual o la escritura se rechaza con ErrConflict.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceDTO, error) {
	if in.UpdatedAt.IsZero() {
		return nil, domain.NewValidation("updatedAt", "se requiere el updated_at leído para detectar ediciones concurrentes")
	}
	current, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	issue, err := parseDate("issueDate", in.IssueDate)
	if err != nil {
		return nil, err
	}
	due, err := parseDate("dueDate", in.DueDate)
	if err != nil {
		return nil, err
	}
	if due.Before(issue) {
		return nil, domain.NewValidation("dueDate", "la fecha de vencimiento no puede ser anterior a la de emisión")
	}
	if in.TotalAmount.IsNegative() {
		return nil, domain.NewValidation("totalAmount", "el monto no puede ser negativo")
	}
	if err := uc.checkRefs(ctx, in.ProviderID, in.CostCenterID, in.ProjectID); err != nil {
		return nil, err
	}

	updated := *current
	updated.IssueDate = issue
	updated.DueDate = due
	updated.TotalAmount = in.TotalAmount
	updated.PaymentMethod = in.PaymentMethod
	updated.ProviderID = in.ProviderID
	updated.CostCenterID = in.CostCenterID
	updated.ProjectID = in.ProjectID
	updated.Description = in.Description
	updated.UpdatedAt = time.Now()

	if err := uc.invoiceRepo.Update(ctx, &updated, in.UpdatedAt); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// transiciones de estado permitidas; PAID y REJECTED son terminales.
var allowedTransitions = map[string][]string{
	entity.StatusPending:  {entity.StatusApproved, entity.StatusPaid, entity.StatusRejected},
	entity.StatusApproved: {entity.StatusPaid, entity.StatusRejected},
}

// UpdateStatus aplica una transición de estado con concurrencia optimista.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateInvoiceStatusRequest) (*dto.InvoiceDTO, error) {
	if !entity.IsValidStatus(in.Status) {
		return nil, domain.NewValidation("status", fmt.Sprintf("estado desconocido: %q", in.Status))
	}
	if in.UpdatedAt.IsZero() {
		return nil, domain.NewValidation("updatedAt", "se requiere el updated_at leído para detectar ediciones concurrentes")
	}
	current, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	if !transitionAllowed(current.Status, in.Status) {
		return nil, domain.NewValidation("status",
			fmt.Sprintf("transición no permitida: %s -> %s", current.Status, in.Status))
	}
	if err := uc.invoiceRepo.UpdateStatus(ctx, id, in.Status, in.UpdatedAt); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

func transitionAllowed(from, to string) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Delete elimina una factura. Retención indefinida por defecto en la
// aplicación; el borrado existe como remoción ordinaria para correcciones.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	return uc.invoiceRepo.Delete(ctx, id)
}

// checkRefs verifica que las referencias informadas existan.
func (uc *InvoiceUseCase) checkRefs(ctx context.Context, providerID, costCenterID, projectID *string) error {
	if providerID != nil && *providerID != "" {
		p, err := uc.providerRepo.GetByID(ctx, *providerID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("proveedor %s: %w", *providerID, domain.ErrNotFound)
		}
	}
	if costCenterID != nil && *costCenterID != "" {
		cc, err := uc.costCenterRepo.GetByID(ctx, *costCenterID)
		if err != nil {
			return err
		}
		if cc == nil {
			return fmt.Errorf("centro de costos %s: %w", *costCenterID, domain.ErrNotFound)
		}
	}
	if projectID != nil && *projectID != "" {
		pr, err := uc.projectRepo.GetByID(ctx, *projectID)
		if err != nil {
			return err
		}
		if pr == nil {
			return fmt.Errorf("proyecto %s: %w", *projectID, domain.ErrNotFound)
		}
	}
	return nil
}

func (uc *InvoiceUseCase) toDTO(inv entity.Invoice, asOf time.Time) dto.InvoiceDTO {
	c := domainbilling.ClassifyDetail(inv, asOf, uc.horizonDays)
	return dto.InvoiceDTO{
		ID:             inv.ID,
		Number:         inv.Number,
		IssueDate:      inv.IssueDate.Format(dateLayout),
		DueDate:        inv.DueDate.Format(dateLayout),
		TotalAmount:    inv.TotalAmount,
		Status:         inv.Status,
		PaymentMethod:  inv.PaymentMethod,
		ProviderID:     inv.ProviderID,
		ProviderName:   inv.ProviderName,
		CostCenterID:   inv.CostCenterID,
		CostCenterName: inv.CostCenterName,
		ProjectID:      inv.ProjectID,
		Description:    inv.Description,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
		UrgencyTier:    string(c.Tier),
		DaysUntilDue:   c.DaysUntilDue,
		DaysOverdue:    c.DaysOverdue,
	}
}

// criteriaFromRequest valida y convierte los query params al valor inmutable
// de criterios: el tipado se rechaza en la frontera, no dentro del motor.
func criteriaFromRequest(in dto.ListInvoicesRequest) (*domainbilling.Criteria, error) {
	if in.Status != "" && !entity.IsValidStatus(in.Status) {
		return nil, domain.NewValidation("status", fmt.Sprintf("estado desconocido: %q", in.Status))
	}
	c := &domainbilling.Criteria{
		Search:        in.Search,
		Status:        in.Status,
		ProviderID:    in.ProviderID,
		CostCenterID:  in.CostCenterID,
		ProjectID:     in.ProjectID,
		PaymentMethod: in.PaymentMethod,
	}
	if in.DateFrom != "" {
		d, err := parseDate("dateFrom", in.DateFrom)
		if err != nil {
			return nil, err
		}
		c.DateFrom = &d
	}
	if in.DateTo != "" {
		d, err := parseDate("dateTo", in.DateTo)
		if err != nil {
			return nil, err
		}
		c.DateTo = &d
	}
	if c.DateFrom != nil && c.DateTo != nil && c.DateTo.Before(*c.DateFrom) {
		return nil, domain.NewValidation("dateTo", "el fin del rango no puede ser anterior al inicio")
	}
	return c, nil
}

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, domain.NewValidation(field, "fecha requerida (YYYY-MM-DD)")
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domain.NewValidation(field, fmt.Sprintf("fecha inválida %q (se espera YYYY-MM-DD)", value))
	}
	return t, nil
}

func tierCountsToDTO(counts map[domainbilling.Tier]int) map[string]int {
	out := make(map[string]int, len(counts))
	for tier, n := range counts {
		out[string(tier)] = n
	}
	return out
}
