package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/soltec-andina/facturacion-api/internal/domain"
	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
	"github.com/soltec-andina/facturacion-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste una nueva factura. Asigna ID si viene vacío.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, number, issue_date, due_date, total_amount, status, payment_method, provider_id, cost_center_id, project_id, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.Number, invoice.IssueDate, invoice.DueDate, invoice.TotalAmount,
		invoice.Status, invoice.PaymentMethod, invoice.ProviderID, invoice.CostCenterID,
		invoice.ProjectID, invoice.Description, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("referencia inexistente: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

const invoiceColumns = `
	i.id, i.number, i.issue_date, i.due_date, i.total_amount, i.status,
	i.payment_method, i.provider_id, i.cost_center_id, i.project_id,
	i.description, i.created_at, i.updated_at,
	COALESCE(p.name, ''), COALESCE(cc.name, '')`

const invoiceJoins = `
	FROM invoices i
	LEFT JOIN providers p ON p.id = i.provider_id
	LEFT JOIN cost_centers cc ON cc.id = i.cost_center_id`

// GetByID obtiene una factura con nombres de proveedor y centro de costos resueltos.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + invoiceJoins + ` WHERE i.id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.Number, &inv.IssueDate, &inv.DueDate, &inv.TotalAmount, &inv.Status,
		&inv.PaymentMethod, &inv.ProviderID, &inv.CostCenterID, &inv.ProjectID,
		&inv.Description, &inv.CreatedAt, &inv.UpdatedAt,
		&inv.ProviderName, &inv.CostCenterName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// List devuelve el snapshot completo ordenado por fecha de vencimiento ascendente.
// El filtrado de cartera se hace en memoria, no en SQL.
func (r *InvoiceRepo) List(ctx context.Context) ([]entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + invoiceJoins + ` ORDER BY i.due_date ASC, i.id ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.Number, &inv.IssueDate, &inv.DueDate, &inv.TotalAmount, &inv.Status,
			&inv.PaymentMethod, &inv.ProviderID, &inv.CostCenterID, &inv.ProjectID,
			&inv.Description, &inv.CreatedAt, &inv.UpdatedAt,
			&inv.ProviderName, &inv.CostCenterName,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// Update actualiza una factura con control de concurrencia optimista: la fila
// solo se toca si updated_at coincide con lo que el caller leyó.
func (r *InvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice, expectedUpdatedAt time.Time) error {
	invoice.UpdatedAt = time.Now()
	query := `
		UPDATE invoices
		SET number = $1, issue_date = $2, due_date = $3, total_amount = $4, status = $5,
		    payment_method = $6, provider_id = $7, cost_center_id = $8, project_id = $9,
		    description = $10, updated_at = $11
		WHERE id = $12 AND updated_at = $13`
	tag, err := r.q.Exec(ctx, query,
		invoice.Number, invoice.IssueDate, invoice.DueDate, invoice.TotalAmount, invoice.Status,
		invoice.PaymentMethod, invoice.ProviderID, invoice.CostCenterID, invoice.ProjectID,
		invoice.Description, invoice.UpdatedAt,
		invoice.ID, expectedUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.staleOrMissing(ctx, invoice.ID)
	}
	return nil
}

// UpdateStatus cambia solo el estado, con el mismo control optimista.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id, status string, expectedUpdatedAt time.Time) error {
	query := `
		UPDATE invoices SET status = $1, updated_at = $2
		WHERE id = $3 AND updated_at = $4`
	tag, err := r.q.Exec(ctx, query, status, time.Now(), id, expectedUpdatedAt)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.staleOrMissing(ctx, id)
	}
	return nil
}

// staleOrMissing distingue fila inexistente de escritura perdida por concurrencia.
func (r *InvoiceRepo) staleOrMissing(ctx context.Context, id string) error {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check invoice: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

// Delete elimina una factura.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
