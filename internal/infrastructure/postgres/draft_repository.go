package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
	"github.com/soltec-andina/facturacion-api/internal/domain/repository"
)

var _ repository.DraftRepository = (*DraftRepo)(nil)

// DraftRepo implementación del puerto DraftRepository sobre PostgreSQL.
type DraftRepo struct {
	q Querier
}

// NewDraftRepository construye el adaptador de persistencia para borradores de ingesta.
func NewDraftRepository(q Querier) *DraftRepo {
	return &DraftRepo{q: q}
}

// Create persiste un borrador recién subido.
func (r *DraftRepo) Create(ctx context.Context, draft *entity.DraftInvoice) error {
	query := `
		INSERT INTO invoice_drafts (id, status, file_name, mime_type, file_size, file_key, failure_reason,
			number, issue_date, due_date, total_amount, payment_method, description,
			provider_tax_id, provider_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		draft.ID, draft.Status, draft.FileName, draft.MimeType, draft.FileSize, draft.FileKey,
		draft.FailureReason, draft.Number, draft.IssueDate, draft.DueDate, draft.TotalAmount,
		draft.PaymentMethod, draft.Description, draft.ProviderTaxID, draft.ProviderID,
		draft.CreatedAt, draft.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert draft: %w", err)
	}
	return nil
}

const draftColumns = `
	id, status, file_name, mime_type, file_size, file_key, failure_reason,
	number, issue_date, due_date, total_amount, payment_method, description,
	provider_tax_id, provider_id, created_at, updated_at`

// GetByID obtiene un borrador por ID. Devuelve nil sin error si no existe.
func (r *DraftRepo) GetByID(ctx context.Context, id string) (*entity.DraftInvoice, error) {
	query := `SELECT` + draftColumns + ` FROM invoice_drafts WHERE id = $1`
	var d entity.DraftInvoice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Status, &d.FileName, &d.MimeType, &d.FileSize, &d.FileKey, &d.FailureReason,
		&d.Number, &d.IssueDate, &d.DueDate, &d.TotalAmount, &d.PaymentMethod, &d.Description,
		&d.ProviderTaxID, &d.ProviderID, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}
	return &d, nil
}

// List devuelve los borradores vivos (no COMMITTED ni DISCARDED), más recientes primero.
func (r *DraftRepo) List(ctx context.Context) ([]entity.DraftInvoice, error) {
	query := `SELECT` + draftColumns + `
		FROM invoice_drafts
		WHERE status NOT IN ('COMMITTED', 'DISCARDED')
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []entity.DraftInvoice
	for rows.Next() {
		var d entity.DraftInvoice
		if err := rows.Scan(
			&d.ID, &d.Status, &d.FileName, &d.MimeType, &d.FileSize, &d.FileKey, &d.FailureReason,
			&d.Number, &d.IssueDate, &d.DueDate, &d.TotalAmount, &d.PaymentMethod, &d.Description,
			&d.ProviderTaxID, &d.ProviderID, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

// Update persiste el estado y los campos extraídos de un borrador.
func (r *DraftRepo) Update(ctx context.Context, draft *entity.DraftInvoice) error {
	query := `
		UPDATE invoice_drafts
		SET status = $1, failure_reason = $2, number = $3, issue_date = $4, due_date = $5,
		    total_amount = $6, payment_method = $7, description = $8,
		    provider_tax_id = $9, provider_id = $10, updated_at = $11
		WHERE id = $12`
	tag, err := r.q.Exec(ctx, query,
		draft.Status, draft.FailureReason, draft.Number, draft.IssueDate, draft.DueDate,
		draft.TotalAmount, draft.PaymentMethod, draft.Description,
		draft.ProviderTaxID, draft.ProviderID, draft.UpdatedAt,
		draft.ID,
	)
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update draft %s: fila inexistente", draft.ID)
	}
	return nil
}
