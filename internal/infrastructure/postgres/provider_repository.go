package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/soltec-andina/facturacion-api/internal/domain"
	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
	"github.com/soltec-andina/facturacion-api/internal/domain/repository"
)

var _ repository.ProviderRepository = (*ProviderRepo)(nil)

// ProviderRepo implementación del puerto ProviderRepository sobre PostgreSQL.
type ProviderRepo struct {
	q Querier
}

// NewProviderRepository construye el adaptador de persistencia para proveedores.
func NewProviderRepository(q Querier) *ProviderRepo {
	return &ProviderRepo{q: q}
}

// Create persiste un proveedor. El NIT es único.
func (r *ProviderRepo) Create(ctx context.Context, provider *entity.Provider) error {
	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	query := `
		INSERT INTO providers (id, name, tax_id, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		provider.ID, provider.Name, provider.TaxID, provider.Email, provider.Phone,
		provider.CreatedAt, provider.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert provider: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *ProviderRepo) GetByID(ctx context.Context, id string) (*entity.Provider, error) {
	return r.getBy(ctx, "id", id)
}

// GetByTaxID busca por NIT. Devuelve nil sin error si no existe.
func (r *ProviderRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Provider, error) {
	return r.getBy(ctx, "tax_id", taxID)
}

func (r *ProviderRepo) getBy(ctx context.Context, column, value string) (*entity.Provider, error) {
	query := `
		SELECT id, name, tax_id, email, phone, created_at, updated_at
		FROM providers WHERE ` + column + ` = $1`
	var p entity.Provider
	err := r.q.QueryRow(ctx, query, value).Scan(
		&p.ID, &p.Name, &p.TaxID, &p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}
	return &p, nil
}

// List devuelve todos los proveedores ordenados por nombre.
func (r *ProviderRepo) List(ctx context.Context) ([]entity.Provider, error) {
	query := `
		SELECT id, name, tax_id, email, phone, created_at, updated_at
		FROM providers ORDER BY name ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()

	var providers []entity.Provider
	for rows.Next() {
		var p entity.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.TaxID, &p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

// Update actualiza un proveedor.
func (r *ProviderRepo) Update(ctx context.Context, provider *entity.Provider) error {
	query := `
		UPDATE providers SET name = $1, tax_id = $2, email = $3, phone = $4, updated_at = $5
		WHERE id = $6`
	tag, err := r.q.Exec(ctx, query,
		provider.Name, provider.TaxID, provider.Email, provider.Phone, provider.UpdatedAt, provider.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update provider: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un proveedor. Falla si tiene facturas asociadas.
func (r *ProviderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM providers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete provider: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
