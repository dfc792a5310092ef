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

var _ repository.CostCenterRepository = (*CostCenterRepo)(nil)

// CostCenterRepo implementación del puerto CostCenterRepository sobre PostgreSQL.
type CostCenterRepo struct {
	q Querier
}

// NewCostCenterRepository construye el adaptador de persistencia para centros de costos.
func NewCostCenterRepository(q Querier) *CostCenterRepo {
	return &CostCenterRepo{q: q}
}

// Create persiste un centro de costos. El código contable es único.
func (r *CostCenterRepo) Create(ctx context.Context, cc *entity.CostCenter) error {
	if cc.ID == "" {
		cc.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cost_centers (id, name, code, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, cc.ID, cc.Name, cc.Code, cc.Description, cc.CreatedAt, cc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cost center: %w", err)
	}
	return nil
}

// GetByID obtiene un centro de costos por ID.
func (r *CostCenterRepo) GetByID(ctx context.Context, id string) (*entity.CostCenter, error) {
	query := `
		SELECT id, name, code, description, created_at, updated_at
		FROM cost_centers WHERE id = $1`
	var cc entity.CostCenter
	err := r.q.QueryRow(ctx, query, id).Scan(
		&cc.ID, &cc.Name, &cc.Code, &cc.Description, &cc.CreatedAt, &cc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cost center: %w", err)
	}
	return &cc, nil
}

// List devuelve todos los centros de costos ordenados por código.
func (r *CostCenterRepo) List(ctx context.Context) ([]entity.CostCenter, error) {
	query := `
		SELECT id, name, code, description, created_at, updated_at
		FROM cost_centers ORDER BY code ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cost centers: %w", err)
	}
	defer rows.Close()

	var centers []entity.CostCenter
	for rows.Next() {
		var cc entity.CostCenter
		if err := rows.Scan(&cc.ID, &cc.Name, &cc.Code, &cc.Description, &cc.CreatedAt, &cc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cost center: %w", err)
		}
		centers = append(centers, cc)
	}
	return centers, rows.Err()
}

// Update actualiza un centro de costos.
func (r *CostCenterRepo) Update(ctx context.Context, cc *entity.CostCenter) error {
	query := `
		UPDATE cost_centers SET name = $1, code = $2, description = $3, updated_at = $4
		WHERE id = $5`
	tag, err := r.q.Exec(ctx, query, cc.Name, cc.Code, cc.Description, cc.UpdatedAt, cc.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update cost center: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un centro de costos. Falla si tiene facturas asociadas.
func (r *CostCenterRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM cost_centers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete cost center: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
