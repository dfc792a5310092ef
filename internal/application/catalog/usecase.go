// Package catalog casos de uso de los catálogos de referencia: proveedores,
// centros de costos y proyectos. Las facturas les apuntan por ID; sus
// agregados (conteos, totales) son derivados y viven en el agregador de
// estadísticas.
package catalog

import (
	"context"
	"time"

	"github.com/soltec-andina/facturacion-api/internal/application/dto"
	"github.com/soltec-andina/facturacion-api/internal/domain"
	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
	"github.com/soltec-andina/facturacion-api/internal/domain/repository"
)

// ── Proveedores ───────────────────────────────────────────────────────────────

// ProviderUseCase CRUD de proveedores.
type ProviderUseCase struct {
	repo repository.ProviderRepository
}

// NewProviderUseCase construye el caso de uso.
func NewProviderUseCase(repo repository.ProviderRepository) *ProviderUseCase {
	return &ProviderUseCase{repo: repo}
}

// Create registra un proveedor. El NIT es único.
func (uc *ProviderUseCase) Create(ctx context.Context, in dto.ProviderRequest) (*dto.ProviderDTO, error) {
	if in.Name == "" {
		return nil, domain.NewValidation("name", "el nombre es obligatorio")
	}
	if in.TaxID == "" {
		return nil, domain.NewValidation("tax_id", "el NIT es obligatorio")
	}
	now := time.Now()
	p := &entity.Provider{
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	d := providerToDTO(p)
	return &d, nil
}

// GetByID obtiene un proveedor.
func (uc *ProviderUseCase) GetByID(ctx context.Context, id string) (*dto.ProviderDTO, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	d := providerToDTO(p)
	return &d, nil
}

// List lista los proveedores.
func (uc *ProviderUseCase) List(ctx context.Context) ([]dto.ProviderDTO, error) {
	providers, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProviderDTO, 0, len(providers))
	for i := range providers {
		out = append(out, providerToDTO(&providers[i]))
	}
	return out, nil
}

// Update edita un proveedor.
func (uc *ProviderUseCase) Update(ctx context.Context, id string, in dto.ProviderRequest) (*dto.ProviderDTO, error) {
	if in.Name == "" {
		return nil, domain.NewValidation("name", "el nombre es obligatorio")
	}
	if in.TaxID == "" {
		return nil, domain.NewValidation("tax_id", "el NIT es obligatorio")
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.Name = in.Name
	p.TaxID = in.TaxID
	p.Email = in.Email
	p.Phone = in.Phone
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	d := providerToDTO(p)
	return &d, nil
}

// Delete elimina un proveedor sin facturas asociadas.
func (uc *ProviderUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func providerToDTO(p *entity.Provider) dto.ProviderDTO {
	return dto.ProviderDTO{
		ID: p.ID, Name: p.Name, TaxID: p.TaxID, Email: p.Email, Phone: p.Phone,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

// ── Centros de costos ─────────────────────────────────────────────────────────

// CostCenterUseCase CRUD de centros de costos.
type CostCenterUseCase struct {
	repo repository.CostCenterRepository
}

// NewCostCenterUseCase construye el caso de uso.
func NewCostCenterUseCase(repo repository.CostCenterRepository) *CostCenterUseCase {
	return &CostCenterUseCase{repo: repo}
}

// Create registra un centro de costos. El código contable es único.
func (uc *CostCenterUseCase) Create(ctx context.Context, in dto.CostCenterRequest) (*dto.CostCenterDTO, error) {
	if in.Name == "" {
		return nil, domain.NewValidation("name", "el nombre es obligatorio")
	}
	if in.Code == "" {
		return nil, domain.NewValidation("code", "el código contable es obligatorio")
	}
	now := time.Now()
	cc := &entity.CostCenter{
		Name:        in.Name,
		Code:        in.Code,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, cc); err != nil {
		return nil, err
	}
	d := costCenterToDTO(cc)
	return &d, nil
}

// GetByID obtiene un centro de costos.
func (uc *CostCenterUseCase) GetByID(ctx context.Context, id string) (*dto.CostCenterDTO, error) {
	cc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cc == nil {
		return nil, domain.ErrNotFound
	}
	d := costCenterToDTO(cc)
	return &d, nil
}

// List lista los centros de costos.
func (uc *CostCenterUseCase) List(ctx context.Context) ([]dto.CostCenterDTO, error) {
	centers, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CostCenterDTO, 0, len(centers))
	for i := range centers {
		out = append(out, costCenterToDTO(&centers[i]))
	}
	return out, nil
}

// Update edita un centro de costos.
func (uc *CostCenterUseCase) Update(ctx context.Context, id string, in dto.CostCenterRequest) (*dto.CostCenterDTO, error) {
	if in.Name == "" {
		return nil, domain.NewValidation("name", "el nombre es obligatorio")
	}
	cc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cc == nil {
		return nil, domain.ErrNotFound
	}
	cc.Name = in.Name
	if in.Code != "" {
		cc.Code = in.Code
	}
	cc.Description = in.Description
	cc.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, cc); err != nil {
		return nil, err
	}
	d := costCenterToDTO(cc)
	return &d, nil
}

// Delete elimina un centro de costos sin facturas asociadas.
func (uc *CostCenterUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func costCenterToDTO(cc *entity.CostCenter) dto.CostCenterDTO {
	return dto.CostCenterDTO{
		ID: cc.ID, Name: cc.Name, Code: cc.Code, Description: cc.Description,
		CreatedAt: cc.CreatedAt, UpdatedAt: cc.UpdatedAt,
	}
}

// ── Proyectos ─────────────────────────────────────────────────────────────────

var validProjectStatuses = map[string]bool{
	entity.ProjectActive:   true,
	entity.ProjectFinished: true,
	entity.ProjectOnHold:   true,
}

// ProjectUseCase CRUD de proyectos de instalación.
type ProjectUseCase struct {
	repo repository.ProjectRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo}
}

// Create registra un proyecto. Sin estado explícito nace ACTIVE.
func (uc *ProjectUseCase) Create(ctx context.Context, in dto.ProjectRequest) (*dto.ProjectDTO, error) {
	if in.Name == "" {
		return nil, domain.NewValidation("name", "el nombre es obligatorio")
	}
	status := in.Status
	if status == "" {
		status = entity.ProjectActive
	}
	if !validProjectStatuses[status] {
		return nil, domain.NewValidation("status", "estado de proyecto desconocido: "+status)
	}
	now := time.Now()
	p := &entity.Project{
		Name:      in.Name,
		ClientRef: in.ClientRef,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	d := projectToDTO(p)
	return &d, nil
}

// GetByID obtiene un proyecto.
func (uc *ProjectUseCase) GetByID(ctx context.Context, id string) (*dto.ProjectDTO, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	d := projectToDTO(p)
	return &d, nil
}

// List lista los proyectos.
func (uc *ProjectUseCase) List(ctx context.Context) ([]dto.ProjectDTO, error) {
	projects, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectDTO, 0, len(projects))
	for i := range projects {
		out = append(out, projectToDTO(&projects[i]))
	}
	return out, nil
}

// Update edita un proyecto.
func (uc *ProjectUseCase) Update(ctx context.Context, id string, in dto.ProjectRequest) (*dto.ProjectDTO, error) {
	if in.Name == "" {
		return nil, domain.NewValidation("name", "el nombre es obligatorio")
	}
	if in.Status != "" && !validProjectStatuses[in.Status] {
		return nil, domain.NewValidation("status", "estado de proyecto desconocido: "+in.Status)
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.Name = in.Name
	p.ClientRef = in.ClientRef
	if in.Status != "" {
		p.Status = in.Status
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	d := projectToDTO(p)
	return &d, nil
}

// Delete elimina un proyecto sin facturas asociadas.
func (uc *ProjectUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func projectToDTO(p *entity.Project) dto.ProjectDTO {
	return dto.ProjectDTO{
		ID: p.ID, Name: p.Name, ClientRef: p.ClientRef, Status: p.Status,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}
