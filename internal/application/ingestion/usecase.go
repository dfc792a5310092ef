// Package ingestion implementa el pipeline de ingesta de documentos:
//
//	UPLOADED → EXTRACTING → EXTRACTED | FAILED → (revisión) → COMMITTED | DISCARDED
//
// El archivo se valida (tipo y tamaño) antes de tocar el extractor externo.
// Un fallo de extracción conserva el archivo y habilita el reintento manual;
// nunca se reintenta automáticamente.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/soltec-andina/facturacion-api/internal/application/dto"
	"github.com/soltec-andina/facturacion-api/internal/application/ports"
	"github.com/soltec-andina/facturacion-api/internal/domain"
	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
	"github.com/soltec-andina/facturacion-api/internal/domain/repository"
)

// MaxFileSize techo fijo de 10 MB por documento.
const MaxFileSize = 10 * 1024 * 1024

const dateLayout = "2006-01-02"

// extensiones por mime type aceptado.
var allowedMimeTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// TxRunner ejecuta el commit del borrador (alta de factura + marca COMMITTED)
// dentro de una transacción.
type TxRunner interface {
	RunCommit(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		draftRepo repository.DraftRepository,
	) error) error
}

// Config parámetros del pipeline.
type Config struct {
	ExtractionTimeout time.Duration // vencido => borrador FAILED con motivo "timeout"
	MinConfidence     float64       // campos bajo el umbral quedan en blanco
}

// UseCase orquesta la ingesta de documentos.
type UseCase struct {
	draftRepo      repository.DraftRepository
	providerRepo   repository.ProviderRepository
	costCenterRepo repository.CostCenterRepository
	projectRepo    repository.ProjectRepository
	txRunner       TxRunner
	extractor      ports.DocumentExtractor
	files          ports.FileStore
	cfg            Config
	log            zerolog.Logger
}

// NewUseCase construye el pipeline.
func NewUseCase(
	draftRepo repository.DraftRepository,
	providerRepo repository.ProviderRepository,
	costCenterRepo repository.CostCenterRepository,
	projectRepo repository.ProjectRepository,
	txRunner TxRunner,
	extractor ports.DocumentExtractor,
	files ports.FileStore,
	cfg Config,
	log zerolog.Logger,
) *UseCase {
	if cfg.ExtractionTimeout <= 0 {
		cfg.ExtractionTimeout = 30 * time.Second
	}
	return &UseCase{
		draftRepo:      draftRepo,
		providerRepo:   providerRepo,
		costCenterRepo: costCenterRepo,
		projectRepo:    projectRepo,
		txRunner:       txRunner,
		extractor:      extractor,
		files:          files,
		cfg:            cfg,
		log:            log,
	}
}

// Start valida el archivo, lo conserva en el object store y lanza la
// extracción. La validación ocurre ANTES de llamar al extractor: un archivo
// rechazado no genera ninguna llamada al colaborador externo.
//
// Devuelve el borrador en estado EXTRACTED o FAILED; un fallo del extractor
// no es un error de la operación sino un estado del borrador.
func (uc *UseCase) Start(ctx context.Context, in dto.UploadDocumentRequest) (*dto.DraftDTO, error) {
	ext, ok := allowedMimeTypes[in.MimeType]
	if !ok {
		documentsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.NewValidation("file",
			fmt.Sprintf("tipo %q no soportado; se aceptan PDF, JPEG y PNG", in.MimeType))
	}
	if len(in.Content) == 0 {
		documentsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.NewValidation("file", "archivo vacío")
	}
	if len(in.Content) > MaxFileSize {
		documentsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.NewValidation("file",
			fmt.Sprintf("el archivo pesa %d bytes y el máximo es %d (10 MB)", len(in.Content), MaxFileSize))
	}

	key := "documentos/" + uuid.New().String() + ext
	if err := uc.files.Put(ctx, key, in.Content, in.MimeType); err != nil {
		return nil, fmt.Errorf("guardar documento: %w", err)
	}

	now := time.Now()
	draft := &entity.DraftInvoice{
		ID:        uuid.New().String(),
		Status:    entity.DraftUploaded,
		FileName:  in.FileName,
		MimeType:  in.MimeType,
		FileSize:  int64(len(in.Content)),
		FileKey:   key,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.draftRepo.Create(ctx, draft); err != nil {
		return nil, err
	}

	if err := uc.extract(ctx, draft, in.Content); err != nil {
		return nil, err
	}
	d := toDraftDTO(draft)
	return &d, nil
}

// Retry reintenta la extracción de un borrador FAILED. El archivo original se
// relee del object store; no hace falta volver a subirlo.
func (uc *UseCase) Retry(ctx context.Context, draftID string) (*dto.DraftDTO, error) {
	draft, err := uc.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, domain.ErrNotFound
	}
	if draft.Status != entity.DraftFailed {
		return nil, domain.NewValidation("status",
			fmt.Sprintf("solo se reintenta un borrador FAILED (estado actual: %s)", draft.Status))
	}

	content, err := uc.files.Get(ctx, draft.FileKey)
	if err != nil {
		return nil, fmt.Errorf("recuperar documento %s: %w", draft.FileKey, domain.ErrServiceUnavailable)
	}
	if err := uc.extract(ctx, draft, content); err != nil {
		return nil, err
	}
	d := toDraftDTO(draft)
	return &d, nil
}

// extract ejecuta la llamada al extractor con timeout y deja el borrador en
// EXTRACTED o FAILED. El error de retorno es solo de persistencia.
func (uc *UseCase) extract(ctx context.Context, draft *entity.DraftInvoice, content []byte) error {
	draft.Status = entity.DraftExtracting
	draft.FailureReason = ""
	draft.UpdatedAt = time.Now()
	if err := uc.draftRepo.Update(ctx, draft); err != nil {
		return err
	}

	extractCtx, cancel := context.WithTimeout(ctx, uc.cfg.ExtractionTimeout)
	defer cancel()

	fields, err := uc.extractor.Extract(extractCtx, content, draft.MimeType)
	if err != nil {
		reason := extractionReason(err)
		uc.log.Warn().Err(err).
			Str("draft_id", draft.ID).
			Str("reason", reason).
			Msg("extracción fallida")
		documentsTotal.WithLabelValues("failed").Inc()

		draft.Status = entity.DraftFailed
		draft.FailureReason = reason
		draft.UpdatedAt = time.Now()
		return uc.draftRepo.Update(ctx, draft)
	}

	uc.applyExtracted(ctx, draft, fields)
	documentsTotal.WithLabelValues("extracted").Inc()

	draft.Status = entity.DraftExtracted
	draft.UpdatedAt = time.Now()
	return uc.draftRepo.Update(ctx, draft)
}

// applyExtracted puebla el borrador solo con los campos que superan el umbral
// de confianza; lo demás queda en blanco para captura manual.
func (uc *UseCase) applyExtracted(ctx context.Context, draft *entity.DraftInvoice, fields *ports.ExtractedFields) {
	ok := func(key string) bool {
		conf, present := fields.Confidence[key]
		if !present {
			// sin indicador: el adaptador solo pobló lo que reconoció
			return true
		}
		return conf >= uc.cfg.MinConfidence
	}

	if fields.Number != "" && ok("invoice_id") {
		draft.Number = fields.Number
	}
	if fields.IssueDate != nil && ok("invoice_date") {
		draft.IssueDate = fields.IssueDate
	}
	if fields.DueDate != nil && ok("due_date") {
		draft.DueDate = fields.DueDate
	}
	if fields.TotalAmount != nil && !fields.TotalAmount.IsNegative() && ok("total_amount") {
		draft.TotalAmount = fields.TotalAmount
	}
	if fields.PaymentMethod != "" && ok("payment_method") {
		draft.PaymentMethod = fields.PaymentMethod
	}
	if fields.Description != "" && ok("description") {
		draft.Description = fields.Description
	}
	if fields.CounterpartTaxID != "" && ok("supplier_tax_id") {
		draft.ProviderTaxID = fields.CounterpartTaxID
		// resolver contraparte contra el catálogo de proveedores
		if p, err := uc.providerRepo.GetByTaxID(ctx, fields.CounterpartTaxID); err == nil && p != nil {
			draft.ProviderID = &p.ID
		}
	}
}

// Commit confirma un borrador EXTRACTED como factura. Proyecto y centro de
// costos son obligatorios (no se derivan del documento); su ausencia bloquea
// el commit con un error de validación que nombra el campo faltante.
func (uc *UseCase) Commit(ctx context.Context, draftID string, in dto.CommitDraftRequest) (*entity.Invoice, error) {
	draft, err := uc.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, domain.ErrNotFound
	}
	if draft.Status != entity.DraftExtracted {
		return nil, domain.NewValidation("status",
			fmt.Sprintf("solo se confirma un borrador EXTRACTED (estado actual: %s)", draft.Status))
	}
	if in.ProjectID == "" {
		return nil, domain.NewValidation("projectRef", "el proyecto es obligatorio para confirmar")
	}
	if in.CostCenterID == "" {
		return nil, domain.NewValidation("costCenterRef", "el centro de costos es obligatorio para confirmar")
	}

	if cc, err := uc.costCenterRepo.GetByID(ctx, in.CostCenterID); err != nil {
		return nil, err
	} else if cc == nil {
		return nil, fmt.Errorf("centro de costos %s: %w", in.CostCenterID, domain.ErrNotFound)
	}
	if pr, err := uc.projectRepo.GetByID(ctx, in.ProjectID); err != nil {
		return nil, err
	} else if pr == nil {
		return nil, fmt.Errorf("proyecto %s: %w", in.ProjectID, domain.ErrNotFound)
	}

	inv, err := uc.buildInvoice(draft, in)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunCommit(ctx, func(invoiceRepo repository.InvoiceRepository, draftRepo repository.DraftRepository) error {
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		draft.Status = entity.DraftCommitted
		draft.UpdatedAt = time.Now()
		return draftRepo.Update(ctx, draft)
	})
	if err != nil {
		return nil, err
	}
	draftsResolved.WithLabelValues("committed").Inc()
	return inv, nil
}

// buildInvoice mezcla overrides del operador sobre los campos extraídos y
// aplica los invariantes de alta.
func (uc *UseCase) buildInvoice(draft *entity.DraftInvoice, in dto.CommitDraftRequest) (*entity.Invoice, error) {
	number := in.Number
	if number == "" {
		number = draft.Number
	}
	if number == "" {
		return nil, domain.NewValidation("number", "el número de factura es obligatorio; el documento no lo aportó")
	}

	issue, err := resolveDate("issueDate", in.IssueDate, draft.IssueDate)
	if err != nil {
		return nil, err
	}
	due, err := resolveDate("dueDate", in.DueDate, draft.DueDate)
	if err != nil {
		return nil, err
	}
	if due.Before(issue) {
		return nil, domain.NewValidation("dueDate", "la fecha de vencimiento no puede ser anterior a la de emisión")
	}

	var amount decimal.Decimal
	switch {
	case in.TotalAmount != nil:
		amount = *in.TotalAmount
	case draft.TotalAmount != nil:
		amount = *draft.TotalAmount
	default:
		return nil, domain.NewValidation("totalAmount", "el monto es obligatorio; el documento no lo aportó")
	}
	if amount.IsNegative() {
		return nil, domain.NewValidation("totalAmount", "el monto no puede ser negativo")
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = draft.PaymentMethod
	}
	description := in.Description
	if description == "" {
		description = draft.Description
	}
	providerID := in.ProviderID
	if providerID == nil {
		providerID = draft.ProviderID
	}

	now := time.Now()
	costCenterID := in.CostCenterID
	projectID := in.ProjectID
	return &entity.Invoice{
		Number:        number,
		IssueDate:     issue,
		DueDate:       due,
		TotalAmount:   amount,
		Status:        entity.StatusPending,
		PaymentMethod: paymentMethod,
		ProviderID:    providerID,
		CostCenterID:  &costCenterID,
		ProjectID:     &projectID,
		Description:   description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Discard descarta un borrador sin dejar rastro en el store de facturas.
// El archivo se elimina del object store (best effort).
func (uc *UseCase) Discard(ctx context.Context, draftID string) error {
	draft, err := uc.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return err
	}
	if draft == nil {
		return domain.ErrNotFound
	}
	if draft.Status == entity.DraftCommitted || draft.Status == entity.DraftDiscarded {
		return domain.NewValidation("status",
			fmt.Sprintf("el borrador ya está resuelto (%s)", draft.Status))
	}

	draft.Status = entity.DraftDiscarded
	draft.UpdatedAt = time.Now()
	if err := uc.draftRepo.Update(ctx, draft); err != nil {
		return err
	}
	if err := uc.files.Delete(ctx, draft.FileKey); err != nil {
		uc.log.Warn().Err(err).Str("key", draft.FileKey).Msg("no se pudo borrar el documento descartado")
	}
	draftsResolved.WithLabelValues("discarded").Inc()
	return nil
}

// GetByID devuelve un borrador.
func (uc *UseCase) GetByID(ctx context.Context, draftID string) (*dto.DraftDTO, error) {
	draft, err := uc.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, domain.ErrNotFound
	}
	d := toDraftDTO(draft)
	return &d, nil
}

// List devuelve los borradores vivos.
func (uc *UseCase) List(ctx context.Context) ([]dto.DraftDTO, error) {
	drafts, err := uc.draftRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DraftDTO, 0, len(drafts))
	for i := range drafts {
		out = append(out, toDraftDTO(&drafts[i]))
	}
	return out, nil
}

// extractionReason normaliza el motivo del fallo para persistirlo y exponerlo.
func extractionReason(err error) string {
	if xe, ok := domain.AsExtraction(err); ok {
		return xe.Reason
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ExtractionReasonTimeout
	}
	return domain.ExtractionReasonUnreachable
}

func resolveDate(field, override string, extracted *time.Time) (time.Time, error) {
	if override != "" {
		t, err := time.Parse(dateLayout, override)
		if err != nil {
			return time.Time{}, domain.NewValidation(field,
				fmt.Sprintf("fecha inválida %q (se espera YYYY-MM-DD)", override))
		}
		return t, nil
	}
	if extracted != nil {
		return *extracted, nil
	}
	return time.Time{}, domain.NewValidation(field, "fecha obligatoria; el documento no la aportó")
}

func toDraftDTO(d *entity.DraftInvoice) dto.DraftDTO {
	return dto.DraftDTO{
		ID:            d.ID,
		Status:        d.Status,
		FileName:      d.FileName,
		MimeType:      d.MimeType,
		FileSize:      d.FileSize,
		FailureReason: d.FailureReason,
		Number:        d.Number,
		IssueDate:     d.IssueDate,
		DueDate:       d.DueDate,
		TotalAmount:   d.TotalAmount,
		PaymentMethod: d.PaymentMethod,
		Description:   d.Description,
		ProviderTaxID: d.ProviderTaxID,
		ProviderID:    d.ProviderID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
