package ingestion

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltec-andina/facturacion-api/internal/application/dto"
	"github.com/soltec-andina/facturacion-api/internal/application/ports"
	"github.com/soltec-andina/facturacion-api/internal/domain"
	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
	"github.com/soltec-andina/facturacion-api/internal/domain/repository"
)

// ── Dobles de prueba ─────────────────────────────────────────────────────────

type fakeDraftRepo struct {
	drafts map[string]*entity.DraftInvoice
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{drafts: make(map[string]*entity.DraftInvoice)}
}

func (r *fakeDraftRepo) Create(_ context.Context, d *entity.DraftInvoice) error {
	cp := *d
	r.drafts[d.ID] = &cp
	return nil
}

func (r *fakeDraftRepo) GetByID(_ context.Context, id string) (*entity.DraftInvoice, error) {
	d, ok := r.drafts[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDraftRepo) List(_ context.Context) ([]entity.DraftInvoice, error) {
	out := make([]entity.DraftInvoice, 0, len(r.drafts))
	for _, d := range r.drafts {
		if d.Status == entity.DraftCommitted || d.Status == entity.DraftDiscarded {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDraftRepo) Update(_ context.Context, d *entity.DraftInvoice) error {
	cp := *d
	r.drafts[d.ID] = &cp
	return nil
}

type fakeInvoiceRepo struct {
	created []entity.Invoice
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	inv.ID = "inv-nueva"
	r.created = append(r.created, *inv)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(context.Context, string) (*entity.Invoice, error) {
	return nil, nil
}
func (r *fakeInvoiceRepo) List(context.Context) ([]entity.Invoice, error) { return nil, nil }
func (r *fakeInvoiceRepo) Update(context.Context, *entity.Invoice, time.Time) error {
	return nil
}
func (r *fakeInvoiceRepo) UpdateStatus(context.Context, string, string, time.Time) error {
	return nil
}
func (r *fakeInvoiceRepo) Delete(context.Context, string) error { return nil }

type fakeProviderRepo struct {
	byTaxID map[string]*entity.Provider
}

func (r *fakeProviderRepo) Create(context.Context, *entity.Provider) error { return nil }
func (r *fakeProviderRepo) GetByID(context.Context, string) (*entity.Provider, error) {
	return nil, nil
}
func (r *fakeProviderRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Provider, error) {
	return r.byTaxID[taxID], nil
}
func (r *fakeProviderRepo) List(context.Context) ([]entity.Provider, error) { return nil, nil }
func (r *fakeProviderRepo) Update(context.Context, *entity.Provider) error  { return nil }
func (r *fakeProviderRepo) Delete(context.Context, string) error            { return nil }

type fakeCostCenterRepo struct {
	existing map[string]bool
}

func (r *fakeCostCenterRepo) Create(context.Context, *entity.CostCenter) error { return nil }
func (r *fakeCostCenterRepo) GetByID(_ context.Context, id string) (*entity.CostCenter, error) {
	if !r.existing[id] {
		return nil, nil
	}
	return &entity.CostCenter{ID: id}, nil
}
func (r *fakeCostCenterRepo) List(context.Context) ([]entity.CostCenter, error) { return nil, nil }
func (r *fakeCostCenterRepo) Update(context.Context, *entity.CostCenter) error  { return nil }
func (r *fakeCostCenterRepo) Delete(context.Context, string) error              { return nil }

type fakeProjectRepo struct {
	existing map[string]bool
}

func (r *fakeProjectRepo) Create(context.Context, *entity.Project) error { return nil }
func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	if !r.existing[id] {
		return nil, nil
	}
	return &entity.Project{ID: id}, nil
}
func (r *fakeProjectRepo) List(context.Context) ([]entity.Project, error) { return nil, nil }
func (r *fakeProjectRepo) Update(context.Context, *entity.Project) error  { return nil }
func (r *fakeProjectRepo) Delete(context.Context, string) error           { return nil }

type fakeTxRunner struct {
	invoiceRepo repository.InvoiceRepository
	draftRepo   repository.DraftRepository
}

func (t *fakeTxRunner) RunCommit(_ context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	draftRepo repository.DraftRepository,
) error) error {
	return fn(t.invoiceRepo, t.draftRepo)
}

type fakeExtractor struct {
	calls  int
	fields *ports.ExtractedFields
	err    error
}

func (e *fakeExtractor) Extract(context.Context, []byte, string) (*ports.ExtractedFields, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return e.fields, nil
}

type fakeFileStore struct {
	files   map[string][]byte
	deleted []string
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: make(map[string][]byte)}
}

func (s *fakeFileStore) Put(_ context.Context, key string, content []byte, _ string) error {
	s.files[key] = bytes.Clone(content)
	return nil
}

func (s *fakeFileStore) Get(_ context.Context, key string) ([]byte, error) {
	content, ok := s.files[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return content, nil
}

func (s *fakeFileStore) Delete(_ context.Context, key string) error {
	delete(s.files, key)
	s.deleted = append(s.deleted, key)
	return nil
}

type testEnv struct {
	uc        *UseCase
	drafts    *fakeDraftRepo
	invoices  *fakeInvoiceRepo
	providers *fakeProviderRepo
	extractor *fakeExtractor
	files     *fakeFileStore
}

func newTestEnv(extractor *fakeExtractor) *testEnv {
	drafts := newFakeDraftRepo()
	invoices := &fakeInvoiceRepo{}
	providers := &fakeProviderRepo{byTaxID: make(map[string]*entity.Provider)}
	files := newFakeFileStore()
	uc := NewUseCase(
		drafts,
		providers,
		&fakeCostCenterRepo{existing: map[string]bool{"cc-1": true}},
		&fakeProjectRepo{existing: map[string]bool{"proj-1": true}},
		&fakeTxRunner{invoiceRepo: invoices, draftRepo: drafts},
		extractor,
		files,
		Config{ExtractionTimeout: time.Second, MinConfidence: 0.7},
		zerolog.Nop(),
	)
	return &testEnv{uc: uc, drafts: drafts, invoices: invoices, providers: providers, extractor: extractor, files: files}
}

func datePtrTest(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ── Start ────────────────────────────────────────────────────────────────────

func TestStart_ArchivoGrandeRechazadoSinLlamarExtractor(t *testing.T) {
	env := newTestEnv(&fakeExtractor{fields: &ports.ExtractedFields{}})

	_, err := env.uc.Start(context.Background(), dto.UploadDocumentRequest{
		FileName: "factura.pdf",
		MimeType: "application/pdf",
		Content:  make([]byte, 15*1024*1024),
	})

	require.Error(t, err)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "file", ve.Field)
	assert.Zero(t, env.extractor.calls, "un archivo rechazado no debe tocar el extractor")
	assert.Empty(t, env.drafts.drafts)
	assert.Empty(t, env.files.files)
}

func TestStart_MimeNoSoportado(t *testing.T) {
	env := newTestEnv(&fakeExtractor{fields: &ports.ExtractedFields{}})

	_, err := env.uc.Start(context.Background(), dto.UploadDocumentRequest{
		FileName: "factura.docx",
		MimeType: "application/msword",
		Content:  []byte("contenido"),
	})

	require.Error(t, err)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "file", ve.Field)
	assert.Zero(t, env.extractor.calls)
}

func TestStart_ExtraccionExitosa(t *testing.T) {
	env := newTestEnv(&fakeExtractor{fields: &ports.ExtractedFields{
		Number:           "FAC-2045",
		IssueDate:        datePtrTest(2026, time.March, 1),
		DueDate:          datePtrTest(2026, time.March, 31),
		TotalAmount:      decPtr("1250000"),
		CounterpartTaxID: "900123456-7",
		Confidence: map[string]float64{
			"invoice_id":      0.98,
			"invoice_date":    0.95,
			"due_date":        0.92,
			"total_amount":    0.99,
			"supplier_tax_id": 0.91,
		},
	}})
	env.providers.byTaxID["900123456-7"] = &entity.Provider{ID: "prov-9", TaxID: "900123456-7"}

	draft, err := env.uc.Start(context.Background(), dto.UploadDocumentRequest{
		FileName: "factura.pdf",
		MimeType: "application/pdf",
		Content:  []byte("%PDF-1.4 contenido"),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.DraftExtracted, draft.Status)
	assert.Equal(t, "FAC-2045", draft.Number)
	assert.Equal(t, "900123456-7", draft.ProviderTaxID)
	require.NotNil(t, draft.ProviderID)
	assert.Equal(t, "prov-9", *draft.ProviderID)
	assert.Len(t, env.files.files, 1, "el archivo original se conserva")
}

func TestStart_FalloDeExtraccionDejaBorradorFailed(t *testing.T) {
	env := newTestEnv(&fakeExtractor{
		err: domain.NewExtraction(domain.ExtractionReasonMalformed, assert.AnError),
	})

	draft, err := env.uc.Start(context.Background(), dto.UploadDocumentRequest{
		FileName: "rota.pdf",
		MimeType: "application/pdf",
		Content:  []byte("no es un pdf"),
	})

	require.NoError(t, err, "un fallo del extractor es un estado del borrador, no un error")
	assert.Equal(t, entity.DraftFailed, draft.Status)
	assert.Equal(t, domain.ExtractionReasonMalformed, draft.FailureReason)
	assert.Len(t, env.files.files, 1, "el archivo se conserva para el reintento")
}

func TestStart_ConfianzaBajaDejaCampoEnBlanco(t *testing.T) {
	env := newTestEnv(&fakeExtractor{fields: &ports.ExtractedFields{
		Number:      "FAC-001",
		TotalAmount: decPtr("999"),
		Confidence: map[string]float64{
			"invoice_id":   0.95,
			"total_amount": 0.40, // bajo el umbral 0.7
		},
	}})

	draft, err := env.uc.Start(context.Background(), dto.UploadDocumentRequest{
		FileName: "factura.png",
		MimeType: "image/png",
		Content:  []byte("png"),
	})

	require.NoError(t, err)
	assert.Equal(t, "FAC-001", draft.Number)
	assert.Nil(t, draft.TotalAmount, "campo bajo el umbral queda vacío para captura manual")
}

// ── Retry ────────────────────────────────────────────────────────────────────

func TestRetry_SoloDesdeFailed(t *testing.T) {
	env := newTestEnv(&fakeExtractor{fields: &ports.ExtractedFields{}})
	env.drafts.drafts["d-1"] = &entity.DraftInvoice{ID: "d-1", Status: entity.DraftExtracted}

	_, err := env.uc.Retry(context.Background(), "d-1")

	require.Error(t, err)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "status", ve.Field)
	assert.Zero(t, env.extractor.calls)
}

func TestRetry_ReleeElArchivoYExtrae(t *testing.T) {
	env := newTestEnv(&fakeExtractor{fields: &ports.ExtractedFields{Number: "FAC-77"}})
	env.files.files["documentos/d-2.pdf"] = []byte("%PDF")
	env.drafts.drafts["d-2"] = &entity.DraftInvoice{
		ID:            "d-2",
		Status:        entity.DraftFailed,
		MimeType:      "application/pdf",
		FileKey:       "documentos/d-2.pdf",
		FailureReason: domain.ExtractionReasonTimeout,
	}

	draft, err := env.uc.Retry(context.Background(), "d-2")

	require.NoError(t, err)
	assert.Equal(t, 1, env.extractor.calls)
	assert.Equal(t, entity.DraftExtracted, draft.Status)
	assert.Empty(t, draft.FailureReason)
	assert.Equal(t, "FAC-77", draft.Number)
}

func TestRetry_BorradorInexistente(t *testing.T) {
	env := newTestEnv(&fakeExtractor{})

	_, err := env.uc.Retry(context.Background(), "no-existe")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Commit ───────────────────────────────────────────────────────────────────

func extractedDraft() *entity.DraftInvoice {
	return &entity.DraftInvoice{
		ID:          "d-3",
		Status:      entity.DraftExtracted,
		FileKey:     "documentos/d-3.pdf",
		Number:      "FAC-300",
		IssueDate:   datePtrTest(2026, time.April, 1),
		DueDate:     datePtrTest(2026, time.April, 30),
		TotalAmount: decPtr("500000"),
	}
}

func TestCommit_SinCostCenterRefNoCreaFactura(t *testing.T) {
	env := newTestEnv(&fakeExtractor{})
	env.drafts.drafts["d-3"] = extractedDraft()

	_, err := env.uc.Commit(context.Background(), "d-3", dto.CommitDraftRequest{
		ProjectID: "proj-1",
	})

	require.Error(t, err)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "costCenterRef", ve.Field)
	assert.Empty(t, env.invoices.created, "no debe crearse ninguna factura")
	assert.Equal(t, entity.DraftExtracted, env.drafts.drafts["d-3"].Status)
}

func TestCommit_SinProjectRefNoCreaFactura(t *testing.T) {
	env := newTestEnv(&fakeExtractor{})
	env.drafts.drafts["d-3"] = extractedDraft()

	_, err := env.uc.Commit(context.Background(), "d-3", dto.CommitDraftRequest{
		CostCenterID: "cc-1",
	})

	require.Error(t, err)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "projectRef", ve.Field)
	assert.Empty(t, env.invoices.created)
}

func TestCommit_Exitoso(t *testing.T) {
	env := newTestEnv(&fakeExtractor{})
	env.drafts.drafts["d-3"] = extractedDraft()

	inv, err := env.uc.Commit(context.Background(), "d-3", dto.CommitDraftRequest{
		ProjectID:    "proj-1",
		CostCenterID: "cc-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "FAC-300", inv.Number)
	assert.Equal(t, entity.StatusPending, inv.Status)
	require.NotNil(t, inv.ProjectID)
	assert.Equal(t, "proj-1", *inv.ProjectID)
	require.NotNil(t, inv.CostCenterID)
	assert.Equal(t, "cc-1", *inv.CostCenterID)
	assert.True(t, inv.TotalAmount.Equal(decimal.RequireFromString("500000")))
	assert.Equal(t, entity.DraftCommitted, env.drafts.drafts["d-3"].Status)
	assert.Len(t, env.invoices.created, 1)
}

func TestCommit_OverridesDelOperador(t *testing.T) {
	env := newTestEnv(&fakeExtractor{})
	env.drafts.drafts["d-3"] = extractedDraft()

	inv, err := env.uc.Commit(context.Background(), "d-3", dto.CommitDraftRequest{
		ProjectID:    "proj-1",
		CostCenterID: "cc-1",
		Number:       "FAC-300-CORREGIDA",
		TotalAmount:  decPtr("450000"),
	})

	require.NoError(t, err)
	assert.Equal(t, "FAC-300-CORREGIDA", inv.Number)
	assert.True(t, inv.TotalAmount.Equal(decimal.RequireFromString("450000")))
}

func TestCommit_SoloDesdeExtracted(t *testing.T) {
	env := newTestEnv(&fakeExtractor{})
	env.drafts.drafts["d-4"] = &entity.DraftInvoice{ID: "d-4", Status: entity.DraftFailed}

	_, err := env.uc.Commit(context.Background(), "d-4", dto.CommitDraftRequest{
		ProjectID:    "proj-1",
		CostCenterID: "cc-1",
	})

	require.Error(t, err)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "status", ve.Field)
}

func TestCommit_SinNumeroExtraidoNiOverride(t *testing.T) {
	env := newTestEnv(&fakeExtractor{})
	d := extractedDraft()
	d.Number = ""
	env.drafts.drafts["d-3"] = d

	_, err := env.uc.Commit(context.Background(), "d-3", dto.CommitDraftRequest{
		ProjectID:    "proj-1",
		CostCenterID: "cc-1",
	})

	require.Error(t, err)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "number", ve.Field)
	assert.Empty(t, env.invoices.created)
}

// ── Discard ──────────────────────────────────────────────────────────────────

func TestDiscard_EliminaElArchivo(t *testing.T) {
	env := newTestEnv(&fakeExtractor{})
	env.files.files["documentos/d-5.pdf"] = []byte("%PDF")
	env.drafts.drafts["d-5"] = &entity.DraftInvoice{
		ID:      "d-5",
		Status:  entity.DraftFailed,
		FileKey: "documentos/d-5.pdf",
	}

	err := env.uc.Discard(context.Background(), "d-5")

	require.NoError(t, err)
	assert.Equal(t, entity.DraftDiscarded, env.drafts.drafts["d-5"].Status)
	assert.Contains(t, env.files.deleted, "documentos/d-5.pdf")
}

func TestDiscard_YaResuelto(t *testing.T) {
	env := newTestEnv(&fakeExtractor{})
	env.drafts.drafts["d-6"] = &entity.DraftInvoice{ID: "d-6", Status: entity.DraftCommitted}

	err := env.uc.Discard(context.Background(), "d-6")

	require.Error(t, err)
	_, ok := domain.AsValidation(err)
	assert.True(t, ok)
}
