// Package extraction adapta Google Document AI al puerto DocumentExtractor.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/soltec-andina/facturacion-api/internal/application/ports"
	"github.com/soltec-andina/facturacion-api/internal/domain"
	"github.com/soltec-andina/facturacion-api/pkg/config"
)

var _ ports.DocumentExtractor = (*DocumentAIExtractor)(nil)

// DocumentAIExtractor extrae campos de facturas con el Invoice Parser de
// Document AI. El tamaño y el mime type ya vienen validados por el pipeline;
// aquí solo se traduce el documento a campos candidatos con su confianza.
type DocumentAIExtractor struct {
	client *documentai.DocumentProcessorClient
	cfg    config.ExtractionConfig
	log    zerolog.Logger
}

// NewDocumentAIExtractor crea el cliente con endpoint regional si aplica.
// Las credenciales vienen del entorno (GOOGLE_APPLICATION_CREDENTIALS).
func NewDocumentAIExtractor(ctx context.Context, cfg config.ExtractionConfig, log zerolog.Logger) (*DocumentAIExtractor, error) {
	if cfg.ProjectID == "" || cfg.ProcessorID == "" {
		return nil, fmt.Errorf("extraction: DOCAI_PROJECT_ID y DOCAI_PROCESSOR_ID son obligatorios")
	}
	if cfg.Location == "" {
		cfg.Location = "us"
	}

	var opts []option.ClientOption
	if cfg.Location != "us" {
		endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", cfg.Location)
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("crear cliente Document AI: %w", err)
	}
	return &DocumentAIExtractor{client: client, cfg: cfg, log: log}, nil
}

// Close libera el cliente gRPC.
func (e *DocumentAIExtractor) Close() error {
	return e.client.Close()
}

// Extract procesa el documento y devuelve los campos candidatos. Los fallos
// salen como *domain.ExtractionError con motivo normalizado.
func (e *DocumentAIExtractor) Extract(ctx context.Context, content []byte, mimeType string) (*ports.ExtractedFields, error) {
	req := &documentaipb.ProcessRequest{
		Name: e.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  content,
				MimeType: mimeType,
			},
		},
	}

	resp, err := e.client.ProcessDocument(ctx, req)
	if err != nil {
		return nil, e.classifyError(err)
	}
	if resp.Document == nil {
		return nil, domain.NewExtraction(domain.ExtractionReasonMalformed,
			errors.New("respuesta sin documento"))
	}

	fields := e.mapEntities(resp.Document)
	e.log.Info().
		Str("number", fields.Number).
		Str("tax_id", fields.CounterpartTaxID).
		Int("entities", len(resp.Document.Entities)).
		Msg("extracción completada")
	return fields, nil
}

// processorName construye el nombre completo del procesador para el API.
func (e *DocumentAIExtractor) processorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s",
		e.cfg.ProjectID, e.cfg.Location, e.cfg.ProcessorID)
}

// classifyError traduce errores del API a motivos normalizados.
func (e *DocumentAIExtractor) classifyError(err error) error {
	errStr := err.Error()
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		strings.Contains(errStr, "DeadlineExceeded"),
		strings.Contains(errStr, "context deadline exceeded"):
		return domain.NewExtraction(domain.ExtractionReasonTimeout, err)
	case strings.Contains(errStr, "INVALID_ARGUMENT"):
		return domain.NewExtraction(domain.ExtractionReasonMalformed, err)
	case strings.Contains(errStr, "FAILED_PRECONDITION"):
		return domain.NewExtraction(domain.ExtractionReasonUnsupported, err)
	default:
		return domain.NewExtraction(domain.ExtractionReasonUnreachable, err)
	}
}

// mapEntities convierte las entidades del procesador en campos candidatos.
// Un campo que el procesador no reconoció queda vacío; nunca se inventa.
func (e *DocumentAIExtractor) mapEntities(doc *documentaipb.Document) *ports.ExtractedFields {
	fields := &ports.ExtractedFields{
		Confidence: make(map[string]float64),
	}

	for _, entity := range doc.Entities {
		value := strings.TrimSpace(entity.MentionText)
		fields.Confidence[entity.Type] = float64(entity.Confidence)

		switch entity.Type {
		case "invoice_id", "invoice_number":
			fields.Number = value
		case "invoice_date":
			if d, ok := extractDate(entity); ok {
				fields.IssueDate = &d
			}
		case "due_date":
			if d, ok := extractDate(entity); ok {
				fields.DueDate = &d
			}
		case "total_amount", "gross_amount":
			if amt, ok := extractAmount(entity); ok {
				fields.TotalAmount = &amt
			}
		case "payment_terms", "payment_method":
			fields.PaymentMethod = value
		case "line_item", "description":
			if fields.Description == "" {
				fields.Description = value
			}
		case "supplier_tax_id", "supplier_registration":
			fields.CounterpartTaxID = value
		}
	}
	return fields
}

// extractDate prefiere el valor normalizado del procesador; si no viene,
// intenta formatos comunes sobre el texto.
func extractDate(entity *documentaipb.Document_Entity) (time.Time, bool) {
	if nv := entity.NormalizedValue; nv != nil {
		if dv := nv.GetDateValue(); dv != nil {
			return time.Date(int(dv.Year), time.Month(dv.Month), int(dv.Day), 0, 0, 0, 0, time.UTC), true
		}
	}
	raw := strings.TrimSpace(entity.MentionText)
	if raw == "" {
		return time.Time{}, false
	}
	formats := []string{"2006-01-02", "02/01/2006", "02-01-2006", "2006/01/02"}
	for _, f := range formats {
		if d, err := time.Parse(f, raw); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// extractAmount prefiere el MoneyValue normalizado; si no viene, limpia el
// texto (formato es-CO: punto de miles, coma decimal) y lo parsea.
func extractAmount(entity *documentaipb.Document_Entity) (decimal.Decimal, bool) {
	if nv := entity.NormalizedValue; nv != nil {
		if mv := nv.GetMoneyValue(); mv != nil {
			units := decimal.NewFromInt(mv.Units)
			nanos := decimal.New(int64(mv.Nanos), -9)
			return units.Add(nanos), true
		}
	}

	cleaned := strings.TrimSpace(entity.MentionText)
	for _, s := range []string{" ", "$", "COP", "USD"} {
		cleaned = strings.ReplaceAll(cleaned, s, "")
	}
	if strings.Contains(cleaned, ",") {
		// 1.250.000,50 -> 1250000.50
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else if n := strings.Count(cleaned, "."); n > 1 {
		// solo puntos de miles: 1.250.000
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	if cleaned == "" {
		return decimal.Decimal{}, false
	}
	amt, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amt, true
}
