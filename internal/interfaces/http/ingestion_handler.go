package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/soltec-andina/facturacion-api/internal/application/dto"
	"github.com/soltec-andina/facturacion-api/internal/application/ingestion"
)

// IngestionHandler maneja la ingesta de documentos (protegido).
type IngestionHandler struct {
	uc *ingestion.UseCase
}

// NewIngestionHandler construye el handler.
func NewIngestionHandler(uc *ingestion.UseCase) *IngestionHandler {
	return &IngestionHandler{uc: uc}
}

// Upload recibe el documento (multipart, campo "file") y lanza la extracción.
// Responde el borrador en EXTRACTED o FAILED; el rechazo por tipo o tamaño es 400.
func (h *IngestionHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo multipart \"file\" requerido", Field: "file"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer el archivo", Field: "file"})
	}
	defer f.Close()

	// El techo real lo valida el pipeline; aquí solo se limita la lectura
	// para no retener en memoria un upload desbocado.
	content, err := io.ReadAll(io.LimitReader(f, ingestion.MaxFileSize+1))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer el archivo", Field: "file"})
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	out, err := h.uc.Start(c.UserContext(), dto.UploadDocumentRequest{
		FileName: fileHeader.Filename,
		MimeType: mimeType,
		Content:  content,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List devuelve los borradores vivos.
func (h *IngestionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene un borrador.
func (h *IngestionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Retry reintenta la extracción de un borrador FAILED.
func (h *IngestionHandler) Retry(c *fiber.Ctx) error {
	out, err := h.uc.Retry(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Commit confirma un borrador EXTRACTED como factura.
func (h *IngestionHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.uc.Commit(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"invoice_id": inv.ID,
		"number":     inv.Number,
		"status":     inv.Status,
	})
}

// Discard descarta un borrador.
func (h *IngestionHandler) Discard(c *fiber.Ctx) error {
	if err := h.uc.Discard(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
