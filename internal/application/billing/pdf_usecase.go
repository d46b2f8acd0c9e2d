package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/proman-api/internal/domain"
	"github.com/jhoicas/proman-api/internal/domain/entity"
	"github.com/jhoicas/proman-api/internal/domain/repository"
)

// PDFUseCase genera el PDF de una factura con los datos del inquilino y del inmueble.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	tenantRepo   repository.TenantRepository
	propertyRepo repository.PropertyRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	tenantRepo repository.TenantRepository,
	propertyRepo repository.PropertyRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF recupera la factura y sus datos asociados y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura o su inquilino no existen para el usuario.
func (uc *PDFUseCase) DownloadInvoicePDF(
	ctx context.Context,
	userID, invoiceID string,
) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	inv, err := uc.invoiceRepo.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", fmt.Errorf("%w: factura %s", domain.ErrNotFound, invoiceID)
	}

	// ── 2. Cargar inquilino ───────────────────────────────────────────────────
	tenant, err := uc.tenantRepo.GetByID(ctx, userID, inv.TenantID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener inquilino: %w", err)
	}
	if tenant == nil {
		return nil, "", fmt.Errorf("%w: inquilino %s", domain.ErrNotFound, inv.TenantID)
	}

	// ── 3. Cargar inmueble (opcional) ─────────────────────────────────────────
	var property *entity.Property
	if inv.PropertyID != nil {
		property, err = uc.propertyRepo.GetByID(ctx, userID, *inv.PropertyID)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener inmueble: %w", err)
		}
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, tenant, property)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	return pdfBytes, pdfFilename(inv), nil
}

// pdfFilename factura_{número}.pdf; sin número se usa el ID.
func pdfFilename(inv *entity.Invoice) string {
	ref := inv.Number
	if ref == "" {
		ref = inv.ID
	}
	ref = strings.NewReplacer("/", "-", " ", "_").Replace(ref)
	return fmt.Sprintf("factura_%s.pdf", ref)
}
