package billing

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// InvoicePDFGenerator puerto de generación del PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice, client *entity.Client, lines []*entity.InvoiceLine) ([]byte, error)
}

// PDFUseCase arma los datos de una factura y delega el render al generador.
type PDFUseCase struct {
	invRepo    repository.InvoiceRepository
	clientRepo repository.ClientRepository
	generator  InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(invRepo repository.InvoiceRepository, clientRepo repository.ClientRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invRepo: invRepo, clientRepo: clientRepo, generator: generator}
}

// GetInvoicePDF genera los bytes del PDF de la factura.
func (uc *PDFUseCase) GetInvoicePDF(ctx context.Context, invoiceID string) ([]byte, error) {
	inv, err := uc.invRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	client, err := uc.clientRepo.GetByID(inv.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invRepo.ListLines(invoiceID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateInvoicePDF(ctx, inv, client, lines)
}
