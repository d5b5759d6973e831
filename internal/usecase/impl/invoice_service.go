package impl

import (
	"context"
	"fmt"
	"log/slog"

	"invoicer/config"
	"invoicer/internal/domain/entity"
	domainerrors "invoicer/internal/domain/errors"
	"invoicer/internal/domain/repository"
	"invoicer/internal/domain/service"
	"invoicer/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// invoiceService implements the InvoiceUsecase interface. It is the single
// place that coordinates store mutations with document regeneration.
type invoiceService struct {
	invoiceRepo      repository.InvoiceRepository
	pricing          service.PricingService
	renderer         service.DocumentRenderer
	documents        service.DocumentStore
	defaultListLimit int
	maxListLimit     int
	logger           *slog.Logger
}

// InvoiceServiceParams holds dependencies for InvoiceService, injected by Fx.
type InvoiceServiceParams struct {
	fx.In

	InvoiceRepo repository.InvoiceRepository
	Pricing     service.PricingService
	Renderer    service.DocumentRenderer
	Documents   service.DocumentStore
	Config      *config.Config
	Logger      *slog.Logger
}

// NewInvoiceService is the constructor for invoiceService.
func NewInvoiceService(params InvoiceServiceParams) usecase.InvoiceUsecase {
	defaultLimit := 100
	maxLimit := 1000
	if params.Config != nil && params.Config.Invoices != nil {
		if params.Config.Invoices.DefaultListLimit > 0 {
			defaultLimit = params.Config.Invoices.DefaultListLimit
		}
		if params.Config.Invoices.MaxListLimit > 0 {
			maxLimit = params.Config.Invoices.MaxListLimit
		}
	}

	return &invoiceService{
		invoiceRepo:      params.InvoiceRepo,
		pricing:          params.Pricing,
		renderer:         params.Renderer,
		documents:        params.Documents,
		defaultListLimit: defaultLimit,
		maxListLimit:     maxLimit,
		logger:           params.Logger,
	}
}

// CreateInvoice validates and sums the items, commits the record, then
// renders and persists the document. A render failure after the commit leaves
// the invoice active with a degraded document status.
func (srv *invoiceService) CreateInvoice(ctx context.Context, ownerID uuid.UUID, input *usecase.InvoiceInput) (*usecase.InvoiceOutput, error) {
	total, err := srv.pricing.InvoiceTotal(input.Items)
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		OwnerID:       ownerID,
		ClientName:    input.ClientName,
		ClientAddress: input.ClientAddress,
		InvoiceDate:   input.InvoiceDate,
		DueDate:       input.DueDate,
		Items:         input.Items,
	}

	if err := srv.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, errors.Wrap(err, "failed to create invoice")
	}

	srv.logger.Info("Invoice created", slog.Any("invoiceID", invoice.ID), slog.Any("ownerID", ownerID))

	// Render from the entity just written, never from a reread.
	status := srv.regenerateDocument(ctx, invoice, total)

	return &usecase.InvoiceOutput{Invoice: invoice, Total: total, DocumentStatus: status}, nil
}

// ListInvoices returns the owner's invoices with their computed totals.
func (srv *invoiceService) ListInvoices(ctx context.Context, ownerID uuid.UUID, skip, limit int) ([]*usecase.InvoiceOutput, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = srv.defaultListLimit
	}
	if limit > srv.maxListLimit {
		limit = srv.maxListLimit
	}

	invoices, err := srv.invoiceRepo.ListByOwner(ctx, ownerID, skip, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list invoices")
	}

	outputs := make([]*usecase.InvoiceOutput, 0, len(invoices))
	for _, invoice := range invoices {
		total, err := srv.pricing.InvoiceTotal(invoice.Items)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to total invoice %s", invoice.ID)
		}
		outputs = append(outputs, &usecase.InvoiceOutput{Invoice: invoice, Total: total})
	}

	return outputs, nil
}

// GetInvoice returns a single owned invoice with its computed total.
func (srv *invoiceService) GetInvoice(ctx context.Context, invoiceID, ownerID uuid.UUID) (*usecase.InvoiceOutput, error) {
	invoice, err := srv.invoiceRepo.FindByID(ctx, invoiceID, ownerID)
	if err != nil {
		return nil, srv.mapInvoiceError(err)
	}

	total, err := srv.pricing.InvoiceTotal(invoice.Items)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to total invoice %s", invoice.ID)
	}

	return &usecase.InvoiceOutput{Invoice: invoice, Total: total}, nil
}

// UpdateInvoice replaces all mutable fields, then regenerates the document
// from the data it just wrote.
func (srv *invoiceService) UpdateInvoice(ctx context.Context, invoiceID, ownerID uuid.UUID, input *usecase.InvoiceInput) (*usecase.InvoiceOutput, error) {
	total, err := srv.pricing.InvoiceTotal(input.Items)
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		ID:            invoiceID,
		OwnerID:       ownerID,
		ClientName:    input.ClientName,
		ClientAddress: input.ClientAddress,
		InvoiceDate:   input.InvoiceDate,
		DueDate:       input.DueDate,
		Items:         input.Items,
	}

	if err := srv.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, srv.mapInvoiceError(err)
	}

	srv.logger.Info("Invoice updated", slog.Any("invoiceID", invoiceID), slog.Any("ownerID", ownerID))

	status := srv.regenerateDocument(ctx, invoice, total)

	return &usecase.InvoiceOutput{Invoice: invoice, Total: total, DocumentStatus: status}, nil
}

// DeleteInvoice removes the record, then removes the rendered document on a
// best-effort basis. A failed document removal never fails the delete.
func (srv *invoiceService) DeleteInvoice(ctx context.Context, invoiceID, ownerID uuid.UUID) error {
	if err := srv.invoiceRepo.Delete(ctx, invoiceID, ownerID); err != nil {
		return srv.mapInvoiceError(err)
	}

	srv.logger.Info("Invoice deleted", slog.Any("invoiceID", invoiceID), slog.Any("ownerID", ownerID))

	if err := srv.documents.Delete(ctx, invoiceID); err != nil {
		srv.logger.Warn("Failed to remove invoice document",
			slog.Any("invoiceID", invoiceID),
			slog.Any("error", err),
		)
	}

	return nil
}

// FetchDocument checks ownership against the invoice store first, then
// retrieves the artifact. A failed ownership check hides document existence.
func (srv *invoiceService) FetchDocument(ctx context.Context, invoiceID, ownerID uuid.UUID) (*usecase.DocumentOutput, error) {
	if _, err := srv.invoiceRepo.FindByID(ctx, invoiceID, ownerID); err != nil {
		return nil, srv.mapInvoiceError(err)
	}

	content, err := srv.documents.Get(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return nil, domainerrors.ErrDocumentNotFound.WrapMessage("document not generated yet")
		}

		return nil, errors.Wrap(err, "failed to retrieve invoice document")
	}

	return &usecase.DocumentOutput{
		Content:     content,
		ContentType: "application/pdf",
		Filename:    fmt.Sprintf("invoice_%s.pdf", invoiceID),
	}, nil
}

// regenerateDocument renders and persists the document for an invoice the
// caller just wrote. Failures degrade instead of aborting: the committed
// record stays authoritative and the stale document is reported.
func (srv *invoiceService) regenerateDocument(ctx context.Context, invoice *entity.Invoice, total decimal.Decimal) usecase.DocumentStatus {
	snapshot := entity.Snapshot{
		InvoiceID:     invoice.ID,
		ClientName:    invoice.ClientName,
		ClientAddress: invoice.ClientAddress,
		InvoiceDate:   invoice.InvoiceDate,
		DueDate:       invoice.DueDate,
		Items:         invoice.Items,
		Total:         total,
	}

	artifact, err := srv.renderer.Render(snapshot)
	if err != nil {
		srv.logger.Warn("Invoice document rendering failed",
			slog.Any("invoiceID", invoice.ID),
			slog.Any("error", err),
		)

		return usecase.DocumentFailed
	}

	key, err := srv.documents.Put(ctx, invoice.ID, artifact)
	if err != nil {
		srv.logger.Warn("Invoice document persistence failed",
			slog.Any("invoiceID", invoice.ID),
			slog.Any("error", err),
		)

		return usecase.DocumentFailed
	}

	srv.logger.Debug("Invoice document regenerated",
		slog.Any("invoiceID", invoice.ID),
		slog.String("key", key),
	)

	return usecase.DocumentGenerated
}

// mapInvoiceError converts repository sentinels to domain errors; absent and
// foreign-owned invoices are indistinguishable to the caller.
func (srv *invoiceService) mapInvoiceError(err error) error {
	if errors.Is(err, repository.ErrInvoiceNotFound) {
		return domainerrors.ErrInvoiceNotFound.WrapMessage("invoice not found")
	}

	return err
}
