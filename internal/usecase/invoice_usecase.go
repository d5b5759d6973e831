package usecase

import (
	"context"

	"invoicer/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentStatus reports the state of the rendered document after a
// create/update. The invoice record is the source of truth; the document is a
// derived cache, so a failed render degrades the response instead of failing
// the operation.
type DocumentStatus string

const (
	// DocumentGenerated means the document was rendered and persisted.
	DocumentGenerated DocumentStatus = "generated"

	// DocumentFailed means the record committed but the document is stale or
	// missing until the next successful regeneration.
	DocumentFailed DocumentStatus = "failed"
)

// --- Input DTOs ---

// InvoiceInput carries the full mutable content of an invoice. On update it
// replaces every field except id and owner.
type InvoiceInput struct {
	ClientName    string
	ClientAddress string
	InvoiceDate   string
	DueDate       string
	Items         []entity.Item
}

// --- Output DTOs ---

// InvoiceOutput pairs an invoice with its computed total. DocumentStatus is
// only set by operations that regenerate the document.
type InvoiceOutput struct {
	Invoice        *entity.Invoice
	Total          decimal.Decimal
	DocumentStatus DocumentStatus
}

// DocumentOutput returns a rendered artifact ready to serve.
type DocumentOutput struct {
	Content     []byte
	ContentType string
	Filename    string
}

// InvoiceUsecase drives the invoice lifecycle: every mutation keeps the
// persisted record and its rendered document consistent, and every operation
// is scoped to the requesting owner.
type InvoiceUsecase interface {
	CreateInvoice(ctx context.Context, ownerID uuid.UUID, input *InvoiceInput) (*InvoiceOutput, error)
	ListInvoices(ctx context.Context, ownerID uuid.UUID, skip, limit int) ([]*InvoiceOutput, error)
	GetInvoice(ctx context.Context, invoiceID, ownerID uuid.UUID) (*InvoiceOutput, error)
	UpdateInvoice(ctx context.Context, invoiceID, ownerID uuid.UUID, input *InvoiceInput) (*InvoiceOutput, error)
	DeleteInvoice(ctx context.Context, invoiceID, ownerID uuid.UUID) error
	FetchDocument(ctx context.Context, invoiceID, ownerID uuid.UUID) (*DocumentOutput, error)
}
