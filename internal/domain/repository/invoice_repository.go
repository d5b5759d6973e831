package repository

import (
	"context"
	"errors"

	"invoicer/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrInvoiceNotFound is returned both when an invoice does not exist and when
// it exists but belongs to another owner. Callers must not be able to tell
// those cases apart.
var ErrInvoiceNotFound = errors.New("invoice not found")

// InvoiceRepository defines ownership-scoped persistence for invoices.
// Every read and write is keyed by (invoiceID, ownerID); no operation ever
// returns or mutates a record the requester does not own.
type InvoiceRepository interface {
	// Create persists a new invoice with its owner fixed to invoice.OwnerID.
	Create(ctx context.Context, invoice *entity.Invoice) error

	// FindByID retrieves an invoice only if it exists and is owned by ownerID.
	FindByID(ctx context.Context, id, ownerID uuid.UUID) (*entity.Invoice, error)

	// ListByOwner returns the owner's invoices in stable insertion order,
	// paginated by a non-negative offset and a positive limit.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*entity.Invoice, error)

	// Update replaces all mutable fields of the invoice atomically, under the
	// same ownership rule as FindByID.
	Update(ctx context.Context, invoice *entity.Invoice) error

	// Delete removes the invoice under the same ownership rule as FindByID.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
