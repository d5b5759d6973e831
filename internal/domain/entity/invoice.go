package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is an ownership-scoped billing record. The owner is fixed at
// creation and never reassigned; every other field is replaced wholesale on
// update.
type Invoice struct {
	ID            uuid.UUID // The unique identifier for the invoice.
	OwnerID       uuid.UUID // Foreign key to the owning User. Set once, immutable.
	ClientName    string    // Name of the billed client.
	ClientAddress string    // Postal address of the billed client.
	InvoiceDate   string    // Issue date, YYYY-MM-DD.
	DueDate       string    // Payment due date, YYYY-MM-DD.
	Items         []Item    // Ordered line items; insertion order is significant for rendering.
	CreatedAt     time.Time // Timestamp of when this invoice was created.
	UpdatedAt     time.Time // Timestamp of the last modification to this invoice.
}

// Item is a single invoice line. Its total is derived, never stored.
type Item struct {
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// Snapshot captures the invoice content a document is rendered from, together
// with its computed total. Rendering the same snapshot twice produces
// equivalent documents.
type Snapshot struct {
	InvoiceID     uuid.UUID
	ClientName    string
	ClientAddress string
	InvoiceDate   string
	DueDate       string
	Items         []Item
	Total         decimal.Decimal
}
