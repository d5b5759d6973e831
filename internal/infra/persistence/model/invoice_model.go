package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// InvoiceModel mirrors the 'invoices' table. Line items live in a jsonb
// column: they are only ever read and written as a whole with their invoice,
// and their order must survive round-trips.
type InvoiceModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientName    string     `gorm:"type:varchar(255);not null"`
	ClientAddress string     `gorm:"type:text;not null"`
	InvoiceDate   string     `gorm:"type:varchar(10);not null"`
	DueDate       string     `gorm:"type:varchar(10);not null"`
	Items         ItemsJSON  `gorm:"type:jsonb;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ItemJSON is the stored shape of a single invoice line.
type ItemJSON struct {
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// ItemsJSON serializes an ordered item list into a single jsonb column.
type ItemsJSON []ItemJSON

// Value implements driver.Valuer for writing the jsonb column.
func (items ItemsJSON) Value() (driver.Value, error) {
	if items == nil {
		items = ItemsJSON{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal invoice items")
	}

	return string(raw), nil
}

// Scan implements sql.Scanner for reading the jsonb column.
func (items *ItemsJSON) Scan(value any) error {
	if value == nil {
		*items = ItemsJSON{}

		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.Errorf("unsupported items column type %T", value)
	}

	return errors.Wrap(json.Unmarshal(raw, items), "failed to unmarshal invoice items")
}
