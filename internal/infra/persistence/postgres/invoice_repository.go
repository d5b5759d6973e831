// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"invoicer/internal/domain/entity"
	domainerrors "invoicer/internal/domain/errors"
	"invoicer/internal/domain/repository"
	"invoicer/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// invoiceRepository implements the domain.InvoiceRepository interface using GORM.
// Every query is scoped by owner id; the repository never exposes whether a
// foreign-owned invoice exists.
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository is the constructor for invoiceRepository.
func NewInvoiceRepository(db *gorm.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// Create persists a new invoice with its owner fixed to invoice.OwnerID.
func (repo *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	invoiceM := fromInvoiceDomain(invoice)

	if err := repo.db.WithContext(ctx).Create(invoiceM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("invalid owner reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required invoice information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create invoice")
	}

	// Update the entity with the generated ID and timestamps
	invoice.ID = invoiceM.ID
	invoice.CreatedAt = invoiceM.CreatedAt
	invoice.UpdatedAt = invoiceM.UpdatedAt

	return nil
}

// FindByID retrieves an invoice only if it exists and is owned by ownerID.
func (repo *invoiceRepository) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*entity.Invoice, error) {
	var invoiceM model.InvoiceModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&invoiceM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrInvoiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find invoice by id")
	}

	return toInvoiceDomain(&invoiceM), nil
}

// ListByOwner returns the owner's invoices in insertion order. uuidv7 primary
// keys are time-ordered, so id order is insertion order.
func (repo *invoiceRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*entity.Invoice, error) {
	var invoiceMs []model.InvoiceModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&invoiceMs).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list invoices by owner")
	}

	invoices := make([]*entity.Invoice, 0, len(invoiceMs))
	for i := range invoiceMs {
		invoices = append(invoices, toInvoiceDomain(&invoiceMs[i]))
	}

	return invoices, nil
}

// Update replaces all mutable fields of the invoice in a single statement
// scoped by (id, owner). Zero rows affected means not found (or not owned).
func (repo *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	invoiceM := fromInvoiceDomain(invoice)

	result := repo.db.WithContext(ctx).
		Model(&model.InvoiceModel{}).
		Where("id = ? AND user_id = ?", invoice.ID, invoice.OwnerID).
		Updates(map[string]any{
			"client_name":    invoiceM.ClientName,
			"client_address": invoiceM.ClientAddress,
			"invoice_date":   invoiceM.InvoiceDate,
			"due_date":       invoiceM.DueDate,
			"items":          invoiceM.Items,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update invoice")
	}
	if result.RowsAffected == 0 {
		return repository.ErrInvoiceNotFound
	}

	return nil
}

// Delete removes the invoice under the same ownership rule as FindByID.
func (repo *invoiceRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.InvoiceModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete invoice")
	}
	if result.RowsAffected == 0 {
		return repository.ErrInvoiceNotFound
	}

	return nil
}

// toInvoiceDomain converts a GORM InvoiceModel to a domain Invoice entity.
func toInvoiceDomain(data *model.InvoiceModel) *entity.Invoice {
	items := make([]entity.Item, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, entity.Item{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	return &entity.Invoice{
		ID:            data.ID,
		OwnerID:       data.UserID,
		ClientName:    data.ClientName,
		ClientAddress: data.ClientAddress,
		InvoiceDate:   data.InvoiceDate,
		DueDate:       data.DueDate,
		Items:         items,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromInvoiceDomain converts a domain Invoice entity to a GORM InvoiceModel for persistence.
func fromInvoiceDomain(data *entity.Invoice) *model.InvoiceModel {
	items := make(model.ItemsJSON, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.ItemJSON{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	return &model.InvoiceModel{
		ID:            data.ID,
		UserID:        data.OwnerID,
		ClientName:    data.ClientName,
		ClientAddress: data.ClientAddress,
		InvoiceDate:   data.InvoiceDate,
		DueDate:       data.DueDate,
		Items:         items,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
