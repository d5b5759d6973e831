package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"invoicer/internal/delivery/http/middleware"
	"invoicer/internal/delivery/http/response"
	"invoicer/internal/domain/entity"
	domainerrors "invoicer/internal/domain/errors"
	"invoicer/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// InvoiceHandler holds dependencies for invoice-related handlers.
// Every operation runs under the owner id set by the auth middleware.
type InvoiceHandler struct {
	uc     usecase.InvoiceUsecase
	logger *slog.Logger
}

// NewInvoiceHandler is the constructor for InvoiceHandler, injected by Fx.
func NewInvoiceHandler(uc usecase.InvoiceUsecase, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		uc:     uc,
		logger: logger,
	}
}

type itemRequest struct {
	Description string  `json:"description" validate:"required"`
	Quantity    int64   `json:"quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

type invoiceRequest struct {
	ClientName    string        `json:"client_name" validate:"required"`
	ClientAddress string        `json:"client_address" validate:"required"`
	InvoiceDate   string        `json:"invoice_date" validate:"required,datetime=2006-01-02"`
	DueDate       string        `json:"due_date" validate:"required,datetime=2006-01-02"`
	Items         []itemRequest `json:"items" validate:"dive"`
}

type itemResponse struct {
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type invoiceResponse struct {
	ID             uuid.UUID       `json:"id"`
	ClientName     string          `json:"client_name"`
	ClientAddress  string          `json:"client_address"`
	InvoiceDate    string          `json:"invoice_date"`
	DueDate        string          `json:"due_date"`
	Items          []itemResponse  `json:"items"`
	Total          decimal.Decimal `json:"total"`
	DocumentStatus string          `json:"document_status,omitempty"`
}

func (r *invoiceRequest) toInput() *usecase.InvoiceInput {
	items := make([]entity.Item, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, entity.Item{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   decimal.NewFromFloat(item.UnitPrice),
		})
	}

	return &usecase.InvoiceInput{
		ClientName:    r.ClientName,
		ClientAddress: r.ClientAddress,
		InvoiceDate:   r.InvoiceDate,
		DueDate:       r.DueDate,
		Items:         items,
	}
}

func toInvoiceResponse(output *usecase.InvoiceOutput) invoiceResponse {
	items := make([]itemResponse, 0, len(output.Invoice.Items))
	for _, item := range output.Invoice.Items {
		items = append(items, itemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	return invoiceResponse{
		ID:             output.Invoice.ID,
		ClientName:     output.Invoice.ClientName,
		ClientAddress:  output.Invoice.ClientAddress,
		InvoiceDate:    output.Invoice.InvoiceDate,
		DueDate:        output.Invoice.DueDate,
		Items:          items,
		Total:          output.Total,
		DocumentStatus: string(output.DocumentStatus),
	}
}

// Create handles invoice creation for the authenticated owner.
func (h *InvoiceHandler) Create(c echo.Context) error {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidToken.WrapMessage("owner id missing from context")
	}

	var req invoiceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid invoice input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateInvoice(c.Request().Context(), ownerID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, toInvoiceResponse(output))
}

// List returns a page of the owner's invoices.
func (h *InvoiceHandler) List(c echo.Context) error {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidToken.WrapMessage("owner id missing from context")
	}

	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}

	outputs, err := h.uc.ListInvoices(c.Request().Context(), ownerID, skip, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	page := make([]invoiceResponse, 0, len(outputs))
	for _, output := range outputs {
		page = append(page, toInvoiceResponse(output))
	}

	return c.JSON(http.StatusOK, page)
}

// Get returns a single owned invoice.
func (h *InvoiceHandler) Get(c echo.Context) error {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidToken.WrapMessage("owner id missing from context")
	}

	invoiceID, err := invoiceIDParam(c)
	if err != nil {
		return err
	}

	output, err := h.uc.GetInvoice(c.Request().Context(), invoiceID, ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toInvoiceResponse(output))
}

// Update replaces the invoice content and regenerates its document.
func (h *InvoiceHandler) Update(c echo.Context) error {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidToken.WrapMessage("owner id missing from context")
	}

	invoiceID, err := invoiceIDParam(c)
	if err != nil {
		return err
	}

	var req invoiceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid invoice input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateInvoice(c.Request().Context(), invoiceID, ownerID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toInvoiceResponse(output))
}

// Delete removes the invoice and its rendered document.
func (h *InvoiceHandler) Delete(c echo.Context) error {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidToken.WrapMessage("owner id missing from context")
	}

	invoiceID, err := invoiceIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteInvoice(c.Request().Context(), invoiceID, ownerID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Document streams the rendered PDF for an owned invoice.
func (h *InvoiceHandler) Document(c echo.Context) error {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		return domainerrors.ErrInvalidToken.WrapMessage("owner id missing from context")
	}

	invoiceID, err := invoiceIDParam(c)
	if err != nil {
		return err
	}

	output, err := h.uc.FetchDocument(c.Request().Context(), invoiceID, ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`inline; filename=%q`, output.Filename))

	return c.Blob(http.StatusOK, output.ContentType, output.Content)
}

// invoiceIDParam parses the id path parameter. A malformed id maps to the
// same not-found error as a missing invoice, so id syntax leaks nothing.
func invoiceIDParam(c echo.Context) (uuid.UUID, error) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrInvoiceNotFound.WrapMessage("malformed invoice id")
	}

	return invoiceID, nil
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domainerrors.ErrValidationFailed.WithDetails(
			"query parameter " + name + " must be an integer",
		)
	}

	return value, nil
}
