// Package document implements invoice document rendering and artifact storage.
package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"invoicer/internal/domain/entity"
	"invoicer/internal/domain/service"
	"invoicer/internal/errors"
)

// renderEpoch pins the PDF metadata dates so that rendering the same snapshot
// twice produces byte-identical output.
var renderEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// pdfRenderer lays out an invoice snapshot as an A4 PDF.
type pdfRenderer struct{}

// NewPDFRenderer is the constructor for pdfRenderer.
// It returns the implementation as a service.DocumentRenderer interface.
func NewPDFRenderer() service.DocumentRenderer {
	return &pdfRenderer{}
}

// Render produces the PDF bytes for an invoice snapshot. It is a pure
// function of the snapshot; no clock or id generator is consulted.
func (r *pdfRenderer) Render(snapshot entity.Snapshot) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(renderEpoch)
	pdf.SetModificationDate(renderEpoch)
	pdf.SetTitle(fmt.Sprintf("Invoice %s", snapshot.InvoiceID), true)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "INVOICE")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice ID: %s", snapshot.InvoiceID))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice date: %s", snapshot.InvoiceDate))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Due date: %s", snapshot.DueDate))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "Bill to")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, snapshot.ClientName)
	pdf.Ln(6)
	pdf.MultiCell(0, 6, snapshot.ClientAddress, "", "L", false)
	pdf.Ln(6)

	r.renderItemTable(pdf, snapshot)

	if pdf.Err() {
		return nil, errors.Wrap(pdf.Error(), "failed to lay out invoice pdf")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to write invoice pdf")
	}

	return buf.Bytes(), nil
}

func (r *pdfRenderer) renderItemTable(pdf *fpdf.Fpdf, snapshot entity.Snapshot) {
	const (
		descWidth  = 90.0
		qtyWidth   = 20.0
		priceWidth = 35.0
		totalWidth = 35.0
		rowHeight  = 8.0
	)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(descWidth, rowHeight, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(qtyWidth, rowHeight, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(priceWidth, rowHeight, "Unit price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(totalWidth, rowHeight, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range snapshot.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
		pdf.CellFormat(descWidth, rowHeight, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(qtyWidth, rowHeight, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(priceWidth, rowHeight, item.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(totalWidth, rowHeight, lineTotal.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(descWidth+qtyWidth+priceWidth, rowHeight, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(totalWidth, rowHeight, snapshot.Total.StringFixed(2), "1", 1, "R", false, 0, "")
}
