package document

import (
	"testing"

	"invoicer/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() entity.Snapshot {
	return entity.Snapshot{
		InvoiceID:     uuid.MustParse("018f6f3e-1111-7000-8000-000000000001"),
		ClientName:    "ACME Corp",
		ClientAddress: "1 Infinite Loop\nSpringfield",
		InvoiceDate:   "2024-01-15",
		DueDate:       "2024-02-15",
		Items: []entity.Item{
			{Description: "Widget", Quantity: 3, UnitPrice: decimal.NewFromFloat(10.0)},
			{Description: "Gadget", Quantity: 2, UnitPrice: decimal.NewFromFloat(4.5)},
		},
		Total: decimal.NewFromFloat(39.0),
	}
}

func TestPDFRenderer_Render(t *testing.T) {
	renderer := NewPDFRenderer()

	artifact, err := renderer.Render(sampleSnapshot())
	require.NoError(t, err)
	require.NotEmpty(t, artifact)

	// PDF magic header
	assert.Equal(t, "%PDF", string(artifact[:4]))
}

func TestPDFRenderer_RenderIsDeterministic(t *testing.T) {
	renderer := NewPDFRenderer()
	snapshot := sampleSnapshot()

	first, err := renderer.Render(snapshot)
	require.NoError(t, err)
	second, err := renderer.Render(snapshot)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPDFRenderer_RenderChangesWithContent(t *testing.T) {
	renderer := NewPDFRenderer()

	first, err := renderer.Render(sampleSnapshot())
	require.NoError(t, err)

	updated := sampleSnapshot()
	updated.Items[0].Quantity = 5
	updated.Total = decimal.NewFromFloat(59.0)

	second, err := renderer.Render(updated)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPDFRenderer_RenderEmptyItems(t *testing.T) {
	renderer := NewPDFRenderer()

	snapshot := sampleSnapshot()
	snapshot.Items = nil
	snapshot.Total = decimal.Zero

	artifact, err := renderer.Render(snapshot)
	require.NoError(t, err)
	assert.NotEmpty(t, artifact)
}
