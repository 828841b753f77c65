package facturx

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/cii"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/layout"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/modelinvoice"
)

func sampleInvoice() modelinvoice.Invoice {
	return modelinvoice.Invoice{
		InvoiceNumber: "FA-2024-0042",
		IssueDate:     "2024-06-01",
		Currency:      "EUR",
		Seller: modelinvoice.Party{
			Name:      "ACME SARL",
			SIRET:     "73282932000074",
			VATNumber: "FR32123456789",
			Address: modelinvoice.Address{
				Street:     "1 rue de la Paix",
				City:       "Paris",
				PostalCode: "75002",
				Country:    "FR",
			},
		},
		Buyer: modelinvoice.Party{
			Name:      "Globex SAS",
			SIRET:     "12002701600357",
			VATNumber: "FR40303265045",
			Address: modelinvoice.Address{
				Street:     "99 avenue des Champs",
				City:       "Lyon",
				PostalCode: "69001",
				Country:    "FR",
			},
		},
		Lines: []modelinvoice.Line{
			{
				ID:          "1",
				Description: "Consulting",
				Quantity:    decimal.NewFromInt(1),
				Unit:        "DAY",
				UnitPrice:   decimal.NewFromInt(100),
				VATRate:     decimal.NewFromInt(20),
			},
		},
	}
}

func TestBuildArtifact(t *testing.T) {
	invoice := sampleInvoice()
	xmlBytes, err := cii.Generate(invoice)
	require.NoError(t, err)
	doc, err := layout.Render(invoice)
	require.NoError(t, err)

	pdf, err := Build(doc, xmlBytes, invoice)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	// the embedded file name and XMP markers sit uncompressed in the output
	assert.True(t, bytes.Contains(pdf, []byte(AttachmentName)))
	assert.True(t, bytes.Contains(pdf, []byte("pdfaid:part")))
	assert.Greater(t, len(pdf), 1000)
}

func TestBuildCreditNoteTitle(t *testing.T) {
	invoice := sampleInvoice()
	invoice.OriginalInvoiceNumber = "FA-2024-0041"
	xmlBytes, err := cii.Generate(invoice)
	require.NoError(t, err)
	doc, err := layout.Render(invoice)
	require.NoError(t, err)

	pdf, err := Build(doc, xmlBytes, invoice)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	// the document title lands in the XMP packet which stays uncompressed
	assert.True(t, bytes.Contains(pdf, []byte("Avoir FA-2024-0042")))
}
