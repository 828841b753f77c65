package invoicer

import (
	"bytes"
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/mocks"
	serviceErrors "github.com/7g2dvxmw94-gif/facturx-engine/internal/service/errors"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/modelinvoice"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleInvoice() modelinvoice.Invoice {
	return modelinvoice.Invoice{
		InvoiceNumber: "FA-2024-0042",
		IssueDate:     "2024-06-01",
		DueDate:       "2024-07-01",
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
				Quantity:    decimal.NewFromInt(2),
				Unit:        "DAY",
				UnitPrice:   decimal.NewFromInt(500),
				VATRate:     decimal.NewFromInt(20),
			},
		},
		PaymentTerms: "30 days net",
		BankIBAN:     "FR7630006000011234567890189",
	}
}

func TestInitInvoicerNilStorage(t *testing.T) {
	_, err := InitInvoicer(nil, zap.NewNop().Sugar())
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockInvoiceStorage(ctrl)
	processor, err := InitInvoicer(store, zap.NewNop().Sugar())
	require.NoError(t, err)

	store.EXPECT().Dump(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	artifact, err := processor.Generate(context.Background(), sampleInvoice(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "facture_FA-2024-0042.pdf", artifact.Filename)
	assert.True(t, bytes.HasPrefix(artifact.PDF, []byte("%PDF-")))
	assert.Contains(t, string(artifact.XML), "rsm:CrossIndustryInvoice")
}

func TestGenerateCreditNoteFilename(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockInvoiceStorage(ctrl)
	processor, err := InitInvoicer(store, zap.NewNop().Sugar())
	require.NoError(t, err)

	store.EXPECT().Dump(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	invoice := sampleInvoice()
	invoice.OriginalInvoiceNumber = "FA-2024-0041"
	artifact, err := processor.Generate(context.Background(), invoice, "acme")
	require.NoError(t, err)
	assert.Equal(t, "avoir_FA-2024-0042.pdf", artifact.Filename)
}

func TestGenerateInvalidInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockInvoiceStorage(ctrl)
	processor, err := InitInvoicer(store, zap.NewNop().Sugar())
	require.NoError(t, err)

	invoice := sampleInvoice()
	invoice.Lines = nil
	_, err = processor.Generate(context.Background(), invoice, "acme")
	var validationError *serviceErrors.ServiceValidationError
	require.ErrorAs(t, err, &validationError)
	assert.NotEmpty(t, validationError.Errors)
}

func TestDryRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockInvoiceStorage(ctrl)
	processor, err := InitInvoicer(store, zap.NewNop().Sugar())
	require.NoError(t, err)

	report := processor.DryRun(sampleInvoice())
	assert.True(t, report.Valid)
	assert.Empty(t, report.Warnings)

	invoice := sampleInvoice()
	invoice.BankIBAN = ""
	report = processor.DryRun(invoice)
	assert.True(t, report.Valid)
	assert.NotEmpty(t, report.Warnings)
}

func TestRenderXML(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockInvoiceStorage(ctrl)
	processor, err := InitInvoicer(store, zap.NewNop().Sugar())
	require.NoError(t, err)

	xmlBytes, report, err := processor.RenderXML(sampleInvoice())
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Contains(t, string(xmlBytes), "rsm:ExchangedDocument")
}

func TestListAndFetchDelegation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store := mocks.NewMockInvoiceStorage(ctrl)
	processor, err := InitInvoicer(store, zap.NewNop().Sugar())
	require.NoError(t, err)

	entries := []modelinvoice.StoredInvoice{{Slug: "abc12345", Filename: "facture_FA-2024-0042.pdf"}}
	store.EXPECT().RetrieveByClientID(gomock.Any(), "acme").Return(entries, nil)
	store.EXPECT().Retrieve(gomock.Any(), "acme", "facture_FA-2024-0042.pdf").Return([]byte("%PDF-"), nil)
	store.EXPECT().GetStats(gomock.Any()).Return(1, 1, nil)
	store.EXPECT().PingDB().Return(nil)

	listed, err := processor.List(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, entries, listed)

	pdf, err := processor.Fetch(context.Background(), "acme", "facture_FA-2024-0042.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-"), pdf)

	nInvoices, nClients, err := processor.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, nInvoices)
	assert.Equal(t, 1, nClients)

	assert.NoError(t, processor.PingDB())
}
