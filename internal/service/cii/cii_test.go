package cii

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/modelinvoice"
)

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
				Quantity:    decimal.NewFromInt(1),
				Unit:        "DAY",
				UnitPrice:   decimal.NewFromInt(100),
				VATRate:     decimal.NewFromInt(20),
			},
		},
		BankIBAN: "FR7630006000011234567890189",
	}
}

func parse(t *testing.T, b []byte) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(b))
	return doc
}

func TestGenerateDocumentHeader(t *testing.T) {
	b, err := Generate(sampleInvoice())
	require.NoError(t, err)
	doc := parse(t, b)

	root := doc.FindElement("//rsm:CrossIndustryInvoice")
	require.NotNil(t, root)

	guideline := doc.FindElement("//rsm:ExchangedDocumentContext/ram:GuidelineSpecifiedDocumentContextParameter/ram:ID")
	require.NotNil(t, guideline)
	assert.Equal(t, GuidelineID, guideline.Text())

	assert.Equal(t, "FA-2024-0042", doc.FindElement("//rsm:ExchangedDocument/ram:ID").Text())
	assert.Equal(t, "380", doc.FindElement("//rsm:ExchangedDocument/ram:TypeCode").Text())

	date := doc.FindElement("//rsm:ExchangedDocument/ram:IssueDateTime/udt:DateTimeString")
	require.NotNil(t, date)
	assert.Equal(t, "20240601", date.Text())
	assert.Equal(t, "102", date.SelectAttrValue("format", ""))
}

func TestGenerateParties(t *testing.T) {
	b, err := Generate(sampleInvoice())
	require.NoError(t, err)
	doc := parse(t, b)

	seller := doc.FindElement("//ram:SellerTradeParty")
	require.NotNil(t, seller)
	assert.Equal(t, "ACME SARL", seller.FindElement("ram:Name").Text())
	siret := seller.FindElement("ram:SpecifiedLegalOrganization/ram:ID")
	require.NotNil(t, siret)
	assert.Equal(t, "73282932000074", siret.Text())
	assert.Equal(t, "0002", siret.SelectAttrValue("schemeID", ""))
	vat := seller.FindElement("ram:SpecifiedTaxRegistration/ram:ID")
	require.NotNil(t, vat)
	assert.Equal(t, "FR32123456789", vat.Text())
	assert.Equal(t, "VA", vat.SelectAttrValue("schemeID", ""))

	buyer := doc.FindElement("//ram:BuyerTradeParty")
	require.NotNil(t, buyer)
	assert.Equal(t, "Globex SAS", buyer.FindElement("ram:Name").Text())
}

func TestGenerateSettlement(t *testing.T) {
	b, err := Generate(sampleInvoice())
	require.NoError(t, err)
	doc := parse(t, b)

	assert.Equal(t, "EUR", doc.FindElement("//ram:InvoiceCurrencyCode").Text())

	means := doc.FindElement("//ram:SpecifiedTradeSettlementPaymentMeans")
	require.NotNil(t, means)
	assert.Equal(t, "30", means.FindElement("ram:TypeCode").Text())
	assert.Equal(t, "FR7630006000011234567890189",
		means.FindElement("ram:PayeePartyCreditorFinancialAccount/ram:IBANID").Text())

	grand := doc.FindElement("//ram:SpecifiedTradeSettlementHeaderMonetarySummation/ram:GrandTotalAmount")
	require.NotNil(t, grand)
	assert.Equal(t, "120.00", grand.Text())
	assert.Equal(t, "EUR", grand.SelectAttrValue("currencyID", ""))
}

func TestGenerateLines(t *testing.T) {
	invoice := sampleInvoice()
	invoice.Lines = append(invoice.Lines, modelinvoice.Line{
		ID:          "2",
		Description: "Travel",
		Quantity:    decimal.NewFromInt(2),
		Unit:        "EA",
		UnitPrice:   decimal.NewFromInt(50),
		VATRate:     decimal.NewFromFloat(5.5),
	})
	b, err := Generate(invoice)
	require.NoError(t, err)
	doc := parse(t, b)

	lines := doc.FindElements("//ram:IncludedSupplyChainTradeLineItem")
	assert.Len(t, lines, 2)

	qty := doc.FindElement("//ram:IncludedSupplyChainTradeLineItem/ram:SpecifiedLineTradeDelivery/ram:BilledQuantity")
	require.NotNil(t, qty)
	assert.Equal(t, "1.0000", qty.Text())
	assert.Equal(t, "DAY", qty.SelectAttrValue("unitCode", ""))

	taxes := doc.FindElements("//ram:ApplicableHeaderTradeSettlement/ram:ApplicableTradeTax")
	assert.Len(t, taxes, 2)
}

func TestGenerateCreditNote(t *testing.T) {
	invoice := sampleInvoice()
	invoice.OriginalInvoiceNumber = "FA-2024-0041"
	b, err := Generate(invoice)
	require.NoError(t, err)
	doc := parse(t, b)

	assert.Equal(t, "381", doc.FindElement("//rsm:ExchangedDocument/ram:TypeCode").Text())
	referenced := doc.FindElement("//ram:InvoiceReferencedDocument/ram:IssuerAssignedID")
	require.NotNil(t, referenced)
	assert.Equal(t, "FA-2024-0041", referenced.Text())
}

func TestGenerateOmitsPaymentMeansWithoutIBAN(t *testing.T) {
	invoice := sampleInvoice()
	invoice.BankIBAN = ""
	b, err := Generate(invoice)
	require.NoError(t, err)
	doc := parse(t, b)
	assert.Nil(t, doc.FindElement("//ram:SpecifiedTradeSettlementPaymentMeans"))
}
