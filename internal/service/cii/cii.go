// Package cii provides generation of UN/CEFACT Cross Industry Invoice XML
// documents conformant with the Factur-X EN 16931 extended profile.
package cii

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/modelinvoice"
)

// GuidelineID identifies the Factur-X profile the generated documents conform to.
const GuidelineID = "urn:cen.eu:en16931:2017#conformant#urn:factur-x.eu:1p0:extended"

const (
	nsRSM = "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
	nsRAM = "urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
	nsUDT = "urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"
	nsXSI = "http://www.w3.org/2001/XMLSchema-instance"
)

// Generate builds the CrossIndustryInvoice document for an invoice and returns
// it as indented UTF-8 XML.
func Generate(invoice modelinvoice.Invoice) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("rsm:CrossIndustryInvoice")
	root.CreateAttr("xmlns:rsm", nsRSM)
	root.CreateAttr("xmlns:ram", nsRAM)
	root.CreateAttr("xmlns:udt", nsUDT)
	root.CreateAttr("xmlns:xsi", nsXSI)

	docCtx := root.CreateElement("rsm:ExchangedDocumentContext")
	guideline := e(docCtx, "ram:GuidelineSpecifiedDocumentContextParameter", "")
	e(guideline, "ram:ID", GuidelineID)

	header := root.CreateElement("rsm:ExchangedDocument")
	e(header, "ram:ID", invoice.InvoiceNumber)
	e(header, "ram:TypeCode", invoice.TypeCode())
	addDate(header, "ram:IssueDateTime", invoice.IssueDate)

	tx := root.CreateElement("rsm:SupplyChainTradeTransaction")
	for _, line := range invoice.Lines {
		buildLine(tx, line, invoice.Currency)
	}

	agreement := e(tx, "ram:ApplicableHeaderTradeAgreement", "")
	buildParty(agreement, "ram:SellerTradeParty", invoice.Seller)
	buildParty(agreement, "ram:BuyerTradeParty", invoice.Buyer)

	e(tx, "ram:ApplicableHeaderTradeDelivery", "")

	settlement := e(tx, "ram:ApplicableHeaderTradeSettlement", "")
	e(settlement, "ram:InvoiceCurrencyCode", invoice.Currency)
	if invoice.BankIBAN != "" {
		means := e(settlement, "ram:SpecifiedTradeSettlementPaymentMeans", "")
		e(means, "ram:TypeCode", "30")
		account := e(means, "ram:PayeePartyCreditorFinancialAccount", "")
		e(account, "ram:IBANID", invoice.BankIBAN)
	}
	buildVATBreakdown(settlement, invoice)
	buildTotals(settlement, invoice)
	if invoice.IsCreditNote() {
		referenced := e(settlement, "ram:InvoiceReferencedDocument", "")
		e(referenced, "ram:IssuerAssignedID", invoice.OriginalInvoiceNumber)
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func buildParty(parent *etree.Element, tag string, party modelinvoice.Party) {
	p := e(parent, tag, "")
	e(p, "ram:Name", party.Name)
	legal := e(p, "ram:SpecifiedLegalOrganization", "")
	// schemeID 0002 designates the French SIRET registry
	e(legal, "ram:ID", party.SIRET).CreateAttr("schemeID", "0002")
	address := e(p, "ram:PostalTradeAddress", "")
	e(address, "ram:PostcodeCode", party.Address.PostalCode)
	e(address, "ram:LineOne", party.Address.Street)
	e(address, "ram:CityName", party.Address.City)
	e(address, "ram:CountryID", party.Address.Country)
	taxReg := e(p, "ram:SpecifiedTaxRegistration", "")
	e(taxReg, "ram:ID", party.VATNumber).CreateAttr("schemeID", "VA")
}

func buildLine(parent *etree.Element, line modelinvoice.Line, currency string) {
	item := e(parent, "ram:IncludedSupplyChainTradeLineItem", "")
	lineDoc := e(item, "ram:AssociatedDocumentLineDocument", "")
	e(lineDoc, "ram:LineID", line.ID)
	product := e(item, "ram:SpecifiedTradeProduct", "")
	e(product, "ram:Name", line.Description)
	agreement := e(item, "ram:SpecifiedLineTradeAgreement", "")
	gross := e(agreement, "ram:GrossPriceProductTradePrice", "")
	amount(gross, "ram:ChargeAmount", line.UnitPrice, currency)
	net := e(agreement, "ram:NetPriceProductTradePrice", "")
	amount(net, "ram:ChargeAmount", line.UnitPrice, currency)
	delivery := e(item, "ram:SpecifiedLineTradeDelivery", "")
	e(delivery, "ram:BilledQuantity", line.Quantity.StringFixed(4)).CreateAttr("unitCode", line.Unit)
	settlement := e(item, "ram:SpecifiedLineTradeSettlement", "")
	tax := e(settlement, "ram:ApplicableTradeTax", "")
	e(tax, "ram:TypeCode", "VAT")
	e(tax, "ram:CategoryCode", "S")
	e(tax, "ram:RateApplicablePercent", line.VATRate.StringFixed(2))
	summation := e(settlement, "ram:SpecifiedTradeSettlementLineMonetarySummation", "")
	amount(summation, "ram:LineTotalAmount", line.LineTotal(), currency)
}

func buildVATBreakdown(parent *etree.Element, invoice modelinvoice.Invoice) {
	for _, group := range invoice.VATBreakdown() {
		tax := e(parent, "ram:ApplicableTradeTax", "")
		amount(tax, "ram:CalculatedAmount", group.Amount, invoice.Currency)
		e(tax, "ram:TypeCode", "VAT")
		amount(tax, "ram:BasisAmount", group.Basis, invoice.Currency)
		e(tax, "ram:CategoryCode", "S")
		e(tax, "ram:RateApplicablePercent", group.Rate.StringFixed(2))
	}
}

func buildTotals(parent *etree.Element, invoice modelinvoice.Invoice) {
	sums := e(parent, "ram:SpecifiedTradeSettlementHeaderMonetarySummation", "")
	amount(sums, "ram:LineTotalAmount", invoice.TotalNet(), invoice.Currency)
	amount(sums, "ram:TaxBasisTotalAmount", invoice.TotalNet(), invoice.Currency)
	amount(sums, "ram:TaxTotalAmount", invoice.TotalVAT(), invoice.Currency)
	amount(sums, "ram:GrandTotalAmount", invoice.TotalGross(), invoice.Currency)
	amount(sums, "ram:DuePayableAmount", invoice.TotalGross(), invoice.Currency)
}

func e(parent *etree.Element, tag string, text string) *etree.Element {
	elem := parent.CreateElement(tag)
	if text != "" {
		elem.SetText(text)
	}
	return elem
}

func amount(parent *etree.Element, tag string, value decimal.Decimal, currency string) *etree.Element {
	elem := e(parent, tag, value.StringFixed(2))
	elem.CreateAttr("currencyID", currency)
	return elem
}

// addDate renders a date container holding a udt:DateTimeString in format 102 (YYYYMMDD).
func addDate(parent *etree.Element, tag string, date string) *etree.Element {
	container := e(parent, tag, "")
	dts := e(container, "udt:DateTimeString", strings.ReplaceAll(date, "-", ""))
	dts.CreateAttr("format", "102")
	return container
}
