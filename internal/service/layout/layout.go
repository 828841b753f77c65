// Package layout provides the visual PDF rendering of invoices and credit notes.
package layout

import (
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/modelinvoice"
)

var (
	headerFill = [3]int{44, 62, 80}    // dark slate
	tableFill  = [3]int{52, 152, 219}  // blue
	altRowFill = [3]int{236, 240, 241} // light grey
)

var lineColWidths = [7]float64{7, 60, 15, 15, 20, 15, 25}

// Render lays out one invoice on an A4 page and returns the document ready
// for Factur-X assembly. The document is not yet serialized so the assembler
// can still attach the XML before output.
func Render(invoice modelinvoice.Invoice) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	title := "FACTURE N° " + invoice.InvoiceNumber
	if invoice.IsCreditNote() {
		title = "AVOIR N° " + invoice.InvoiceNumber
	}
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr("Date d'émission : "+invoice.IssueDate), "", 1, "L", false, 0, "")
	if invoice.DueDate != "" {
		pdf.CellFormat(0, 5, tr("Date d'échéance : "+invoice.DueDate), "", 1, "L", false, 0, "")
	}
	if invoice.IsCreditNote() {
		pdf.CellFormat(0, 5, tr("Facture d'origine : "+invoice.OriginalInvoiceNumber), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	renderParties(pdf, tr, invoice)
	pdf.Ln(8)
	renderLines(pdf, tr, invoice)
	pdf.Ln(5)
	renderTotals(pdf, tr, invoice)

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	if invoice.PaymentTerms != "" {
		pdf.CellFormat(0, 5, tr("Conditions de paiement : "+invoice.PaymentTerms), "", 1, "L", false, 0, "")
	}
	if invoice.BankIBAN != "" {
		pdf.CellFormat(0, 5, tr("IBAN : "+invoice.BankIBAN), "", 1, "L", false, 0, "")
	}

	if pdf.Err() {
		return nil, pdf.Error()
	}
	return pdf, nil
}

func renderParties(pdf *fpdf.Fpdf, tr func(string) string, invoice modelinvoice.Invoice) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(85, 7, "VENDEUR", "1", 0, "L", true, 0, "")
	pdf.CellFormat(85, 7, "ACHETEUR", "1", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	rows := [][2]string{
		{invoice.Seller.Name, invoice.Buyer.Name},
		{invoice.Seller.Address.Street, invoice.Buyer.Address.Street},
		{invoice.Seller.Address.PostalCode + " " + invoice.Seller.Address.City,
			invoice.Buyer.Address.PostalCode + " " + invoice.Buyer.Address.City},
		{"SIRET : " + invoice.Seller.SIRET, "SIRET : " + invoice.Buyer.SIRET},
		{"TVA : " + invoice.Seller.VATNumber, "TVA : " + invoice.Buyer.VATNumber},
	}
	for _, row := range rows {
		pdf.CellFormat(85, 6, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(85, 6, tr(row[1]), "1", 1, "L", false, 0, "")
	}
}

func renderLines(pdf *fpdf.Fpdf, tr func(string) string, invoice modelinvoice.Invoice) {
	headers := [7]string{"#", "Description", "Qté", "Unité", "PU HT", "TVA %", "Total HT"}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(tableFill[0], tableFill[1], tableFill[2])
	pdf.SetTextColor(255, 255, 255)
	for i, header := range headers {
		ln := 0
		if i == len(headers)-1 {
			ln = 1
		}
		pdf.CellFormat(lineColWidths[i], 7, tr(header), "1", ln, "L", true, 0, "")
	}
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(altRowFill[0], altRowFill[1], altRowFill[2])
	for i, line := range invoice.Lines {
		fill := i%2 == 1
		cells := [7]string{
			line.ID,
			line.Description,
			line.Quantity.String(),
			line.Unit,
			euro(line.UnitPrice),
			line.VATRate.StringFixed(0) + "%",
			euro(line.LineTotal()),
		}
		for j, cell := range cells {
			align := "R"
			if j < 2 {
				align = "L"
			}
			ln := 0
			if j == len(cells)-1 {
				ln = 1
			}
			pdf.CellFormat(lineColWidths[j], 6, tr(cell), "1", ln, align, fill, 0, "")
		}
	}
}

func renderTotals(pdf *fpdf.Fpdf, tr func(string) string, invoice modelinvoice.Invoice) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(130, 6, tr("Total HT :"), "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, tr(euro(invoice.TotalNet())), "", 1, "R", false, 0, "")
	pdf.CellFormat(130, 6, tr("Total TVA :"), "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, tr(euro(invoice.TotalVAT())), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(130, 7, tr("Total TTC :"), "", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, tr(euro(invoice.TotalGross())), "", 1, "R", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func euro(value decimal.Decimal) string {
	return value.StringFixed(2) + " €"
}
