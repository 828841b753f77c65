// Package modelinvoice provides model structures for invoice handling on the service level.
package modelinvoice

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Address defines a postal address of a trade party.
type Address struct {
	Street     string
	City       string
	PostalCode string
	Country    string
}

// Party defines a seller or buyer identified by SIRET and VAT number.
type Party struct {
	Name      string
	SIRET     string
	VATNumber string
	Address   Address
	Email     string
}

// Line defines one invoice line with its quantity, price and VAT rate.
type Line struct {
	ID          string
	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	VATRate     decimal.Decimal
}

// LineTotal returns the net amount of the line.
func (l Line) LineTotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// VATAmount returns the VAT amount of the line.
func (l Line) VATAmount() decimal.Decimal {
	return l.LineTotal().Mul(l.VATRate).Div(decimal.NewFromInt(100))
}

// Invoice defines one invoice or credit note. A non-empty OriginalInvoiceNumber
// marks the document as a credit note referencing the cancelled invoice.
type Invoice struct {
	InvoiceNumber         string
	IssueDate             string
	DueDate               string
	Currency              string
	Seller                Party
	Buyer                 Party
	Lines                 []Line
	PaymentTerms          string
	BankIBAN              string
	OriginalInvoiceNumber string
}

// IsCreditNote reports whether the document cancels a previously issued invoice.
func (inv Invoice) IsCreditNote() bool {
	return inv.OriginalInvoiceNumber != ""
}

// TypeCode returns the UNTDID 1001 document type code, 380 for a commercial
// invoice and 381 for a credit note.
func (inv Invoice) TypeCode() string {
	if inv.IsCreditNote() {
		return "381"
	}
	return "380"
}

// TotalNet returns the total amount without VAT.
func (inv Invoice) TotalNet() decimal.Decimal {
	total := decimal.Zero
	for _, line := range inv.Lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// TotalVAT returns the total VAT amount.
func (inv Invoice) TotalVAT() decimal.Decimal {
	total := decimal.Zero
	for _, line := range inv.Lines {
		total = total.Add(line.VATAmount())
	}
	return total
}

// TotalGross returns the total amount including VAT.
func (inv Invoice) TotalGross() decimal.Decimal {
	return inv.TotalNet().Add(inv.TotalVAT())
}

// VATGroup aggregates line amounts sharing one VAT rate.
type VATGroup struct {
	Rate   decimal.Decimal
	Basis  decimal.Decimal
	Amount decimal.Decimal
}

// VATBreakdown groups lines by VAT rate and returns the groups ordered by
// ascending rate.
func (inv Invoice) VATBreakdown() []VATGroup {
	groups := make(map[string]*VATGroup)
	for _, line := range inv.Lines {
		key := line.VATRate.String()
		group, ok := groups[key]
		if !ok {
			group = &VATGroup{Rate: line.VATRate, Basis: decimal.Zero, Amount: decimal.Zero}
			groups[key] = group
		}
		group.Basis = group.Basis.Add(line.LineTotal())
		group.Amount = group.Amount.Add(line.VATAmount())
	}
	breakdown := make([]VATGroup, 0, len(groups))
	for _, group := range groups {
		breakdown = append(breakdown, *group)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Rate.LessThan(breakdown[j].Rate)
	})
	return breakdown
}

// StoredInvoice defines one stored artifact entry as exposed to API clients.
type StoredInvoice struct {
	Slug          string    `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	Filename      string    `json:"filename"`
	Size          int64     `json:"size"`
	SHA256        string    `json:"sha256"`
	TotalNet      string    `json:"total_net"`
	TotalVAT      string    `json:"total_vat"`
	TotalGross    string    `json:"total_gross"`
	CreatedAt     time.Time `json:"created_at"`
}

// Artifact defines a generated Factur-X document ready to be sent to a client.
type Artifact struct {
	Filename string
	PDF      []byte
	XML      []byte
}
