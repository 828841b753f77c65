// Package modeldto provides data transfer object models for processing client-server interactions.
package modeldto

import (
	"github.com/shopspring/decimal"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/modelinvoice"
)

// Address is the request model of a postal address.
type Address struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country"`
}

// Party is the request model of a seller or buyer.
type Party struct {
	Name      string  `json:"name" validate:"required"`
	SIRET     string  `json:"siret" validate:"required"`
	VATNumber string  `json:"vat_number" validate:"required"`
	Address   Address `json:"address"`
	Email     string  `json:"email,omitempty" validate:"omitempty,email"`
}

// InvoiceLine is the request model of one invoice line.
type InvoiceLine struct {
	ID          string          `json:"id" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
}

// Invoice is the request model of an invoice generation query.
type Invoice struct {
	InvoiceNumber string        `json:"invoice_number" validate:"required"`
	IssueDate     string        `json:"issue_date" validate:"required"`
	DueDate       string        `json:"due_date,omitempty"`
	Currency      string        `json:"currency"`
	Seller        Party         `json:"seller"`
	Buyer         Party         `json:"buyer"`
	Lines         []InvoiceLine `json:"lines" validate:"required,min=1,dive"`
	PaymentTerms  string        `json:"payment_terms,omitempty"`
	BankIBAN      string        `json:"bank_iban,omitempty"`
}

// CreditNote is the request model of a credit note generation query. It is an
// invoice plus a reference to the cancelled invoice.
type CreditNote struct {
	Invoice
	OriginalInvoiceNumber string `json:"original_invoice_number" validate:"required"`
}

// ToDomain converts the DTO into a service-level invoice applying defaults.
func (i Invoice) ToDomain() modelinvoice.Invoice {
	invoice := modelinvoice.Invoice{
		InvoiceNumber: i.InvoiceNumber,
		IssueDate:     i.IssueDate,
		DueDate:       i.DueDate,
		Currency:      i.Currency,
		Seller:        i.Seller.toDomain(),
		Buyer:         i.Buyer.toDomain(),
		PaymentTerms:  i.PaymentTerms,
		BankIBAN:      i.BankIBAN,
	}
	if invoice.Currency == "" {
		invoice.Currency = "EUR"
	}
	for _, line := range i.Lines {
		unit := line.Unit
		if unit == "" {
			unit = "EA"
		}
		invoice.Lines = append(invoice.Lines, modelinvoice.Line{
			ID:          line.ID,
			Description: line.Description,
			Quantity:    line.Quantity,
			Unit:        unit,
			UnitPrice:   line.UnitPrice,
			VATRate:     line.VATRate,
		})
	}
	return invoice
}

// ToDomain converts the DTO into a service-level credit note.
func (c CreditNote) ToDomain() modelinvoice.Invoice {
	invoice := c.Invoice.ToDomain()
	invoice.OriginalInvoiceNumber = c.OriginalInvoiceNumber
	return invoice
}

func (p Party) toDomain() modelinvoice.Party {
	country := p.Address.Country
	if country == "" {
		country = "FR"
	}
	return modelinvoice.Party{
		Name:      p.Name,
		SIRET:     p.SIRET,
		VATNumber: p.VATNumber,
		Email:     p.Email,
		Address: modelinvoice.Address{
			Street:     p.Address.Street,
			City:       p.Address.City,
			PostalCode: p.Address.PostalCode,
			Country:    country,
		},
	}
}

// HealthResponse is the response model of the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ValidateXMLResponse is the response model of the validate-xml endpoint.
type ValidateXMLResponse struct {
	Valid      bool     `json:"valid"`
	Errors     []string `json:"errors"`
	XMLPreview string   `json:"xml_preview"`
}

// ListInvoicesResponse is the response model of the invoice listing endpoint.
type ListInvoicesResponse struct {
	Invoices []modelinvoice.StoredInvoice `json:"invoices"`
}

// StatsResponse is the response model of the internal stats endpoint.
type StatsResponse struct {
	Invoices int `json:"invoices"`
	Clients  int `json:"clients"`
}

// ErrorResponse is the response model of request processing failures.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}
