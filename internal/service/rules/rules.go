// Package rules provides EN 16931 business rule validation for invoices.
package rules

import (
	"fmt"
	"regexp"
	"time"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/modelinvoice"
)

// DateLayout is the expected layout of invoice dates.
const DateLayout = "2006-01-02"

var (
	siretPattern    = regexp.MustCompile(`^\d{14}$`)
	vatPattern      = regexp.MustCompile(`^[A-Z]{2}`)
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Report holds the outcome of a rule check. Errors make the invoice unfit for
// generation, warnings flag omissions which stay legal but hinder payment.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Check validates an invoice against the EN 16931 business rules and returns
// a report. Errors and Warnings are never nil so they serialize as [].
func Check(invoice modelinvoice.Invoice) Report {
	errs := make([]string, 0)
	warnings := make([]string, 0)

	if invoice.InvoiceNumber == "" {
		errs = append(errs, "invoice number must not be blank")
	}
	if _, err := time.Parse(DateLayout, invoice.IssueDate); err != nil {
		errs = append(errs, fmt.Sprintf("issue date %q is not a valid YYYY-MM-DD date", invoice.IssueDate))
	}
	if invoice.DueDate != "" {
		if _, err := time.Parse(DateLayout, invoice.DueDate); err != nil {
			errs = append(errs, fmt.Sprintf("due date %q is not a valid YYYY-MM-DD date", invoice.DueDate))
		}
	} else {
		warnings = append(warnings, "no due date provided")
	}
	if !currencyPattern.MatchString(invoice.Currency) {
		errs = append(errs, fmt.Sprintf("currency %q is not an ISO 4217 code", invoice.Currency))
	}

	errs = append(errs, checkParty("seller", invoice.Seller)...)
	errs = append(errs, checkParty("buyer", invoice.Buyer)...)

	if len(invoice.Lines) == 0 {
		errs = append(errs, "invoice must contain at least one line")
	}
	for _, line := range invoice.Lines {
		if line.Description == "" {
			errs = append(errs, fmt.Sprintf("line %s: description must not be blank", line.ID))
		}
		if line.Quantity.Sign() <= 0 {
			errs = append(errs, fmt.Sprintf("line %s: quantity must be positive", line.ID))
		}
		if line.UnitPrice.Sign() < 0 {
			errs = append(errs, fmt.Sprintf("line %s: unit price must not be negative", line.ID))
		}
		if line.VATRate.Sign() < 0 {
			errs = append(errs, fmt.Sprintf("line %s: VAT rate must not be negative", line.ID))
		}
	}

	if invoice.BankIBAN == "" {
		warnings = append(warnings, "no IBAN provided, payment means will be omitted")
	}
	if invoice.PaymentTerms == "" {
		warnings = append(warnings, "no payment terms provided")
	}

	return Report{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

func checkParty(role string, party modelinvoice.Party) []string {
	errs := make([]string, 0)
	if party.Name == "" {
		errs = append(errs, fmt.Sprintf("%s name must not be blank", role))
	}
	if !siretPattern.MatchString(party.SIRET) {
		errs = append(errs, fmt.Sprintf("%s SIRET must be 14 digits", role))
	}
	if !vatPattern.MatchString(party.VATNumber) {
		errs = append(errs, fmt.Sprintf("%s VAT number must start with a country prefix", role))
	}
	return errs
}
