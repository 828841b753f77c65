// Package modelstorage provides model structures for storage operations.
package modelstorage

import (
	"time"
)

// InvoiceRecord defines one index entry for a stored Factur-X artifact. The
// PDF bytes themselves live on disk under the storage directory; the record
// carries everything needed to list, scope and verify them.
type InvoiceRecord struct {
	Slug          string    `json:"slug"`
	ClientID      string    `json:"client_id"`
	InvoiceNumber string    `json:"invoice_number"`
	Filename      string    `json:"filename"`
	Size          int64     `json:"size"`
	SHA256        string    `json:"sha256"`
	TotalNet      string    `json:"total_net"`
	TotalVAT      string    `json:"total_vat"`
	TotalGross    string    `json:"total_gross"`
	CreatedAt     time.Time `json:"created_at"`
}
