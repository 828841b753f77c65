// Package invoicer provides interfaces for types to be in compliance with.
package invoicer

import (
	"context"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/modelinvoice"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/rules"
)

// Processor defines a set of methods for types implementing Processor.
type Processor interface {
	Generate(ctx context.Context, invoice modelinvoice.Invoice, clientID string) (*modelinvoice.Artifact, error)
	DryRun(invoice modelinvoice.Invoice) rules.Report
	RenderXML(invoice modelinvoice.Invoice) ([]byte, rules.Report, error)
	List(ctx context.Context, clientID string) ([]modelinvoice.StoredInvoice, error)
	Fetch(ctx context.Context, clientID string, filename string) ([]byte, error)
	Stats(ctx context.Context) (nInvoices, nClients int, err error)
	PingDB() error
}
