// Package storage provides interfaces for types to be in compliance with.
package storage

import (
	"context"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/modelinvoice"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/storage/v1/modelstorage"
)

// ArtifactSetter defines a set of methods for types implementing ArtifactSetter.
type ArtifactSetter interface {
	Dump(ctx context.Context, record modelstorage.InvoiceRecord, pdf []byte) error
}

// ArtifactGetter defines a set of methods for types implementing ArtifactGetter.
type ArtifactGetter interface {
	Retrieve(ctx context.Context, clientID string, filename string) (pdf []byte, err error)
}

// ArtifactLister defines a set of methods for types implementing ArtifactLister.
type ArtifactLister interface {
	RetrieveByClientID(ctx context.Context, clientID string) (invoices []modelinvoice.StoredInvoice, err error)
}

// StatsGetter defines a set of methods for types implementing StatsGetter.
type StatsGetter interface {
	GetStats(ctx context.Context) (nInvoices, nClients int, err error)
}

// Pinger defines a set of methods for types implementing Pinger.
type Pinger interface {
	PingDB() error
}

// Closer defines a set of methods for types implementing Closer.
type Closer interface {
	CloseDB() error
}

// InvoiceStorage defines a set of embedded interfaces for types implementing InvoiceStorage.
type InvoiceStorage interface {
	ArtifactSetter
	ArtifactGetter
	ArtifactLister
	StatsGetter
	Pinger
	Closer
}
