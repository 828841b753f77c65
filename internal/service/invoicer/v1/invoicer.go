// Package invoicer provides functionality for turning invoice data into
// stored Factur-X artifacts.
package invoicer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/speps/go-hashids/v2"
	"go.uber.org/zap"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/cii"
	serviceErrors "github.com/7g2dvxmw94-gif/facturx-engine/internal/service/errors"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/facturx"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/invoicer"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/layout"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/modelinvoice"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/rules"
	storage "github.com/7g2dvxmw94-gif/facturx-engine/internal/storage/v1"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/storage/v1/modelstorage"
)

const SaltKey = "Factur-X Artifact Key"
const MinLength = 8

// Check interface implementation explicitly
var (
	_ invoicer.Processor = (*Invoicer)(nil)
)

// Invoicer struct defines data structure handling and provides support for adding new implementations.
type Invoicer struct {
	SaltKey        string
	MinLength      int
	hashID         *hashids.HashID
	InvoiceStorage storage.InvoiceStorage
	sugar          *zap.SugaredLogger
}

// InitInvoicer initializes an Invoicer object and sets its attributes.
func InitInvoicer(s storage.InvoiceStorage, sugar *zap.SugaredLogger) (*Invoicer, error) {
	if s == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to service initializer"}
	}
	hd := hashids.NewData()
	hd.Salt = SaltKey
	hd.MinLength = MinLength
	hashID, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, &serviceErrors.ServiceInitHashError{Msg: err.Error()}
	}
	return &Invoicer{
		SaltKey:        SaltKey,
		MinLength:      MinLength,
		hashID:         hashID,
		InvoiceStorage: s,
		sugar:          sugar,
	}, nil
}

// Generate validates an invoice, builds its CII XML and visual PDF, assembles
// the Factur-X artifact, persists it and returns it.
func (inv *Invoicer) Generate(ctx context.Context, invoice modelinvoice.Invoice, clientID string) (*modelinvoice.Artifact, error) {
	report := rules.Check(invoice)
	if !report.Valid {
		return nil, &serviceErrors.ServiceValidationError{Errors: report.Errors}
	}
	xmlBytes, err := cii.Generate(invoice)
	if err != nil {
		return nil, err
	}
	doc, err := layout.Render(invoice)
	if err != nil {
		return nil, err
	}
	pdfBytes, err := facturx.Build(doc, xmlBytes, invoice)
	if err != nil {
		return nil, err
	}
	slug, err := inv.generateSlug()
	if err != nil {
		return nil, &serviceErrors.ServiceEncodingHashError{Msg: err.Error()}
	}
	checksum := sha256.Sum256(pdfBytes)
	record := modelstorage.InvoiceRecord{
		Slug:          slug,
		ClientID:      clientID,
		InvoiceNumber: invoice.InvoiceNumber,
		Filename:      artifactFilename(invoice),
		Size:          int64(len(pdfBytes)),
		SHA256:        hex.EncodeToString(checksum[:]),
		TotalNet:      invoice.TotalNet().StringFixed(2),
		TotalVAT:      invoice.TotalVAT().StringFixed(2),
		TotalGross:    invoice.TotalGross().StringFixed(2),
		CreatedAt:     time.Now().UTC(),
	}
	if err := inv.InvoiceStorage.Dump(ctx, record, pdfBytes); err != nil {
		return nil, err
	}
	inv.sugar.Infow("Artifact generated", "invoice", invoice.InvoiceNumber, "client", clientID, "slug", slug, "size", record.Size)
	return &modelinvoice.Artifact{
		Filename: record.Filename,
		PDF:      pdfBytes,
		XML:      xmlBytes,
	}, nil
}

// DryRun validates an invoice without producing or storing anything.
func (inv *Invoicer) DryRun(invoice modelinvoice.Invoice) rules.Report {
	return rules.Check(invoice)
}

// RenderXML builds the CII XML of an invoice along with its rule report
// without producing the PDF.
func (inv *Invoicer) RenderXML(invoice modelinvoice.Invoice) ([]byte, rules.Report, error) {
	report := rules.Check(invoice)
	xmlBytes, err := cii.Generate(invoice)
	if err != nil {
		return nil, report, err
	}
	return xmlBytes, report, nil
}

// List returns all stored artifact entries of one client.
func (inv *Invoicer) List(ctx context.Context, clientID string) ([]modelinvoice.StoredInvoice, error) {
	return inv.InvoiceStorage.RetrieveByClientID(ctx, clientID)
}

// Fetch returns the stored PDF bytes of one artifact scoped to a client.
func (inv *Invoicer) Fetch(ctx context.Context, clientID string, filename string) ([]byte, error) {
	return inv.InvoiceStorage.Retrieve(ctx, clientID, filename)
}

// Stats returns the storage usage statistics.
func (inv *Invoicer) Stats(ctx context.Context) (nInvoices, nClients int, err error) {
	return inv.InvoiceStorage.GetStats(ctx)
}

// PingDB checks the storage backend liveness.
func (inv *Invoicer) PingDB() error {
	return inv.InvoiceStorage.PingDB()
}

// generateSlug generates and returns a short unique identifier for an artifact.
func (inv *Invoicer) generateSlug() (string, error) {
	now := time.Now().UnixNano()
	return inv.hashID.EncodeInt64([]int64{now})
}

func artifactFilename(invoice modelinvoice.Invoice) string {
	if invoice.IsCreditNote() {
		return "avoir_" + invoice.InvoiceNumber + ".pdf"
	}
	return "facture_" + invoice.InvoiceNumber + ".pdf"
}
