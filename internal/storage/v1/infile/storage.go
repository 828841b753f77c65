// Package infile provides data types and methods for local file storage operations.
package infile

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/config"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/modelinvoice"
	storage "github.com/7g2dvxmw94-gif/facturx-engine/internal/storage/v1"
	storageErrors "github.com/7g2dvxmw94-gif/facturx-engine/internal/storage/v1/errors"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/storage/v1/modelstorage"
)

// Check interface implementation explicitly
var (
	_ storage.InvoiceStorage = (*Storage)(nil)
)

// Storage struct defines data structure handling and provides support for adding new implementations.
// The index maps artifact filenames to their records; PDF bytes live on disk
// under the storage directory and the index is replayed from a JSONL file on
// startup.
type Storage struct {
	mu      sync.Mutex
	Cfg     *config.StorageConfig
	Index   map[string]modelstorage.InvoiceRecord
	Encoder *json.Encoder
	sugar   *zap.SugaredLogger
}

// InitStorage initializes a Storage object and sets its attributes.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.StorageConfig, sugar *zap.SugaredLogger) (*Storage, error) {
	if err := os.MkdirAll(cfg.StorageDir, 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FileIndexPath), 0755); err != nil {
		return nil, err
	}
	st := Storage{
		Cfg:   cfg,
		Index: make(map[string]modelstorage.InvoiceRecord),
		sugar: sugar,
	}
	if err := st.restore(); err != nil {
		return nil, err
	}
	// open the index outside the goroutine since this operation might not finish prior to encoding operations
	file, err := os.OpenFile(cfg.FileIndexPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	st.Encoder = json.NewEncoder(file)
	// listen for ctx cancellation followed by index closure, use sync.WaitGroup
	// to prevent premature termination when main exits
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := file.Close(); err != nil {
			sugar.Errorw("Could not close file index", "error", err)
			return
		}
		sugar.Info("File index closed successfully")
	}()
	return &st, nil
}

// Dump stores one artifact record in the index and its PDF bytes on disk.
func (s *Storage) Dump(ctx context.Context, record modelstorage.InvoiceRecord, pdf []byte) error {
	dumpDone := make(chan struct{}, 1)
	dumpError := make(chan error, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.Index[record.Filename]; ok {
			dumpError <- &storageErrors.AlreadyExistsError{Filename: record.Filename}
			return
		}
		if err := os.WriteFile(filepath.Join(s.Cfg.StorageDir, record.Filename), pdf, 0644); err != nil {
			dumpError <- &storageErrors.FileWriteError{Err: err}
			return
		}
		if err := s.Encoder.Encode(record); err != nil {
			dumpError <- &storageErrors.FileWriteError{Err: err}
			return
		}
		s.Index[record.Filename] = record
		dumpDone <- struct{}{}
	}()

	select {
	case <-ctx.Done():
		s.sugar.Warnw("Dumping artifact", "error", ctx.Err())
		return &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case dmpError := <-dumpError:
		s.sugar.Warnw("Dumping artifact", "error", dmpError)
		return dmpError
	case <-dumpDone:
		s.sugar.Infow("Dumping artifact", "filename", record.Filename, "client", record.ClientID)
		return nil
	}
}

// Retrieve returns the PDF bytes of one stored artifact scoped to a client.
func (s *Storage) Retrieve(ctx context.Context, clientID string, filename string) (pdf []byte, err error) {
	retrieveDone := make(chan []byte, 1)
	retrieveError := make(chan error, 1)
	go func() {
		s.mu.Lock()
		record, ok := s.Index[filename]
		s.mu.Unlock()
		if !ok || record.ClientID != clientID {
			retrieveError <- &storageErrors.NotFoundError{Filename: filename}
			return
		}
		b, err := os.ReadFile(filepath.Join(s.Cfg.StorageDir, record.Filename))
		if err != nil {
			retrieveError <- &storageErrors.FileReadError{Err: err}
			return
		}
		retrieveDone <- b
	}()

	select {
	case <-ctx.Done():
		s.sugar.Warnw("Retrieving artifact", "error", ctx.Err())
		return nil, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case rtrvError := <-retrieveError:
		s.sugar.Warnw("Retrieving artifact", "error", rtrvError)
		return nil, rtrvError
	case pdf := <-retrieveDone:
		s.sugar.Infow("Retrieving artifact", "filename", filename)
		return pdf, nil
	}
}

// RetrieveByClientID returns all stored artifact entries of one client.
func (s *Storage) RetrieveByClientID(ctx context.Context, clientID string) (invoices []modelinvoice.StoredInvoice, err error) {
	retrieveDone := make(chan []modelinvoice.StoredInvoice, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		var invoices []modelinvoice.StoredInvoice
		for _, record := range s.Index {
			if record.ClientID == clientID {
				invoices = append(invoices, storedInvoice(record))
			}
		}
		retrieveDone <- invoices
	}()

	select {
	case <-ctx.Done():
		s.sugar.Warnw("Retrieving artifacts by client ID", "error", ctx.Err())
		return nil, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case invoices := <-retrieveDone:
		s.sugar.Infow("Retrieving artifacts by client ID", "client", clientID, "count", len(invoices))
		return invoices, nil
	}
}

// GetStats returns the total number of stored invoices and distinct clients.
func (s *Storage) GetStats(ctx context.Context) (nInvoices, nClients int, err error) {
	retrieveDone := make(chan [2]int, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		uniqueClients := make(map[string]bool)
		for _, record := range s.Index {
			uniqueClients[record.ClientID] = true
		}
		retrieveDone <- [2]int{len(s.Index), len(uniqueClients)}
	}()

	select {
	case <-ctx.Done():
		s.sugar.Warnw("Retrieving stats", "error", ctx.Err())
		return 0, 0, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case stats := <-retrieveDone:
		return stats[0], stats[1], nil
	}
}

// PingDB is a mock for PSQL DB pinger for infile storage handling.
func (s *Storage) PingDB() error {
	return nil
}

// CloseDB is a mock for PSQL DB closer for infile storage handling.
func (s *Storage) CloseDB() error {
	return nil
}

// restore fills the index with artifact records from the JSONL index file.
func (s *Storage) restore() error {
	file, err := os.OpenFile(s.Cfg.FileIndexPath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer file.Close()
	reader := bufio.NewScanner(file)
	for reader.Scan() {
		var record modelstorage.InvoiceRecord
		if err := json.Unmarshal(reader.Bytes(), &record); err != nil {
			return err
		}
		s.Index[record.Filename] = record
	}
	if err := reader.Err(); err != nil {
		return err
	}
	s.sugar.Infow("Index was restored", "entries", len(s.Index))
	return nil
}

func storedInvoice(record modelstorage.InvoiceRecord) modelinvoice.StoredInvoice {
	return modelinvoice.StoredInvoice{
		Slug:          record.Slug,
		InvoiceNumber: record.InvoiceNumber,
		Filename:      record.Filename,
		Size:          record.Size,
		SHA256:        record.SHA256,
		TotalNet:      record.TotalNet,
		TotalVAT:      record.TotalVAT,
		TotalGross:    record.TotalGross,
		CreatedAt:     record.CreatedAt,
	}
}
