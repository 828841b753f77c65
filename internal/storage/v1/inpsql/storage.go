// Package inpsql provides data types and methods for PSQL storage operations.
package inpsql

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	_ "github.com/jackc/pgx/v4/stdlib"
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
// The index lives in PSQL; PDF bytes still live on disk under the storage
// directory since clients download them as files.
type Storage struct {
	Cfg   *config.StorageConfig
	DB    *sql.DB
	sugar *zap.SugaredLogger
}

// InitStorage initializes a Storage object, sets its attributes and starts a closure listener.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.StorageConfig, sugar *zap.SugaredLogger) (*Storage, error) {
	if err := os.MkdirAll(cfg.StorageDir, 0755); err != nil {
		return nil, err
	}
	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	st := Storage{
		Cfg:   cfg,
		DB:    db,
		sugar: sugar,
	}
	if err := st.createTable(ctx); err != nil {
		return nil, err
	}
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := st.DB.Close(); err != nil {
			sugar.Errorw("Could not close PSQL connection", "error", err)
			return
		}
		sugar.Info("PSQL connection closed successfully")
	}()
	return &st, nil
}

// Dump stores one artifact record in PSQL and its PDF bytes on disk.
func (s *Storage) Dump(ctx context.Context, record modelstorage.InvoiceRecord, pdf []byte) error {
	const query = `INSERT INTO invoices (slug, client_id, invoice_number, filename, size, sha256, total_net, total_vat, total_gross, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	dumpDone := make(chan struct{}, 1)
	dumpError := make(chan error, 1)
	go func() {
		_, err := s.DB.ExecContext(ctx, query, record.Slug, record.ClientID, record.InvoiceNumber,
			record.Filename, record.Size, record.SHA256, record.TotalNet, record.TotalVAT,
			record.TotalGross, record.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				dumpError <- &storageErrors.AlreadyExistsError{Filename: record.Filename, Err: err}
				return
			}
			dumpError <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		if err := os.WriteFile(filepath.Join(s.Cfg.StorageDir, record.Filename), pdf, 0644); err != nil {
			dumpError <- &storageErrors.FileWriteError{Err: err}
			return
		}
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
	const query = `SELECT filename FROM invoices WHERE client_id = $1 AND filename = $2`
	retrieveDone := make(chan []byte, 1)
	retrieveError := make(chan error, 1)
	go func() {
		var stored string
		err := s.DB.QueryRowContext(ctx, query, clientID, filename).Scan(&stored)
		if errors.Is(err, sql.ErrNoRows) {
			retrieveError <- &storageErrors.NotFoundError{Filename: filename, Err: err}
			return
		}
		if err != nil {
			retrieveError <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		b, err := os.ReadFile(filepath.Join(s.Cfg.StorageDir, stored))
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
	const query = `SELECT slug, invoice_number, filename, size, sha256, total_net, total_vat, total_gross, created_at
		FROM invoices WHERE client_id = $1 ORDER BY created_at`
	retrieveDone := make(chan []modelinvoice.StoredInvoice, 1)
	retrieveError := make(chan error, 1)
	go func() {
		rows, err := s.DB.QueryContext(ctx, query, clientID)
		if err != nil {
			retrieveError <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		defer rows.Close()
		var invoices []modelinvoice.StoredInvoice
		for rows.Next() {
			var entry modelinvoice.StoredInvoice
			err := rows.Scan(&entry.Slug, &entry.InvoiceNumber, &entry.Filename, &entry.Size,
				&entry.SHA256, &entry.TotalNet, &entry.TotalVAT, &entry.TotalGross, &entry.CreatedAt)
			if err != nil {
				retrieveError <- &storageErrors.ScanningPSQLError{Err: err}
				return
			}
			invoices = append(invoices, entry)
		}
		if err := rows.Err(); err != nil {
			retrieveError <- &storageErrors.ScanningPSQLError{Err: err}
			return
		}
		retrieveDone <- invoices
	}()

	select {
	case <-ctx.Done():
		s.sugar.Warnw("Retrieving artifacts by client ID", "error", ctx.Err())
		return nil, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case rtrvError := <-retrieveError:
		s.sugar.Warnw("Retrieving artifacts by client ID", "error", rtrvError)
		return nil, rtrvError
	case invoices := <-retrieveDone:
		s.sugar.Infow("Retrieving artifacts by client ID", "client", clientID, "count", len(invoices))
		return invoices, nil
	}
}

// GetStats returns the total number of stored invoices and distinct clients.
func (s *Storage) GetStats(ctx context.Context) (nInvoices, nClients int, err error) {
	const query = `SELECT COUNT(*), COUNT(DISTINCT client_id) FROM invoices`
	retrieveDone := make(chan [2]int, 1)
	retrieveError := make(chan error, 1)
	go func() {
		var countInvoices, countClients int
		if err := s.DB.QueryRowContext(ctx, query).Scan(&countInvoices, &countClients); err != nil {
			retrieveError <- &storageErrors.ExecutionPSQLError{Err: err}
			return
		}
		retrieveDone <- [2]int{countInvoices, countClients}
	}()

	select {
	case <-ctx.Done():
		s.sugar.Warnw("Retrieving stats", "error", ctx.Err())
		return 0, 0, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case rtrvError := <-retrieveError:
		s.sugar.Warnw("Retrieving stats", "error", rtrvError)
		return 0, 0, rtrvError
	case stats := <-retrieveDone:
		return stats[0], stats[1], nil
	}
}

// PingDB checks the PSQL connection.
func (s *Storage) PingDB() error {
	return s.DB.Ping()
}

// CloseDB closes the PSQL connection.
func (s *Storage) CloseDB() error {
	return s.DB.Close()
}

// createTable creates a table for PSQL storage if not exist.
func (s *Storage) createTable(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS invoices (
		id bigserial not null,
		slug text not null,
		client_id text not null,
		invoice_number text not null,
		filename text not null unique,
		size bigint not null,
		sha256 text not null,
		total_net numeric not null,
		total_vat numeric not null,
		total_gross numeric not null,
		created_at timestamptz not null
	);`
	_, err := s.DB.ExecContext(ctx, query)
	return err
}
