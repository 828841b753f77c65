// Package rest provides functionality for initializing a REST API server.
package rest

import (
	"context"
	"expvar"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"go.uber.org/zap"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/api/rest/handlers"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/api/rest/middleware"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/config"
	invoicerImpl "github.com/7g2dvxmw94-gif/facturx-engine/internal/service/invoicer/v1"
	storage "github.com/7g2dvxmw94-gif/facturx-engine/internal/storage/v1"
)

var startedAt = time.Now()

// InitServer returns a http.Server object ready to be listening and serving.
func InitServer(ctx context.Context, cfg *config.Config, store storage.InvoiceStorage, sugar *zap.SugaredLogger) (server *http.Server, err error) {
	invoicerService, err := invoicerImpl.InitInvoicer(store, sugar)
	if err != nil {
		return nil, err
	}
	invoiceHandler, err := handlers.InitInvoiceHandler(invoicerService, sugar)
	if err != nil {
		return nil, err
	}
	keyHandler, err := middleware.NewKeyHandler(cfg)
	if err != nil {
		return nil, err
	}
	trustedNetHandler := middleware.NewTrustedNetHandler(cfg)
	requestIDHandler := middleware.NewRequestIDHandler(sugar)

	expvar.Publish("uptime", expvar.Func(func() interface{} {
		return time.Since(startedAt).String()
	}))

	r := chi.NewRouter()
	r.Use(requestIDHandler.RequestIDHandle)
	r.Use(middleware.CompressHandle)
	r.Use(middleware.DecompressHandle)

	r.Get("/health", invoiceHandler.HandleHealth())
	r.Get("/ping", invoiceHandler.HandlePingDB())

	r.Route("/v1", func(r chi.Router) {
		r.Use(keyHandler.KeyHandle)
		r.Post("/invoice/generate", invoiceHandler.HandleGenerateInvoice())
		r.Post("/invoice/dry-run", invoiceHandler.HandleDryRun())
		r.Post("/invoice/validate-xml", invoiceHandler.HandleValidateXML())
		r.Post("/credit-note/generate", invoiceHandler.HandleGenerateCreditNote())
		r.Get("/invoices", invoiceHandler.HandleListInvoices())
		r.Get("/invoices/{filename}", invoiceHandler.HandleDownloadInvoice())
	})

	r.Route("/internal", func(r chi.Router) {
		r.Use(trustedNetHandler.TrustedNetworkHandler)
		r.Get("/stats", invoiceHandler.HandleGetStats())
	})

	r.Mount("/debug", chiMiddleware.Profiler())
	r.Handle("/vars", expvar.Handler())

	server = &http.Server{
		Addr:         cfg.ServerConfig.ServerAddress,
		Handler:      r,
		IdleTimeout:  60 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return server, nil
}
