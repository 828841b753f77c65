package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/api/rest"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/config"
	storage "github.com/7g2dvxmw94-gif/facturx-engine/internal/storage/v1"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/storage/v1/infile"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/storage/v1/inpsql"
)

func main() {
	// initialize logger
	loggerConfig := zap.NewProductionConfig()
	logger, err := loggerConfig.Build()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// initialize configuration
	cfg, err := config.NewDefaultConfiguration()
	if err != nil {
		sugar.Fatalw("Could not build configuration", "error", err)
	}
	cfg.ParseFlags()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wg := &sync.WaitGroup{}
	wg.Add(1)

	// initialize storage, a non-empty DSN switches the index to PSQL
	var store storage.InvoiceStorage
	if cfg.StorageConfig.DatabaseDSN != "" {
		store, err = inpsql.InitStorage(ctx, wg, cfg.StorageConfig, sugar)
	} else {
		store, err = infile.InitStorage(ctx, wg, cfg.StorageConfig, sugar)
	}
	if err != nil {
		sugar.Fatalw("Could not initialize storage", "error", err)
	}

	server, err := rest.InitServer(ctx, cfg, store, sugar)
	if err != nil {
		sugar.Fatalw("Could not initialize server", "error", err)
	}

	// set a listener for os.Signal interruptions
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-done
		sugar.Info("Server shutdown attempted")
		ctxTO, cancelTO := context.WithTimeout(ctx, 5*time.Second)
		defer cancelTO()
		if err := server.Shutdown(ctxTO); err != nil {
			sugar.Fatalw("Server shutdown failed", "error", err)
		}
		cancel()
	}()

	sugar.Infow("Server start attempted", "address", cfg.ServerConfig.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		sugar.Fatalw("Server listener failed", "error", err)
	}
	wg.Wait()
	sugar.Info("Server shutdown succeeded")
}
