// Package handlers provides http.HandlerFunc handler functions to be used for endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/api/rest/middleware"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/api/rest/modeldto"
	serviceErrors "github.com/7g2dvxmw94-gif/facturx-engine/internal/service/errors"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/invoicer"
	"github.com/7g2dvxmw94-gif/facturx-engine/internal/service/modelinvoice"
	storageErrors "github.com/7g2dvxmw94-gif/facturx-engine/internal/storage/v1/errors"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// xmlPreviewLimit caps the XML preview length of the validate-xml endpoint.
const xmlPreviewLimit = 2000

// storageTimeout bounds storage operations behind request handlers.
const storageTimeout = 500 * time.Millisecond

// InvoiceHandler defines data structure handling and provides support for adding new implementations.
type InvoiceHandler struct {
	processor invoicer.Processor
	validate  *validator.Validate
	sugar     *zap.SugaredLogger
}

// InitInvoiceHandler initializes an InvoiceHandler object and sets its attributes.
func InitInvoiceHandler(processor invoicer.Processor, sugar *zap.SugaredLogger) (*InvoiceHandler, error) {
	if processor == nil {
		return nil, fmt.Errorf("nil Invoicer Service was passed to service Invoice Handler initializer")
	}
	return &InvoiceHandler{
		processor: processor,
		validate:  validator.New(),
		sugar:     sugar,
	}, nil
}

// HandleHealth reports service liveness and version.
func (h *InvoiceHandler) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, modeldto.HealthResponse{Status: "ok", Version: Version})
	}
}

// HandleGenerateInvoice accepts invoice JSON and responds with the generated
// Factur-X PDF as a file attachment.
func (h *InvoiceHandler) HandleGenerateInvoice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var post modeldto.Invoice
		if !h.decodeAndValidate(w, r, &post) {
			return
		}
		h.generate(w, r, post.ToDomain())
	}
}

// HandleGenerateCreditNote accepts credit note JSON and responds with the
// generated Factur-X PDF as a file attachment.
func (h *InvoiceHandler) HandleGenerateCreditNote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var post modeldto.CreditNote
		if !h.decodeAndValidate(w, r, &post) {
			return
		}
		h.generate(w, r, post.ToDomain())
	}
}

func (h *InvoiceHandler) generate(w http.ResponseWriter, r *http.Request, invoice modelinvoice.Invoice) {
	// set context timeout for timing storage operations
	ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
	defer cancel()
	clientID := middleware.ClientFromContext(r.Context())
	h.sugar.Infow("Generate request", "invoice", invoice.InvoiceNumber, "client", clientID)
	artifact, err := h.processor.Generate(ctx, invoice, clientID)
	if err != nil {
		var validationError *serviceErrors.ServiceValidationError
		var alreadyExistsError *storageErrors.AlreadyExistsError
		var timeoutError *storageErrors.ContextTimeoutExceededError
		switch {
		case errors.As(err, &validationError):
			h.sugar.Warnw("Generate rejected", "invoice", invoice.InvoiceNumber, "errors", validationError.Errors)
			writeJSON(w, http.StatusUnprocessableEntity, modeldto.ErrorResponse{
				Message: "invoice is not EN 16931 conformant",
				Errors:  validationError.Errors,
			})
		case errors.As(err, &alreadyExistsError):
			h.sugar.Warnw("Generate conflict", "invoice", invoice.InvoiceNumber)
			writeJSON(w, http.StatusConflict, modeldto.ErrorResponse{Message: err.Error()})
		case errors.As(err, &timeoutError):
			h.sugar.Warnw("Generate timeout", "invoice", invoice.InvoiceNumber)
			w.WriteHeader(http.StatusGatewayTimeout)
		default:
			h.sugar.Errorw("Generate failed", "invoice", invoice.InvoiceNumber, "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.PDF)
}

// HandleDryRun validates invoice JSON against the EN 16931 business rules
// without producing or storing anything.
func (h *InvoiceHandler) HandleDryRun() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var post modeldto.Invoice
		if !h.decodeAndValidate(w, r, &post) {
			return
		}
		report := h.processor.DryRun(post.ToDomain())
		writeJSON(w, http.StatusOK, report)
	}
}

// HandleValidateXML builds and validates the CII XML without producing the PDF.
func (h *InvoiceHandler) HandleValidateXML() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var post modeldto.Invoice
		if !h.decodeAndValidate(w, r, &post) {
			return
		}
		xmlBytes, report, err := h.processor.RenderXML(post.ToDomain())
		if err != nil {
			h.sugar.Errorw("XML rendering failed", "invoice", post.InvoiceNumber, "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		preview := string(xmlBytes)
		if len(preview) > xmlPreviewLimit {
			preview = preview[:xmlPreviewLimit]
		}
		writeJSON(w, http.StatusOK, modeldto.ValidateXMLResponse{
			Valid:      report.Valid,
			Errors:     report.Errors,
			XMLPreview: preview,
		})
	}
}

// HandleListInvoices returns the stored artifact entries of the caller.
func (h *InvoiceHandler) HandleListInvoices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
		defer cancel()
		clientID := middleware.ClientFromContext(r.Context())
		invoices, err := h.processor.List(ctx, clientID)
		if err != nil {
			var timeoutError *storageErrors.ContextTimeoutExceededError
			if errors.As(err, &timeoutError) {
				w.WriteHeader(http.StatusGatewayTimeout)
				return
			}
			h.sugar.Errorw("Listing failed", "client", clientID, "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if invoices == nil {
			invoices = make([]modelinvoice.StoredInvoice, 0)
		}
		writeJSON(w, http.StatusOK, modeldto.ListInvoicesResponse{Invoices: invoices})
	}
}

// HandleDownloadInvoice serves one stored artifact of the caller.
func (h *InvoiceHandler) HandleDownloadInvoice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
		defer cancel()
		clientID := middleware.ClientFromContext(r.Context())
		filename := chi.URLParam(r, "filename")
		pdf, err := h.processor.Fetch(ctx, clientID, filename)
		if err != nil {
			var notFoundError *storageErrors.NotFoundError
			var timeoutError *storageErrors.ContextTimeoutExceededError
			switch {
			case errors.As(err, &notFoundError):
				http.Error(w, err.Error(), http.StatusNotFound)
			case errors.As(err, &timeoutError):
				w.WriteHeader(http.StatusGatewayTimeout)
			default:
				h.sugar.Errorw("Download failed", "filename", filename, "error", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdf)
	}
}

// HandleGetStats returns storage usage statistics for the internal endpoint.
func (h *InvoiceHandler) HandleGetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), storageTimeout)
		defer cancel()
		nInvoices, nClients, err := h.processor.Stats(ctx)
		if err != nil {
			var timeoutError *storageErrors.ContextTimeoutExceededError
			if errors.As(err, &timeoutError) {
				w.WriteHeader(http.StatusGatewayTimeout)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, modeldto.StatsResponse{Invoices: nInvoices, Clients: nClients})
	}
}

// HandlePingDB checks storage backend liveness.
func (h *InvoiceHandler) HandlePingDB() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.processor.PingDB(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// decodeAndValidate reads a JSON request body into dst and validates it,
// responding with 422 and details on failure.
func (h *InvoiceHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, modeldto.ErrorResponse{Message: "could not read request body"})
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, modeldto.ErrorResponse{Message: "malformed request body"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		details := make([]string, 0)
		if errors.As(err, &validationErrors) {
			for _, fieldError := range validationErrors {
				details = append(details, fmt.Sprintf("%s: failed on %s", fieldError.Namespace(), fieldError.Tag()))
			}
		}
		writeJSON(w, http.StatusUnprocessableEntity, modeldto.ErrorResponse{
			Message: "request validation failed",
			Errors:  details,
		})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
