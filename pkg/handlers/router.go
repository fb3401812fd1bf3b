package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dayo/merchant-bulk-payments/pkg/handlers/bulk"
	"github.com/dayo/merchant-bulk-payments/pkg/handlers/items"
	"github.com/dayo/merchant-bulk-payments/pkg/handlers/transfer"
	appmiddleware "github.com/dayo/merchant-bulk-payments/pkg/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts every handler on a chi router.
func NewRouter(itemsHandler *items.ItemsHandler, bulkHandler *bulk.BulkHandler, transferHandler *transfer.TransferHandler, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(appmiddleware.NewStructuredLogger(logger))

	router.Route("/items", func(r chi.Router) {
		r.Get("/", itemsHandler.ListItems)
		r.Post("/", itemsHandler.AddItem)
		r.Post("/validate", itemsHandler.ValidateItems)
		r.Put("/{itemId}", func(w http.ResponseWriter, req *http.Request) {
			itemsHandler.UpdateItem(w, req, chi.URLParam(req, "itemId"))
		})
		r.Delete("/{itemId}", func(w http.ResponseWriter, req *http.Request) {
			itemsHandler.RemoveItem(w, req, chi.URLParam(req, "itemId"))
		})
	})

	router.Route("/bulk", func(r chi.Router) {
		r.Get("/", bulkHandler.ListBatches)
		r.Post("/", bulkHandler.SubmitBatch)
		r.Get("/progress", bulkHandler.GetProgress)
		r.Get("/{bulkTransactionId}", func(w http.ResponseWriter, req *http.Request) {
			bulkHandler.GetBatch(w, req, chi.URLParam(req, "bulkTransactionId"))
		})
		r.Get("/{bulkTransactionId}/journal", func(w http.ResponseWriter, req *http.Request) {
			bulkHandler.GetJournal(w, req, chi.URLParam(req, "bulkTransactionId"))
		})
		r.Post("/{bulkTransactionId}/resume", func(w http.ResponseWriter, req *http.Request) {
			bulkHandler.ResumeTracking(w, req, chi.URLParam(req, "bulkTransactionId"))
		})
	})

	router.Route("/transfer", func(r chi.Router) {
		r.Get("/", transferHandler.GetState)
		r.Post("/validate", transferHandler.ValidateTransfer)
		r.Post("/confirm", transferHandler.ConfirmTransfer)
		r.Post("/cancel", transferHandler.CancelTransfer)
	})

	return router
}
