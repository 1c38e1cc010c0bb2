package server

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/vancelodge/lodge-billing/internal/handlers"
	"github.com/vancelodge/lodge-billing/internal/httpx"
	"github.com/vancelodge/lodge-billing/internal/repository"
	"github.com/vancelodge/lodge-billing/internal/services"
)

// New constructs the root http.Handler with all routes applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	pricing := services.NewPricingService()
	ch := handlers.NewClientHandler(repository.NewClientRepository(db))
	qh := handlers.NewQuoteHandler(repository.NewQuoteRepository(db, pricing))

	// Client endpoints. List/Create via /clients; get/update/delete take ?id=.
	mux.HandleFunc("/clients", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ch.List(w, r)
		case http.MethodPost:
			ch.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/clients/get", requireMethod(http.MethodGet, ch.Get))
	mux.HandleFunc("/clients/update", requireMethod(http.MethodPost, ch.Update))
	mux.HandleFunc("/clients/delete", requireMethod(http.MethodPost, ch.Delete))

	// Quote endpoints
	mux.HandleFunc("/quotes", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			qh.List(w, r)
		case http.MethodPost:
			qh.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/quotes/get", requireMethod(http.MethodGet, qh.Get))
	mux.HandleFunc("/quotes/update", requireMethod(http.MethodPost, qh.Update))
	mux.HandleFunc("/quotes/delete", requireMethod(http.MethodPost, qh.Delete))
	mux.HandleFunc("/quotes/invoice", requireMethod(http.MethodPost, qh.MarkInvoiced))
	mux.HandleFunc("/quotes/latest", requireMethod(http.MethodGet, qh.LatestForClient))
	mux.HandleFunc("/quotes/number", requireMethod(http.MethodPost, qh.NextNumber))

	// Invoices are quotes whose status moved to invoiced; read-only listing.
	mux.HandleFunc("/invoices", requireMethod(http.MethodGet, qh.ListInvoices))

	return mux
}

func requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		next(w, r)
	}
}
