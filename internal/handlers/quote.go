package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/vancelodge/lodge-billing/internal/httpx"
	"github.com/vancelodge/lodge-billing/internal/models"
	"github.com/vancelodge/lodge-billing/internal/repository"
)

// QuoteHandler exposes quote and invoice operations as a JSON API.
type QuoteHandler struct {
	Repo     *repository.QuoteRepository
	Validate *validator.Validate
}

func NewQuoteHandler(repo *repository.QuoteRepository) *QuoteHandler {
	return &QuoteHandler{Repo: repo, Validate: validator.New()}
}

// quoteRequest carries the quote's pricing inputs. Totals are intentionally
// absent: the repository derives them, callers cannot supply their own.
type quoteRequest struct {
	ClientID           uint     `json:"client_id" validate:"required"`
	QuoteNumber        string   `json:"quote_number"`
	NumberOfBeds       int      `json:"number_of_beds" validate:"required,gt=0"`
	NumberOfGuests     int      `json:"number_of_guests" validate:"required,gt=0"`
	UnitBedCost        float64  `json:"unit_bed_cost" validate:"required,gt=0"`
	UnitBreakfastCost  *float64 `json:"unit_breakfast_cost" validate:"omitempty,gte=0"`
	UnitLunchCost      *float64 `json:"unit_lunch_cost" validate:"omitempty,gte=0"`
	UnitDinnerCost     *float64 `json:"unit_dinner_cost" validate:"omitempty,gte=0"`
	UnitLaundryCost    *float64 `json:"unit_laundry_cost" validate:"omitempty,gte=0"`
	GuestDetails       string   `json:"guest_details"`
	CheckInDate        string   `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate       string   `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	BreakfastDates     []string `json:"breakfast_dates" validate:"dive,datetime=2006-01-02"`
	LunchDates         []string `json:"lunch_dates" validate:"dive,datetime=2006-01-02"`
	DinnerDates        []string `json:"dinner_dates" validate:"dive,datetime=2006-01-02"`
	LaundryDates       []string `json:"laundry_dates" validate:"dive,datetime=2006-01-02"`
	DiscountMode       string   `json:"discount_mode" validate:"omitempty,oneof=percentage amount"`
	DiscountPercentage *float64 `json:"discount_percentage" validate:"omitempty,gte=0"`
	DiscountAmount     *float64 `json:"discount_amount" validate:"omitempty,gte=0"`
	DocumentType       string   `json:"document_type" validate:"omitempty,oneof=detailed summarized"`
}

func (req *quoteRequest) toModel() *models.Quote {
	return &models.Quote{
		ClientID:           req.ClientID,
		QuoteNumber:        req.QuoteNumber,
		NumberOfBeds:       req.NumberOfBeds,
		NumberOfGuests:     req.NumberOfGuests,
		UnitBedCost:        req.UnitBedCost,
		UnitBreakfastCost:  req.UnitBreakfastCost,
		UnitLunchCost:      req.UnitLunchCost,
		UnitDinnerCost:     req.UnitDinnerCost,
		UnitLaundryCost:    req.UnitLaundryCost,
		GuestDetails:       req.GuestDetails,
		CheckInDate:        req.CheckInDate,
		CheckOutDate:       req.CheckOutDate,
		BreakfastDates:     models.DateList(req.BreakfastDates),
		LunchDates:         models.DateList(req.LunchDates),
		DinnerDates:        models.DateList(req.DinnerDates),
		LaundryDates:       models.DateList(req.LaundryDates),
		DiscountMode:       models.DiscountMode(req.DiscountMode),
		DiscountPercentage: req.DiscountPercentage,
		DiscountAmount:     req.DiscountAmount,
		DocumentType:       req.DocumentType,
	}
}

func (h *QuoteHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request) (*quoteRequest, bool) {
	var req quoteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return nil, false
	}
	if err := h.Validate.Struct(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return nil, false
	}
	// ISO dates order lexicographically, so a plain compare enforces the
	// check-out-not-before-check-in rule.
	if req.CheckOutDate < req.CheckInDate {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"check_out_date": "before_check_in"})
		return nil, false
	}
	return &req, true
}

// List: GET /quotes – everything not yet invoiced
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Repo.ListQuotes(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_quotes", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

// ListInvoices: GET /invoices
func (h *QuoteHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Repo.ListInvoices(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

// Create: POST /quotes
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}
	q := req.toModel()
	if err := h.Repo.Create(r.Context(), q); err != nil {
		if errors.Is(err, repository.ErrSequenceMissing) {
			httpx.JSONError(w, http.StatusInternalServerError, "sequence_corrupted", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_quote", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, q)
}

// Get: GET /quotes/get?id=
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	q, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_get_quote", nil)
		return
	}
	if q == nil {
		httpx.JSONError(w, http.StatusNotFound, "quote_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

// Update: POST /quotes/update?id=
func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}
	if err := h.Repo.Update(r.Context(), id, req.toModel()); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_quote", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"updated": id})
}

// Delete: POST /quotes/delete?id=
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_quote", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// MarkInvoiced: POST /quotes/invoice?id=
func (h *QuoteHandler) MarkInvoiced(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Repo.MarkInvoiced(r.Context(), id); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_invoice_quote", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoiced": id})
}

// LatestForClient: GET /quotes/latest?client_id=
func (h *QuoteHandler) LatestForClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := httpx.IDParam(r, "client_id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_client_id", nil)
		return
	}
	q, err := h.Repo.LatestForClient(r.Context(), clientID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_get_latest_quote", nil)
		return
	}
	if q == nil {
		httpx.JSONError(w, http.StatusNotFound, "no_quotes_for_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

// NextNumber: POST /quotes/number – reserves and returns the next document number
func (h *QuoteHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.Repo.NextNumber(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrSequenceMissing) {
			httpx.JSONError(w, http.StatusInternalServerError, "sequence_corrupted", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_generate_number", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"quote_number": number})
}
