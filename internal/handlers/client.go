package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/vancelodge/lodge-billing/internal/httpx"
	"github.com/vancelodge/lodge-billing/internal/models"
	"github.com/vancelodge/lodge-billing/internal/repository"
)

// ClientHandler exposes client CRUD as a JSON API. Business-rule validation
// happens here, before the repository is invoked; the store only enforces
// NOT NULL and foreign keys.
type ClientHandler struct {
	Repo     *repository.ClientRepository
	Validate *validator.Validate
}

func NewClientHandler(repo *repository.ClientRepository) *ClientHandler {
	return &ClientHandler{Repo: repo, Validate: validator.New()}
}

type clientRequest struct {
	FirstName        string `json:"first_name" validate:"required"`
	LastName         string `json:"last_name"`
	EmailAddress     string `json:"email_address" validate:"required,email"`
	PhoneNumber      string `json:"phone_number"`
	CompanyName      string `json:"company_name"`
	CompanyAddress   string `json:"company_address"`
	CompanyVATNumber string `json:"company_vat_number"`
	CompanyWebsite   string `json:"company_website"`
}

func (req *clientRequest) toModel() *models.Client {
	return &models.Client{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		EmailAddress:     req.EmailAddress,
		PhoneNumber:      req.PhoneNumber,
		CompanyName:      req.CompanyName,
		CompanyAddress:   req.CompanyAddress,
		CompanyVATNumber: req.CompanyVATNumber,
		CompanyWebsite:   req.CompanyWebsite,
	}
}

// List: GET /clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Repo.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_clients", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": clients, "total": len(clients)})
}

// Create: POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Validate.Struct(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	c := req.toModel()
	if err := h.Repo.Create(r.Context(), c); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_client", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

// Get: GET /clients/get?id=
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	c, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_get_client", nil)
		return
	}
	if c == nil {
		httpx.JSONError(w, http.StatusNotFound, "client_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Update: POST /clients/update?id=
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var req clientRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Validate.Struct(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	if err := h.Repo.Update(r.Context(), id, req.toModel()); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"updated": id})
}

// Delete: POST /clients/delete?id=
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrClientReferenced) {
			httpx.JSONError(w, http.StatusConflict, "client_referenced_by_quotes", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}
