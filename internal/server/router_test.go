package server

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancelodge/lodge-billing/internal/db"
)

func TestRouterHealthAndMethodGuards(t *testing.T) {
	gdb, err := db.ConnectAndMigrate(filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	handler := New(gdb)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/clients", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quotes/invoice?id=1", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouterEndToEndQuoteLifecycle(t *testing.T) {
	gdb, err := db.ConnectAndMigrate(filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	handler := New(gdb)

	// create a client
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/clients",
		strings.NewReader(`{"first_name":"Amara","email_address":"amara@lodge.test"}`)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// reserve a number, then create a quote carrying it
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/quotes/number", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"quote_number":"150"`)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(`{
		"client_id": 1,
		"quote_number": "150",
		"number_of_beds": 2,
		"number_of_guests": 2,
		"unit_bed_cost": 100,
		"unit_breakfast_cost": 50,
		"check_in_date": "2024-01-01",
		"check_out_date": "2024-01-04",
		"breakfast_dates": ["2024-01-01", "2024-01-02"]
	}`)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"total":920`)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quotes/latest?client_id=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quote_number":"150"`)
}
