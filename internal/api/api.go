// Package api exposes the billing services over JSON HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gsdgroup/billing/internal/dto"
	"github.com/gsdgroup/billing/internal/models"
	"github.com/gsdgroup/billing/internal/service"
)

const (
	msgInvalidParameter = "Missing or invalid parameter."
	msgSuccess          = "Operation successful."
	msgInternal         = "Internal server error."

	maxBodyBytes = 1 << 20
)

// AccountService is the account side of the billing core.
type AccountService interface {
	AddAccount(ctx context.Context, account *models.Account) (int64, error)
	DeleteAccount(ctx context.Context, id int64) error
	UpdateAccount(ctx context.Context, account *models.Account) error
	GetAccountByID(ctx context.Context, id int64) (*dto.AccountDTO, error)
	GetAllAccounts(ctx context.Context) ([]*dto.AccountDTO, error)
	GetAccountsWithOverdueBills(ctx context.Context) ([]*dto.AccountDTO, error)
}

// BillService is the bill side of the billing core.
type BillService interface {
	AddBill(ctx context.Context, bill *models.Bill) (int64, error)
	DeleteBill(ctx context.Context, id int64) error
	UpdateBill(ctx context.Context, bill *models.Bill) error
	GetBillByID(ctx context.Context, id int64) (*dto.BillDTO, error)
	GetAllBills(ctx context.Context) ([]*dto.BillDTO, error)
	GetTotalChargedEachMonth(ctx context.Context) ([]dto.MonthlyAmountDTO, error)
}

var (
	_ AccountService = (*service.AccountService)(nil)
	_ BillService    = (*service.BillService)(nil)
)

// Handler routes HTTP requests to the services.
type Handler struct {
	accounts AccountService
	bills    BillService
}

// NewHandler creates a Handler over the given services.
func NewHandler(accounts AccountService, bills BillService) *Handler {
	return &Handler{accounts: accounts, bills: bills}
}

// Register adds every billing route to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /accounts", h.listAccounts)
	mux.HandleFunc("GET /accounts/{id}", h.getAccount)
	mux.HandleFunc("POST /accounts", h.addAccount)
	mux.HandleFunc("PUT /accounts", h.updateAccount)
	mux.HandleFunc("DELETE /accounts/{id}", h.deleteAccount)

	mux.HandleFunc("GET /bills", h.listBills)
	mux.HandleFunc("GET /bills/{id}", h.getBill)
	mux.HandleFunc("POST /bills", h.addBill)
	mux.HandleFunc("PUT /bills", h.updateBill)
	mux.HandleFunc("DELETE /bills/{id}", h.deleteBill)

	mux.HandleFunc("GET /analysis", h.analysis)
	mux.HandleFunc("GET /healthz", h.healthz)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.Message{Message: msg, StatusCode: status})
}

func writeOK(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, dto.NewMessage(msg))
}

// writeError maps a service error to its status. Domain errors keep their text.
func writeError(w http.ResponseWriter, err error) {
	var (
		validation *service.ValidationError
		notFound   *service.NotFoundError
	)
	switch {
	case errors.As(err, &validation):
		writeMessage(w, http.StatusBadRequest, validation.Message)
	case errors.As(err, &notFound):
		writeMessage(w, http.StatusNotFound, notFound.Message)
	default:
		writeMessage(w, http.StatusInternalServerError, msgInternal)
	}
}

// pathID parses the {id} wildcard. It writes the error response itself.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidParameter)
		return 0, false
	}
	return id, true
}

// decodeBody strictly decodes the request body into v. An empty body leaves v
// untouched. It writes the error response itself.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeOK(w, "ok")
}
