package api

import (
	"net/http"
	"strconv"

	"github.com/gsdgroup/billing/internal/dto"
)

func (h *Handler) listBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.bills.GetAllBills(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

func (h *Handler) getBill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	bill, err := h.bills.GetBillByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (h *Handler) addBill(w http.ResponseWriter, r *http.Request) {
	var in *dto.BillDTO
	if !decodeBody(w, r, &in) {
		return
	}

	id, err := h.bills.AddBill(r.Context(), in.ToBill())
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, strconv.FormatInt(id, 10))
}

func (h *Handler) updateBill(w http.ResponseWriter, r *http.Request) {
	var in *dto.BillDTO
	if !decodeBody(w, r, &in) {
		return
	}

	if err := h.bills.UpdateBill(r.Context(), in.ToBill()); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, msgSuccess)
}

func (h *Handler) deleteBill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.bills.DeleteBill(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, msgSuccess)
}

// analysis serves the two fixed reports selected by ?op=.
func (h *Handler) analysis(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("op") {
	case "overdue_bills":
		accounts, err := h.accounts.GetAccountsWithOverdueBills(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, accounts)
	case "monthly_amount":
		totals, err := h.bills.GetTotalChargedEachMonth(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, totals)
	default:
		writeMessage(w, http.StatusBadRequest, msgInvalidParameter)
	}
}
