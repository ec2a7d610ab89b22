package api

import (
	"net/http"
	"strconv"

	"github.com/gsdgroup/billing/internal/dto"
)

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.GetAllAccounts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	account, err := h.accounts.GetAccountByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *Handler) addAccount(w http.ResponseWriter, r *http.Request) {
	var in *dto.SimpleAccountDTO
	if !decodeBody(w, r, &in) {
		return
	}

	id, err := h.accounts.AddAccount(r.Context(), in.ToAccount())
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, strconv.FormatInt(id, 10))
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	var in *dto.AccountDTO
	if !decodeBody(w, r, &in) {
		return
	}

	if err := h.accounts.UpdateAccount(r.Context(), in.ToAccount()); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, msgSuccess)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.accounts.DeleteAccount(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, msgSuccess)
}
