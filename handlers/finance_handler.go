package handlers

import (
	"net/http"

	"github.com/Dosada05/atletica-scoreboard/services"
)

type FinanceHandler struct {
	financeService services.FinanceService
}

func NewFinanceHandler(fs services.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: fs}
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *FinanceHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.financeService.ListCategories(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"categories": categories})
}

func (h *FinanceHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input categoryRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	category, err := h.financeService.CreateCategory(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"category": category})
}

func (h *FinanceHandler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input categoryRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	category, err := h.financeService.RenameCategory(r.Context(), categoryID, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"category": category})
}

func (h *FinanceHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.financeService.DeleteCategory(r.Context(), categoryID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FinanceHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.financeService.ListTransactions(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"transactions": transactions})
}

func (h *FinanceHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTransactionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	transaction, err := h.financeService.CreateTransaction(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"transaction": transaction})
}

func (h *FinanceHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, err := getIDFromURL(r, "transactionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.financeService.DeleteTransaction(r.Context(), transactionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FinanceHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.financeService.Report(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"report": report})
}

func (h *FinanceHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	data, err := h.financeService.ExportXLSX(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeFile(w, r, contentTypeXLSX, "financeiro.xlsx", data)
}
