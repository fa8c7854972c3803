package handlers

import (
	"net/http"

	"github.com/Dosada05/atletica-scoreboard/services"
)

type InventoryHandler struct {
	inventoryService services.InventoryService
}

func NewInventoryHandler(is services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

type stockAdjustmentRequest struct {
	Delta int `json:"delta"`
}

func (h *InventoryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.inventoryService.ListProducts(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"products": products})
}

func (h *InventoryHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := getIDFromURL(r, "productID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	product, err := h.inventoryService.GetProductByID(r.Context(), productID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"product": product})
}

func (h *InventoryHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input services.ProductInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	product, err := h.inventoryService.CreateProduct(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"product": product})
}

func (h *InventoryHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := getIDFromURL(r, "productID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ProductInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	product, err := h.inventoryService.UpdateProduct(r.Context(), productID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"product": product})
}

func (h *InventoryHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	productID, err := getIDFromURL(r, "productID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input stockAdjustmentRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	product, err := h.inventoryService.AdjustStock(r.Context(), productID, input.Delta)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"product": product})
}

func (h *InventoryHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := getIDFromURL(r, "productID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.inventoryService.DeleteProduct(r.Context(), productID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
