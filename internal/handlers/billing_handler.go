package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"repair-backend/internal/models"
	"repair-backend/internal/services"
	"repair-backend/pkg/utils"
)

type BillingHandler struct {
	Billing *services.BillingService
}

func NewBillingHandler(billing *services.BillingService) *BillingHandler {
	return &BillingHandler{Billing: billing}
}

// CreateVendorBill bills a subset of a vendor's phones
func (h *BillingHandler) CreateVendorBill(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVendorBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bill, err := h.Billing.CreateVendorBill(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, bill)
}

// EditVendorBill replaces items/totals of an existing vendor bill
func (h *BillingHandler) EditVendorBill(w http.ResponseWriter, r *http.Request) {
	var req models.EditVendorBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vars := mux.Vars(r)
	bill, err := h.Billing.EditVendorBill(r.Context(), vars["id"], vars["billId"], req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, bill)
}

// CreateServiceBill attaches or replaces the bill on a service record
func (h *BillingHandler) CreateServiceBill(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRecordBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bill, err := h.Billing.CreateServiceBill(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, bill)
}

// CreateLaptopBill attaches or replaces the bill on a laptop record
func (h *BillingHandler) CreateLaptopBill(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRecordBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bill, err := h.Billing.CreateLaptopBill(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, bill)
}
