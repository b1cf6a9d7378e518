package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"repair-backend/internal/models"
	"repair-backend/internal/services"
	"repair-backend/pkg/utils"
)

type VendorHandler struct {
	Intake *services.IntakeService
}

func NewVendorHandler(intake *services.IntakeService) *VendorHandler {
	return &VendorHandler{Intake: intake}
}

func (h *VendorHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vendor, err := h.Intake.CreateVendor(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, vendor)
}

func (h *VendorHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Intake.ListVendors(r.Context()))
}

func (h *VendorHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.Intake.GetVendor(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, vendor)
}

func (h *VendorHandler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vendor, err := h.Intake.UpdateVendor(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, vendor)
}

// DeleteVendor removes a vendor account. Blocked while any phone is unbilled.
func (h *VendorHandler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	if err := h.Intake.DeleteVendor(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AddPhone registers one intake phone under a vendor
func (h *VendorHandler) AddPhone(w http.ResponseWriter, r *http.Request) {
	var req models.AddPhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	phone, err := h.Intake.AddPhone(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, phone)
}

// UpdatePhoneStatus moves a phone between non-terminal statuses
func (h *VendorHandler) UpdatePhoneStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePhoneStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vars := mux.Vars(r)
	phone, err := h.Intake.UpdatePhoneStatus(r.Context(), vars["id"], vars["phoneId"], req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, phone)
}
