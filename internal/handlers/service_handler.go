package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"repair-backend/internal/models"
	"repair-backend/internal/services"
	"repair-backend/pkg/utils"
)

type ServiceHandler struct {
	Intake *services.IntakeService
}

func NewServiceHandler(intake *services.IntakeService) *ServiceHandler {
	return &ServiceHandler{Intake: intake}
}

// CreateService registers a new individual device intake
func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.Intake.CreateService(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, record)
}

// ListServices returns all individual service records
func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Intake.ListServices(r.Context()))
}

// GetService returns one service record by id
func (h *ServiceHandler) GetService(w http.ResponseWriter, r *http.Request) {
	record, err := h.Intake.GetService(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, record)
}

// UpdateService replaces the intake fields of a service record
func (h *ServiceHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.Intake.UpdateService(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, record)
}

// DeleteService removes a service record (explicit external operation)
func (h *ServiceHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	if err := h.Intake.DeleteService(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
