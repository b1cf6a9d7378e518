package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"repair-backend/internal/models"
	"repair-backend/internal/services"
	"repair-backend/pkg/utils"
)

type LaptopHandler struct {
	Intake *services.IntakeService
}

func NewLaptopHandler(intake *services.IntakeService) *LaptopHandler {
	return &LaptopHandler{Intake: intake}
}

func (h *LaptopHandler) CreateLaptop(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLaptopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.Intake.CreateLaptop(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, record)
}

func (h *LaptopHandler) ListLaptops(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Intake.ListLaptops(r.Context()))
}

func (h *LaptopHandler) GetLaptop(w http.ResponseWriter, r *http.Request) {
	record, err := h.Intake.GetLaptop(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, record)
}

func (h *LaptopHandler) UpdateLaptop(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateLaptopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.Intake.UpdateLaptop(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, record)
}

func (h *LaptopHandler) DeleteLaptop(w http.ResponseWriter, r *http.Request) {
	if err := h.Intake.DeleteLaptop(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
