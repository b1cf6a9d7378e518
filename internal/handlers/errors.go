package handlers

import (
	"net/http"

	"repair-backend/internal/services"
	"repair-backend/pkg/utils"
)

// writeServiceError maps service-layer error kinds to HTTP statuses:
// validation -> 400, not found -> 404, anything else -> 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case services.IsValidation(err):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case services.IsNotFound(err):
		utils.Error(w, http.StatusNotFound, err.Error())
	default:
		utils.Error(w, http.StatusInternalServerError, err.Error())
	}
}
