package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"doctor-admin-dashboard/internal/delivery/dto"
	"doctor-admin-dashboard/internal/usecase"
	"doctor-admin-dashboard/pkg/response"
	"doctor-admin-dashboard/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorAdminHandler struct {
	doctorAdminUsecase usecase.DoctorAdminUsecase
	validator          *validator.CustomValidator
}

func NewDoctorAdminHandler(doctorAdminUsecase usecase.DoctorAdminUsecase, validator *validator.CustomValidator) *DoctorAdminHandler {
	return &DoctorAdminHandler{
		doctorAdminUsecase: doctorAdminUsecase,
		validator:          validator,
	}
}

// ListDoctors responds with the bare array the dashboard loader consumes.
func (h *DoctorAdminHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorAdminUsecase.ListDoctors(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrSchemaNotMigrated) {
			response.ServiceUnavailable(w, "Database schema is not migrated")
			return
		}
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.JSON(w, http.StatusOK, doctors)
}

func (h *DoctorAdminHandler) UpdateDoctorStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctor_id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	var req dto.UpdateDoctorStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorAdminUsecase.UpdateDoctorStatus(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrSchemaNotMigrated):
			response.ServiceUnavailable(w, "Database schema is not migrated")
		default:
			response.InternalServerError(w, "Failed to update doctor status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor status updated successfully", doctor)
}
