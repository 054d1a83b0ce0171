package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type UpdateDoctorStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// Response DTOs

// DoctorAdminResponse is one entry of the admin doctor listing
type DoctorAdminResponse struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	IsActive bool      `json:"isactive"`
}
