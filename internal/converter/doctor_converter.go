package converter

import (
	"doctor-admin-dashboard/internal/delivery/dto"
	"doctor-admin-dashboard/internal/domain/entity"
)

// DoctorProfileToAdminResponse converts a DoctorProfile entity to DoctorAdminResponse DTO
func DoctorProfileToAdminResponse(profile *entity.DoctorProfile) *dto.DoctorAdminResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorAdminResponse{
		DoctorID: profile.UserID,
		Name:     profile.User.FullName,
		Email:    profile.User.Email,
		IsActive: profile.User.Active(),
	}
}

// DoctorProfilesToAdminResponses converts a slice of DoctorProfile entities to slice of DoctorAdminResponse DTOs
func DoctorProfilesToAdminResponses(profiles []entity.DoctorProfile) []dto.DoctorAdminResponse {
	responses := make([]dto.DoctorAdminResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorProfileToAdminResponse(&profiles[i])
	}
	return responses
}
