package converter

import (
	"testing"

	"doctor-admin-dashboard/internal/domain/entity"

	"github.com/google/uuid"
)

func TestDoctorProfilesToAdminResponses(t *testing.T) {
	active := true
	id := uuid.New()
	profiles := []entity.DoctorProfile{
		{UserID: id, User: entity.User{ID: id, FullName: "Alice", Email: "alice@clinic.test", IsActive: &active}},
		{UserID: uuid.New(), User: entity.User{FullName: "Bob", Email: "bob@clinic.test"}},
	}

	got := DoctorProfilesToAdminResponses(profiles)
	if len(got) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(got))
	}
	if got[0].DoctorID != id || got[0].Name != "Alice" || !got[0].IsActive {
		t.Fatalf("unexpected first response: %+v", got[0])
	}
	if got[1].IsActive {
		t.Fatalf("missing flag should read as inactive: %+v", got[1])
	}
}

func TestDoctorProfileToAdminResponse_Nil(t *testing.T) {
	if DoctorProfileToAdminResponse(nil) != nil {
		t.Fatalf("expected nil")
	}
}
