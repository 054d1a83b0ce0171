package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Doctor is one row of the backend listing. Field tags follow the backend wire format.
type Doctor struct {
	ID       uuid.UUID `json:"doctor_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	IsActive bool      `json:"isactive"`
}

// DoctorClient is the backend the dashboard reads the listing from and sends status updates to.
type DoctorClient interface {
	ListDoctors(ctx context.Context) ([]Doctor, error)
	SetDoctorStatus(ctx context.Context, doctorID uuid.UUID, isActive bool) error
}

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient confirmation shown after a status change.
type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Title     string     `json:"title"`
	Text      string     `json:"text"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// NoticeBoard keeps at most one notice per key and forgets it once ttl elapses.
type NoticeBoard interface {
	Post(ctx context.Context, key string, notice Notice, ttl time.Duration) error
	Current(ctx context.Context, key string) (*Notice, error)
}

// StatusNotice builds the confirmation for a doctor whose flag is now active.
func StatusNotice(active bool, expiresAt time.Time) Notice {
	if active {
		return Notice{
			Kind:      NoticeSuccess,
			Title:     "Doctor Account Activated",
			Text:      "The doctor account has been activated successfully.",
			ExpiresAt: expiresAt,
		}
	}
	return Notice{
		Kind:      NoticeError,
		Title:     "Doctor Account Deactivated",
		Text:      "The doctor account has been deactivated successfully.",
		ExpiresAt: expiresAt,
	}
}
