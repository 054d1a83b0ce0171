package dashboard

import (
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 5
	EmptyMessage    = "No doctors found"
)

// State is everything the dashboard owns between renders.
type State struct {
	Doctors  []Doctor
	Search   string
	Page     int
	PageSize int
	Pending  map[uuid.UUID]struct{}
}

func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{
		Page:     1,
		PageSize: pageSize,
		Pending:  make(map[uuid.UUID]struct{}),
	}
}

// FilterByName keeps the doctors whose name contains term, ignoring case.
// Order is preserved and an empty term keeps everything.
func FilterByName(doctors []Doctor, term string) []Doctor {
	needle := strings.ToLower(term)
	filtered := make([]Doctor, 0, len(doctors))
	for _, d := range doctors {
		if strings.Contains(strings.ToLower(d.Name), needle) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// TotalPages is ceil(count/pageSize), zero when there is nothing to show.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// PageSlice returns items [(page-1)*pageSize, page*pageSize) clipped to the slice bounds.
func PageSlice(doctors []Doctor, page, pageSize int) []Doctor {
	if page < 1 || pageSize <= 0 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(doctors) {
		return nil
	}
	end := start + pageSize
	if end > len(doctors) {
		end = len(doctors)
	}
	return doctors[start:end]
}

func PrevPage(page int) int {
	if page > 1 {
		return page - 1
	}
	return page
}

func NextPage(page, totalPages int) int {
	if page < totalPages {
		return page + 1
	}
	return page
}

// Row is a visible table row with its labels resolved.
type Row struct {
	Doctor
	StatusLabel string `json:"status_label"`
	ActionLabel string `json:"action_label"`
	Pending     bool   `json:"pending"`
}

// View is what one render of the dashboard shows.
type View struct {
	Rows         []Row   `json:"rows"`
	Search       string  `json:"search"`
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	HasPrev      bool    `json:"has_prev"`
	HasNext      bool    `json:"has_next"`
	EmptyMessage string  `json:"empty_message,omitempty"`
	Notice       *Notice `json:"notice,omitempty"`
}

// Derive computes the visible page from state without touching it.
func Derive(s State) View {
	filtered := FilterByName(s.Doctors, s.Search)
	total := TotalPages(len(filtered), s.PageSize)
	visible := PageSlice(filtered, s.Page, s.PageSize)

	rows := make([]Row, 0, len(visible))
	for _, d := range visible {
		_, pending := s.Pending[d.ID]
		rows = append(rows, Row{
			Doctor:      d,
			StatusLabel: statusLabel(d.IsActive),
			ActionLabel: actionLabel(d.IsActive),
			Pending:     pending,
		})
	}

	v := View{
		Rows:       rows,
		Search:     s.Search,
		Page:       s.Page,
		TotalPages: total,
		HasPrev:    s.Page > 1,
		HasNext:    s.Page < total,
	}
	if len(rows) == 0 {
		v.EmptyMessage = EmptyMessage
	}
	return v
}

func statusLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func actionLabel(active bool) string {
	if active {
		return "Deactivate"
	}
	return "Activate"
}
