package requests

import (
	"benchlab/internal/availability"
)

// CalendarResponse is the month grid for one bench, ready for the UI to
// render without further computation.
type CalendarResponse struct {
	BenchID        string                      `json:"bench_id"`
	Month          string                      `json:"month"`
	OperatingHours availability.OperatingHours `json:"operating_hours"`
	Days           []availability.DayCell      `json:"days"`
}

// SubmitResponse pairs the created request with the validation outcome so
// the UI can surface the pending-overlap warning alongside the confirmation.
type SubmitResponse struct {
	Request    *Request                 `json:"request,omitempty"`
	Validation availability.RangeResult `json:"validation"`
}

// PaginatedRequests wraps a request listing.
type PaginatedRequests struct {
	Requests   []Request `json:"requests"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

// DashboardStats summarizes the review queue for the admin landing page.
type DashboardStats struct {
	PendingRequests      int64 `json:"pending_requests"`
	ApprovedRequests     int64 `json:"approved_requests"`
	RejectedRequests     int64 `json:"rejected_requests"`
	UpcomingReservations int64 `json:"upcoming_reservations"`
}
