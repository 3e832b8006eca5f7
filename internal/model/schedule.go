package model

import "strings"

// TimeSlot is an interval a provider publishes for booking. Date is
// YYYY-MM-DD (possibly with a time part) and times are HH:MM[:SS] text.
type TimeSlot struct {
	ID        int64  `json:"id"`
	ServiceID int64  `json:"service_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	CreatedBy int64  `json:"created_by,omitempty"`
}

// Day returns the calendar part of Date.
func (s TimeSlot) Day() string {
	if i := strings.IndexByte(s.Date, 'T'); i >= 0 {
		return s.Date[:i]
	}
	return s.Date
}

// Range renders the slot as "start - end".
func (s TimeSlot) Range() string {
	return s.StartTime + " - " + s.EndTime
}

// Reservation books one time slot for one user.
type Reservation struct {
	ID         int64  `json:"id"`
	ServiceID  int64  `json:"service_id"`
	UserID     int64  `json:"user_id"`
	TimeSlotID int64  `json:"time_slot_id"`
	Notes      string `json:"notes,omitempty"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at,omitempty"`
}

const ReservationPending = "pendiente"
