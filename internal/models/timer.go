package models

import "time"

// Timer is a single tracked time entry owned by exactly one user.
//
// Progress and Duration are computed from Start/End at read time and never
// stored: an active timer has Progress (ms since start), a stopped timer has
// Duration (ms between start and end).
type Timer struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Description string     `json:"description"`
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end,omitempty"` // Absent while the timer is active
	IsActive    bool       `json:"isActive"`
	Progress    *int64     `json:"progress,omitempty"`
	Duration    *int64     `json:"duration,omitempty"`
}
