package models

import "time"

type AvailabilityType string

const (
	AvailabilityAvailable   AvailabilityType = "AVAILABLE"
	AvailabilityUnavailable AvailabilityType = "UNAVAILABLE"
	AvailabilityTentative   AvailabilityType = "TENTATIVE"
)

func (t AvailabilityType) Valid() bool {
	switch t {
	case AvailabilityAvailable, AvailabilityUnavailable, AvailabilityTentative:
		return true
	}
	return false
}

// Availability is a referee's self-declared preference for a single
// calendar date. At most one record exists per (user, date).
type Availability struct {
	ID        int              `json:"id"`
	UserID    int              `json:"userId"`
	Date      string           `json:"date"`
	Type      AvailabilityType `json:"type"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`

	// User is populated on the admin range view.
	User *UserPublicInfo `json:"user,omitempty"`
}
