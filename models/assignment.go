package models

import "time"

type AssignmentStatus string

const (
	AssignmentStatusPending  AssignmentStatus = "pending"
	AssignmentStatusAccepted AssignmentStatus = "accepted"
	AssignmentStatusDeclined AssignmentStatus = "declined"
)

// Assignment links one referee to one game. Status starts at pending and
// moves to accepted or declined; there is no way back to pending.
type Assignment struct {
	ID        int              `json:"id"`
	GameID    int              `json:"gameId"`
	UserID    int              `json:"userId"`
	Role      string           `json:"role"`
	Status    AssignmentStatus `json:"status"`
	Fee       string           `json:"fee,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`

	// Game is populated on reads that join the owning game.
	Game *Game `json:"game,omitempty"`
}
