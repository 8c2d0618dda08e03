package models

import "time"

type GameStatus string

const (
	GameStatusScheduled GameStatus = "scheduled"
	GameStatusCompleted GameStatus = "completed"
	GameStatusCancelled GameStatus = "cancelled"
)

// Game is a scheduled fixture. Dates and times cross the API as strings
// ("2006-01-02" and "15:04"); the columns themselves are typed.
type Game struct {
	ID             int        `json:"id"`
	Teams          string     `json:"teams"`
	GameDate       string     `json:"gameDate"`
	StartTime      string     `json:"startTime"`
	EndTime        string     `json:"endTime,omitempty"`
	Location       string     `json:"location,omitempty"`
	Address        string     `json:"address,omitempty"`
	League         string     `json:"league,omitempty"`
	Division       string     `json:"division,omitempty"`
	Status         GameStatus `json:"status"`
	Notes          string     `json:"notes,omitempty"`
	Fee            string     `json:"fee,omitempty"`
	RefereesNeeded int        `json:"refereesNeeded"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	// Assignments is populated only on the detail view.
	Assignments []GameAssignment `json:"assignments,omitempty"`
}

// GameAssignment is an assignment row as seen from the game side, carrying
// the assigned referee's public fields.
type GameAssignment struct {
	ID     int              `json:"id"`
	Role   string           `json:"role"`
	Status AssignmentStatus `json:"status"`
	Fee    string           `json:"fee,omitempty"`
	User   UserPublicInfo   `json:"user"`
}
