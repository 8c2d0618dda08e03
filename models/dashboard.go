package models

type DashboardStats struct {
	Referees            int `json:"referees"`
	GamesTotal          int `json:"gamesTotal"`
	UpcomingGames       int `json:"upcomingGames"`
	PendingAssignments  int `json:"pendingAssignments"`
	AcceptedAssignments int `json:"acceptedAssignments"`
}
