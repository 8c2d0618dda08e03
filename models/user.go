package models

import "time"

type UserRole string

const (
	RoleReferee UserRole = "REFEREE"
	RoleAdmin   UserRole = "ADMIN"
)

type User struct {
	ID                 int       `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	Phone              string    `json:"phone,omitempty"`
	Address            string    `json:"address,omitempty"`
	Qualification      string    `json:"qualification,omitempty"`
	Experience         string    `json:"experience,omitempty"`
	PreferredAgeGroups string    `json:"preferredAgeGroups,omitempty"`
	Bio                string    `json:"bio,omitempty"`
	Role               UserRole  `json:"role"`
	PhotoKey           string    `json:"-"`
	PhotoURL           string    `json:"photoUrl,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// UserPublicInfo is the subset of user fields exposed on joined views
// (game details, the admin availability board).
type UserPublicInfo struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

func (u *User) PublicInfo() UserPublicInfo {
	return UserPublicInfo{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}
