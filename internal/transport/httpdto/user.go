package httpdto

import (
	"time"

	"courier-chat/internal/domain/user"
	"courier-chat/internal/services"
)

// UsersResponse is returned when listing users
type UsersResponse struct {
	Users []ProfileDTO `json:"users"`
}

// UserResponse is returned when fetching a single user
type UserResponse struct {
	User UserDetailDTO `json:"user"`
}

// ProfileDTO is a user's public profile in API responses
type ProfileDTO struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// UserDetailDTO is a full profile including timestamps
type UserDetailDTO struct {
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Phone       string     `json:"phone"`
	JoinAt      time.Time  `json:"join_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// FromProfile converts a domain profile to ProfileDTO
func FromProfile(p user.Profile) ProfileDTO {
	return ProfileDTO{
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
	}
}

// FromProfileSlice converts a slice of domain profiles to ProfileDTO slice
func FromProfileSlice(profiles []user.Profile) []ProfileDTO {
	dtos := make([]ProfileDTO, len(profiles))
	for i, p := range profiles {
		dtos[i] = FromProfile(p)
	}
	return dtos
}

// FromProfileDetail converts a service profile detail to UserDetailDTO
func FromProfileDetail(d services.ProfileDetail) UserDetailDTO {
	return UserDetailDTO{
		Username:    d.Username,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Phone:       d.Phone,
		JoinAt:      d.JoinAt,
		LastLoginAt: d.LastLoginAt,
	}
}
