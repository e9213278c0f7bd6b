package user

import (
	"database/sql"
	"time"
)

// User represents the users table
type User struct {
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	JoinAt       time.Time
	LastLoginAt  sql.NullTime
}

// Profile is the subset of user fields safe to expose to other users.
type Profile struct {
	Username  string
	FirstName string
	LastName  string
	Phone     string
}

// Profile returns the public view of the user.
func (u User) Profile() Profile {
	return Profile{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}
