package domain

import "time"

// UserStatus gates whether an account may log in at all.
type UserStatus int

const (
	StatusDisabled UserStatus = iota
	StatusEnabled
)

func (s UserStatus) String() string {
	if s == StatusEnabled {
		return "ENABLED"
	}
	return "DISABLED"
}

type User struct {
	ID           int64      `json:"id"`
	AccountName  string     `json:"account_name"`
	PasswordHash string     `json:"-"` // bcrypt encoded, never serialized
	Name         string     `json:"name"`
	Phone        string     `json:"phone,omitempty"` // AES-encrypted at rest
	Role         Role       `json:"role"`
	Sno          string     `json:"sno,omitempty"` // student number
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
