package domain

import "time"

type Doctor struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name,omitempty"`
	Email         string    `json:"email"`
	LicenseNumber string    `json:"license_number,omitempty"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}
