package entity

import "time"

// User usuario del sistema (autenticación por token).
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string // "admin" | "staff" | "viewer"
	CreatedAt    time.Time
}
