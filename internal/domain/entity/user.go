package entity

import "time"

// User cuenta del sistema. IsAdmin habilita listados de carritos ajenos y
// reportes; el resto de operaciones solo requieren identidad.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
