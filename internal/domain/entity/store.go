package entity

import "time"

// Store is a rated entity owned by exactly one owner-role user.
// Created and deleted by admins only; OwnerID must reference a role=owner
// user at creation time.
type Store struct {
	ID        string
	Name      string
	Email     string
	Address   string
	LogoURL   string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
