package domain

import "errors"

var (
	// ErrCommandeNotFound is returned when an order id has no matching record.
	ErrCommandeNotFound = errors.New("commande not found")
	// ErrUserNotFound is returned when a user lookup matches nothing.
	ErrUserNotFound = errors.New("user not found")
	// ErrSessionNotFound is returned for unknown or expired session tokens.
	ErrSessionNotFound = errors.New("session not found")
)
