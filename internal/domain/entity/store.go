package entity

import "time"

// Store representa uma loja (ponto físico) onde o estoque é mantido.
type Store struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
