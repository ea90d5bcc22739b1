package models

import (
	"time"

	"github.com/google/uuid"
)

// Beer is a row in the beer-list reference table shown to staff.
type Beer struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Brewery     string    `db:"brewery"`
	Style       string    `db:"style"`
	ABV         float64   `db:"abv"`
	Description string    `db:"description"`
	OnTap       bool      `db:"on_tap"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
