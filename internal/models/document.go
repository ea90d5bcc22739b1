package models

import (
	"time"

	"github.com/google/uuid"
)

type DocumentCategory string

const (
	CategoryOperations  DocumentCategory = "operations"
	CategoryHospitality DocumentCategory = "hospitality"
	CategoryPOS         DocumentCategory = "pos_systems"
	CategoryBeer        DocumentCategory = "craft_beer"
	CategoryCocktails   DocumentCategory = "cocktails"
	CategoryOther       DocumentCategory = "other"
)

type Document struct {
	ID        uuid.UUID        `db:"id"`
	Title     string           `db:"title"`
	Content   string           `db:"content"`
	Category  DocumentCategory `db:"category"`
	Tags      []string         `db:"tags"`
	FileType  string           `db:"file_type"`
	CreatedBy uuid.UUID        `db:"created_by"`
	CreatedAt time.Time        `db:"created_at"`
	UpdatedAt time.Time        `db:"updated_at"`
}
