package model

import (
	"time"

	"github.com/google/uuid"
)

// CatalogItem is a catalog entry representing one or more physical copies
// of a work. Available counts the copies not currently on loan and must
// stay within [0, Quantity].
type CatalogItem struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	Quantity  int       `json:"quantity"`
	Available int       `json:"available"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter is an equality filter over catalog fields. Zero values match
// everything, so the empty Filter lists the whole catalog.
type Filter struct {
	Title      string
	Author     string
	ISBNPrefix string
}

// IsEmpty reports whether no field constraint is set.
func (f Filter) IsEmpty() bool {
	return f.Title == "" && f.Author == "" && f.ISBNPrefix == ""
}
