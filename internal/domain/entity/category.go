package entity

import "time"

// Category agrupa productos; ParentID permite subcategorías (sin ciclos).
type Category struct {
	ID          string
	Name        string
	Description string
	ParentID    *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
