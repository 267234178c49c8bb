package entity

import "time"

// Supplier representa un proveedor del catálogo de productos.
type Supplier struct {
	ID          string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
