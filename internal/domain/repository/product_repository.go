package repository

import "github.com/Dasso14/ModuloInventario/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	// Deactivate marca el producto como inactivo; el histórico se conserva.
	Deactivate(id string) error
}
