package repository

import "github.com/jhoicas/ims-backend/internal/domain/entity"

// ProductTypeRepository puerto de persistencia para categorías de producto.
type ProductTypeRepository interface {
	Create(t *entity.ProductType) error
	GetByID(id string) (*entity.ProductType, error)
	Update(t *entity.ProductType) error
	Delete(id string) error
	List() ([]*entity.ProductType, error)
}
