package repository

import "github.com/jhoicas/ims-backend/internal/domain/entity"

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(s *entity.Supplier) error
	Delete(id string) error
	List() ([]*entity.Supplier, error)
}

// ClientRepository puerto de persistencia para clientes.
type ClientRepository interface {
	Create(c *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	Update(c *entity.Client) error
	Delete(id string) error
	List() ([]*entity.Client, error)
}
