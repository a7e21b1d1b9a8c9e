package repository

import "github.com/jhoicas/ims-backend/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	GetByUsername(username string) (*entity.User, error)
	Create(u *entity.User) error
}
