package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// UserRepository acceso a usuarios.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
