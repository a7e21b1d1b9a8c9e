package dto

import "time"

// PartyRequest body para crear/actualizar proveedores y clientes
// (misma forma para ambos).
type PartyRequest struct {
	Name          string `json:"name" validate:"required"`
	ContactPerson string `json:"contact_person,omitempty"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// PartyResponse representación de un proveedor o cliente.
type PartyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductTypeRequest body para crear/actualizar categorías.
type ProductTypeRequest struct {
	Name string `json:"name" validate:"required"`
}

// ProductTypeResponse representación de una categoría.
type ProductTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
