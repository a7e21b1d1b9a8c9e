package entity

import "time"

// Supplier proveedor del catálogo.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Client cliente del catálogo.
type Client struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PartyRef referencia a proveedor o cliente dentro de una transacción.
// Variante etiquetada: o bien referencia estructurada (RefID) o bien los
// campos de texto libre legacy (Name/Contact) de transacciones anteriores
// a la existencia de Supplier/Client como registros propios. Nunca ambos
// son autoritativos: si RefID no está vacío, manda la referencia.
type PartyRef struct {
	RefID   string
	Name    string
	Contact string
}

// IsReferenced indica si la variante activa es la referencia estructurada.
func (p PartyRef) IsReferenced() bool { return p.RefID != "" }

// IsZero indica que no hay proveedor/cliente asociado.
func (p PartyRef) IsZero() bool { return p.RefID == "" && p.Name == "" && p.Contact == "" }
