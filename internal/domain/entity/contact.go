package entity

import "time"

// Contact persona de contacto; puede estar asociada a varios clientes.
// Los campos de texto son anulables en almacenamiento.
type Contact struct {
	ID        string
	Name      *string
	Email     *string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactWithRelations contacto con los clientes asociados.
type ContactWithRelations struct {
	Contact
	Customers []Customer
}
