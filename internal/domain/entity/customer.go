package entity

import "time"

// Customer cliente de la empresa de servicio técnico.
type Customer struct {
	ID        string
	Name      string
	Address   string
	Email     *string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerWithRelations cliente con sus equipos y contactos cargados.
type CustomerWithRelations struct {
	Customer
	Devices  []Device
	Contacts []Contact
}
