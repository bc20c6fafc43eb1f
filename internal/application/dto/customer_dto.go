package dto

import "time"

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerWithRelationsResponse cliente con equipos y contactos.
type CustomerWithRelationsResponse struct {
	CustomerResponse
	Devices  []DeviceResponse  `json:"devices"`
	Contacts []ContactResponse `json:"contacts"`
}

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string  `json:"name" validate:"required,min=2"`
	Address string  `json:"address" validate:"required,min=2"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,min=9"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id (reemplazo completo).
type UpdateCustomerRequest struct {
	Name    string  `json:"name" validate:"required,min=2"`
	Address string  `json:"address" validate:"required,min=2"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,min=9"`
}
