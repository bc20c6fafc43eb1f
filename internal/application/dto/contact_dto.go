package dto

import "time"

// ContactResponse contacto en respuestas; los textos nunca son null.
type ContactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactWithRelationsResponse contacto con los clientes asociados.
type ContactWithRelationsResponse struct {
	ContactResponse
	Customers []CustomerResponse `json:"customers"`
}

// CreateContactRequest body para POST /api/contacts. CustomerIDs asocia el contacto al crearlo.
type CreateContactRequest struct {
	Name        string   `json:"name" validate:"required,min=1"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone" validate:"required,min=9"`
	CustomerIDs []string `json:"customer_ids" validate:"omitempty,dive,required"`
}

// UpdateContactRequest body para PUT /api/contacts/:id.
// CustomerIDs nil conserva las asociaciones; un slice (aunque vacío) las reemplaza.
type UpdateContactRequest struct {
	Name        string   `json:"name" validate:"required,min=1"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone" validate:"required,min=9"`
	CustomerIDs []string `json:"customer_ids" validate:"omitempty,dive,required"`
}
