package dto

import (
	"time"

	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

// DeviceResponse equipo en respuestas.
type DeviceResponse struct {
	ID           string             `json:"id"`
	Model        entity.DeviceModel `json:"model"`
	SerialNumber string             `json:"serial_number"`
	CustomerID   *string            `json:"customer_id"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// DeviceWithRelationsResponse equipo con su cliente.
type DeviceWithRelationsResponse struct {
	DeviceResponse
	Customer *CustomerResponse `json:"customer"`
}

// CreateDeviceRequest body para POST /api/devices.
type CreateDeviceRequest struct {
	Model        entity.DeviceModel `json:"model" validate:"required,oneof=C224 C224e C258 C250i C251i"`
	SerialNumber string             `json:"serial_number" validate:"required,min=1"`
	CustomerID   *string            `json:"customer_id"` // "" = sin cliente
}

// UpdateDeviceRequest body para PUT /api/devices/:id (reemplazo completo).
type UpdateDeviceRequest struct {
	Model        entity.DeviceModel `json:"model" validate:"required,oneof=C224 C224e C258 C250i C251i"`
	SerialNumber string             `json:"serial_number" validate:"required,min=1"`
	CustomerID   *string            `json:"customer_id"` // "" = sin cliente
}
