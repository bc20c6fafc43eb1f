package dto

import (
	"time"

	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

// ServiceOrderResponse orden de servicio sin relaciones.
type ServiceOrderResponse struct {
	ID                 string                    `json:"id"`
	TroubleDescription string                    `json:"trouble_description"`
	Status             entity.ServiceOrderStatus `json:"status"`
	DeviceID           string                    `json:"device_id"`
	AssignedToID       *string                   `json:"assigned_to_id"`
	CompletedAt        *time.Time                `json:"completed_at"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
}

// ServiceOrderWithRelationsResponse orden con equipo (y cliente) y técnico asignado.
type ServiceOrderWithRelationsResponse struct {
	ServiceOrderResponse
	Device     DeviceWithRelationsResponse `json:"device"`
	AssignedTo *UserResponse               `json:"assigned_to"`
}

// CreateServiceOrderRequest body para POST /api/service-orders. Status vacío = PENDING.
type CreateServiceOrderRequest struct {
	DeviceID           string                    `json:"device_id" validate:"required"`
	TroubleDescription string                    `json:"trouble_description" validate:"required,min=10,max=1000"`
	AssignedToID       *string                   `json:"assigned_to_id"` // "" = sin asignar
	Status             entity.ServiceOrderStatus `json:"status" validate:"omitempty,oneof=PENDING ISSUED COMPLETED CANCELLED"`
}

// UpdateServiceOrderRequest body para PUT /api/service-orders/:id.
type UpdateServiceOrderRequest struct {
	TroubleDescription string                    `json:"trouble_description" validate:"required,min=10,max=1000"`
	AssignedToID       *string                   `json:"assigned_to_id"` // "" = sin asignar
	Status             entity.ServiceOrderStatus `json:"status" validate:"required,oneof=PENDING ISSUED COMPLETED CANCELLED"`
}

// ServiceOrderTableView fila plana para listados.
type ServiceOrderTableView struct {
	ID                 string                    `json:"id"`
	TroubleDescription string                    `json:"trouble_description"`
	Status             entity.ServiceOrderStatus `json:"status"`
	DeviceSerialNumber string                    `json:"device_serial_number"`
	CustomerName       *string                   `json:"customer_name"`
	AssignedToName     *string                   `json:"assigned_to_name"`
	CompletedAt        *time.Time                `json:"completed_at"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
}

// ServiceOrderDetailsView vista de detalle de una orden.
type ServiceOrderDetailsView struct {
	ID                 string                    `json:"id"`
	TroubleDescription string                    `json:"trouble_description"`
	Status             entity.ServiceOrderStatus `json:"status"`
	DeviceID           string                    `json:"device_id"`
	DeviceSerialNumber string                    `json:"device_serial_number"`
	DeviceModel        entity.DeviceModel        `json:"device_model"`
	CustomerID         *string                   `json:"customer_id"`
	CustomerName       *string                   `json:"customer_name"`
	CustomerEmail      *string                   `json:"customer_email"`
	AssignedToID       *string                   `json:"assigned_to_id"`
	AssignedToName     *string                   `json:"assigned_to_name"`
	AssignedToEmail    *string                   `json:"assigned_to_email"`
	CompletedAt        *time.Time                `json:"completed_at"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
}
