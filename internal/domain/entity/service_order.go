package entity

import "time"

// ServiceOrderStatus estado de una orden de servicio.
type ServiceOrderStatus string

const (
	StatusPending   ServiceOrderStatus = "PENDING"
	StatusIssued    ServiceOrderStatus = "ISSUED"
	StatusCompleted ServiceOrderStatus = "COMPLETED"
	StatusCancelled ServiceOrderStatus = "CANCELLED"
)

// transiciones permitidas; los estados sin entrada son terminales.
var statusTransitions = map[ServiceOrderStatus][]ServiceOrderStatus{
	StatusPending: {StatusIssued, StatusCompleted, StatusCancelled},
	StatusIssued:  {StatusCompleted, StatusCancelled},
}

// Valid informa si s es un estado conocido.
func (s ServiceOrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusIssued, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal informa si desde s ya no se puede avanzar.
func (s ServiceOrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo informa si el flujo permite pasar de s a next.
// Repetir el estado actual siempre está permitido.
func (s ServiceOrderStatus) CanTransitionTo(next ServiceOrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ServiceOrder orden de servicio técnico sobre un equipo.
type ServiceOrder struct {
	ID                 string
	TroubleDescription string
	Status             string
	DeviceID           string
	AssignedToID       *string
	CompletedAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ServiceOrderWithRelations orden con equipo (y su cliente) y técnico asignado.
type ServiceOrderWithRelations struct {
	ServiceOrder
	Device     DeviceWithRelations
	AssignedTo *User
}
