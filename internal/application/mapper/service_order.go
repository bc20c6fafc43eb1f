package mapper

import (
	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

func ToServiceOrderResponse(o *entity.ServiceOrder) *dto.ServiceOrderResponse {
	if o == nil {
		return nil
	}
	return &dto.ServiceOrderResponse{
		ID:                 o.ID,
		TroubleDescription: o.TroubleDescription,
		Status:             entity.ServiceOrderStatus(o.Status),
		DeviceID:           o.DeviceID,
		AssignedToID:       o.AssignedToID,
		CompletedAt:        o.CompletedAt,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

func ToServiceOrderResponses(list []entity.ServiceOrder) []dto.ServiceOrderResponse {
	out := make([]dto.ServiceOrderResponse, 0, len(list))
	for i := range list {
		out = append(out, *ToServiceOrderResponse(&list[i]))
	}
	return out
}

// ToServiceOrderWithRelationsResponse compone Device→Customer y User delegando en sus mappers.
func ToServiceOrderWithRelationsResponse(o *entity.ServiceOrderWithRelations) *dto.ServiceOrderWithRelationsResponse {
	if o == nil {
		return nil
	}
	return &dto.ServiceOrderWithRelationsResponse{
		ServiceOrderResponse: *ToServiceOrderResponse(&o.ServiceOrder),
		Device:               *ToDeviceWithRelationsResponse(&o.Device),
		AssignedTo:           ToUserResponse(o.AssignedTo),
	}
}

func ToServiceOrderWithRelationsResponses(list []entity.ServiceOrderWithRelations) []dto.ServiceOrderWithRelationsResponse {
	out := make([]dto.ServiceOrderWithRelationsResponse, 0, len(list))
	for i := range list {
		out = append(out, *ToServiceOrderWithRelationsResponse(&list[i]))
	}
	return out
}

// ToTableView aplana una orden con relaciones para listados.
func ToTableView(o *dto.ServiceOrderWithRelationsResponse) dto.ServiceOrderTableView {
	v := dto.ServiceOrderTableView{
		ID:                 o.ID,
		TroubleDescription: o.TroubleDescription,
		Status:             o.Status,
		DeviceSerialNumber: o.Device.SerialNumber,
		CompletedAt:        o.CompletedAt,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	if o.Device.Customer != nil {
		name := o.Device.Customer.Name
		v.CustomerName = &name
	}
	if o.AssignedTo != nil {
		v.AssignedToName = o.AssignedTo.Name
	}
	return v
}

// ToDetailsView aplana una orden con relaciones para la vista de detalle.
func ToDetailsView(o *dto.ServiceOrderWithRelationsResponse) dto.ServiceOrderDetailsView {
	v := dto.ServiceOrderDetailsView{
		ID:                 o.ID,
		TroubleDescription: o.TroubleDescription,
		Status:             o.Status,
		DeviceID:           o.DeviceID,
		DeviceSerialNumber: o.Device.SerialNumber,
		DeviceModel:        o.Device.Model,
		CustomerID:         o.Device.CustomerID,
		AssignedToID:       o.AssignedToID,
		CompletedAt:        o.CompletedAt,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	if c := o.Device.Customer; c != nil {
		name := c.Name
		v.CustomerName = &name
		v.CustomerEmail = c.Email
	}
	if u := o.AssignedTo; u != nil {
		email := u.Email
		v.AssignedToName = u.Name
		v.AssignedToEmail = &email
	}
	return v
}
