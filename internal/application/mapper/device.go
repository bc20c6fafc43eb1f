package mapper

import (
	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

func ToDeviceResponse(d *entity.Device) *dto.DeviceResponse {
	if d == nil {
		return nil
	}
	return &dto.DeviceResponse{
		ID:           d.ID,
		Model:        entity.DeviceModel(d.Model),
		SerialNumber: d.SerialNumber,
		CustomerID:   d.CustomerID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func ToDeviceResponses(list []entity.Device) []dto.DeviceResponse {
	out := make([]dto.DeviceResponse, 0, len(list))
	for i := range list {
		out = append(out, *ToDeviceResponse(&list[i]))
	}
	return out
}

// ToDeviceWithRelationsResponse delega el cliente en ToCustomerResponse.
func ToDeviceWithRelationsResponse(d *entity.DeviceWithRelations) *dto.DeviceWithRelationsResponse {
	if d == nil {
		return nil
	}
	return &dto.DeviceWithRelationsResponse{
		DeviceResponse: *ToDeviceResponse(&d.Device),
		Customer:       ToCustomerResponse(d.Customer),
	}
}

func ToDeviceWithRelationsResponses(list []entity.DeviceWithRelations) []dto.DeviceWithRelationsResponse {
	out := make([]dto.DeviceWithRelationsResponse, 0, len(list))
	for i := range list {
		out = append(out, *ToDeviceWithRelationsResponse(&list[i]))
	}
	return out
}
