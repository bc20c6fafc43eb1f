package mapper

import (
	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

func ToCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToCustomerResponses(list []entity.Customer) []dto.CustomerResponse {
	out := make([]dto.CustomerResponse, 0, len(list))
	for i := range list {
		out = append(out, *ToCustomerResponse(&list[i]))
	}
	return out
}

// ToCustomerWithRelationsResponse compone equipos y contactos con sus propios mappers.
func ToCustomerWithRelationsResponse(c *entity.CustomerWithRelations) *dto.CustomerWithRelationsResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerWithRelationsResponse{
		CustomerResponse: *ToCustomerResponse(&c.Customer),
		Devices:          ToDeviceResponses(c.Devices),
		Contacts:         ToContactResponses(c.Contacts),
	}
}
