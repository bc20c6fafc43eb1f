package mapper

import (
	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

// ToContactResponse mapea un Contact; nombre, email y teléfono nulos pasan a "".
func ToContactResponse(c *entity.Contact) *dto.ContactResponse {
	if c == nil {
		return nil
	}
	return &dto.ContactResponse{
		ID:        c.ID,
		Name:      stringOrEmpty(c.Name),
		Email:     stringOrEmpty(c.Email),
		Phone:     stringOrEmpty(c.Phone),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToContactResponses(list []entity.Contact) []dto.ContactResponse {
	out := make([]dto.ContactResponse, 0, len(list))
	for i := range list {
		out = append(out, *ToContactResponse(&list[i]))
	}
	return out
}

func ToContactWithRelationsResponse(c *entity.ContactWithRelations) *dto.ContactWithRelationsResponse {
	if c == nil {
		return nil
	}
	return &dto.ContactWithRelationsResponse{
		ContactResponse: *ToContactResponse(&c.Contact),
		Customers:       ToCustomerResponses(c.Customers),
	}
}
