package mapper

import (
	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

// ToUserResponse mapea un User; el hash de password nunca se expone.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Image:     u.Image,
		Role:      entity.Role(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToUserResponses mapea una lista; nunca devuelve nil.
func ToUserResponses(list []entity.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(list))
	for i := range list {
		out = append(out, *ToUserResponse(&list[i]))
	}
	return out
}
