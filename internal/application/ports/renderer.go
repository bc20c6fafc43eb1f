package ports

import (
	"context"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
)

// WorkOrderRenderer genera el PDF imprimible (hoja de trabajo) de una orden de servicio.
type WorkOrderRenderer interface {
	RenderWorkOrder(ctx context.Context, order *dto.ServiceOrderDetailsView) ([]byte, error)
}
