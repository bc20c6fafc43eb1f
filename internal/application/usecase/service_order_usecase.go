package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/mapper"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/domain"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

// ServiceOrderUseCase casos de uso de órdenes de servicio.
// Crear y editar: ADMIN o TECHNICIAN. Eliminar: solo ADMIN.
// Las comprobaciones de equipo y técnico van directo a los repositorios: un TECHNICIAN
// no puede usar el servicio de usuarios.
type ServiceOrderUseCase struct {
	orders   ports.ServiceOrderRepository
	devices  ports.DeviceRepository
	users    ports.UserRepository
	renderer ports.WorkOrderRenderer
	auth     Authorizer
	now      func() time.Time
}

// NewServiceOrderUseCase construye el caso de uso. renderer puede ser nil si no se exponen PDFs.
func NewServiceOrderUseCase(
	orders ports.ServiceOrderRepository,
	devices ports.DeviceRepository,
	users ports.UserRepository,
	renderer ports.WorkOrderRenderer,
	auth Authorizer,
) *ServiceOrderUseCase {
	return &ServiceOrderUseCase{
		orders:   orders,
		devices:  devices,
		users:    users,
		renderer: renderer,
		auth:     auth,
		now:      time.Now,
	}
}

// Create valida equipo y técnico antes de persistir. Status vacío = PENDING.
func (uc *ServiceOrderUseCase) Create(ctx context.Context, in dto.CreateServiceOrderRequest) (*dto.ServiceOrderResponse, error) {
	if _, err := uc.auth.RequireAnyRole(ctx, adminOrTechnician...); err != nil {
		return nil, err
	}
	device, err := uc.devices.FindByID(ctx, in.DeviceID)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, domain.NewNotFound("Device", in.DeviceID)
	}
	assignee := normalizeID(in.AssignedToID)
	if err := uc.ensureTechnician(ctx, assignee); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.StatusPending
	}
	if !status.Valid() {
		return nil, domain.NewValidation("Invalid status %q", status)
	}
	var completedAt *time.Time
	if status == entity.StatusCompleted {
		t := uc.now().UTC()
		completedAt = &t
	}
	return uc.orders.Create(ctx, ports.NewServiceOrder{
		DeviceID:           in.DeviceID,
		TroubleDescription: in.TroubleDescription,
		AssignedToID:       assignee,
		Status:             status,
		CompletedAt:        completedAt,
	})
}

func (uc *ServiceOrderUseCase) Get(ctx context.Context, id string) (*dto.ServiceOrderResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.orders.FindByID(ctx, id)
}

func (uc *ServiceOrderUseCase) GetWithRelations(ctx context.Context, id string) (*dto.ServiceOrderWithRelationsResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.orders.FindByIDWithRelations(ctx, id)
}

func (uc *ServiceOrderUseCase) GetAll(ctx context.Context) ([]dto.ServiceOrderResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.orders.FindAll(ctx)
}

func (uc *ServiceOrderUseCase) GetAllWithRelations(ctx context.Context) ([]dto.ServiceOrderWithRelationsResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.orders.FindAllWithRelations(ctx)
}

// GetAllForTable proyecta todas las órdenes a filas de tabla.
func (uc *ServiceOrderUseCase) GetAllForTable(ctx context.Context) ([]dto.ServiceOrderTableView, error) {
	list, err := uc.GetAllWithRelations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServiceOrderTableView, 0, len(list))
	for i := range list {
		out = append(out, mapper.ToTableView(&list[i]))
	}
	return out, nil
}

// GetDetails proyecta una orden a la vista de detalle (nil si no existe).
func (uc *ServiceOrderUseCase) GetDetails(ctx context.Context, id string) (*dto.ServiceOrderDetailsView, error) {
	order, err := uc.GetWithRelations(ctx, id)
	if err != nil || order == nil {
		return nil, err
	}
	v := mapper.ToDetailsView(order)
	return &v, nil
}

func (uc *ServiceOrderUseCase) GetAllForDevice(ctx context.Context, deviceID string) ([]dto.ServiceOrderResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.orders.FindAllForDevice(ctx, deviceID)
}

// GetMine órdenes asignadas al usuario de la sesión.
func (uc *ServiceOrderUseCase) GetMine(ctx context.Context) ([]dto.ServiceOrderResponse, error) {
	user, err := uc.auth.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	return uc.orders.FindAllForAssignee(ctx, user.ID)
}

// Update reemplaza descripción, técnico y estado respetando el flujo de estados.
// completedAt se fija al entrar en COMPLETED y no se borra después.
func (uc *ServiceOrderUseCase) Update(ctx context.Context, id string, in dto.UpdateServiceOrderRequest) (*dto.ServiceOrderResponse, error) {
	if _, err := uc.auth.RequireAnyRole(ctx, adminOrTechnician...); err != nil {
		return nil, err
	}
	existing, err := uc.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NewNotFound("Service order", id)
	}
	assignee := normalizeID(in.AssignedToID)
	if err := uc.ensureTechnician(ctx, assignee); err != nil {
		return nil, err
	}
	if !in.Status.Valid() {
		return nil, domain.NewValidation("Invalid status %q", in.Status)
	}
	if !existing.Status.CanTransitionTo(in.Status) {
		return nil, domain.NewValidation("Cannot change status from %s to %s", existing.Status, in.Status)
	}
	changes := ports.ServiceOrderChanges{
		TroubleDescription: in.TroubleDescription,
		AssignedToID:       assignee,
		Status:             in.Status,
	}
	if in.Status == entity.StatusCompleted && existing.CompletedAt == nil {
		t := uc.now().UTC()
		changes.CompletedAt = &t
	}
	return uc.orders.Update(ctx, id, changes)
}

func (uc *ServiceOrderUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.auth.RequireAnyRole(ctx, adminOnly...); err != nil {
		return err
	}
	existing, err := uc.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.NewNotFound("Service order", id)
	}
	return uc.orders.Delete(ctx, id)
}

// WorkOrderPDF genera la hoja de trabajo imprimible de la orden.
func (uc *ServiceOrderUseCase) WorkOrderPDF(ctx context.Context, id string) ([]byte, error) {
	details, err := uc.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, domain.NewNotFound("Service order", id)
	}
	if uc.renderer == nil {
		return nil, domain.NewValidation("PDF rendering is not configured")
	}
	return uc.renderer.RenderWorkOrder(ctx, details)
}

// ensureTechnician nil = sin asignar. Si hay ID, el usuario debe existir y ser TECHNICIAN.
func (uc *ServiceOrderUseCase) ensureTechnician(ctx context.Context, userID *string) error {
	if userID == nil {
		return nil
	}
	user, err := uc.users.FindByID(ctx, *userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NewNotFound("User", *userID)
	}
	if user.Role != entity.RoleTechnician {
		return domain.NewValidation("User with ID %s is not a technician", *userID)
	}
	return nil
}
