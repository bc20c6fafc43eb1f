package memory

import (
	"context"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/mapper"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

var _ ports.ServiceOrderRepository = (*ServiceOrderRepo)(nil)

type ServiceOrderRepo struct {
	s *Store
}

func NewServiceOrderRepository(s *Store) *ServiceOrderRepo {
	return &ServiceOrderRepo{s: s}
}

func (r *ServiceOrderRepo) Create(_ context.Context, in ports.NewServiceOrder) (*dto.ServiceOrderResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkRefs("Failed to create service order", in.DeviceID, in.AssignedToID); err != nil {
		return nil, err
	}
	now := r.s.now()
	o := entity.ServiceOrder{
		ID:                 newID(),
		TroubleDescription: in.TroubleDescription,
		Status:             string(in.Status),
		DeviceID:           in.DeviceID,
		AssignedToID:       cloneStr(in.AssignedToID),
		CompletedAt:        cloneTime(in.CompletedAt),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	r.s.orders.put(o.ID, o)
	return mapper.ToServiceOrderResponse(&o), nil
}

func (r *ServiceOrderRepo) FindByID(_ context.Context, id string) (*dto.ServiceOrderResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders.get(id)
	if !ok {
		return nil, nil
	}
	return mapper.ToServiceOrderResponse(&o), nil
}

func (r *ServiceOrderRepo) FindByIDWithRelations(_ context.Context, id string) (*dto.ServiceOrderWithRelationsResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders.get(id)
	if !ok {
		return nil, nil
	}
	rel := r.s.orderWithRelations(o)
	return mapper.ToServiceOrderWithRelationsResponse(&rel), nil
}

func (r *ServiceOrderRepo) FindAll(_ context.Context) ([]dto.ServiceOrderResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return mapper.ToServiceOrderResponses(r.s.orders.list()), nil
}

func (r *ServiceOrderRepo) FindAllWithRelations(_ context.Context) ([]dto.ServiceOrderWithRelationsResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	orders := r.s.orders.list()
	list := make([]entity.ServiceOrderWithRelations, 0, len(orders))
	for _, o := range orders {
		list = append(list, r.s.orderWithRelations(o))
	}
	return mapper.ToServiceOrderWithRelationsResponses(list), nil
}

func (r *ServiceOrderRepo) FindAllForDevice(_ context.Context, deviceID string) ([]dto.ServiceOrderResponse, error) {
	return r.filter(func(o entity.ServiceOrder) bool { return o.DeviceID == deviceID }), nil
}

func (r *ServiceOrderRepo) FindAllForAssignee(_ context.Context, userID string) ([]dto.ServiceOrderResponse, error) {
	return r.filter(func(o entity.ServiceOrder) bool {
		return o.AssignedToID != nil && *o.AssignedToID == userID
	}), nil
}

func (r *ServiceOrderRepo) Update(_ context.Context, id string, in ports.ServiceOrderChanges) (*dto.ServiceOrderResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	const op = "Failed to update service order"
	o, ok := r.s.orders.get(id)
	if !ok {
		return nil, missing(op, id)
	}
	if err := r.checkRefs(op, o.DeviceID, in.AssignedToID); err != nil {
		return nil, err
	}
	o.TroubleDescription = in.TroubleDescription
	o.AssignedToID = cloneStr(in.AssignedToID)
	o.Status = string(in.Status)
	if in.CompletedAt != nil {
		o.CompletedAt = cloneTime(in.CompletedAt)
	}
	o.UpdatedAt = r.s.now()
	r.s.orders.put(id, o)
	return mapper.ToServiceOrderResponse(&o), nil
}

func (r *ServiceOrderRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders.get(id); !ok {
		return missing("Failed to delete service order", id)
	}
	r.s.orders.remove(id)
	return nil
}

func (r *ServiceOrderRepo) filter(keep func(entity.ServiceOrder) bool) []dto.ServiceOrderResponse {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []entity.ServiceOrder
	for _, o := range r.s.orders.list() {
		if keep(o) {
			list = append(list, o)
		}
	}
	return mapper.ToServiceOrderResponses(list)
}

func (r *ServiceOrderRepo) checkRefs(op, deviceID string, assignedToID *string) error {
	if _, ok := r.s.devices.get(deviceID); !ok {
		return foreignKey(op, "device "+deviceID)
	}
	if assignedToID != nil {
		if _, ok := r.s.users.get(*assignedToID); !ok {
			return foreignKey(op, "user "+*assignedToID)
		}
	}
	return nil
}
