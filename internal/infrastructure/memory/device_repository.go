package memory

import (
	"context"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/mapper"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

var _ ports.DeviceRepository = (*DeviceRepo)(nil)

type DeviceRepo struct {
	s *Store
}

func NewDeviceRepository(s *Store) *DeviceRepo {
	return &DeviceRepo{s: s}
}

func (r *DeviceRepo) Create(_ context.Context, in dto.CreateDeviceRequest) (*dto.DeviceResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	const op = "Failed to create device"
	if r.serialTaken(in.SerialNumber, "") {
		return nil, duplicate(op, "serial number "+in.SerialNumber)
	}
	if err := r.checkCustomer(op, in.CustomerID); err != nil {
		return nil, err
	}
	now := r.s.now()
	d := entity.Device{
		ID:           newID(),
		Model:        string(in.Model),
		SerialNumber: in.SerialNumber,
		CustomerID:   cloneStr(in.CustomerID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.s.devices.put(d.ID, d)
	return mapper.ToDeviceResponse(&d), nil
}

func (r *DeviceRepo) FindByID(_ context.Context, id string) (*dto.DeviceResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.devices.get(id)
	if !ok {
		return nil, nil
	}
	return mapper.ToDeviceResponse(&d), nil
}

func (r *DeviceRepo) FindBySerialNumber(_ context.Context, serialNumber string) (*dto.DeviceResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, d := range r.s.devices.list() {
		if d.SerialNumber == serialNumber {
			return mapper.ToDeviceResponse(&d), nil
		}
	}
	return nil, nil
}

func (r *DeviceRepo) FindByIDWithRelations(_ context.Context, id string) (*dto.DeviceWithRelationsResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.devices.get(id)
	if !ok {
		return nil, nil
	}
	rel := r.s.deviceWithCustomer(d)
	return mapper.ToDeviceWithRelationsResponse(&rel), nil
}

func (r *DeviceRepo) FindAll(_ context.Context) ([]dto.DeviceResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return mapper.ToDeviceResponses(r.s.devices.list()), nil
}

func (r *DeviceRepo) FindAllWithRelations(_ context.Context) ([]dto.DeviceWithRelationsResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	devices := r.s.devices.list()
	list := make([]entity.DeviceWithRelations, 0, len(devices))
	for _, d := range devices {
		list = append(list, r.s.deviceWithCustomer(d))
	}
	return mapper.ToDeviceWithRelationsResponses(list), nil
}

func (r *DeviceRepo) FindAllForCustomer(_ context.Context, customerID string) ([]dto.DeviceResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return mapper.ToDeviceResponses(r.s.devicesOf(customerID)), nil
}

func (r *DeviceRepo) Update(_ context.Context, id string, in dto.UpdateDeviceRequest) (*dto.DeviceResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	const op = "Failed to update device"
	d, ok := r.s.devices.get(id)
	if !ok {
		return nil, missing(op, id)
	}
	if r.serialTaken(in.SerialNumber, id) {
		return nil, duplicate(op, "serial number "+in.SerialNumber)
	}
	if err := r.checkCustomer(op, in.CustomerID); err != nil {
		return nil, err
	}
	d.Model = string(in.Model)
	d.SerialNumber = in.SerialNumber
	d.CustomerID = cloneStr(in.CustomerID)
	d.UpdatedAt = r.s.now()
	r.s.devices.put(id, d)
	return mapper.ToDeviceResponse(&d), nil
}

// Delete falla si el equipo tiene órdenes de servicio (RESTRICT).
func (r *DeviceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	const op = "Failed to delete device"
	if _, ok := r.s.devices.get(id); !ok {
		return missing(op, id)
	}
	for _, o := range r.s.orders.rows {
		if o.DeviceID == id {
			return foreignKey(op, "device "+id+" has service orders")
		}
	}
	r.s.devices.remove(id)
	return nil
}

func (r *DeviceRepo) serialTaken(serial, exceptID string) bool {
	for _, d := range r.s.devices.rows {
		if d.SerialNumber == serial && d.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *DeviceRepo) checkCustomer(op string, id *string) error {
	if id == nil {
		return nil
	}
	if _, ok := r.s.customers.get(*id); !ok {
		return foreignKey(op, "customer "+*id)
	}
	return nil
}
