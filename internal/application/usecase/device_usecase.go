package usecase

import (
	"context"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/domain"
)

// DeviceUseCase casos de uso de equipos. Escrituras solo ADMIN.
type DeviceUseCase struct {
	repo      ports.DeviceRepository
	customers ports.CustomerRepository
	auth      Authorizer
}

// NewDeviceUseCase construye el caso de uso.
func NewDeviceUseCase(repo ports.DeviceRepository, customers ports.CustomerRepository, auth Authorizer) *DeviceUseCase {
	return &DeviceUseCase{repo: repo, customers: customers, auth: auth}
}

// Create registra un equipo. El número de serie duplicado llega como error técnico
// del repositorio (coincide con domain.ErrDuplicate).
func (uc *DeviceUseCase) Create(ctx context.Context, in dto.CreateDeviceRequest) (*dto.DeviceResponse, error) {
	if _, err := uc.auth.RequireAnyRole(ctx, adminOnly...); err != nil {
		return nil, err
	}
	in.CustomerID = normalizeID(in.CustomerID)
	if err := uc.customerExists(ctx, in.CustomerID); err != nil {
		return nil, err
	}
	return uc.repo.Create(ctx, in)
}

func (uc *DeviceUseCase) Get(ctx context.Context, id string) (*dto.DeviceResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.repo.FindByID(ctx, id)
}

func (uc *DeviceUseCase) GetWithRelations(ctx context.Context, id string) (*dto.DeviceWithRelationsResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.repo.FindByIDWithRelations(ctx, id)
}

func (uc *DeviceUseCase) GetBySerialNumber(ctx context.Context, serialNumber string) (*dto.DeviceResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.repo.FindBySerialNumber(ctx, serialNumber)
}

func (uc *DeviceUseCase) GetAll(ctx context.Context) ([]dto.DeviceResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.repo.FindAll(ctx)
}

// GetAllWithRelations lista equipos con su cliente (tabla de equipos).
func (uc *DeviceUseCase) GetAllWithRelations(ctx context.Context) ([]dto.DeviceWithRelationsResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.repo.FindAllWithRelations(ctx)
}

func (uc *DeviceUseCase) GetAllForCustomer(ctx context.Context, customerID string) ([]dto.DeviceResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.repo.FindAllForCustomer(ctx, customerID)
}

func (uc *DeviceUseCase) Update(ctx context.Context, id string, in dto.UpdateDeviceRequest) (*dto.DeviceResponse, error) {
	if _, err := uc.auth.RequireAnyRole(ctx, adminOnly...); err != nil {
		return nil, err
	}
	if err := uc.mustExist(ctx, id); err != nil {
		return nil, err
	}
	in.CustomerID = normalizeID(in.CustomerID)
	if err := uc.customerExists(ctx, in.CustomerID); err != nil {
		return nil, err
	}
	return uc.repo.Update(ctx, id, in)
}

func (uc *DeviceUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.auth.RequireAnyRole(ctx, adminOnly...); err != nil {
		return err
	}
	if err := uc.mustExist(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *DeviceUseCase) mustExist(ctx context.Context, id string) error {
	device, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if device == nil {
		return domain.NewNotFound("Device", id)
	}
	return nil
}

func (uc *DeviceUseCase) customerExists(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	customer, err := uc.customers.FindByID(ctx, *id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.NewNotFound("Customer", *id)
	}
	return nil
}

// normalizeID trata "" como ausencia de referencia.
func normalizeID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}
