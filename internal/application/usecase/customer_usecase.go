package usecase

import (
	"context"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/domain"
)

// CustomerUseCase casos de uso de clientes. Escrituras solo ADMIN; lecturas cualquier usuario autenticado.
type CustomerUseCase struct {
	repo ports.CustomerRepository
	auth Authorizer
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo ports.CustomerRepository, auth Authorizer) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, auth: auth}
}

// Create crea un nuevo cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if _, err := uc.auth.RequireAnyRole(ctx, adminOnly...); err != nil {
		return nil, err
	}
	return uc.repo.Create(ctx, in)
}

// Get devuelve el cliente o nil si no existe.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.repo.FindByID(ctx, id)
}

// GetWithRelations devuelve el cliente con equipos y contactos, o nil.
func (uc *CustomerUseCase) GetWithRelations(ctx context.Context, id string) (*dto.CustomerWithRelationsResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.repo.FindByIDWithRelations(ctx, id)
}

// GetAll lista todos los clientes.
func (uc *CustomerUseCase) GetAll(ctx context.Context) ([]dto.CustomerResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.repo.FindAll(ctx)
}

// Update reemplaza los datos del cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if _, err := uc.auth.RequireAnyRole(ctx, adminOnly...); err != nil {
		return nil, err
	}
	if err := uc.mustExist(ctx, id); err != nil {
		return nil, err
	}
	return uc.repo.Update(ctx, id, in)
}

// Delete elimina el cliente. Sus equipos quedan sin cliente.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.auth.RequireAnyRole(ctx, adminOnly...); err != nil {
		return err
	}
	if err := uc.mustExist(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CustomerUseCase) mustExist(ctx context.Context, id string) error {
	customer, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.NewNotFound("Customer", id)
	}
	return nil
}
