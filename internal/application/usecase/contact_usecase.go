package usecase

import (
	"context"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/domain"
)

// ContactUseCase casos de uso de contactos. Escrituras ADMIN o TECHNICIAN.
type ContactUseCase struct {
	repo      ports.ContactRepository
	customers ports.CustomerRepository
	auth      Authorizer
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(repo ports.ContactRepository, customers ports.CustomerRepository, auth Authorizer) *ContactUseCase {
	return &ContactUseCase{repo: repo, customers: customers, auth: auth}
}

// Create crea el contacto y lo asocia a los clientes indicados (deben existir).
func (uc *ContactUseCase) Create(ctx context.Context, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	if _, err := uc.auth.RequireAnyRole(ctx, adminOrTechnician...); err != nil {
		return nil, err
	}
	if err := uc.customersExist(ctx, in.CustomerIDs); err != nil {
		return nil, err
	}
	return uc.repo.Create(ctx, in)
}

func (uc *ContactUseCase) Get(ctx context.Context, id string) (*dto.ContactResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.repo.FindByID(ctx, id)
}

func (uc *ContactUseCase) GetWithRelations(ctx context.Context, id string) (*dto.ContactWithRelationsResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.repo.FindByIDWithRelations(ctx, id)
}

func (uc *ContactUseCase) GetAll(ctx context.Context) ([]dto.ContactResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.repo.FindAll(ctx)
}

// GetAllForCustomer lista los contactos asociados al cliente.
func (uc *ContactUseCase) GetAllForCustomer(ctx context.Context, customerID string) ([]dto.ContactResponse, error) {
	if _, err := uc.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}
	return uc.repo.FindAllForCustomer(ctx, customerID)
}

// Update reemplaza los datos del contacto y, si CustomerIDs no es nil, sus asociaciones.
func (uc *ContactUseCase) Update(ctx context.Context, id string, in dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	if _, err := uc.auth.RequireAnyRole(ctx, adminOrTechnician...); err != nil {
		return nil, err
	}
	if err := uc.mustExist(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.customersExist(ctx, in.CustomerIDs); err != nil {
		return nil, err
	}
	return uc.repo.Update(ctx, id, in)
}

func (uc *ContactUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.auth.RequireAnyRole(ctx, adminOrTechnician...); err != nil {
		return err
	}
	if err := uc.mustExist(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ContactUseCase) mustExist(ctx context.Context, id string) error {
	contact, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if contact == nil {
		return domain.NewNotFound("Contact", id)
	}
	return nil
}

func (uc *ContactUseCase) customersExist(ctx context.Context, ids []string) error {
	for _, id := range ids {
		customer, err := uc.customers.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.NewNotFound("Customer", id)
		}
	}
	return nil
}
