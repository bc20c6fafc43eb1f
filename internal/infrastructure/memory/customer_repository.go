package memory

import (
	"context"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/mapper"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

var _ ports.CustomerRepository = (*CustomerRepo)(nil)

type CustomerRepo struct {
	s *Store
}

func NewCustomerRepository(s *Store) *CustomerRepo {
	return &CustomerRepo{s: s}
}

func (r *CustomerRepo) Create(_ context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	c := entity.Customer{
		ID:        newID(),
		Name:      in.Name,
		Address:   in.Address,
		Email:     cloneStr(in.Email),
		Phone:     cloneStr(in.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.customers.put(c.ID, c)
	return mapper.ToCustomerResponse(&c), nil
}

func (r *CustomerRepo) FindByID(_ context.Context, id string) (*dto.CustomerResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers.get(id)
	if !ok {
		return nil, nil
	}
	return mapper.ToCustomerResponse(&c), nil
}

func (r *CustomerRepo) FindByIDWithRelations(_ context.Context, id string) (*dto.CustomerWithRelationsResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers.get(id)
	if !ok {
		return nil, nil
	}
	return mapper.ToCustomerWithRelationsResponse(&entity.CustomerWithRelations{
		Customer: c,
		Devices:  r.s.devicesOf(id),
		Contacts: r.s.contactsOf(id),
	}), nil
}

func (r *CustomerRepo) FindAll(_ context.Context) ([]dto.CustomerResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return mapper.ToCustomerResponses(r.s.customers.list()), nil
}

func (r *CustomerRepo) Update(_ context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers.get(id)
	if !ok {
		return nil, missing("Failed to update customer", id)
	}
	c.Name = in.Name
	c.Address = in.Address
	c.Email = cloneStr(in.Email)
	c.Phone = cloneStr(in.Phone)
	c.UpdatedAt = r.s.now()
	r.s.customers.put(id, c)
	return mapper.ToCustomerResponse(&c), nil
}

// Delete desasocia sus equipos (SET NULL) y borra las asociaciones con contactos.
func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers.get(id); !ok {
		return missing("Failed to delete customer", id)
	}
	for _, d := range r.s.devicesOf(id) {
		d.CustomerID = nil
		r.s.devices.put(d.ID, d)
	}
	for _, linked := range r.s.links {
		delete(linked, id)
	}
	r.s.customers.remove(id)
	return nil
}
