package memory

import (
	"context"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/mapper"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

var _ ports.ContactRepository = (*ContactRepo)(nil)

type ContactRepo struct {
	s *Store
}

func NewContactRepository(s *Store) *ContactRepo {
	return &ContactRepo{s: s}
}

func (r *ContactRepo) Create(_ context.Context, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkCustomers("Failed to create contact", in.CustomerIDs); err != nil {
		return nil, err
	}
	now := r.s.now()
	c := entity.Contact{
		ID:        newID(),
		Name:      &in.Name,
		Email:     &in.Email,
		Phone:     &in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.contacts.put(c.ID, c)
	r.setLinks(c.ID, in.CustomerIDs)
	return mapper.ToContactResponse(&c), nil
}

func (r *ContactRepo) FindByID(_ context.Context, id string) (*dto.ContactResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.contacts.get(id)
	if !ok {
		return nil, nil
	}
	return mapper.ToContactResponse(&c), nil
}

func (r *ContactRepo) FindByIDWithRelations(_ context.Context, id string) (*dto.ContactWithRelationsResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.contacts.get(id)
	if !ok {
		return nil, nil
	}
	return mapper.ToContactWithRelationsResponse(&entity.ContactWithRelations{
		Contact:   c,
		Customers: r.s.customerContacts(id),
	}), nil
}

func (r *ContactRepo) FindAll(_ context.Context) ([]dto.ContactResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return mapper.ToContactResponses(r.s.contacts.list()), nil
}

func (r *ContactRepo) FindAllForCustomer(_ context.Context, customerID string) ([]dto.ContactResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return mapper.ToContactResponses(r.s.contactsOf(customerID)), nil
}

// Update con CustomerIDs distinto de nil reemplaza las asociaciones.
func (r *ContactRepo) Update(_ context.Context, id string, in dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.contacts.get(id)
	if !ok {
		return nil, missing("Failed to update contact", id)
	}
	if err := r.checkCustomers("Failed to update contact", in.CustomerIDs); err != nil {
		return nil, err
	}
	c.Name, c.Email, c.Phone = &in.Name, &in.Email, &in.Phone
	c.UpdatedAt = r.s.now()
	r.s.contacts.put(id, c)
	if in.CustomerIDs != nil {
		r.setLinks(id, in.CustomerIDs)
	}
	return mapper.ToContactResponse(&c), nil
}

func (r *ContactRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.contacts.get(id); !ok {
		return missing("Failed to delete contact", id)
	}
	delete(r.s.links, id)
	r.s.contacts.remove(id)
	return nil
}

func (r *ContactRepo) checkCustomers(op string, ids []string) error {
	for _, id := range ids {
		if _, ok := r.s.customers.get(id); !ok {
			return foreignKey(op, "customer "+id)
		}
	}
	return nil
}

func (r *ContactRepo) setLinks(contactID string, customerIDs []string) {
	linked := make(map[string]struct{}, len(customerIDs))
	for _, id := range customerIDs {
		linked[id] = struct{}{}
	}
	r.s.links[contactID] = linked
}
