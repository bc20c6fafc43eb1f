// Package memory implementa los puertos de persistencia en proceso.
// Respeta las mismas reglas que el esquema PostgreSQL (claves únicas, claves foráneas
// y borrados en cascada) y se usa en tests y con DB_DRIVER=memory.
package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/copier-service-api/internal/domain"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

// table filas por ID conservando el orden de inserción.
// Las filas entran y salen copiadas: ningún puntero se comparte con el llamador.
type table[T any] struct {
	rows  map[string]T
	order []string
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{rows: make(map[string]T), clone: clone}
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	if !ok {
		return v, false
	}
	return t.clone(v), true
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = t.clone(v)
}

func (t *table[T]) remove(id string) {
	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	for i, k := range t.order {
		if k == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

func (t *table[T]) list() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.clone(t.rows[id]))
	}
	return out
}

// Store base de datos en memoria compartida por todos los repositorios.
type Store struct {
	mu        sync.RWMutex
	users     *table[entity.User]
	customers *table[entity.Customer]
	contacts  *table[entity.Contact]
	devices   *table[entity.Device]
	orders    *table[entity.ServiceOrder]
	// contactID -> customerIDs
	links map[string]map[string]struct{}
	now   func() time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:     newTable(cloneUser),
		customers: newTable(cloneCustomer),
		contacts:  newTable(cloneContact),
		devices:   newTable(cloneDevice),
		orders:    newTable(cloneOrder),
		links:     make(map[string]map[string]struct{}),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func newID() string { return uuid.NewString() }

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneUser(u entity.User) entity.User {
	u.Name, u.Image = cloneStr(u.Name), cloneStr(u.Image)
	return u
}

func cloneCustomer(c entity.Customer) entity.Customer {
	c.Email, c.Phone = cloneStr(c.Email), cloneStr(c.Phone)
	return c
}

func cloneContact(c entity.Contact) entity.Contact {
	c.Name, c.Email, c.Phone = cloneStr(c.Name), cloneStr(c.Email), cloneStr(c.Phone)
	return c
}

func cloneDevice(d entity.Device) entity.Device {
	d.CustomerID = cloneStr(d.CustomerID)
	return d
}

func cloneOrder(o entity.ServiceOrder) entity.ServiceOrder {
	o.AssignedToID = cloneStr(o.AssignedToID)
	o.CompletedAt = cloneTime(o.CompletedAt)
	return o
}

func duplicate(op, what string) error {
	return &domain.RepositoryError{Op: op, Err: fmt.Errorf("%w: %s", domain.ErrDuplicate, what)}
}

func foreignKey(op, what string) error {
	return &domain.RepositoryError{Op: op, Err: fmt.Errorf("foreign key violation: %s", what)}
}

// customerContacts clientes asociados a un contacto, en orden de alta de clientes. Requiere mu.
func (s *Store) customerContacts(contactID string) []entity.Customer {
	out := make([]entity.Customer, 0)
	linked := s.links[contactID]
	for _, c := range s.customers.list() {
		if _, ok := linked[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// contactsOf contactos asociados a un cliente. Requiere mu.
func (s *Store) contactsOf(customerID string) []entity.Contact {
	out := make([]entity.Contact, 0)
	for _, c := range s.contacts.list() {
		if _, ok := s.links[c.ID][customerID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// devicesOf equipos de un cliente. Requiere mu.
func (s *Store) devicesOf(customerID string) []entity.Device {
	out := make([]entity.Device, 0)
	for _, d := range s.devices.list() {
		if d.CustomerID != nil && *d.CustomerID == customerID {
			out = append(out, d)
		}
	}
	return out
}

// deviceWithCustomer requiere mu.
func (s *Store) deviceWithCustomer(d entity.Device) entity.DeviceWithRelations {
	rel := entity.DeviceWithRelations{Device: d}
	if d.CustomerID != nil {
		if c, ok := s.customers.get(*d.CustomerID); ok {
			rel.Customer = &c
		}
	}
	return rel
}

// orderWithRelations requiere mu.
func (s *Store) orderWithRelations(o entity.ServiceOrder) entity.ServiceOrderWithRelations {
	rel := entity.ServiceOrderWithRelations{ServiceOrder: o}
	if d, ok := s.devices.get(o.DeviceID); ok {
		rel.Device = s.deviceWithCustomer(d)
	}
	if o.AssignedToID != nil {
		if u, ok := s.users.get(*o.AssignedToID); ok {
			rel.AssignedTo = &u
		}
	}
	return rel
}

// missing fila ausente en una escritura; equivale al "record not found" del motor.
func missing(op, id string) error {
	return &domain.RepositoryError{Op: op, Err: fmt.Errorf("record %s not found", id)}
}
