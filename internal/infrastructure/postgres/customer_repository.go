package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/mapper"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

var _ ports.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, address, email, phone, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	query := `
		INSERT INTO customers (id, name, address, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + customerColumns
	c, err := scanCustomer(r.q.QueryRow(ctx, query, uuid.NewString(), in.Name, in.Address, in.Email, in.Phone))
	if err != nil {
		return nil, wrapErr("Failed to create customer", err)
	}
	return mapper.ToCustomerResponse(c), nil
}

func (r *CustomerRepo) FindByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := r.findEntity(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	return mapper.ToCustomerResponse(c), nil
}

// FindByIDWithRelations carga el cliente, sus equipos y sus contactos.
func (r *CustomerRepo) FindByIDWithRelations(ctx context.Context, id string) (*dto.CustomerWithRelationsResponse, error) {
	const op = "Failed to find customer with relations"
	c, err := r.findEntity(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	devices, err := queryDevices(ctx, r.q, `WHERE customer_id = $1`, id)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	contacts, err := queryContacts(ctx, r.q, `
		JOIN customer_contacts cc ON cc.contact_id = ct.id
		WHERE cc.customer_id = $1`, id)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return mapper.ToCustomerWithRelationsResponse(&entity.CustomerWithRelations{
		Customer: *c,
		Devices:  devices,
		Contacts: contacts,
	}), nil
}

func (r *CustomerRepo) FindAll(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := queryCustomers(ctx, r.q, ``)
	if err != nil {
		return nil, wrapErr("Failed to list customers", err)
	}
	return mapper.ToCustomerResponses(list), nil
}

func (r *CustomerRepo) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	const op = "Failed to update customer"
	query := `
		UPDATE customers SET name = $2, address = $3, email = $4, phone = $5, updated_at = now()
		WHERE id = $1
		RETURNING ` + customerColumns
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id, in.Name, in.Address, in.Email, in.Phone))
	if err != nil {
		if isNoRows(err) {
			return nil, notFoundRow(op, id)
		}
		return nil, wrapErr(op, err)
	}
	return mapper.ToCustomerResponse(c), nil
}

// Delete elimina un cliente; sus equipos quedan sin cliente (ON DELETE SET NULL).
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	const op = "Failed to delete customer"
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return wrapErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundRow(op, id)
	}
	return nil
}

func (r *CustomerRepo) findEntity(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr("Failed to find customer", err)
	}
	return c, nil
}

// queryCustomers lista clientes (alias c) con el filtro indicado, ordenados por alta.
func queryCustomers(ctx context.Context, q Querier, tail string, args ...any) ([]entity.Customer, error) {
	rows, err := q.Query(ctx, `
		SELECT c.id, c.name, c.address, c.email, c.phone, c.created_at, c.updated_at
		FROM customers c `+tail+`
		ORDER BY c.created_at, c.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]entity.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *c)
	}
	return list, rows.Err()
}
