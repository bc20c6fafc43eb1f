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

var _ ports.ContactRepository = (*ContactRepo)(nil)

const contactColumns = `id, name, email, phone, created_at, updated_at`

// ContactRepo contactos y su tabla de unión customer_contacts.
type ContactRepo struct {
	q Querier
}

func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

func scanContact(row pgx.Row) (*entity.Contact, error) {
	var c entity.Contact
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserta el contacto y sus asociaciones en una sola transacción.
func (r *ContactRepo) Create(ctx context.Context, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	const op = "Failed to create contact"
	var created *entity.Contact
	err := withTx(ctx, r.q, func(tx Querier) error {
		c, err := scanContact(tx.QueryRow(ctx, `
			INSERT INTO contacts (id, name, email, phone)
			VALUES ($1, $2, $3, $4)
			RETURNING `+contactColumns,
			uuid.NewString(), in.Name, in.Email, in.Phone,
		))
		if err != nil {
			return err
		}
		created = c
		return linkCustomers(ctx, tx, c.ID, in.CustomerIDs)
	})
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return mapper.ToContactResponse(created), nil
}

func (r *ContactRepo) FindByID(ctx context.Context, id string) (*dto.ContactResponse, error) {
	c, err := r.findEntity(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	return mapper.ToContactResponse(c), nil
}

func (r *ContactRepo) FindByIDWithRelations(ctx context.Context, id string) (*dto.ContactWithRelationsResponse, error) {
	c, err := r.findEntity(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	customers, err := queryCustomers(ctx, r.q, `
		JOIN customer_contacts cc ON cc.customer_id = c.id
		WHERE cc.contact_id = $1`, id)
	if err != nil {
		return nil, wrapErr("Failed to find contact with relations", err)
	}
	return mapper.ToContactWithRelationsResponse(&entity.ContactWithRelations{Contact: *c, Customers: customers}), nil
}

func (r *ContactRepo) FindAll(ctx context.Context) ([]dto.ContactResponse, error) {
	list, err := queryContacts(ctx, r.q, ``)
	if err != nil {
		return nil, wrapErr("Failed to list contacts", err)
	}
	return mapper.ToContactResponses(list), nil
}

func (r *ContactRepo) FindAllForCustomer(ctx context.Context, customerID string) ([]dto.ContactResponse, error) {
	list, err := queryContacts(ctx, r.q, `
		JOIN customer_contacts cc ON cc.contact_id = ct.id
		WHERE cc.customer_id = $1`, customerID)
	if err != nil {
		return nil, wrapErr("Failed to list contacts for customer", err)
	}
	return mapper.ToContactResponses(list), nil
}

// Update reemplaza los datos y, si CustomerIDs no es nil, las asociaciones (atómico).
func (r *ContactRepo) Update(ctx context.Context, id string, in dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	const op = "Failed to update contact"
	var updated *entity.Contact
	err := withTx(ctx, r.q, func(tx Querier) error {
		c, err := scanContact(tx.QueryRow(ctx, `
			UPDATE contacts SET name = $2, email = $3, phone = $4, updated_at = now()
			WHERE id = $1
			RETURNING `+contactColumns,
			id, in.Name, in.Email, in.Phone,
		))
		if err != nil {
			return err
		}
		updated = c
		if in.CustomerIDs == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM customer_contacts WHERE contact_id = $1`, id); err != nil {
			return err
		}
		return linkCustomers(ctx, tx, id, in.CustomerIDs)
	})
	if err != nil {
		if isNoRows(err) {
			return nil, notFoundRow(op, id)
		}
		return nil, wrapErr(op, err)
	}
	return mapper.ToContactResponse(updated), nil
}

// Delete las asociaciones caen por ON DELETE CASCADE.
func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	const op = "Failed to delete contact"
	tag, err := r.q.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return wrapErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundRow(op, id)
	}
	return nil
}

func (r *ContactRepo) findEntity(ctx context.Context, id string) (*entity.Contact, error) {
	c, err := scanContact(r.q.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr("Failed to find contact", err)
	}
	return c, nil
}

func linkCustomers(ctx context.Context, q Querier, contactID string, customerIDs []string) error {
	for _, customerID := range customerIDs {
		if _, err := q.Exec(ctx, `
			INSERT INTO customer_contacts (customer_id, contact_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, customerID, contactID); err != nil {
			return err
		}
	}
	return nil
}

// queryContacts lista contactos (alias ct) con el filtro indicado.
func queryContacts(ctx context.Context, q Querier, tail string, args ...any) ([]entity.Contact, error) {
	rows, err := q.Query(ctx, `
		SELECT ct.id, ct.name, ct.email, ct.phone, ct.created_at, ct.updated_at
		FROM contacts ct `+tail+`
		ORDER BY ct.created_at, ct.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]entity.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *c)
	}
	return list, rows.Err()
}
