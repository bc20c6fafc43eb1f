package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/mapper"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

var _ ports.ServiceOrderRepository = (*ServiceOrderRepo)(nil)

const serviceOrderColumns = `id, trouble_description, status, device_id, assigned_to_id, completed_at, created_at, updated_at`

type ServiceOrderRepo struct {
	q Querier
}

func NewServiceOrderRepository(q Querier) *ServiceOrderRepo {
	return &ServiceOrderRepo{q: q}
}

func scanServiceOrder(row pgx.Row) (*entity.ServiceOrder, error) {
	var o entity.ServiceOrder
	err := row.Scan(&o.ID, &o.TroubleDescription, &o.Status, &o.DeviceID, &o.AssignedToID,
		&o.CompletedAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *ServiceOrderRepo) Create(ctx context.Context, in ports.NewServiceOrder) (*dto.ServiceOrderResponse, error) {
	query := `
		INSERT INTO service_orders (id, trouble_description, status, device_id, assigned_to_id, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + serviceOrderColumns
	o, err := scanServiceOrder(r.q.QueryRow(ctx, query,
		uuid.NewString(), in.TroubleDescription, string(in.Status), in.DeviceID, in.AssignedToID, in.CompletedAt,
	))
	if err != nil {
		return nil, wrapErr("Failed to create service order", err)
	}
	return mapper.ToServiceOrderResponse(o), nil
}

func (r *ServiceOrderRepo) FindByID(ctx context.Context, id string) (*dto.ServiceOrderResponse, error) {
	o, err := scanServiceOrder(r.q.QueryRow(ctx, `SELECT `+serviceOrderColumns+` FROM service_orders WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr("Failed to find service order", err)
	}
	return mapper.ToServiceOrderResponse(o), nil
}

func (r *ServiceOrderRepo) FindByIDWithRelations(ctx context.Context, id string) (*dto.ServiceOrderWithRelationsResponse, error) {
	list, err := r.queryWithRelations(ctx, `WHERE o.id = $1`, id)
	if err != nil {
		return nil, wrapErr("Failed to find service order with relations", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return mapper.ToServiceOrderWithRelationsResponse(&list[0]), nil
}

func (r *ServiceOrderRepo) FindAll(ctx context.Context) ([]dto.ServiceOrderResponse, error) {
	return r.list(ctx, "Failed to list service orders", ``)
}

func (r *ServiceOrderRepo) FindAllWithRelations(ctx context.Context) ([]dto.ServiceOrderWithRelationsResponse, error) {
	list, err := r.queryWithRelations(ctx, ``)
	if err != nil {
		return nil, wrapErr("Failed to list service orders with relations", err)
	}
	return mapper.ToServiceOrderWithRelationsResponses(list), nil
}

func (r *ServiceOrderRepo) FindAllForDevice(ctx context.Context, deviceID string) ([]dto.ServiceOrderResponse, error) {
	return r.list(ctx, "Failed to list service orders for device", `WHERE device_id = $1`, deviceID)
}

func (r *ServiceOrderRepo) FindAllForAssignee(ctx context.Context, userID string) ([]dto.ServiceOrderResponse, error) {
	return r.list(ctx, "Failed to list service orders for assignee", `WHERE assigned_to_id = $1`, userID)
}

// Update CompletedAt nil conserva el valor actual.
func (r *ServiceOrderRepo) Update(ctx context.Context, id string, in ports.ServiceOrderChanges) (*dto.ServiceOrderResponse, error) {
	const op = "Failed to update service order"
	query := `
		UPDATE service_orders
		SET trouble_description = $2, assigned_to_id = $3, status = $4,
		    completed_at = COALESCE($5, completed_at), updated_at = now()
		WHERE id = $1
		RETURNING ` + serviceOrderColumns
	o, err := scanServiceOrder(r.q.QueryRow(ctx, query,
		id, in.TroubleDescription, in.AssignedToID, string(in.Status), in.CompletedAt,
	))
	if err != nil {
		if isNoRows(err) {
			return nil, notFoundRow(op, id)
		}
		return nil, wrapErr(op, err)
	}
	return mapper.ToServiceOrderResponse(o), nil
}

func (r *ServiceOrderRepo) Delete(ctx context.Context, id string) error {
	const op = "Failed to delete service order"
	tag, err := r.q.Exec(ctx, `DELETE FROM service_orders WHERE id = $1`, id)
	if err != nil {
		return wrapErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundRow(op, id)
	}
	return nil
}

func (r *ServiceOrderRepo) list(ctx context.Context, op, tail string, args ...any) ([]dto.ServiceOrderResponse, error) {
	rows, err := r.q.Query(ctx, `SELECT `+serviceOrderColumns+` FROM service_orders `+tail+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()
	var list []entity.ServiceOrder
	for rows.Next() {
		o, err := scanServiceOrder(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		list = append(list, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return mapper.ToServiceOrderResponses(list), nil
}

// nullableUser destino de escaneo para un LEFT JOIN sobre users (sin hash).
type nullableUser struct {
	ID, Email, Role      *string
	Name, Image          *string
	CreatedAt, UpdatedAt *time.Time
}

func (n *nullableUser) dest() []any {
	return []any{&n.ID, &n.Name, &n.Email, &n.Role, &n.Image, &n.CreatedAt, &n.UpdatedAt}
}

func (n *nullableUser) toEntity() *entity.User {
	if n.ID == nil {
		return nil
	}
	u := &entity.User{ID: *n.ID, Name: n.Name, Image: n.Image}
	if n.Email != nil {
		u.Email = *n.Email
	}
	if n.Role != nil {
		u.Role = *n.Role
	}
	if n.CreatedAt != nil {
		u.CreatedAt = *n.CreatedAt
	}
	if n.UpdatedAt != nil {
		u.UpdatedAt = *n.UpdatedAt
	}
	return u
}

// queryWithRelations orden + equipo + cliente del equipo + técnico, en una sola consulta.
func (r *ServiceOrderRepo) queryWithRelations(ctx context.Context, tail string, args ...any) ([]entity.ServiceOrderWithRelations, error) {
	rows, err := r.q.Query(ctx, `
		SELECT o.id, o.trouble_description, o.status, o.device_id, o.assigned_to_id,
		       o.completed_at, o.created_at, o.updated_at,
		       `+deviceCustomerSelect+`,
		       u.id, u.name, u.email, u.role, u.image, u.created_at, u.updated_at
		FROM service_orders o
		JOIN devices d ON d.id = o.device_id
		LEFT JOIN customers c ON c.id = d.customer_id
		LEFT JOIN users u ON u.id = o.assigned_to_id
		`+tail+`
		ORDER BY o.created_at, o.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]entity.ServiceOrderWithRelations, 0)
	for rows.Next() {
		var (
			o entity.ServiceOrder
			d entity.Device
			c nullableCustomer
			u nullableUser
		)
		dest := []any{
			&o.ID, &o.TroubleDescription, &o.Status, &o.DeviceID, &o.AssignedToID,
			&o.CompletedAt, &o.CreatedAt, &o.UpdatedAt,
			&d.ID, &d.Model, &d.SerialNumber, &d.CustomerID, &d.CreatedAt, &d.UpdatedAt,
		}
		dest = append(dest, c.dest()...)
		dest = append(dest, u.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		list = append(list, entity.ServiceOrderWithRelations{
			ServiceOrder: o,
			Device:       entity.DeviceWithRelations{Device: d, Customer: c.toEntity()},
			AssignedTo:   u.toEntity(),
		})
	}
	return list, rows.Err()
}
