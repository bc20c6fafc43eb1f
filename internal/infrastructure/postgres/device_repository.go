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

var _ ports.DeviceRepository = (*DeviceRepo)(nil)

const deviceColumns = `id, model, serial_number, customer_id, created_at, updated_at`

type DeviceRepo struct {
	q Querier
}

func NewDeviceRepository(q Querier) *DeviceRepo {
	return &DeviceRepo{q: q}
}

func scanDevice(row pgx.Row) (*entity.Device, error) {
	var d entity.Device
	if err := row.Scan(&d.ID, &d.Model, &d.SerialNumber, &d.CustomerID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create número de serie repetido => error técnico que coincide con domain.ErrDuplicate.
func (r *DeviceRepo) Create(ctx context.Context, in dto.CreateDeviceRequest) (*dto.DeviceResponse, error) {
	query := `
		INSERT INTO devices (id, model, serial_number, customer_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + deviceColumns
	d, err := scanDevice(r.q.QueryRow(ctx, query, uuid.NewString(), string(in.Model), in.SerialNumber, in.CustomerID))
	if err != nil {
		return nil, wrapErr("Failed to create device", err)
	}
	return mapper.ToDeviceResponse(d), nil
}

func (r *DeviceRepo) FindByID(ctx context.Context, id string) (*dto.DeviceResponse, error) {
	return r.findOne(ctx, "Failed to find device", `id = $1`, id)
}

func (r *DeviceRepo) FindBySerialNumber(ctx context.Context, serialNumber string) (*dto.DeviceResponse, error) {
	return r.findOne(ctx, "Failed to find device by serial number", `serial_number = $1`, serialNumber)
}

func (r *DeviceRepo) FindByIDWithRelations(ctx context.Context, id string) (*dto.DeviceWithRelationsResponse, error) {
	list, err := queryDevicesWithCustomer(ctx, r.q, `WHERE d.id = $1`, id)
	if err != nil {
		return nil, wrapErr("Failed to find device with relations", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return mapper.ToDeviceWithRelationsResponse(&list[0]), nil
}

func (r *DeviceRepo) FindAll(ctx context.Context) ([]dto.DeviceResponse, error) {
	list, err := queryDevices(ctx, r.q, ``)
	if err != nil {
		return nil, wrapErr("Failed to list devices", err)
	}
	return mapper.ToDeviceResponses(list), nil
}

func (r *DeviceRepo) FindAllWithRelations(ctx context.Context) ([]dto.DeviceWithRelationsResponse, error) {
	list, err := queryDevicesWithCustomer(ctx, r.q, ``)
	if err != nil {
		return nil, wrapErr("Failed to list devices with relations", err)
	}
	return mapper.ToDeviceWithRelationsResponses(list), nil
}

func (r *DeviceRepo) FindAllForCustomer(ctx context.Context, customerID string) ([]dto.DeviceResponse, error) {
	list, err := queryDevices(ctx, r.q, `WHERE customer_id = $1`, customerID)
	if err != nil {
		return nil, wrapErr("Failed to list devices for customer", err)
	}
	return mapper.ToDeviceResponses(list), nil
}

func (r *DeviceRepo) Update(ctx context.Context, id string, in dto.UpdateDeviceRequest) (*dto.DeviceResponse, error) {
	const op = "Failed to update device"
	query := `
		UPDATE devices SET model = $2, serial_number = $3, customer_id = $4, updated_at = now()
		WHERE id = $1
		RETURNING ` + deviceColumns
	d, err := scanDevice(r.q.QueryRow(ctx, query, id, string(in.Model), in.SerialNumber, in.CustomerID))
	if err != nil {
		if isNoRows(err) {
			return nil, notFoundRow(op, id)
		}
		return nil, wrapErr(op, err)
	}
	return mapper.ToDeviceResponse(d), nil
}

// Delete falla por FK (RESTRICT) si el equipo tiene órdenes de servicio.
func (r *DeviceRepo) Delete(ctx context.Context, id string) error {
	const op = "Failed to delete device"
	tag, err := r.q.Exec(ctx, `DELETE FROM devices WHERE id = $1`, id)
	if err != nil {
		return wrapErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundRow(op, id)
	}
	return nil
}

func (r *DeviceRepo) findOne(ctx context.Context, op, where string, arg any) (*dto.DeviceResponse, error) {
	d, err := scanDevice(r.q.QueryRow(ctx, `SELECT `+deviceColumns+` FROM devices WHERE `+where, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return mapper.ToDeviceResponse(d), nil
}

// queryDevices lista equipos con el filtro indicado, ordenados por alta.
func queryDevices(ctx context.Context, q Querier, tail string, args ...any) ([]entity.Device, error) {
	rows, err := q.Query(ctx, `SELECT `+deviceColumns+` FROM devices `+tail+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]entity.Device, 0)
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *d)
	}
	return list, rows.Err()
}

// deviceCustomerSelect equipo (d) + cliente opcional (c) en una sola fila.
const deviceCustomerSelect = `
	d.id, d.model, d.serial_number, d.customer_id, d.created_at, d.updated_at,
	c.id, c.name, c.address, c.email, c.phone, c.created_at, c.updated_at`

// nullableCustomer destino de escaneo para un LEFT JOIN sobre customers.
type nullableCustomer struct {
	ID, Name, Address    *string
	Email, Phone         *string
	CreatedAt, UpdatedAt *time.Time
}

func (n *nullableCustomer) dest() []any {
	return []any{&n.ID, &n.Name, &n.Address, &n.Email, &n.Phone, &n.CreatedAt, &n.UpdatedAt}
}

func (n *nullableCustomer) toEntity() *entity.Customer {
	if n.ID == nil {
		return nil
	}
	c := &entity.Customer{ID: *n.ID, Email: n.Email, Phone: n.Phone}
	if n.Name != nil {
		c.Name = *n.Name
	}
	if n.Address != nil {
		c.Address = *n.Address
	}
	if n.CreatedAt != nil {
		c.CreatedAt = *n.CreatedAt
	}
	if n.UpdatedAt != nil {
		c.UpdatedAt = *n.UpdatedAt
	}
	return c
}

func queryDevicesWithCustomer(ctx context.Context, q Querier, tail string, args ...any) ([]entity.DeviceWithRelations, error) {
	rows, err := q.Query(ctx, `
		SELECT `+deviceCustomerSelect+`
		FROM devices d
		LEFT JOIN customers c ON c.id = d.customer_id
		`+tail+`
		ORDER BY d.created_at, d.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]entity.DeviceWithRelations, 0)
	for rows.Next() {
		var d entity.Device
		var c nullableCustomer
		dest := append([]any{&d.ID, &d.Model, &d.SerialNumber, &d.CustomerID, &d.CreatedAt, &d.UpdatedAt}, c.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		list = append(list, entity.DeviceWithRelations{Device: d, Customer: c.toEntity()})
	}
	return list, rows.Err()
}
