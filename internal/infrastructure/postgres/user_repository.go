package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/mapper"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

var (
	_ ports.UserRepository  = (*UserRepo)(nil)
	_ ports.CredentialStore = (*UserRepo)(nil)
)

const userColumns = `id, name, email, password_hash, role, image, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Image, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario. Email repetido => error que coincide con domain.ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, in ports.NewUser) (*dto.UserResponse, error) {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns
	u, err := scanUser(r.q.QueryRow(ctx, query,
		uuid.NewString(), in.Name, in.Email, in.PasswordHash, string(in.Role), in.Image,
	))
	if err != nil {
		return nil, wrapErr("Failed to create user", err)
	}
	return mapper.ToUserResponse(u), nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := r.findOne(ctx, "Failed to find user", `id = $1`, id)
	if err != nil || u == nil {
		return nil, err
	}
	return mapper.ToUserResponse(u), nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*dto.UserResponse, error) {
	u, err := r.FindCredentialsByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, err
	}
	return mapper.ToUserResponse(u), nil
}

// FindCredentialsByEmail devuelve el registro con hash; solo para verificar login.
func (r *UserRepo) FindCredentialsByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "Failed to find user by email", `email = $1`, email)
}

func (r *UserRepo) FindAll(ctx context.Context) ([]dto.UserResponse, error) {
	return r.list(ctx, "Failed to list users", `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
}

func (r *UserRepo) FindAllByRole(ctx context.Context, role entity.Role) ([]dto.UserResponse, error) {
	return r.list(ctx, "Failed to list users by role",
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at, id`, string(role))
}

// Update aplica solo los campos presentes en UserChanges.
func (r *UserRepo) Update(ctx context.Context, id string, in ports.UserChanges) (*dto.UserResponse, error) {
	const op = "Failed to update user"
	sets := []string{"updated_at = now()"}
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, col+" = $"+itoa(len(args)))
	}
	if in.Name != nil {
		add("name", *in.Name)
	}
	if in.Email != nil {
		add("email", *in.Email)
	}
	if in.Image != nil {
		add("image", *in.Image)
	}
	if in.Role != nil {
		add("role", string(*in.Role))
	}
	if in.PasswordHash != nil {
		add("password_hash", *in.PasswordHash)
	}
	query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + userColumns
	u, err := scanUser(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, notFoundRow(op, id)
		}
		return nil, wrapErr(op, err)
	}
	return mapper.ToUserResponse(u), nil
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, wrapErr("Failed to count users", err)
	}
	return n, nil
}

func (r *UserRepo) findOne(ctx context.Context, op, where string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return u, nil
}

func (r *UserRepo) list(ctx context.Context, op, query string, args ...any) ([]dto.UserResponse, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()
	var list []entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		list = append(list, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return mapper.ToUserResponses(list), nil
}
