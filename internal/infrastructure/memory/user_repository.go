package memory

import (
	"context"

	"github.com/jhoicas/copier-service-api/internal/application/dto"
	"github.com/jhoicas/copier-service-api/internal/application/mapper"
	"github.com/jhoicas/copier-service-api/internal/application/ports"
	"github.com/jhoicas/copier-service-api/internal/domain/entity"
)

var (
	_ ports.UserRepository  = (*UserRepo)(nil)
	_ ports.CredentialStore = (*UserRepo)(nil)
)

type UserRepo struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(_ context.Context, in ports.NewUser) (*dto.UserResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(in.Email, "") {
		return nil, duplicate("Failed to create user", "email "+in.Email)
	}
	now := r.s.now()
	u := entity.User{
		ID:           newID(),
		Name:         cloneStr(in.Name),
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Role:         string(in.Role),
		Image:        cloneStr(in.Image),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.s.users.put(u.ID, u)
	return mapper.ToUserResponse(&u), nil
}

func (r *UserRepo) FindByID(_ context.Context, id string) (*dto.UserResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users.get(id)
	if !ok {
		return nil, nil
	}
	return mapper.ToUserResponse(&u), nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*dto.UserResponse, error) {
	u, err := r.FindCredentialsByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, err
	}
	return mapper.ToUserResponse(u), nil
}

// FindCredentialsByEmail devuelve el registro con hash para verificar login.
func (r *UserRepo) FindCredentialsByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users.list() {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) FindAll(_ context.Context) ([]dto.UserResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return mapper.ToUserResponses(r.s.users.list()), nil
}

func (r *UserRepo) FindAllByRole(_ context.Context, role entity.Role) ([]dto.UserResponse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []entity.User
	for _, u := range r.s.users.list() {
		if u.Role == string(role) {
			list = append(list, u)
		}
	}
	return mapper.ToUserResponses(list), nil
}

func (r *UserRepo) Update(_ context.Context, id string, in ports.UserChanges) (*dto.UserResponse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users.get(id)
	if !ok {
		return nil, missing("Failed to update user", id)
	}
	if in.Email != nil && r.emailTaken(*in.Email, id) {
		return nil, duplicate("Failed to update user", "email "+*in.Email)
	}
	if in.Name != nil {
		u.Name = cloneStr(in.Name)
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Image != nil {
		u.Image = cloneStr(in.Image)
	}
	if in.Role != nil {
		u.Role = string(*in.Role)
	}
	if in.PasswordHash != nil {
		u.PasswordHash = *in.PasswordHash
	}
	u.UpdatedAt = r.s.now()
	r.s.users.put(id, u)
	return mapper.ToUserResponse(&u), nil
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users.rows), nil
}

func (r *UserRepo) emailTaken(email, exceptID string) bool {
	for _, u := range r.s.users.rows {
		if u.Email == email && u.ID != exceptID {
			return true
		}
	}
	return false
}
