package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"ambientefest/internal/model"
	"ambientefest/internal/repository"
)

// UserService is the admin view of accounts.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, in model.UserInput) (*model.User, error)
	Update(ctx context.Context, id int64, in model.UserInput) (*model.User, error)
	Delete(ctx context.Context, id int64) error
	// SetBlocked flips the account state and revokes or restores the
	// user's ability to use existing sessions.
	SetBlocked(ctx context.Context, id int64, blocked bool) (*model.User, error)
	Roles(ctx context.Context) ([]model.Role, error)
}

type userService struct {
	users    repository.UserRepository
	roles    repository.RoleRepository
	sessions SessionStore
	logger   *zap.Logger
}

func NewUserService(users repository.UserRepository, roles repository.RoleRepository, sessions SessionStore, logger *zap.Logger) UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &userService{users: users, roles: roles, sessions: sessions, logger: logger}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (s *userService) Create(ctx context.Context, in model.UserInput) (*model.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.Email == "" || !strings.Contains(in.Email, "@"):
		return nil, invalid("a valid email is required")
	case in.Name == "":
		return nil, invalid("nombre is required")
	case utf8.RuneCountInString(in.Password) < minPasswordLength:
		return nil, invalid("password must have at least %d characters", minPasswordLength)
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	if in.State == nil {
		active := true
		in.State = &active
	}
	u, err := s.users.Create(ctx, in)
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (s *userService) Update(ctx context.Context, id int64, in model.UserInput) (*model.User, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	if in.Password != "" && utf8.RuneCountInString(in.Password) < minPasswordLength {
		return nil, invalid("password must have at least %d characters", minPasswordLength)
	}
	u, err := s.users.Update(ctx, id, in)
	if err != nil {
		return nil, translate(err)
	}
	if in.State != nil {
		s.markBlocked(ctx, id, !*in.State)
	}
	return u, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrIDRequired
	}
	return translate(s.users.Delete(ctx, id))
}

func (s *userService) SetBlocked(ctx context.Context, id int64, blocked bool) (*model.User, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	state := !blocked
	u, err := s.users.Update(ctx, id, model.UserInput{State: &state})
	if err != nil {
		return nil, translate(err)
	}
	if err := s.sessions.SetBlocked(ctx, id, blocked); err != nil {
		return nil, err
	}
	u.State = state
	return u, nil
}

func (s *userService) markBlocked(ctx context.Context, id int64, blocked bool) {
	if err := s.sessions.SetBlocked(ctx, id, blocked); err != nil {
		s.logger.Warn("update blocked mark failed", zap.Int64("user_id", id), zap.Error(err))
	}
}

func (s *userService) Roles(ctx context.Context) ([]model.Role, error) {
	return s.roles.List(ctx)
}
