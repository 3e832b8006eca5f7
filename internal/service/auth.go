package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"ambientefest/internal/baas"
	"ambientefest/internal/model"
	"ambientefest/internal/repository"
	"ambientefest/internal/session"
)

var allowedEmailDomains = []string{"@duoc.cl", "@profesor.duoc.cl", "@gmail.com", "@ambientefest.cl"}

var namePattern = regexp.MustCompile(`^[\p{L}\s]+$`)

const (
	maxNameLength     = 50
	minPasswordLength = 8
	signupPollTries   = 3
)

// SessionStore keeps the server side of sessions.
type SessionStore interface {
	Create(ctx context.Context, s session.Session) (*session.Session, error)
	Delete(ctx context.Context, id string) error
	SetBlocked(ctx context.Context, userID int64, blocked bool) error
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(s session.Session) (string, error)
	TTL() time.Duration
}

// LoginResult is returned by Login and Register. A blocked user gets a
// result without a token.
type LoginResult struct {
	Token        string     `json:"token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	User         model.User `json:"user"`
	Blocked      bool       `json:"blocked"`
	CanInteract  bool       `json:"can_interact"`
	RedirectPath string     `json:"redirect_path"`
}

// RegisterInput is the public signup form.
type RegisterInput struct {
	Name            string `json:"nombre"`
	LastName        string `json:"apellidos"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

// ProfileInput updates the caller's own account. Empty fields are kept.
type ProfileInput struct {
	Name     string `json:"nombre"`
	LastName string `json:"apellidos"`
	Password string `json:"password"`
}

// AuthService manages accounts and sessions of end users.
type AuthService interface {
	// Login returns ErrUserBlocked together with a result for blocked users.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Register creates a client account. The result carries a token only
	// when the BaaS logged the new user in.
	Register(ctx context.Context, in RegisterInput) (*LoginResult, error)
	Me(ctx context.Context, sess *session.Session) (*model.User, error)
	Logout(ctx context.Context, sess *session.Session) error
	UpdateProfile(ctx context.Context, sess *session.Session, in ProfileInput) (*model.User, error)
	// SeedAdmin makes sure the bootstrap admin exists with the admin role.
	SeedAdmin(ctx context.Context, email, password string) (*model.User, error)
}

type authService struct {
	auth      repository.AuthRepository
	users     repository.UserRepository
	sessions  SessionStore
	tokens    TokenIssuer
	logger    *zap.Logger
	pollDelay time.Duration
}

// NewAuthService constructs an AuthService.
func NewAuthService(auth repository.AuthRepository, users repository.UserRepository, sessions SessionStore, tokens TokenIssuer, logger *zap.Logger) AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authService{
		auth:      auth,
		users:     users,
		sessions:  sessions,
		tokens:    tokens,
		logger:    logger,
		pollDelay: 300 * time.Millisecond,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, invalid("email and password are required")
	}

	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		if baas.IsStatus(err, http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
		return nil, err
	}
	return s.establish(ctx, token)
}

// establish turns a BaaS token into a session for the account behind it.
func (s *authService) establish(ctx context.Context, baasToken string) (*LoginResult, error) {
	user, err := s.auth.Me(ctx, baasToken)
	if err != nil {
		return nil, err
	}
	if user.Blocked() {
		return &LoginResult{User: *user, Blocked: true, RedirectPath: "/"}, ErrUserBlocked
	}

	if err := s.sessions.SetBlocked(ctx, user.ID, false); err != nil {
		s.logger.Warn("clear blocked mark failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}
	sess, err := s.sessions.Create(ctx, session.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		BaaSToken: baasToken,
	})
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(*sess)
	if err != nil {
		return nil, err
	}
	exp := sess.CreatedAt.Add(s.tokens.TTL())
	return &LoginResult{
		Token:        token,
		ExpiresAt:    &exp,
		User:         *user,
		CanInteract:  true,
		RedirectPath: redirectPath(*user),
	}, nil
}

func redirectPath(u model.User) string {
	if u.IsAdmin() {
		return "/admin"
	}
	return "/"
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*LoginResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	token, err := s.auth.Signup(ctx, model.SignupInput{
		Name:     in.Name,
		LastName: in.LastName,
		Email:    in.Email,
		Password: in.Password,
		RoleID:   model.RoleClient,
		State:    true,
	})
	if err != nil {
		return nil, translate(err)
	}

	created, err := s.awaitUser(ctx, in.Email)
	if err != nil {
		return nil, err
	}

	if token != "" {
		res, err := s.establish(ctx, token)
		if err == nil {
			return res, nil
		}
		s.logger.Warn("login after signup failed", zap.String("email", in.Email), zap.Error(err))
	}
	return &LoginResult{User: *created, CanInteract: !created.Blocked(), RedirectPath: "/"}, nil
}

// awaitUser polls the user list until the new account shows up with a
// stored password.
func (s *authService) awaitUser(ctx context.Context, email string) (*model.User, error) {
	for attempt := 1; attempt <= signupPollTries; attempt++ {
		u, err := s.users.FindByEmail(ctx, email)
		if err == nil {
			if !u.HasPassword {
				return nil, fmt.Errorf("%w: password was not stored", ErrSignupUnverified)
			}
			return u, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("signup verification lookup failed", zap.Int("attempt", attempt), zap.Error(err))
		}
		if attempt == signupPollTries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.pollDelay):
		}
	}
	return nil, fmt.Errorf("%w: user record not found", ErrSignupUnverified)
}

func validateRegistration(in RegisterInput) error {
	if !validEmailDomain(in.Email) {
		return invalid("email must end with one of %s", strings.Join(allowedEmailDomains, ", "))
	}
	if !validName(in.Name) {
		return invalid("nombre must contain only letters and spaces, up to %d characters", maxNameLength)
	}
	if !validName(in.LastName) {
		return invalid("apellidos must contain only letters and spaces, up to %d characters", maxNameLength)
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return invalid("password must have at least %d characters", minPasswordLength)
	}
	if in.Password != in.PasswordConfirm {
		return invalid("password confirmation does not match")
	}
	return nil
}

func validEmailDomain(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return false
	}
	for _, d := range allowedEmailDomains {
		if strings.HasSuffix(email, d) && at == len(email)-len(d) {
			return true
		}
	}
	return false
}

func validName(s string) bool {
	return s != "" && utf8.RuneCountInString(s) <= maxNameLength && namePattern.MatchString(s)
}

func (s *authService) Me(ctx context.Context, sess *session.Session) (*model.User, error) {
	user, err := s.auth.Me(ctx, sess.BaaSToken)
	if err != nil {
		return nil, err
	}
	if user.Blocked() {
		if err := s.sessions.SetBlocked(ctx, user.ID, true); err != nil {
			s.logger.Warn("mark blocked user failed", zap.Int64("user_id", user.ID), zap.Error(err))
		}
		return nil, ErrUserBlocked
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, sess *session.Session) error {
	return s.sessions.Delete(ctx, sess.ID)
}

func (s *authService) UpdateProfile(ctx context.Context, sess *session.Session, in ProfileInput) (*model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.Name != "" && !validName(in.Name) {
		return nil, invalid("nombre must contain only letters and spaces, up to %d characters", maxNameLength)
	}
	if in.LastName != "" && !validName(in.LastName) {
		return nil, invalid("apellidos must contain only letters and spaces, up to %d characters", maxNameLength)
	}
	if in.Password != "" && utf8.RuneCountInString(in.Password) < minPasswordLength {
		return nil, invalid("password must have at least %d characters", minPasswordLength)
	}
	if in.Name == "" && in.LastName == "" && in.Password == "" {
		return nil, invalid("nothing to update")
	}

	user, err := s.users.Update(ctx, sess.UserID, model.UserInput{
		Name:     in.Name,
		LastName: in.LastName,
		Password: in.Password,
	})
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (s *authService) SeedAdmin(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, invalid("admin email is required")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		if password == "" {
			return nil, invalid("admin password is required")
		}
		active := true
		u, err := s.users.Create(ctx, model.UserInput{
			Name:     "Admin",
			LastName: "Sistema",
			Email:    email,
			Password: password,
			RoleID:   model.RoleAdmin,
			State:    &active,
		})
		if err != nil {
			return nil, fmt.Errorf("create admin: %w", err)
		}
		s.logger.Info("admin user created", zap.String("email", email), zap.Int64("user_id", u.ID))
		return u, nil
	case err != nil:
		return nil, fmt.Errorf("find admin: %w", err)
	}

	if existing.IsAdmin() {
		return existing, nil
	}
	u, err := s.users.Update(ctx, existing.ID, model.UserInput{RoleID: model.RoleAdmin})
	if err != nil {
		return nil, fmt.Errorf("promote admin: %w", err)
	}
	s.logger.Info("admin role fixed", zap.String("email", email), zap.Int64("user_id", existing.ID))
	return u, nil
}
