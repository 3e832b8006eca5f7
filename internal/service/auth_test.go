package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ambientefest/internal/baas"
	"ambientefest/internal/cache"
	"ambientefest/internal/model"
	"ambientefest/internal/repository"
	repoMocks "ambientefest/internal/repository/mocks"
	"ambientefest/internal/session"
)

type authFixture struct {
	auth   *repoMocks.MockAuthRepository
	users  *repoMocks.MockUserRepository
	store  *session.Store
	tokens *session.Manager
	svc    AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		auth:   new(repoMocks.MockAuthRepository),
		users:  new(repoMocks.MockUserRepository),
		store:  session.NewStore(cache.NewMemory(), time.Hour),
		tokens: session.NewManager("secret", time.Hour),
	}
	f.svc = NewAuthService(f.auth, f.users, f.store, f.tokens, nil)
	f.svc.(*authService).pollDelay = 0
	return f
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	client := &model.User{ID: 4, Email: "ana@gmail.com", RoleID: model.RoleClient, Role: model.RoleNameClient, State: true}
	admin := &model.User{ID: 1, Email: "admin@ambientefest.cl", RoleID: model.RoleAdmin, Role: model.RoleNameAdmin, State: true}
	blocked := &model.User{ID: 7, Email: "bad@gmail.com", RoleID: model.RoleClient, State: false}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(f *authFixture)
		wantErr    error
		wantPath   string
	}{
		{
			name:     "client",
			email:    " Ana@Gmail.com ",
			password: "secret123",
			setupMocks: func(f *authFixture) {
				f.auth.On("Login", ctx, "ana@gmail.com", "secret123").Return("baas-tok", nil)
				f.auth.On("Me", ctx, "baas-tok").Return(client, nil)
			},
			wantPath: "/",
		},
		{
			name:     "admin",
			email:    "admin@ambientefest.cl",
			password: "secret123",
			setupMocks: func(f *authFixture) {
				f.auth.On("Login", ctx, "admin@ambientefest.cl", "secret123").Return("baas-tok", nil)
				f.auth.On("Me", ctx, "baas-tok").Return(admin, nil)
			},
			wantPath: "/admin",
		},
		{
			name:     "rejected by baas",
			email:    "ana@gmail.com",
			password: "wrong",
			setupMocks: func(f *authFixture) {
				f.auth.On("Login", ctx, "ana@gmail.com", "wrong").Return("", &baas.APIError{Status: 403})
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:       "missing password",
			email:      "ana@gmail.com",
			setupMocks: func(*authFixture) {},
			wantErr:    ErrInvalidInput,
		},
		{
			name:     "baas outage is not a credential error",
			email:    "ana@gmail.com",
			password: "secret123",
			setupMocks: func(f *authFixture) {
				f.auth.On("Login", ctx, "ana@gmail.com", "secret123").Return("", &baas.APIError{Status: 503})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			tt.setupMocks(f)

			got, err := f.svc.Login(ctx, tt.email, tt.password)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantPath == "":
				require.Error(t, err)
				assert.False(t, errors.Is(err, ErrInvalidCredentials))
				assert.True(t, baas.IsServerError(err))
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantPath, got.RedirectPath)
				assert.True(t, got.CanInteract)
				require.NotNil(t, got.ExpiresAt)

				claims, err := f.tokens.Parse(got.Token)
				require.NoError(t, err)
				sess, err := f.store.Get(ctx, claims.SessionID)
				require.NoError(t, err)
				assert.Equal(t, "baas-tok", sess.BaaSToken)
				assert.Equal(t, got.User.ID, sess.UserID)
			}
			f.auth.AssertExpectations(t)
		})
	}

	t.Run("blocked user gets no session", func(t *testing.T) {
		f := newAuthFixture()
		f.auth.On("Login", ctx, "bad@gmail.com", "secret123").Return("baas-tok", nil)
		f.auth.On("Me", ctx, "baas-tok").Return(blocked, nil)

		got, err := f.svc.Login(ctx, "bad@gmail.com", "secret123")

		assert.ErrorIs(t, err, ErrUserBlocked)
		require.NotNil(t, got)
		assert.True(t, got.Blocked)
		assert.False(t, got.CanInteract)
		assert.Empty(t, got.Token)
		assert.Equal(t, "/", got.RedirectPath)
	})

	t.Run("unblocked user loses stale mark", func(t *testing.T) {
		f := newAuthFixture()
		require.NoError(t, f.store.SetBlocked(ctx, client.ID, true))
		f.auth.On("Login", ctx, "ana@gmail.com", "secret123").Return("baas-tok", nil)
		f.auth.On("Me", ctx, "baas-tok").Return(client, nil)

		_, err := f.svc.Login(ctx, "ana@gmail.com", "secret123")
		require.NoError(t, err)

		isBlocked, err := f.store.IsBlocked(ctx, client.ID)
		require.NoError(t, err)
		assert.False(t, isBlocked)
	})
}

func TestValidateRegistration(t *testing.T) {
	valid := RegisterInput{Name: "María José", LastName: "Núñez", Email: "maria@duoc.cl", Password: "secret123", PasswordConfirm: "secret123"}

	tests := []struct {
		name    string
		mutate  func(in *RegisterInput)
		wantErr bool
	}{
		{name: "valid", mutate: func(*RegisterInput) {}},
		{name: "faculty domain", mutate: func(in *RegisterInput) { in.Email = "prof@profesor.duoc.cl" }},
		{name: "foreign domain", mutate: func(in *RegisterInput) { in.Email = "maria@yahoo.com" }, wantErr: true},
		{name: "domain lookalike", mutate: func(in *RegisterInput) { in.Email = "maria@xgmail.com" }, wantErr: true},
		{name: "missing local part", mutate: func(in *RegisterInput) { in.Email = "@gmail.com" }, wantErr: true},
		{name: "digits in name", mutate: func(in *RegisterInput) { in.Name = "Maria2" }, wantErr: true},
		{name: "long last name", mutate: func(in *RegisterInput) { in.LastName = string(make([]rune, 51)) }, wantErr: true},
		{name: "short password", mutate: func(in *RegisterInput) { in.Password, in.PasswordConfirm = "short", "short" }, wantErr: true},
		{name: "confirmation mismatch", mutate: func(in *RegisterInput) { in.PasswordConfirm = "secret124" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := validateRegistration(in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	in := RegisterInput{Name: "Ana", LastName: "Díaz", Email: "Ana@Gmail.com", Password: "secret123", PasswordConfirm: "secret123"}
	signup := model.SignupInput{Name: "Ana", LastName: "Díaz", Email: "ana@gmail.com", Password: "secret123", RoleID: model.RoleClient, State: true}
	created := &model.User{ID: 9, Name: "Ana", Email: "ana@gmail.com", RoleID: model.RoleClient, Role: model.RoleNameClient, State: true, HasPassword: true}

	tests := []struct {
		name       string
		setupMocks func(f *authFixture)
		wantErr    error
		wantToken  bool
	}{
		{
			name: "logs in with the signup token",
			setupMocks: func(f *authFixture) {
				f.auth.On("Signup", ctx, signup).Return("baas-tok", nil)
				f.users.On("FindByEmail", ctx, "ana@gmail.com").Return(created, nil)
				f.auth.On("Me", ctx, "baas-tok").Return(created, nil)
			},
			wantToken: true,
		},
		{
			name: "waits for the record to appear",
			setupMocks: func(f *authFixture) {
				f.auth.On("Signup", ctx, signup).Return("", nil)
				f.users.On("FindByEmail", ctx, "ana@gmail.com").Return(nil, repository.ErrNotFound).Twice()
				f.users.On("FindByEmail", ctx, "ana@gmail.com").Return(created, nil).Once()
			},
		},
		{
			name: "record never appears",
			setupMocks: func(f *authFixture) {
				f.auth.On("Signup", ctx, signup).Return("", nil)
				f.users.On("FindByEmail", ctx, "ana@gmail.com").Return(nil, repository.ErrNotFound).Times(3)
			},
			wantErr: ErrSignupUnverified,
		},
		{
			name: "password hash missing",
			setupMocks: func(f *authFixture) {
				f.auth.On("Signup", ctx, signup).Return("", nil)
				f.users.On("FindByEmail", ctx, "ana@gmail.com").Return(&model.User{ID: 9, State: true}, nil)
			},
			wantErr: ErrSignupUnverified,
		},
		{
			name: "email taken",
			setupMocks: func(f *authFixture) {
				f.auth.On("Signup", ctx, signup).Return("", repository.ErrEmailTaken)
			},
			wantErr: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			tt.setupMocks(f)

			got, err := f.svc.Register(ctx, in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(9), got.User.ID)
				assert.True(t, got.CanInteract)
				assert.Equal(t, tt.wantToken, got.Token != "")
			}
			f.auth.AssertExpectations(t)
			f.users.AssertExpectations(t)
		})
	}
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	sess := &session.Session{ID: "s1", UserID: 7, BaaSToken: "baas-tok"}
	f.auth.On("Me", ctx, "baas-tok").Return(&model.User{ID: 7, State: false}, nil)

	_, err := f.svc.Me(ctx, sess)

	assert.ErrorIs(t, err, ErrUserBlocked)
	isBlocked, err := f.store.IsBlocked(ctx, 7)
	require.NoError(t, err)
	assert.True(t, isBlocked)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	sess, err := f.store.Create(ctx, session.Session{UserID: 4})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, sess))

	_, err = f.store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	sess := &session.Session{UserID: 4}

	t.Run("updates given fields", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("Update", ctx, int64(4), model.UserInput{Name: "Ana"}).Return(&model.User{ID: 4, Name: "Ana"}, nil)

		got, err := f.svc.UpdateProfile(ctx, sess, ProfileInput{Name: " Ana "})

		require.NoError(t, err)
		assert.Equal(t, "Ana", got.Name)
		f.users.AssertExpectations(t)
	})

	t.Run("nothing to update", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.svc.UpdateProfile(ctx, sess, ProfileInput{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestAuthService_SeedAdmin(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupMocks func(f *authFixture)
		wantID     int64
	}{
		{
			name: "creates missing admin",
			setupMocks: func(f *authFixture) {
				f.users.On("FindByEmail", ctx, "admin@ambientefest.cl").Return(nil, repository.ErrNotFound)
				f.users.On("Create", ctx, mock.MatchedBy(func(in model.UserInput) bool {
					return in.RoleID == model.RoleAdmin && in.Name == "Admin" && in.Password == "secret123" && in.State != nil && *in.State
				})).Return(&model.User{ID: 1, RoleID: model.RoleAdmin}, nil)
			},
			wantID: 1,
		},
		{
			name: "keeps existing admin",
			setupMocks: func(f *authFixture) {
				f.users.On("FindByEmail", ctx, "admin@ambientefest.cl").Return(&model.User{ID: 2, RoleID: model.RoleAdmin}, nil)
			},
			wantID: 2,
		},
		{
			name: "promotes existing client",
			setupMocks: func(f *authFixture) {
				f.users.On("FindByEmail", ctx, "admin@ambientefest.cl").Return(&model.User{ID: 3, RoleID: model.RoleClient}, nil)
				f.users.On("Update", ctx, int64(3), model.UserInput{RoleID: model.RoleAdmin}).Return(&model.User{ID: 3, RoleID: model.RoleAdmin}, nil)
			},
			wantID: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			tt.setupMocks(f)

			got, err := f.svc.SeedAdmin(ctx, "Admin@AmbienteFest.cl", "secret123")

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
			assert.True(t, got.IsAdmin())
			f.users.AssertExpectations(t)
		})
	}
}
