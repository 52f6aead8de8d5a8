package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/ticket-order-api/internal/domain"
	"github.com/vietanh2810/ticket-order-api/internal/repository"
)

func newUser(email string) domain.User {
	return domain.User{
		FirstName: "Alice",
		LastName:  "Martin",
		Email:     email,
		Password:  "secret1",
	}
}

func TestAuthService_Register(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	created, err := s.auth.Register(ctx, newUser("a@x.io"))
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.False(t, created.IsVerified)
	assert.NotEqual(t, "secret1", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret1")))

	require.Len(t, s.mailer.sent, 1)
	assert.Equal(t, "a@x.io", s.mailer.sent[0].Email)
	assert.Equal(t, "token-1", s.mailer.sent[0].Token)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	_, err := s.auth.Register(ctx, newUser("a@x.io"))
	require.NoError(t, err)

	_, err = s.auth.Register(ctx, newUser("a@x.io"))
	assert.ErrorIs(t, err, ErrUserEmailExists)
	assert.Len(t, s.store.users, 1)
}

func TestAuthService_Register_MailFailureIsNotFatal(t *testing.T) {
	s := newServices()
	s.mailer.err = errors.New("smtp down")

	created, err := s.auth.Register(context.Background(), newUser("a@x.io"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

type failingIssuer struct{}

func (failingIssuer) IssueToken(uint) (string, error) {
	return "", errors.New("signing key missing")
}

func TestAuthService_Register_TokenFailureKeepsUser(t *testing.T) {
	store := newMemStore()
	mailer := &recordingMailer{}
	auth := NewAuthService(memUsers{store}, failingIssuer{}, mailer)
	ctx := context.Background()

	created, err := auth.Register(ctx, newUser("a@x.io"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Contains(t, store.users, created.ID)
	assert.Empty(t, mailer.sent)

	_, err = auth.Register(ctx, newUser("a@x.io"))
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestAuthService_Login(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	_, err := s.auth.Register(ctx, newUser("a@x.io"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "ok", email: "a@x.io", password: "secret1"},
		{name: "unknown email", email: "b@x.io", password: "secret1", wantErr: ErrUserNotFound},
		{name: "wrong password", email: "a@x.io", password: "secret2", wantErr: ErrWrongPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := s.auth.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "token-1", token)
		})
	}
}

func TestAuthService_SendVerificationMail(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	created, err := s.auth.Register(ctx, newUser("a@x.io"))
	require.NoError(t, err)

	result, err := s.auth.SendVerificationMail(ctx, "a@x.io", "secret1")
	require.NoError(t, err)
	assert.Equal(t, VerificationMailSent, result)
	assert.Len(t, s.mailer.sent, 2)

	_, err = s.auth.SendVerificationMail(ctx, "a@x.io", "nope12")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = s.auth.VerifyUser(ctx, created.ID)
	require.NoError(t, err)

	result, err = s.auth.SendVerificationMail(ctx, "a@x.io", "secret1")
	require.NoError(t, err)
	assert.Equal(t, UserAlreadyVerified, result)
	assert.Len(t, s.mailer.sent, 2)
}

func TestAuthService_VerifyUser(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	created, err := s.auth.Register(ctx, newUser("a@x.io"))
	require.NoError(t, err)

	result, err := s.auth.VerifyUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, UserVerified, result)

	result, err = s.auth.VerifyUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, UserAlreadyVerified, result)

	user, err := s.users.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	_, err = s.auth.VerifyUser(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

type mockAuthUserRepository struct {
	mock.Mock
}

func (m *mockAuthUserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthUserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthUserRepository) MarkVerified(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestAuthService_Register_EmailRaceCaughtByIndex(t *testing.T) {
	repo := new(mockAuthUserRepository)
	repo.On("FindByEmail", mock.Anything, "a@x.io").Return(domain.User{}, repository.ErrUserNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("domain.User")).Return(domain.User{}, repository.ErrUserEmailExists)

	svc := NewAuthService(repo, stubIssuer{}, &recordingMailer{})

	_, err := svc.Register(context.Background(), newUser("a@x.io"))
	assert.ErrorIs(t, err, ErrUserEmailExists)
	repo.AssertExpectations(t)
}

func TestAuthService_VerifyUser_LostRace(t *testing.T) {
	repo := new(mockAuthUserRepository)
	repo.On("FindByID", mock.Anything, uint(7)).Return(domain.User{ID: 7}, nil)
	repo.On("MarkVerified", mock.Anything, uint(7)).Return(false, nil)

	svc := NewAuthService(repo, stubIssuer{}, &recordingMailer{})

	result, err := svc.VerifyUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, UserAlreadyVerified, result)
	repo.AssertExpectations(t)
}

func TestAuthService_Login_StoreError(t *testing.T) {
	repo := new(mockAuthUserRepository)
	repo.On("FindByEmail", mock.Anything, "a@x.io").Return(domain.User{}, errStoreDown)

	svc := NewAuthService(repo, stubIssuer{}, &recordingMailer{})

	_, err := svc.Login(context.Background(), "a@x.io", "secret1")
	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}
