package v1

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vietanh2810/ticket-order-api/internal/domain"
	"github.com/vietanh2810/ticket-order-api/internal/service"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) SendVerificationMail(ctx context.Context, email, password string) (service.VerificationResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(service.VerificationResult), args.Error(1)
}

func (m *mockAuthService) VerifyUser(ctx context.Context, userID uint) (service.VerificationResult, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(service.VerificationResult), args.Error(1)
}

func newAuthRouter(svc AuthService) http.Handler {
	h := NewAuthHandler(svc)
	router := newRouter()
	router.POST("/register", h.HandleRegister)
	router.POST("/login", h.HandleLogin)
	router.POST("/sendVerificationMail", h.HandleSendVerificationMail)
	router.POST("/verifyUser", h.HandleVerifyUser)
	return router
}

func TestAuthHandler_HandleRegister(t *testing.T) {
	valid := map[string]any{
		"first_name": "Alice",
		"last_name":  "Martin",
		"email":      "a@x.io",
		"password":   "secret1",
	}

	t.Run("created", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Register", mock.Anything, domain.User{
			FirstName: "Alice",
			LastName:  "Martin",
			Email:     "a@x.io",
			Password:  "secret1",
		}).Return(domain.User{ID: 1}, nil)

		h := NewAuthHandler(svc)
		router := newRouter()
		router.POST("/register", h.HandleRegister)

		rec := do(router, http.MethodPost, "/register", "", valid)

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("field errors", func(t *testing.T) {
		svc := new(mockAuthService)
		h := NewAuthHandler(svc)
		router := newRouter()
		router.POST("/register", h.HandleRegister)

		rec := do(router, http.MethodPost, "/register", "", map[string]any{
			"first_name": "Al",
			"last_name":  "Martin",
			"email":      "not-an-email",
			"password":   "123",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		fields, ok := decode(t, rec)["error"].(map[string]any)
		assert.True(t, ok)
		assert.Contains(t, fields, "first_name")
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "password")
		assert.NotContains(t, fields, "last_name")
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("email taken", func(t *testing.T) {
		svc := new(mockAuthService)
		svc.On("Register", mock.Anything, mock.Anything).Return(domain.User{}, service.ErrUserEmailExists)
		h := NewAuthHandler(svc)
		router := newRouter()
		router.POST("/register", h.HandleRegister)

		rec := do(router, http.MethodPost, "/register", "", valid)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		fields, ok := decode(t, rec)["error"].(map[string]any)
		assert.True(t, ok)
		assert.Contains(t, fields, "email")
	})
}

func TestAuthHandler_HandleLogin(t *testing.T) {
	creds := map[string]any{"email": "a@x.io", "password": "secret1"}

	tests := []struct {
		name       string
		body       any
		token      string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "ok", body: creds, token: "tok", wantStatus: http.StatusCreated, wantMsg: "Login Successful"},
		{name: "unknown email", body: creds, err: service.ErrUserNotFound, wantStatus: http.StatusNotFound, wantMsg: "Not a Registered Email"},
		{name: "wrong password", body: creds, err: service.ErrWrongPassword, wantStatus: http.StatusPaymentRequired, wantMsg: "Wrong Password"},
		{name: "password too long", body: map[string]any{"email": "a@x.io", "password": "0123456789012345678901234567890"}, wantStatus: http.StatusUnauthorized},
		{name: "broken json", body: "{", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockAuthService)
			svc.On("Login", mock.Anything, "a@x.io", "secret1").Return(tt.token, tt.err)

			rec := do(newAuthRouter(svc), http.MethodPost, "/login", "", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decode(t, rec)["message"])
			}
			if tt.token != "" {
				assert.Equal(t, tt.token, decode(t, rec)["token"])
			}
		})
	}
}

func TestAuthHandler_HandleSendVerificationMail(t *testing.T) {
	creds := map[string]any{"email": "a@x.io", "password": "secret1"}

	tests := []struct {
		name       string
		result     service.VerificationResult
		err        error
		wantStatus int
	}{
		{name: "sent", result: service.VerificationMailSent, wantStatus: http.StatusCreated},
		{name: "already verified", result: service.UserAlreadyVerified, wantStatus: http.StatusAccepted},
		{name: "unknown email", err: service.ErrUserNotFound, wantStatus: http.StatusNotFound},
		{name: "wrong password", err: service.ErrWrongPassword, wantStatus: http.StatusPaymentRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockAuthService)
			svc.On("SendVerificationMail", mock.Anything, "a@x.io", "secret1").Return(tt.result, tt.err)

			rec := do(newAuthRouter(svc), http.MethodPost, "/sendVerificationMail", "", creds)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthHandler_HandleVerifyUser(t *testing.T) {
	tests := []struct {
		name       string
		auth       string
		result     service.VerificationResult
		err        error
		wantStatus int
	}{
		{name: "verified", auth: bearer(t, 3), result: service.UserVerified, wantStatus: http.StatusCreated},
		{name: "already verified", auth: bearer(t, 3), result: service.UserAlreadyVerified, wantStatus: http.StatusAccepted},
		{name: "user gone", auth: bearer(t, 3), err: service.ErrUserNotFound, wantStatus: http.StatusNotFound},
		{name: "no token", wantStatus: http.StatusUnauthorized},
		{name: "bad token", auth: "Bearer nope", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockAuthService)
			svc.On("VerifyUser", mock.Anything, uint(3)).Return(tt.result, tt.err)

			rec := do(newAuthRouter(svc), http.MethodPost, "/verifyUser", tt.auth, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
