package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/ticket-order-api/internal/domain"
	"github.com/vietanh2810/ticket-order-api/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrWrongPassword   = errors.New("wrong password")
)

// VerificationResult tells a freshly verified user apart from one that was
// verified before the call.
type VerificationResult int

const (
	VerificationMailSent VerificationResult = iota
	UserVerified
	UserAlreadyVerified
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	MarkVerified(ctx context.Context, id uint) (bool, error)
}

type TokenIssuer interface {
	IssueToken(userID uint) (string, error)
}

type MailDispatcher interface {
	Dispatch(ctx context.Context, m domain.VerificationMail) error
}

type AuthService struct {
	repo   AuthUserRepository
	tokens TokenIssuer
	mailer MailDispatcher
}

func NewAuthService(repo AuthUserRepository, tokens TokenIssuer, mailer MailDispatcher) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		mailer: mailer,
	}
}

func (s *AuthService) Register(ctx context.Context, user domain.User) (domain.User, error) {
	if err := s.checkEmailExists(ctx, user.Email); err != nil {
		return domain.User{}, err
	}

	hashedPassword, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashPassword -> %w", err)
	}
	user.Password = hashedPassword
	user.IsVerified = false

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	// The user is stored at this point; a missing mail can be requested
	// again through SendVerificationMail.
	token, err := s.tokens.IssueToken(created.ID)
	if err != nil {
		zap.L().Warn("verification token not issued", zap.Uint("user_id", created.ID), zap.Error(err))
		return created, nil
	}
	s.sendVerificationMail(ctx, created, token)

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.IssueToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("s.tokens.IssueToken -> %w", err)
	}

	return token, nil
}

// SendVerificationMail checks the credentials like Login and resends the
// verification token unless the user is verified already.
func (s *AuthService) SendVerificationMail(ctx context.Context, email, password string) (VerificationResult, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return 0, err
	}

	if user.IsVerified {
		return UserAlreadyVerified, nil
	}

	token, err := s.tokens.IssueToken(user.ID)
	if err != nil {
		return 0, fmt.Errorf("s.tokens.IssueToken -> %w", err)
	}
	s.sendVerificationMail(ctx, user, token)

	return VerificationMailSent, nil
}

// VerifyUser marks the token's user as verified. The flag never goes back.
func (s *AuthService) VerifyUser(ctx context.Context, userID uint) (VerificationResult, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, ErrUserNotFound
		}

		return 0, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if user.IsVerified {
		return UserAlreadyVerified, nil
	}

	flipped, err := s.repo.MarkVerified(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.MarkVerified -> %w", err)
	}
	if !flipped {
		return UserAlreadyVerified, nil
	}

	zap.L().Info("user verified", zap.Uint("user_id", user.ID))

	return UserVerified, nil
}

func (s *AuthService) authenticate(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// sendVerificationMail never fails the caller; delivery problems are only logged.
func (s *AuthService) sendVerificationMail(ctx context.Context, user domain.User, token string) {
	if err := s.mailer.Dispatch(ctx, domain.NewVerificationMail(user, token)); err != nil {
		zap.L().Warn("verification mail not dispatched", zap.Uint("user_id", user.ID), zap.Error(err))
	}
}

// Helper function for password hashing
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Helper function to check if email exists
func (s *AuthService) checkEmailExists(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return ErrUserEmailExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}
	return nil
}
