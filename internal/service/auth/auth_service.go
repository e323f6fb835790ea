package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/saraye/internal/domain"
	"github.com/Domenick1991/saraye/internal/ids"
	"github.com/Domenick1991/saraye/internal/repository"
	"github.com/Domenick1991/saraye/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	UpdateProfile(ctx context.Context, actor *domain.User, input ProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, actor *domain.User, current, next string) error
}

type SessionStore interface {
	Save(ctx context.Context, token, userID string) error
	Lookup(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

type Session struct {
	Token     string       `json:"token"`
	User      *domain.User `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"notblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6,max=72"`
	Phone    string `json:"phone" validate:"phone"`
	Role     string `json:"role" validate:"required"`
}

type ProfileInput struct {
	Name  string `json:"name" validate:"notblank,max=100"`
	Phone string `json:"phone" validate:"phone"`
}

type passwordInput struct {
	Password string `validate:"min=6,max=72"`
}

var errBadCredentials = fmt.Errorf("%w: invalid email or password", domain.ErrUnauthenticated)

type AuthService struct {
	users      repository.UserRepository
	sessions   SessionStore
	ids        *ids.Generator
	validate   *validation.Validator
	sessionTTL time.Duration
	hashCost   int
}

// NewAuthService falls back to bcrypt.DefaultCost when hashCost is out of range.
func NewAuthService(users repository.UserRepository, sessions SessionStore, gen *ids.Generator, sessionTTL time.Duration, hashCost int) *AuthService {
	if hashCost < bcrypt.MinCost || hashCost > bcrypt.MaxCost {
		hashCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		ids:        gen,
		validate:   validation.New(),
		sessionTTL: sessionTTL,
		hashCost:   hashCost,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}
	switch role {
	case domain.RoleGuest, domain.RoleHost:
	case domain.RoleAdmin:
		return nil, fmt.Errorf("%w: admin accounts cannot be self-registered", domain.ErrUnauthorized)
	default:
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, input.Role)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email %s is already registered", domain.ErrConflict, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	id, err := s.ids.Next(ctx, role.IDPrefix())
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           id,
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        input.Phone,
		Role:         role,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login gives the same error for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errBadCredentials
	}
	if user.Status != domain.UserStatusActive {
		return nil, fmt.Errorf("%w: account is %s", domain.ErrUnauthorized, strings.ToLower(string(user.Status)))
	}

	token := uuid.NewString()
	if err := s.sessions.Save(ctx, token, user.ID); err != nil {
		return nil, fmt.Errorf("%w: save session: %w", domain.ErrStorage, err)
	}
	return &Session{Token: token, User: user, ExpiresAt: time.Now().Add(s.sessionTTL)}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrUnauthenticated
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("%w: delete session: %w", domain.ErrStorage, err)
	}
	return nil
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	userID, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup session: %w", domain.ErrStorage, err)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: session expired", domain.ErrUnauthenticated)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	if user.Status != domain.UserStatusActive {
		return nil, fmt.Errorf("%w: account is %s", domain.ErrUnauthenticated, strings.ToLower(string(user.Status)))
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, actor *domain.User, input ProfileInput) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	user.Name = strings.TrimSpace(input.Name)
	user.Phone = input.Phone
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, actor *domain.User, current, next string) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	if err := s.validate.Struct(passwordInput{Password: next}); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return fmt.Errorf("%w: current password is wrong", domain.ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	return s.users.Update(ctx, user)
}

var _ AuthUseCase = (*AuthService)(nil)
