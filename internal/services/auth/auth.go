// Package services содержит логику бизнес-уровня для регистрации,
// аутентификации и отзыва сессионных токенов.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/magabrotheeeer/videoclass/internal/lib/apperr"
	"github.com/magabrotheeeer/videoclass/internal/lib/jwt"
	"github.com/magabrotheeeer/videoclass/internal/lib/metrics"
	"github.com/magabrotheeeer/videoclass/internal/lib/password"
	"github.com/magabrotheeeer/videoclass/internal/models"
	"github.com/magabrotheeeer/videoclass/internal/storage"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgUserExists         = "User already exists"
	msgUserNotFound       = "User not found"
	msgInvalidToken       = "Invalid or expired token"
	msgRevokedToken       = "Token has been revoked"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и заполняет его ID.
	CreateUser(ctx context.Context, u *models.User) error
	// GetUserByEmail возвращает пользователя по email или storage.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID возвращает пользователя по ID или storage.ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// TouchLastLogin фиксирует время входа.
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

// TokenRevoker хранит идентификаторы отозванных токенов.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// PasswordHasher хеширует и сверяет пароли.
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Compare(hash, raw string) error
}

// AuthService отвечает за регистрацию, вход, профиль и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	hasher   PasswordHasher
	revoked  TokenRevoker
	now      func() time.Time
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, hasher PasswordHasher, revoked TokenRevoker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		hasher:   hasher,
		revoked:  revoked,
		now:      time.Now,
	}
}

// NormalizeEmail приводит email к каноническому виду.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создает студента с захешированным паролем и выдает токен.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	const op = "services.auth.Register"

	user, err := s.newUser(ctx, req.Name, req.Email, req.Password, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, fmt.Errorf("%s: %w", op, apperr.Conflict(msgUserExists).Wrap(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.Registrations.Inc()

	res, err := s.issue(user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// newUser проверяет уникальность email и готовит запись пользователя с хешем пароля.
func (s *AuthService) newUser(ctx context.Context, name, email, raw, role string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" {
		return nil, apperr.Validation("Name is required")
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperr.Conflict(msgUserExists)
	case !errors.Is(err, storage.ErrNotFound):
		return nil, err
	}

	hashed, err := s.hasher.Hash(raw)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}, nil
}

// Login проверяет пароль, обновляет время входа и выдает новый токен.
// Неизвестный email и неверный пароль дают одинаковую ошибку.
func (s *AuthService) Login(ctx context.Context, email, raw string) (*models.AuthResult, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			metrics.Logins.WithLabelValues("failure").Inc()
			return nil, fmt.Errorf("%s: %w", op, apperr.Auth(msgInvalidCredentials))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.hasher.Compare(user.PasswordHash, raw); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			metrics.Logins.WithLabelValues("failure").Inc()
			return nil, fmt.Errorf("%s: %w", op, apperr.Auth(msgInvalidCredentials))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = s.users.TouchLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.Logins.WithLabelValues("success").Inc()

	res, err := s.issue(user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Me возвращает профиль пользователя.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	const op = "services.auth.Me"

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, apperr.NotFound(msgUserNotFound).Wrap(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Logout отзывает токен до момента его естественного истечения.
func (s *AuthService) Logout(ctx context.Context, claims *jwt.CustomClaims) error {
	const op = "services.auth.Logout"

	if claims == nil || claims.ID == "" {
		return fmt.Errorf("%s: %w", op, apperr.Auth(msgInvalidToken))
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.Remaining(s.now())); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ValidateToken проверяет подпись, срок действия и отзыв токена.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error) {
	const op = "services.auth.ValidateToken"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.Auth(msgInvalidToken).Wrap(err))
	}
	if claims.ID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if revoked {
			return nil, fmt.Errorf("%s: %w", op, apperr.Auth(msgRevokedToken))
		}
	}
	return claims, nil
}

func (s *AuthService) issue(user *models.User) (*models.AuthResult, error) {
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &models.AuthResult{Token: token, User: user.Public()}, nil
}
