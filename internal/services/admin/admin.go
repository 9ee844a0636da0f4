// Package services содержит бизнес-логику админ-панели: сводку, управление
// классами и студентами, первичное создание администратора.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/videoclass/internal/lib/apperr"
	"github.com/magabrotheeeer/videoclass/internal/models"
	"github.com/magabrotheeeer/videoclass/internal/storage"
)

const (
	recentUsersLimit    = 5
	popularClassesLimit = 5

	msgClassNotFound = "Class not found"
	msgUserNotFound  = "User not found"
	msgUserExists    = "User already exists"
	msgAdminExists   = "Admin already exists"
)

// Repository определяет методы хранилища, нужные админ-панели.
type Repository interface {
	DashboardStats(ctx context.Context) (models.DashboardStats, error)
	ListStudents(ctx context.Context, limit int) ([]*models.User, error)
	PopularClasses(ctx context.Context, limit int) ([]*models.PopularClass, error)
	CategoryStats(ctx context.Context) ([]models.CategoryCount, error)

	ListAllClasses(ctx context.Context) ([]*models.Class, error)
	GetClass(ctx context.Context, id string) (*models.Class, error)
	CreateClass(ctx context.Context, c *models.Class) error
	UpdateClass(ctx context.Context, id string, c models.Class) (*models.Class, error)
	DeleteClass(ctx context.Context, id string) error

	UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	CreateAdminIfNone(ctx context.Context, u *models.User) (bool, error)
}

// PasswordHasher хеширует пароль администратора.
type PasswordHasher interface {
	Hash(raw string) (string, error)
}

// AdminService реализует операции администратора.
type AdminService struct {
	repo   Repository
	hasher PasswordHasher
}

// NewAdminService создает новый экземпляр AdminService.
func NewAdminService(repo Repository, hasher PasswordHasher) *AdminService {
	return &AdminService{repo: repo, hasher: hasher}
}

// Dashboard собирает сводку: агрегаты, новых студентов, популярные классы и категории.
func (s *AdminService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	const op = "services.admin.Dashboard"

	stats, err := s.repo.DashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	recent, err := s.repo.ListStudents(ctx, recentUsersLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	popular, err := s.repo.PopularClasses(ctx, popularClassesLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	categories, err := s.repo.CategoryStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.Dashboard{
		Stats:          stats,
		RecentUsers:    recent,
		PopularClasses: popular,
		CategoryStats:  categories,
	}, nil
}

// ListClasses возвращает все классы, включая неактивные.
func (s *AdminService) ListClasses(ctx context.Context) ([]*models.Class, error) {
	const op = "services.admin.ListClasses"

	classes, err := s.repo.ListAllClasses(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return classes, nil
}

// GetClass возвращает класс со списком студентов, не засчитывая просмотр.
func (s *AdminService) GetClass(ctx context.Context, id string) (*models.Class, error) {
	const op = "services.admin.GetClass"

	class, err := s.repo.GetClass(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, apperr.NotFound(msgClassNotFound).Wrap(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return class, nil
}

// CreateClass создает класс из проверенных входных данных.
func (s *AdminService) CreateClass(ctx context.Context, in models.ClassInput) (*models.Class, error) {
	const op = "services.admin.CreateClass"

	class := in.ToClass()
	if class.Title == "" {
		return nil, fmt.Errorf("%s: %w", op, apperr.Validation("Title is required"))
	}
	if err := s.repo.CreateClass(ctx, &class); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &class, nil
}

// UpdateClass заменяет редактируемые поля класса.
func (s *AdminService) UpdateClass(ctx context.Context, id string, in models.ClassInput) (*models.Class, error) {
	const op = "services.admin.UpdateClass"

	class := in.ToClass()
	if class.Title == "" {
		return nil, fmt.Errorf("%s: %w", op, apperr.Validation("Title is required"))
	}
	updated, err := s.repo.UpdateClass(ctx, id, class)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, apperr.NotFound(msgClassNotFound).Wrap(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteClass удаляет класс.
func (s *AdminService) DeleteClass(ctx context.Context, id string) error {
	const op = "services.admin.DeleteClass"

	if err := s.repo.DeleteClass(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, apperr.NotFound(msgClassNotFound).Wrap(err))
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListUsers возвращает студентов, новые первыми.
func (s *AdminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "services.admin.ListUsers"

	users, err := s.repo.ListStudents(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// UpdateUser меняет имя, email и роль пользователя. Пароль не меняется.
func (s *AdminService) UpdateUser(ctx context.Context, id string, req models.UserUpdateRequest) (*models.User, error) {
	const op = "services.admin.UpdateUser"

	upd := models.UserUpdate{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Role:  req.Role,
	}
	user, err := s.repo.UpdateUser(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, fmt.Errorf("%s: %w", op, apperr.NotFound(msgUserNotFound).Wrap(err))
		case errors.Is(err, storage.ErrDuplicate):
			return nil, fmt.Errorf("%s: %w", op, apperr.Conflict(msgUserExists).Wrap(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// DeleteUser удаляет пользователя по ID.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	const op = "services.admin.DeleteUser"

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, apperr.NotFound(msgUserNotFound).Wrap(err))
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Setup создает первого администратора. Если администратор уже есть,
// возвращает конфликт независимо от переданных данных.
func (s *AdminService) Setup(ctx context.Context, req models.SetupRequest) error {
	const op = "services.admin.Setup"

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%s: %w", op, apperr.Validation("Name is required"))
	}
	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	admin := &models.User{
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
	}
	created, err := s.repo.CreateAdminIfNone(ctx, admin)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return fmt.Errorf("%s: %w", op, apperr.Conflict(msgUserExists).Wrap(err))
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if !created {
		return fmt.Errorf("%s: %w", op, apperr.Conflict(msgAdminExists))
	}
	return nil
}
