// Package services содержит бизнес-логику каталога классов: выдачу, статистику,
// просмотр и запись студентов.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/videoclass/internal/lib/apperr"
	"github.com/magabrotheeeer/videoclass/internal/lib/metrics"
	"github.com/magabrotheeeer/videoclass/internal/models"
	"github.com/magabrotheeeer/videoclass/internal/storage"
)

const (
	// DefaultLimit размер выдачи каталога по умолчанию.
	DefaultLimit = 50
	// MaxLimit верхняя граница размера выдачи.
	MaxLimit = 100

	msgClassNotFound = "Class not found"
	msgUserNotFound  = "User not found"
)

// ClassRepository определяет методы хранилища, нужные каталогу.
type ClassRepository interface {
	ListClasses(ctx context.Context, f models.ClassFilter) ([]*models.Class, error)
	ClassStats(ctx context.Context, userID string) (models.ClassStats, error)
	ViewClass(ctx context.Context, id string) (*models.Class, error)
	ClassExists(ctx context.Context, id string) (bool, error)
	Enroll(ctx context.Context, userID, classID string) (bool, error)
	ListUserClasses(ctx context.Context, userID string) ([]*models.Class, error)
}

// CatalogService реализует операции каталога для авторизованного пользователя.
type CatalogService struct {
	repo ClassRepository
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo ClassRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// NormalizeLimit приводит размер выдачи к допустимому диапазону.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// List возвращает активные классы по фильтру, новые первыми.
func (s *CatalogService) List(ctx context.Context, f models.ClassFilter) ([]*models.Class, error) {
	const op = "services.catalog.List"

	f.Search = strings.TrimSpace(f.Search)
	f.Limit = NormalizeLimit(f.Limit)

	classes, err := s.repo.ListClasses(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return classes, nil
}

// Stats возвращает счетчики каталога для пользователя.
func (s *CatalogService) Stats(ctx context.Context, userID string) (models.ClassStats, error) {
	const op = "services.catalog.Stats"

	stats, err := s.repo.ClassStats(ctx, userID)
	if err != nil {
		return models.ClassStats{}, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// Get возвращает класс и засчитывает просмотр.
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Class, error) {
	const op = "services.catalog.Get"

	class, err := s.repo.ViewClass(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, apperr.NotFound(msgClassNotFound).Wrap(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.ClassViews.Inc()
	return class, nil
}

// Enroll записывает пользователя на класс. Повторная запись успешна и ничего не меняет.
func (s *CatalogService) Enroll(ctx context.Context, classID, userID string) error {
	const op = "services.catalog.Enroll"

	exists, err := s.repo.ClassExists(ctx, classID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: %w", op, apperr.NotFound(msgClassNotFound))
	}

	inserted, err := s.repo.Enroll(ctx, userID, classID)
	if err != nil {
		// класс или пользователь удалены между проверкой и вставкой
		var refErr *storage.ReferenceError
		if errors.As(err, &refErr) && refErr.Constraint == storage.EnrollmentUserFK {
			return fmt.Errorf("%s: %w", op, apperr.NotFound(msgUserNotFound).Wrap(err))
		}
		if errors.Is(err, storage.ErrReference) {
			return fmt.Errorf("%s: %w", op, apperr.NotFound(msgClassNotFound).Wrap(err))
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if inserted {
		metrics.Enrollments.Inc()
	}
	return nil
}

// MyClasses возвращает классы пользователя целиком, последние записи первыми.
func (s *CatalogService) MyClasses(ctx context.Context, userID string) ([]*models.Class, error) {
	const op = "services.catalog.MyClasses"

	classes, err := s.repo.ListUserClasses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return classes, nil
}
