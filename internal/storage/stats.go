package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/videoclass/internal/models"
)

// ClassStats считает активные классы, записи пользователя и сумму просмотров по всем классам.
func (s *Storage) ClassStats(ctx context.Context, userID string) (models.ClassStats, error) {
	const op = "storage.ClassStats"

	query := `
		SELECT
			COUNT(*) FILTER (WHERE is_active) AS total_classes,
			COUNT(*) FILTER (WHERE is_active AND type = 'live') AS live_classes,
			COUNT(*) FILTER (WHERE is_active AND type = 'recorded') AS recorded_classes,
			(SELECT COUNT(*) FROM enrollments WHERE user_id = $1) AS enrolled_classes,
			COALESCE(SUM(views), 0) AS total_views
		FROM classes`

	var stats models.ClassStats
	if err := s.DB.GetContext(ctx, &stats, query, userID); err != nil {
		return models.ClassStats{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return stats, nil
}

// DashboardStats считает агрегаты админ-панели.
func (s *Storage) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	const op = "storage.DashboardStats"

	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = $1) AS total_users,
			COUNT(*) AS total_classes,
			COUNT(*) FILTER (WHERE is_active AND type = 'live') AS live_classes,
			COALESCE(SUM(views), 0) AS total_views
		FROM classes`

	var stats models.DashboardStats
	if err := s.DB.GetContext(ctx, &stats, query, models.RoleStudent); err != nil {
		return models.DashboardStats{}, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return stats, nil
}

// PopularClasses возвращает limit классов с наибольшим числом просмотров.
func (s *Storage) PopularClasses(ctx context.Context, limit int) ([]*models.PopularClass, error) {
	const op = "storage.PopularClasses"

	popular := make([]*models.PopularClass, 0, limit)
	query := `SELECT id, title, views FROM classes ORDER BY views DESC, created_at DESC LIMIT $1`
	if err := s.DB.SelectContext(ctx, &popular, query, limit); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	ids := make([]string, 0, len(popular))
	for _, p := range popular {
		ids = append(ids, p.ID)
	}
	byClass, err := s.enrollmentIndex(ctx, "class_id", "user_id", ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, p := range popular {
		p.EnrolledStudents = orEmpty(byClass[p.ID])
	}
	return popular, nil
}

// CategoryStats возвращает число классов в каждой категории.
func (s *Storage) CategoryStats(ctx context.Context) ([]models.CategoryCount, error) {
	const op = "storage.CategoryStats"

	counts := make([]models.CategoryCount, 0)
	query := `SELECT category, COUNT(*) AS count FROM classes GROUP BY category ORDER BY count DESC, category`
	if err := s.DB.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return counts, nil
}
