package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/videoclass/internal/models"
)

const classColumns = `id, title, description, instructor, type, video_url, thumbnail, duration, schedule, is_active, views, category, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует спецсимволы LIKE, чтобы строка искалась буквально.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// qualify добавляет псевдоним таблицы к каждой колонке списка.
func qualify(alias, columns string) string {
	cols := strings.Split(columns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// ListClasses возвращает активные классы по фильтру, новые первыми.
// Списки записанных студентов не загружаются.
func (s *Storage) ListClasses(ctx context.Context, f models.ClassFilter) ([]*models.Class, error) {
	const op = "storage.ListClasses"

	conds := []string{"is_active = TRUE"}
	var args []any
	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%[1]d OR description ILIKE $%[1]d OR instructor ILIKE $%[1]d)", len(args)))
	}

	query := `SELECT ` + classColumns + ` FROM classes WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY created_at DESC, id`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	classes := make([]*models.Class, 0)
	if err := s.DB.SelectContext(ctx, &classes, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return classes, nil
}

// ListAllClasses возвращает все классы, включая неактивные, с записанными студентами.
func (s *Storage) ListAllClasses(ctx context.Context) ([]*models.Class, error) {
	const op = "storage.ListAllClasses"

	classes := make([]*models.Class, 0)
	query := `SELECT ` + classColumns + ` FROM classes ORDER BY created_at DESC, id`
	if err := s.DB.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	if err := s.attachEnrolledStudents(ctx, classes); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return classes, nil
}

// GetClass возвращает класс без изменения счетчика просмотров.
func (s *Storage) GetClass(ctx context.Context, id string) (*models.Class, error) {
	const op = "storage.GetClass"

	var c models.Class
	if err := s.DB.GetContext(ctx, &c, `SELECT `+classColumns+` FROM classes WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	if err := s.attachEnrolledStudents(ctx, []*models.Class{&c}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

// ClassExists сообщает, существует ли класс.
func (s *Storage) ClassExists(ctx context.Context, id string) (bool, error) {
	const op = "storage.ClassExists"

	var exists bool
	if err := s.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM classes WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	return exists, nil
}

// ViewClass атомарно увеличивает счетчик просмотров и возвращает обновленный класс.
func (s *Storage) ViewClass(ctx context.Context, id string) (*models.Class, error) {
	const op = "storage.ViewClass"

	var c models.Class
	query := `UPDATE classes SET views = views + 1 WHERE id = $1 RETURNING ` + classColumns
	if err := s.DB.GetContext(ctx, &c, query, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	if err := s.attachEnrolledStudents(ctx, []*models.Class{&c}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

// CreateClass вставляет класс и заполняет серверные поля.
func (s *Storage) CreateClass(ctx context.Context, c *models.Class) error {
	const op = "storage.CreateClass"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	query := `
		INSERT INTO classes (id, title, description, instructor, type, video_url, thumbnail, duration, schedule, is_active, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING views, created_at, updated_at`
	err := s.DB.QueryRowxContext(ctx, query,
		c.ID, c.Title, c.Description, c.Instructor, c.Type, c.VideoURL,
		c.Thumbnail, c.Duration, c.Schedule, c.IsActive, c.Category,
	).Scan(&c.Views, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}
	c.EnrolledStudents = []string{}
	return nil
}

// UpdateClass заменяет редактируемые поля класса. Просмотры и записи сохраняются.
func (s *Storage) UpdateClass(ctx context.Context, id string, c models.Class) (*models.Class, error) {
	const op = "storage.UpdateClass"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		UPDATE classes SET
			title = $1, description = $2, instructor = $3, type = $4, video_url = $5,
			thumbnail = $6, duration = $7, schedule = $8, is_active = $9, category = $10,
			updated_at = NOW()
		WHERE id = $11
		RETURNING ` + classColumns

	var updated models.Class
	err := s.DB.GetContext(ctx, &updated, query,
		c.Title, c.Description, c.Instructor, c.Type, c.VideoURL,
		c.Thumbnail, c.Duration, c.Schedule, c.IsActive, c.Category, id,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	if err = s.attachEnrolledStudents(ctx, []*models.Class{&updated}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &updated, nil
}

// DeleteClass удаляет класс. Записи студентов удаляются каскадно.
func (s *Storage) DeleteClass(ctx context.Context, id string) error {
	const op = "storage.DeleteClass"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// ListUserClasses возвращает классы пользователя, последние записи первыми.
func (s *Storage) ListUserClasses(ctx context.Context, userID string) ([]*models.Class, error) {
	const op = "storage.ListUserClasses"

	query := `
		SELECT ` + qualify("c", classColumns) + `
		FROM enrollments e
		JOIN classes c ON c.id = e.class_id
		WHERE e.user_id = $1
		ORDER BY e.enrolled_at DESC, c.id`

	classes := make([]*models.Class, 0)
	if err := s.DB.SelectContext(ctx, &classes, query, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	if err := s.attachEnrolledStudents(ctx, classes); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return classes, nil
}

func (s *Storage) attachEnrolledStudents(ctx context.Context, classes []*models.Class) error {
	if len(classes) == 0 {
		return nil
	}
	ids := make([]string, 0, len(classes))
	for _, c := range classes {
		ids = append(ids, c.ID)
	}

	byClass, err := s.enrollmentIndex(ctx, "class_id", "user_id", ids)
	if err != nil {
		return err
	}
	for _, c := range classes {
		c.EnrolledStudents = orEmpty(byClass[c.ID])
	}
	return nil
}
