package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/magabrotheeeer/videoclass/internal/models"
)

const userColumns = `id, name, email, password_hash, role, profile_picture, created_at, updated_at, last_login`

// adminSetupLockKey ключ advisory-lock для первичного создания администратора.
const adminSetupLockKey = 7301

// CreateUser вставляет нового пользователя. ID генерируется, если не задан.
// При занятом email возвращает ErrDuplicate.
func (s *Storage) CreateUser(ctx context.Context, u *models.User) error {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if err := insertUser(ctx, s.DB, u); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func insertUser(ctx context.Context, q sqlx.QueryerContext, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleStudent
	}
	query := `
		INSERT INTO users (id, name, email, password_hash, role, profile_picture)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`
	err := q.QueryRowxContext(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.ProfilePicture).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return mapErr(err)
	}
	u.EnrolledClasses = []string{}
	return nil
}

// GetUserByEmail возвращает пользователя по email вместе с хешем пароля.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"

	var u models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := s.DB.GetContext(ctx, &u, query, email); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	if err := s.attachEnrolledClasses(ctx, []*models.User{&u}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// GetUserByID возвращает пользователя со списком его классов.
func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUserByID"

	var u models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := s.DB.GetContext(ctx, &u, query, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	if err := s.attachEnrolledClasses(ctx, []*models.User{&u}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// TouchLastLogin фиксирует время последнего входа.
func (s *Storage) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	const op = "storage.TouchLastLogin"

	res, err := s.DB.ExecContext(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// ListStudents возвращает студентов, новые первыми. limit <= 0 означает без ограничения.
func (s *Storage) ListStudents(ctx context.Context, limit int) ([]*models.User, error) {
	const op = "storage.ListStudents"

	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at DESC, id`
	args := []any{models.RoleStudent}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	users := make([]*models.User, 0)
	if err := s.DB.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	if err := s.attachEnrolledClasses(ctx, users); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// UpdateUser меняет имя, email и роль. Пустые поля сохраняют текущее значение.
func (s *Storage) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		UPDATE users SET
			name = COALESCE(NULLIF($1, ''), name),
			email = COALESCE(NULLIF($2, ''), email),
			role = COALESCE(NULLIF($3, ''), role),
			updated_at = NOW()
		WHERE id = $4
		RETURNING ` + userColumns

	var u models.User
	if err := s.DB.GetContext(ctx, &u, query, upd.Name, upd.Email, upd.Role, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	if err := s.attachEnrolledClasses(ctx, []*models.User{&u}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// DeleteUser удаляет пользователя. Записи на классы удаляются каскадно.
func (s *Storage) DeleteUser(ctx context.Context, id string) error {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapErr(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// CreateAdminIfNone создаёт администратора, только если в базе нет ни одного.
// Проверка и вставка выполняются в одной транзакции под advisory-lock.
// Возвращает false, если администратор уже существует.
func (s *Storage) CreateAdminIfNone(ctx context.Context, u *models.User) (bool, error) {
	const op = "storage.CreateAdminIfNone"

	created := false
	err := s.execTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, adminSetupLockKey); err != nil {
			return err
		}
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE role = $1)`, models.RoleAdmin); err != nil {
			return err
		}
		if exists {
			return nil
		}
		u.Role = models.RoleAdmin
		if err := insertUser(ctx, tx, u); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// attachEnrolledClasses заполняет EnrolledClasses у переданных пользователей.
func (s *Storage) attachEnrolledClasses(ctx context.Context, users []*models.User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	byUser, err := s.enrollmentIndex(ctx, "user_id", "class_id", ids)
	if err != nil {
		return err
	}
	for _, u := range users {
		u.EnrolledClasses = orEmpty(byUser[u.ID])
	}
	return nil
}
