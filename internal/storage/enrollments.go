package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Enroll записывает пользователя на класс и сообщает, появилась ли новая запись.
// Повторная запись ничего не меняет. Если класса или пользователя нет,
// возвращает *ReferenceError с именем нарушенного ключа.
func (s *Storage) Enroll(ctx context.Context, userID, classID string) (bool, error) {
	const op = "storage.Enroll"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `
		INSERT INTO enrollments (user_id, class_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, class_id) DO NOTHING`
	res, err := s.DB.ExecContext(ctx, query, userID, classID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}

type enrollmentRow struct {
	OwnerID string `db:"owner_id"`
	RefID   string `db:"ref_id"`
}

// enrollmentIndex группирует связи по ownerCol: для каждого ключа из owners
// возвращает значения refCol в порядке записи.
func (s *Storage) enrollmentIndex(ctx context.Context, ownerCol, refCol string, owners []string) (map[string][]string, error) {
	const op = "storage.enrollmentIndex"

	index := make(map[string][]string, len(owners))
	if len(owners) == 0 {
		return index, nil
	}

	query, args, err := sqlx.In(
		`SELECT `+ownerCol+` AS owner_id, `+refCol+` AS ref_id FROM enrollments
		WHERE `+ownerCol+` IN (?)
		ORDER BY enrolled_at, `+refCol, owners)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var rows []enrollmentRow
	if err = s.DB.SelectContext(ctx, &rows, s.DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	for _, r := range rows {
		index[r.OwnerID] = append(index[r.OwnerID], r.RefID)
	}
	return index, nil
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
