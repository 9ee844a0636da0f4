package storage

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound запись не найдена.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate нарушено ограничение уникальности.
	ErrDuplicate = errors.New("duplicate key")
	// ErrReference ссылка на несуществующую запись.
	ErrReference = errors.New("foreign key violation")
)

// Внешние ключи таблицы enrollments.
const (
	EnrollmentUserFK  = "enrollments_user_id_fkey"
	EnrollmentClassFK = "enrollments_class_id_fkey"
)

// ReferenceError нарушение внешнего ключа Constraint. Совпадает с ErrReference.
type ReferenceError struct {
	Constraint string
	Err        error
}

func (e *ReferenceError) Error() string {
	return ErrReference.Error() + ": " + e.Constraint
}

func (e *ReferenceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrReference}
	}
	return []error{ErrReference, e.Err}
}

// mapErr переводит ошибки драйвера в ошибки пакета, сохраняя исходную причину.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) || errors.Is(err, ErrReference) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Join(ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return errors.Join(ErrDuplicate, err)
		case pgerrcode.ForeignKeyViolation:
			return &ReferenceError{Constraint: pgErr.ConstraintName, Err: err}
		}
	}
	return err
}
