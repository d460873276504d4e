package db

import "errors"

var (
	// ErrValidation — пустые обязательные поля.
	ErrValidation = errors.New("name and email are required")
	// ErrConstraintViolation — нарушение ограничения уникальности.
	ErrConstraintViolation = errors.New("constraint violation")
)

// StorageError оборачивает любой отказ хранилища.
// Текст ошибки совпадает с исходным сообщением драйвера.
type StorageError struct {
	Op         string
	Err        error
	Constraint bool
}

func (e *StorageError) Error() string {
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrConstraintViolation && e.Constraint
}
