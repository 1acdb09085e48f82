package apperr

import "fmt"

var (
	// Общие
	ErrNotFound  = fmt.Errorf("запись не найдена")
	ErrForbidden = fmt.Errorf("доступ запрещён")
)

// ValidationError — некорректный пользовательский ввод.
// Всегда восстановима: повторяем запрос того же шага.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StorageError — сбой слоя хранения. Не ретраится, диалог продолжает жить.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
