package service

import "errors"

// Ошибки уровня бизнес-логики; транспорт отображает их в статусы HTTP
var (
	ErrValidation   = errors.New("validation error")
	ErrInvalidState = errors.New("invalid state")
)
