package service

import (
	"context"
	"fmt"

	"bazaar/internal/domain"
	"bazaar/internal/repository"
)

// UserService хранит локальные записи пользователей. Аутентификацией и
// выпуском токенов занимается внешний identity-сервис; здесь только данные,
// нужные для проверки владения и поиска по имени.
type UserService struct {
	store repository.Store
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

// CreateUser регистрирует пользователя, заведённого identity-сервисом
func (s *UserService) CreateUser(ctx context.Context, username, firstName, lastName string) (*domain.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	u := domain.User{Username: username, FirstName: firstName, LastName: lastName}
	if err := s.store.CreateUser(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser возвращает пользователя по id
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.store.GetUser(ctx, id)
}

// UpdateProfile обновляет профиль текущего пользователя
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, username, firstName, lastName string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	u.Username = username
	u.FirstName = firstName
	u.LastName = lastName
	return s.store.UpdateUser(ctx, u)
}
