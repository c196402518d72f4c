package service

import (
	"context"

	"jollof-hub/storefront-svc/internal/domain"
)

type UserService struct {
	users  UserRepository
	orders OrderRepository
}

func NewUserService(users UserRepository, orders OrderRepository) *UserService {
	return &UserService{users: users, orders: orders}
}

func (s *UserService) List(ctx context.Context) ([]domain.UserSummary, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.UserDetail, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, storeErr("get user", err)
	}
	orders, err := s.orders.ListOrders(ctx, id)
	if err != nil {
		return nil, storeErr("list user orders", err)
	}
	return &domain.UserDetail{User: *user, Orders: orders}, nil
}
