package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"campus-community-backend/internal/domain"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) UpdateState(ctx context.Context, id string, state domain.UserState) error {
	return m.Called(ctx, id, state).Error(0)
}

func (m *mockUserRepo) UpdateRoles(ctx context.Context, id string, roles domain.RoleSet) error {
	return m.Called(ctx, id, roles).Error(0)
}

func (m *mockUserRepo) ListByState(ctx context.Context, state domain.UserState) ([]domain.User, error) {
	args := m.Called(ctx, state)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

type mockCircleRepo struct{ mock.Mock }

func (m *mockCircleRepo) Create(ctx context.Context, circle *domain.Circle) error {
	return m.Called(ctx, circle).Error(0)
}

func (m *mockCircleRepo) GetByID(ctx context.Context, id string) (*domain.Circle, error) {
	args := m.Called(ctx, id)
	circle, _ := args.Get(0).(*domain.Circle)
	return circle, args.Error(1)
}

func (m *mockCircleRepo) List(ctx context.Context) ([]domain.Circle, error) {
	args := m.Called(ctx)
	circles, _ := args.Get(0).([]domain.Circle)
	return circles, args.Error(1)
}

func (m *mockCircleRepo) Update(ctx context.Context, circle *domain.Circle) error {
	return m.Called(ctx, circle).Error(0)
}

func (m *mockCircleRepo) SetDeleted(ctx context.Context, id string, deleted bool) error {
	return m.Called(ctx, id, deleted).Error(0)
}

type mockFormRepo struct{ mock.Mock }

func (m *mockFormRepo) Create(ctx context.Context, form *domain.Form) error {
	return m.Called(ctx, form).Error(0)
}

func (m *mockFormRepo) GetByID(ctx context.Context, id string) (*domain.Form, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*domain.Form)
	return f, args.Error(1)
}

func (m *mockFormRepo) SetClosed(ctx context.Context, id string, closed bool) error {
	return m.Called(ctx, id, closed).Error(0)
}

func (m *mockFormRepo) CreateReply(ctx context.Context, reply *domain.Reply) error {
	return m.Called(ctx, reply).Error(0)
}

func (m *mockFormRepo) ReplyExists(ctx context.Context, formID, userID string) (bool, error) {
	args := m.Called(ctx, formID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFormRepo) ListReplies(ctx context.Context, formID string) ([]domain.Reply, error) {
	args := m.Called(ctx, formID)
	replies, _ := args.Get(0).([]domain.Reply)
	return replies, args.Error(1)
}

type mockCouncilFeeRepo struct{ mock.Mock }

func (m *mockCouncilFeeRepo) GetByUserID(ctx context.Context, userID string) (*domain.CouncilFee, error) {
	args := m.Called(ctx, userID)
	fee, _ := args.Get(0).(*domain.CouncilFee)
	return fee, args.Error(1)
}
