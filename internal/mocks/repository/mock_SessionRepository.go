package mocks

import (
	"context"

	entity "circle/internal/domain/entity"

	mock "github.com/stretchr/testify/mock"

	uuid "github.com/google/uuid"
)

// MockSessionRepository is a mock type for the SessionRepository type
type MockSessionRepository struct {
	mock.Mock
}

type MockSessionRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockSessionRepository) EXPECT() *MockSessionRepository_Expecter {
	return &MockSessionRepository_Expecter{mock: &_m.Mock}
}

// Create provides a mock function with given fields: ctx, session
func (_m *MockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	ret := _m.Called(ctx, session)

	if len(ret) == 0 {
		panic("no return value specified for Create")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *entity.Session) error); ok {
		r0 = rf(ctx, session)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockSessionRepository_Create_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Create'
type MockSessionRepository_Create_Call struct {
	*mock.Call
}

// Create is a helper method to define mock.On call
//   - ctx context.Context
//   - session *entity.Session
func (_e *MockSessionRepository_Expecter) Create(ctx interface{}, session interface{}) *MockSessionRepository_Create_Call {
	return &MockSessionRepository_Create_Call{Call: _e.mock.On("Create", ctx, session)}
}

func (_c *MockSessionRepository_Create_Call) Run(run func(ctx context.Context, session *entity.Session)) *MockSessionRepository_Create_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*entity.Session))
	})
	return _c
}

func (_c *MockSessionRepository_Create_Call) Return(_a0 error) *MockSessionRepository_Create_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockSessionRepository_Create_Call) RunAndReturn(run func(context.Context, *entity.Session) error) *MockSessionRepository_Create_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteByAccount provides a mock function with given fields: ctx, accountID
func (_m *MockSessionRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) error {
	ret := _m.Called(ctx, accountID)

	if len(ret) == 0 {
		panic("no return value specified for DeleteByAccount")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		r0 = rf(ctx, accountID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockSessionRepository_DeleteByAccount_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteByAccount'
type MockSessionRepository_DeleteByAccount_Call struct {
	*mock.Call
}

// DeleteByAccount is a helper method to define mock.On call
//   - ctx context.Context
//   - accountID uuid.UUID
func (_e *MockSessionRepository_Expecter) DeleteByAccount(ctx interface{}, accountID interface{}) *MockSessionRepository_DeleteByAccount_Call {
	return &MockSessionRepository_DeleteByAccount_Call{Call: _e.mock.On("DeleteByAccount", ctx, accountID)}
}

func (_c *MockSessionRepository_DeleteByAccount_Call) Run(run func(ctx context.Context, accountID uuid.UUID)) *MockSessionRepository_DeleteByAccount_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockSessionRepository_DeleteByAccount_Call) Return(_a0 error) *MockSessionRepository_DeleteByAccount_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockSessionRepository_DeleteByAccount_Call) RunAndReturn(run func(context.Context, uuid.UUID) error) *MockSessionRepository_DeleteByAccount_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteByHash provides a mock function with given fields: ctx, accountID, tokenHash
func (_m *MockSessionRepository) DeleteByHash(ctx context.Context, accountID uuid.UUID, tokenHash string) error {
	ret := _m.Called(ctx, accountID, tokenHash)

	if len(ret) == 0 {
		panic("no return value specified for DeleteByHash")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string) error); ok {
		r0 = rf(ctx, accountID, tokenHash)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockSessionRepository_DeleteByHash_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteByHash'
type MockSessionRepository_DeleteByHash_Call struct {
	*mock.Call
}

// DeleteByHash is a helper method to define mock.On call
//   - ctx context.Context
//   - accountID uuid.UUID
//   - tokenHash string
func (_e *MockSessionRepository_Expecter) DeleteByHash(ctx interface{}, accountID interface{}, tokenHash interface{}) *MockSessionRepository_DeleteByHash_Call {
	return &MockSessionRepository_DeleteByHash_Call{Call: _e.mock.On("DeleteByHash", ctx, accountID, tokenHash)}
}

func (_c *MockSessionRepository_DeleteByHash_Call) Run(run func(ctx context.Context, accountID uuid.UUID, tokenHash string)) *MockSessionRepository_DeleteByHash_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(string))
	})
	return _c
}

func (_c *MockSessionRepository_DeleteByHash_Call) Return(_a0 error) *MockSessionRepository_DeleteByHash_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockSessionRepository_DeleteByHash_Call) RunAndReturn(run func(context.Context, uuid.UUID, string) error) *MockSessionRepository_DeleteByHash_Call {
	_c.Call.Return(run)
	return _c
}

// Exists provides a mock function with given fields: ctx, accountID, tokenHash
func (_m *MockSessionRepository) Exists(ctx context.Context, accountID uuid.UUID, tokenHash string) (bool, error) {
	ret := _m.Called(ctx, accountID, tokenHash)

	if len(ret) == 0 {
		panic("no return value specified for Exists")
	}

	var r0 bool
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string) (bool, error)); ok {
		return rf(ctx, accountID, tokenHash)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string) bool); ok {
		r0 = rf(ctx, accountID, tokenHash)
	} else {
		r0 = ret.Get(0).(bool)
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, string) error); ok {
		r1 = rf(ctx, accountID, tokenHash)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockSessionRepository_Exists_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Exists'
type MockSessionRepository_Exists_Call struct {
	*mock.Call
}

// Exists is a helper method to define mock.On call
//   - ctx context.Context
//   - accountID uuid.UUID
//   - tokenHash string
func (_e *MockSessionRepository_Expecter) Exists(ctx interface{}, accountID interface{}, tokenHash interface{}) *MockSessionRepository_Exists_Call {
	return &MockSessionRepository_Exists_Call{Call: _e.mock.On("Exists", ctx, accountID, tokenHash)}
}

func (_c *MockSessionRepository_Exists_Call) Run(run func(ctx context.Context, accountID uuid.UUID, tokenHash string)) *MockSessionRepository_Exists_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(string))
	})
	return _c
}

func (_c *MockSessionRepository_Exists_Call) Return(_a0 bool, _a1 error) *MockSessionRepository_Exists_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockSessionRepository_Exists_Call) RunAndReturn(run func(context.Context, uuid.UUID, string) (bool, error)) *MockSessionRepository_Exists_Call {
	_c.Call.Return(run)
	return _c
}

// ListByAccount provides a mock function with given fields: ctx, accountID
func (_m *MockSessionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Session, error) {
	ret := _m.Called(ctx, accountID)

	if len(ret) == 0 {
		panic("no return value specified for ListByAccount")
	}

	var r0 []*entity.Session
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) ([]*entity.Session, error)); ok {
		return rf(ctx, accountID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) []*entity.Session); ok {
		r0 = rf(ctx, accountID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*entity.Session)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, accountID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockSessionRepository_ListByAccount_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ListByAccount'
type MockSessionRepository_ListByAccount_Call struct {
	*mock.Call
}

// ListByAccount is a helper method to define mock.On call
//   - ctx context.Context
//   - accountID uuid.UUID
func (_e *MockSessionRepository_Expecter) ListByAccount(ctx interface{}, accountID interface{}) *MockSessionRepository_ListByAccount_Call {
	return &MockSessionRepository_ListByAccount_Call{Call: _e.mock.On("ListByAccount", ctx, accountID)}
}

func (_c *MockSessionRepository_ListByAccount_Call) Run(run func(ctx context.Context, accountID uuid.UUID)) *MockSessionRepository_ListByAccount_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockSessionRepository_ListByAccount_Call) Return(_a0 []*entity.Session, _a1 error) *MockSessionRepository_ListByAccount_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockSessionRepository_ListByAccount_Call) RunAndReturn(run func(context.Context, uuid.UUID) ([]*entity.Session, error)) *MockSessionRepository_ListByAccount_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockSessionRepository creates a new instance of MockSessionRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockSessionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionRepository {
	mock := &MockSessionRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
