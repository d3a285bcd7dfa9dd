package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	uuid "github.com/google/uuid"
)

// MockFollowRepository is a mock type for the FollowRepository type
type MockFollowRepository struct {
	mock.Mock
}

type MockFollowRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockFollowRepository) EXPECT() *MockFollowRepository_Expecter {
	return &MockFollowRepository_Expecter{mock: &_m.Mock}
}

// Create provides a mock function with given fields: ctx, followerID, followeeID
func (_m *MockFollowRepository) Create(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error) {
	ret := _m.Called(ctx, followerID, followeeID)

	if len(ret) == 0 {
		panic("no return value specified for Create")
	}

	var r0 bool
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) (bool, error)); ok {
		return rf(ctx, followerID, followeeID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) bool); ok {
		r0 = rf(ctx, followerID, followeeID)
	} else {
		r0 = ret.Get(0).(bool)
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, uuid.UUID) error); ok {
		r1 = rf(ctx, followerID, followeeID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockFollowRepository_Create_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Create'
type MockFollowRepository_Create_Call struct {
	*mock.Call
}

// Create is a helper method to define mock.On call
//   - ctx context.Context
//   - followerID uuid.UUID
//   - followeeID uuid.UUID
func (_e *MockFollowRepository_Expecter) Create(ctx interface{}, followerID interface{}, followeeID interface{}) *MockFollowRepository_Create_Call {
	return &MockFollowRepository_Create_Call{Call: _e.mock.On("Create", ctx, followerID, followeeID)}
}

func (_c *MockFollowRepository_Create_Call) Run(run func(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID)) *MockFollowRepository_Create_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(uuid.UUID))
	})
	return _c
}

func (_c *MockFollowRepository_Create_Call) Return(_a0 bool, _a1 error) *MockFollowRepository_Create_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockFollowRepository_Create_Call) RunAndReturn(run func(context.Context, uuid.UUID, uuid.UUID) (bool, error)) *MockFollowRepository_Create_Call {
	_c.Call.Return(run)
	return _c
}

// Delete provides a mock function with given fields: ctx, followerID, followeeID
func (_m *MockFollowRepository) Delete(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) error {
	ret := _m.Called(ctx, followerID, followeeID)

	if len(ret) == 0 {
		panic("no return value specified for Delete")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) error); ok {
		r0 = rf(ctx, followerID, followeeID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockFollowRepository_Delete_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Delete'
type MockFollowRepository_Delete_Call struct {
	*mock.Call
}

// Delete is a helper method to define mock.On call
//   - ctx context.Context
//   - followerID uuid.UUID
//   - followeeID uuid.UUID
func (_e *MockFollowRepository_Expecter) Delete(ctx interface{}, followerID interface{}, followeeID interface{}) *MockFollowRepository_Delete_Call {
	return &MockFollowRepository_Delete_Call{Call: _e.mock.On("Delete", ctx, followerID, followeeID)}
}

func (_c *MockFollowRepository_Delete_Call) Run(run func(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID)) *MockFollowRepository_Delete_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(uuid.UUID))
	})
	return _c
}

func (_c *MockFollowRepository_Delete_Call) Return(_a0 error) *MockFollowRepository_Delete_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockFollowRepository_Delete_Call) RunAndReturn(run func(context.Context, uuid.UUID, uuid.UUID) error) *MockFollowRepository_Delete_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteByAccount provides a mock function with given fields: ctx, accountID
func (_m *MockFollowRepository) DeleteByAccount(ctx context.Context, accountID uuid.UUID) error {
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

// MockFollowRepository_DeleteByAccount_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteByAccount'
type MockFollowRepository_DeleteByAccount_Call struct {
	*mock.Call
}

// DeleteByAccount is a helper method to define mock.On call
//   - ctx context.Context
//   - accountID uuid.UUID
func (_e *MockFollowRepository_Expecter) DeleteByAccount(ctx interface{}, accountID interface{}) *MockFollowRepository_DeleteByAccount_Call {
	return &MockFollowRepository_DeleteByAccount_Call{Call: _e.mock.On("DeleteByAccount", ctx, accountID)}
}

func (_c *MockFollowRepository_DeleteByAccount_Call) Run(run func(ctx context.Context, accountID uuid.UUID)) *MockFollowRepository_DeleteByAccount_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockFollowRepository_DeleteByAccount_Call) Return(_a0 error) *MockFollowRepository_DeleteByAccount_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockFollowRepository_DeleteByAccount_Call) RunAndReturn(run func(context.Context, uuid.UUID) error) *MockFollowRepository_DeleteByAccount_Call {
	_c.Call.Return(run)
	return _c
}

// FindFollowees provides a mock function with given fields: ctx, followerID
func (_m *MockFollowRepository) FindFollowees(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error) {
	ret := _m.Called(ctx, followerID)

	if len(ret) == 0 {
		panic("no return value specified for FindFollowees")
	}

	var r0 []uuid.UUID
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) ([]uuid.UUID, error)); ok {
		return rf(ctx, followerID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) []uuid.UUID); ok {
		r0 = rf(ctx, followerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]uuid.UUID)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, followerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockFollowRepository_FindFollowees_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindFollowees'
type MockFollowRepository_FindFollowees_Call struct {
	*mock.Call
}

// FindFollowees is a helper method to define mock.On call
//   - ctx context.Context
//   - followerID uuid.UUID
func (_e *MockFollowRepository_Expecter) FindFollowees(ctx interface{}, followerID interface{}) *MockFollowRepository_FindFollowees_Call {
	return &MockFollowRepository_FindFollowees_Call{Call: _e.mock.On("FindFollowees", ctx, followerID)}
}

func (_c *MockFollowRepository_FindFollowees_Call) Run(run func(ctx context.Context, followerID uuid.UUID)) *MockFollowRepository_FindFollowees_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockFollowRepository_FindFollowees_Call) Return(_a0 []uuid.UUID, _a1 error) *MockFollowRepository_FindFollowees_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockFollowRepository_FindFollowees_Call) RunAndReturn(run func(context.Context, uuid.UUID) ([]uuid.UUID, error)) *MockFollowRepository_FindFollowees_Call {
	_c.Call.Return(run)
	return _c
}

// FindFollowers provides a mock function with given fields: ctx, followeeID
func (_m *MockFollowRepository) FindFollowers(ctx context.Context, followeeID uuid.UUID) ([]uuid.UUID, error) {
	ret := _m.Called(ctx, followeeID)

	if len(ret) == 0 {
		panic("no return value specified for FindFollowers")
	}

	var r0 []uuid.UUID
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) ([]uuid.UUID, error)); ok {
		return rf(ctx, followeeID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) []uuid.UUID); ok {
		r0 = rf(ctx, followeeID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]uuid.UUID)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, followeeID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockFollowRepository_FindFollowers_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindFollowers'
type MockFollowRepository_FindFollowers_Call struct {
	*mock.Call
}

// FindFollowers is a helper method to define mock.On call
//   - ctx context.Context
//   - followeeID uuid.UUID
func (_e *MockFollowRepository_Expecter) FindFollowers(ctx interface{}, followeeID interface{}) *MockFollowRepository_FindFollowers_Call {
	return &MockFollowRepository_FindFollowers_Call{Call: _e.mock.On("FindFollowers", ctx, followeeID)}
}

func (_c *MockFollowRepository_FindFollowers_Call) Run(run func(ctx context.Context, followeeID uuid.UUID)) *MockFollowRepository_FindFollowers_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockFollowRepository_FindFollowers_Call) Return(_a0 []uuid.UUID, _a1 error) *MockFollowRepository_FindFollowers_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockFollowRepository_FindFollowers_Call) RunAndReturn(run func(context.Context, uuid.UUID) ([]uuid.UUID, error)) *MockFollowRepository_FindFollowers_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockFollowRepository creates a new instance of MockFollowRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockFollowRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFollowRepository {
	mock := &MockFollowRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
