package mocks

import (
	repository "circle/internal/domain/repository"

	mock "github.com/stretchr/testify/mock"
)

// MockRepositoryFactory is a mock type for the RepositoryFactory type
type MockRepositoryFactory struct {
	mock.Mock
}

type MockRepositoryFactory_Expecter struct {
	mock *mock.Mock
}

func (_m *MockRepositoryFactory) EXPECT() *MockRepositoryFactory_Expecter {
	return &MockRepositoryFactory_Expecter{mock: &_m.Mock}
}

// AccountRepo provides a mock function with no fields
func (_m *MockRepositoryFactory) AccountRepo() repository.AccountRepository {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for AccountRepo")
	}

	var r0 repository.AccountRepository
	if rf, ok := ret.Get(0).(func() repository.AccountRepository); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(repository.AccountRepository)
		}
	}

	return r0
}

// MockRepositoryFactory_AccountRepo_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'AccountRepo'
type MockRepositoryFactory_AccountRepo_Call struct {
	*mock.Call
}

// AccountRepo is a helper method to define mock.On call
func (_e *MockRepositoryFactory_Expecter) AccountRepo() *MockRepositoryFactory_AccountRepo_Call {
	return &MockRepositoryFactory_AccountRepo_Call{Call: _e.mock.On("AccountRepo")}
}

func (_c *MockRepositoryFactory_AccountRepo_Call) Run(run func()) *MockRepositoryFactory_AccountRepo_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockRepositoryFactory_AccountRepo_Call) Return(_a0 repository.AccountRepository) *MockRepositoryFactory_AccountRepo_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockRepositoryFactory_AccountRepo_Call) RunAndReturn(run func() repository.AccountRepository) *MockRepositoryFactory_AccountRepo_Call {
	_c.Call.Return(run)
	return _c
}

// FollowRepo provides a mock function with no fields
func (_m *MockRepositoryFactory) FollowRepo() repository.FollowRepository {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for FollowRepo")
	}

	var r0 repository.FollowRepository
	if rf, ok := ret.Get(0).(func() repository.FollowRepository); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(repository.FollowRepository)
		}
	}

	return r0
}

// MockRepositoryFactory_FollowRepo_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FollowRepo'
type MockRepositoryFactory_FollowRepo_Call struct {
	*mock.Call
}

// FollowRepo is a helper method to define mock.On call
func (_e *MockRepositoryFactory_Expecter) FollowRepo() *MockRepositoryFactory_FollowRepo_Call {
	return &MockRepositoryFactory_FollowRepo_Call{Call: _e.mock.On("FollowRepo")}
}

func (_c *MockRepositoryFactory_FollowRepo_Call) Run(run func()) *MockRepositoryFactory_FollowRepo_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockRepositoryFactory_FollowRepo_Call) Return(_a0 repository.FollowRepository) *MockRepositoryFactory_FollowRepo_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockRepositoryFactory_FollowRepo_Call) RunAndReturn(run func() repository.FollowRepository) *MockRepositoryFactory_FollowRepo_Call {
	_c.Call.Return(run)
	return _c
}

// PostRepo provides a mock function with no fields
func (_m *MockRepositoryFactory) PostRepo() repository.PostRepository {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for PostRepo")
	}

	var r0 repository.PostRepository
	if rf, ok := ret.Get(0).(func() repository.PostRepository); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(repository.PostRepository)
		}
	}

	return r0
}

// MockRepositoryFactory_PostRepo_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'PostRepo'
type MockRepositoryFactory_PostRepo_Call struct {
	*mock.Call
}

// PostRepo is a helper method to define mock.On call
func (_e *MockRepositoryFactory_Expecter) PostRepo() *MockRepositoryFactory_PostRepo_Call {
	return &MockRepositoryFactory_PostRepo_Call{Call: _e.mock.On("PostRepo")}
}

func (_c *MockRepositoryFactory_PostRepo_Call) Run(run func()) *MockRepositoryFactory_PostRepo_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockRepositoryFactory_PostRepo_Call) Return(_a0 repository.PostRepository) *MockRepositoryFactory_PostRepo_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockRepositoryFactory_PostRepo_Call) RunAndReturn(run func() repository.PostRepository) *MockRepositoryFactory_PostRepo_Call {
	_c.Call.Return(run)
	return _c
}

// SessionRepo provides a mock function with no fields
func (_m *MockRepositoryFactory) SessionRepo() repository.SessionRepository {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for SessionRepo")
	}

	var r0 repository.SessionRepository
	if rf, ok := ret.Get(0).(func() repository.SessionRepository); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(repository.SessionRepository)
		}
	}

	return r0
}

// MockRepositoryFactory_SessionRepo_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SessionRepo'
type MockRepositoryFactory_SessionRepo_Call struct {
	*mock.Call
}

// SessionRepo is a helper method to define mock.On call
func (_e *MockRepositoryFactory_Expecter) SessionRepo() *MockRepositoryFactory_SessionRepo_Call {
	return &MockRepositoryFactory_SessionRepo_Call{Call: _e.mock.On("SessionRepo")}
}

func (_c *MockRepositoryFactory_SessionRepo_Call) Run(run func()) *MockRepositoryFactory_SessionRepo_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockRepositoryFactory_SessionRepo_Call) Return(_a0 repository.SessionRepository) *MockRepositoryFactory_SessionRepo_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockRepositoryFactory_SessionRepo_Call) RunAndReturn(run func() repository.SessionRepository) *MockRepositoryFactory_SessionRepo_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockRepositoryFactory creates a new instance of MockRepositoryFactory. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockRepositoryFactory(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepositoryFactory {
	mock := &MockRepositoryFactory{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
