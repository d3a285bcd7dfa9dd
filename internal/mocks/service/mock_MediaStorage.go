package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"
)

// MockMediaStorage is a mock type for the MediaStorage type
type MockMediaStorage struct {
	mock.Mock
}

type MockMediaStorage_Expecter struct {
	mock *mock.Mock
}

func (_m *MockMediaStorage) EXPECT() *MockMediaStorage_Expecter {
	return &MockMediaStorage_Expecter{mock: &_m.Mock}
}

// Delete provides a mock function with given fields: ctx, key
func (_m *MockMediaStorage) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)

	if len(ret) == 0 {
		panic("no return value specified for Delete")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = rf(ctx, key)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockMediaStorage_Delete_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Delete'
type MockMediaStorage_Delete_Call struct {
	*mock.Call
}

// Delete is a helper method to define mock.On call
//   - ctx context.Context
//   - key string
func (_e *MockMediaStorage_Expecter) Delete(ctx interface{}, key interface{}) *MockMediaStorage_Delete_Call {
	return &MockMediaStorage_Delete_Call{Call: _e.mock.On("Delete", ctx, key)}
}

func (_c *MockMediaStorage_Delete_Call) Run(run func(ctx context.Context, key string)) *MockMediaStorage_Delete_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

func (_c *MockMediaStorage_Delete_Call) Return(_a0 error) *MockMediaStorage_Delete_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockMediaStorage_Delete_Call) RunAndReturn(run func(context.Context, string) error) *MockMediaStorage_Delete_Call {
	_c.Call.Return(run)
	return _c
}

// Get provides a mock function with given fields: ctx, key
func (_m *MockMediaStorage) Get(ctx context.Context, key string) ([]byte, string, error) {
	ret := _m.Called(ctx, key)

	if len(ret) == 0 {
		panic("no return value specified for Get")
	}

	var r0 []byte
	var r1 string
	var r2 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]byte, string, error)); ok {
		return rf(ctx, key)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []byte); ok {
		r0 = rf(ctx, key)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]byte)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) string); ok {
		r1 = rf(ctx, key)
	} else {
		r1 = ret.Get(1).(string)
	}

	if rf, ok := ret.Get(2).(func(context.Context, string) error); ok {
		r2 = rf(ctx, key)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// MockMediaStorage_Get_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Get'
type MockMediaStorage_Get_Call struct {
	*mock.Call
}

// Get is a helper method to define mock.On call
//   - ctx context.Context
//   - key string
func (_e *MockMediaStorage_Expecter) Get(ctx interface{}, key interface{}) *MockMediaStorage_Get_Call {
	return &MockMediaStorage_Get_Call{Call: _e.mock.On("Get", ctx, key)}
}

func (_c *MockMediaStorage_Get_Call) Run(run func(ctx context.Context, key string)) *MockMediaStorage_Get_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

func (_c *MockMediaStorage_Get_Call) Return(_a0 []byte, _a1 string, _a2 error) *MockMediaStorage_Get_Call {
	_c.Call.Return(_a0, _a1, _a2)
	return _c
}

func (_c *MockMediaStorage_Get_Call) RunAndReturn(run func(context.Context, string) ([]byte, string, error)) *MockMediaStorage_Get_Call {
	_c.Call.Return(run)
	return _c
}

// Put provides a mock function with given fields: ctx, key, data, contentType
func (_m *MockMediaStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	ret := _m.Called(ctx, key, data, contentType)

	if len(ret) == 0 {
		panic("no return value specified for Put")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, []byte, string) error); ok {
		r0 = rf(ctx, key, data, contentType)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockMediaStorage_Put_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Put'
type MockMediaStorage_Put_Call struct {
	*mock.Call
}

// Put is a helper method to define mock.On call
//   - ctx context.Context
//   - key string
//   - data []byte
//   - contentType string
func (_e *MockMediaStorage_Expecter) Put(ctx interface{}, key interface{}, data interface{}, contentType interface{}) *MockMediaStorage_Put_Call {
	return &MockMediaStorage_Put_Call{Call: _e.mock.On("Put", ctx, key, data, contentType)}
}

func (_c *MockMediaStorage_Put_Call) Run(run func(ctx context.Context, key string, data []byte, contentType string)) *MockMediaStorage_Put_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].([]byte), args[3].(string))
	})
	return _c
}

func (_c *MockMediaStorage_Put_Call) Return(_a0 error) *MockMediaStorage_Put_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockMediaStorage_Put_Call) RunAndReturn(run func(context.Context, string, []byte, string) error) *MockMediaStorage_Put_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockMediaStorage creates a new instance of MockMediaStorage. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockMediaStorage(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMediaStorage {
	mock := &MockMediaStorage{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
