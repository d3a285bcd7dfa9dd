package mocks

import (
	"context"

	entity "circle/internal/domain/entity"

	mock "github.com/stretchr/testify/mock"

	uuid "github.com/google/uuid"
)

// MockPostRepository is a mock type for the PostRepository type
type MockPostRepository struct {
	mock.Mock
}

type MockPostRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockPostRepository) EXPECT() *MockPostRepository_Expecter {
	return &MockPostRepository_Expecter{mock: &_m.Mock}
}

// AddComment provides a mock function with given fields: ctx, comment
func (_m *MockPostRepository) AddComment(ctx context.Context, comment *entity.Comment) error {
	ret := _m.Called(ctx, comment)

	if len(ret) == 0 {
		panic("no return value specified for AddComment")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *entity.Comment) error); ok {
		r0 = rf(ctx, comment)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockPostRepository_AddComment_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'AddComment'
type MockPostRepository_AddComment_Call struct {
	*mock.Call
}

// AddComment is a helper method to define mock.On call
//   - ctx context.Context
//   - comment *entity.Comment
func (_e *MockPostRepository_Expecter) AddComment(ctx interface{}, comment interface{}) *MockPostRepository_AddComment_Call {
	return &MockPostRepository_AddComment_Call{Call: _e.mock.On("AddComment", ctx, comment)}
}

func (_c *MockPostRepository_AddComment_Call) Run(run func(ctx context.Context, comment *entity.Comment)) *MockPostRepository_AddComment_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*entity.Comment))
	})
	return _c
}

func (_c *MockPostRepository_AddComment_Call) Return(_a0 error) *MockPostRepository_AddComment_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockPostRepository_AddComment_Call) RunAndReturn(run func(context.Context, *entity.Comment) error) *MockPostRepository_AddComment_Call {
	_c.Call.Return(run)
	return _c
}

// AddLike provides a mock function with given fields: ctx, postID, accountID
func (_m *MockPostRepository) AddLike(ctx context.Context, postID uuid.UUID, accountID uuid.UUID) (bool, error) {
	ret := _m.Called(ctx, postID, accountID)

	if len(ret) == 0 {
		panic("no return value specified for AddLike")
	}

	var r0 bool
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) (bool, error)); ok {
		return rf(ctx, postID, accountID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) bool); ok {
		r0 = rf(ctx, postID, accountID)
	} else {
		r0 = ret.Get(0).(bool)
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, uuid.UUID) error); ok {
		r1 = rf(ctx, postID, accountID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockPostRepository_AddLike_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'AddLike'
type MockPostRepository_AddLike_Call struct {
	*mock.Call
}

// AddLike is a helper method to define mock.On call
//   - ctx context.Context
//   - postID uuid.UUID
//   - accountID uuid.UUID
func (_e *MockPostRepository_Expecter) AddLike(ctx interface{}, postID interface{}, accountID interface{}) *MockPostRepository_AddLike_Call {
	return &MockPostRepository_AddLike_Call{Call: _e.mock.On("AddLike", ctx, postID, accountID)}
}

func (_c *MockPostRepository_AddLike_Call) Run(run func(ctx context.Context, postID uuid.UUID, accountID uuid.UUID)) *MockPostRepository_AddLike_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(uuid.UUID))
	})
	return _c
}

func (_c *MockPostRepository_AddLike_Call) Return(_a0 bool, _a1 error) *MockPostRepository_AddLike_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockPostRepository_AddLike_Call) RunAndReturn(run func(context.Context, uuid.UUID, uuid.UUID) (bool, error)) *MockPostRepository_AddLike_Call {
	_c.Call.Return(run)
	return _c
}

// Create provides a mock function with given fields: ctx, post
func (_m *MockPostRepository) Create(ctx context.Context, post *entity.Post) error {
	ret := _m.Called(ctx, post)

	if len(ret) == 0 {
		panic("no return value specified for Create")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *entity.Post) error); ok {
		r0 = rf(ctx, post)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockPostRepository_Create_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Create'
type MockPostRepository_Create_Call struct {
	*mock.Call
}

// Create is a helper method to define mock.On call
//   - ctx context.Context
//   - post *entity.Post
func (_e *MockPostRepository_Expecter) Create(ctx interface{}, post interface{}) *MockPostRepository_Create_Call {
	return &MockPostRepository_Create_Call{Call: _e.mock.On("Create", ctx, post)}
}

func (_c *MockPostRepository_Create_Call) Run(run func(ctx context.Context, post *entity.Post)) *MockPostRepository_Create_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*entity.Post))
	})
	return _c
}

func (_c *MockPostRepository_Create_Call) Return(_a0 error) *MockPostRepository_Create_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockPostRepository_Create_Call) RunAndReturn(run func(context.Context, *entity.Post) error) *MockPostRepository_Create_Call {
	_c.Call.Return(run)
	return _c
}

// Delete provides a mock function with given fields: ctx, id
func (_m *MockPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for Delete")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockPostRepository_Delete_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Delete'
type MockPostRepository_Delete_Call struct {
	*mock.Call
}

// Delete is a helper method to define mock.On call
//   - ctx context.Context
//   - id uuid.UUID
func (_e *MockPostRepository_Expecter) Delete(ctx interface{}, id interface{}) *MockPostRepository_Delete_Call {
	return &MockPostRepository_Delete_Call{Call: _e.mock.On("Delete", ctx, id)}
}

func (_c *MockPostRepository_Delete_Call) Run(run func(ctx context.Context, id uuid.UUID)) *MockPostRepository_Delete_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockPostRepository_Delete_Call) Return(_a0 error) *MockPostRepository_Delete_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockPostRepository_Delete_Call) RunAndReturn(run func(context.Context, uuid.UUID) error) *MockPostRepository_Delete_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteByOwner provides a mock function with given fields: ctx, ownerID
func (_m *MockPostRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	ret := _m.Called(ctx, ownerID)

	if len(ret) == 0 {
		panic("no return value specified for DeleteByOwner")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		r0 = rf(ctx, ownerID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockPostRepository_DeleteByOwner_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteByOwner'
type MockPostRepository_DeleteByOwner_Call struct {
	*mock.Call
}

// DeleteByOwner is a helper method to define mock.On call
//   - ctx context.Context
//   - ownerID uuid.UUID
func (_e *MockPostRepository_Expecter) DeleteByOwner(ctx interface{}, ownerID interface{}) *MockPostRepository_DeleteByOwner_Call {
	return &MockPostRepository_DeleteByOwner_Call{Call: _e.mock.On("DeleteByOwner", ctx, ownerID)}
}

func (_c *MockPostRepository_DeleteByOwner_Call) Run(run func(ctx context.Context, ownerID uuid.UUID)) *MockPostRepository_DeleteByOwner_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockPostRepository_DeleteByOwner_Call) Return(_a0 error) *MockPostRepository_DeleteByOwner_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockPostRepository_DeleteByOwner_Call) RunAndReturn(run func(context.Context, uuid.UUID) error) *MockPostRepository_DeleteByOwner_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteCommentsByOwner provides a mock function with given fields: ctx, ownerID
func (_m *MockPostRepository) DeleteCommentsByOwner(ctx context.Context, ownerID uuid.UUID) error {
	ret := _m.Called(ctx, ownerID)

	if len(ret) == 0 {
		panic("no return value specified for DeleteCommentsByOwner")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		r0 = rf(ctx, ownerID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockPostRepository_DeleteCommentsByOwner_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteCommentsByOwner'
type MockPostRepository_DeleteCommentsByOwner_Call struct {
	*mock.Call
}

// DeleteCommentsByOwner is a helper method to define mock.On call
//   - ctx context.Context
//   - ownerID uuid.UUID
func (_e *MockPostRepository_Expecter) DeleteCommentsByOwner(ctx interface{}, ownerID interface{}) *MockPostRepository_DeleteCommentsByOwner_Call {
	return &MockPostRepository_DeleteCommentsByOwner_Call{Call: _e.mock.On("DeleteCommentsByOwner", ctx, ownerID)}
}

func (_c *MockPostRepository_DeleteCommentsByOwner_Call) Run(run func(ctx context.Context, ownerID uuid.UUID)) *MockPostRepository_DeleteCommentsByOwner_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockPostRepository_DeleteCommentsByOwner_Call) Return(_a0 error) *MockPostRepository_DeleteCommentsByOwner_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockPostRepository_DeleteCommentsByOwner_Call) RunAndReturn(run func(context.Context, uuid.UUID) error) *MockPostRepository_DeleteCommentsByOwner_Call {
	_c.Call.Return(run)
	return _c
}

// DeleteLikesByAccount provides a mock function with given fields: ctx, accountID
func (_m *MockPostRepository) DeleteLikesByAccount(ctx context.Context, accountID uuid.UUID) error {
	ret := _m.Called(ctx, accountID)

	if len(ret) == 0 {
		panic("no return value specified for DeleteLikesByAccount")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) error); ok {
		r0 = rf(ctx, accountID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockPostRepository_DeleteLikesByAccount_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteLikesByAccount'
type MockPostRepository_DeleteLikesByAccount_Call struct {
	*mock.Call
}

// DeleteLikesByAccount is a helper method to define mock.On call
//   - ctx context.Context
//   - accountID uuid.UUID
func (_e *MockPostRepository_Expecter) DeleteLikesByAccount(ctx interface{}, accountID interface{}) *MockPostRepository_DeleteLikesByAccount_Call {
	return &MockPostRepository_DeleteLikesByAccount_Call{Call: _e.mock.On("DeleteLikesByAccount", ctx, accountID)}
}

func (_c *MockPostRepository_DeleteLikesByAccount_Call) Run(run func(ctx context.Context, accountID uuid.UUID)) *MockPostRepository_DeleteLikesByAccount_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockPostRepository_DeleteLikesByAccount_Call) Return(_a0 error) *MockPostRepository_DeleteLikesByAccount_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockPostRepository_DeleteLikesByAccount_Call) RunAndReturn(run func(context.Context, uuid.UUID) error) *MockPostRepository_DeleteLikesByAccount_Call {
	_c.Call.Return(run)
	return _c
}

// FindByID provides a mock function with given fields: ctx, id
func (_m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for FindByID")
	}

	var r0 *entity.Post
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) (*entity.Post, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) *entity.Post); ok {
		r0 = rf(ctx, id)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*entity.Post)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockPostRepository_FindByID_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindByID'
type MockPostRepository_FindByID_Call struct {
	*mock.Call
}

// FindByID is a helper method to define mock.On call
//   - ctx context.Context
//   - id uuid.UUID
func (_e *MockPostRepository_Expecter) FindByID(ctx interface{}, id interface{}) *MockPostRepository_FindByID_Call {
	return &MockPostRepository_FindByID_Call{Call: _e.mock.On("FindByID", ctx, id)}
}

func (_c *MockPostRepository_FindByID_Call) Run(run func(ctx context.Context, id uuid.UUID)) *MockPostRepository_FindByID_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockPostRepository_FindByID_Call) Return(_a0 *entity.Post, _a1 error) *MockPostRepository_FindByID_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockPostRepository_FindByID_Call) RunAndReturn(run func(context.Context, uuid.UUID) (*entity.Post, error)) *MockPostRepository_FindByID_Call {
	_c.Call.Return(run)
	return _c
}

// FindByIDAndOwner provides a mock function with given fields: ctx, id, ownerID
func (_m *MockPostRepository) FindByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) (*entity.Post, error) {
	ret := _m.Called(ctx, id, ownerID)

	if len(ret) == 0 {
		panic("no return value specified for FindByIDAndOwner")
	}

	var r0 *entity.Post
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) (*entity.Post, error)); ok {
		return rf(ctx, id, ownerID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) *entity.Post); ok {
		r0 = rf(ctx, id, ownerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*entity.Post)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, uuid.UUID) error); ok {
		r1 = rf(ctx, id, ownerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockPostRepository_FindByIDAndOwner_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindByIDAndOwner'
type MockPostRepository_FindByIDAndOwner_Call struct {
	*mock.Call
}

// FindByIDAndOwner is a helper method to define mock.On call
//   - ctx context.Context
//   - id uuid.UUID
//   - ownerID uuid.UUID
func (_e *MockPostRepository_Expecter) FindByIDAndOwner(ctx interface{}, id interface{}, ownerID interface{}) *MockPostRepository_FindByIDAndOwner_Call {
	return &MockPostRepository_FindByIDAndOwner_Call{Call: _e.mock.On("FindByIDAndOwner", ctx, id, ownerID)}
}

func (_c *MockPostRepository_FindByIDAndOwner_Call) Run(run func(ctx context.Context, id uuid.UUID, ownerID uuid.UUID)) *MockPostRepository_FindByIDAndOwner_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(uuid.UUID))
	})
	return _c
}

func (_c *MockPostRepository_FindByIDAndOwner_Call) Return(_a0 *entity.Post, _a1 error) *MockPostRepository_FindByIDAndOwner_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockPostRepository_FindByIDAndOwner_Call) RunAndReturn(run func(context.Context, uuid.UUID, uuid.UUID) (*entity.Post, error)) *MockPostRepository_FindByIDAndOwner_Call {
	_c.Call.Return(run)
	return _c
}

// FindByOwner provides a mock function with given fields: ctx, ownerID
func (_m *MockPostRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Post, error) {
	ret := _m.Called(ctx, ownerID)

	if len(ret) == 0 {
		panic("no return value specified for FindByOwner")
	}

	var r0 []*entity.Post
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) ([]*entity.Post, error)); ok {
		return rf(ctx, ownerID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) []*entity.Post); ok {
		r0 = rf(ctx, ownerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*entity.Post)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, ownerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockPostRepository_FindByOwner_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindByOwner'
type MockPostRepository_FindByOwner_Call struct {
	*mock.Call
}

// FindByOwner is a helper method to define mock.On call
//   - ctx context.Context
//   - ownerID uuid.UUID
func (_e *MockPostRepository_Expecter) FindByOwner(ctx interface{}, ownerID interface{}) *MockPostRepository_FindByOwner_Call {
	return &MockPostRepository_FindByOwner_Call{Call: _e.mock.On("FindByOwner", ctx, ownerID)}
}

func (_c *MockPostRepository_FindByOwner_Call) Run(run func(ctx context.Context, ownerID uuid.UUID)) *MockPostRepository_FindByOwner_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockPostRepository_FindByOwner_Call) Return(_a0 []*entity.Post, _a1 error) *MockPostRepository_FindByOwner_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockPostRepository_FindByOwner_Call) RunAndReturn(run func(context.Context, uuid.UUID) ([]*entity.Post, error)) *MockPostRepository_FindByOwner_Call {
	_c.Call.Return(run)
	return _c
}

// FindFeed provides a mock function with given fields: ctx, followerID
func (_m *MockPostRepository) FindFeed(ctx context.Context, followerID uuid.UUID) ([]*entity.Post, error) {
	ret := _m.Called(ctx, followerID)

	if len(ret) == 0 {
		panic("no return value specified for FindFeed")
	}

	var r0 []*entity.Post
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) ([]*entity.Post, error)); ok {
		return rf(ctx, followerID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) []*entity.Post); ok {
		r0 = rf(ctx, followerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*entity.Post)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, followerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockPostRepository_FindFeed_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindFeed'
type MockPostRepository_FindFeed_Call struct {
	*mock.Call
}

// FindFeed is a helper method to define mock.On call
//   - ctx context.Context
//   - followerID uuid.UUID
func (_e *MockPostRepository_Expecter) FindFeed(ctx interface{}, followerID interface{}) *MockPostRepository_FindFeed_Call {
	return &MockPostRepository_FindFeed_Call{Call: _e.mock.On("FindFeed", ctx, followerID)}
}

func (_c *MockPostRepository_FindFeed_Call) Run(run func(ctx context.Context, followerID uuid.UUID)) *MockPostRepository_FindFeed_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockPostRepository_FindFeed_Call) Return(_a0 []*entity.Post, _a1 error) *MockPostRepository_FindFeed_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

func (_c *MockPostRepository_FindFeed_Call) RunAndReturn(run func(context.Context, uuid.UUID) ([]*entity.Post, error)) *MockPostRepository_FindFeed_Call {
	_c.Call.Return(run)
	return _c
}

// RemoveLike provides a mock function with given fields: ctx, postID, accountID
func (_m *MockPostRepository) RemoveLike(ctx context.Context, postID uuid.UUID, accountID uuid.UUID) error {
	ret := _m.Called(ctx, postID, accountID)

	if len(ret) == 0 {
		panic("no return value specified for RemoveLike")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, uuid.UUID) error); ok {
		r0 = rf(ctx, postID, accountID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockPostRepository_RemoveLike_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'RemoveLike'
type MockPostRepository_RemoveLike_Call struct {
	*mock.Call
}

// RemoveLike is a helper method to define mock.On call
//   - ctx context.Context
//   - postID uuid.UUID
//   - accountID uuid.UUID
func (_e *MockPostRepository_Expecter) RemoveLike(ctx interface{}, postID interface{}, accountID interface{}) *MockPostRepository_RemoveLike_Call {
	return &MockPostRepository_RemoveLike_Call{Call: _e.mock.On("RemoveLike", ctx, postID, accountID)}
}

func (_c *MockPostRepository_RemoveLike_Call) Run(run func(ctx context.Context, postID uuid.UUID, accountID uuid.UUID)) *MockPostRepository_RemoveLike_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(uuid.UUID))
	})
	return _c
}

func (_c *MockPostRepository_RemoveLike_Call) Return(_a0 error) *MockPostRepository_RemoveLike_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockPostRepository_RemoveLike_Call) RunAndReturn(run func(context.Context, uuid.UUID, uuid.UUID) error) *MockPostRepository_RemoveLike_Call {
	_c.Call.Return(run)
	return _c
}

// Update provides a mock function with given fields: ctx, post
func (_m *MockPostRepository) Update(ctx context.Context, post *entity.Post) error {
	ret := _m.Called(ctx, post)

	if len(ret) == 0 {
		panic("no return value specified for Update")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *entity.Post) error); ok {
		r0 = rf(ctx, post)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockPostRepository_Update_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Update'
type MockPostRepository_Update_Call struct {
	*mock.Call
}

// Update is a helper method to define mock.On call
//   - ctx context.Context
//   - post *entity.Post
func (_e *MockPostRepository_Expecter) Update(ctx interface{}, post interface{}) *MockPostRepository_Update_Call {
	return &MockPostRepository_Update_Call{Call: _e.mock.On("Update", ctx, post)}
}

func (_c *MockPostRepository_Update_Call) Run(run func(ctx context.Context, post *entity.Post)) *MockPostRepository_Update_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*entity.Post))
	})
	return _c
}

func (_c *MockPostRepository_Update_Call) Return(_a0 error) *MockPostRepository_Update_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockPostRepository_Update_Call) RunAndReturn(run func(context.Context, *entity.Post) error) *MockPostRepository_Update_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockPostRepository creates a new instance of MockPostRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockPostRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPostRepository {
	mock := &MockPostRepository{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
