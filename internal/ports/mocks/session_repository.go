package mocks

import (
	"context"

	"github.com/bnema/scantally/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// MockSessionRepository is a testify mock of ports.SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

type MockSessionRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockSessionRepository) EXPECT() *MockSessionRepository_Expecter {
	return &MockSessionRepository_Expecter{mock: &_m.Mock}
}

func (_m *MockSessionRepository) Load(ctx context.Context) (domain.Session, error) {
	ret := _m.Called(ctx)
	if len(ret) == 0 {
		panic("no return value specified for Load")
	}

	var r0 domain.Session
	if rf, ok := ret.Get(0).(func(context.Context) domain.Session); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(domain.Session)
	}

	return r0, ret.Error(1)
}

type MockSessionRepository_Load_Call struct {
	*mock.Call
}

func (_e *MockSessionRepository_Expecter) Load(ctx interface{}) *MockSessionRepository_Load_Call {
	return &MockSessionRepository_Load_Call{Call: _e.mock.On("Load", ctx)}
}

func (_c *MockSessionRepository_Load_Call) Return(session domain.Session, err error) *MockSessionRepository_Load_Call {
	_c.Call.Return(session, err)
	return _c
}

func (_m *MockSessionRepository) Update(ctx context.Context, fn func(*domain.Session) (bool, error)) error {
	ret := _m.Called(ctx, fn)
	if len(ret) == 0 {
		panic("no return value specified for Update")
	}

	if rf, ok := ret.Get(0).(func(context.Context, func(*domain.Session) (bool, error)) error); ok {
		return rf(ctx, fn)
	}

	return ret.Error(0)
}

type MockSessionRepository_Update_Call struct {
	*mock.Call
}

func (_e *MockSessionRepository_Expecter) Update(ctx interface{}, fn interface{}) *MockSessionRepository_Update_Call {
	return &MockSessionRepository_Update_Call{Call: _e.mock.On("Update", ctx, fn)}
}

func (_c *MockSessionRepository_Update_Call) Return(err error) *MockSessionRepository_Update_Call {
	_c.Call.Return(err)
	return _c
}

func (_c *MockSessionRepository_Update_Call) RunAndReturn(run func(context.Context, func(*domain.Session) (bool, error)) error) *MockSessionRepository_Update_Call {
	_c.Call.Return(run)
	return _c
}

func NewMockSessionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionRepository {
	m := &MockSessionRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
