package usermock

import (
	"context"
	"errors"

	domain "github.com/JohnClaps/heslgbmw-ltrs/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("usermock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                func(ctx context.Context, u *domain.User) error
	GetByIDFn               func(ctx context.Context, id uint64) (*domain.User, error)
	GetActiveByEmailFn      func(ctx context.Context, email string) (*domain.User, error)
	GetByEmailOrStudentIDFn func(ctx context.Context, email, studentID string) (*domain.User, error)
	SaveFn                  func(ctx context.Context, u *domain.User) error
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetActiveByEmailFn != nil {
		return m.GetActiveByEmailFn(ctx, email)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByEmailOrStudentID(ctx context.Context, email, studentID string) (*domain.User, error) {
	if m.GetByEmailOrStudentIDFn != nil {
		return m.GetByEmailOrStudentIDFn(ctx, email, studentID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}
