package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint64) (*User, error)
	// GetActiveByEmail returns only users with Active=true.
	GetActiveByEmail(ctx context.Context, email string) (*User, error)
	// GetByEmailOrStudentID matches either column; used by registration
	// activation where the account is pre-provisioned.
	GetByEmailOrStudentID(ctx context.Context, email, studentID string) (*User, error)
	Save(ctx context.Context, u *User) error
}
