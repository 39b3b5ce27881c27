package mysql

import (
	"context"

	userDomain "github.com/JohnClaps/heslgbmw-ltrs/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Save(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *UserRepository) GetActiveByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("email = ? AND active = ?", email, true).First(&out)
	return &out, res.Error
}

// GetByEmailOrStudentID matches on either identifier. Rows without a
// student id store an empty string there, so the student-id predicate is
// skipped when the input is empty; otherwise an empty input would match
// the first staff account.
func (r *UserRepository) GetByEmailOrStudentID(ctx context.Context, email, studentID string) (*userDomain.User, error) {
	q := r.db.WithContext(ctx)
	if studentID == "" {
		q = q.Where("email = ?", email)
	} else {
		q = q.Where("email = ? OR student_id = ?", email, studentID)
	}
	var out userDomain.User
	res := q.First(&out)
	return &out, res.Error
}
