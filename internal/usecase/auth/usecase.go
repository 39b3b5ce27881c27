package auth

import (
	"context"
	"errors"

	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnknownIdentity: registration only activates accounts the
	// institution or administrator already provisioned.
	ErrUnknownIdentity = errors.New("email or student id not found in system")
)

type Usecase struct {
	users  user.Repository
	tokens *TokenService
}

func NewUsecase(users user.Repository, tokens *TokenService) *Usecase {
	return &Usecase{users: users, tokens: tokens}
}

type UserDTO struct {
	ID              uint64 `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	StudentID       string `json:"student_id,omitempty"`
	InstitutionName string `json:"institution_name,omitempty"`
	EmployerName    string `json:"employer_name,omitempty"`
}

func toDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            string(u.Role),
		StudentID:       u.StudentID,
		InstitutionName: u.InstitutionName,
		EmployerName:    u.EmployerName,
	}
}

// Login verifies the password against the stored bcrypt hash and mints a
// session token. Unknown and inactive users fail identically.
func (u *Usecase) Login(ctx context.Context, email, password string) (string, *UserDTO, error) {
	usr, err := u.users.GetActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, user.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := u.tokens.Mint(usr)
	if err != nil {
		return "", nil, err
	}
	return token, toDTO(usr), nil
}

type RegisterInput struct {
	Email     string `json:"email"`
	StudentID string `json:"student_id"`
	Password  string `json:"password"`
}

// Register activates a pre-provisioned account: sets the password hash and
// flips Active. Identities not already in the system are rejected.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*UserDTO, error) {
	if len(in.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	usr, err := u.users.GetByEmailOrStudentID(ctx, in.Email, in.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, user.ErrNotFound) {
			return nil, ErrUnknownIdentity
		}
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	usr.PasswordHash = string(hash)
	usr.Active = true
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}
	return toDTO(usr), nil
}

// CurrentUser resolves a bearer token to an active user. This is the
// CurrentUserProvider the rest of the service trusts for ownership checks.
func (u *Usecase) CurrentUser(ctx context.Context, token string) (*user.User, error) {
	claims, err := u.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !usr.Active {
		return nil, ErrInvalidToken
	}
	return usr, nil
}
