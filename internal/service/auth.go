package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/hostel-complaint-portal/internal/model"
	"github.com/iliyamo/hostel-complaint-portal/internal/repository"
	"github.com/iliyamo/hostel-complaint-portal/internal/utils"
)

// AdminAccount describes the administrator created by BootstrapAdmin.
type AdminAccount struct {
	Name     string
	Email    string
	Password string
	Hostel   string
	RoomNo   string
}

// DefaultAdminAccount returns the fixed bootstrap administrator with the
// given credentials.  The stock credentials (admin@hostel.com / admin123)
// are public knowledge and must be overridden outside development.
func DefaultAdminAccount(email, password string) AdminAccount {
	return AdminAccount{Name: "Admin", Email: email, Password: password, Hostel: "Admin Block", RoomNo: "A001"}
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
	Hostel   string `validate:"required"`
	RoomNo   string `validate:"required"`
}

// AuthService registers users, verifies credentials and bootstraps the
// administrator account.
type AuthService struct {
	users      UserStore
	validate   *validator.Validate
	bcryptCost int
	admin      AdminAccount

	// Now is the clock used for created_at stamps.
	Now func() time.Time
}

func NewAuthService(users UserStore, bcryptCost int, admin AdminAccount) *AuthService {
	return &AuthService{
		users:      users,
		validate:   validator.New(),
		bcryptCost: bcryptCost,
		admin:      admin,
		Now:        func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a student account.  The email is compared and stored in
// lower case.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Hostel = strings.TrimSpace(in.Hostel)
	in.RoomNo = strings.TrimSpace(in.RoomNo)
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	_, err := s.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, ErrDuplicateEmail
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("%w: lookup email: %v", ErrPersistence, err)
	}

	u, err := s.newUser(in.Name, in.Email, in.Password, in.Hostel, in.RoomNo, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: create user: %v", ErrPersistence, err)
	}
	return u, nil
}

// Login verifies credentials and returns the identity to store in the
// session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: lookup email: %v", ErrPersistence, err)
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &model.Identity{UserID: u.ID, Name: u.Name, Role: u.Role}, nil
}

// BootstrapAdmin creates the administrator account unless an admin already
// exists, in which case it returns ErrAlreadyExists.  Two racing calls are
// settled by the unique email index.
func (s *AuthService) BootstrapAdmin(ctx context.Context) (*model.User, error) {
	exists, err := s.users.ExistsWithRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("%w: check admin: %v", ErrPersistence, err)
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	a := s.admin
	u, err := s.newUser(a.Name, strings.ToLower(a.Email), a.Password, a.Hostel, a.RoomNo, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("%w: create admin: %v", ErrPersistence, err)
	}
	return u, nil
}

// AdminCredentials returns the email and password BootstrapAdmin uses.
func (s *AuthService) AdminCredentials() (email, password string) {
	return s.admin.Email, s.admin.Password
}

func (s *AuthService) newUser(name, email, password, hostel, roomNo, role string) (*model.User, error) {
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password is longer than %d bytes", ErrValidation, utils.MaxPasswordBytes)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Hostel:       hostel,
		RoomNo:       roomNo,
		Role:         role,
		CreatedAt:    s.Now(),
	}, nil
}

// Authorize is the guard shared by every protected route.  A nil result
// means the identity may proceed; otherwise the error is ErrNotAuthenticated
// (no session) or ErrForbidden (role mismatch).  An empty role admits any
// authenticated user.
func Authorize(id *model.Identity, role string) error {
	if id == nil {
		return ErrNotAuthenticated
	}
	if role != "" && id.Role != role {
		return ErrForbidden
	}
	return nil
}
