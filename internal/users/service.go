package users

import (
	"fmt"
	"strings"

	"fullstack-starter/internal/schema"
)

type UserDBLayer interface {
	CreateUser(user schema.User) (*schema.User, error)
	GetUserByID(id int64) (*schema.User, error)
	GetUserByEmail(email string) (*schema.User, error)
	ListUsers() ([]schema.User, error)
	UpdateUser(user schema.User) error
	DeleteUser(id int64) error
}

type UserService struct {
	DB UserDBLayer
}

func NewUserService(db UserDBLayer) *UserService {
	return &UserService{DB: db}
}

// Register creates a user. Email uniqueness stays with the database; the
// service only rejects obviously malformed input.
func (s *UserService) Register(email, name string) (*schema.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email %q", ErrInvalidInput, email)
	}

	return s.DB.CreateUser(schema.User{
		Email: email,
		Name:  strings.TrimSpace(name),
	})
}

func (s *UserService) GetUser(id int64) (*schema.User, error) {
	return s.DB.GetUserByID(id)
}

func (s *UserService) ListUsers() ([]schema.User, error) {
	return s.DB.ListUsers()
}

func (s *UserService) UpdateUser(id int64, email, name string) (*schema.User, error) {
	user, err := s.DB.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if email != "" {
		if !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: email %q", ErrInvalidInput, email)
		}
		user.Email = email
	}
	if name != "" {
		user.Name = name
	}

	if err := s.DB.UpdateUser(*user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) RemoveUser(id int64) error {
	if _, err := s.DB.GetUserByID(id); err != nil {
		return err
	}
	return s.DB.DeleteUser(id)
}
