package service

import (
	"fmt"

	"github.com/jacentio/booking/model"
	"github.com/jacentio/booking/store"
)

// UserService manages users.
type UserService struct {
	users UserRepository
}

// NewUserService creates a UserService.
func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

// GetUserByID returns the user with the given id, or nil if there is none.
func (s *UserService) GetUserByID(id int64) (*model.User, error) {
	key, err := store.UserNamespace.Key(id)
	if err != nil {
		return nil, err
	}
	u, ok := s.users.FindByID(key)
	if !ok {
		return nil, nil
	}
	return u, nil
}

// GetUserByEmail returns a user with exactly this email, or nil if there is none.
func (s *UserService) GetUserByEmail(email string) (*model.User, error) {
	u, ok := s.users.FindByEmail(email)
	if !ok {
		return nil, nil
	}
	return u, nil
}

// GetUsersByName returns one page of the users whose name contains name.
func (s *UserService) GetUsersByName(name string, pageSize, pageNum int) ([]*model.User, error) {
	if err := checkPage(pageSize, pageNum); err != nil {
		return nil, err
	}
	return page(s.users.FindByName(name), pageSize, pageNum), nil
}

// CreateUser saves u, assigning an id if it has none.
func (s *UserService) CreateUser(u *model.User) (*model.User, error) {
	if u == nil {
		return nil, errNil("user")
	}
	return s.users.Save(u)
}

// UpdateUser replaces the stored user with u. The user must already exist.
func (s *UserService) UpdateUser(u *model.User) (*model.User, error) {
	if u == nil {
		return nil, errNil("user")
	}
	key, err := store.UserNamespace.Key(u.ID)
	if err != nil {
		return nil, err
	}
	if !s.users.ExistsByID(key) {
		return nil, fmt.Errorf("%w: user %d must exist in the store", store.ErrInvalidArgument, u.ID)
	}
	return s.users.Save(u)
}

// DeleteUser removes the user with the given id and reports whether it existed.
func (s *UserService) DeleteUser(id int64) (bool, error) {
	key, err := store.UserNamespace.Key(id)
	if err != nil {
		return false, err
	}
	return s.users.DeleteByID(key), nil
}
