package dao

import (
	"log/slog"
	"strings"

	"github.com/jacentio/booking/model"
	"github.com/jacentio/booking/store"
)

// UserDAO stores users under the "user" namespace.
type UserDAO struct {
	repo repository[*model.User]
}

// NewUserDAO creates a user access object. A nil logger uses slog.Default().
func NewUserDAO(s store.Store, ids *store.IDGenerator, logger *slog.Logger) *UserDAO {
	return &UserDAO{repo: newRepository(s, ids, store.UserNamespace, model.UserFromItem, logger)}
}

// Save stores a copy of u and returns it. A user with the NotAssigned id gets
// a fresh one; u itself is never modified.
func (d *UserDAO) Save(u *model.User) (*model.User, error) {
	if u == nil {
		return nil, d.repo.errNil()
	}
	return d.repo.save(u)
}

// FindByID returns the user stored under key.
func (d *UserDAO) FindByID(key store.Key) (*model.User, bool) {
	return d.repo.findByID(key)
}

// FindAll returns every stored user ordered by id.
func (d *UserDAO) FindAll() []*model.User {
	return d.repo.findAll()
}

// Delete removes u and reports whether it was stored.
func (d *UserDAO) Delete(u *model.User) bool {
	if u == nil {
		return false
	}
	return d.repo.delete(u)
}

// DeleteByID removes the user stored under key and reports whether one existed.
func (d *UserDAO) DeleteByID(key store.Key) bool {
	return d.repo.deleteByID(key)
}

// ExistsByID reports whether a user is stored under key.
func (d *UserDAO) ExistsByID(key store.Key) bool {
	return d.repo.existsByID(key)
}

// FindByEmail returns a user whose email equals email exactly.
// If several users share the address, the one with the lowest id is returned.
func (d *UserDAO) FindByEmail(email string) (*model.User, bool) {
	for _, u := range d.repo.findAll() {
		if u.Email == email {
			return u, true
		}
	}
	return nil, false
}

// FindByName returns the users whose name contains segment.
func (d *UserDAO) FindByName(segment string) []*model.User {
	return d.repo.filter(func(u *model.User) bool {
		return strings.Contains(u.Name, segment)
	})
}
