// Package service enforces the per-kind business rules of the booking core:
// input validation, pagination, existence checks before updates and seat
// uniqueness when booking tickets.
//
// Every validation error wraps store.ErrInvalidArgument and is returned before
// any access object is touched.
package service

import (
	"fmt"
	"time"

	"github.com/jacentio/booking/model"
	"github.com/jacentio/booking/store"
)

// MaxPageSize is the largest page a query may request.
const MaxPageSize = 100

// UserRepository is the user access object a UserService works on.
type UserRepository interface {
	Save(u *model.User) (*model.User, error)
	FindByID(key store.Key) (*model.User, bool)
	DeleteByID(key store.Key) bool
	ExistsByID(key store.Key) bool
	FindByEmail(email string) (*model.User, bool)
	FindByName(segment string) []*model.User
}

// EventRepository is the event access object an EventService works on.
type EventRepository interface {
	Save(e *model.Event) (*model.Event, error)
	FindByID(key store.Key) (*model.Event, bool)
	DeleteByID(key store.Key) bool
	ExistsByID(key store.Key) bool
	FindByTitle(segment string) []*model.Event
	FindByDate(date time.Time) []*model.Event
}

// TicketRepository is the ticket access object a TicketService works on.
type TicketRepository interface {
	Save(t *model.Ticket) (*model.Ticket, error)
	DeleteByID(key store.Key) bool
	FindByUserID(userID int64) []*model.Ticket
	FindByEventID(eventID int64) []*model.Ticket
}

// checkPage validates pagination parameters.
func checkPage(pageSize, pageNum int) error {
	if pageNum <= 0 {
		return fmt.Errorf("%w: pageNum must be greater than 0", store.ErrInvalidArgument)
	}
	if pageSize <= 0 || pageSize > MaxPageSize {
		return fmt.Errorf("%w: pageSize must be between 1 and %d", store.ErrInvalidArgument, MaxPageSize)
	}
	return nil
}

// page skips (pageNum-1)*pageSize items and returns up to pageSize of the rest.
// Pages past the end are empty. Parameters must have passed checkPage.
func page[T any](items []T, pageSize, pageNum int) []T {
	skip := len(items)
	if pageNum-1 <= len(items)/pageSize {
		skip = (pageNum - 1) * pageSize
	}
	if skip >= len(items) {
		return []T{}
	}
	end := min(skip+pageSize, len(items))
	out := make([]T, end-skip)
	copy(out, items[skip:end])
	return out
}

func errNil(what string) error {
	return fmt.Errorf("%w: %s cannot be nil", store.ErrInvalidArgument, what)
}
