package service

import (
	"fmt"

	"github.com/jacentio/booking/internal/shard"
	"github.com/jacentio/booking/model"
	"github.com/jacentio/booking/store"
)

// DefaultLockStripes is the number of lock stripes a TicketService creates
// when none are shared with it.
const DefaultLockStripes = 16

// TicketService books and cancels tickets.
type TicketService struct {
	tickets TicketRepository
	users   *UserService
	events  *EventService
	locks   *shard.Locks
}

// NewTicketService creates a TicketService. Bookings are serialized on the
// stripes of their user and event keys in locks; pass the same Locks to every
// component that must not interleave with a booking. A nil locks gets a
// private set.
func NewTicketService(tickets TicketRepository, users *UserService, events *EventService, locks *shard.Locks) *TicketService {
	if locks == nil {
		locks = shard.NewLocks(DefaultLockStripes)
	}
	return &TicketService{
		tickets: tickets,
		users:   users,
		events:  events,
		locks:   locks,
	}
}

// BookTicket books place at the event for the user.
//
// The user and event must exist (ErrInvalidArgument otherwise), and no other
// ticket of the event may hold place (ErrPlaceOccupied otherwise).
func (s *TicketService) BookTicket(userID, eventID int64, place int, category model.Category) (*model.Ticket, error) {
	if place <= 0 {
		return nil, fmt.Errorf("%w: place must be greater than 0", store.ErrInvalidArgument)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", store.ErrInvalidArgument, string(category))
	}
	userKey, err := store.UserNamespace.Key(userID)
	if err != nil {
		return nil, err
	}
	eventKey, err := store.EventNamespace.Key(eventID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userKey.String(), eventKey.String())
	defer unlock()

	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: non-existent user %d", store.ErrInvalidArgument, userID)
	}
	event, err := s.events.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: non-existent event %d", store.ErrInvalidArgument, eventID)
	}

	for _, t := range s.tickets.FindByEventID(event.ID) {
		if t.Place == place {
			return nil, fmt.Errorf("%w: place %d of event %d", store.ErrPlaceOccupied, place, event.ID)
		}
	}

	return s.tickets.Save(model.NewTicket(event.ID, user.ID, category, place))
}

// GetBookedTicketsForUser returns one page of the user's tickets, ordered by id.
func (s *TicketService) GetBookedTicketsForUser(user *model.User, pageSize, pageNum int) ([]*model.Ticket, error) {
	if user == nil {
		return nil, errNil("user")
	}
	if err := checkPage(pageSize, pageNum); err != nil {
		return nil, err
	}
	return page(s.tickets.FindByUserID(user.ID), pageSize, pageNum), nil
}

// GetBookedTicketsForEvent returns one page of the event's tickets, ordered by id.
func (s *TicketService) GetBookedTicketsForEvent(event *model.Event, pageSize, pageNum int) ([]*model.Ticket, error) {
	if event == nil {
		return nil, errNil("event")
	}
	if err := checkPage(pageSize, pageNum); err != nil {
		return nil, err
	}
	return page(s.tickets.FindByEventID(event.ID), pageSize, pageNum), nil
}

// CancelTicket removes the ticket with the given id and reports whether it existed.
func (s *TicketService) CancelTicket(id int64) (bool, error) {
	key, err := store.TicketNamespace.Key(id)
	if err != nil {
		return false, err
	}
	return s.tickets.DeleteByID(key), nil
}
