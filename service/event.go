package service

import (
	"fmt"
	"time"

	"github.com/jacentio/booking/model"
	"github.com/jacentio/booking/store"
)

// EventService manages events.
type EventService struct {
	events EventRepository
}

// NewEventService creates an EventService.
func NewEventService(events EventRepository) *EventService {
	return &EventService{events: events}
}

// GetEventByID returns the event with the given id, or nil if there is none.
func (s *EventService) GetEventByID(id int64) (*model.Event, error) {
	key, err := store.EventNamespace.Key(id)
	if err != nil {
		return nil, err
	}
	e, ok := s.events.FindByID(key)
	if !ok {
		return nil, nil
	}
	return e, nil
}

// GetEventsByTitle returns one page of the events whose title contains title.
func (s *EventService) GetEventsByTitle(title string, pageSize, pageNum int) ([]*model.Event, error) {
	if err := checkPage(pageSize, pageNum); err != nil {
		return nil, err
	}
	return page(s.events.FindByTitle(title), pageSize, pageNum), nil
}

// GetEventsForDay returns one page of the events dated exactly day.
func (s *EventService) GetEventsForDay(day time.Time, pageSize, pageNum int) ([]*model.Event, error) {
	if day.IsZero() {
		return nil, errNil("date")
	}
	if err := checkPage(pageSize, pageNum); err != nil {
		return nil, err
	}
	return page(s.events.FindByDate(day), pageSize, pageNum), nil
}

// CreateEvent saves e, assigning an id if it has none.
func (s *EventService) CreateEvent(e *model.Event) (*model.Event, error) {
	if e == nil {
		return nil, errNil("event")
	}
	return s.events.Save(e)
}

// UpdateEvent replaces the stored event with e. The event must already exist.
func (s *EventService) UpdateEvent(e *model.Event) (*model.Event, error) {
	if e == nil {
		return nil, errNil("event")
	}
	key, err := store.EventNamespace.Key(e.ID)
	if err != nil {
		return nil, err
	}
	if !s.events.ExistsByID(key) {
		return nil, fmt.Errorf("%w: event %d must exist in the store", store.ErrInvalidArgument, e.ID)
	}
	return s.events.Save(e)
}

// DeleteEvent removes the event with the given id and reports whether it existed.
func (s *EventService) DeleteEvent(id int64) (bool, error) {
	key, err := store.EventNamespace.Key(id)
	if err != nil {
		return false, err
	}
	return s.events.DeleteByID(key), nil
}
