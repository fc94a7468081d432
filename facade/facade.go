// Package facade is the single entry point to the booking core. It delegates
// to the user, event and ticket services and guards deletion of users and
// events that still have booked tickets.
package facade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/jacentio/booking/dao"
	"github.com/jacentio/booking/internal/shard"
	"github.com/jacentio/booking/model"
	"github.com/jacentio/booking/service"
	"github.com/jacentio/booking/store"
)

const meterName = "github.com/jacentio/booking/facade"

// Counter names.
const (
	MetricTicketsBooked    = "booking.tickets.booked"
	MetricTicketsRejected  = "booking.tickets.rejected"
	MetricTicketsCancelled = "booking.tickets.cancelled"
	MetricDeletesBlocked   = "booking.deletes.blocked"
)

// Config holds facade wiring settings.
type Config struct {
	// LockStripes is the number of lock stripes shared by bookings and
	// guarded deletes. Clamped to [1, shard.MaxStripes].
	LockStripes int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{LockStripes: service.DefaultLockStripes}
}

func (c *Config) validate() {
	if c.LockStripes < 1 {
		c.LockStripes = 1
	}
	if c.LockStripes > shard.MaxStripes {
		c.LockStripes = shard.MaxStripes
	}
}

// Option configures a BookingFacade.
type Option func(*BookingFacade) error

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(f *BookingFacade) error {
		if logger != nil {
			f.logger = logger
		}
		return nil
	}
}

// WithMeter records booking outcomes on counters created from meter.
func WithMeter(meter metric.Meter) Option {
	return func(f *BookingFacade) error {
		if meter == nil {
			return fmt.Errorf("%w: meter cannot be nil", store.ErrInvalidArgument)
		}
		f.meter = meter
		return nil
	}
}

type counters struct {
	booked    metric.Int64Counter
	rejected  metric.Int64Counter
	cancelled metric.Int64Counter
	blocked   metric.Int64Counter
}

func newCounters(meter metric.Meter) (counters, error) {
	var (
		c    counters
		err  error
		errs []error
	)
	c.booked, err = meter.Int64Counter(MetricTicketsBooked, metric.WithDescription("Tickets booked"))
	errs = append(errs, err)
	c.rejected, err = meter.Int64Counter(MetricTicketsRejected, metric.WithDescription("Booking attempts rejected"))
	errs = append(errs, err)
	c.cancelled, err = meter.Int64Counter(MetricTicketsCancelled, metric.WithDescription("Tickets cancelled"))
	errs = append(errs, err)
	c.blocked, err = meter.Int64Counter(MetricDeletesBlocked, metric.WithDescription("Deletes refused because of booked tickets"))
	errs = append(errs, err)
	return c, errors.Join(errs...)
}

// BookingFacade groups the booking operations behind one type.
type BookingFacade struct {
	users   *service.UserService
	events  *service.EventService
	tickets *service.TicketService
	locks   *shard.Locks

	logger   *slog.Logger
	meter    metric.Meter
	counters counters
}

// New creates a BookingFacade over the given services. locks must be the set
// the ticket service books under, so that a guarded delete cannot interleave
// with a booking for the same user or event.
func New(users *service.UserService, events *service.EventService, tickets *service.TicketService, locks *shard.Locks, opts ...Option) (*BookingFacade, error) {
	if users == nil || events == nil || tickets == nil || locks == nil {
		return nil, fmt.Errorf("%w: services and locks are required", store.ErrInvalidArgument)
	}

	f := &BookingFacade{
		users:   users,
		events:  events,
		tickets: tickets,
		locks:   locks,
		logger:  slog.Default(),
		meter:   noop.NewMeterProvider().Meter(meterName),
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}

	c, err := newCounters(f.meter)
	if err != nil {
		return nil, fmt.Errorf("create counters: %w", err)
	}
	f.counters = c
	return f, nil
}

// NewDefault wires the access objects, services and lock stripes over st.
func NewDefault(st store.Store, ids *store.IDGenerator, cfg Config, opts ...Option) (*BookingFacade, error) {
	if st == nil || ids == nil {
		return nil, fmt.Errorf("%w: store and id generator are required", store.ErrInvalidArgument)
	}
	cfg.validate()

	// The access objects log through the same logger as the facade.
	probe := &BookingFacade{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(probe); err != nil {
			return nil, err
		}
	}

	locks := shard.NewLocks(cfg.LockStripes)
	users := service.NewUserService(dao.NewUserDAO(st, ids, probe.logger))
	events := service.NewEventService(dao.NewEventDAO(st, ids, probe.logger))
	tickets := service.NewTicketService(dao.NewTicketDAO(st, ids, probe.logger), users, events, locks)
	return New(users, events, tickets, locks, opts...)
}

// --- Users ---

// GetUserByID returns the user with the given id, or nil if there is none.
func (f *BookingFacade) GetUserByID(id int64) (*model.User, error) {
	return f.users.GetUserByID(id)
}

// GetUserByEmail returns a user with exactly this email, or nil if there is none.
func (f *BookingFacade) GetUserByEmail(email string) (*model.User, error) {
	return f.users.GetUserByEmail(email)
}

// GetUsersByName returns one page of the users whose name contains name.
func (f *BookingFacade) GetUsersByName(name string, pageSize, pageNum int) ([]*model.User, error) {
	return f.users.GetUsersByName(name, pageSize, pageNum)
}

func (f *BookingFacade) CreateUser(u *model.User) (*model.User, error) {
	return f.users.CreateUser(u)
}

func (f *BookingFacade) UpdateUser(u *model.User) (*model.User, error) {
	return f.users.UpdateUser(u)
}

// DeleteUser removes the user and reports whether it existed. A user with
// booked tickets is not removed; ErrHasTickets is returned instead.
func (f *BookingFacade) DeleteUser(id int64) (bool, error) {
	key, err := store.UserNamespace.Key(id)
	if err != nil {
		return false, err
	}
	unlock := f.locks.Lock(key.String())
	defer unlock()

	u, err := f.users.GetUserByID(id)
	if err != nil {
		return false, err
	}
	if u != nil {
		booked, err := f.tickets.GetBookedTicketsForUser(u, 1, 1)
		if err != nil {
			return false, err
		}
		if len(booked) > 0 {
			return false, f.blocked(store.UserNamespace, id)
		}
	}
	return f.users.DeleteUser(id)
}

// --- Events ---

// GetEventByID returns the event with the given id, or nil if there is none.
func (f *BookingFacade) GetEventByID(id int64) (*model.Event, error) {
	return f.events.GetEventByID(id)
}

// GetEventsByTitle returns one page of the events whose title contains title.
func (f *BookingFacade) GetEventsByTitle(title string, pageSize, pageNum int) ([]*model.Event, error) {
	return f.events.GetEventsByTitle(title, pageSize, pageNum)
}

// GetEventsForDay returns one page of the events dated exactly day.
func (f *BookingFacade) GetEventsForDay(day time.Time, pageSize, pageNum int) ([]*model.Event, error) {
	return f.events.GetEventsForDay(day, pageSize, pageNum)
}

func (f *BookingFacade) CreateEvent(e *model.Event) (*model.Event, error) {
	return f.events.CreateEvent(e)
}

func (f *BookingFacade) UpdateEvent(e *model.Event) (*model.Event, error) {
	return f.events.UpdateEvent(e)
}

// DeleteEvent removes the event and reports whether it existed. An event
// with booked tickets is not removed; ErrHasTickets is returned instead.
func (f *BookingFacade) DeleteEvent(id int64) (bool, error) {
	key, err := store.EventNamespace.Key(id)
	if err != nil {
		return false, err
	}
	unlock := f.locks.Lock(key.String())
	defer unlock()

	e, err := f.events.GetEventByID(id)
	if err != nil {
		return false, err
	}
	if e != nil {
		booked, err := f.tickets.GetBookedTicketsForEvent(e, 1, 1)
		if err != nil {
			return false, err
		}
		if len(booked) > 0 {
			return false, f.blocked(store.EventNamespace, id)
		}
	}
	return f.events.DeleteEvent(id)
}

// --- Tickets ---

// BookTicket books place at the event for the user.
func (f *BookingFacade) BookTicket(userID, eventID int64, place int, category model.Category) (*model.Ticket, error) {
	t, err := f.tickets.BookTicket(userID, eventID, place, category)
	if err != nil {
		f.counters.rejected.Add(context.Background(), 1, metric.WithAttributes(reason(err)))
		return nil, err
	}
	f.counters.booked.Add(context.Background(), 1, metric.WithAttributes(attribute.String("category", string(category))))
	return t, nil
}

// GetBookedTicketsForUser returns one page of the user's tickets.
func (f *BookingFacade) GetBookedTicketsForUser(u *model.User, pageSize, pageNum int) ([]*model.Ticket, error) {
	return f.tickets.GetBookedTicketsForUser(u, pageSize, pageNum)
}

// GetBookedTicketsForEvent returns one page of the event's tickets.
func (f *BookingFacade) GetBookedTicketsForEvent(e *model.Event, pageSize, pageNum int) ([]*model.Ticket, error) {
	return f.tickets.GetBookedTicketsForEvent(e, pageSize, pageNum)
}

// CancelTicket removes the ticket and reports whether it existed.
func (f *BookingFacade) CancelTicket(id int64) (bool, error) {
	ok, err := f.tickets.CancelTicket(id)
	if ok {
		f.counters.cancelled.Add(context.Background(), 1)
	}
	return ok, err
}

func (f *BookingFacade) blocked(ns store.Namespace, id int64) error {
	f.logger.Warn("delete blocked by booked tickets", "kind", string(ns), "id", id)
	f.counters.blocked.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", string(ns))))
	return fmt.Errorf("%w: %s (%d) has booked tickets", store.ErrHasTickets, ns, id)
}

func reason(err error) attribute.KeyValue {
	switch {
	case errors.Is(err, store.ErrPlaceOccupied):
		return attribute.String("reason", "place_occupied")
	case errors.Is(err, store.ErrInvalidArgument):
		return attribute.String("reason", "invalid_argument")
	default:
		return attribute.String("reason", "other")
	}
}
