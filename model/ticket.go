package model

import (
	"fmt"
	"strings"

	"github.com/jacentio/booking/store"
)

// Category is the seating category of a ticket.
type Category string

const (
	Standard Category = "STANDARD"
	Premium  Category = "PREMIUM"
	Bar      Category = "BAR"
)

// Categories lists every known category.
func Categories() []Category {
	return []Category{Standard, Premium, Bar}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case Standard, Premium, Bar:
		return true
	}
	return false
}

// ParseCategory parses a category name, ignoring case and surrounding spaces.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", store.ErrInvalidArgument, s)
	}
	return c, nil
}

// Ticket is a booked seat of one user at one event. The event and user
// references cannot change once the ticket exists.
type Ticket struct {
	ID       int64
	Category Category
	Place    int

	eventID int64
	userID  int64
}

// ticketRecord is the stored shape of a Ticket.
type ticketRecord struct {
	ID       int64    `dynamodbav:"id"`
	EventID  int64    `dynamodbav:"event_id"`
	UserID   int64    `dynamodbav:"user_id"`
	Category Category `dynamodbav:"category"`
	Place    int      `dynamodbav:"place"`
}

// NewTicket creates a ticket that has not been saved yet.
func NewTicket(eventID, userID int64, category Category, place int) *Ticket {
	return RestoreTicket(NotAssigned, eventID, userID, category, place)
}

// RestoreTicket creates a ticket with a known id.
func RestoreTicket(id, eventID, userID int64, category Category, place int) *Ticket {
	return &Ticket{
		ID:       id,
		Category: category,
		Place:    place,
		eventID:  eventID,
		userID:   userID,
	}
}

// EventID returns the id of the event the ticket is for.
func (t *Ticket) EventID() int64 { return t.eventID }

// UserID returns the id of the user who booked the ticket.
func (t *Ticket) UserID() int64 { return t.userID }

func (t *Ticket) Namespace() store.Namespace { return store.TicketNamespace }
func (t *Ticket) EntityID() int64            { return t.ID }

// WithID returns a copy of t carrying id.
func (t *Ticket) WithID(id int64) *Ticket {
	c := *t
	c.ID = id
	return &c
}

// Record encodes t for the store.
func (t *Ticket) Record() (store.Record, error) {
	return marshalRecord(store.TicketNamespace, ticketRecord{
		ID:       t.ID,
		EventID:  t.eventID,
		UserID:   t.userID,
		Category: t.Category,
		Place:    t.Place,
	})
}

// TicketFromItem decodes a stored ticket.
func TicketFromItem(item *store.Item) (*Ticket, error) {
	var r ticketRecord
	if err := unmarshalItem(item, store.TicketNamespace, &r); err != nil {
		return nil, err
	}
	return RestoreTicket(r.ID, r.EventID, r.UserID, r.Category, r.Place), nil
}
