package model

import (
	"time"

	"github.com/jacentio/booking/store"
)

// Event is something tickets are booked for.
type Event struct {
	ID    int64     `dynamodbav:"id" json:"id"`
	Title string    `dynamodbav:"title" json:"title"`
	Date  time.Time `dynamodbav:"date" json:"date"`
}

// NewEvent creates an event that has not been saved yet.
func NewEvent(title string, date time.Time) *Event {
	return &Event{ID: NotAssigned, Title: title, Date: date}
}

func (e *Event) Namespace() store.Namespace { return store.EventNamespace }
func (e *Event) EntityID() int64            { return e.ID }

// WithID returns a copy of e carrying id.
func (e *Event) WithID(id int64) *Event {
	c := *e
	c.ID = id
	return &c
}

// Record encodes e for the store.
func (e *Event) Record() (store.Record, error) {
	return marshalRecord(store.EventNamespace, e)
}

// EventFromItem decodes a stored event.
func EventFromItem(item *store.Item) (*Event, error) {
	var e Event
	if err := unmarshalItem(item, store.EventNamespace, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
