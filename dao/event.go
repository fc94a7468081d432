package dao

import (
	"log/slog"
	"strings"
	"time"

	"github.com/jacentio/booking/model"
	"github.com/jacentio/booking/store"
)

// EventDAO stores events under the "event" namespace.
type EventDAO struct {
	repo repository[*model.Event]
}

// NewEventDAO creates an event access object. A nil logger uses slog.Default().
func NewEventDAO(s store.Store, ids *store.IDGenerator, logger *slog.Logger) *EventDAO {
	return &EventDAO{repo: newRepository(s, ids, store.EventNamespace, model.EventFromItem, logger)}
}

// Save stores a copy of e and returns it, assigning an id on first save.
func (d *EventDAO) Save(e *model.Event) (*model.Event, error) {
	if e == nil {
		return nil, d.repo.errNil()
	}
	return d.repo.save(e)
}

func (d *EventDAO) FindByID(key store.Key) (*model.Event, bool) {
	return d.repo.findByID(key)
}

func (d *EventDAO) FindAll() []*model.Event {
	return d.repo.findAll()
}

func (d *EventDAO) Delete(e *model.Event) bool {
	if e == nil {
		return false
	}
	return d.repo.delete(e)
}

func (d *EventDAO) DeleteByID(key store.Key) bool {
	return d.repo.deleteByID(key)
}

func (d *EventDAO) ExistsByID(key store.Key) bool {
	return d.repo.existsByID(key)
}

// FindByTitle returns the events whose title contains segment.
func (d *EventDAO) FindByTitle(segment string) []*model.Event {
	return d.repo.filter(func(e *model.Event) bool {
		return strings.Contains(e.Title, segment)
	})
}

// FindByDate returns the events taking place at exactly the instant date.
func (d *EventDAO) FindByDate(date time.Time) []*model.Event {
	return d.repo.filter(func(e *model.Event) bool {
		return e.Date.Equal(date)
	})
}
