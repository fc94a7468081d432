package dao

import (
	"log/slog"

	"github.com/jacentio/booking/model"
	"github.com/jacentio/booking/store"
)

// TicketDAO stores tickets under the "ticket" namespace.
type TicketDAO struct {
	repo repository[*model.Ticket]
}

// NewTicketDAO creates a ticket access object. A nil logger uses slog.Default().
func NewTicketDAO(s store.Store, ids *store.IDGenerator, logger *slog.Logger) *TicketDAO {
	return &TicketDAO{repo: newRepository(s, ids, store.TicketNamespace, model.TicketFromItem, logger)}
}

// Save stores a copy of t and returns it, assigning an id on first save.
func (d *TicketDAO) Save(t *model.Ticket) (*model.Ticket, error) {
	if t == nil {
		return nil, d.repo.errNil()
	}
	return d.repo.save(t)
}

func (d *TicketDAO) FindByID(key store.Key) (*model.Ticket, bool) {
	return d.repo.findByID(key)
}

func (d *TicketDAO) FindAll() []*model.Ticket {
	return d.repo.findAll()
}

func (d *TicketDAO) Delete(t *model.Ticket) bool {
	if t == nil {
		return false
	}
	return d.repo.delete(t)
}

func (d *TicketDAO) DeleteByID(key store.Key) bool {
	return d.repo.deleteByID(key)
}

func (d *TicketDAO) ExistsByID(key store.Key) bool {
	return d.repo.existsByID(key)
}

// FindByUserID returns the tickets booked by the user with id userID.
func (d *TicketDAO) FindByUserID(userID int64) []*model.Ticket {
	return d.repo.filter(func(t *model.Ticket) bool {
		return t.UserID() == userID
	})
}

// FindByEventID returns the tickets booked for the event with id eventID.
func (d *TicketDAO) FindByEventID(eventID int64) []*model.Ticket {
	return d.repo.filter(func(t *model.Ticket) bool {
		return t.EventID() == eventID
	})
}
