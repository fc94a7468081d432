// Package loader bulk-loads users, events and tickets from CSV into a store.
//
// Each row starts with its kind:
//
//	user,<id>,<name>,<email>
//	event,<id>,<title>,<date>
//	ticket,<id>,<category>,<userId>,<eventId>,<place>
//
// Blank lines are skipped. A ticket must come after the user and event it
// references.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/google/uuid"

	"github.com/jacentio/booking/model"
	"github.com/jacentio/booking/store"
)

// DefaultDateLayout is the layout of event dates unless WithDateLayout is used.
const DefaultDateLayout = "2006-01-02"

// Loader parses CSV batches into store records.
type Loader struct {
	layout   string
	registry *store.Registry
	logger   *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithDateLayout sets the time layout of event dates. Empty layouts are ignored.
func WithDateLayout(layout string) Option {
	return func(l *Loader) {
		if layout != "" {
			l.layout = layout
		}
	}
}

// WithRegistry sets the relationships checked for every loaded row.
func WithRegistry(r *store.Registry) Option {
	return func(l *Loader) {
		if r != nil {
			l.registry = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		layout:   DefaultDateLayout,
		registry: store.DefaultRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses every row of r and returns the records keyed by store key.
func (l *Loader) Load(r io.Reader) (map[string]store.Record, error) {
	batch := uuid.NewString()
	logger := l.logger.With("batch_id", batch)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	result := make(map[string]store.Record)
	for {
		values, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", store.ErrInvalidArgument, err)
		}
		line, _ := cr.FieldPos(0)

		key, rec, err := l.parseRow(values)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := l.checkRefs(key, rec, result); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		result[key.String()] = rec
	}

	logger.Info("loaded entities", "count", len(result))
	return result, nil
}

// LoadFile loads the CSV file at path.
func (l *Loader) LoadFile(path string) (map[string]store.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()
	return l.Load(f)
}

// Into loads r into the empty store m and returns the number of entities loaded.
func (l *Loader) Into(m *store.Memory, r io.Reader) (int, error) {
	if m == nil {
		return 0, fmt.Errorf("%w: store cannot be nil", store.ErrInvalidArgument)
	}
	records, err := l.Load(r)
	if err != nil {
		return 0, err
	}
	if err := m.Init(records); err != nil {
		return 0, err
	}
	return len(records), nil
}

func (l *Loader) parseRow(values []string) (store.Key, store.Record, error) {
	kind := strings.TrimSpace(values[0])
	switch store.Namespace(kind) {
	case store.UserNamespace:
		return parseUser(values)
	case store.EventNamespace:
		return l.parseEvent(values)
	case store.TicketNamespace:
		return parseTicket(values)
	default:
		return store.Key{}, nil, fmt.Errorf("%w: unknown type value %q", store.ErrInvalidArgument, kind)
	}
}

func parseUser(values []string) (store.Key, store.Record, error) {
	if err := need(values, 4, "user"); err != nil {
		return store.Key{}, nil, err
	}
	id, err := parseID(values[1], "user id")
	if err != nil {
		return store.Key{}, nil, err
	}
	return encode(&model.User{ID: id, Name: values[2], Email: values[3]})
}

func (l *Loader) parseEvent(values []string) (store.Key, store.Record, error) {
	if err := need(values, 4, "event"); err != nil {
		return store.Key{}, nil, err
	}
	id, err := parseID(values[1], "event id")
	if err != nil {
		return store.Key{}, nil, err
	}
	date, err := time.ParseInLocation(l.layout, strings.TrimSpace(values[3]), time.UTC)
	if err != nil {
		return store.Key{}, nil, fmt.Errorf("%w: event %d date: %v", store.ErrInvalidArgument, id, err)
	}
	return encode(&model.Event{ID: id, Title: values[2], Date: date})
}

func parseTicket(values []string) (store.Key, store.Record, error) {
	if err := need(values, 6, "ticket"); err != nil {
		return store.Key{}, nil, err
	}
	id, err := parseID(values[1], "ticket id")
	if err != nil {
		return store.Key{}, nil, err
	}
	category, err := model.ParseCategory(values[2])
	if err != nil {
		return store.Key{}, nil, err
	}
	userID, err := parseID(values[3], "user id")
	if err != nil {
		return store.Key{}, nil, err
	}
	eventID, err := parseID(values[4], "event id")
	if err != nil {
		return store.Key{}, nil, err
	}
	place, err := strconv.Atoi(strings.TrimSpace(values[5]))
	if err != nil {
		return store.Key{}, nil, fmt.Errorf("%w: ticket %d place: %v", store.ErrInvalidArgument, id, err)
	}
	return encode(model.RestoreTicket(id, eventID, userID, category, place))
}

// checkRefs verifies that every parent rec references is already loaded.
func (l *Loader) checkRefs(key store.Key, rec store.Record, loaded map[string]store.Record) error {
	for _, rel := range l.registry.ParentsOf(key.Namespace()) {
		var parentID int64
		if err := attributevalue.Unmarshal(rec[rel.ParentKeyAttr], &parentID); err != nil {
			return fmt.Errorf("%w: %s %d has no %s", store.ErrInvalidArgument, key.Namespace(), key.ID(), rel.ParentKeyAttr)
		}
		parent, err := rel.ParentType.Key(parentID)
		if err != nil {
			return err
		}
		if _, ok := loaded[parent.String()]; !ok {
			return fmt.Errorf("%w: unsatisfied dependency for %s %d: %s not loaded", store.ErrInvalidArgument, key.Namespace(), key.ID(), parent)
		}
	}
	return nil
}

type encodable interface {
	model.Entity
	Record() (store.Record, error)
}

func encode(e encodable) (store.Key, store.Record, error) {
	key, err := model.KeyOf(e)
	if err != nil {
		return store.Key{}, nil, err
	}
	rec, err := e.Record()
	if err != nil {
		return store.Key{}, nil, err
	}
	return key, rec, nil
}

func need(values []string, n int, kind string) error {
	if len(values) < n {
		return fmt.Errorf("%w: not enough values (%d) to build %s from", store.ErrInvalidArgument, len(values), kind)
	}
	return nil
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", store.ErrInvalidArgument, what, err)
	}
	return id, nil
}
