package store

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Store is a flat mapping from string keys to records.
//
// Implementations must be safe for concurrent use. A missing key is never an
// error: Get reports it through its boolean and Delete through its result.
type Store interface {
	// Get returns the item stored under key.
	Get(key string) (*Item, bool)

	// GetAll returns every item whose key starts with prefix, in no particular order.
	GetAll(prefix string) []*Item

	// Save stores rec under key and returns the item it replaced, or nil.
	Save(key string, rec Record) (*Item, error)

	// Delete removes the item stored under key and reports whether one existed.
	Delete(key string) bool
}

// Memory is an in-process Store.
type Memory struct {
	mu     sync.RWMutex
	items  map[string]*Item
	logger *slog.Logger
	now    func() time.Time
}

var _ Store = (*Memory)(nil)

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithLogger sets the logger used by the store.
func WithLogger(logger *slog.Logger) MemoryOption {
	return func(m *Memory) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock sets the time source for the created_at/updated_at attributes.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemory creates an empty in-memory store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		items:  make(map[string]*Item),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get retrieves the item stored under key.
func (m *Memory) Get(key string) (*Item, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[key]
	if !ok {
		return nil, false
	}
	return item.clone(), true
}

// GetAll returns the items whose key starts with prefix.
func (m *Memory) GetAll(prefix string) []*Item {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var items []*Item
	for key, item := range m.items {
		if strings.HasPrefix(key, prefix) {
			items = append(items, item.clone())
		}
	}
	return items
}

// Save stores rec under key, stamping the managed attributes.
func (m *Memory) Save(key string, rec Record) (*Item, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: key cannot be empty", ErrInvalidArgument)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: savable record cannot be nil", ErrInvalidArgument)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.items[key]
	m.items[key] = m.newItem(key, rec, prev)
	return prev.clone(), nil
}

// Delete removes the item stored under key.
func (m *Memory) Delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[key]; !ok {
		return false
	}
	delete(m.items, key)
	return true
}

// Init bulk-loads records into an empty store.
func (m *Memory) Init(records map[string]Record) error {
	if records == nil {
		return fmt.Errorf("%w: records cannot be nil", ErrInvalidArgument)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) != 0 {
		return fmt.Errorf("%w: store must be empty, size is %d", ErrIllegalState, len(m.items))
	}
	for key, rec := range records {
		if key == "" || rec == nil {
			return fmt.Errorf("%w: empty key or nil record in bulk load", ErrInvalidArgument)
		}
	}
	for key, rec := range records {
		m.items[key] = m.newItem(key, rec, nil)
	}
	return nil
}

// Len returns the number of stored items.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Clear removes every item.
func (m *Memory) Clear() {
	m.mu.Lock()
	n := len(m.items)
	m.items = make(map[string]*Item)
	m.mu.Unlock()

	m.logger.Info("in-memory store was cleaned up", "removed", n)
}

// newItem builds the stored item for rec. Callers must hold m.mu.
func (m *Memory) newItem(key string, rec Record, prev *Item) *Item {
	now := m.now().UTC().Format(time.RFC3339)

	item := &Item{
		Raw:       rec.Clone(),
		EntityRef: key,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if prev != nil {
		item.Version = prev.Version + 1
		item.CreatedAt = prev.CreatedAt
	}
	if v, ok := rec[AttrEntityType].(*types.AttributeValueMemberS); ok {
		item.EntityType = v.Value
	}

	item.Raw[AttrEntityRef] = &types.AttributeValueMemberS{Value: key}
	item.Raw[AttrVersion] = &types.AttributeValueMemberN{Value: strconv.FormatInt(item.Version, 10)}
	item.Raw[AttrCreatedAt] = &types.AttributeValueMemberS{Value: item.CreatedAt}
	item.Raw[AttrUpdatedAt] = &types.AttributeValueMemberS{Value: item.UpdatedAt}
	return item
}
