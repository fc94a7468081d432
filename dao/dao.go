// Package dao translates booking entities to and from store entries.
//
// There is one access object per entity kind. Each assigns ids on first save,
// lists its kind with a prefix scan of the store, and implements the kind's
// finders as full scans; there are no secondary indexes.
package dao

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jacentio/booking/model"
	"github.com/jacentio/booking/store"
)

// entity is the constraint on types an access object can persist.
type entity[T any] interface {
	model.Entity
	WithID(id int64) T
	Record() (store.Record, error)
}

// repository implements the operations shared by all access objects.
type repository[T entity[T]] struct {
	store  store.Store
	ids    *store.IDGenerator
	ns     store.Namespace
	decode func(*store.Item) (T, error)
	logger *slog.Logger
}

func newRepository[T entity[T]](s store.Store, ids *store.IDGenerator, ns store.Namespace, decode func(*store.Item) (T, error), logger *slog.Logger) repository[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return repository[T]{
		store:  s,
		ids:    ids,
		ns:     ns,
		decode: decode,
		logger: logger.With("namespace", string(ns)),
	}
}

// errNil is returned when a nil entity is passed to Save.
func (r *repository[T]) errNil() error {
	return fmt.Errorf("%w: %s cannot be nil", store.ErrInvalidArgument, r.ns)
}

// save writes a copy of e, assigning a fresh id if e has none.
// Callers reject nil entities first.
func (r *repository[T]) save(e T) (T, error) {
	var zero T
	id := e.EntityID()
	if id == model.NotAssigned {
		id = r.ids.Next()
	}
	saved := e.WithID(id)

	key, err := r.ns.Key(id)
	if err != nil {
		return zero, err
	}
	rec, err := saved.Record()
	if err != nil {
		return zero, err
	}
	if _, err := r.store.Save(key.String(), rec); err != nil {
		return zero, err
	}

	r.logger.Debug("entity saved", "key", key.String())
	return saved, nil
}

func (r *repository[T]) findByID(key store.Key) (T, bool) {
	var zero T
	if key.Namespace() != r.ns {
		return zero, false
	}
	item, ok := r.store.Get(key.String())
	if !ok {
		return zero, false
	}
	e, err := r.decode(item)
	if err != nil {
		r.logger.Error("failed to decode entity", "key", key.String(), "error", err)
		return zero, false
	}
	return e, true
}

func (r *repository[T]) findAll() []T {
	items := r.store.GetAll(r.ns.Prefix())
	out := make([]T, 0, len(items))
	for _, item := range items {
		e, err := r.decode(item)
		if err != nil {
			r.logger.Error("failed to decode entity", "key", item.EntityRef, "error", err)
			continue
		}
		out = append(out, e)
	}
	// Ascending ids keep pages stable between calls.
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(a.EntityID(), b.EntityID()) })
	return out
}

// filter returns the entities of this kind matching keep.
func (r *repository[T]) filter(keep func(T) bool) []T {
	var out []T
	for _, e := range r.findAll() {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (r *repository[T]) deleteByID(key store.Key) bool {
	if key.Namespace() != r.ns {
		return false
	}
	return r.store.Delete(key.String())
}

func (r *repository[T]) existsByID(key store.Key) bool {
	_, ok := r.findByID(key)
	return ok
}

// delete removes a persisted entity. Unsaved entities are never in the store.
func (r *repository[T]) delete(e T) bool {
	key, err := r.ns.Key(e.EntityID())
	if err != nil {
		return false
	}
	return r.deleteByID(key)
}
