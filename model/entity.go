package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/booking/store"
)

// NotAssigned is the id of an entity that has never been saved.
// It is never stored.
const NotAssigned int64 = math.MinInt64

// ErrKindMismatch is returned when decoding an item of another namespace.
var ErrKindMismatch = errors.New("booking: entity type mismatch")

// Entity is implemented by every storable type.
type Entity interface {
	// Namespace returns the store namespace of the entity kind.
	Namespace() store.Namespace

	// EntityID returns the id, or NotAssigned.
	EntityID() int64
}

// KeyOf returns the store key of a persisted entity.
func KeyOf(e Entity) (store.Key, error) {
	return e.Namespace().Key(e.EntityID())
}

// IsPersisted reports whether e has been assigned an id.
func IsPersisted(e Entity) bool {
	return e.EntityID() != NotAssigned
}

// marshalRecord encodes v and tags the result with ns.
func marshalRecord(ns store.Namespace, v any) (store.Record, error) {
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", ns, err)
	}
	av[store.AttrEntityType] = &types.AttributeValueMemberS{Value: string(ns)}
	return store.Record(av), nil
}

// unmarshalItem decodes item into out after checking its entity_type tag.
func unmarshalItem(item *store.Item, ns store.Namespace, out any) error {
	if item == nil {
		return fmt.Errorf("%w: item cannot be nil", store.ErrInvalidArgument)
	}
	if item.EntityType != string(ns) {
		return fmt.Errorf("%w: %s holds %q, want %q", ErrKindMismatch, item.EntityRef, item.EntityType, ns)
	}
	if err := attributevalue.UnmarshalMap(item.Raw, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", item.EntityRef, err)
	}
	return nil
}
