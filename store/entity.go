package store

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Attribute names managed by the store. Records passed to Save may set
// AttrEntityType; the others are overwritten.
const (
	AttrEntityRef  = "entity_ref"
	AttrEntityType = "entity_type"
	AttrVersion    = "version"
	AttrCreatedAt  = "created_at"
	AttrUpdatedAt  = "updated_at"
)

// Record is the attribute map of one stored entity.
type Record map[string]types.AttributeValue

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Item represents a stored entry with its managed fields.
type Item struct {
	// Raw is the full attribute map, managed attributes included.
	Raw Record

	// EntityRef is the store key the item lives under (e.g., "user:7").
	EntityRef string

	// EntityType is the value of the entity_type attribute, empty if the record had none.
	EntityType string

	// Version starts at 1 and grows by one on every overwrite.
	Version int64

	// CreatedAt is the RFC 3339 time of the first save.
	CreatedAt string

	// UpdatedAt is the RFC 3339 time of the latest save.
	UpdatedAt string
}

// clone returns a copy of the item that does not share its attribute map.
func (i *Item) clone() *Item {
	if i == nil {
		return nil
	}
	out := *i
	out.Raw = i.Raw.Clone()
	return &out
}
