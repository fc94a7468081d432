package store

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestNewItem_StampsManagedAttributes(t *testing.T) {
	now := time.Date(2023, 12, 31, 23, 59, 0, 0, time.FixedZone("CET", 3600))
	m := NewMemory(WithClock(func() time.Time { return now }))

	item := m.newItem("ticket:9", Record{
		AttrEntityType: &types.AttributeValueMemberS{Value: "ticket"},
		AttrVersion:    &types.AttributeValueMemberN{Value: "99"},
	}, nil)

	if v, ok := item.Raw[AttrEntityRef].(*types.AttributeValueMemberS); !ok || v.Value != "ticket:9" {
		t.Errorf("expected entity_ref %q, got %v", "ticket:9", item.Raw[AttrEntityRef])
	}
	if v, ok := item.Raw[AttrVersion].(*types.AttributeValueMemberN); !ok || v.Value != "1" {
		t.Errorf("expected caller's version to be overwritten with 1, got %v", item.Raw[AttrVersion])
	}
	if item.CreatedAt != "2023-12-31T22:59:00Z" {
		t.Errorf("expected UTC timestamp, got %q", item.CreatedAt)
	}
	if item.EntityType != "ticket" {
		t.Errorf("expected EntityType %q, got %q", "ticket", item.EntityType)
	}
}

func TestNewItem_UntaggedRecord(t *testing.T) {
	m := NewMemory()

	item := m.newItem("user:1", Record{}, nil)
	if item.EntityType != "" {
		t.Errorf("expected empty EntityType, got %q", item.EntityType)
	}
}

func TestNewItem_NonStringTag(t *testing.T) {
	m := NewMemory()

	item := m.newItem("user:1", Record{AttrEntityType: &types.AttributeValueMemberN{Value: "1"}}, nil)
	if item.EntityType != "" {
		t.Errorf("expected non-string tag to be ignored, got %q", item.EntityType)
	}
}

func TestItemClone_Nil(t *testing.T) {
	var i *Item
	if i.clone() != nil {
		t.Error("expected nil clone of nil item")
	}
	if Record(nil).Clone() != nil {
		t.Error("expected nil clone of nil record")
	}
}
