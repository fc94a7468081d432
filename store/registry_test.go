package store_test

import (
	"testing"

	"github.com/jacentio/booking/store"
)

func TestNewRegistry(t *testing.T) {
	r := store.NewRegistry()
	if r == nil {
		t.Fatal("expected non-nil Registry")
	}
	if len(r.AllRelationships()) != 0 {
		t.Errorf("expected no relationships, got %d", len(r.AllRelationships()))
	}
}

func TestRegistry_Register(t *testing.T) {
	r := store.NewRegistry()

	r.Register(store.Relationship{
		ParentType:    store.EventNamespace,
		ChildType:     store.TicketNamespace,
		ParentKeyAttr: "event_id",
	})

	rels := r.AllRelationships()
	if len(rels) != 1 {
		t.Fatalf("expected 1 relationship, got %d", len(rels))
	}
	if rels[0].ParentType != store.EventNamespace {
		t.Errorf("expected ParentType %q, got %q", store.EventNamespace, rels[0].ParentType)
	}
	if !r.HasChildren(store.EventNamespace) {
		t.Error("expected event to have children after Register")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := store.DefaultRegistry()

	parents := r.ParentsOf(store.TicketNamespace)
	if len(parents) != 2 {
		t.Fatalf("expected ticket to reference 2 parents, got %d", len(parents))
	}
	if parents[0].ParentType != store.UserNamespace || parents[0].ParentKeyAttr != "user_id" {
		t.Errorf("expected user via user_id first, got %+v", parents[0])
	}
	if parents[1].ParentType != store.EventNamespace || parents[1].ParentKeyAttr != "event_id" {
		t.Errorf("expected event via event_id second, got %+v", parents[1])
	}

	for _, ns := range []store.Namespace{store.UserNamespace, store.EventNamespace} {
		children := r.ChildrenOf(ns)
		if len(children) != 1 || children[0].ChildType != store.TicketNamespace {
			t.Errorf("expected %s to have ticket children, got %+v", ns, children)
		}
	}
}

func TestRegistry_Leaves(t *testing.T) {
	r := store.DefaultRegistry()

	if r.HasChildren(store.TicketNamespace) {
		t.Error("expected ticket to have no children")
	}
	if len(r.ParentsOf(store.UserNamespace)) != 0 {
		t.Error("expected user to reference no parents")
	}
	if len(r.ChildrenOf("venue")) != 0 {
		t.Error("expected unknown namespace to have no children")
	}
}
