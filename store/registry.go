package store

// Relationship defines a reference from a child entity to its parent.
type Relationship struct {
	// ParentType is the referenced namespace (e.g., "event").
	ParentType Namespace

	// ChildType is the referencing namespace (e.g., "ticket").
	ChildType Namespace

	// ParentKeyAttr is the attribute in the child record holding the parent id (e.g., "event_id").
	ParentKeyAttr string
}

// Registry holds all known entity relationships.
type Registry struct {
	relationships []Relationship
	byParent      map[Namespace][]Relationship
	byChild       map[Namespace][]Relationship
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		relationships: []Relationship{},
		byParent:      make(map[Namespace][]Relationship),
		byChild:       make(map[Namespace][]Relationship),
	}
}

// DefaultRegistry returns the booking relationships: a ticket references its
// user and its event.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Relationship{
		ParentType:    UserNamespace,
		ChildType:     TicketNamespace,
		ParentKeyAttr: "user_id",
	})
	r.Register(Relationship{
		ParentType:    EventNamespace,
		ChildType:     TicketNamespace,
		ParentKeyAttr: "event_id",
	})
	return r
}

// Register adds a relationship to the registry.
func (r *Registry) Register(rel Relationship) {
	r.relationships = append(r.relationships, rel)
	r.byParent[rel.ParentType] = append(r.byParent[rel.ParentType], rel)
	r.byChild[rel.ChildType] = append(r.byChild[rel.ChildType], rel)
}

// ChildrenOf returns all child relationships for a given parent type.
func (r *Registry) ChildrenOf(parentType Namespace) []Relationship {
	return r.byParent[parentType]
}

// ParentsOf returns the relationships a child type must satisfy.
func (r *Registry) ParentsOf(childType Namespace) []Relationship {
	return r.byChild[childType]
}

// AllRelationships returns all registered relationships.
func (r *Registry) AllRelationships() []Relationship {
	return r.relationships
}

// HasChildren returns true if the parent type has any registered child relationships.
func (r *Registry) HasChildren(parentType Namespace) bool {
	return len(r.byParent[parentType]) > 0
}
