package store

import (
	"fmt"
	"strconv"
	"strings"
)

// Namespace is the entity kind part of a store key.
type Namespace string

const (
	UserNamespace   Namespace = "user"
	EventNamespace  Namespace = "event"
	TicketNamespace Namespace = "ticket"
)

// Namespaces lists every known namespace.
func Namespaces() []Namespace {
	return []Namespace{UserNamespace, EventNamespace, TicketNamespace}
}

// Valid reports whether n is one of the known namespaces.
func (n Namespace) Valid() bool {
	switch n {
	case UserNamespace, EventNamespace, TicketNamespace:
		return true
	}
	return false
}

// Prefix returns the key prefix shared by every entry of this namespace.
func (n Namespace) Prefix() string {
	return string(n) + ":"
}

// Key builds the store key of the entity with the given id.
// The id must be positive.
func (n Namespace) Key(id int64) (Key, error) {
	if !n.Valid() {
		return Key{}, fmt.Errorf("%w: unknown namespace %q", ErrInvalidArgument, string(n))
	}
	if id <= 0 {
		return Key{}, fmt.Errorf("%w: id must be positive number, got %d", ErrInvalidArgument, id)
	}
	return Key{ns: n, id: id}, nil
}

// Key identifies one entry of the store (e.g., "ticket:42").
type Key struct {
	ns Namespace
	id int64
}

// Namespace returns the namespace of the key.
func (k Key) Namespace() Namespace { return k.ns }

// ID returns the numeric id of the key.
func (k Key) ID() int64 { return k.id }

// IsZero reports whether k is the zero Key (never a valid store key).
func (k Key) IsZero() bool { return k.ns == "" && k.id == 0 }

// String returns the key in its store form, "<namespace>:<id>".
func (k Key) String() string {
	return k.ns.Prefix() + strconv.FormatInt(k.id, 10)
}

// ParseKey parses the "<namespace>:<id>" form produced by Key.String.
func ParseKey(s string) (Key, error) {
	ns, rawID, ok := strings.Cut(s, ":")
	if !ok {
		return Key{}, fmt.Errorf("%w: malformed key %q", ErrInvalidArgument, s)
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return Key{}, fmt.Errorf("%w: malformed key %q", ErrInvalidArgument, s)
	}
	return Namespace(ns).Key(id)
}
