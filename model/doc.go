// Package model defines the booking entities: users, events and tickets.
//
// Entities built with NewUser, NewEvent or NewTicket carry the NotAssigned id
// until an access object saves them for the first time. Every entity encodes
// itself to a store.Record tagged with its namespace and is decoded back with
// the matching *FromItem function, which rejects items of another kind.
package model
