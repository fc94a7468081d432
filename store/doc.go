// Package store provides the keyed store behind the booking data core.
//
// Every entity lives under exactly one key of the form "<namespace>:<id>",
// where the namespace is one of "user", "event" or "ticket". Keys of different
// namespaces never collide, and all entries of one namespace can be listed with
// a prefix scan.
//
// # Records
//
// Entries are stored as DynamoDB-shaped attribute maps ([Record]). Each record
// carries an "entity_type" attribute naming its namespace, so readers decode it
// only after checking the tag. The store stamps the managed attributes
// "entity_ref", "version", "created_at" and "updated_at" on every save.
//
// # Ids
//
// [IDGenerator] hands out strictly increasing positive ids. Create one per
// store and pass it to every access object that writes to that store.
//
// # Errors
//
// The package defines the error kinds used across the booking core:
//
//   - [ErrInvalidArgument] - absent or out-of-range input, unknown reference
//   - [ErrIllegalState] - conflict with current store contents
//   - [ErrPlaceOccupied] - seat already booked (wraps ErrIllegalState)
//   - [ErrHasTickets] - delete blocked by booked tickets (wraps ErrIllegalState)
package store
