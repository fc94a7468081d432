package store

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when an input is absent or out of range, or
	// refers to an entity that does not exist. It is always detected before the
	// store is mutated.
	ErrInvalidArgument = errors.New("booking: invalid argument")

	// ErrIllegalState is returned when an operation conflicts with the current
	// contents of the store. The store is left unchanged.
	ErrIllegalState = errors.New("booking: illegal state")

	// ErrPlaceOccupied is returned when a seat is already booked for an event.
	ErrPlaceOccupied = fmt.Errorf("%w: place already occupied", ErrIllegalState)

	// ErrHasTickets is returned when attempting to delete a user or event that
	// still has booked tickets.
	ErrHasTickets = fmt.Errorf("%w: entity has booked tickets", ErrIllegalState)
)
