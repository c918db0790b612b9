// Package repository defines sentinel errors shared across repositories so
// that handlers can map failure scenarios onto HTTP responses without
// inspecting driver errors.
package repository

import "errors"

// ErrShowNotFound indicates that no show exists for the given identifier
// (or show time).  Handlers translate this into a 404 on direct endpoints
// and into the default conversational reply on the webhook path.
var ErrShowNotFound = errors.New("show not found")

// ErrInsufficientSeats is returned when a decrement would push the
// tickets-left counter below zero.  No mutation happens in that case.
var ErrInsufficientSeats = errors.New("not enough tickets left")

// ErrDuplicatePayment is returned when the same contact already has a
// recorded payment for the show.  Handlers translate this into a 400.
var ErrDuplicatePayment = errors.New("payment already recorded")

// ErrConflict signals that a conditional update matched nothing even though
// the row still satisfies the precondition, i.e. a concurrent writer got
// there first.  Handlers translate this into a 500.
var ErrConflict = errors.New("conflict")
