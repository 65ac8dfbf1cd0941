package model

import "errors"

// ErrBookingConflict marks any failure caused by an overlapping booking so
// callers can translate it to a 409 regardless of which layer raised it.
var ErrBookingConflict = errors.New("booking conflict")
