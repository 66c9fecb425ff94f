package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest      = errors.New("error parsing request")
	ErrInvalidArgument = errors.New("invalid argument")

	// * Business errors.
	ErrItemNotInOrder   = errors.New("item is not part of the order's current item set")
	ErrInvalidDateRange = errors.New("start date must come before end date")

	// * Cache errors. A miss and an unreachable backend look the same to
	// callers: fall through to the authoritative store.
	ErrCacheMiss = errors.New("cache miss")
)
