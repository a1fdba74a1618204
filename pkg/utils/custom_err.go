package utils

import "errors"

var (
	ErrTripNotFound           = errors.New("trip not found")
	ErrRegionNotFound         = errors.New("region not found")
	ErrInvalidPage            = errors.New("invalid page parameter")
	ErrInvalidPageSize        = errors.New("invalid page size parameter")
	ErrDatabaseError          = errors.New("database error")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected behavior of AI generation service")
	ErrUpstreamUnavailable    = errors.New("upstream service unavailable")
)
