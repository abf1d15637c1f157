package issue

import "errors"

var (
	// ErrInvalidTransition is returned when a lifecycle step is not legal from the
	// current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidTechLevel is returned for tech levels outside L1, L2 and L3.
	ErrInvalidTechLevel = errors.New("invalid tech level")

	// ErrNotFound is returned by repositories for unknown issue ids or report codes.
	ErrNotFound = errors.New("issue not found")

	// ErrReportCodeExhausted is returned when no unused report code could be drawn.
	ErrReportCodeExhausted = errors.New("report code generation exhausted")
)
