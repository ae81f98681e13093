package resource

import "codeberg.org/mutker/scopeguard/internal/errors"

const (
	// Lifecycle Errors
	ErrResourceClosed = errors.ErrorCode("resource_closed")
	ErrCloseFailed    = errors.ErrorCode("resource_close_failed")

	// Operation Errors
	ErrResourceFaulty = errors.ErrorCode("resource_faulty")
)

// Sentinel names that deterministically trigger failure paths. Hard-coded
// fault-injection scaffolding, kept as-is for compatibility.
const (
	FaultyName  = "faulty"
	FailingName = "failing"
)
