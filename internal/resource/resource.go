package resource

import (
	"fmt"

	"codeberg.org/mutker/scopeguard/internal/errors"
	"codeberg.org/mutker/scopeguard/internal/logger"
	"github.com/google/uuid"
)

// State tracks where a resource is in its lifecycle. The only legal
// transition is StateOpen -> StateClosed.
type State int

const (
	StateOpen State = iota
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Resource is a scope-bound resource: opened with a name, operated on while
// open, and closed exactly once. Notifications for lifecycle events are
// written to the diagnostic sink handed in at creation. The id identifies the
// underlying resource and survives ownership transfer.
type Resource struct {
	id    uuid.UUID
	name  string
	state State
	log   logger.Logger
}

// Open creates a resource in the open state and emits an "opened"
// notification. It never fails.
func Open(name string, log logger.Logger) *Resource {
	r := &Resource{
		id:    uuid.New(),
		name:  name,
		state: StateOpen,
		log:   log,
	}
	r.log.Info().Str("resource", r.name).Msg("resource opened")

	return r
}

func (r *Resource) ID() uuid.UUID {
	return r.id
}

func (r *Resource) Name() string {
	return r.name
}

func (r *Resource) State() State {
	return r.state
}

// PerformOperation runs one operation against the resource. It fails with
// ErrResourceClosed on a closed resource and with ErrResourceFaulty on an
// open resource named FaultyName. On success it emits an "operation
// performed" notification and leaves the state unchanged.
func (r *Resource) PerformOperation() error {
	errFactory := errors.New()

	if r.state == StateClosed {
		return errFactory.WithMessage(ErrResourceClosed, fmt.Sprintf("resource %s is closed", r.name))
	}

	if r.name == FaultyName {
		return errFactory.WithMessage(ErrResourceFaulty, fmt.Sprintf("resource %s is faulty", r.name))
	}

	r.log.Info().Str("resource", r.name).Msg("operation performed")

	return nil
}

// Close transitions the resource to StateClosed and emits a "closed"
// notification. Closing an already closed resource is a no-op: no second
// notification, no second failure. The state flips before any failure is
// reported, so a resource named FailingName still ends up closed when Close
// returns ErrCloseFailed.
func (r *Resource) Close() error {
	if r.state == StateClosed {
		return nil
	}

	r.state = StateClosed
	r.log.Info().Str("resource", r.name).Msg("resource closed")

	if r.name == FailingName {
		return errors.New().WithMessage(ErrCloseFailed, fmt.Sprintf("failed to close resource %s", r.name))
	}

	return nil
}

// Transfer moves ownership of the underlying resource to a new handle with
// the same id, name and state. The source is left inert: its close becomes a
// no-op and emits nothing, and operations on it fail as closed. Only one
// handle can ever trigger the close for a given resource identity.
func (r *Resource) Transfer() *Resource {
	moved := &Resource{
		id:    r.id,
		name:  r.name,
		state: r.state,
		log:   r.log,
	}
	r.state = StateClosed

	return moved
}
