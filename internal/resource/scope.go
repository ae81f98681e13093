package resource

import "codeberg.org/mutker/scopeguard/internal/logger"

// Scope owns a set of resources and guarantees each is closed exactly once
// when the scope exits. Close failures during scope exit are written to the
// diagnostic sink and never returned: a cleanup failure must not mask a
// failure already propagating through the caller.
type Scope struct {
	log       logger.Logger
	resources []*Resource
	closed    bool
}

func NewScope(log logger.Logger) *Scope {
	return &Scope{log: log}
}

// Open creates a resource inside the scope. The scope carries the close
// obligation from this point on.
func (s *Scope) Open(name string) *Resource {
	r := Open(name, s.log)
	s.resources = append(s.resources, r)

	return r
}

// Track registers an already created resource with the scope, which takes
// over its close obligation. Used to adopt a handle transferred out of
// another scope.
func (s *Scope) Track(r *Resource) {
	s.resources = append(s.resources, r)
}

// Close closes every tracked resource in reverse acquisition order. Calling
// Close again is a no-op. Failures are absorbed into the diagnostic sink.
func (s *Scope) Close() {
	if s.closed {
		return
	}
	s.closed = true

	for i := len(s.resources) - 1; i >= 0; i-- {
		r := s.resources[i]
		if err := r.Close(); err != nil {
			s.log.Error().Err(err).Str("resource", r.Name()).Msg("close failed during scope exit")
		}
	}
}

// Run executes fn inside a fresh scope and closes the scope on every exit
// path. The returned error is fn's own: cleanup failures are absorbed by
// Close and reported only through the sink.
func Run(log logger.Logger, fn func(*Scope) error) error {
	s := NewScope(log)
	defer s.Close()

	return fn(s)
}
