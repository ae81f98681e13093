package main

import (
	"fmt"
	"os"

	"codeberg.org/mutker/scopeguard/internal/config"
	"codeberg.org/mutker/scopeguard/internal/errors"
	"codeberg.org/mutker/scopeguard/internal/logger"
	"codeberg.org/mutker/scopeguard/internal/resource"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	if !cfg.Debug && !cfg.Verbose {
		if level, ok := logger.ParseLevel(cfg.LogLevel); ok {
			logger.SetLogLevel(level)
		}
	}
	logger.Debug().Msg("Config loaded")
}

func main() {
	log := logger.Default()

	basicOperation(log)
	scopedLifecycle(log)
	wrappedFailure()
	transferredOwnership(log)
	multipleResources(log)
}

// basicOperation opens a resource, performs one operation and closes it
// explicitly.
func basicOperation(log logger.Logger) {
	r := resource.Open("basic", log)
	if err := r.PerformOperation(); err != nil {
		logger.Error().Err(err).Msg("operation failed")
	}
	if err := r.Close(); err != nil {
		logger.Error().Err(err).Msg("close failed")
	}
}

// scopedLifecycle lets scope exit trigger the close.
func scopedLifecycle(log logger.Logger) {
	if err := resource.Run(log, func(s *resource.Scope) error {
		r := s.Open("scoped")

		return r.PerformOperation()
	}); err != nil {
		logger.Error().Err(err).Msg("scoped block failed")
	}
}

// wrappedFailure builds a cause chain and reads it back.
func wrappedFailure() {
	errFactory := errors.New()
	root := errFactory.WithMessage(errors.ErrOperationFailed, "Original error")
	wrapped := errFactory.WrapWithMessage(errors.ErrWrapped, "Wrapper error", root)

	logger.Info().Str("error", wrapped.Message()).Msg("caught wrapped failure")
	if cause := errors.Unwrap(wrapped); cause != nil {
		logger.Info().Str("cause", cause.Error()).Msg("root cause")
	}
}

// transferredOwnership hands a resource from an inner scope to an outer one.
// The inner scope exits without closing it; the outer scope closes it once.
func transferredOwnership(log logger.Logger) {
	outer := resource.NewScope(log)
	defer outer.Close()

	if err := resource.Run(log, func(s *resource.Scope) error {
		r := s.Open("handover")
		outer.Track(r.Transfer())

		return nil
	}); err != nil {
		logger.Error().Err(err).Msg("handover block failed")
	}
}

// multipleResources exercises the fault-injection names in one scope. The
// faulty operation stops the block; scope exit still closes both resources,
// absorbing the failing close into the diagnostic sink.
func multipleResources(log logger.Logger) {
	err := resource.Run(log, func(s *resource.Scope) error {
		faulty := s.Open(resource.FaultyName)
		failing := s.Open(resource.FailingName)

		if err := faulty.PerformOperation(); err != nil {
			return err
		}

		return failing.PerformOperation()
	})
	if err != nil {
		logger.Warn().Err(err).Msg("resource block failed")
	}
}
