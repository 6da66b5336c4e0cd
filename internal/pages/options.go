package pages

import (
	"time"

	"github.com/goliatone/go-cms-l10n/internal/logging"
	"github.com/goliatone/go-cms-l10n/pkg/interfaces"
	"github.com/google/uuid"
)

// IDGenerator produces ids for new localization rows.
type IDGenerator func() uuid.UUID

// Option configures the page components at construction time.
type Option func(*options)

type options struct {
	now    func() time.Time
	id     IDGenerator
	logger interfaces.Logger
}

func resolveOptions(opts []Option) options {
	o := options{
		now:    func() time.Time { return time.Now().UTC() },
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.now = clock
		}
	}
}

func WithIDGenerator(generator IDGenerator) Option {
	return func(o *options) {
		if generator != nil {
			o.id = generator
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
