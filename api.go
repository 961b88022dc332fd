package fetchcache

import (
	"errors"
	"time"

	"github.com/richardfuca/fetchcache/body"
)

// DefaultTag is the tag used when a caller supplies no tag set.
const DefaultTag = "default"

var ErrNoTransport = errors.New("fetchcache: transport is required")

// Options tune the behavior of a Registry.
// Only Transport is required; others have sensible defaults.
type Options struct {
	// Required
	Transport Transport

	Decoders   body.Set // nil => body.Defaults()
	Logger     Logger   // if nil, NopLogger is used
	Hooks      Hooks    // if nil, NopHooks is used
	DefaultTag string   // "" => DefaultTag
	// SweepInterval enables a periodic cleanup pass that drops expired
	// entries from every tag. 0 disables it; invalidation-triggered
	// cleanup still runs either way.
	SweepInterval time.Duration
}

// New constructs a Registry. Call Close when done to stop the sweep loop.
func New(opts Options) (*Registry, error) {
	return newRegistry(opts)
}
