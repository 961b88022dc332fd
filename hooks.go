package fetchcache

// Hooks lightweight callbacks for high-signal cache events.
// Implementations MUST be cheap and non-blocking: the registry calls them on
// hot paths, sometimes with its internal lock held, so a hook must never
// call back into the Registry. Wrap with hooks/async to offload slow sinks.
type Hooks interface {
	// A new entry was created and its fetch started.
	EntryCreated(key, url string)

	// An entry's outcome settled. failed reports whether it settled
	// with an error.
	EntryResolved(key string, failed bool)

	// An entry became expired. forced is true for explicit invalidation,
	// false for lifespan timer expiry.
	EntryExpired(key string, forced bool)

	// An invalidation operation finished. removed is the number of entries
	// it expired or dropped (0 is possible for InvalidateAll on empty tags).
	InvalidationBatch(tags []string, removed int)

	// Subscribers whose tag sets intersected an invalidation were called.
	SubscribersNotified(count int)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) EntryCreated(string, string)     {}
func (NopHooks) EntryResolved(string, bool)      {}
func (NopHooks) EntryExpired(string, bool)       {}
func (NopHooks) InvalidationBatch([]string, int) {}
func (NopHooks) SubscribersNotified(int)         {}
