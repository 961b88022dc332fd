// Package fetchcache implements a client-side deduplicating cache for
// asynchronous network fetches. Entries are grouped under caller-chosen
// string tags; a lookup scoped to a tag set either returns a previously
// resolved value, replays a previously resolved failure, or hands the caller
// the still-pending fetch so it can suspend and retry later.
//
// Components:
//   - Entry: one logical fetch - request identity, in-flight computation,
//     eventual outcome, expiry state.
//   - Registry: named tag groups, each an ordered sequence of shared Entry
//     references; resolves lookups, performs tag-scoped invalidation, and
//     notifies subscribers when their tags are invalidated.
//   - Transport: the external collaborator that actually issues the request
//     (see the transport subpackage for a net/http implementation).
//   - body.Set: content-type driven response decoding (JSON by default).
//
// Identity:
//
// A request is identified by a canonical fingerprint over method, URL,
// headers, and body, computed once at entry creation. Two lookups with the
// same fingerprint under overlapping tags share one underlying fetch.
//
// Lookup contract:
//
//	res := reg.Lookup(tags, req, lifespan)
//	switch {
//	case res.Failed():  // cached failure, surfaced immediately
//	case res.Ready():   // cached value
//	case res.Pending(): // suspend on res.Handle().Done(), then re-lookup
//	}
//
// A fetch is started unconditionally when an entry is created and is never
// cancelled; invalidation only makes its eventual result unreachable.
package fetchcache
