// Package lifetime provides the host-destruction notification channel for
// the analysis core: an explicit registry mapping host identities to
// callbacks, with registration and deregistration as scoped operations.
//
// The registry does not own hosts and hosts own nothing here; it exists so a
// per-property root can weakly observe the components feeding it and prune
// entries reactively when a host is destroyed.
package lifetime

import "sync"

// Callback is invoked with the destroyed host's identity.
type Callback func(hostID uint64)

// Subscription is an opaque token returned by Track and consumed by Untrack.
// The zero value is never a live subscription.
type Subscription uint64

// registry is the implementation of the Registry interface.
type registry struct {
	mu     sync.RWMutex
	nextID Subscription
	subs   map[Subscription]subscription
	byHost map[uint64]map[Subscription]struct{}
}

// subscription pairs a tracked host with its callback.
type subscription struct {
	hostID   uint64
	callback Callback
}

// Registry is a process-wide destruction notification channel. Observers
// Track a host identity and are called back exactly once if that identity is
// destroyed; a subscription ends either by Untrack or by the destruction
// notification itself, never both.
type Registry interface {
	// Track registers a callback for a host identity.
	//
	// Parameters:
	//   - hostID: the host identity to observe
	//   - callback: invoked with the identity when the host is destroyed
	//
	// Returns:
	//   - Subscription: token for Untrack
	Track(hostID uint64, callback Callback) Subscription

	// Untrack ends a subscription. Untracking an already-ended subscription
	// is a no-op, so observers that were notified need no bookkeeping.
	//
	// Parameters:
	//   - sub: the token returned by Track
	Untrack(sub Subscription)

	// NotifyDestroyed invokes and removes every callback registered for the
	// host identity. Callbacks run synchronously on the calling goroutine,
	// after the registry's own bookkeeping for the identity is cleared, so a
	// callback may Track or Untrack freely.
	//
	// Parameters:
	//   - hostID: the destroyed host identity
	NotifyDestroyed(hostID uint64)

	// TrackedCount returns the number of live subscriptions.
	//
	// Returns:
	//   - int: the live subscription count
	TrackedCount() int
}

var _ Registry = &registry{}

// NewRegistry creates an empty destruction notification registry.
//
// Returns:
//   - Registry: the new registry
func NewRegistry() Registry {
	return &registry{
		subs:   make(map[Subscription]subscription),
		byHost: make(map[uint64]map[Subscription]struct{}),
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry Registry
)

// Default returns the shared process-wide registry. Components that do not
// inject their own registry observe through this one.
//
// Returns:
//   - Registry: the shared registry
func Default() Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

func (r *registry) Track(hostID uint64, callback Callback) Subscription {
	if callback == nil {
		panic("lifetime: Track requires a non-nil callback")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	sub := r.nextID
	r.subs[sub] = subscription{hostID: hostID, callback: callback}

	hostSubs, ok := r.byHost[hostID]
	if !ok {
		hostSubs = make(map[Subscription]struct{})
		r.byHost[hostID] = hostSubs
	}
	hostSubs[sub] = struct{}{}

	return sub
}

func (r *registry) Untrack(sub Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.subs[sub]
	if !ok {
		return
	}
	delete(r.subs, sub)

	hostSubs := r.byHost[entry.hostID]
	delete(hostSubs, sub)
	if len(hostSubs) == 0 {
		delete(r.byHost, entry.hostID)
	}
}

func (r *registry) NotifyDestroyed(hostID uint64) {
	r.mu.Lock()
	hostSubs := r.byHost[hostID]
	callbacks := make([]Callback, 0, len(hostSubs))
	for sub := range hostSubs {
		callbacks = append(callbacks, r.subs[sub].callback)
		delete(r.subs, sub)
	}
	delete(r.byHost, hostID)
	r.mu.Unlock()

	for _, callback := range callbacks {
		callback(hostID)
	}
}

func (r *registry) TrackedCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}
