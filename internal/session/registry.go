// Package session tracks the live windows of one application instance and
// fans settings changes out to them.
package session

import (
	"errors"
	"sync"
)

// Registry errors.
var (
	// ErrDuplicateMember indicates a member with the same ID is already registered.
	ErrDuplicateMember = errors.New("window already registered")

	// ErrMemberNotFound indicates the ID is not registered.
	ErrMemberNotFound = errors.New("window not registered")

	// ErrEmptyID indicates a member without an ID.
	ErrEmptyID = errors.New("window has no id")
)

// Member is a live window as seen by the registry.
type Member interface {
	// ID returns the process-unique window identifier.
	ID() string

	// SyncSettings re-reads every tracked setting and re-applies it.
	SyncSettings(change Change)
}

type entry struct {
	member Member
	sub    *Subscription
}

// Registry is the arena holding every constructed, not yet destroyed window.
// Members subscribe to the shared notifier when added and unsubscribe when
// removed, so a broadcast always reaches every other live window regardless
// of creation order.
type Registry struct {
	mu       sync.RWMutex
	members  map[string]*entry
	order    []string
	notifier *Notifier
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		members:  make(map[string]*entry),
		notifier: NewNotifier(),
	}
}

// Add registers m and subscribes it to settings broadcasts.
func (r *Registry) Add(m Member) error {
	id := m.ID()
	if id == "" {
		return ErrEmptyID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; ok {
		return ErrDuplicateMember
	}

	sub := r.notifier.Subscribe(func(change Change) {
		if change.Source == id {
			return
		}
		m.SyncSettings(change)
	})
	r.members[id] = &entry{member: m, sub: sub}
	r.order = append(r.order, id)
	return nil
}

// Remove unregisters the member with id and cancels its subscription.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.members[id]
	if !ok {
		return ErrMemberNotFound
	}
	e.sub.Unsubscribe()
	delete(r.members, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the member with id.
func (r *Registry) Get(id string) (Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.members[id]
	if !ok {
		return nil, false
	}
	return e.member, true
}

// All returns the members in registration order.
func (r *Registry) All() []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Member, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.members[id].member)
	}
	return out
}

// ForEachOther calls fn for every member except the one with id.
func (r *Registry) ForEachOther(id string, fn func(Member)) {
	for _, m := range r.All() {
		if m.ID() != id {
			fn(m)
		}
	}
}

// Len returns the number of live members.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Broadcast tells every member except change.Source to resynchronize.
func (r *Registry) Broadcast(change Change) {
	r.notifier.Notify(change)
}

// Subscribe registers an observer outside the window set, for example a
// logger or a test double.
func (r *Registry) Subscribe(observer Observer) *Subscription {
	return r.notifier.Subscribe(observer)
}
