package session

import "sync"

// ChangeType represents the kind of settings change being broadcast.
type ChangeType int

const (
	// ChangeSet indicates a single key was written.
	ChangeSet ChangeType = iota

	// ChangeReload indicates the whole store was reloaded from disk.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change is a "settings changed" broadcast.
type Change struct {
	// Key is the key that was written. Empty for reloads.
	Key string

	// Type is the kind of change.
	Type ChangeType

	// Source is the ID of the window that made the change, or empty when
	// the change came from outside any window.
	Source string
}

// Observer receives broadcasts.
type Observer func(change Change)

// Subscription is an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.notifier == nil {
		return
	}
	s.notifier.unsubscribe(s.id)
	s.notifier = nil
}

// Notifier is the single shared publisher for settings changes.
// Delivery is synchronous and runs on the publishing goroutine.
type Notifier struct {
	mu        sync.RWMutex
	observers map[uint64]Observer
	order     []uint64
	nextID    uint64
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		observers: make(map[uint64]Observer),
	}
}

// Subscribe registers an observer for every change.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = observer
	n.order = append(n.order, id)

	return &Subscription{id: id, notifier: n}
}

// Notify delivers change to every observer in subscription order.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.order))
	for _, id := range n.order {
		if obs, ok := n.observers[id]; ok {
			observers = append(observers, obs)
		}
	}
	n.mu.RUnlock()

	// Call observers outside the lock so they may subscribe or unsubscribe.
	for _, obs := range observers {
		obs(change)
	}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.observers[id]; !ok {
		return
	}
	delete(n.observers, id)
	for i, v := range n.order {
		if v == id {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
}
