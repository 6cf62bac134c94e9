// Package events provides the synchronous publish/subscribe bus used for all
// cross-system gameplay notifications. The bus is an explicit object created
// per run or session and passed to the components that need it; it contains
// no external dependencies to keep game logic pure and testable.
package events

// Handler is a callback invoked with the payload of a published event.
type Handler func(payload any)

// Subscription identifies a registered handler so it can be removed later.
// Go functions are not comparable, so unsubscription works by token.
type Subscription struct {
	event string
	id    uint64
}

// subscriber pairs a handler with its registration token.
type subscriber struct {
	id uint64
	fn Handler
}

// Bus dispatches named events to subscribers synchronously, in registration
// order. There is no queuing and no background goroutines: everything runs on
// the single logical game thread, one Publish at a time (re-entrant publishes
// from inside a handler are allowed and nest).
type Bus struct {
	nextID   uint64
	handlers map[string][]subscriber
	onPanic  func(event string, recovered any)
}

// New creates an empty event bus.
func New() *Bus {
	return &Bus{
		handlers: make(map[string][]subscriber),
	}
}

// SetPanicHandler installs a hook called when a subscriber panics during
// dispatch. The panic is always recovered so remaining subscribers still run;
// the hook only exists so the platform layer can log the failure.
func (b *Bus) SetPanicHandler(fn func(event string, recovered any)) {
	b.onPanic = fn
}

// Subscribe registers a handler for the named event and returns its token.
// Handlers for the same event are invoked in the order they subscribed.
func (b *Bus) Subscribe(event string, fn Handler) Subscription {
	if fn == nil {
		return Subscription{}
	}
	b.nextID++
	b.handlers[event] = append(b.handlers[event], subscriber{id: b.nextID, fn: fn})
	return Subscription{event: event, id: b.nextID}
}

// Unsubscribe removes a previously registered handler.
// Removing an unknown or already-removed subscription is a no-op.
func (b *Bus) Unsubscribe(sub Subscription) {
	subs, ok := b.handlers[sub.event]
	if !ok {
		return
	}
	for i, s := range subs {
		if s.id == sub.id {
			b.handlers[sub.event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish synchronously invokes all handlers currently registered for the
// event, in registration order. Dispatch iterates over a snapshot of the
// subscriber list, so handlers may subscribe, unsubscribe (including
// themselves), or publish further events without corrupting delivery.
// Handlers added during a publish are not invoked by that same publish.
// A panicking handler is recovered and does not stop the remaining handlers.
func (b *Bus) Publish(event string, payload any) {
	subs := b.handlers[event]
	if len(subs) == 0 {
		return
	}

	// Snapshot before iterating; Unsubscribe copies on removal so the
	// snapshot stays intact even when handlers mutate the registry.
	snapshot := subs
	for _, s := range snapshot {
		if !b.registered(event, s.id) {
			continue
		}
		b.dispatch(event, s.fn, payload)
	}
}

// registered reports whether the subscriber is still present. A handler
// removed by an earlier handler in the same publish must not run.
func (b *Bus) registered(event string, id uint64) bool {
	for _, s := range b.handlers[event] {
		if s.id == id {
			return true
		}
	}
	return false
}

// dispatch invokes a single handler with panic isolation.
func (b *Bus) dispatch(event string, fn Handler, payload any) {
	defer func() {
		if r := recover(); r != nil && b.onPanic != nil {
			b.onPanic(event, r)
		}
	}()
	fn(payload)
}

// Clear removes every subscriber for every event. Called at major state
// transitions so stale references do not accumulate across runs.
// Safe to call when no subscribers exist.
func (b *Bus) Clear() {
	b.handlers = make(map[string][]subscriber)
}

// SubscriberCount returns the number of handlers registered for an event.
func (b *Bus) SubscriberCount(event string) int {
	return len(b.handlers[event])
}
