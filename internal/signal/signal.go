// Package signal implements typed, synchronous multicast callbacks.
//
// Handlers run in registration order on the emitting goroutine. A handler
// stays connected until its Subscription is disconnected; collaborators that
// are torn down must disconnect explicitly.
package signal

// Signal is a list of handlers for values of type T. The zero value is ready
// to use. Not safe for concurrent use.
type Signal[T any] struct {
	handlers []handler[T]
	nextID   uint64
}

type handler[T any] struct {
	id uint64
	fn func(T)
}

// Subscription identifies one connected handler.
type Subscription struct {
	disconnect func()
}

// Disconnect removes the handler. Safe to call more than once and on the
// zero Subscription.
func (s Subscription) Disconnect() {
	if s.disconnect != nil {
		s.disconnect()
	}
}

// Connect appends fn to the handler list.
func (s *Signal[T]) Connect(fn func(T)) Subscription {
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, handler[T]{id: id, fn: fn})
	return Subscription{disconnect: func() { s.remove(id) }}
}

// Emit calls every handler with v. Handlers connected or disconnected while
// emitting take effect from the next Emit.
func (s *Signal[T]) Emit(v T) {
	if len(s.handlers) == 0 {
		return
	}
	snapshot := make([]handler[T], len(s.handlers))
	copy(snapshot, s.handlers)
	for _, h := range snapshot {
		h.fn(v)
	}
}

// Len returns the number of connected handlers.
func (s *Signal[T]) Len() int {
	return len(s.handlers)
}

func (s *Signal[T]) remove(id uint64) {
	for i, h := range s.handlers {
		if h.id == id {
			s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
			return
		}
	}
}

// Group collects subscriptions so a collaborator can drop all of them at once.
type Group struct {
	subs []Subscription
}

// Add records sub in the group.
func (g *Group) Add(sub Subscription) {
	g.subs = append(g.subs, sub)
}

// DisconnectAll disconnects every recorded subscription and empties the group.
func (g *Group) DisconnectAll() {
	for _, s := range g.subs {
		s.Disconnect()
	}
	g.subs = nil
}
