package cached

import "github.com/google/uuid"

// EventKind classifies cache events.
type EventKind uint8

const (
	// EventAttach is emitted when an instance cache is created for an owner.
	EventAttach EventKind = iota + 1
	EventHit
	EventMiss
	EventEvict
	// EventFailure is emitted when the underlying function fails. Nothing is
	// stored for the key.
	EventFailure
)

func (k EventKind) String() string {
	switch k {
	case EventAttach:
		return "attach"
	case EventHit:
		return "hit"
	case EventMiss:
		return "miss"
	case EventEvict:
		return "evict"
	case EventFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Event describes one thing that happened to an instance cache.
type Event struct {
	Kind     EventKind
	Method   string
	MethodID uuid.UUID
	CacheID  uuid.UUID
	// Key is the zero Key for EventAttach.
	Key Key
	// Err is the underlying error for EventFailure, nil if the function panicked.
	Err error
}

// Observer receives cache events. It must not call back into the cache
// that emitted the event.
type Observer func(Event)
