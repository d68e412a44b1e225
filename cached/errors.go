package cached

import "github.com/cockroachdb/errors"

var (
	// ErrUnkeyableArguments is returned when call arguments cannot form a
	// cache key. The underlying function is not invoked.
	ErrUnkeyableArguments = errors.New("cached: arguments cannot form a cache key")

	// ErrAttachmentConflict is returned on first access when an instance has
	// nowhere to hold its cache, or its slot holds an incompatible cache.
	ErrAttachmentConflict = errors.New("cached: cannot attach instance cache")

	// ErrInvalidMaxSize is the panic value of constructors given a
	// non-positive max size.
	ErrInvalidMaxSize = errors.New("cached: max size must be positive")

	// ErrEmptyName is the panic value of constructors given an empty method name.
	ErrEmptyName = errors.New("cached: method name must not be empty")
)
