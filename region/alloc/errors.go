package alloc

import "errors"

var (
	// ErrNoSpace indicates that no free block fit and the provider could not grow.
	ErrNoSpace = errors.New("alloc: out of memory")

	// ErrBadSize indicates a negative request size.
	ErrBadSize = errors.New("alloc: size must be non-negative")

	// ErrTooLarge indicates a request whose block would not fit a 32-bit offset.
	ErrTooLarge = errors.New("alloc: request too large")

	// ErrNotInitialized is the panic value for any operation issued before Init.
	ErrNotInitialized = errors.New("alloc: allocator not initialized")

	// ErrAlreadyInitialized indicates a second call to Init.
	ErrAlreadyInitialized = errors.New("alloc: allocator already initialized")

	// ErrBadConfig indicates invalid Options or size class configuration.
	ErrBadConfig = errors.New("alloc: invalid configuration")
)
