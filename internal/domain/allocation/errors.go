package allocation

import "errors"

// The three caller-recoverable failure kinds. Anything else coming out of
// the storage layer is treated as a transient store failure and may be
// retried; these three must not be retried verbatim.
var (
	ErrInvalidInput      = errors.New("invalid allocation request")
	ErrNotFound          = errors.New("drug batch not found")
	ErrInsufficientStock = errors.New("not enough stock in central inventory")
)
