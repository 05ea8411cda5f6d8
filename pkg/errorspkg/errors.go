// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates a storage or other internal fault. Unlike business
// rejections it may be worth retrying, which is the caller's call to make.
var ErrInternal = errors.New("internal")

// ErrTimeout indicates that the underlying store did not answer in time.
// Surfaced separately from ErrInternal so callers can apply a retry policy.
var ErrTimeout = errors.New("storage timeout")
