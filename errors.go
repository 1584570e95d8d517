package wisard

import "errors"

// Construction errors returned by New. They indicate invalid configuration,
// never a bad sample, and retrying with the same parameters cannot succeed.
var (
	ErrInvalidInputSize = errors.New("wisard: input size must be positive")
	ErrInvalidAddrSize  = errors.New("wisard: address size must be in 1..32")
	ErrNoLabels         = errors.New("wisard: label set must not be empty")
	ErrDuplicateLabel   = errors.New("wisard: duplicate label")
	ErrInvalidOption    = errors.New("wisard: invalid option value")
)

// ErrUnknownLabel is returned by Fit for a label outside the declared set.
// The model is left unchanged.
var ErrUnknownLabel = errors.New("wisard: unknown label")

// ErrBadSnapshot is returned by Load when a snapshot cannot be restored.
var ErrBadSnapshot = errors.New("wisard: invalid snapshot")
