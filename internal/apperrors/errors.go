package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvariant indicates that stored data violates a structural invariant
// (e.g. more than one department assignment marked current for the same
// sub-batch). It signals corrupt state rather than bad input, so handlers
// surface it as a server error, not a 4xx.
var ErrInvariant = errors.New("data invariant violated")
