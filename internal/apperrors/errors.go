package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of
// the resource (e.g. changing the selected option of an approved quote).
var ErrConflict = errors.New("operation conflicts with resource state")

// ErrForbidden indicates that the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrPersistence indicates that the backing store failed. The caller's input
// was valid and the operation may be retried.
var ErrPersistence = errors.New("persistence failure")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
