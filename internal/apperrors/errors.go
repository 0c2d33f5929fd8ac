package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientBalance indicates that an outgoing amount exceeds the balance of its source account.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrAccountNotFound indicates that no account matches a computed role and currency.
var ErrAccountNotFound = errors.New("target account not found")

// ErrMalformedBackup indicates that a restore document is missing required fields.
var ErrMalformedBackup = errors.New("malformed backup")

// ErrUnauthorized indicates a wrong password or a missing session.
var ErrUnauthorized = errors.New("unauthorized")
