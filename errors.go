package lsm

import "errors"

// Sentinel errors returned by the write path. Callers should compare with
// errors.Is.
var (
	ErrEmptyKey   = errors.New("lsm: key must not be empty")
	ErrEmptyValue = errors.New("lsm: value must not be empty")
)
