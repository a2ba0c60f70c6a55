package ginternals

import "errors"

// ErrObjectNotFound is an error corresponding to an object not being
// found in the object store
var ErrObjectNotFound = errors.New("object not found")

// ErrInvalidOid is returned when a given value isn't a valid Oid
var ErrInvalidOid = errors.New("invalid Oid")
