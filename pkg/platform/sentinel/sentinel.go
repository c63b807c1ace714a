package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Loaders, classifiers and stores
// return these (optionally wrapped) so services can translate them into
// domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: file, key or resource does not exist
// - ErrInvalidState: artifact or entity is malformed or inconsistent
// - ErrSchemaMismatch: a feature vector does not match the classifier schema
// - ErrUnavailable: service or resource temporarily or permanently unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidState   = errors.New("invalid state")
	ErrSchemaMismatch = errors.New("schema mismatch")
	ErrUnavailable    = errors.New("unavailable")
)
