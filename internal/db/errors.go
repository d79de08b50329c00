package db

import "errors"

// ErrKeyNotFound signals a missing blob.
var ErrKeyNotFound = errors.New("db: key not found")

// Op constants map to store command names for error context.
const (
	OpPing    = "PING"
	OpHSet    = "HSET"
	OpHGet    = "HGET"
	OpHGetAll = "HGETALL"
	OpRead    = "READ"
	OpWrite   = "WRITE"
	OpStat    = "STAT"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
