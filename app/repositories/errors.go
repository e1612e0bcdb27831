package repositories

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound = errors.New("record not found")
)

// QueryError is returned when a statement cannot be prepared or run.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: there was a problem running this query: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// PersistenceError is returned when the store rejects a write. Code holds
// the driver's condition name when one is available, e.g.
// "foreign_key_violation" or "constraint failed".
type PersistenceError struct {
	Op   string
	Code string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func newPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Code: diagnosticCode(err), Err: err}
}

func diagnosticCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name()
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code.Error()
	}
	return ""
}
