package loganalyze

import (
	"errors"

	"github.com/crimson-sun/loganalyze/internal/operation"
	"github.com/crimson-sun/loganalyze/internal/source"
)

// Errors returned by New and Analyze. Test with errors.Is.
var (
	ErrMissingField    = operation.ErrMissingField
	ErrFieldType       = operation.ErrFieldType
	ErrEmptyAggregate  = operation.ErrEmptyAggregate
	ErrDegenerateRange = operation.ErrDegenerateRange
	ErrKeyCollision    = operation.ErrKeyCollision
	ErrIO              = source.ErrIO

	// ErrDuplicateOperation is returned by New when WithOperations names
	// the same operation twice.
	ErrDuplicateOperation = errors.New("operation selected twice")
)
