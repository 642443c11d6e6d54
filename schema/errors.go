// Package schema declares the indexed variable model: index bounds,
// per-variable index lists, and the mixed-radix row layout derived from
// them. It is the translation layer between symbolic (variable, indices...)
// tuples and dense vector positions used by the lp and ga packages.
//
// Error policy: only sentinel variables are exported. Callers branch with
// errors.Is; context is attached with fmt.Errorf("%w", ...) at the call site
// that detected the problem, never baked into the sentinel message.
package schema

import "errors"

var (
	// ErrSchemaViolation indicates the schema declaration itself is
	// inconsistent: an unknown variable, a non-square j/i pair, a wrong
	// index list for an LP variable, or similar structural problems.
	ErrSchemaViolation = errors.New("schema: violation")

	// ErrIndexDomain indicates an index was out of range, or the supplied
	// index key set did not match a variable's declared index list.
	ErrIndexDomain = errors.New("schema: index out of domain")
)
