package query

import (
	"fmt"

	"github.com/sysmoni/sysmoni/internal/errs"
)

// ParseError carries a human-readable reason and the token index where
// the parser gave up, so the process widget can show a location hint
// (spec.md §4.4 "Edge cases").
type ParseError struct {
	Reason string
	TokenAt int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("query parse error at token %d: %s", e.TokenAt, e.Reason)
}

// Unwrap lets callers test failures with errors.Is(err, errs.ErrQueryParse)
// without caring about the token-position detail.
func (e *ParseError) Unwrap() error { return errs.ErrQueryParse }

func newParseErr(q *tokenQueue, reason string) error {
	return &ParseError{Reason: reason, TokenAt: q.pos}
}
