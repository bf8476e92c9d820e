// Package query implements the process-filter language: tokenizer,
// recursive-descent parser, and evaluator described in spec.md §4.4.
package query

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/sysmoni/sysmoni/internal/model"
)

// Options controls how string predicates are compiled. Numeric and time
// comparisons are unaffected.
type Options struct {
	WholeWord  bool
	IgnoreCase bool
	UseRegex   bool
	EnableGPU  bool
}

// parseDurationValue resolves the §9 "time" field open question: the
// accepted unit set is exactly what time.ParseDuration supports
// (ns, us, ms, s, m, h) — see SPEC_FULL.md §2.
func parseDurationValue(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	// Bare integers are treated as whole seconds for convenience, e.g. "90".
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(n * float64(time.Second)), nil
	}
	return 0, fmt.Errorf("%q is not a valid duration", s)
}

func (q *Query) compileRegexes(opts Options) error {
	for i := range q.Ors {
		if err := q.Ors[i].compileRegexes(opts); err != nil {
			return err
		}
	}
	return nil
}

func (o *Or) compileRegexes(opts Options) error {
	if err := o.Lhs.compileRegexes(opts); err != nil {
		return err
	}
	if o.Rhs != nil {
		return o.Rhs.compileRegexes(opts)
	}
	return nil
}

func (a *And) compileRegexes(opts Options) error {
	if err := a.Lhs.compileRegexes(opts); err != nil {
		return err
	}
	if a.Rhs != nil {
		return a.Rhs.compileRegexes(opts)
	}
	return nil
}

func (p *Prefix) compileRegexes(opts Options) error {
	if p.Sub != nil {
		return p.Sub.compileRegexes(opts)
	}
	if p.Regex == nil {
		return nil
	}
	raw := p.Regex.Raw
	if !opts.UseRegex {
		raw = regexp.QuoteMeta(raw)
	}
	if opts.IgnoreCase {
		raw = "(?i)" + raw
	}
	if opts.WholeWord {
		raw = "^" + raw + "$"
	}
	re, err := regexp.Compile(raw)
	if err != nil {
		return &ParseError{Reason: err.Error()}
	}
	p.Regex.Pattern = re
	return nil
}

// Eval reports whether rec matches the query. byCommand selects whether
// name-pattern predicates match against rec.Command instead of rec.Name
// (spec.md §4.3 "show command" toggle). Eval never panics on any AST
// produced by Parse.
func (q *Query) Eval(rec model.ProcessRecord, byCommand bool) bool {
	for _, or := range q.Ors {
		if !or.eval(rec, byCommand) {
			return false
		}
	}
	return true
}

func (o *Or) eval(rec model.ProcessRecord, byCommand bool) bool {
	if o.Rhs != nil {
		return o.Lhs.eval(rec, byCommand) || o.Rhs.eval(rec, byCommand)
	}
	return o.Lhs.eval(rec, byCommand)
}

func (a *And) eval(rec model.ProcessRecord, byCommand bool) bool {
	if a.Rhs != nil {
		return a.Lhs.eval(rec, byCommand) && a.Rhs.eval(rec, byCommand)
	}
	return a.Lhs.eval(rec, byCommand)
}

func (p *Prefix) eval(rec model.ProcessRecord, byCommand bool) bool {
	switch {
	case p.Sub != nil:
		return p.Sub.eval(rec, byCommand)
	case p.Regex != nil:
		return evalRegex(p.Regex, rec, byCommand)
	case p.Cmp != nil:
		return evalCompare(p.Cmp, rec)
	default:
		return true
	}
}

func evalRegex(m *RegexMatch, rec model.ProcessRecord, byCommand bool) bool {
	if m.Pattern == nil {
		return true
	}
	switch m.Field {
	case FieldName:
		target := rec.Name
		if byCommand {
			target = rec.Command
		}
		return m.Pattern.MatchString(target)
	case FieldPID:
		return m.Pattern.MatchString(strconv.FormatInt(int64(rec.PID), 10))
	case FieldState:
		return m.Pattern.MatchString(rec.StateLong)
	case FieldUser:
		user := "N/A"
		if rec.User != nil {
			user = *rec.User
		}
		return m.Pattern.MatchString(user)
	default:
		return true
	}
}

func evalCompare(c *CompareMatch, rec model.ProcessRecord) bool {
	if c.IsTime {
		return matchDuration(c.Op, rec.CPUTime, c.Duration)
	}
	switch c.Field {
	case FieldCPU:
		return c.Op.match(rec.CPUPercent, c.Value)
	case FieldMem:
		return c.Op.match(rec.MemPercent, c.Value)
	case FieldMemBytes:
		return c.Op.match(float64(rec.MemBytes), c.Value)
	case FieldReadBps:
		return c.Op.match(rec.ReadBps, c.Value)
	case FieldWriteBps:
		return c.Op.match(rec.WriteBps, c.Value)
	case FieldTotalRead:
		return c.Op.match(float64(rec.TotalReadBytes), c.Value)
	case FieldTotalWrite:
		return c.Op.match(float64(rec.TotalWriteBytes), c.Value)
	case FieldGPUUtil:
		if rec.GPUUtilPercent == nil {
			return false
		}
		return c.Op.match(*rec.GPUUtilPercent, c.Value)
	case FieldGPUMem:
		if rec.GPUMemBytes == nil {
			return false
		}
		return c.Op.match(float64(*rec.GPUMemBytes), c.Value)
	case FieldGPUMemPercent:
		if rec.GPUMemPercent == nil {
			return false
		}
		return c.Op.match(*rec.GPUMemPercent, c.Value)
	default:
		return true
	}
}

func matchDuration(op Comparator, lhs, rhs time.Duration) bool {
	return op.match(float64(lhs), float64(rhs))
}
