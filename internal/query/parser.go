package query

import (
	"strconv"
	"strings"
)

// parser threads the enableGPU flag (the only parse-time knob; the
// whole-word/ignore-case/use-regex flags only affect regex compilation,
// done after the AST is built — see eval.go's compileRegexes) through
// the recursive-descent functions below.
type parser struct {
	q         *tokenQueue
	enableGPU bool
}

// Parse parses raw into a Query AST and compiles its regex predicates.
// An empty query matches every record (spec.md §4.4 "Edge cases").
func Parse(raw string, opts Options) (*Query, error) {
	p := &parser{q: newTokenQueue(tokenize(raw)), enableGPU: opts.EnableGPU}
	query, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	if err := query.compileRegexes(opts); err != nil {
		return nil, err
	}
	return query, nil
}

func (p *parser) parseQuery() (*Query, error) {
	if p.q.empty() {
		return &Query{}, nil
	}
	first, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	ors := []Or{first}
	for !p.q.empty() {
		next, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		ors = append(ors, next)
	}
	return &Query{Ors: ors}, nil
}

func (p *parser) parseOr() (Or, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return Or{}, err
	}
	var rhs *And
	for {
		tok, ok := p.q.front()
		if !ok {
			break
		}
		lower := strings.ToLower(tok)
		if lower == "or" || lower == "||" {
			p.q.popFront()
			r, err := p.parseAnd()
			if err != nil {
				return Or{}, err
			}
			rhs = &r
			next, ok := p.q.front()
			if !ok {
				break
			}
			if nlower := strings.ToLower(next); nlower == "or" || nlower == "||" {
				merged := Or{Lhs: lhs, Rhs: rhs}
				lhs = And{Lhs: Prefix{Sub: &merged}}
				rhs = nil
			}
			continue
		}
		if isComparator(lower) {
			return Or{}, newParseErr(p.q, "comparison not valid here")
		}
		break
	}
	return Or{Lhs: lhs, Rhs: rhs}, nil
}

func (p *parser) parseAnd() (And, error) {
	lhs, err := p.parsePrefix(false)
	if err != nil {
		return And{}, err
	}
	var rhs *Prefix
	for {
		tok, ok := p.q.front()
		if !ok {
			break
		}
		lower := strings.ToLower(tok)
		if lower == "and" || lower == "&&" {
			p.q.popFront()
			r, err := p.parsePrefix(false)
			if err != nil {
				return And{}, err
			}
			rhs = &r
			next, ok := p.q.front()
			if !ok {
				break
			}
			if nlower := strings.ToLower(next); nlower == "and" || nlower == "&&" {
				merged := And{Lhs: lhs, Rhs: rhs}
				lhs = Prefix{Sub: &Or{Lhs: merged}}
				rhs = nil
			}
			continue
		}
		if isComparator(lower) {
			return And{}, newParseErr(p.q, "comparison not valid here")
		}
		break
	}
	return And{Lhs: lhs, Rhs: rhs}, nil
}

func (p *parser) parsePrefix(insideQuotation bool) (Prefix, error) {
	tok, ok := p.q.popFront()
	if !ok {
		if insideQuotation {
			return Prefix{}, newParseErr(p.q, "missing closing quotation")
		}
		return Prefix{}, newParseErr(p.q, "invalid query")
	}

	if insideQuotation {
		if tok == `"` {
			// Empty quotes: push the close quote back for the caller to
			// consume and report a literal empty name match.
			p.q.pushFront(`"`)
			return Prefix{Regex: &RegexMatch{Field: FieldName, Raw: ""}}, nil
		}
		quoted := tok
		for {
			next, ok := p.q.front()
			if !ok || next == `"` {
				break
			}
			quoted += next
			p.q.popFront()
		}
		return Prefix{Regex: &RegexMatch{Field: FieldName, Raw: quoted}}, nil
	}

	switch tok {
	case "(":
		return p.parseParenGroup()
	case ")":
		return Prefix{}, newParseErr(p.q, "missing opening parentheses")
	case `"`:
		inner, err := p.parsePrefix(true)
		if err != nil {
			return Prefix{}, err
		}
		closer, ok := p.q.popFront()
		if !ok || closer != `"` {
			return Prefix{}, newParseErr(p.q, "missing closing quotation")
		}
		return inner, nil
	}

	field, explicit := lookupField(tok, p.enableGPU)
	if !explicit {
		return Prefix{Regex: &RegexMatch{Field: FieldName, Raw: tok}}, nil
	}

	content, ok := p.q.popFront()
	if !ok {
		return Prefix{}, newParseErr(p.q, "missing argument for search prefix")
	}

	switch field {
	case FieldPID, FieldState, FieldUser, FieldName:
		if content == "=" {
			next, ok := p.q.popFront()
			if !ok {
				return Prefix{}, newParseErr(p.q, "missing value")
			}
			return Prefix{Regex: &RegexMatch{Field: field, Raw: next}}, nil
		}
		return Prefix{Regex: &RegexMatch{Field: field, Raw: content}}, nil
	case FieldTime:
		cmp, durStr, err := p.parseComparatorAndValue(content)
		if err != nil {
			return Prefix{}, err
		}
		dur, err := parseDurationValue(durStr)
		if err != nil {
			return Prefix{}, newParseErr(p.q, "invalid duration: "+err.Error())
		}
		return Prefix{Cmp: &CompareMatch{Field: field, Op: cmp, Duration: dur, IsTime: true}}, nil
	default:
		cmp, valStr, err := p.parseComparatorAndValue(content)
		if err != nil {
			return Prefix{}, err
		}
		val, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return Prefix{}, newParseErr(p.q, "invalid numeric value: "+valStr)
		}
		switch field {
		case FieldMemBytes, FieldReadBps, FieldWriteBps, FieldTotalRead, FieldTotalWrite, FieldGPUMem:
			val = p.applyUnit(val)
		}
		return Prefix{Cmp: &CompareMatch{Field: field, Op: cmp, Value: val}}, nil
	}
}

func (p *parser) parseParenGroup() (Prefix, error) {
	if p.q.empty() {
		return Prefix{}, newParseErr(p.q, "missing closing parentheses")
	}
	var ors []Or
	for {
		front, ok := p.q.front()
		if !ok || front == ")" {
			break
		}
		o, err := p.parseOr()
		if err != nil {
			return Prefix{}, err
		}
		ors = append(ors, o)
	}
	if len(ors) == 0 {
		return Prefix{}, newParseErr(p.q, "no values within parentheses group")
	}
	combined := foldOrs(ors)
	closer, ok := p.q.popFront()
	if !ok || closer != ")" {
		return Prefix{}, newParseErr(p.q, "missing closing parentheses")
	}
	return Prefix{Sub: &combined}, nil
}

// foldOrs combines a whitespace-separated sequence of Or groups found
// inside one pair of parentheses into a single AND-chain, mirroring the
// top-level Query's implicit-AND-of-Ors semantics inside a scope.
func foldOrs(ors []Or) Or {
	acc := ors[0]
	for i := 1; i < len(ors); i++ {
		lhs := acc
		rhs := ors[i]
		acc = Or{Lhs: And{
			Lhs: Prefix{Sub: &lhs},
			Rhs: &Prefix{Sub: &rhs},
		}}
	}
	return acc
}

func (p *parser) parseComparatorAndValue(content string) (Comparator, string, error) {
	switch content {
	case "=":
		v, ok := p.q.popFront()
		if !ok {
			return 0, "", newParseErr(p.q, "missing value")
		}
		return CmpEqual, v, nil
	case ">", "<":
		next, ok := p.q.popFront()
		if !ok {
			return 0, "", newParseErr(p.q, "missing value")
		}
		if next == "=" {
			v, ok := p.q.popFront()
			if !ok {
				return 0, "", newParseErr(p.q, "missing value")
			}
			if content == ">" {
				return CmpGreaterOrEqual, v, nil
			}
			return CmpLessOrEqual, v, nil
		}
		if content == ">" {
			return CmpGreater, next, nil
		}
		return CmpLess, next, nil
	default:
		return 0, "", newParseErr(p.q, "expected a comparator")
	}
}

func (p *parser) applyUnit(val float64) float64 {
	tok, ok := p.q.front()
	if !ok {
		return val
	}
	mult, ok2 := unitMultiplier[strings.ToLower(tok)]
	if !ok2 {
		return val
	}
	p.q.popFront()
	return val * mult
}

func isComparator(lower string) bool {
	return lower == "=" || lower == ">" || lower == "<"
}

// lookupField resolves tok to a known field name. explicit is false when
// tok isn't a recognized field alias at all, in which case the caller
// treats tok itself as a bare name/command pattern rather than a field
// reference followed by a separate value.
func lookupField(tok string, enableGPU bool) (field Field, explicit bool) {
	lower := strings.ToLower(tok)
	if enableGPU {
		if f, ok := gpuFieldTable[lower]; ok {
			return f, true
		}
	}
	if f, ok := fieldTable[lower]; ok {
		return f, true
	}
	return FieldName, false
}
