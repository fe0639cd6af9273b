package sqlbuilder

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/upb/jobly/services"
)

// FilterKind is the predicate shape a filter key produces
type FilterKind int

const (
	// KindSubstring matches a case-insensitive substring
	KindSubstring FilterKind = iota
	// KindMinBound is an inclusive numeric lower bound
	KindMinBound
	// KindMaxBound is an inclusive numeric upper bound
	KindMaxBound
	// KindPresenceFlag requires a positive, non-null column when set to true
	KindPresenceFlag
)

func (k FilterKind) String() string {
	switch k {
	case KindSubstring:
		return "substring"
	case KindMinBound:
		return "min"
	case KindMaxBound:
		return "max"
	case KindPresenceFlag:
		return "flag"
	default:
		return "unknown"
	}
}

func (k FilterKind) isBound() bool {
	return k == KindMinBound || k == KindMaxBound
}

// FilterField maps one accepted filter key to a column
type FilterField struct {
	Key    string
	Kind   FilterKind
	Column string
}

// FilterDomain is the closed set of filters accepted for one resource.
// Predicates are emitted in Fields order.
type FilterDomain struct {
	Name   string
	Fields []FilterField
}

// Filters are raw filter values keyed by filter key
type Filters map[string]any

var (
	CompanyFilters = FilterDomain{
		Name: "companies",
		Fields: []FilterField{
			{Key: "name", Kind: KindSubstring, Column: "name"},
			{Key: "minEmployees", Kind: KindMinBound, Column: "num_employees"},
			{Key: "maxEmployees", Kind: KindMaxBound, Column: "num_employees"},
		},
	}

	JobFilters = FilterDomain{
		Name: "jobs",
		Fields: []FilterField{
			{Key: "title", Kind: KindSubstring, Column: "title"},
			{Key: "minSalary", Kind: KindMinBound, Column: "salary"},
			{Key: "hasEquity", Kind: KindPresenceFlag, Column: "equity"},
		},
	}
)

// Keys returns the accepted filter keys in order
func (d FilterDomain) Keys() []string {
	keys := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		keys[i] = f.Key
	}
	return keys
}

func (d FilterDomain) field(key string) (FilterField, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FilterField{}, false
}

// BuildFilterClause validates filters against domain and renders them as
// predicates joined by " AND ".
//
// Validation runs before any SQL is produced, in this order: unknown keys
// (services.ErrUnrecognizedFilterKey, reporting the first in sorted order),
// non-numeric bounds
// (services.ErrInvalidType), then a lower bound above an upper bound on the
// same column (services.ErrInvalidRange). No filters yields an empty
// Fragment.
func BuildFilterClause(domain FilterDomain, filters Filters) (Fragment, error) {
	for _, key := range slices.Sorted(maps.Keys(filters)) {
		if _, ok := domain.field(key); !ok {
			return Fragment{}, services.ErrUnrecognizedFilterKey.
				WithMessage(fmt.Sprintf("unrecognized filter %q for %s", key, domain.Name)).
				WithDetail("key", key)
		}
	}

	bounds := make(map[string]any, len(filters))
	for _, f := range domain.Fields {
		raw, ok := filters[f.Key]
		if !ok || !f.Kind.isBound() {
			continue
		}
		n, err := toNumber(raw)
		if err != nil {
			return Fragment{}, services.ErrInvalidType.
				WithMessage(fmt.Sprintf("%s must be a number", f.Key)).
				WithDetail("key", f.Key)
		}
		bounds[f.Key] = n
	}

	if err := checkRanges(domain, bounds); err != nil {
		return Fragment{}, err
	}

	w := &clauseWriter{}
	for _, f := range domain.Fields {
		raw, ok := filters[f.Key]
		if !ok {
			continue
		}
		switch f.Kind {
		case KindSubstring:
			w.add(fmt.Sprintf("%s ILIKE '%%' || %s || '%%'", f.Column, w.bind(toText(raw))))
		case KindMinBound:
			w.add(fmt.Sprintf("%s >= %s", f.Column, w.bind(bounds[f.Key])))
		case KindMaxBound:
			w.add(fmt.Sprintf("%s <= %s", f.Column, w.bind(bounds[f.Key])))
		case KindPresenceFlag:
			if isTrue(raw) {
				w.add(fmt.Sprintf("%s IS NOT NULL AND %s > 0", f.Column, f.Column))
			}
		}
	}
	return w.fragment(" AND "), nil
}

// checkRanges rejects a min bound greater than a max bound on the same column
func checkRanges(domain FilterDomain, bounds map[string]any) error {
	for _, lo := range domain.Fields {
		if lo.Kind != KindMinBound {
			continue
		}
		lower, ok := bounds[lo.Key]
		if !ok {
			continue
		}
		for _, hi := range domain.Fields {
			if hi.Kind != KindMaxBound || hi.Column != lo.Column {
				continue
			}
			upper, ok := bounds[hi.Key]
			if !ok {
				continue
			}
			if asFloat(lower) > asFloat(upper) {
				return services.ErrInvalidRange.
					WithMessage(fmt.Sprintf("%s cannot be greater than %s", lo.Key, hi.Key)).
					WithDetail(lo.Key, lower).
					WithDetail(hi.Key, upper)
			}
		}
	}
	return nil
}

// toNumber coerces v to int64 when integral, float64 otherwise
func toNumber(v any) (any, error) {
	var f float64
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float32:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		parsed, err := n.Float64()
		if err != nil {
			return nil, err
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		f = parsed
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("not a finite number: %v", f)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f), nil
	}
	return f, nil
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return math.NaN()
}

func toText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func isTrue(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(strings.TrimSpace(b), "true")
	}
	return false
}
