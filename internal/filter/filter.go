package filter

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
)

type Op string

const (
	OpGte  Op = "gte"
	OpLte  Op = "lte"
	OpEq   Op = "eq"
	OpNeq  Op = "neq"
	OpLike Op = "like"
)

const (
	ParamLimit   = "limit"
	ParamOffset  = "offset"
	ParamOrderBy = "order_by"

	separator = "__"
)

func parseOp(s string) (Op, bool) {
	switch op := Op(s); op {
	case OpGte, OpLte, OpEq, OpNeq, OpLike:
		return op, true
	}
	return "", false
}

type Term struct {
	Field  string
	Column string
	Op     Op
	Value  any
}

type Order struct {
	Field  string
	Column string
	Desc   bool
}

// Page is the pagination window. Limit 0 means no limit.
type Page struct {
	Limit  int
	Offset int
}

type Query struct {
	Terms []Term
	Order *Order
	Page  Page
	pk    string
	rank  []clause.Expression
}

// Parse turns query parameters into a Query using the whitelist in s.
// Unknown parameters, unknown operators and empty values are ignored.
// A value without the "__" separator, or a literal that does not fit the
// field type, is a FilterTermMalformedError. A bad window value is a
// ValidationError.
func Parse(s Schema, params url.Values) (Query, error) {
	q := Query{pk: s.PrimaryKey}

	page, err := parsePage(params)
	if err != nil {
		return Query{}, err
	}
	q.Page = page
	q.Order = parseOrder(s, params.Get(ParamOrderBy))

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field, ok := s.Lookup(name)
		if !ok {
			continue
		}
		for _, raw := range params[name] {
			if raw == "" {
				continue
			}
			opText, literal, found := strings.Cut(raw, separator)
			if !found {
				return Query{}, apperr.FilterTermMalformedError{Field: name, Value: raw}
			}
			op, ok := parseOp(opText)
			if !ok {
				continue
			}
			if op == OpLike && field.Kind != KindString {
				continue
			}
			value, err := field.coerce(literal)
			if err != nil {
				return Query{}, apperr.FilterTermMalformedError{Field: name, Value: raw, Err: err}
			}
			q.Terms = append(q.Terms, Term{Field: name, Column: field.Column, Op: op, Value: value})
		}
	}
	return q, nil
}

func parsePage(params url.Values) (Page, error) {
	var p Page
	if raw := params.Get(ParamLimit); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Page{}, apperr.ValidationError{Field: ParamLimit, Msg: "must be a non-negative integer", Err: err}
		}
		p.Limit = n
	}
	if raw := params.Get(ParamOffset); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Page{}, apperr.ValidationError{Field: ParamOffset, Msg: "must be a non-negative integer", Err: err}
		}
		p.Offset = n
	}
	return p, nil
}

func parseOrder(s Schema, raw string) *Order {
	dir, name, found := strings.Cut(raw, separator)
	if !found {
		return nil
	}
	var desc bool
	switch dir {
	case "asc":
	case "desc":
		desc = true
	default:
		return nil
	}
	field, ok := s.Lookup(name)
	if !ok {
		return nil
	}
	return &Order{Field: name, Column: field.Column, Desc: desc}
}
