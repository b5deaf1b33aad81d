package mapmatcher

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// exportAll lets Equal compare structs with unexported fields instead of
// panicking on them
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// was is the conventional mismatch description
func was(actual interface{}) string {
	return "was " + DescribeValue(actual)
}

// wasA describes values of the wrong type
func wasA(actual interface{}) string {
	if actual == nil {
		return "was null"
	}
	return fmt.Sprintf("was a %T (%s)", actual, DescribeValue(actual))
}

type equalMatcher struct {
	expected interface{}
	opts     cmp.Options
}

// Equal expects a value equal to expected, as decided by cmp.Equal. Options
// are passed through to cmp.Equal
func Equal(expected interface{}, opts ...cmp.Option) Matcher {
	return &equalMatcher{expected: expected, opts: append(cmp.Options{exportAll}, opts...)}
}

func (m *equalMatcher) Matches(actual interface{}) bool {
	return cmp.Equal(m.expected, actual, m.opts)
}

func (m *equalMatcher) Describe() string { return DescribeValue(m.expected) }

// DescribeMismatch names the actual type when it differs from the expected
// one, <1> and float64 <1> render the same
func (m *equalMatcher) DescribeMismatch(actual interface{}) string {
	if m.expected != nil && actual != nil && reflect.TypeOf(m.expected) != reflect.TypeOf(actual) {
		return wasA(actual)
	}
	return was(actual)
}

type nilMatcher struct{}

// Nil expects nil
func Nil() Matcher { return nilMatcher{} }

func (nilMatcher) Matches(actual interface{}) bool           { return isNil(actual) }
func (nilMatcher) Describe() string                          { return "null" }
func (nilMatcher) DescribeMismatch(actual interface{}) string { return was(actual) }

type notNilMatcher struct{}

// NotNil expects anything but nil
func NotNil() Matcher { return notNilMatcher{} }

func (notNilMatcher) Matches(actual interface{}) bool           { return !isNil(actual) }
func (notNilMatcher) Describe() string                          { return "not null" }
func (notNilMatcher) DescribeMismatch(actual interface{}) string { return was(actual) }

type anything struct{}

// Anything matches every value, including nil
func Anything() Matcher { return anything{} }

func (anything) Matches(interface{}) bool                   { return true }
func (anything) Describe() string                           { return "ANYTHING" }
func (anything) DescribeMismatch(actual interface{}) string { return was(actual) }

// toFloat converts any integer or floating point value to a float64
func toFloat(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

type closeTo struct {
	target, delta float64
}

// CloseTo expects a number within delta of target
func CloseTo(target, delta float64) Matcher {
	return closeTo{target: target, delta: delta}
}

func (m closeTo) excess(actual interface{}) (float64, bool) {
	f, ok := toFloat(actual)
	if !ok {
		return 0, false
	}
	return math.Abs(f-m.target) - m.delta, true
}

func (m closeTo) Matches(actual interface{}) bool {
	excess, ok := m.excess(actual)
	return ok && excess <= 0
}

func (m closeTo) Describe() string {
	return fmt.Sprintf("a numeric value within %s of %s", DescribeValue(m.delta), DescribeValue(m.target))
}

func (m closeTo) DescribeMismatch(actual interface{}) string {
	excess, ok := m.excess(actual)
	if !ok {
		return wasA(actual)
	}
	return fmt.Sprintf("%s differed by %s more than delta %s", DescribeValue(actual), DescribeValue(excess), DescribeValue(m.delta))
}

// compare orders two numbers or two strings
func compare(a, b interface{}) (int, bool) {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		}
		return 0, true
	}
	sa, ok := a.(string)
	if !ok {
		return 0, false
	}
	sb, ok := b.(string)
	if !ok {
		return 0, false
	}
	return strings.Compare(sa, sb), true
}

var relations = map[int]string{-1: "less than", 0: "equal to", 1: "greater than"}

type ordering struct {
	bound       interface{}
	accept      []int
	description string
}

// GreaterThan expects a number or string ordered after bound
func GreaterThan(bound interface{}) Matcher {
	return ordering{bound: bound, accept: []int{1}, description: "greater than"}
}

// GreaterThanOrEqual expects a number or string not ordered before bound
func GreaterThanOrEqual(bound interface{}) Matcher {
	return ordering{bound: bound, accept: []int{0, 1}, description: "greater than or equal to"}
}

// LessThan expects a number or string ordered before bound
func LessThan(bound interface{}) Matcher {
	return ordering{bound: bound, accept: []int{-1}, description: "less than"}
}

// LessThanOrEqual expects a number or string not ordered after bound
func LessThanOrEqual(bound interface{}) Matcher {
	return ordering{bound: bound, accept: []int{-1, 0}, description: "less than or equal to"}
}

func (m ordering) Matches(actual interface{}) bool {
	c, ok := compare(actual, m.bound)
	if !ok {
		return false
	}
	for _, a := range m.accept {
		if a == c {
			return true
		}
	}
	return false
}

func (m ordering) Describe() string {
	return fmt.Sprintf("a value %s %s", m.description, DescribeValue(m.bound))
}

func (m ordering) DescribeMismatch(actual interface{}) string {
	c, ok := compare(actual, m.bound)
	if !ok {
		return wasA(actual)
	}
	return fmt.Sprintf("%s was %s %s", DescribeValue(actual), relations[c], DescribeValue(m.bound))
}

type substring struct {
	relation string
	part     string
	test     func(s, part string) bool
}

// ContainsString expects a string containing part
func ContainsString(part string) Matcher {
	return substring{relation: "containing", part: part, test: strings.Contains}
}

// HasPrefix expects a string starting with prefix
func HasPrefix(prefix string) Matcher {
	return substring{relation: "starting with", part: prefix, test: strings.HasPrefix}
}

func (m substring) Matches(actual interface{}) bool {
	s, ok := actual.(string)
	return ok && m.test(s, m.part)
}

func (m substring) Describe() string {
	return fmt.Sprintf("a string %s %s", m.relation, DescribeValue(m.part))
}

func (m substring) DescribeMismatch(actual interface{}) string {
	if _, ok := actual.(string); !ok {
		return wasA(actual)
	}
	return was(actual)
}

type not struct {
	m Matcher
}

// Not inverts a matcher. v may be a Matcher or a literal, see Wrap
func Not(v interface{}) Matcher {
	return not{m: Wrap(v)}
}

func (n not) Matches(actual interface{}) bool             { return !n.m.Matches(actual) }
func (n not) Describe() string                            { return "not " + n.m.Describe() }
func (n not) DescribeMismatch(actual interface{}) string { return was(actual) }

type allOf []Matcher

// AllOf expects every one of vs to match. each v may be a Matcher or a
// literal, see Wrap
func AllOf(vs ...interface{}) Matcher {
	return allOf(wrapAll(vs))
}

func (ms allOf) Matches(actual interface{}) bool {
	for _, m := range ms {
		if !m.Matches(actual) {
			return false
		}
	}
	return true
}

func (ms allOf) Describe() string { return describeJoined(ms, " and ") }

// DescribeMismatch names the first matcher that failed
func (ms allOf) DescribeMismatch(actual interface{}) string {
	for _, m := range ms {
		if !m.Matches(actual) {
			return m.Describe() + " " + m.DescribeMismatch(actual)
		}
	}
	return was(actual)
}

type anyOf []Matcher

// AnyOf expects at least one of vs to match. each v may be a Matcher or a
// literal, see Wrap
func AnyOf(vs ...interface{}) Matcher {
	return anyOf(wrapAll(vs))
}

func (ms anyOf) Matches(actual interface{}) bool {
	for _, m := range ms {
		if m.Matches(actual) {
			return true
		}
	}
	return false
}

func (ms anyOf) Describe() string                            { return describeJoined(ms, " or ") }
func (ms anyOf) DescribeMismatch(actual interface{}) string { return was(actual) }

// Combinable chains matchers fluently, see Both & Either
type Combinable struct {
	Matcher
}

// Both starts a conjunction: Both(a).And(b)
func Both(v interface{}) Combinable {
	return Combinable{Matcher: allOf{Wrap(v)}}
}

// Either starts a disjunction: Either(a).Or(b)
func Either(v interface{}) Combinable {
	return Combinable{Matcher: anyOf{Wrap(v)}}
}

// And returns a matcher that also requires v to match
func (c Combinable) And(v interface{}) Combinable {
	if ms, ok := c.Matcher.(allOf); ok {
		return Combinable{Matcher: append(ms[:len(ms):len(ms)], Wrap(v))}
	}
	return Combinable{Matcher: allOf{c.Matcher, Wrap(v)}}
}

// Or returns a matcher that is also satisfied when v matches
func (c Combinable) Or(v interface{}) Combinable {
	if ms, ok := c.Matcher.(anyOf); ok {
		return Combinable{Matcher: append(ms[:len(ms):len(ms)], Wrap(v))}
	}
	return Combinable{Matcher: anyOf{c.Matcher, Wrap(v)}}
}

type satisfies struct {
	description string
	predicate   func(interface{}) bool
}

// Satisfies wraps a plain predicate function as a Matcher, described by
// description
func Satisfies(description string, predicate func(actual interface{}) bool) Matcher {
	return satisfies{description: description, predicate: predicate}
}

func (s satisfies) Matches(actual interface{}) bool             { return s.predicate(actual) }
func (s satisfies) Describe() string                            { return s.description }
func (s satisfies) DescribeMismatch(actual interface{}) string { return was(actual) }

func wrapAll(vs []interface{}) []Matcher {
	ms := make([]Matcher, len(vs))
	for i, v := range vs {
		ms[i] = Wrap(v)
	}
	return ms
}

func describeJoined(ms []Matcher, sep string) string {
	strs := make([]string, len(ms))
	for i, m := range ms {
		strs[i] = m.Describe()
	}
	return "(" + strings.Join(strs, sep) + ")"
}
