package mapmatcher

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Matcher tests a value & explains in text why the value does or doesn't
// meet an expectation
type Matcher interface {
	// Matches reports whether actual meets the expectation
	Matches(actual interface{}) bool
	// Describe says what is expected, used when there's no actual value
	Describe() string
	// DescribeMismatch says why actual fails, conventionally phrased as
	// "was <actual>" so it reads well after "expected <description> but "
	DescribeMismatch(actual interface{}) string
}

// indent is how far each level of nesting shifts the key column
const indent = 2

// structured is implemented by MapMatcher & ListMatcher, the two matchers
// that contain other matchers. report rendering dispatches on it to recurse
// into nested containers
type structured interface {
	Matcher
	// accepts reports whether actual is the kind of container this matcher
	// expects
	accepts(actual interface{}) bool
	// noun names the expected container kind, "a map" or "a list"
	noun() string
	// keyWidth is the column width needed to align every key of this matcher
	// & actual, including nested containers
	keyWidth(actual interface{}) int
	describeTo(width int, b *strings.Builder)
	describePotentialMismatch(width int, actual interface{}, b *strings.Builder)
}

// Wrap turns any value into a Matcher. Matchers are returned unchanged, nil
// expects a null, maps & lists become MapMatchers & ListMatchers, and
// anything else is compared for equality
func Wrap(v interface{}) Matcher {
	if m, ok := v.(Matcher); ok {
		return m
	}
	switch typeOf(v) {
	case ntNull:
		return Nil()
	case ntObject:
		return MatchesMapOf(v)
	case ntArray:
		return MatchesListOf(v)
	default:
		return Equal(v)
	}
}

// valueConfig renders leaf values. pointer addresses & capacities are noise
// in a test report
var valueConfig = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// DescribeValue renders an actual value the way reports print it: null for
// nil, quoted strings, and everything else wrapped in angle brackets
func DescribeValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	}
	return "<" + formatValue(v) + ">"
}

// formatValue prints v in fmt's %v style, keeping the order of ordered maps
func formatValue(v interface{}) string {
	switch x := v.(type) {
	case *orderedmap.OrderedMap[string, interface{}], *orderedmap.OrderedMap[interface{}, interface{}]:
		obj, ok := asObject(x)
		if !ok {
			return "<nil>"
		}
		strs := make([]string, len(obj.pairs))
		for i, p := range obj.pairs {
			strs[i] = keyString(p.key) + ":" + formatValue(p.value)
		}
		return "map[" + strings.Join(strs, " ") + "]"
	case []interface{}:
		strs := make([]string, len(x))
		for i, el := range x {
			strs[i] = formatValue(el)
		}
		return "[" + strings.Join(strs, " ") + "]"
	}
	return valueConfig.Sprintf("%v", v)
}

// keyWidthFor is the width a nested container asks of its parent. nested
// keys sit indent columns to the right, so that much is already accounted
// for
func keyWidthFor(actual interface{}, m Matcher) int {
	if s, ok := m.(structured); ok {
		return s.keyWidth(actual) - indent
	}
	return 0
}

// describeMatcher writes one expectation line, used when there's no actual
// value to compare against
func describeMatcher(width int, key string, m Matcher, b *strings.Builder) {
	describeEntry(width, key, b)
	if s, ok := m.(structured); ok {
		s.describeTo(width+indent, b)
		return
	}
	b.WriteString(m.Describe())
}

// describeEntry starts a new line with key right-aligned to width
func describeEntry(width int, key string, b *strings.Builder) {
	fmt.Fprintf(b, "\n%*s: ", width, key)
}

func describeEntryMissing(m Matcher, b *strings.Builder) {
	b.WriteString("expected ")
	b.WriteString(expectation(m))
	b.WriteString(" but was <missing>")
}

func describeEntryUnexpected(v interface{}, b *strings.Builder) {
	b.WriteString("<unexpected> but was ")
	b.WriteString(DescribeValue(v))
}

func describeEntryTolerated(v interface{}, b *strings.Builder) {
	b.WriteString(DescribeValue(v))
	b.WriteString(" unexpected but ok")
}

func describeEntryValue(width int, m Matcher, v interface{}, b *strings.Builder) {
	if s, ok := m.(structured); ok {
		if s.accepts(v) {
			s.describePotentialMismatch(width+indent, v, b)
			return
		}
		b.WriteString("expected ")
		b.WriteString(s.noun())
		b.WriteString(" but was ")
		b.WriteString(DescribeValue(v))
		return
	}
	if !m.Matches(v) {
		b.WriteString("expected ")
		b.WriteString(m.Describe())
		b.WriteString(" but ")
		b.WriteString(m.DescribeMismatch(v))
		return
	}
	b.WriteString(DescribeValue(v))
}

// expectation is the one-line description of m. nested containers are
// summarized by their kind
func expectation(m Matcher) string {
	if s, ok := m.(structured); ok {
		return s.noun()
	}
	return m.Describe()
}
