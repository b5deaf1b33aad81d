package mapmatcher

import (
	"fmt"
	"strconv"
	"strings"
)

// ListMatcher matches lists position by position & reports every mismatching
// item at once. Like MapMatcher it's immutable, Item returns a new matcher
type ListMatcher struct {
	matchers []Matcher
}

// MatchesList creates a ListMatcher that expects an empty list
func MatchesList() *ListMatcher {
	return &ListMatcher{}
}

// MatchesListOf creates a ListMatcher with one item for every element of a
// slice or array, wrapping each element with Wrap. MatchesListOf panics if v
// isn't a list
func MatchesListOf(v interface{}) *ListMatcher {
	items, ok := asArray(v)
	if !ok {
		panic(fmt.Sprintf("mapmatcher: expected a list, got %T", v))
	}
	matchers := make([]Matcher, len(items))
	for i, item := range items {
		matchers[i] = Wrap(item)
	}
	return &ListMatcher{matchers: matchers}
}

// Item returns a new ListMatcher that expects one more item. value may be a
// Matcher or a literal, see Wrap
func (m *ListMatcher) Item(value interface{}) *ListMatcher {
	matchers := make([]Matcher, len(m.matchers), len(m.matchers)+1)
	copy(matchers, m.matchers)
	return &ListMatcher{matchers: append(matchers, Wrap(value))}
}

// Len is the number of expected items
func (m *ListMatcher) Len() int {
	return len(m.matchers)
}

// Matches implements the Matcher interface
func (m *ListMatcher) Matches(actual interface{}) bool {
	items, ok := asArray(actual)
	if !ok || len(items) != len(m.matchers) {
		return false
	}
	for i, matcher := range m.matchers {
		if !matcher.Matches(items[i]) {
			return false
		}
	}
	return true
}

// Describe implements the Matcher interface
func (m *ListMatcher) Describe() string {
	b := &strings.Builder{}
	m.describeTo(m.keyWidth(nil), b)
	return b.String()
}

// DescribeMismatch implements the Matcher interface, listing every item
func (m *ListMatcher) DescribeMismatch(actual interface{}) string {
	if !m.accepts(actual) {
		return "a list but was " + DescribeValue(actual)
	}
	b := &strings.Builder{}
	m.describePotentialMismatch(m.keyWidth(actual), actual, b)
	return b.String()
}

func (m *ListMatcher) accepts(actual interface{}) bool {
	_, ok := asArray(actual)
	return ok
}

func (m *ListMatcher) noun() string { return "a list" }

// keyWidth right-aligns indices to the digit count of the longer of the two
// lists
func (m *ListMatcher) keyWidth(actual interface{}) int {
	items, _ := asArray(actual)
	width := indexLen(max(len(items), len(m.matchers)))
	for i, matcher := range m.matchers {
		var v interface{}
		if i < len(items) {
			v = items[i]
		}
		width = max(width, keyWidthFor(v, matcher))
	}
	return width
}

func (m *ListMatcher) describeTo(width int, b *strings.Builder) {
	if len(m.matchers) == 0 {
		b.WriteString("an empty list")
		return
	}
	b.WriteString("a list containing")
	for i, matcher := range m.matchers {
		describeMatcher(width, strconv.Itoa(i), matcher, b)
	}
}

func (m *ListMatcher) describePotentialMismatch(width int, actual interface{}, b *strings.Builder) {
	items, _ := asArray(actual)
	if len(m.matchers) == 0 {
		b.WriteString("an empty list")
	} else {
		b.WriteString("a list containing")
	}

	for i, matcher := range m.matchers {
		describeEntry(width, strconv.Itoa(i), b)
		if i >= len(items) {
			describeEntryMissing(matcher, b)
			continue
		}
		describeEntryValue(width, matcher, items[i], b)
	}
	for i := len(m.matchers); i < len(items); i++ {
		describeEntry(width, strconv.Itoa(i), b)
		describeEntryUnexpected(items[i], b)
	}
}
