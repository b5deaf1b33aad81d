package mapmatcher

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrDuplicateKey is the construction error for expecting the same map key
// twice
var ErrDuplicateKey = errors.New("duplicate key")

// MapMatcher matches maps & reports every mismatching entry at once. A
// MapMatcher is immutable: Entry & ExtraOk return a new matcher, so a
// partially built matcher can be shared as a prefix of several others.
// Use MatchesMap or MatchesMapOf to create one
type MapMatcher struct {
	matchers *orderedmap.OrderedMap[interface{}, Matcher]
	extraOk  bool
}

// MatchesMap creates a MapMatcher that expects an empty map
func MatchesMap() *MapMatcher {
	return &MapMatcher{matchers: orderedmap.New[interface{}, Matcher]()}
}

// MatchesMapOf creates a MapMatcher with one entry for every entry of a
// map-like value, wrapping each value with Wrap. Entries are expected in the
// value's iteration order, so pass an ordered map when report order matters.
// MatchesMapOf panics if v isn't a map
func MatchesMapOf(v interface{}) *MapMatcher {
	obj, ok := asObject(v)
	if !ok {
		panic(fmt.Sprintf("mapmatcher: expected a map, got %T", v))
	}
	m := MatchesMap()
	for _, p := range obj.pairs {
		m.matchers.Set(p.key, Wrap(p.value))
	}
	return m
}

// Entry returns a new MapMatcher that also expects key. value may be a
// Matcher or a literal, see Wrap. Entry panics with an error wrapping
// ErrDuplicateKey if key is already expected
func (m *MapMatcher) Entry(key, value interface{}) *MapMatcher {
	next, err := m.TryEntry(key, value)
	if err != nil {
		panic(err)
	}
	return next
}

// TryEntry is Entry that returns duplicate key errors instead of panicking
func (m *MapMatcher) TryEntry(key, value interface{}) (*MapMatcher, error) {
	if old, ok := m.get(key); ok {
		return nil, errors.Wrapf(ErrDuplicateKey, "already had an entry for [%s]: %s", keyString(key), old.Describe())
	}
	next := m.clone()
	next.matchers.Set(key, Wrap(value))
	return next, nil
}

// ExtraOk returns a new MapMatcher that tolerates keys it doesn't expect
func (m *MapMatcher) ExtraOk() *MapMatcher {
	next := m.clone()
	next.extraOk = true
	return next
}

// Len is the number of expected entries
func (m *MapMatcher) Len() int {
	if m.matchers == nil {
		return 0
	}
	return m.matchers.Len()
}

func (m *MapMatcher) clone() *MapMatcher {
	next := MatchesMap()
	next.extraOk = m.extraOk
	for p := m.oldest(); p != nil; p = p.Next() {
		next.matchers.Set(p.Key, p.Value)
	}
	return next
}

func (m *MapMatcher) oldest() *orderedmap.Pair[interface{}, Matcher] {
	if m.matchers == nil {
		return nil
	}
	return m.matchers.Oldest()
}

func (m *MapMatcher) get(key interface{}) (Matcher, bool) {
	if m.matchers == nil {
		return nil, false
	}
	return m.matchers.Get(key)
}

// Matches implements the Matcher interface
func (m *MapMatcher) Matches(actual interface{}) bool {
	obj, ok := asObject(actual)
	if !ok {
		return false
	}
	if !m.extraOk && obj.Len() != m.Len() {
		return false
	}
	for p := m.oldest(); p != nil; p = p.Next() {
		v, ok := obj.Get(p.Key)
		if !ok || !p.Value.Matches(v) {
			return false
		}
	}
	return true
}

// Describe implements the Matcher interface
func (m *MapMatcher) Describe() string {
	b := &strings.Builder{}
	m.describeTo(m.keyWidth(nil), b)
	return b.String()
}

// DescribeMismatch implements the Matcher interface, listing every entry
func (m *MapMatcher) DescribeMismatch(actual interface{}) string {
	if !m.accepts(actual) {
		return "a map but was " + DescribeValue(actual)
	}
	b := &strings.Builder{}
	m.describePotentialMismatch(m.keyWidth(actual), actual, b)
	return b.String()
}

func (m *MapMatcher) accepts(actual interface{}) bool {
	_, ok := asObject(actual)
	return ok
}

func (m *MapMatcher) noun() string { return "a map" }

func (m *MapMatcher) keyWidth(actual interface{}) int {
	width := 0
	obj, _ := asObject(actual)
	if obj != nil {
		for _, p := range obj.pairs {
			width = max(width, keyLen(p.key))
		}
	}
	for p := m.oldest(); p != nil; p = p.Next() {
		v, _ := obj.Get(p.Key)
		width = max(width, keyLen(p.Key), keyWidthFor(v, p.Value))
	}
	return width
}

func (m *MapMatcher) describeTo(width int, b *strings.Builder) {
	if m.Len() == 0 {
		b.WriteString("an empty map")
		return
	}
	b.WriteString("a map containing")
	for p := m.oldest(); p != nil; p = p.Next() {
		describeMatcher(width, keyString(p.Key), p.Value, b)
	}
}

func (m *MapMatcher) describePotentialMismatch(width int, actual interface{}, b *strings.Builder) {
	obj, _ := asObject(actual)
	if m.Len() == 0 {
		b.WriteString("an empty map")
	} else {
		b.WriteString("a map containing")
	}

	for p := m.oldest(); p != nil; p = p.Next() {
		describeEntry(width, keyString(p.Key), b)
		v, ok := obj.Get(p.Key)
		if !ok {
			describeEntryMissing(p.Value, b)
			continue
		}
		describeEntryValue(width, p.Value, v, b)
	}
	for _, p := range obj.Pairs() {
		if _, ok := m.get(p.key); ok {
			continue
		}
		describeEntry(width, keyString(p.key), b)
		if m.extraOk {
			describeEntryTolerated(p.value, b)
		} else {
			describeEntryUnexpected(p.value, b)
		}
	}
}
