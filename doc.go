// Package mapmatcher matches nested maps & lists against an expected shape
// and, when they don't match, reports every difference at once.
//
// Test assertions over structured data usually stop at the first
// difference, or dump two large values side by side and leave the reader to
// find what changed. mapmatcher instead walks the expectation & the actual
// value together and prints one line per entry, aligned on the key column
// no matter how deeply containers nest:
//
//	a map containing
//	 foo: <2>
//	 bar: expected <3> but was <2>
//	list: a list containing
//	     0: <2>
//	     1: expected <5> but was <4>
//	     2: expected <6> but was <missing>
//
// Expectations are built from two immutable builders, MatchesMap and
// MatchesList. Entry values may be literals, compared for equality, or any
// Matcher, including other map & list matchers:
//
//	m := mapmatcher.MatchesMap().
//	  Entry("foo", 2).
//	  Entry("baz", mapmatcher.GreaterThan(1)).
//	  Entry("list", mapmatcher.MatchesList().Item(2).Item(5))
//
// Actual values are the go types produced by decoding documents: maps of any
// key & value type, slices, arrays and scalars. Entries of a go map are
// visited in sorted key order. Ordered maps from
// github.com/wk8/go-ordered-map/v2 keep their own insertion order.
//
// Beyond the text report, Diff returns the same comparison as a tree of
// Deltas, which can be marshaled to JSON or formatted with FormatPretty.
package mapmatcher
