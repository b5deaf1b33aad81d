package mapmatcher

import (
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertionError is returned by Check when a value doesn't match. Its
// message carries the whole mismatch report, not just the first difference
type AssertionError struct {
	Reason   string
	Mismatch string
}

// Error implements the error interface
func (e *AssertionError) Error() string {
	return e.Reason + "Expected " + e.Mismatch
}

// Check returns an *AssertionError if actual doesn't match m, nil otherwise.
// reason is prefixed to the message verbatim
func Check(actual interface{}, m Matcher, reason ...string) error {
	if m.Matches(actual) {
		return nil
	}
	return &AssertionError{
		Reason:   strings.Join(reason, ""),
		Mismatch: m.DescribeMismatch(actual),
	}
}

// tHelper is the part of *testing.T that marks helper functions. Helper
// must be called from the function being marked, not a shared wrapper
type tHelper interface {
	Helper()
}

// Assert reports a test failure through t if actual doesn't match m. It's
// shorter on failure than assert.Equal & lists every mismatch. It returns
// whether actual matched
func Assert(t assert.TestingT, actual interface{}, m Matcher, reason ...string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if err := Check(actual, m, reason...); err != nil {
		return assert.Fail(t, err.Error())
	}
	return true
}

// Require is Assert that stops the test with t.FailNow on mismatch
func Require(t require.TestingT, actual interface{}, m Matcher, reason ...string) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !Assert(t, actual, m, reason...) {
		t.FailNow()
	}
}

// AssertMap is Assert for map matchers
func AssertMap(t assert.TestingT, actual interface{}, m *MapMatcher, reason ...string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return Assert(t, actual, m, reason...)
}

// AssertList is Assert for list matchers
func AssertList(t assert.TestingT, actual interface{}, m *ListMatcher, reason ...string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	return Assert(t, actual, m, reason...)
}
