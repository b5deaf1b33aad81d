package mapmatcher

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a TestingT that keeps failures instead of reporting them
type recorder struct {
	errors    []string
	failedNow bool
}

func (r *recorder) Errorf(format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) FailNow() {
	r.failedNow = true
}

func TestCheck(t *testing.T) {
	m := MatchesMap().Entry("foo", "bar")

	require.NoError(t, Check(map[string]interface{}{"foo": "bar"}, m))

	err := Check(map[string]interface{}{}, m, "reason: ")
	require.Error(t, err)
	assert.Equal(t, "reason: Expected a map containing\nfoo: expected \"bar\" but was <missing>", err.Error())

	var ae *AssertionError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "reason: ", ae.Reason)
	assert.Equal(t, "a map containing\nfoo: expected \"bar\" but was <missing>", ae.Mismatch)

	err = Check(5, m)
	require.Error(t, err)
	assert.Equal(t, "Expected a map but was <5>", err.Error())

	err = Check("x", Equal("y"), "one ", "two ")
	require.Error(t, err)
	assert.Equal(t, "one two Expected was \"x\"", err.Error())
}

func TestAssert(t *testing.T) {
	m := MatchesList().Item(1).Item(2)

	rec := &recorder{}
	assert.True(t, Assert(rec, []interface{}{1, 2}, m))
	assert.Empty(t, rec.errors)

	assert.False(t, Assert(rec, []interface{}{1, 3}, m, "list: "))
	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "list: Expected a list containing")
	assert.Contains(t, rec.errors[0], "1: expected <2> but was <3>")
	assert.False(t, rec.failedNow)
}

func TestRequire(t *testing.T) {
	m := MatchesMap().Entry("a", 1)

	rec := &recorder{}
	Require(rec, map[string]interface{}{"a": 1}, m)
	assert.False(t, rec.failedNow)

	Require(rec, map[string]interface{}{"a": 2}, m)
	assert.True(t, rec.failedNow)
	require.Len(t, rec.errors, 1)
	assert.True(t, strings.Contains(rec.errors[0], "a: expected <1> but was <2>"))
}

func TestAssertMapAndList(t *testing.T) {
	rec := &recorder{}
	assert.True(t, AssertMap(rec, map[string]interface{}{"a": []interface{}{}}, MatchesMap().Entry("a", MatchesList())))
	assert.False(t, AssertList(rec, []interface{}{}, MatchesList().Item("x")))
	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "0: expected \"x\" but was <missing>")

	// passing assertions work against a real test too
	AssertMap(t, map[string]interface{}{"a": 1}, MatchesMap().Entry("a", 1))
	AssertList(t, []int{1}, MatchesList().Item(1))
}

// helperRecorder counts Helper calls on top of recorder
type helperRecorder struct {
	recorder
	helpers int
}

func (r *helperRecorder) Helper() { r.helpers++ }

func TestAssertMarksHelpers(t *testing.T) {
	actual := map[string]interface{}{"foo": "bar"}

	cases := []struct {
		description string
		assert      func(r *helperRecorder)
		expect      int
	}{
		{"Assert", func(r *helperRecorder) { Assert(r, actual, MatchesMap().Entry("foo", "bar")) }, 1},
		{"Require", func(r *helperRecorder) { Require(r, actual, MatchesMap().Entry("foo", "bar")) }, 2},
		{"AssertMap", func(r *helperRecorder) { AssertMap(r, actual, MatchesMap().Entry("foo", "bar")) }, 2},
		{"AssertList", func(r *helperRecorder) { AssertList(r, []interface{}{1}, MatchesList().Item(1)) }, 2},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			r := &helperRecorder{}
			c.assert(r)
			assert.Empty(t, r.errors)
			assert.Equal(t, c.expect, r.helpers)
		})
	}
}
