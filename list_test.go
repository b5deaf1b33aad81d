package mapmatcher

import (
	"testing"
)

func TestListMatches(t *testing.T) {
	cases := []struct {
		description string
		matcher     Matcher
		actual      interface{}
	}{
		{"empty", MatchesList(), []interface{}{}},
		{"typed nil slice is empty", MatchesList(), []string(nil)},
		{"simple", MatchesList().Item("foo").Item("bar"), []interface{}{"foo", "bar"}},
		{"typed slice", MatchesList().Item(1).Item(2), []int{1, 2}},
		{"array", MatchesList().Item("a"), [1]string{"a"}},
		{"null value", MatchesList().Item(nil), []interface{}{nil}},
		{"provided list", MatchesListOf([]interface{}{1, []interface{}{"a"}, map[string]interface{}{"b": nil}}),
			[]interface{}{1, []interface{}{"a"}, map[string]interface{}{"b": nil}}},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			if !c.matcher.Matches(c.actual) {
				t.Errorf("expected match. mismatch:\n%s", c.matcher.DescribeMismatch(c.actual))
			}
		})
	}
}

func TestListMismatch(t *testing.T) {
	cases := []struct {
		description string
		matcher     Matcher
		actual      interface{}
		expect      string
	}{
		{"expected empty",
			MatchesList(),
			[]interface{}{1},
			"an empty list\n0: <unexpected> but was <1>",
		},
		{"expected empty many",
			MatchesList(),
			[]interface{}{"foo", "bar"},
			"an empty list\n0: <unexpected> but was \"foo\"\n1: <unexpected> but was \"bar\"",
		},
		{"missing",
			MatchesList().Item("foo"),
			[]interface{}{},
			"a list containing\n0: expected \"foo\" but was <missing>",
		},
		{"wrong simple value",
			MatchesList().Item("foo"),
			[]interface{}{"bar"},
			"a list containing\n0: expected \"foo\" but was \"bar\"",
		},
		{"extra",
			MatchesList().Item(1),
			[]interface{}{1, 2},
			"a list containing\n0: <1>\n1: <unexpected> but was <2>",
		},
		{"many extra",
			MatchesList().Item(1),
			[]interface{}{1, 2, "x"},
			"a list containing\n0: <1>\n1: <unexpected> but was <2>\n2: <unexpected> but was \"x\"",
		},
		{"mixed",
			MatchesList().Item(1).Item(5).Item(6),
			[]interface{}{1, 4},
			"a list containing\n0: <1>\n1: expected <5> but was <4>\n2: expected <6> but was <missing>",
		},
		{"order matters",
			MatchesList().Item(1).Item(2),
			[]interface{}{2, 1},
			"a list containing\n0: expected <1> but was <2>\n1: expected <2> but was <1>",
		},
		{"expected null",
			MatchesList().Item("foo").Item(nil),
			[]interface{}{"foo", "bar"},
			"a list containing\n0: \"foo\"\n1: expected null but was \"bar\"",
		},
		{"expected but was null",
			MatchesList().Item("foo").Item("bar"),
			[]interface{}{"foo", nil},
			"a list containing\n0: \"foo\"\n1: expected \"bar\" but was null",
		},
		{"sub map",
			MatchesList().Item(map[string]interface{}{"bar": 1}).Item(2),
			[]interface{}{map[string]interface{}{"bar": 2}, 2},
			"a list containing\n0: a map containing\nbar: expected <1> but was <2>\n1: <2>",
		},
		{"sub map missing",
			MatchesList().Item(1).Item(map[string]interface{}{"bar": 1}),
			[]interface{}{1},
			"a list containing\n0: <1>\n1: expected a map but was <missing>",
		},
		{"sub empty map",
			MatchesList().Item(MatchesMap()).Item(2),
			[]interface{}{map[string]interface{}{"bar": 2}, 2},
			"a list containing\n0: an empty map\nbar: <unexpected> but was <2>\n1: <2>",
		},
		{"sub list",
			MatchesList().Item([]interface{}{1}).Item(2),
			[]interface{}{[]interface{}{2}, 2},
			"a list containing\n0: a list containing\n  0: expected <1> but was <2>\n1: <2>",
		},
		{"sub list missing",
			MatchesList().Item(1).Item([]interface{}{"bar", 1}),
			[]interface{}{1},
			"a list containing\n0: <1>\n1: expected a list but was <missing>",
		},
		{"sub empty list",
			MatchesList().Item(MatchesList()).Item(2),
			[]interface{}{[]interface{}{2}, 2},
			"a list containing\n0: an empty list\n  0: <unexpected> but was <2>\n1: <2>",
		},
		{"sub matcher",
			MatchesList().Item(CloseTo(1, .5)).Item(2),
			[]interface{}{2.0, 2},
			"a list containing\n0: " + closeToErr + "\n1: <2>",
		},
		{"provided list",
			MatchesListOf([]interface{}{[]interface{}{1}, map[string]interface{}{"bar": 1}, CloseTo(1, .5)}),
			[]interface{}{[]interface{}{1}, map[string]interface{}{"bar": 2}, 2.0},
			"a list containing\n0: a list containing\n  0: <1>\n1: a map containing\nbar: expected <1> but was <2>\n2: " + closeToErr,
		},
		{"expected a list but was a map",
			MatchesList().Item(MatchesList().Item(1)),
			[]interface{}{map[string]interface{}{"a": 1}},
			"a list containing\n0: expected a list but was <map[a:1]>",
		},
		{"indices align right",
			MatchesList().Item(0).Item(1).Item(2).Item(3).Item(4).Item(5).Item(6).Item(7).Item(8).Item(9),
			[]interface{}{0, 1, 2, 3, 4, 5, 6, 7, 8, 10},
			"a list containing\n 0: <0>\n 1: <1>\n 2: <2>\n 3: <3>\n 4: <4>\n 5: <5>\n 6: <6>\n 7: <7>\n 8: <8>\n 9: expected <9> but was <10>",
		},
		{"not a list",
			MatchesList().Item(1),
			"1",
			"a list but was \"1\"",
		},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			assertMismatch(t, c.actual, c.matcher, c.expect)
		})
	}
}

func TestListDescribe(t *testing.T) {
	cases := []struct {
		description string
		matcher     Matcher
		expect      string
	}{
		{"empty", MatchesList(), "an empty list"},
		{"simple", MatchesList().Item(1).Item(3), "a list containing\n0: <1>\n1: <3>"},
		{"sub list", MatchesList().Item(1).Item(MatchesList().Item(0)), "a list containing\n0: <1>\n1: a list containing\n  0: <0>"},
		{"sub map", MatchesList().Item(1).Item(MatchesMap().Entry("foo", 0)), "a list containing\n0: <1>\n1: a map containing\nfoo: <0>"},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			assertDescribe(t, c.matcher, c.expect)
		})
	}
}

func TestListImmutable(t *testing.T) {
	base := MatchesList().Item(1)
	a := base.Item(2)
	b := base.Item(3)

	if base.Len() != 1 {
		t.Errorf("base changed. want 1 item, got %d", base.Len())
	}
	if !a.Matches([]interface{}{1, 2}) {
		t.Errorf("expected a to match [1 2]:\n%s", a.DescribeMismatch([]interface{}{1, 2}))
	}
	if !b.Matches([]interface{}{1, 3}) {
		t.Errorf("expected b to match [1 3]:\n%s", b.DescribeMismatch([]interface{}{1, 3}))
	}
}

func TestMatchesListOfPanicsOnNonList(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MatchesListOf(map[string]interface{}{})
}
