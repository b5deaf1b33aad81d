package mapmatcher

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeltaJSON(t *testing.T) {
	patch := `[[" ", "sub", null, [["-", "gone", null, "<1>"], ["~", 0, 2, "a list"]] ], ["+", "extra", {"x": false}]]`
	var dts Deltas
	if err := json.Unmarshal([]byte(patch), &dts); err != nil {
		t.Fatal(err)
	}

	expect := Deltas{
		{Type: DTContext, Path: StringAddr("sub"), Deltas: Deltas{
			{Type: DTMissing, Path: StringAddr("gone"), Expected: "<1>"},
			{Type: DTMismatch, Path: IndexAddr(0), Value: float64(2), Expected: "a list"},
		}},
		{Type: DTUnexpected, Path: StringAddr("extra"), Value: map[string]interface{}{"x": false}},
	}

	if diff := cmp.Diff(expect, dts); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestDeltaMarshalJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Diff(diffMatcher, diffActual)); err != nil {
		t.Fatal(err)
	}

	expect := `[[" ","foo",2],["~","bar",2,"<3>"],[" ","sub",null,[[" ","a",1]]],["-","gone",null,"<1>"],["+","extra",true]]`
	if diff := cmp.Diff(expect, strings.TrimSpace(buf.String())); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	// reading the output back gives the same tree, with numbers as float64
	var got Deltas
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	roundTrip := Deltas{
		{Type: DTContext, Path: StringAddr("foo"), Value: float64(2)},
		{Type: DTMismatch, Path: StringAddr("bar"), Value: float64(2), Expected: "<3>"},
		{Type: DTContext, Path: StringAddr("sub"), Deltas: Deltas{
			{Type: DTContext, Path: StringAddr("a"), Value: float64(1)},
		}},
		{Type: DTMissing, Path: StringAddr("gone"), Expected: "<1>"},
		{Type: DTUnexpected, Path: StringAddr("extra"), Value: true},
	}
	if diff := cmp.Diff(roundTrip, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDeltaUnmarshalErrors(t *testing.T) {
	cases := []struct {
		description string
		input       string
		err         string
	}{
		{"too short", `["+", "a"]`, "delta: expected 3 or 4 elements, got 2"},
		{"bad path", `["+", true, 1]`, "delta path: unexpected type bool"},
		{"bad type", `[1, "a", 1]`, "delta type: json: cannot unmarshal number into Go value of type string"},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			d := &Delta{}
			err := json.Unmarshal([]byte(c.input), d)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != c.err {
				t.Errorf("error mismatch. want: %q got: %q", c.err, err.Error())
			}
		})
	}
}
