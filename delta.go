package mapmatcher

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// Operation defines the operation of a Delta item
type Operation string

const (
	// DTContext indicates an entry that met its expectation
	DTContext = Operation(" ")
	// DTMissing is an expected entry absent from the actual value
	DTMissing = Operation("-")
	// DTUnexpected is an actual entry nothing expected
	DTUnexpected = Operation("+")
	// DTTolerated is an unexpected map entry permitted by ExtraOk
	DTTolerated = Operation("?")
	// DTMismatch is an entry present in the actual value that failed its
	// matcher
	DTMismatch = Operation("~")
)

// Failed reports whether an operation makes a match fail
func (o Operation) Failed() bool {
	return o == DTMissing || o == DTUnexpected || o == DTMismatch
}

// Addr is a single step of a path into a nested value
type Addr interface {
	String() string
	Value() interface{}
}

// StringAddr is the address of a map entry
type StringAddr string

// String implements the Addr interface
func (a StringAddr) String() string { return string(a) }

// Value implements the Addr interface
func (a StringAddr) Value() interface{} { return string(a) }

// IndexAddr is the address of a list item
type IndexAddr int

// String implements the Addr interface
func (a IndexAddr) String() string { return strconv.Itoa(int(a)) }

// Value implements the Addr interface
func (a IndexAddr) Value() interface{} { return int(a) }

// keyAddr addresses a map key. non-string keys use their text form
func keyAddr(key interface{}) Addr {
	return StringAddr(keyString(key))
}

// Delta is one entry of a structured match report: the outcome for a single
// map entry or list item, with child outcomes for nested containers
type Delta struct {
	// the outcome for this entry
	Type Operation `json:"type"`
	// Path is the address of this entry within its parent
	Path Addr `json:"path"`
	// Value is the actual value, nil for missing entries & containers with
	// child deltas
	Value interface{} `json:"value,omitempty"`
	// Expected describes what was expected, set for missing & mismatched
	// entries
	Expected string `json:"expected,omitempty"`

	// Child outcomes
	Deltas Deltas `json:"deltas,omitempty"`
}

// Deltas is a list of outcomes in report order
type Deltas []*Delta

// Walk visits every delta in prefix order with its slash-separated path.
// returning false from fn skips a delta's children
func Walk(ds Deltas, fn func(path string, d *Delta) bool) {
	walk(ds, nil, fn)
}

func walk(ds Deltas, parents []Addr, fn func(path string, d *Delta) bool) {
	for _, d := range ds {
		addrs := append(parents[:len(parents):len(parents)], d.Path)
		if fn(path(addrs...), d) && len(d.Deltas) > 0 {
			walk(d.Deltas, addrs, fn)
		}
	}
}

// MarshalJSON implements a custom JSON Marshaller, writing a delta as a
// compact array:
//
//	[type, path, value]
//	[type, path, value, expected]
//	[type, path, null, [child deltas...]]
func (d *Delta) MarshalJSON() ([]byte, error) {
	var p interface{}
	if d.Path != nil {
		p = d.Path.Value()
	}
	v := []interface{}{d.Type, p}
	switch {
	case len(d.Deltas) > 0:
		v = append(v, nil, d.Deltas)
	case d.Expected != "":
		v = append(v, d.Value, d.Expected)
	default:
		v = append(v, d.Value)
	}

	// expectations are full of angle brackets, keep them readable
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface, reading the
// compact form MarshalJSON writes
func (d *Delta) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) < 3 || len(fields) > 4 {
		return errors.Errorf("delta: expected 3 or 4 elements, got %d", len(fields))
	}

	var typ string
	if err := json.Unmarshal(fields[0], &typ); err != nil {
		return errors.Wrap(err, "delta type")
	}

	var p interface{}
	if err := json.Unmarshal(fields[1], &p); err != nil {
		return errors.Wrap(err, "delta path")
	}
	var addr Addr
	switch x := p.(type) {
	case nil:
	case string:
		addr = StringAddr(x)
	case float64:
		addr = IndexAddr(int(x))
	default:
		return errors.Errorf("delta path: unexpected type %T", p)
	}

	dlt := Delta{Type: Operation(typ), Path: addr}
	if err := json.Unmarshal(fields[2], &dlt.Value); err != nil {
		return errors.Wrap(err, "delta value")
	}
	if len(fields) == 4 {
		last := bytes.TrimSpace(fields[3])
		if len(last) > 0 && last[0] == '"' {
			if err := json.Unmarshal(last, &dlt.Expected); err != nil {
				return errors.Wrap(err, "delta expectation")
			}
		} else if err := json.Unmarshal(last, &dlt.Deltas); err != nil {
			return errors.Wrap(err, "delta children")
		}
	}

	*d = dlt
	return nil
}
