// Package fixture reads JSON & YAML documents for the mapmatch command:
// actual values decode into ordered trees, expectation documents compile
// into matchers
package fixture

import (
	"io"
	"os"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// ErrEmpty is returned for input with no document in it
var ErrEmpty = errors.New("empty document")

// Decode reads one JSON or YAML document from r. Mappings decode to
// *orderedmap.OrderedMap[string, interface{}] so reports list keys in
// document order, sequences to []interface{} & scalars to their natural go
// type
func Decode(r io.Reader) (interface{}, error) {
	n, err := parse(r)
	if err != nil {
		return nil, err
	}
	return value(n)
}

// DecodeFile is Decode reading from a file, "-" reads stdin
func DecodeFile(path string) (interface{}, error) {
	r, closer, err := open(path)
	if err != nil {
		return nil, err
	}
	defer closer()

	v, err := Decode(r)
	return v, errors.Wrap(err, path)
}

func open(path string) (io.Reader, func() error, error) {
	if path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening document")
	}
	return f, f.Close, nil
}

// parse reads the root node of the first document in r
func parse(r io.Reader) (*yaml.Node, error) {
	doc := &yaml.Node{}
	if err := yaml.NewDecoder(r).Decode(doc); err != nil {
		if err == io.EOF {
			return nil, ErrEmpty
		}
		return nil, errors.Wrap(err, "parsing document")
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, ErrEmpty
		}
		return doc.Content[0], nil
	}
	return doc, nil
}

func value(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return value(n.Alias)
	case yaml.MappingNode:
		om := orderedmap.New[string, interface{}]()
		err := eachPair(n, func(key string, k, v *yaml.Node) error {
			if _, ok := om.Get(key); ok {
				return errors.Errorf("line %d: duplicate key %q", k.Line, key)
			}
			val, err := value(v)
			if err != nil {
				return err
			}
			om.Set(key, val)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return om, nil
	case yaml.SequenceNode:
		items := make([]interface{}, len(n.Content))
		for i, el := range n.Content {
			v, err := value(el)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return items, nil
	case yaml.ScalarNode:
		return scalar(n)
	}
	return nil, errors.Errorf("line %d: unexpected yaml node kind %d", n.Line, n.Kind)
}

// eachPair calls fn for every key & value of a mapping node in document
// order
func eachPair(n *yaml.Node, fn func(key string, k, v *yaml.Node) error) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		var key string
		if err := k.Decode(&key); err != nil {
			return errors.Wrapf(err, "line %d: map key", k.Line)
		}
		if err := fn(key, k, v); err != nil {
			return err
		}
	}
	return nil
}

// scalar decodes a scalar node, ignoring any local tag on it
func scalar(n *yaml.Node) (interface{}, error) {
	plain := *n
	if plain.Style&yaml.TaggedStyle != 0 {
		plain.Tag = ""
		plain.Style &^= yaml.TaggedStyle
	}
	var v interface{}
	if err := plain.Decode(&v); err != nil {
		return nil, errors.Wrapf(err, "line %d", n.Line)
	}
	return v, nil
}
