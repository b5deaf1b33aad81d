package fixture

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/qri-io/mapmatcher"
	"gopkg.in/yaml.v3"
)

// Tags that turn an expectation document value into a predicate
const (
	TagAny      = "!any"       // any value, including null
	TagNotNull  = "!not-null"  // any value but null
	TagExtraOk  = "!extra-ok"  // on a mapping: tolerate keys it doesn't list
	TagCloseTo  = "!close-to"  // on a [target, delta] sequence
	TagContains = "!contains"  // a string containing the scalar
	TagPrefix   = "!prefix"    // a string starting with the scalar
	TagGT       = "!gt"        // a number or string greater than the scalar
	TagGTE      = "!gte"
	TagLT       = "!lt"
	TagLTE      = "!lte"
)

// Compile reads an expectation document from r & builds the matcher it
// describes. Mappings become map matchers, sequences list matchers &
// scalars expect an equal value, unless tagged with one of the Tag
// constants
func Compile(r io.Reader) (mapmatcher.Matcher, error) {
	n, err := parse(r)
	if err != nil {
		return nil, err
	}
	return compile(n)
}

// CompileFile is Compile reading from a file, "-" reads stdin
func CompileFile(path string) (mapmatcher.Matcher, error) {
	r, closer, err := open(path)
	if err != nil {
		return nil, err
	}
	defer closer()

	m, err := Compile(r)
	return m, errors.Wrap(err, path)
}

func compile(n *yaml.Node) (mapmatcher.Matcher, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return compile(n.Alias)
	case yaml.MappingNode:
		return compileMap(n)
	case yaml.SequenceNode:
		if n.Tag == TagCloseTo {
			return compileCloseTo(n)
		}
		if err := checkTag(n); err != nil {
			return nil, err
		}
		l := mapmatcher.MatchesList()
		for _, el := range n.Content {
			m, err := compile(el)
			if err != nil {
				return nil, err
			}
			l = l.Item(m)
		}
		return l, nil
	case yaml.ScalarNode:
		return compileScalar(n)
	}
	return nil, errors.Errorf("line %d: unexpected yaml node kind %d", n.Line, n.Kind)
}

func compileMap(n *yaml.Node) (mapmatcher.Matcher, error) {
	m := mapmatcher.MatchesMap()
	if n.Tag == TagExtraOk {
		m = m.ExtraOk()
	} else if err := checkTag(n); err != nil {
		return nil, err
	}

	err := eachPair(n, func(key string, k, v *yaml.Node) error {
		sub, err := compile(v)
		if err != nil {
			return err
		}
		next, err := m.TryEntry(key, sub)
		if err != nil {
			return errors.Wrapf(err, "line %d", k.Line)
		}
		m = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func compileCloseTo(n *yaml.Node) (mapmatcher.Matcher, error) {
	if len(n.Content) != 2 {
		return nil, errors.Errorf("line %d: %s expects [target, delta], got %d values", n.Line, TagCloseTo, len(n.Content))
	}
	var target, delta float64
	if err := n.Content[0].Decode(&target); err != nil {
		return nil, errors.Wrapf(err, "line %d: %s target", n.Line, TagCloseTo)
	}
	if err := n.Content[1].Decode(&delta); err != nil {
		return nil, errors.Wrapf(err, "line %d: %s delta", n.Line, TagCloseTo)
	}
	return mapmatcher.CloseTo(target, delta), nil
}

func compileScalar(n *yaml.Node) (mapmatcher.Matcher, error) {
	switch n.Tag {
	case TagAny:
		return mapmatcher.Anything(), nil
	case TagNotNull:
		return mapmatcher.NotNil(), nil
	case TagContains:
		return mapmatcher.ContainsString(n.Value), nil
	case TagPrefix:
		return mapmatcher.HasPrefix(n.Value), nil
	case TagGT, TagGTE, TagLT, TagLTE:
		v, err := scalar(n)
		if err != nil {
			return nil, err
		}
		return ordering(n.Tag, v), nil
	}
	if err := checkTag(n); err != nil {
		return nil, err
	}

	v, err := scalar(n)
	if err != nil {
		return nil, err
	}
	return mapmatcher.Wrap(v), nil
}

func ordering(tag string, bound interface{}) mapmatcher.Matcher {
	switch tag {
	case TagGT:
		return mapmatcher.GreaterThan(bound)
	case TagGTE:
		return mapmatcher.GreaterThanOrEqual(bound)
	case TagLT:
		return mapmatcher.LessThan(bound)
	default:
		return mapmatcher.LessThanOrEqual(bound)
	}
}

// checkTag rejects local tags that don't apply to n. yaml's own "!!" tags
// are always fine
func checkTag(n *yaml.Node) error {
	if n.Tag == "" || strings.HasPrefix(n.Tag, "!!") {
		return nil
	}
	return errors.Errorf("line %d: unsupported tag %s", n.Line, n.Tag)
}
